package inkwell

// Article is the core content type stored in SQLite and rendered by templates.
// Date holds the raw UNIX timestamp; DateText is the pre-formatted display
// string ("January 2, 2006") and Tags the joined display string, so templates
// never touch raw column values.
type Article struct {
	ID        int64
	Released  bool
	Slug      string
	Title     string
	TitleLink string
	TitleAlt  string
	Date      int64
	DateText  string
	Tags      string
	Body      string
}

// ArticleDraft carries the writable fields of an article. Date is the
// user-supplied date string and is parsed on save; TagCSV is the raw
// comma-separated tag field from the edit form.
type ArticleDraft struct {
	Title     string
	TitleLink string
	TitleAlt  string
	Date      string
	Body      string
	Released  bool
	TagCSV    string
}

// Page is a static page shown outside the article stream. Order is the manual
// navigation sort key; InNav controls whether the page appears in the header.
type Page struct {
	ID          int64
	Released    bool
	Order       int
	Slug        string
	Title       string
	Created     int64
	CreatedText string
	Edited      int64
	EditedText  string
	InNav       bool
	Body        string
}

// SidebarLink points at either an internal article (ArticleID > 0, with the
// article title resolved on read) or an external URL, never both.
type SidebarLink struct {
	ID           int64
	ArticleID    int64
	ArticleTitle string
	External     string
	Text         string
	Alt          string
}

// Image is metadata for an uploaded image, derived from the file on disk.
type Image struct {
	Filename string
	Width    int
	Height   int
	Size     int64
}
