package views

// Site carries the per-request chrome every layout render needs: configured
// titles, navigation pages, sidebar links, and whether the viewer holds an
// admin session.
type Site struct {
	Title        string
	Subtitle     string
	BrowserTitle string
	FooterText   string
	SidebarImage string
	SidebarAlt   string
	URL          string
	Admin        bool
	NavPages     []NavPage
	Sidebar      []SidebarItem
}

// NavPage is a header navigation entry.
type NavPage struct {
	Title string
	Slug  string
}

// SidebarItem is a rendered sidebar link; Href is already resolved to either
// the internal article path or the external URL.
type SidebarItem struct {
	Text string
	Href string
	Alt  string
}

// Article is the display form of an article: dates pre-formatted, tags
// joined, body already rendered to HTML when shown in full.
type Article struct {
	ID       int64
	Released bool
	Slug     string
	Title    string
	Link     string
	LinkAlt  string
	Date     string
	RawDate  string
	Tags     string
	Body     string
}

// Page is the display form of a static page.
type Page struct {
	ID       int64
	Released bool
	Order    int
	Slug     string
	Title    string
	Created  string
	Edited   string
	InNav    bool
	Body     string
}

// Link is the display form of a sidebar link for the admin table.
type Link struct {
	ID           int64
	ArticleID    int64
	ArticleTitle string
	External     string
	Text         string
	Alt          string
}

// Image is an uploaded image listed in the admin area.
type Image struct {
	Filename string
	Width    int
	Height   int
	Size     int64
}
