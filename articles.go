package inkwell

import (
	"database/sql"
	"fmt"
	"strings"
)

// ArticleRef identifies an article by exactly one of its id or slug.
type ArticleRef struct {
	ID   int64
	Slug string
}

func (r ArticleRef) validate() (clause string, arg any, err error) {
	switch {
	case r.ID != 0 && r.Slug != "":
		return "", nil, fmt.Errorf("%w: specify either an id or a slug, not both", ErrInvalidArgument)
	case r.ID != 0:
		return "a.id = ?", r.ID, nil
	case r.Slug != "":
		return "a.title_path = ?", r.Slug, nil
	default:
		return "", nil, fmt.Errorf("%w: specify either an id or a slug", ErrInvalidArgument)
	}
}

// ArticleQuery controls GetArticles. Start/PageSize window the result
// (PageSize <= 0 means no limit). WithBody and WithLinks add the heavy body
// and the title link columns. Released filters by visibility when non-nil;
// nil means all. Tag filters by a single tag value; TagList instead
// aggregates each article's tags into its display string. Tag wins when both
// are set.
type ArticleQuery struct {
	Start     int
	PageSize  int
	WithBody  bool
	WithLinks bool
	Released  *bool
	Render    bool
	Tag       string
	TagList   bool
}

// CreateArticle parses the draft's date, derives the slug from the title,
// inserts the row, and replaces its tag set from the draft's tag field.
// Returns the new article id.
func (s *Store) CreateArticle(d ArticleDraft) (int64, error) {
	ts, err := ParseDate(d.Date)
	if err != nil {
		return 0, err
	}
	res, err := s.db.Exec(
		`INSERT INTO articles (released, title_path, title, title_link, title_alt, date, body)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		boolToInt(d.Released), Slugify(d.Title), d.Title, d.TitleLink, d.TitleAlt, ts, d.Body)
	if err != nil {
		return 0, fmt.Errorf("insert article: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	if err := s.SaveTags(id, d.TagCSV); err != nil {
		return 0, err
	}
	return id, nil
}

// SaveArticle applies the draft to an existing article and replaces its tag
// set unconditionally.
func (s *Store) SaveArticle(id int64, d ArticleDraft) error {
	ts, err := ParseDate(d.Date)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(
		`UPDATE articles
		 SET released = ?, title_path = ?, title = ?, title_link = ?, title_alt = ?, date = ?, body = ?
		 WHERE id = ?`,
		boolToInt(d.Released), Slugify(d.Title), d.Title, d.TitleLink, d.TitleAlt, ts, d.Body, id)
	if err != nil {
		return fmt.Errorf("update article: %w", err)
	}
	return s.SaveTags(id, d.TagCSV)
}

// DeleteArticle removes an article and its tag associations. Sidebar links
// pointing at it are left behind; their titles resolve empty on read.
func (s *Store) DeleteArticle(id int64) error {
	if _, err := s.db.Exec(`DELETE FROM tag_map WHERE article_id = ?`, id); err != nil {
		return fmt.Errorf("delete tag associations: %w", err)
	}
	_, err := s.db.Exec(`DELETE FROM articles WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	return nil
}

// GetArticle returns one article by id or slug with its tags aggregated into
// the display string, or nil when nothing matches. released filters by
// visibility only when non-nil.
func (s *Store) GetArticle(ref ArticleRef, render bool, released *bool) (*Article, error) {
	where, arg, err := ref.validate()
	if err != nil {
		return nil, err
	}
	args := []any{arg}
	if released != nil {
		where += " AND a.released = ?"
		args = append(args, boolToInt(*released))
	}

	var (
		a           Article
		releasedInt int
		titleLink   sql.NullString
		titleAlt    sql.NullString
	)
	err = s.db.QueryRow(`
		SELECT a.id, a.released, a.title_path, a.title, a.title_link, a.title_alt, a.date, a.body,
		       IFNULL(GROUP_CONCAT(t.tag, ', '), '') AS tag_list
		FROM articles a
		LEFT JOIN tag_map m ON m.article_id = a.id
		LEFT JOIN tags t ON t.id = m.tag_id
		WHERE `+where+`
		GROUP BY a.id`, args...).
		Scan(&a.ID, &releasedInt, &a.Slug, &a.Title, &titleLink, &titleAlt, &a.Date, &a.Body, &a.Tags)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get article: %w", err)
	}
	a.Released = releasedInt == 1
	a.TitleLink = titleLink.String
	a.TitleAlt = titleAlt.String
	a.DateText = FormatDate(a.Date)
	if a.Body, err = s.renderBody(a.Body, render); err != nil {
		return nil, err
	}
	return &a, nil
}

// GetArticles lists articles ordered by date descending. Column toggles keep
// listings cheap: the body and link columns are fetched only when asked for.
func (s *Store) GetArticles(q ArticleQuery) ([]Article, error) {
	byTag := q.Tag != ""
	tagList := q.TagList && !byTag

	cols := []string{"a.id", "a.released", "a.title_path", "a.title", "a.date"}
	if q.WithBody {
		cols = append(cols, "a.body")
	}
	if q.WithLinks {
		cols = append(cols, "a.title_link", "a.title_alt")
	}
	if tagList {
		cols = append(cols, "IFNULL(GROUP_CONCAT(t.tag, ', '), '') AS tag_list")
	}

	var b strings.Builder
	b.WriteString("SELECT " + strings.Join(cols, ", ") + " FROM articles a")
	if byTag || tagList {
		b.WriteString(" LEFT JOIN tag_map m ON m.article_id = a.id")
		b.WriteString(" LEFT JOIN tags t ON t.id = m.tag_id")
	}

	var conds []string
	var args []any
	if q.Released != nil {
		conds = append(conds, "a.released = ?")
		args = append(args, boolToInt(*q.Released))
	}
	if byTag {
		conds = append(conds, "t.tag = ?")
		args = append(args, q.Tag)
	}
	if len(conds) > 0 {
		b.WriteString(" WHERE " + strings.Join(conds, " AND "))
	}
	if tagList {
		b.WriteString(" GROUP BY a.id")
	}
	b.WriteString(" ORDER BY a.date DESC")

	limit := q.PageSize
	if limit <= 0 {
		limit = -1
	}
	b.WriteString(" LIMIT ? OFFSET ?")
	args = append(args, limit, q.Start)

	rows, err := s.db.Query(b.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	defer rows.Close()

	var articles []Article
	for rows.Next() {
		var (
			a           Article
			releasedInt int
			titleLink   sql.NullString
			titleAlt    sql.NullString
		)
		dest := []any{&a.ID, &releasedInt, &a.Slug, &a.Title, &a.Date}
		if q.WithBody {
			dest = append(dest, &a.Body)
		}
		if q.WithLinks {
			dest = append(dest, &titleLink, &titleAlt)
		}
		if tagList {
			dest = append(dest, &a.Tags)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		a.Released = releasedInt == 1
		a.TitleLink = titleLink.String
		a.TitleAlt = titleAlt.String
		a.DateText = FormatDate(a.Date)
		if q.WithBody {
			if a.Body, err = s.renderBody(a.Body, q.Render); err != nil {
				return nil, err
			}
		}
		articles = append(articles, a)
	}
	return articles, rows.Err()
}

// CountArticles returns the article count under the given filters and the
// number of pages it spans at pageSize articles per page, rounding up.
func (s *Store) CountArticles(pageSize int, released *bool, tag string) (count, pages int, err error) {
	if pageSize < 1 {
		return 0, 0, fmt.Errorf("%w: page size must be at least 1", ErrInvalidArgument)
	}

	var b strings.Builder
	b.WriteString("SELECT COUNT(a.id) FROM articles a")
	var conds []string
	var args []any
	if tag != "" {
		b.WriteString(" LEFT JOIN tag_map m ON m.article_id = a.id")
		b.WriteString(" LEFT JOIN tags t ON t.id = m.tag_id")
		conds = append(conds, "t.tag = ?")
		args = append(args, tag)
	}
	if released != nil {
		conds = append(conds, "a.released = ?")
		args = append(args, boolToInt(*released))
	}
	if len(conds) > 0 {
		b.WriteString(" WHERE " + strings.Join(conds, " AND "))
	}

	if err := s.db.QueryRow(b.String(), args...).Scan(&count); err != nil {
		return 0, 0, fmt.Errorf("count articles: %w", err)
	}
	pages = (count + pageSize - 1) / pageSize
	return count, pages, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
