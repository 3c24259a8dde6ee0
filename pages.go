package inkwell

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// PageQuery controls GetPages. Released filters by visibility when non-nil.
// OnlyNav restricts the result to pages flagged for the header navigation.
type PageQuery struct {
	Released *bool
	WithBody bool
	OnlyNav  bool
	Render   bool
}

// CreatePage inserts a new page with the creation date set to now and
// returns its id.
func (s *Store) CreatePage(released bool, order int, title string, inNav bool, body string) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO pages (released, pg_order, title_path, title, create_date, incl_link, body)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		boolToInt(released), order, Slugify(title), title, time.Now().Unix(), boolToInt(inNav), body)
	if err != nil {
		return 0, fmt.Errorf("insert page: %w", err)
	}
	return res.LastInsertId()
}

// SavePage updates an existing page and stamps its edit date.
func (s *Store) SavePage(id int64, released bool, order int, title string, inNav bool, body string) error {
	_, err := s.db.Exec(
		`UPDATE pages
		 SET released = ?, pg_order = ?, title_path = ?, title = ?, edit_date = ?, incl_link = ?, body = ?
		 WHERE id = ?`,
		boolToInt(released), order, Slugify(title), title, time.Now().Unix(), boolToInt(inNav), body, id)
	if err != nil {
		return fmt.Errorf("update page: %w", err)
	}
	return nil
}

// DeletePage removes a page by id.
func (s *Store) DeletePage(id int64) error {
	_, err := s.db.Exec(`DELETE FROM pages WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete page: %w", err)
	}
	return nil
}

// GetPage returns one page by id or slug, or nil when nothing matches.
// released filters by visibility only when non-nil.
func (s *Store) GetPage(ref ArticleRef, render bool, released *bool) (*Page, error) {
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
		p           Page
		releasedInt int
		inNavInt    int
		edited      sql.NullInt64
	)
	err = s.db.QueryRow(`
		SELECT a.id, a.released, a.pg_order, a.title_path, a.title, a.create_date, a.edit_date, a.incl_link, a.body
		FROM pages a
		WHERE `+where, args...).
		Scan(&p.ID, &releasedInt, &p.Order, &p.Slug, &p.Title, &p.Created, &edited, &inNavInt, &p.Body)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get page: %w", err)
	}
	p.Released = releasedInt == 1
	p.InNav = inNavInt == 1
	p.Edited = edited.Int64
	p.CreatedText = FormatDate(p.Created)
	p.EditedText = FormatDate(p.Edited)
	if p.Body, err = s.renderBody(p.Body, render); err != nil {
		return nil, err
	}
	return &p, nil
}

// GetPages lists pages ordered by their manual navigation order, ascending.
func (s *Store) GetPages(q PageQuery) ([]Page, error) {
	cols := []string{"id", "released", "pg_order", "title_path", "title", "create_date", "edit_date", "incl_link"}
	if q.WithBody {
		cols = append(cols, "body")
	}

	var b strings.Builder
	b.WriteString("SELECT " + strings.Join(cols, ", ") + " FROM pages")

	var conds []string
	var args []any
	if q.Released != nil {
		conds = append(conds, "released = ?")
		args = append(args, boolToInt(*q.Released))
	}
	if q.OnlyNav {
		conds = append(conds, "incl_link = 1")
	}
	if len(conds) > 0 {
		b.WriteString(" WHERE " + strings.Join(conds, " AND "))
	}
	b.WriteString(" ORDER BY pg_order ASC")

	rows, err := s.db.Query(b.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}
	defer rows.Close()

	var pages []Page
	for rows.Next() {
		var (
			p           Page
			releasedInt int
			inNavInt    int
			edited      sql.NullInt64
		)
		dest := []any{&p.ID, &releasedInt, &p.Order, &p.Slug, &p.Title, &p.Created, &edited, &inNavInt}
		if q.WithBody {
			dest = append(dest, &p.Body)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		p.Released = releasedInt == 1
		p.InNav = inNavInt == 1
		p.Edited = edited.Int64
		p.CreatedText = FormatDate(p.Created)
		p.EditedText = FormatDate(p.Edited)
		if q.WithBody {
			if p.Body, err = s.renderBody(p.Body, q.Render); err != nil {
				return nil, err
			}
		}
		pages = append(pages, p)
	}
	return pages, rows.Err()
}
