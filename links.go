package inkwell

import (
	"database/sql"
	"fmt"
)

// AddSidebarLink stores a sidebar entry pointing at exactly one of an
// internal article (articleID > 0) or an external URL. Both or neither is an
// invalid-argument error; the schema CHECK backs the same rule up. Returns
// the new link id.
func (s *Store) AddSidebarLink(articleID int64, external, text, alt string) (int64, error) {
	hasArticle := articleID > 0
	hasExternal := external != ""
	switch {
	case hasArticle && hasExternal:
		return 0, fmt.Errorf("%w: specify either an article or an external link, not both", ErrInvalidArgument)
	case !hasArticle && !hasExternal:
		return 0, fmt.Errorf("%w: specify either an article or an external link", ErrInvalidArgument)
	}

	var articleCol, linkCol any
	if hasArticle {
		articleCol = articleID
	} else {
		linkCol = external
	}
	res, err := s.db.Exec(
		`INSERT INTO links (article_id, link, link_text, link_alt) VALUES (?, ?, ?, ?)`,
		articleCol, linkCol, text, alt)
	if err != nil {
		return 0, fmt.Errorf("insert sidebar link: %w", err)
	}
	return res.LastInsertId()
}

// DeleteSidebarLink removes a sidebar link by id.
func (s *Store) DeleteSidebarLink(id int64) error {
	_, err := s.db.Exec(`DELETE FROM links WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete sidebar link: %w", err)
	}
	return nil
}

// SidebarLinks returns all sidebar links. Internal links have their article
// title resolved through an outer join; external links carry an empty title.
func (s *Store) SidebarLinks() ([]SidebarLink, error) {
	rows, err := s.db.Query(`
		SELECT l.id, l.article_id, a.title, l.link, l.link_text, l.link_alt
		FROM links l
		LEFT JOIN articles a ON a.id = l.article_id`)
	if err != nil {
		return nil, fmt.Errorf("list sidebar links: %w", err)
	}
	defer rows.Close()

	var list []SidebarLink
	for rows.Next() {
		var (
			l         SidebarLink
			articleID sql.NullInt64
			title     sql.NullString
			external  sql.NullString
			text      sql.NullString
			alt       sql.NullString
		)
		if err := rows.Scan(&l.ID, &articleID, &title, &external, &text, &alt); err != nil {
			return nil, err
		}
		l.ArticleID = articleID.Int64
		l.ArticleTitle = title.String
		l.External = external.String
		l.Text = text.String
		l.Alt = alt.String
		list = append(list, l)
	}
	return list, rows.Err()
}
