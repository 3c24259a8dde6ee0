package inkwell

import (
	"fmt"
	"log"
)

// SaveTags replaces the tag set for an article. tags may be a comma-separated
// string, a []string, or nil; empty names are dropped. Anything else is
// logged and left alone rather than failing the save, since losing a tag
// update is low-stakes. Tag values are inserted with insert-or-ignore
// semantics, so repeated saves never duplicate tag rows.
func (s *Store) SaveTags(articleID int64, tags any) error {
	var names []string
	switch v := tags.(type) {
	case nil:
	case string:
		names = SplitTags(v)
	case []string:
		names = FilterEmpty(v)
	default:
		log.Printf("inkwell: cannot read tags of type %T; leaving tags unchanged", tags)
		return nil
	}

	// Repeated names collapse: "a, b, a" associates exactly {a, b}.
	seen := make(map[string]struct{}, len(names))
	deduped := names[:0]
	for _, name := range names {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		deduped = append(deduped, name)
	}
	names = deduped

	// Full replace: the old associations go away no matter what follows.
	if _, err := s.db.Exec(`DELETE FROM tag_map WHERE article_id = ?`, articleID); err != nil {
		return fmt.Errorf("clear tag associations: %w", err)
	}
	if len(names) == 0 {
		return nil
	}

	for _, name := range names {
		if _, err := s.db.Exec(`INSERT OR IGNORE INTO tags (tag) VALUES (?)`, name); err != nil {
			return fmt.Errorf("insert tag %q: %w", name, err)
		}
		if _, err := s.db.Exec(
			`INSERT INTO tag_map (tag_id, article_id)
			 SELECT id, ? FROM tags WHERE tag = ?`, articleID, name); err != nil {
			return fmt.Errorf("map tag %q: %w", name, err)
		}
	}
	return nil
}

// AllTags returns tag values ordered by how many articles use them, most
// popular first. released restricts the usage count to released (or draft)
// articles when non-nil.
func (s *Store) AllTags(released *bool) ([]string, error) {
	query := `
		SELECT t.tag
		FROM tags t
		LEFT JOIN tag_map m ON m.tag_id = t.id
		LEFT JOIN articles a ON a.id = m.article_id`
	var args []any
	if released != nil {
		query += ` WHERE a.released = ?`
		args = append(args, boolToInt(*released))
	}
	query += ` GROUP BY t.id ORDER BY COUNT(m.article_id) DESC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// PruneTags deletes every tag with zero article associations and reports how
// many went away. Idempotent.
func (s *Store) PruneTags() (int64, error) {
	res, err := s.db.Exec(`
		DELETE FROM tags WHERE id IN (
			SELECT t.id
			FROM tags t
			LEFT JOIN tag_map m ON m.tag_id = t.id
			WHERE m.article_id IS NULL
		)`)
	if err != nil {
		return 0, fmt.Errorf("prune tags: %w", err)
	}
	return res.RowsAffected()
}
