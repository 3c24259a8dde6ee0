package inkwell

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// RenderFunc converts raw markdown body text to HTML. The store treats it as
// an opaque collaborator; a failure propagates wrapped in ErrRender.
type RenderFunc func(string) (string, error)

// Store wraps the SQLite database and provides all content, session, and
// configuration operations.
type Store struct {
	db     *sql.DB
	render RenderFunc
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and creates any missing tables and indexes. render may be
// nil, in which case bodies are returned as raw markdown.
func NewStore(path string, render RenderFunc) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL lets readers proceed during writes; the busy timeout makes writers
	// wait instead of returning SQLITE_BUSY. synchronous=NORMAL is safe
	// under WAL and avoids an fsync per transaction.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)

	if render == nil {
		render = func(s string) (string, error) { return s, nil }
	}
	s := &Store{db: db, render: render}
	if err := s.ensureSchema(); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS users (
    id INTEGER PRIMARY KEY,
    username TEXT NOT NULL UNIQUE,
    password TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS articles (
    id INTEGER PRIMARY KEY,
    released INTEGER NOT NULL DEFAULT 0,
    title_path TEXT NOT NULL,
    title TEXT NOT NULL,
    title_link TEXT,
    title_alt TEXT,
    date INTEGER NOT NULL,
    body TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_articles_released ON articles(released);
CREATE INDEX IF NOT EXISTS idx_articles_title_path ON articles(title_path);
CREATE INDEX IF NOT EXISTS idx_articles_date ON articles(date);

CREATE TABLE IF NOT EXISTS pages (
    id INTEGER PRIMARY KEY,
    released INTEGER NOT NULL DEFAULT 0,
    pg_order INTEGER NOT NULL DEFAULT 0,
    title_path TEXT NOT NULL,
    title TEXT NOT NULL,
    create_date INTEGER NOT NULL,
    edit_date INTEGER,
    incl_link INTEGER NOT NULL DEFAULT 0,
    body TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_pages_released ON pages(released);
CREATE INDEX IF NOT EXISTS idx_pages_incl_link ON pages(incl_link);
CREATE INDEX IF NOT EXISTS idx_pages_pg_order ON pages(pg_order);
CREATE INDEX IF NOT EXISTS idx_pages_title_path ON pages(title_path);

CREATE TABLE IF NOT EXISTS tags (
    id INTEGER PRIMARY KEY,
    tag TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS tag_map (
    tag_id INTEGER NOT NULL REFERENCES tags(id),
    article_id INTEGER NOT NULL REFERENCES articles(id)
);
CREATE INDEX IF NOT EXISTS idx_tag_map_article ON tag_map(article_id);

CREATE TABLE IF NOT EXISTS sessions (
    key TEXT PRIMARY KEY,
    user INTEGER NOT NULL REFERENCES users(id),
    change INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS links (
    id INTEGER PRIMARY KEY,
    article_id INTEGER REFERENCES articles(id),
    link TEXT,
    link_text TEXT,
    link_alt TEXT,
    CHECK ((article_id IS NULL) <> (link IS NULL))
);

CREATE TABLE IF NOT EXISTS configuration (
    id INTEGER PRIMARY KEY,
    key_name TEXT NOT NULL UNIQUE,
    value TEXT,
    "default" TEXT
);
`)
	if err != nil {
		return err
	}
	return s.seedSettings()
}

// renderBody applies the markdown collaborator when requested.
func (s *Store) renderBody(body string, render bool) (string, error) {
	if !render {
		return body, nil
	}
	out, err := s.render(body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRender, err)
	}
	return out, nil
}

// CreateUser inserts a user row with an already-hashed password. Users are
// provisioned out of band (the useradd subcommand); there is no HTTP surface
// for this.
func (s *Store) CreateUser(username, passwordHash string) error {
	_, err := s.db.Exec(`INSERT INTO users (username, password) VALUES (?, ?)`,
		username, passwordHash)
	return err
}
