package inkwell

import (
	"database/sql"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Sessions is the admission-control layer for the admin surface. Session
// state lives in the sessions table; the key a client holds is only a lookup
// handle. Expiry is sliding: every valid check refreshes the row's change
// timestamp.
type Sessions struct {
	store    *Store
	settings *Settings

	// now is swapped out in tests.
	now func() time.Time
}

// NewSessions creates the session manager on top of the given store and
// settings holder.
func NewSessions(store *Store, settings *Settings) *Sessions {
	return &Sessions{store: store, settings: settings, now: time.Now}
}

// Login verifies a username/password pair against the stored bcrypt hash.
// An unknown user or wrong password is (false, nil), not an error. Login does
// not create a session; the caller generates a key and calls Create.
func (m *Sessions) Login(username, password string) (bool, error) {
	var hash string
	err := m.store.db.QueryRow(
		`SELECT password FROM users WHERE username = ?`, username).Scan(&hash)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("look up user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return false, nil
	}
	return true, nil
}

// Create inserts a session row for username with the change timestamp set to
// now. If the username does not resolve to a user the insert matches zero
// rows and is a no-op.
func (m *Sessions) Create(username, key string) error {
	_, err := m.store.db.Exec(
		`INSERT INTO sessions (key, user, change)
		 SELECT ?, id, ? FROM users WHERE username = ?`,
		key, m.now().Unix(), username)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

// Check validates a (username, key) pair. valid is false when no session row
// matches the key or when the key belongs to a different user; that is a
// normal "not authorized" result, not an error. A valid but stale session is
// destroyed server-side and reported as (true, false). A valid, current
// session has its change timestamp refreshed and returns (true, true).
func (m *Sessions) Check(username, key string) (valid, current bool, err error) {
	var owner string
	var change int64
	err = m.store.db.QueryRow(
		`SELECT u.username, s.change
		 FROM sessions s JOIN users u ON u.id = s.user
		 WHERE s.key = ?`, key).Scan(&owner, &change)
	if err == sql.ErrNoRows {
		return false, false, nil
	}
	if err != nil {
		return false, false, fmt.Errorf("look up session: %w", err)
	}
	if owner != username {
		// Token/identity mismatch is rejected even though the key resolves.
		return false, false, nil
	}

	if m.now().Unix()-change > m.settings.SessionExpire() {
		if err := m.Destroy(username, key); err != nil {
			return true, false, err
		}
		return true, false, nil
	}

	if err := m.touch(username, key); err != nil {
		return true, true, err
	}
	return true, true, nil
}

// Destroy deletes the session matching both the key and the resolved user id.
// Scoping by user as well as key keeps one user from logging out another by
// guessing keys.
func (m *Sessions) Destroy(username, key string) error {
	_, err := m.store.db.Exec(
		`DELETE FROM sessions
		 WHERE key = ? AND user = (SELECT id FROM users WHERE username = ?)`,
		key, username)
	if err != nil {
		return fmt.Errorf("destroy session: %w", err)
	}
	return nil
}

// touch refreshes the change timestamp for a session known to be current.
func (m *Sessions) touch(username, key string) error {
	_, err := m.store.db.Exec(
		`UPDATE sessions SET change = ?
		 WHERE key = ? AND user = (SELECT id FROM users WHERE username = ?)`,
		m.now().Unix(), key, username)
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	return nil
}

// Prune deletes every session older than the prune-age threshold, row by
// row. Idempotent and safe to run alongside live traffic; a session pruned
// between checks just degrades to the not-authorized path.
func (m *Sessions) Prune() (int64, error) {
	res, err := m.store.db.Exec(
		`DELETE FROM sessions WHERE ? - change > ?`,
		m.now().Unix(), m.settings.SessionPruneAge())
	if err != nil {
		return 0, fmt.Errorf("prune sessions: %w", err)
	}
	return res.RowsAffected()
}
