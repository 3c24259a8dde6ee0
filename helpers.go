package inkwell

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
	"unicode"
)

// Slugify converts a title to a URL-safe slug: lower-cased, runs of
// whitespace collapsed to a single hyphen, everything outside [a-z0-9_-]
// dropped. Slugifying a slug returns it unchanged.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	inSpace := false
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			inSpace = true
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '-':
			if inSpace && b.Len() > 0 {
				b.WriteByte('-')
			}
			inSpace = false
			b.WriteRune(r)
		}
	}
	return b.String()
}

// dateLayouts are tried in order by ParseDate. The first few cover the admin
// form; the rest tolerate hand-typed dates.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04",
	time.RFC3339,
	"January 2, 2006",
	"Jan 2, 2006",
	"January 2 2006",
	"2 January 2006",
	"01/02/2006",
	"1/2/2006",
}

// ParseDate parses a user-supplied date string into a UNIX timestamp. An
// unrecognized string is an invalid-argument error, never a silent default.
func ParseDate(s string) (int64, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Unix(), nil
		}
	}
	return 0, fmt.Errorf("%w: unrecognized date %q", ErrInvalidArgument, s)
}

// FormatDate renders a UNIX timestamp in the site's display format.
// Zero timestamps (unset edit dates) render as the empty string.
func FormatDate(ts int64) string {
	if ts == 0 {
		return ""
	}
	return time.Unix(ts, 0).UTC().Format("January 2, 2006")
}

// SplitTags turns a comma-separated tag field into trimmed, non-empty names.
func SplitTags(csv string) []string {
	return FilterEmpty(strings.Split(csv, ","))
}

// FilterEmpty removes empty/whitespace-only strings from a slice, trimming
// the rest.
func FilterEmpty(vals []string) []string {
	var out []string
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// NewSessionKey returns a fresh 32-byte random session token, hex encoded.
// The key is opaque; all meaning lives in the sessions table.
func NewSessionKey() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate session key: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
