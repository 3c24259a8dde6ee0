package inkwell

import (
	"errors"
	"testing"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hello World", "hello-world"},
		{"  Leading and trailing  ", "leading-and-trailing"},
		{"Multiple   spaces\there", "multiple-spaces-here"},
		{"Punctuation, everywhere!", "punctuation-everywhere"},
		{"already-a-slug", "already-a-slug"},
		{"under_score kept", "under_score-kept"},
		{"MiXeD CaSe", "mixed-case"},
		{"", ""},
		{"!!!", ""},
	}
	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSlugifyIdempotent(t *testing.T) {
	titles := []string{"Hello World", "A Third, Post?", "under_score kept"}
	for _, title := range titles {
		once := Slugify(title)
		if twice := Slugify(once); twice != once {
			t.Errorf("Slugify(Slugify(%q)) = %q, want %q", title, twice, once)
		}
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"2024-01-15", 1705276800},
		{"January 15, 2024", 1705276800},
		{"  2024-01-15  ", 1705276800},
	}
	for _, tt := range tests {
		got, err := ParseDate(tt.in)
		if err != nil {
			t.Errorf("ParseDate(%q) failed: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDate(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestParseDateRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "not a date", "15th of whenever"} {
		if _, err := ParseDate(in); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("ParseDate(%q): expected ErrInvalidArgument, got %v", in, err)
		}
	}
}

func TestFormatDate(t *testing.T) {
	if got := FormatDate(1705276800); got != "January 15, 2024" {
		t.Errorf("FormatDate = %q, want %q", got, "January 15, 2024")
	}
	if got := FormatDate(0); got != "" {
		t.Errorf("FormatDate(0) = %q, want empty", got)
	}
}

func TestSplitTags(t *testing.T) {
	got := SplitTags(" go , sqlite ,, web ")
	want := []string{"go", "sqlite", "web"}
	if len(got) != len(want) {
		t.Fatalf("SplitTags = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("SplitTags[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if got := SplitTags("  "); got != nil {
		t.Errorf("SplitTags(blank) = %v, want nil", got)
	}
}

func TestNewSessionKey(t *testing.T) {
	a, err := NewSessionKey()
	if err != nil {
		t.Fatalf("NewSessionKey failed: %v", err)
	}
	if len(a) != 64 {
		t.Errorf("key length = %d, want 64 hex chars", len(a))
	}
	b, err := NewSessionKey()
	if err != nil {
		t.Fatalf("NewSessionKey failed: %v", err)
	}
	if a == b {
		t.Error("two keys should not collide")
	}
}
