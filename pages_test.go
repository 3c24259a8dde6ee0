package inkwell

import (
	"errors"
	"testing"
)

func TestCreateAndGetPage(t *testing.T) {
	s := setupStore(t)

	id, err := s.CreatePage(true, 2, "About Me", true, "who I am")
	if err != nil {
		t.Fatalf("CreatePage failed: %v", err)
	}

	got, err := s.GetPage(ArticleRef{ID: id}, false, nil)
	if err != nil {
		t.Fatalf("GetPage failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected page, got nil")
	}
	if got.Title != "About Me" || got.Slug != "about-me" || got.Order != 2 || !got.InNav {
		t.Errorf("unexpected page: %+v", got)
	}
	if got.Created == 0 {
		t.Error("Created should be stamped")
	}
	if got.Edited != 0 || got.EditedText != "" {
		t.Errorf("fresh page should have no edit date, got %d %q", got.Edited, got.EditedText)
	}

	bySlug, err := s.GetPage(ArticleRef{Slug: "about-me"}, false, nil)
	if err != nil {
		t.Fatalf("GetPage by slug failed: %v", err)
	}
	if bySlug == nil || bySlug.ID != id {
		t.Fatalf("slug lookup returned %+v, want id %d", bySlug, id)
	}
}

func TestGetPageNotFoundAndValidation(t *testing.T) {
	s := setupStore(t)

	got, err := s.GetPage(ArticleRef{ID: 999}, false, nil)
	if err != nil {
		t.Fatalf("GetPage failed: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for missing page, got %+v", got)
	}
	if _, err := s.GetPage(ArticleRef{}, false, nil); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("empty ref: expected ErrInvalidArgument, got %v", err)
	}
}

func TestSavePageStampsEditDate(t *testing.T) {
	s := setupStore(t)

	id, err := s.CreatePage(false, 1, "Draft Page", false, "v1")
	if err != nil {
		t.Fatalf("CreatePage failed: %v", err)
	}

	if err := s.SavePage(id, true, 3, "Edited Page", true, "v2"); err != nil {
		t.Fatalf("SavePage failed: %v", err)
	}

	got, err := s.GetPage(ArticleRef{ID: id}, false, nil)
	if err != nil {
		t.Fatalf("GetPage failed: %v", err)
	}
	if got.Title != "Edited Page" || got.Slug != "edited-page" || got.Body != "v2" || !got.Released {
		t.Errorf("unexpected page after save: %+v", got)
	}
	if got.Edited == 0 {
		t.Error("Edited should be stamped after save")
	}
}

func TestDeletePage(t *testing.T) {
	s := setupStore(t)

	id, err := s.CreatePage(true, 1, "Doomed", false, "b")
	if err != nil {
		t.Fatalf("CreatePage failed: %v", err)
	}
	if err := s.DeletePage(id); err != nil {
		t.Fatalf("DeletePage failed: %v", err)
	}
	got, err := s.GetPage(ArticleRef{ID: id}, false, nil)
	if err != nil {
		t.Fatalf("GetPage failed: %v", err)
	}
	if got != nil {
		t.Fatal("page should be gone")
	}
}

func TestGetPagesOrderAndFilters(t *testing.T) {
	s := setupStore(t)

	if _, err := s.CreatePage(true, 3, "Third", true, "b"); err != nil {
		t.Fatalf("CreatePage failed: %v", err)
	}
	if _, err := s.CreatePage(true, 1, "First", true, "b"); err != nil {
		t.Fatalf("CreatePage failed: %v", err)
	}
	if _, err := s.CreatePage(true, 2, "Second", false, "b"); err != nil {
		t.Fatalf("CreatePage failed: %v", err)
	}
	if _, err := s.CreatePage(false, 0, "Hidden", true, "b"); err != nil {
		t.Fatalf("CreatePage failed: %v", err)
	}

	pages, err := s.GetPages(PageQuery{Released: boolPtr(true)})
	if err != nil {
		t.Fatalf("GetPages failed: %v", err)
	}
	if len(pages) != 3 {
		t.Fatalf("got %d pages, want 3", len(pages))
	}
	if pages[0].Title != "First" || pages[1].Title != "Second" || pages[2].Title != "Third" {
		t.Errorf("wrong order: %q %q %q", pages[0].Title, pages[1].Title, pages[2].Title)
	}
	if pages[0].Body != "" {
		t.Error("listing should not carry bodies unless asked")
	}

	nav, err := s.GetPages(PageQuery{Released: boolPtr(true), OnlyNav: true})
	if err != nil {
		t.Fatalf("GetPages failed: %v", err)
	}
	if len(nav) != 2 {
		t.Fatalf("got %d nav pages, want 2", len(nav))
	}
	for _, p := range nav {
		if !p.InNav {
			t.Errorf("non-nav page %q in nav listing", p.Title)
		}
	}

	withBody, err := s.GetPages(PageQuery{WithBody: true})
	if err != nil {
		t.Fatalf("GetPages failed: %v", err)
	}
	if withBody[0].Body != "b" {
		t.Errorf("Body = %q, want %q", withBody[0].Body, "b")
	}
}
