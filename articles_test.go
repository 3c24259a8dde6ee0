package inkwell

import (
	"errors"
	"testing"
)

func TestCreateAndGetArticle(t *testing.T) {
	s := setupStore(t)

	id, err := s.CreateArticle(ArticleDraft{
		Title:     "My First Post",
		TitleLink: "https://example.com",
		TitleAlt:  "external",
		Date:      "2024-01-15",
		Body:      "hello world",
		Released:  true,
		TagCSV:    "go, sqlite",
	})
	if err != nil {
		t.Fatalf("CreateArticle failed: %v", err)
	}

	got, err := s.GetArticle(ArticleRef{ID: id}, false, nil)
	if err != nil {
		t.Fatalf("GetArticle failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected article, got nil")
	}
	if got.Title != "My First Post" {
		t.Errorf("Title = %q, want %q", got.Title, "My First Post")
	}
	if got.Slug != "my-first-post" {
		t.Errorf("Slug = %q, want %q", got.Slug, "my-first-post")
	}
	if got.TitleLink != "https://example.com" {
		t.Errorf("TitleLink = %q", got.TitleLink)
	}
	if !got.Released {
		t.Error("Released should be true")
	}
	if got.DateText != "January 15, 2024" {
		t.Errorf("DateText = %q", got.DateText)
	}
	if got.Tags != "go, sqlite" && got.Tags != "sqlite, go" {
		t.Errorf("Tags = %q, want both tags joined", got.Tags)
	}

	bySlug, err := s.GetArticle(ArticleRef{Slug: "my-first-post"}, false, nil)
	if err != nil {
		t.Fatalf("GetArticle by slug failed: %v", err)
	}
	if bySlug == nil || bySlug.ID != id {
		t.Fatalf("slug lookup returned %+v, want id %d", bySlug, id)
	}
}

func TestGetArticleNotFound(t *testing.T) {
	s := setupStore(t)

	got, err := s.GetArticle(ArticleRef{ID: 999}, false, nil)
	if err != nil {
		t.Fatalf("GetArticle failed: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for missing article, got %+v", got)
	}
}

func TestArticleRefValidation(t *testing.T) {
	s := setupStore(t)

	if _, err := s.GetArticle(ArticleRef{}, false, nil); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("empty ref: expected ErrInvalidArgument, got %v", err)
	}
	if _, err := s.GetArticle(ArticleRef{ID: 1, Slug: "x"}, false, nil); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("both keys: expected ErrInvalidArgument, got %v", err)
	}
}

func TestGetArticleReleasedFilter(t *testing.T) {
	s := setupStore(t)

	id, err := s.CreateArticle(ArticleDraft{Title: "Draft", Date: "2024-01-15", Body: "b"})
	if err != nil {
		t.Fatalf("CreateArticle failed: %v", err)
	}

	got, err := s.GetArticle(ArticleRef{ID: id}, false, boolPtr(true))
	if err != nil {
		t.Fatalf("GetArticle failed: %v", err)
	}
	if got != nil {
		t.Fatal("draft should be invisible through the released filter")
	}

	got, err = s.GetArticle(ArticleRef{ID: id}, false, boolPtr(false))
	if err != nil {
		t.Fatalf("GetArticle failed: %v", err)
	}
	if got == nil {
		t.Fatal("draft should be visible through the draft filter")
	}
}

func TestSaveArticle(t *testing.T) {
	s := setupStore(t)

	id, err := s.CreateArticle(ArticleDraft{
		Title: "Before", Date: "2024-01-15", Body: "old", Released: false, TagCSV: "one",
	})
	if err != nil {
		t.Fatalf("CreateArticle failed: %v", err)
	}

	err = s.SaveArticle(id, ArticleDraft{
		Title: "After Edit", Date: "2024-02-01", Body: "new", Released: true, TagCSV: "two, three",
	})
	if err != nil {
		t.Fatalf("SaveArticle failed: %v", err)
	}

	got, err := s.GetArticle(ArticleRef{ID: id}, false, nil)
	if err != nil {
		t.Fatalf("GetArticle failed: %v", err)
	}
	if got.Title != "After Edit" || got.Slug != "after-edit" || got.Body != "new" || !got.Released {
		t.Errorf("unexpected article after save: %+v", got)
	}

	// The tag row for "one" persists until pruned; its association must be gone.
	articles, err := s.GetArticles(ArticleQuery{Tag: "one"})
	if err != nil {
		t.Fatalf("GetArticles failed: %v", err)
	}
	if len(articles) != 0 {
		t.Errorf("replaced tag still associated: %+v", articles)
	}
}

func TestDeleteArticle(t *testing.T) {
	s := setupStore(t)

	id, err := s.CreateArticle(ArticleDraft{
		Title: "Doomed", Date: "2024-01-15", Body: "b", TagCSV: "gone",
	})
	if err != nil {
		t.Fatalf("CreateArticle failed: %v", err)
	}

	if err := s.DeleteArticle(id); err != nil {
		t.Fatalf("DeleteArticle failed: %v", err)
	}

	got, err := s.GetArticle(ArticleRef{ID: id}, false, nil)
	if err != nil {
		t.Fatalf("GetArticle failed: %v", err)
	}
	if got != nil {
		t.Fatal("article should be gone")
	}

	// Associations went with it, so the tag is now prunable.
	pruned, err := s.PruneTags()
	if err != nil {
		t.Fatalf("PruneTags failed: %v", err)
	}
	if pruned != 1 {
		t.Errorf("pruned = %d, want 1", pruned)
	}
}

func TestGetArticlesOrderAndWindow(t *testing.T) {
	s := setupStore(t)

	for _, d := range []struct {
		title, date string
	}{
		{"Oldest", "2024-01-01"},
		{"Middle", "2024-02-01"},
		{"Newest", "2024-03-01"},
	} {
		if _, err := s.CreateArticle(ArticleDraft{Title: d.title, Date: d.date, Body: "b", Released: true}); err != nil {
			t.Fatalf("CreateArticle failed: %v", err)
		}
	}

	articles, err := s.GetArticles(ArticleQuery{Released: boolPtr(true)})
	if err != nil {
		t.Fatalf("GetArticles failed: %v", err)
	}
	if len(articles) != 3 {
		t.Fatalf("got %d articles, want 3", len(articles))
	}
	if articles[0].Title != "Newest" || articles[2].Title != "Oldest" {
		t.Errorf("wrong order: %q .. %q", articles[0].Title, articles[2].Title)
	}

	window, err := s.GetArticles(ArticleQuery{Start: 1, PageSize: 1, Released: boolPtr(true)})
	if err != nil {
		t.Fatalf("GetArticles failed: %v", err)
	}
	if len(window) != 1 || window[0].Title != "Middle" {
		t.Errorf("window = %+v, want just Middle", window)
	}
}

func TestGetArticlesColumnToggles(t *testing.T) {
	s := setupStore(t)

	if _, err := s.CreateArticle(ArticleDraft{
		Title: "Toggled", TitleLink: "https://example.com", Date: "2024-01-15",
		Body: "heavy body", Released: true, TagCSV: "go",
	}); err != nil {
		t.Fatalf("CreateArticle failed: %v", err)
	}

	slim, err := s.GetArticles(ArticleQuery{})
	if err != nil {
		t.Fatalf("GetArticles failed: %v", err)
	}
	if slim[0].Body != "" || slim[0].TitleLink != "" || slim[0].Tags != "" {
		t.Errorf("slim listing carried heavy columns: %+v", slim[0])
	}

	full, err := s.GetArticles(ArticleQuery{WithBody: true, WithLinks: true, TagList: true})
	if err != nil {
		t.Fatalf("GetArticles failed: %v", err)
	}
	if full[0].Body != "heavy body" || full[0].TitleLink != "https://example.com" || full[0].Tags != "go" {
		t.Errorf("full listing missing columns: %+v", full[0])
	}
}

func TestGetArticlesByTag(t *testing.T) {
	s := setupStore(t)

	if _, err := s.CreateArticle(ArticleDraft{Title: "Tagged", Date: "2024-01-15", Body: "b", Released: true, TagCSV: "go"}); err != nil {
		t.Fatalf("CreateArticle failed: %v", err)
	}
	if _, err := s.CreateArticle(ArticleDraft{Title: "Other", Date: "2024-01-16", Body: "b", Released: true, TagCSV: "web"}); err != nil {
		t.Fatalf("CreateArticle failed: %v", err)
	}

	articles, err := s.GetArticles(ArticleQuery{Tag: "go", Released: boolPtr(true)})
	if err != nil {
		t.Fatalf("GetArticles failed: %v", err)
	}
	if len(articles) != 1 || articles[0].Title != "Tagged" {
		t.Errorf("tag filter = %+v, want just Tagged", articles)
	}

	// Tag wins over TagList when both are set.
	articles, err = s.GetArticles(ArticleQuery{Tag: "go", TagList: true})
	if err != nil {
		t.Fatalf("GetArticles failed: %v", err)
	}
	if len(articles) != 1 {
		t.Errorf("tag+taglist = %d rows, want 1", len(articles))
	}
}

func TestCountArticles(t *testing.T) {
	s := setupStore(t)

	for i := 0; i < 25; i++ {
		if _, err := s.CreateArticle(ArticleDraft{Title: "n", Date: "2024-01-15", Body: "b", Released: true}); err != nil {
			t.Fatalf("CreateArticle failed: %v", err)
		}
	}

	count, pages, err := s.CountArticles(10, boolPtr(true), "")
	if err != nil {
		t.Fatalf("CountArticles failed: %v", err)
	}
	if count != 25 || pages != 3 {
		t.Errorf("count=%d pages=%d, want 25 and 3", count, pages)
	}

	count, pages, err = s.CountArticles(25, boolPtr(true), "")
	if err != nil {
		t.Fatalf("CountArticles failed: %v", err)
	}
	if count != 25 || pages != 1 {
		t.Errorf("count=%d pages=%d, want 25 and 1", count, pages)
	}

	if _, _, err := s.CountArticles(0, nil, ""); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("page size 0: expected ErrInvalidArgument, got %v", err)
	}
}
