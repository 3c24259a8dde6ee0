package inkwell

import (
	"errors"
	"testing"
)

func TestAddSidebarLinkRequiresExactlyOneTarget(t *testing.T) {
	s := setupStore(t)

	if _, err := s.AddSidebarLink(0, "", "text", ""); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("neither target: expected ErrInvalidArgument, got %v", err)
	}
	if _, err := s.AddSidebarLink(1, "https://example.com", "text", ""); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("both targets: expected ErrInvalidArgument, got %v", err)
	}
}

func TestAddExternalSidebarLink(t *testing.T) {
	s := setupStore(t)

	id, err := s.AddSidebarLink(0, "https://example.com", "Example", "a site")
	if err != nil {
		t.Fatalf("AddSidebarLink failed: %v", err)
	}
	if id == 0 {
		t.Fatal("expected a link id")
	}

	links, err := s.SidebarLinks()
	if err != nil {
		t.Fatalf("SidebarLinks failed: %v", err)
	}
	if len(links) != 1 {
		t.Fatalf("got %d links, want 1", len(links))
	}
	l := links[0]
	if l.External != "https://example.com" || l.Text != "Example" || l.Alt != "a site" {
		t.Errorf("unexpected link: %+v", l)
	}
	if l.ArticleID != 0 || l.ArticleTitle != "" {
		t.Errorf("external link should carry no article: %+v", l)
	}
}

func TestAddArticleSidebarLink(t *testing.T) {
	s := setupStore(t)

	articleID, err := s.CreateArticle(ArticleDraft{
		Title: "Pinned Post", Date: "2024-01-15", Body: "b", Released: true,
	})
	if err != nil {
		t.Fatalf("CreateArticle failed: %v", err)
	}

	if _, err := s.AddSidebarLink(articleID, "", "Read this", ""); err != nil {
		t.Fatalf("AddSidebarLink failed: %v", err)
	}

	links, err := s.SidebarLinks()
	if err != nil {
		t.Fatalf("SidebarLinks failed: %v", err)
	}
	if len(links) != 1 {
		t.Fatalf("got %d links, want 1", len(links))
	}
	l := links[0]
	if l.ArticleID != articleID || l.ArticleTitle != "Pinned Post" {
		t.Errorf("article link not resolved: %+v", l)
	}
	if l.External != "" {
		t.Errorf("article link should carry no external URL: %+v", l)
	}
}

func TestSidebarLinkOutlivesArticle(t *testing.T) {
	s := setupStore(t)

	articleID, err := s.CreateArticle(ArticleDraft{
		Title: "Short Lived", Date: "2024-01-15", Body: "b", Released: true,
	})
	if err != nil {
		t.Fatalf("CreateArticle failed: %v", err)
	}
	if _, err := s.AddSidebarLink(articleID, "", "stale", ""); err != nil {
		t.Fatalf("AddSidebarLink failed: %v", err)
	}
	if err := s.DeleteArticle(articleID); err != nil {
		t.Fatalf("DeleteArticle failed: %v", err)
	}

	links, err := s.SidebarLinks()
	if err != nil {
		t.Fatalf("SidebarLinks failed: %v", err)
	}
	if len(links) != 1 {
		t.Fatalf("got %d links, want 1", len(links))
	}
	if links[0].ArticleTitle != "" {
		t.Errorf("deleted article's title should resolve empty, got %q", links[0].ArticleTitle)
	}
}

func TestDeleteSidebarLink(t *testing.T) {
	s := setupStore(t)

	id, err := s.AddSidebarLink(0, "https://example.com", "Example", "")
	if err != nil {
		t.Fatalf("AddSidebarLink failed: %v", err)
	}
	if err := s.DeleteSidebarLink(id); err != nil {
		t.Fatalf("DeleteSidebarLink failed: %v", err)
	}
	links, err := s.SidebarLinks()
	if err != nil {
		t.Fatalf("SidebarLinks failed: %v", err)
	}
	if len(links) != 0 {
		t.Errorf("got %d links, want 0", len(links))
	}
}
