package views

import (
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"
)

func renderToString(t *testing.T, cmp templ.Component) string {
	t.Helper()
	var b strings.Builder
	if err := cmp.Render(context.Background(), &b); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	return b.String()
}

func testSite() Site {
	return Site{
		Title:        "My Blog",
		BrowserTitle: "My Blog",
		NavPages:     []NavPage{{Title: "About", Slug: "about"}},
		Sidebar:      []SidebarItem{{Text: "Example", Href: "https://example.com"}},
	}
}

func TestLayoutChrome(t *testing.T) {
	out := renderToString(t, ArticleStream(testSite(), "", nil, nil, "/", 1, 1))

	for _, want := range []string{
		"<title>My Blog</title>",
		`<a href="/">My Blog</a>`,
		`<a href="/page/about">About</a>`,
		`<a href="https://example.com"`,
		"Nothing here yet.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if strings.Contains(out, "/admin/") {
		t.Error("admin links should not show for anonymous viewers")
	}
}

func TestLayoutAdminLinks(t *testing.T) {
	site := testSite()
	site.Admin = true
	out := renderToString(t, ArticleStream(site, "", nil, nil, "/", 1, 1))
	if !strings.Contains(out, `<a href="/admin/">Admin</a>`) {
		t.Error("admin nav link missing for admin viewer")
	}
}

func TestLayoutEscapesTitles(t *testing.T) {
	site := testSite()
	site.Title = `<script>`
	out := renderToString(t, ArticleStream(site, "", nil, nil, "/", 1, 1))
	if strings.Contains(out, "<script>") {
		t.Error("site title was not escaped")
	}
}

func TestArticleBodyIsNotEscaped(t *testing.T) {
	articles := []Article{{
		Title: "Post", Slug: "post", Date: "January 15, 2024",
		Body: "<p>rendered <strong>html</strong></p>",
	}}
	out := renderToString(t, ArticleStream(testSite(), "", articles, nil, "/", 1, 1))
	if !strings.Contains(out, "<p>rendered <strong>html</strong></p>") {
		t.Error("pre-rendered body should pass through unescaped")
	}
}

func TestArticleTitleLink(t *testing.T) {
	articles := []Article{{
		Title: "Elsewhere", Slug: "elsewhere", Link: "https://example.com/x",
	}}
	out := renderToString(t, ArticleStream(testSite(), "", articles, nil, "/", 1, 1))
	if !strings.Contains(out, `<a href="https://example.com/x"`) {
		t.Error("title link should point at the external URL")
	}
	if strings.Contains(out, `/post/elsewhere`) {
		t.Error("linked titles should not also link to the local article")
	}
}

func TestPagination(t *testing.T) {
	out := renderToString(t, ArticleStream(testSite(), "", nil, nil, "/", 2, 3))
	for _, want := range []string{`<a href="/1">1</a>`, "<span>2</span>", `<a href="/3">3</a>`} {
		if !strings.Contains(out, want) {
			t.Errorf("pagination missing %q", want)
		}
	}

	single := renderToString(t, ArticleStream(testSite(), "", nil, nil, "/", 1, 1))
	if strings.Contains(single, "pagination") {
		t.Error("single-page streams should not paginate")
	}
}

func TestLoginErrorBanner(t *testing.T) {
	out := renderToString(t, Login(testSite(), "bad credentials"))
	if !strings.Contains(out, "bad credentials") {
		t.Error("error banner missing")
	}

	clean := renderToString(t, Login(testSite(), ""))
	if strings.Contains(clean, "class=\"error\"") {
		t.Error("no banner expected without an error")
	}
}

func TestErrorPage(t *testing.T) {
	out := renderToString(t, Error(testSite(), 404, "There is nothing here."))
	if !strings.Contains(out, "<h2>404</h2>") || !strings.Contains(out, "There is nothing here.") {
		t.Errorf("unexpected error page: %q", out)
	}
}

func TestSettingsFormKeepsValues(t *testing.T) {
	values := map[string]string{"main_title": "Kept", "page_size": "7"}
	out := renderToString(t, SettingsForm(testSite(), values, "invalid page_size"))
	for _, want := range []string{`value="Kept"`, `value="7"`, "invalid page_size"} {
		if !strings.Contains(out, want) {
			t.Errorf("settings form missing %q", want)
		}
	}
}
