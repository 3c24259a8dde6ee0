// Package views renders the site's HTML as templ components built in plain
// Go. Bodies arrive pre-rendered from the markdown package; everything else
// is escaped here.
package views

import (
	"context"
	"fmt"
	"html"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

func esc(s string) string { return html.EscapeString(s) }

// component adapts a writer function into a templ.Component.
func component(fn func(w io.Writer) error) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return fn(w)
	})
}

// layout frames content with the header, navigation, and sidebar chrome.
func layout(site Site, pageTitle string, content func(w io.Writer) error) templ.Component {
	return component(func(w io.Writer) error {
		title := site.BrowserTitle
		if pageTitle != "" {
			title = pageTitle + " | " + site.BrowserTitle
		}
		fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="en"><head><meta charset="utf-8"/>
<meta name="viewport" content="width=device-width, initial-scale=1"/>
<title>%s</title>
<link rel="stylesheet" href="/css/site.css"/>
<link rel="alternate" type="application/rss+xml" href="/feed.xml"/>
</head><body>`, esc(title))

		fmt.Fprintf(w, `<header><h1><a href="/">%s</a></h1>`, esc(site.Title))
		if site.Subtitle != "" {
			fmt.Fprintf(w, `<p class="subtitle">%s</p>`, esc(site.Subtitle))
		}
		io.WriteString(w, `<nav><a href="/">Home</a><a href="/articles">Archive</a>`)
		for _, p := range site.NavPages {
			fmt.Fprintf(w, `<a href="/page/%s">%s</a>`, esc(p.Slug), esc(p.Title))
		}
		if site.Admin {
			io.WriteString(w, `<a href="/admin/">Admin</a><a href="/logout">Log out</a>`)
		}
		io.WriteString(w, `</nav></header>`)

		io.WriteString(w, `<aside>`)
		if site.SidebarImage != "" {
			fmt.Fprintf(w, `<img src="%s" alt="%s"/>`, esc(site.SidebarImage), esc(site.SidebarAlt))
		}
		if len(site.Sidebar) > 0 {
			io.WriteString(w, `<ul class="sidebar-links">`)
			for _, l := range site.Sidebar {
				fmt.Fprintf(w, `<li><a href="%s" title="%s">%s</a></li>`, esc(l.Href), esc(l.Alt), esc(l.Text))
			}
			io.WriteString(w, `</ul>`)
		}
		io.WriteString(w, `</aside><main>`)

		if err := content(w); err != nil {
			return err
		}

		fmt.Fprintf(w, `</main><footer>%s</footer></body></html>`, site.FooterText)
		return nil
	})
}

func writeArticle(w io.Writer, a Article, full bool) {
	io.WriteString(w, `<article>`)
	if a.Link != "" {
		fmt.Fprintf(w, `<h2><a href="%s" title="%s">%s</a></h2>`, esc(a.Link), esc(a.LinkAlt), esc(a.Title))
	} else {
		fmt.Fprintf(w, `<h2><a href="/post/%s">%s</a></h2>`, esc(a.Slug), esc(a.Title))
	}
	fmt.Fprintf(w, `<p class="meta">%s`, esc(a.Date))
	if a.Tags != "" {
		fmt.Fprintf(w, ` · %s`, esc(a.Tags))
	}
	io.WriteString(w, `</p>`)
	if full {
		// Body is trusted output of the markdown renderer.
		io.WriteString(w, a.Body)
	}
	io.WriteString(w, `</article>`)
}

func writePagination(w io.Writer, base string, current, total int) {
	if total <= 1 {
		return
	}
	io.WriteString(w, `<nav class="pagination">`)
	for i := 1; i <= total; i++ {
		if i == current {
			fmt.Fprintf(w, `<span>%d</span>`, i)
		} else {
			fmt.Fprintf(w, `<a href="%s%d">%d</a>`, base, i, i)
		}
	}
	io.WriteString(w, `</nav>`)
}

// ArticleStream renders one or more full articles, with pagination and the
// tag cloud when present. Used by the home page, single-article view, and
// tag listings alike.
func ArticleStream(site Site, pageTitle string, articles []Article, tags []string, pageBase string, pageNum, pageCount int) templ.Component {
	return layout(site, pageTitle, func(w io.Writer) error {
		if len(articles) == 0 {
			io.WriteString(w, `<p>Nothing here yet.</p>`)
		}
		for _, a := range articles {
			writeArticle(w, a, true)
		}
		if len(tags) > 0 {
			io.WriteString(w, `<div class="tags">`)
			for _, t := range tags {
				fmt.Fprintf(w, `<a href="/tag/%s">%s</a> `, esc(t), esc(t))
			}
			io.WriteString(w, `</div>`)
		}
		writePagination(w, pageBase, pageNum, pageCount)
		return nil
	})
}

// StaticPage renders a single static page.
func StaticPage(site Site, p Page) templ.Component {
	return layout(site, p.Title, func(w io.Writer) error {
		fmt.Fprintf(w, `<article><h2>%s</h2>`, esc(p.Title))
		io.WriteString(w, p.Body)
		io.WriteString(w, `</article>`)
		return nil
	})
}

// Archive renders the full article index plus the tag cloud.
func Archive(site Site, articles []Article, tags []string) templ.Component {
	return layout(site, "Articles", func(w io.Writer) error {
		io.WriteString(w, `<h2>All articles</h2><ul class="archive">`)
		for _, a := range articles {
			fmt.Fprintf(w, `<li><a href="/post/%s">%s</a> <span class="meta">%s</span></li>`,
				esc(a.Slug), esc(a.Title), esc(a.Date))
		}
		io.WriteString(w, `</ul>`)
		if len(tags) > 0 {
			io.WriteString(w, `<div class="tags">`)
			for _, t := range tags {
				fmt.Fprintf(w, `<a href="/tag/%s">%s</a> `, esc(t), esc(t))
			}
			io.WriteString(w, `</div>`)
		}
		return nil
	})
}

// Login renders the login form, optionally with an error banner.
func Login(site Site, errMsg string) templ.Component {
	return layout(site, "Log in", func(w io.Writer) error {
		if errMsg != "" {
			fmt.Fprintf(w, `<p class="error">%s</p>`, esc(errMsg))
		}
		io.WriteString(w, `<form method="post" action="/login">
<label>Username <input type="text" name="username" required/></label>
<label>Password <input type="password" name="password" required/></label>
<button type="submit">Log in</button>
</form>`)
		return nil
	})
}

// Error renders a bare error page for the given status code.
func Error(site Site, code int, message string) templ.Component {
	return layout(site, strconv.Itoa(code), func(w io.Writer) error {
		fmt.Fprintf(w, `<h2>%d</h2><p>%s</p>`, code, esc(message))
		return nil
	})
}
