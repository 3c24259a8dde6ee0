package views

import (
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// Dashboard renders the admin home: released and draft articles plus every
// page, each row linking to its edit form.
func Dashboard(site Site, released, drafts []Article, pages []Page) templ.Component {
	return layout(site, "Admin", func(w io.Writer) error {
		io.WriteString(w, `<h2>Administration</h2>
<p><a href="/admin/article/create">New article</a> · <a href="/admin/page/create">New page</a> · <a href="/admin/links">Sidebar links</a> · <a href="/admin/images">Images</a> · <a href="/admin/config">Settings</a></p>`)

		writeArticleTable(w, "Released", released)
		writeArticleTable(w, "Drafts", drafts)

		io.WriteString(w, `<h3>Pages</h3><table><tr><th>Order</th><th>Title</th><th>Released</th><th>Nav</th><th></th></tr>`)
		for _, p := range pages {
			fmt.Fprintf(w, `<tr><td>%d</td><td><a href="/admin/page/edit/%d">%s</a></td><td>%t</td><td>%t</td><td><a href="/admin/page/delete/%d">delete</a></td></tr>`,
				p.Order, p.ID, esc(p.Title), p.Released, p.InNav, p.ID)
		}
		io.WriteString(w, `</table>`)
		return nil
	})
}

func writeArticleTable(w io.Writer, heading string, articles []Article) {
	fmt.Fprintf(w, `<h3>%s</h3><table><tr><th>Date</th><th>Title</th><th></th></tr>`, esc(heading))
	for _, a := range articles {
		fmt.Fprintf(w, `<tr><td>%s</td><td><a href="/admin/article/edit/%d">%s</a></td><td><a href="/admin/article/delete/%d">delete</a></td></tr>`,
			esc(a.Date), a.ID, esc(a.Title), a.ID)
	}
	io.WriteString(w, `</table>`)
}

// EditArticle renders the article create/edit form.
func EditArticle(site Site, a Article, create bool) templ.Component {
	title := "Edit article"
	action := fmt.Sprintf("/admin/article/edit/%d", a.ID)
	if create {
		title = "New article"
		action = "/admin/article/create"
	}
	return layout(site, title, func(w io.Writer) error {
		fmt.Fprintf(w, `<h2>%s</h2><form method="post" action="%s">`, esc(title), action)
		fmt.Fprintf(w, `<label>Title <input type="text" name="title" value="%s" required/></label>`, esc(a.Title))
		fmt.Fprintf(w, `<label>Title link <input type="text" name="title_link" value="%s"/></label>`, esc(a.Link))
		fmt.Fprintf(w, `<label>Link alt text <input type="text" name="title_alt" value="%s"/></label>`, esc(a.LinkAlt))
		fmt.Fprintf(w, `<label>Date <input type="text" name="date" value="%s"/></label>`, esc(a.RawDate))
		fmt.Fprintf(w, `<label>Tags <input type="text" name="tags" value="%s"/></label>`, esc(a.Tags))
		fmt.Fprintf(w, `<label>Released <input type="checkbox" name="released"%s/></label>`, checked(a.Released))
		fmt.Fprintf(w, `<textarea name="body" rows="20">%s</textarea>`, esc(a.Body))
		io.WriteString(w, `<button type="submit">Save</button> <button type="button" id="preview">Preview</button></form><div id="preview-target"></div>`)
		return nil
	})
}

// EditPage renders the page create/edit form.
func EditPage(site Site, p Page, create bool) templ.Component {
	title := "Edit page"
	action := fmt.Sprintf("/admin/page/edit/%d", p.ID)
	if create {
		title = "New page"
		action = "/admin/page/create"
	}
	return layout(site, title, func(w io.Writer) error {
		fmt.Fprintf(w, `<h2>%s</h2><form method="post" action="%s">`, esc(title), action)
		fmt.Fprintf(w, `<label>Title <input type="text" name="title" value="%s" required/></label>`, esc(p.Title))
		fmt.Fprintf(w, `<label>Order <input type="number" name="pg_order" value="%d"/></label>`, p.Order)
		fmt.Fprintf(w, `<label>Released <input type="checkbox" name="released"%s/></label>`, checked(p.Released))
		fmt.Fprintf(w, `<label>Show in navigation <input type="checkbox" name="incl_link"%s/></label>`, checked(p.InNav))
		fmt.Fprintf(w, `<textarea name="body" rows="20">%s</textarea>`, esc(p.Body))
		io.WriteString(w, `<button type="submit">Save</button></form>`)
		return nil
	})
}

// SettingsForm renders the runtime settings form, re-populated from values so
// a rejected save keeps the operator's input.
func SettingsForm(site Site, values map[string]string, errMsg string) templ.Component {
	return layout(site, "Settings", func(w io.Writer) error {
		io.WriteString(w, `<h2>Settings</h2>`)
		if errMsg != "" {
			fmt.Fprintf(w, `<p class="error">%s</p>`, esc(errMsg))
		}
		io.WriteString(w, `<form method="post" action="/admin/config">`)
		text := func(label, key string) {
			fmt.Fprintf(w, `<label>%s <input type="text" name="%s" value="%s"/></label>`,
				esc(label), key, esc(values[key]))
		}
		text("Main title", "main_title")
		text("Subtitle", "subtitle")
		text("Browser title", "browser_title")
		text("Footer text", "footer_text")
		text("Sidebar image", "image_location")
		text("Sidebar image alt", "image_alt")
		text("Page size", "page_size")
		text("Session expiry (seconds)", "session_expire")
		text("Session prune age (seconds)", "session_prune_age")
		io.WriteString(w, `<button type="submit">Save</button></form>`)
		return nil
	})
}

// LinksAdmin renders the sidebar link table and the add-link form.
func LinksAdmin(site Site, links []Link, articles []Article) templ.Component {
	return layout(site, "Sidebar links", func(w io.Writer) error {
		io.WriteString(w, `<h2>Sidebar links</h2><table><tr><th>Text</th><th>Target</th><th></th></tr>`)
		for _, l := range links {
			target := l.External
			if l.ArticleID > 0 {
				target = l.ArticleTitle
			}
			fmt.Fprintf(w, `<tr><td>%s</td><td>%s</td><td><a href="/admin/links/delete/%d">delete</a></td></tr>`,
				esc(l.Text), esc(target), l.ID)
		}
		io.WriteString(w, `</table><form method="post" action="/admin/links">
<label>Text <input type="text" name="link_text" required/></label>
<label>Alt <input type="text" name="link_alt"/></label>
<label>External URL <input type="text" name="external"/></label>
<label>Or article <select name="article_id"><option value="">(none)</option>`)
		for _, a := range articles {
			fmt.Fprintf(w, `<option value="%d">%s</option>`, a.ID, esc(a.Title))
		}
		io.WriteString(w, `</select></label><button type="submit">Add</button></form>`)
		return nil
	})
}

// ImagesAdmin renders the uploaded image list and the upload form.
func ImagesAdmin(site Site, images []Image) templ.Component {
	return layout(site, "Images", func(w io.Writer) error {
		io.WriteString(w, `<h2>Images</h2><table><tr><th>File</th><th>Dimensions</th><th>Size</th><th></th></tr>`)
		for _, img := range images {
			fmt.Fprintf(w, `<tr><td><a href="/img/uploads/%s">%s</a></td><td>%dx%d</td><td>%d</td><td><a href="/admin/images/delete/%s">delete</a></td></tr>`,
				esc(img.Filename), esc(img.Filename), img.Width, img.Height, img.Size, esc(img.Filename))
		}
		io.WriteString(w, `</table><form method="post" action="/admin/images" enctype="multipart/form-data">
<input type="file" name="image" accept="image/*" required/>
<button type="submit">Upload</button></form>`)
		return nil
	})
}

func checked(b bool) string {
	if b {
		return " checked"
	}
	return ""
}
