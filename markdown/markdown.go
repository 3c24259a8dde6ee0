// Package markdown converts article and page bodies from Markdown to HTML.
// It is a small hand-rolled renderer covering the subset the blog uses:
// headings, paragraphs, lists, block quotes, fenced code, tables, and the
// usual inline formatting. Everything is HTML-escaped first; only vetted
// URL schemes survive into href/src attributes.
package markdown

import (
	"bytes"
	"context"
	"html"
	"io"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/a-h/templ"
)

var (
	reBold             = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reBoldUnderscore   = regexp.MustCompile(`__(.+?)__`)
	reItalic           = regexp.MustCompile(`\*([^*]+)\*`)
	reItalicUnderscore = regexp.MustCompile(`_([^_]+)_`)
	reInlineCode       = regexp.MustCompile("`([^`]+)`")
	reLink             = regexp.MustCompile(`\[(.*?)\]\((.*?)\)`)
	reImage            = regexp.MustCompile(`\!\[(.*?)\]\((.*?)\)`)
	reOrderedItem      = regexp.MustCompile(`^(\d+)\.\s`)
)

// HTML renders md to an HTML fragment.
func HTML(md string) string {
	var buf bytes.Buffer
	render(&buf, md)
	return buf.String()
}

// Component wraps HTML as a templ component for direct use in views.
func Component(md string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, HTML(md))
		return err
	})
}

type blockState struct {
	buf       *bytes.Buffer
	paragraph bool
	list      bool
	ordered   bool
	quote     bool
	table     bool
	tableBody bool
}

func (b *blockState) closeAll() {
	if b.paragraph {
		b.buf.WriteString("</p>")
		b.paragraph = false
	}
	if b.list {
		b.buf.WriteString("</ul>")
		b.list = false
	}
	if b.ordered {
		b.buf.WriteString("</ol>")
		b.ordered = false
	}
	if b.quote {
		b.buf.WriteString("</blockquote>")
		b.quote = false
	}
	if b.table {
		if b.tableBody {
			b.buf.WriteString("</tbody>")
		}
		b.buf.WriteString("</table>")
		b.table = false
		b.tableBody = false
	}
}

func render(buf *bytes.Buffer, md string) {
	st := &blockState{buf: buf}
	inCode := false

	for _, raw := range strings.Split(md, "\n") {
		line := strings.TrimRight(raw, "\r")

		if strings.HasPrefix(line, "```") {
			if inCode {
				buf.WriteString("</code></pre>")
				inCode = false
			} else {
				st.closeAll()
				lang := strings.TrimSpace(line[3:])
				if lang != "" {
					buf.WriteString(`<pre><code class="language-` + html.EscapeString(lang) + `">`)
				} else {
					buf.WriteString("<pre><code>")
				}
				inCode = true
			}
			continue
		}
		if inCode {
			buf.WriteString(html.EscapeString(line))
			buf.WriteString("\n")
			continue
		}

		if strings.TrimSpace(line) == "" {
			st.closeAll()
			continue
		}

		switch {
		case strings.HasPrefix(line, "---"):
			st.closeAll()
			buf.WriteString("<hr/>")
		case strings.HasPrefix(line, "### "):
			st.closeAll()
			buf.WriteString("<h3>" + formatInline(strings.TrimSpace(line[4:])) + "</h3>")
		case strings.HasPrefix(line, "## "):
			st.closeAll()
			buf.WriteString("<h2>" + formatInline(strings.TrimSpace(line[3:])) + "</h2>")
		case strings.HasPrefix(line, "# "):
			st.closeAll()
			buf.WriteString("<h1>" + formatInline(strings.TrimSpace(line[2:])) + "</h1>")
		case strings.HasPrefix(line, "|"):
			renderTableLine(st, line)
		case strings.HasPrefix(line, "- "):
			if !st.list {
				st.closeAll()
				buf.WriteString("<ul>")
				st.list = true
			}
			buf.WriteString("<li>" + formatInline(strings.TrimSpace(line[2:])) + "</li>")
		case reOrderedItem.MatchString(line):
			if !st.ordered {
				st.closeAll()
				buf.WriteString("<ol>")
				st.ordered = true
			}
			item := reOrderedItem.ReplaceAllString(line, "")
			buf.WriteString("<li>" + formatInline(strings.TrimSpace(item)) + "</li>")
		case strings.HasPrefix(line, "> "):
			if !st.quote {
				st.closeAll()
				buf.WriteString("<blockquote>")
				st.quote = true
			}
			buf.WriteString(formatInline(strings.TrimSpace(line[2:])))
		default:
			if !st.paragraph {
				st.closeAll()
				buf.WriteString("<p>")
				st.paragraph = true
			} else {
				buf.WriteString(" ")
			}
			buf.WriteString(formatInline(strings.TrimSpace(line)))
		}
	}
	if inCode {
		buf.WriteString("</code></pre>")
	}
	st.closeAll()
}

func renderTableLine(st *blockState, line string) {
	buf := st.buf
	if !st.table {
		st.closeAll()
		buf.WriteString("<table><thead><tr>")
		for _, cell := range tableCells(line) {
			buf.WriteString("<th>" + formatInline(cell) + "</th>")
		}
		buf.WriteString("</tr></thead>")
		st.table = true
		return
	}
	if isTableSeparator(line) {
		if !st.tableBody {
			buf.WriteString("<tbody>")
			st.tableBody = true
		}
		return
	}
	if !st.tableBody {
		buf.WriteString("<tbody>")
		st.tableBody = true
	}
	buf.WriteString("<tr>")
	for _, cell := range tableCells(line) {
		buf.WriteString("<td>" + formatInline(cell) + "</td>")
	}
	buf.WriteString("</tr>")
}

func tableCells(line string) []string {
	line = strings.Trim(strings.TrimSpace(line), "|")
	parts := strings.Split(line, "|")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

func isTableSeparator(line string) bool {
	line = strings.Trim(strings.TrimSpace(line), "|")
	for _, cell := range strings.Split(line, "|") {
		cleaned := strings.ReplaceAll(strings.ReplaceAll(strings.TrimSpace(cell), "-", ""), ":", "")
		if cleaned != "" {
			return false
		}
	}
	return true
}

// formatInline applies inline formatting (images, links, code, bold, italic)
// to a single already-split line.
func formatInline(s string) string {
	escaped := html.EscapeString(s)

	escaped = reImage.ReplaceAllStringFunc(escaped, func(m string) string {
		match := reImage.FindStringSubmatch(m)
		src := safeURL(match[2])
		if src == "" {
			return match[1]
		}
		return `<img src="` + src + `" alt="` + match[1] + `" loading="lazy"/>`
	})
	escaped = reLink.ReplaceAllStringFunc(escaped, func(m string) string {
		match := reLink.FindStringSubmatch(m)
		href := safeURL(match[2])
		if href == "" {
			return match[1]
		}
		return `<a href="` + href + `">` + match[1] + `</a>`
	})

	// Pull inline code out behind placeholders so the bold/italic passes
	// never reformat content inside backticks.
	var codeSpans []string
	escaped = reInlineCode.ReplaceAllStringFunc(escaped, func(m string) string {
		match := reInlineCode.FindStringSubmatch(m)
		placeholder := "\x00C" + strconv.Itoa(len(codeSpans)) + "\x00"
		codeSpans = append(codeSpans, "<code>"+match[1]+"</code>")
		return placeholder
	})
	escaped = applyOutsideTags(escaped, func(seg string) string {
		seg = reBold.ReplaceAllString(seg, "<strong>$1</strong>")
		seg = reBoldUnderscore.ReplaceAllString(seg, "<strong>$1</strong>")
		seg = reItalic.ReplaceAllString(seg, "<em>$1</em>")
		seg = reItalicUnderscore.ReplaceAllString(seg, "<em>$1</em>")
		return seg
	})
	for i, code := range codeSpans {
		escaped = strings.Replace(escaped, "\x00C"+strconv.Itoa(i)+"\x00", code, 1)
	}
	return escaped
}

// applyOutsideTags applies fn only to text outside HTML tags so formatting
// regexes never touch URLs inside attributes.
func applyOutsideTags(s string, fn func(string) string) string {
	var buf strings.Builder
	for len(s) > 0 {
		lt := strings.Index(s, "<")
		if lt < 0 {
			buf.WriteString(fn(s))
			break
		}
		if lt > 0 {
			buf.WriteString(fn(s[:lt]))
		}
		gt := strings.Index(s[lt:], ">")
		if gt < 0 {
			buf.WriteString(s[lt:])
			break
		}
		buf.WriteString(s[lt : lt+gt+1])
		s = s[lt+gt+1:]
	}
	return buf.String()
}

// safeURL validates a URL for use in an HTML attribute. Relative paths,
// fragments, and http/https/mailto links pass; everything else is dropped.
func safeURL(raw string) string {
	val := strings.TrimSpace(html.UnescapeString(raw))
	if val == "" {
		return ""
	}
	if strings.HasPrefix(val, "/") || strings.HasPrefix(val, "#") {
		return html.EscapeString(val)
	}
	parsed, err := url.Parse(val)
	if err != nil || parsed.Scheme == "" {
		return ""
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https", "mailto":
		return html.EscapeString(val)
	default:
		return ""
	}
}
