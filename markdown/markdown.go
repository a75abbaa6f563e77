// Package markdown renders compose-box Markdown and comment webtext to HTML.
package markdown

import (
	"bytes"
	"context"
	"html"
	"io"
	"regexp"
	"strings"

	"github.com/a-h/templ"
)

var (
	reBold       = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reItalic     = regexp.MustCompile(`\*([^*]+)\*`)
	reInlineCode = regexp.MustCompile("`([^`]+)`")
	reLink       = regexp.MustCompile(`\[(.*?)\]\((.*?)\)`)
	reImg        = regexp.MustCompile(`!\[(.*?)\]\((.*?)\)`)
	reHeading    = regexp.MustCompile(`^(#{1,6})\s+(.*)$`)
	reOrdered    = regexp.MustCompile(`^\d+\.\s+`)
)

// Component returns a templ.Component that renders md as HTML.
func Component(md string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, Render(md))
		return err
	})
}

// Render converts Markdown to HTML. The dialect is the small one the
// compose box needs: headings, paragraphs, emphasis, inline and fenced
// code, links, images, blockquotes, and flat lists.
func Render(md string) string {
	var buf bytes.Buffer
	lines := strings.Split(md, "\n")

	inPara := false
	inCode := false
	inQuote := false
	inList := false
	inOrdered := false

	flushPara := func() {
		if inPara {
			buf.WriteString("</p>\n")
			inPara = false
		}
	}
	flushQuote := func() {
		if inQuote {
			buf.WriteString("</blockquote>\n")
			inQuote = false
		}
	}
	flushList := func() {
		if inList {
			buf.WriteString("</ul>\n")
			inList = false
		}
		if inOrdered {
			buf.WriteString("</ol>\n")
			inOrdered = false
		}
	}
	flushAll := func() {
		flushPara()
		flushQuote()
		flushList()
	}

	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			if inCode {
				buf.WriteString("</code></pre>\n")
				inCode = false
			} else {
				flushAll()
				buf.WriteString("<pre><code>")
				inCode = true
			}
			continue
		}
		if inCode {
			buf.WriteString(html.EscapeString(line))
			buf.WriteString("\n")
			continue
		}

		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			flushAll()
		case reHeading.MatchString(trimmed):
			flushAll()
			m := reHeading.FindStringSubmatch(trimmed)
			level := len(m[1])
			buf.WriteString("<h")
			buf.WriteByte('0' + byte(level))
			buf.WriteString(">")
			buf.WriteString(renderInline(m[2]))
			buf.WriteString("</h")
			buf.WriteByte('0' + byte(level))
			buf.WriteString(">\n")
		case strings.HasPrefix(trimmed, "> "):
			flushPara()
			flushList()
			if !inQuote {
				buf.WriteString("<blockquote>")
				inQuote = true
			} else {
				buf.WriteString(" ")
			}
			buf.WriteString(renderInline(strings.TrimPrefix(trimmed, "> ")))
		case strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* "):
			flushPara()
			flushQuote()
			if inOrdered {
				buf.WriteString("</ol>\n")
				inOrdered = false
			}
			if !inList {
				buf.WriteString("<ul>\n")
				inList = true
			}
			buf.WriteString("<li>")
			buf.WriteString(renderInline(trimmed[2:]))
			buf.WriteString("</li>\n")
		case reOrdered.MatchString(trimmed):
			flushPara()
			flushQuote()
			if inList {
				buf.WriteString("</ul>\n")
				inList = false
			}
			if !inOrdered {
				buf.WriteString("<ol>\n")
				inOrdered = true
			}
			buf.WriteString("<li>")
			buf.WriteString(renderInline(reOrdered.ReplaceAllString(trimmed, "")))
			buf.WriteString("</li>\n")
		default:
			flushQuote()
			flushList()
			if !inPara {
				buf.WriteString("<p>")
				inPara = true
			} else {
				buf.WriteString(" ")
			}
			buf.WriteString(renderInline(trimmed))
		}
	}
	if inCode {
		buf.WriteString("</code></pre>\n")
	}
	flushAll()
	return buf.String()
}

// renderInline escapes a line of text and then applies inline markup.
// Escaping happens first so markup characters in user text can't smuggle
// raw HTML through.
func renderInline(s string) string {
	s = html.EscapeString(s)
	s = reImg.ReplaceAllString(s, `<img src="$2" alt="$1"/>`)
	s = reLink.ReplaceAllString(s, `<a href="$2">$1</a>`)
	s = reInlineCode.ReplaceAllString(s, "<code>$1</code>")
	s = reBold.ReplaceAllString(s, "<strong>$1</strong>")
	s = reItalic.ReplaceAllString(s, "<em>$1</em>")
	return s
}
