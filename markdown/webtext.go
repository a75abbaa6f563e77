package markdown

import (
	"html"
	"regexp"
	"strings"
)

var reURL = regexp.MustCompile(`\bhttps?://[^\s<]+`)

// WebText converts plain comment text to safe HTML: everything is escaped,
// bare http(s) URLs become links, blank-line-separated blocks become
// paragraphs, and single newlines become <br/>.
func WebText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	blocks := strings.Split(strings.TrimSpace(text), "\n\n")

	var out []string
	for _, block := range blocks {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		escaped := html.EscapeString(block)
		linked := reURL.ReplaceAllStringFunc(escaped, func(u string) string {
			return `<a href="` + u + `" rel="nofollow">` + u + `</a>`
		})
		out = append(out, "<p>"+strings.ReplaceAll(linked, "\n", "<br/>")+"</p>")
	}
	return strings.Join(out, "\n")
}
