package markdown

import (
	"context"
	"strings"
	"testing"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "paragraph",
			in:   "hello world",
			want: "<p>hello world</p>\n",
		},
		{
			name: "adjacent lines join one paragraph",
			in:   "first line\nsecond line",
			want: "<p>first line second line</p>\n",
		},
		{
			name: "blank line splits paragraphs",
			in:   "one\n\ntwo",
			want: "<p>one</p>\n<p>two</p>\n",
		},
		{
			name: "heading",
			in:   "# Title",
			want: "<h1>Title</h1>\n",
		},
		{
			name: "subheading with emphasis",
			in:   "## A **bold** plan",
			want: "<h2>A <strong>bold</strong> plan</h2>\n",
		},
		{
			name: "bold and italic",
			in:   "**strong** and *slanted*",
			want: "<p><strong>strong</strong> and <em>slanted</em></p>\n",
		},
		{
			name: "inline code",
			in:   "run `go test` now",
			want: "<p>run <code>go test</code> now</p>\n",
		},
		{
			name: "link",
			in:   "[docs](https://example.com)",
			want: "<p><a href=\"https://example.com\">docs</a></p>\n",
		},
		{
			name: "image",
			in:   "![alt text](/uploads/pic.jpg)",
			want: "<p><img src=\"/uploads/pic.jpg\" alt=\"alt text\"/></p>\n",
		},
		{
			name: "unordered list",
			in:   "- one\n- two",
			want: "<ul>\n<li>one</li>\n<li>two</li>\n</ul>\n",
		},
		{
			name: "ordered list",
			in:   "1. one\n2. two",
			want: "<ol>\n<li>one</li>\n<li>two</li>\n</ol>\n",
		},
		{
			name: "blockquote",
			in:   "> wise words",
			want: "<blockquote>wise words</blockquote>\n",
		},
		{
			name: "multi line blockquote",
			in:   "> first\n> second",
			want: "<blockquote>first second</blockquote>\n",
		},
		{
			name: "fenced code keeps raw text escaped",
			in:   "```\nif a < b {\n```",
			want: "<pre><code>if a &lt; b {\n</code></pre>\n",
		},
		{
			name: "html in text is escaped",
			in:   "<script>alert(1)</script>",
			want: "<p>&lt;script&gt;alert(1)&lt;/script&gt;</p>\n",
		},
		{
			name: "empty input",
			in:   "",
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Render(tt.in); got != tt.want {
				t.Errorf("Render(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestRenderMixedBlocks(t *testing.T) {
	in := "# Post\n\nintro text\n\n- a\n- b\n\nclosing"
	want := "<h1>Post</h1>\n<p>intro text</p>\n<ul>\n<li>a</li>\n<li>b</li>\n</ul>\n<p>closing</p>\n"
	if got := Render(in); got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}

func TestRenderUnclosedFence(t *testing.T) {
	got := Render("```\ndangling")
	want := "<pre><code>dangling\n</code></pre>\n"
	if got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}

func TestComponent(t *testing.T) {
	var b strings.Builder
	if err := Component("# Hi").Render(context.Background(), &b); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if b.String() != "<h1>Hi</h1>\n" {
		t.Errorf("component output = %q", b.String())
	}
}

func TestWebText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "plain text",
			in:   "hello",
			want: "<p>hello</p>",
		},
		{
			name: "html is escaped",
			in:   "<b>bold</b> & more",
			want: "<p>&lt;b&gt;bold&lt;/b&gt; &amp; more</p>",
		},
		{
			name: "single newline becomes br",
			in:   "line one\nline two",
			want: "<p>line one<br/>line two</p>",
		},
		{
			name: "blank line splits paragraphs",
			in:   "one\n\ntwo",
			want: "<p>one</p>\n<p>two</p>",
		},
		{
			name: "crlf input",
			in:   "one\r\n\r\ntwo",
			want: "<p>one</p>\n<p>two</p>",
		},
		{
			name: "bare url becomes nofollow link",
			in:   "see https://example.com/x for details",
			want: `<p>see <a href="https://example.com/x" rel="nofollow">https://example.com/x</a> for details</p>`,
		},
		{
			name: "markdown syntax is inert",
			in:   "**not bold**",
			want: "<p>**not bold**</p>",
		},
		{
			name: "empty input",
			in:   "",
			want: "",
		},
		{
			name: "whitespace only",
			in:   "  \n\n  ",
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WebText(tt.in); got != tt.want {
				t.Errorf("WebText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
