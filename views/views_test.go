package views

import (
	"context"
	"strings"
	"testing"

	"github.com/eringen/inkpress"
)

func TestEntryPageEscapesCommentWebsite(t *testing.T) {
	cfg := inkpress.SiteConfig{Name: "Blog"}
	entry := inkpress.Entry{Index: 1, Title: "Post", Author: "author"}
	comments := []inkpress.Comment{{
		Index:      0,
		EntryIndex: 1,
		Author:     "mallory",
		Website:    `http://x" onmouseover=alert(1) x="`,
		HTML:       "<p>hi</p>",
	}}

	var b strings.Builder
	err := EntryPage(cfg, entry, comments, nil, 1, true, "tok").Render(context.Background(), &b)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	out := b.String()

	want := `href="http://x&#34; onmouseover=alert(1) x=&#34;"`
	if !strings.Contains(out, want) {
		t.Errorf("website quotes not escaped in href; output: %s", out)
	}
	// Backslash-escaped quotes still terminate an HTML attribute.
	if strings.Contains(out, `\"`) {
		t.Error("output contains Go-style quote escapes, which HTML does not honor")
	}
}

func TestComposeEscapesFormValues(t *testing.T) {
	cfg := inkpress.SiteConfig{Name: "Blog"}
	entry := inkpress.Entry{
		Index: 2,
		Title: `say "hi"`,
		Tags:  []string{"go"},
	}

	var b strings.Builder
	err := Compose(cfg, &entry, nil, "tok").Render(context.Background(), &b)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	out := b.String()

	if !strings.Contains(out, `value="say &#34;hi&#34;"`) {
		t.Errorf("title quotes not escaped; output: %s", out)
	}
}

func TestShellEscapesDescription(t *testing.T) {
	cfg := inkpress.SiteConfig{
		Name:        "Blog",
		Description: `a "quoted" blurb`,
	}

	var b strings.Builder
	if err := About(cfg).Render(context.Background(), &b); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	out := b.String()

	if !strings.Contains(out, `content="a &#34;quoted&#34; blurb"`) {
		t.Errorf("description quotes not escaped; output: %s", out)
	}
}
