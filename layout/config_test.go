package layout

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ByLCY/quotecard/dsl"
)

func TestDefaultConfigConstants(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Width != 1417 || cfg.Height != 1890 {
		t.Fatalf("canvas size: %gx%g", cfg.Width, cfg.Height)
	}
	want := ExcerptStyle{FontSize: 75, Color: Color{0, 0, 0}, Left: 200, Top: 400, LineSpacing: 50, MaxChars: 12}
	if cfg.Excerpt != want {
		t.Fatalf("excerpt style: %+v", cfg.Excerpt)
	}
	if cfg.Title != (TitleStyle{FontSize: 55, Color: Color{0, 0, 0}, Left: 200, Bottom: 400}) {
		t.Fatalf("title style: %+v", cfg.Title)
	}
	if cfg.Author != (AuthorStyle{FontSize: 150, Color: Color{100, 100, 100}, Right: 10, Top: 100, Spacing: 15}) {
		t.Fatalf("author style: %+v", cfg.Author)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestFromDocumentOverrides(t *testing.T) {
	doc, err := dsl.ParseString(`card v1 {
  width: 800
  excerpt { size: 40; max-chars: 8; color: #333 }
  author { spacing: 5px }
}`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	cfg, err := FromDocument(doc)
	if err != nil {
		t.Fatalf("FromDocument: %v", err)
	}
	if cfg.Width != 800 || cfg.Height != 1890 {
		t.Fatalf("canvas: %gx%g", cfg.Width, cfg.Height)
	}
	if cfg.Excerpt.FontSize != 40 || cfg.Excerpt.MaxChars != 8 {
		t.Fatalf("excerpt: %+v", cfg.Excerpt)
	}
	if cfg.Excerpt.Color != (Color{0x33, 0x33, 0x33}) {
		t.Fatalf("excerpt color: %+v", cfg.Excerpt.Color)
	}
	if cfg.Excerpt.Top != 400 {
		t.Fatalf("untouched field changed: %+v", cfg.Excerpt)
	}
	if cfg.Author.Spacing != 5 || cfg.Author.FontSize != 150 {
		t.Fatalf("author: %+v", cfg.Author)
	}
}

func TestFromDocumentErrors(t *testing.T) {
	cases := map[string]string{
		"unknown section": `card v1 { footer { size: 1 } }`,
		"unknown key":     `card v1 { title { weight: 1 } }`,
		"bad number":      `card v1 { excerpt { size: big } }`,
		"bad max chars":   `card v1 { excerpt { max-chars: 1.5 } }`,
		"invalid result":  `card v1 { excerpt { max-chars: 0 } }`,
		"canvas key":      `card v1 { depth: 3 }`,
	}
	for name, src := range cases {
		doc, err := dsl.ParseString(src)
		if err != nil {
			t.Fatalf("%s: parse: %v", name, err)
		}
		if _, err := FromDocument(doc); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "card.layout")
	if err := os.WriteFile(path, []byte("card v1 {\n  title { bottom: 300 }\n}\n"), 0o644); err != nil {
		t.Fatalf("write layout: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Title.Bottom != 300 {
		t.Fatalf("title bottom: %g", cfg.Title.Bottom)
	}

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.layout"))
	if err == nil || !strings.Contains(err.Error(), "missing.layout") {
		t.Fatalf("expected error naming missing file, got %v", err)
	}
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#646464")
	if err != nil || c != (Color{100, 100, 100}) {
		t.Fatalf("ParseColor: %+v %v", c, err)
	}
	if _, err := ParseColor("#12"); err == nil {
		t.Fatalf("expected error for short color")
	}
}
