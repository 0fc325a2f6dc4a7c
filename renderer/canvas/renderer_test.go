package canvasrenderer

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/ByLCY/quotecard/layout"
)

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := New(goregular.TTF)
	if err != nil {
		t.Fatalf("New renderer: %v", err)
	}
	return r
}

func solid(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{c}, image.Point{}, draw.Src)
	return img
}

func darkPixels(img image.Image, rect image.Rectangle) int {
	n := 0
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			if r>>8 < 128 && g>>8 < 128 && b>>8 < 128 {
				n++
			}
		}
	}
	return n
}

func near(a, b uint32) bool {
	d := int(a>>8) - int(b>>8)
	return d > -12 && d < 12
}

func TestNewRejectsInvalidFont(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Fatalf("expected error for empty font data")
	}
	if _, err := New([]byte("not a font")); err == nil {
		t.Fatalf("expected error for garbage font data")
	}
}

func TestRenderKeepsCanvasSize(t *testing.T) {
	r := newTestRenderer(t)
	card := &layout.Card{Width: 400, Height: 300}
	out, err := r.Render(card, solid(400, 300, color.White))
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if b := out.Bounds(); b.Dx() != 400 || b.Dy() != 300 {
		t.Fatalf("unexpected output size %v", b)
	}
}

func TestRenderDrawsTextInsideBox(t *testing.T) {
	r := newTestRenderer(t)
	bg := solid(400, 300, color.White)
	card := &layout.Card{
		Width:  400,
		Height: 300,
		Texts: []layout.TextBox{{
			Role:     layout.RoleExcerpt,
			X:        20,
			Y:        20,
			FontSize: 60,
			Color:    layout.Color{},
			Lines: []layout.TextLine{
				{Content: "HHHH", Height: 60},
				{Content: "", Height: 60, GapBefore: 20},
				{Content: "HHHH", Height: 60, GapBefore: 20},
			},
		}},
	}
	out, err := r.Render(card, bg)
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}

	if n := darkPixels(out, image.Rect(20, 20, 300, 80)); n == 0 {
		t.Fatalf("expected glyph pixels on the first line")
	}
	if n := darkPixels(out, image.Rect(20, 100, 300, 160)); n != 0 {
		t.Fatalf("spacer line should stay empty, found %d dark pixels", n)
	}
	if n := darkPixels(out, image.Rect(20, 180, 300, 240)); n == 0 {
		t.Fatalf("expected glyph pixels on the third line")
	}
	if n := darkPixels(out, image.Rect(0, 0, 400, 15)); n != 0 {
		t.Fatalf("text must not be drawn above its box, found %d dark pixels", n)
	}

	// 背景图本身不应被修改
	if got := bg.RGBAAt(30, 40); got != (color.RGBA{255, 255, 255, 255}) {
		t.Fatalf("background mutated: %v", got)
	}
}

func TestRenderPreservesBackground(t *testing.T) {
	r := newTestRenderer(t)
	fill := color.RGBA{200, 40, 40, 255}
	card := &layout.Card{
		Width:  200,
		Height: 200,
		Texts: []layout.TextBox{{
			Role:     layout.RoleTitle,
			X:        10,
			Y:        10,
			FontSize: 30,
			Lines:    []layout.TextLine{{Content: "T", Height: 30}},
		}},
	}
	out, err := r.Render(card, solid(200, 200, fill))
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	for _, p := range []image.Point{{150, 150}, {180, 20}, {20, 180}} {
		cr, cg, cb, _ := out.At(p.X, p.Y).RGBA()
		wr, wg, wb, _ := fill.RGBA()
		if !near(cr, wr) || !near(cg, wg) || !near(cb, wb) {
			t.Fatalf("background pixel %v changed: got (%d,%d,%d)", p, cr>>8, cg>>8, cb>>8)
		}
	}
}

func TestRenderRejectsInvalidCard(t *testing.T) {
	r := newTestRenderer(t)
	if _, err := r.Render(nil, nil); err == nil {
		t.Fatalf("expected error for nil card")
	}
	if _, err := r.Render(&layout.Card{Width: 0, Height: 10}, nil); err == nil {
		t.Fatalf("expected error for empty canvas")
	}
	bad := &layout.Card{Width: 10, Height: 10, Texts: []layout.TextBox{{Role: layout.RoleTitle}}}
	if _, err := r.Render(bad, nil); err == nil {
		t.Fatalf("expected error for zero font size")
	}
}

func TestAscentScalesWithSize(t *testing.T) {
	r := newTestRenderer(t)
	small, large := r.ascent(55), r.ascent(150)
	if small <= 0 || large <= small {
		t.Fatalf("unexpected ascents: 55px=%g 150px=%g", small, large)
	}
	if large > 150 {
		t.Fatalf("ascent should not exceed the em size: %g", large)
	}
}
