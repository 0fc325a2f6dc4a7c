package background

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
)

func writeImage(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	img := imaging.New(w, h, color.NRGBA{R: 220, G: 210, B: 190, A: 255})
	if err := imaging.Save(img, path); err != nil {
		t.Fatalf("save fixture: %v", err)
	}
	return path
}

func TestCheckExtension(t *testing.T) {
	for _, name := range []string{"book.xlsx", "bg.JPG", "dir/bg.jpg"} {
		if err := CheckExtension(name); err != nil {
			t.Fatalf("%s should be allowed: %v", name, err)
		}
	}
	for _, name := range []string{"book.xls", "bg.png", "noext", "bg.jpg.exe"} {
		err := CheckExtension(name)
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("%s should be rejected with ValidationError, got %v", name, err)
		}
	}
	if err := CheckExtension("bg.png", "png"); err != nil {
		t.Fatalf("custom allow-list ignored: %v", err)
	}
}

func TestPrepareExactSize(t *testing.T) {
	dir := t.TempDir()
	src := writeImage(t, dir, "bg.jpg", 1417, 1890)
	out, err := Prepare(src, filepath.Join(dir, "uploads"), "20240101_120000", 1417, 1890)
	if err != nil {
		t.Fatalf("Prepare error: %v", err)
	}
	if filepath.Base(out) != "20240101_120000_bg_processed_image.jpg" {
		t.Fatalf("unexpected processed name %s", out)
	}
	img, err := imaging.Open(out)
	if err != nil {
		t.Fatalf("open processed: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 1417 || b.Dy() != 1890 {
		t.Fatalf("unexpected processed size %v", b)
	}
}

func TestPrepareCropsLargerImage(t *testing.T) {
	dir := t.TempDir()
	src := writeImage(t, dir, "big.png", 300, 500)
	out, err := Prepare(src, dir, "", 200, 300)
	if err != nil {
		t.Fatalf("Prepare error: %v", err)
	}
	if filepath.Base(out) != "big_processed_image.png" {
		t.Fatalf("unexpected processed name %s", out)
	}
	img, err := imaging.Open(out)
	if err != nil {
		t.Fatalf("open processed: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 200 || b.Dy() != 300 {
		t.Fatalf("expected center crop to 200x300, got %v", b)
	}
}

func TestPrepareRejectsSmallImage(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "uploads")
	for _, size := range [][2]int{{1416, 1890}, {1417, 1889}, {100, 100}} {
		src := writeImage(t, dir, "small.jpg", size[0], size[1])
		_, err := Prepare(src, outDir, "run", 1417, 1890)
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("%v: expected ValidationError, got %v", size, err)
		}
		if !strings.Contains(ve.Error(), "1417x1890") {
			t.Fatalf("message should state the minimum resolution: %s", ve.Error())
		}
	}
	if _, err := os.Stat(outDir); !os.IsNotExist(err) {
		t.Fatalf("no processed image should be written, stat err=%v", err)
	}
}

func TestPrepareRejectsUnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bg.gif")
	if err := os.WriteFile(path, []byte("GIF89a"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	var ve *ValidationError
	if _, err := Prepare(path, dir, "", 10, 10); !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestPrepareCorruptImage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bg.jpg")
	if err := os.WriteFile(path, []byte("not a jpeg"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	_, err := Prepare(path, dir, "", 10, 10)
	if err == nil || !strings.Contains(err.Error(), path) {
		t.Fatalf("expected decode error naming %s, got %v", path, err)
	}
}
