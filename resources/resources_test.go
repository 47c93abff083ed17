package resources

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"press/config"
	"press/doc"
)

func writeFile(t *testing.T, dir, name string, data []byte) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		t.Fatalf("unable to write %s: %v", name, err)
	}
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("unable to encode png: %v", err)
	}
	return buf.Bytes()
}

func TestCollect(t *testing.T) {
	dir := t.TempDir()

	// minimal sfnt header is enough for sniffing
	writeFile(t, dir, "main.ttf", append([]byte{0x00, 0x01, 0x00, 0x00, 0x00}, make([]byte, 32)...))
	writeFile(t, dir, "logo.png", pngBytes(t, 4, 3))
	writeFile(t, dir, "notes.txt", []byte("plain text, not an image"))

	addr := &doc.InternalAddresses{
		FontDictionary: map[string]string{
			"serif":   "main.ttf",
			"missing": "nowhere.ttf",
		},
		ImageDictionary: map[string]string{
			"logo": "logo.png",
			"text": "notes.txt",
		},
	}
	cfg := &config.ResourcesConfig{FontsDir: dir, ImagesDir: dir, ProbeDimensions: true}

	assets := Collect(addr, cfg, nil)

	if len(assets.Fonts) != 1 {
		t.Fatalf("got %d fonts, want 1", len(assets.Fonts))
	}
	font := assets.Fonts["serif"]
	if font.MIME != "application/font-sfnt" {
		t.Errorf("font mime = %q, want application/font-sfnt", font.MIME)
	}

	if len(assets.Images) != 1 {
		t.Fatalf("got %d images, want 1", len(assets.Images))
	}
	img := assets.Images["logo"]
	if img.MIME != "image/png" {
		t.Errorf("image mime = %q, want image/png", img.MIME)
	}
	if img.Width != 4 || img.Height != 3 {
		t.Errorf("image dimensions = %dx%d, want 4x3", img.Width, img.Height)
	}
}

func TestCollectNoAddresses(t *testing.T) {
	assets := Collect(nil, &config.ResourcesConfig{}, nil)
	if assets.Fonts == nil || assets.Images == nil {
		t.Fatal("maps are nil, want empty maps")
	}
	if len(assets.Fonts)+len(assets.Images) != 0 {
		t.Error("expected no assets")
	}
}

func TestCollectSkipsDimensionProbe(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "logo.png", pngBytes(t, 4, 3))

	addr := &doc.InternalAddresses{ImageDictionary: map[string]string{"logo": "logo.png"}}
	assets := Collect(addr, &config.ResourcesConfig{ImagesDir: dir}, nil)

	img := assets.Images["logo"]
	if img.Width != 0 || img.Height != 0 {
		t.Errorf("image dimensions = %dx%d, want unprobed 0x0", img.Width, img.Height)
	}
}
