// Package resources resolves the names in a document's internal address
// dictionaries to actual files for the renderer. Content types are sniffed
// from file bytes, image dimensions are probed on request. Collection never
// fails: unusable entries are logged and skipped.
package resources

import (
	"image"
	"os"
	"path/filepath"

	"github.com/h2non/filetype"
	"github.com/h2non/filetype/matchers"
	"go.uber.org/zap"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"press/config"
	"press/doc"
)

// Asset is one resolved dictionary entry.
type Asset struct {
	Name   string
	Path   string
	MIME   string
	Width  int
	Height int
}

// Assets holds everything the renderer may pull in by name.
type Assets struct {
	Fonts  map[string]Asset
	Images map[string]Asset
}

// Collect resolves both dictionaries against the configured resource
// directories. A nil addresses value yields empty (non-nil) maps.
func Collect(addr *doc.InternalAddresses, cfg *config.ResourcesConfig, log *zap.Logger) *Assets {
	if log == nil {
		log = zap.NewNop()
	}
	assets := &Assets{
		Fonts:  make(map[string]Asset),
		Images: make(map[string]Asset),
	}
	if addr == nil {
		return assets
	}

	for name, rel := range addr.FontDictionary {
		a, _, ok := probeFile(name, filepath.Join(cfg.FontsDir, rel), log)
		if !ok {
			continue
		}
		if !isFontType(a.MIME) {
			log.Warn("Font dictionary entry is not a font, skipping",
				zap.String("name", name), zap.String("path", a.Path), zap.String("type", a.MIME))
			continue
		}
		assets.Fonts[name] = a
	}

	for name, rel := range addr.ImageDictionary {
		a, head, ok := probeFile(name, filepath.Join(cfg.ImagesDir, rel), log)
		if !ok {
			continue
		}
		if !filetype.IsImage(head) {
			log.Warn("Image dictionary entry is not an image, skipping",
				zap.String("name", name), zap.String("path", a.Path), zap.String("type", a.MIME))
			continue
		}
		if cfg.ProbeDimensions {
			probeDimensions(&a, log)
		}
		assets.Images[name] = a
	}
	return assets
}

func probeFile(name, path string, log *zap.Logger) (Asset, []byte, bool) {
	head := headBytes(path)
	if head == nil {
		log.Warn("Unable to read dictionary entry, skipping",
			zap.String("name", name), zap.String("path", path))
		return Asset{}, nil, false
	}

	a := Asset{Name: name, Path: path}
	if t, err := filetype.Match(head); err == nil && t != filetype.Unknown {
		a.MIME = t.MIME.Value
	} else {
		log.Warn("Unable to detect content type", zap.String("name", name), zap.String("path", path))
	}
	return a, head, true
}

// headBytes returns enough leading bytes for content sniffing, nil when the
// file cannot be read.
func headBytes(path string) []byte {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	head := make([]byte, 512)
	n, err := f.Read(head)
	if n == 0 && err != nil {
		return nil
	}
	return head[:n]
}

func probeDimensions(a *Asset, log *zap.Logger) {
	f, err := os.Open(a.Path)
	if err != nil {
		return
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		log.Warn("Unable to probe image dimensions",
			zap.String("name", a.Name), zap.String("path", a.Path), zap.Error(err))
		return
	}
	a.Width = cfg.Width
	a.Height = cfg.Height
}

func isFontType(mime string) bool {
	switch mime {
	case matchers.TypeTtf.MIME.Value,
		matchers.TypeOtf.MIME.Value,
		matchers.TypeWoff.MIME.Value,
		matchers.TypeWoff2.MIME.Value:
		return true
	}
	return false
}
