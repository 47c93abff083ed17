package compose

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"press/config"
	"press/state"
)

const sampleSource = `{
  "metadata": {
    "title": "Annual Report",
    "authors": ["A. Writer"],
    "lang": "en",
    "id": "not-a-uuid"
  },
  "sequences": [
    {
      "style_class": "page-body",
      "areas": [
        {
          "role": "main",
          "elements": [
            {"kind": "headline", "level": 1, "text": [{"kind": "text", "text": "Overview"}]},
            {"kind": "paragraph", "style_class": "body-text", "text": [
              {"kind": "text", "text": "Body"},
              {"kind": "footnote", "index": "1", "inlines": [{"kind": "text", "text": "a note"}]}
            ]}
          ]
        }
      ]
    }
  ]
}`

func composeEnv(t *testing.T) (context.Context, *state.LocalEnv) {
	t.Helper()
	ctx := state.ContextWithEnv(context.Background())
	env := state.EnvFromContext(ctx)
	env.Cfg = &config.Config{}
	env.Log = zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller()))
	return ctx, env
}

func TestComposeDocument(t *testing.T) {
	ctx, env := composeEnv(t)
	dst := t.TempDir()

	if err := composeDocument(ctx, strings.NewReader(sampleSource), "report.json", dst, env.Log); err != nil {
		t.Fatalf("unable to compose document: %v", err)
	}

	out := filepath.Join(dst, "report.txt")
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("output file not written: %v", err)
	}
	for _, want := range []string{
		`document title="Annual Report"`,
		`headline level=1 style="text-block"`,
		`footnote index="1" style="footnote"`,
	} {
		if !strings.Contains(string(data), want) {
			t.Errorf("output does not contain %q:\n%s", want, data)
		}
	}
}

func TestComposeDocumentOverwrite(t *testing.T) {
	ctx, env := composeEnv(t)
	dst := t.TempDir()

	if err := composeDocument(ctx, strings.NewReader(sampleSource), "report.json", dst, env.Log); err != nil {
		t.Fatalf("unable to compose document: %v", err)
	}

	err := composeDocument(ctx, strings.NewReader(sampleSource), "report.json", dst, env.Log)
	if err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("expected existing output error, got %v", err)
	}

	env.Overwrite = true
	if err := composeDocument(ctx, strings.NewReader(sampleSource), "report.json", dst, env.Log); err != nil {
		t.Fatalf("unable to overwrite output: %v", err)
	}
}

func TestComposeDocumentCorrectsID(t *testing.T) {
	ctx, env := composeEnv(t)
	env.Cfg.Document.OutputNameTemplate = "{{ .DocumentID }}"
	dst := t.TempDir()

	if err := composeDocument(ctx, strings.NewReader(sampleSource), "report.json", dst, env.Log); err != nil {
		t.Fatalf("unable to compose document: %v", err)
	}

	entries, err := os.ReadDir(dst)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d output files, want 1", len(entries))
	}
	name := strings.TrimSuffix(entries[0].Name(), outputExt)
	if _, err := uuid.Parse(name); err != nil {
		t.Errorf("output name %q is not a corrected UUID: %v", entries[0].Name(), err)
	}
}

func TestComposeDocumentParseFailure(t *testing.T) {
	ctx, env := composeEnv(t)

	err := composeDocument(ctx, strings.NewReader(`{"metadata": {}, "sequences": []}`), "report.json", t.TempDir(), env.Log)
	if err == nil || !strings.Contains(err.Error(), "unable to parse document source") {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestLoadSheetFallsBackToBuiltin(t *testing.T) {
	s, err := loadSheet("")
	if err != nil {
		t.Fatalf("unable to load built-in sheet: %v", err)
	}
	if _, ok := s.StyleMap().Get("body-text"); !ok {
		t.Error("built-in sheet is missing body-text")
	}
}
