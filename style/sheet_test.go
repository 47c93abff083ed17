package style

import (
	"strings"
	"testing"
)

func TestLoadSheet(t *testing.T) {
	data := []byte(`
styles:
  - name: body
    kind: text-block
    style:
      font_size: 12
      align: justify
  - name: note
    kind: footnote
    style:
      font_size: 9
defaults:
  p: body
  footnote: note
`)
	s, err := LoadSheet(data)
	if err != nil {
		t.Fatalf("unable to load sheet: %v", err)
	}

	e, ok := s.StyleMap().Get("body")
	if !ok {
		t.Fatal("entry body not found")
	}
	block, ok := e.Style.(*BlockStyle)
	if !ok {
		t.Fatalf("body decoded to %T, want *BlockStyle", e.Style)
	}
	if block.FontSize == nil || *block.FontSize != 12 {
		t.Errorf("body font size = %v, want 12", block.FontSize)
	}
	if block.Align == nil || *block.Align != AlignJustify {
		t.Errorf("body align = %v, want justify", block.Align)
	}

	def, ok := s.Default(StdFootnote)
	if !ok {
		t.Fatal("footnote default not registered")
	}
	if def.Name != "note" {
		t.Errorf("footnote default = %q, want note", def.Name)
	}
	if _, ok := s.Default(StdTable); ok {
		t.Error("unexpected table default")
	}
}

func TestLoadSheetErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{
			name: "duplicate entry",
			data: "styles:\n  - name: a\n    kind: text-block\n  - name: a\n    kind: section\n",
			want: "duplicate style entry",
		},
		{
			name: "missing name",
			data: "styles:\n  - kind: text-block\n",
			want: "without a name",
		},
		{
			name: "unknown kind",
			data: "styles:\n  - name: a\n    kind: chapter\n",
			want: "not a valid style kind",
		},
		{
			name: "unknown property",
			data: "styles:\n  - name: a\n    kind: text-block\n    style:\n      font_sizes: 12\n",
			want: "field font_sizes not found",
		},
		{
			name: "default for unknown element",
			data: "styles:\n  - name: a\n    kind: text-block\ndefaults:\n  div: a\n",
			want: "not a valid standard element kind",
		},
		{
			name: "default references unknown style",
			data: "styles:\n  - name: a\n    kind: text-block\ndefaults:\n  p: b\n",
			want: "references unknown style",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadSheet([]byte(tt.data))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestDefaultSheet(t *testing.T) {
	s, err := DefaultSheet()
	if err != nil {
		t.Fatalf("unable to load built-in sheet: %v", err)
	}

	for std := range standardKindNames {
		e, ok := s.Default(std)
		if !ok {
			t.Errorf("no default registered for %s", std)
			continue
		}
		if e.Style.Kind() != std.BagKind() {
			t.Errorf("default for %s has kind %s, want %s", std, e.Style.Kind(), std.BagKind())
		}
	}
}
