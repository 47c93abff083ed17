package doc

import (
	"strings"
	"testing"
)

const sampleDoc = `{
  "metadata": {
    "title": "Annual Report",
    "authors": ["A. Writer"],
    "lang": "en",
    "id": "0195a8e2-94a1-7cc3-9a6b-0b1c2d3e4f50"
  },
  "addresses": {
    "fonts": {"serif": "fonts/serif.ttf"},
    "images": {"logo": "images/logo.png"}
  },
  "sequences": [
    {
      "style_class": "page-body",
      "areas": [
        {
          "role": "main",
          "elements": [
            {"kind": "headline", "level": 1, "text": [{"kind": "text", "text": "Overview"}]},
            {
              "kind": "paragraph",
              "style_class": "body-text",
              "text": [
                {"kind": "text", "text": "See "},
                {"kind": "link", "text": "details", "href": "#details"},
                {"kind": "footnote", "index": "1", "inlines": [{"kind": "text", "text": "a note"}]}
              ]
            },
            {
              "kind": "section",
              "style_class": "notice-box",
              "variant": "note",
              "elements": [{"kind": "paragraph", "text": [{"kind": "text", "text": "inside"}]}]
            }
          ]
        },
        {
          "role": "footer",
          "elements": [
            {"kind": "paragraph", "text": [{"kind": "text", "text": "Page "}, {"kind": "page-number"}]}
          ]
        }
      ]
    }
  ]
}`

func TestParseDocumentJSON(t *testing.T) {
	d, err := ParseDocumentJSON(strings.NewReader(sampleDoc), ParseOptions{}, nil)
	if err != nil {
		t.Fatalf("unable to parse document: %v", err)
	}

	if d.Meta.Title != "Annual Report" {
		t.Errorf("title = %q, want Annual Report", d.Meta.Title)
	}
	if d.Meta.Lang.String() != "en" {
		t.Errorf("lang = %q, want en", d.Meta.Lang)
	}
	if d.Addresses == nil || d.Addresses.FontDictionary["serif"] != "fonts/serif.ttf" {
		t.Error("font dictionary not parsed")
	}

	if len(d.Sequences) != 1 {
		t.Fatalf("got %d sequences, want 1", len(d.Sequences))
	}
	seq := d.Sequences[0]
	if seq.StyleClass != "page-body" {
		t.Errorf("sequence class = %q, want page-body", seq.StyleClass)
	}
	if len(seq.Areas) != 2 {
		t.Fatalf("got %d areas, want 2", len(seq.Areas))
	}
	if seq.Areas[1].Role != AreaFooter {
		t.Errorf("second area role = %q, want footer", seq.Areas[1].Role)
	}

	main := seq.Areas[0].Elements
	if len(main) != 3 {
		t.Fatalf("got %d main elements, want 3", len(main))
	}
	if main[0].Kind != ElementHeadline || main[0].Headline.Level != 1 {
		t.Errorf("first element = %+v, want level 1 headline", main[0])
	}

	p := main[1].Paragraph
	if p == nil || len(p.Text) != 3 {
		t.Fatalf("second element is not a 3 inline paragraph: %+v", main[1])
	}
	if p.Text[1].Kind != InlineLink || p.Text[1].Link.Href != "#details" {
		t.Errorf("link inline = %+v", p.Text[1])
	}
	if p.Text[2].Kind != InlineFootnote || p.Text[2].Footnote.Index != "1" {
		t.Errorf("footnote inline = %+v", p.Text[2])
	}

	sec := main[2].Section
	if sec == nil || sec.Variant != SectionNote {
		t.Errorf("third element = %+v, want note section", main[2])
	}

	footer := seq.Areas[1].Elements[0].Paragraph
	if footer.Text[1].Kind != InlinePageNumber {
		t.Errorf("footer inline = %+v, want page number marker", footer.Text[1])
	}
}

func TestParseSubstitutions(t *testing.T) {
	data := `{
  "metadata": {},
  "sequences": [
    {
      "style_class": "page",
      "areas": [
        {
          "elements": [
            {"kind": "headline", "level": 9, "text": [{"kind": "text", "text": "deep"}]},
            {"kind": "pull-quote", "text": [{"kind": "text", "text": "kept as paragraph"}]},
            {"kind": "marginalia"},
            {"kind": "paragraph", "text": [
              {"kind": "footnote", "inlines": []},
              {"kind": "glyph"}
            ]}
          ]
        }
      ]
    }
  ]
}`
	d, err := ParseDocumentJSON(strings.NewReader(data), ParseOptions{DefaultTitle: "Untitled"}, nil)
	if err != nil {
		t.Fatalf("unable to parse document: %v", err)
	}

	if d.Meta.Title != "Untitled" {
		t.Errorf("title = %q, want substituted Untitled", d.Meta.Title)
	}

	els := d.Sequences[0].Areas[0].Elements
	// the bare unknown element is dropped
	if len(els) != 3 {
		t.Fatalf("got %d elements, want 3", len(els))
	}
	if els[0].Headline.Level != 1 {
		t.Errorf("headline level = %d, want clamped to 1", els[0].Headline.Level)
	}
	if els[1].Kind != ElementParagraph {
		t.Errorf("unknown element with text = %v, want converted to paragraph", els[1].Kind)
	}

	inlines := els[2].Paragraph.Text
	// the payload-free unknown inline is dropped
	if len(inlines) != 1 {
		t.Fatalf("got %d inlines, want 1", len(inlines))
	}
	if inlines[0].Footnote.Index != DefaultFootnoteIndex {
		t.Errorf("footnote index = %q, want %q", inlines[0].Footnote.Index, DefaultFootnoteIndex)
	}
}

func TestParseStructuralErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{
			name: "missing title without default",
			data: `{"metadata": {}, "sequences": []}`,
			want: "no title",
		},
		{
			name: "sequence without class",
			data: `{"metadata": {"title": "t"}, "sequences": [{"areas": []}]}`,
			want: "non-empty style class",
		},
		{
			name: "blank supplied class",
			data: `{"metadata": {"title": "t"}, "sequences": [{"style_class": "page", "areas": [{"elements": [{"kind": "paragraph", "style_class": "  ", "text": []}]}]}]}`,
			want: "supplied but blank",
		},
		{
			name: "text run without text",
			data: `{"metadata": {"title": "t"}, "sequences": [{"style_class": "page", "areas": [{"elements": [{"kind": "paragraph", "text": [{"kind": "text"}]}]}]}]}`,
			want: "text run without text",
		},
		{
			name: "not json",
			data: `{]`,
			want: "unable to decode document",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDocumentJSON(strings.NewReader(tt.data), ParseOptions{}, nil)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestParseCollectsAllErrors(t *testing.T) {
	data := `{
  "metadata": {},
  "sequences": [
    {"areas": []},
    {"areas": []}
  ]
}`
	_, err := ParseDocumentJSON(strings.NewReader(data), ParseOptions{}, nil)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	for _, want := range []string{"no title", "sequence 0", "sequence 1"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %q", err, want)
		}
	}
}
