package cascade

import (
	"reflect"
	"testing"

	"press/doc"
	"press/style"
)

func fptr(v float64) *float64                   { return &v }
func wptr(v style.FontWeight) *style.FontWeight { return &v }

func mustSheet(t *testing.T, entries ...*style.Entry) *style.Sheet {
	t.Helper()
	s, err := style.NewSheet(entries...)
	if err != nil {
		t.Fatalf("unable to build sheet: %v", err)
	}
	return s
}

func singleParagraphDoc(p *doc.Paragraph) *doc.Document {
	return &doc.Document{
		Sequences: []doc.PageSequence{
			{
				StyleClass: "page",
				Areas: []doc.ContentArea{
					{Role: doc.AreaMain, Elements: []doc.Element{doc.ParagraphElement(p)}},
				},
			},
		},
	}
}

func pageEntry(size float64) *style.Entry {
	return &style.Entry{
		Name: "page",
		Kind: style.KindSection,
		Style: &style.SectionStyle{
			FontProps: style.FontProps{FontSize: fptr(size)},
		},
	}
}

func TestResolveClassLookup(t *testing.T) {
	sheet := mustSheet(t,
		pageEntry(11),
		&style.Entry{
			Name: "h1",
			Kind: style.KindTextBlock,
			Style: &style.BlockStyle{
				FontProps: style.FontProps{FontSize: fptr(24), FontWeight: wptr(style.WeightBold)},
			},
		},
	)

	h := doc.NewHeadline("h1", 1, doc.Run("Title"))
	d := &doc.Document{
		Sequences: []doc.PageSequence{
			{
				StyleClass: "page",
				Areas: []doc.ContentArea{
					{Role: doc.AreaMain, Elements: []doc.Element{doc.HeadlineElement(h)}},
				},
			},
		},
	}

	res := NewResolver(nil).Resolve(d, sheet)

	got, ok := res.Of(h).(*style.BlockStyle)
	if !ok {
		t.Fatalf("headline resolved to %T, want *style.BlockStyle", res.Of(h))
	}
	if got.FontSize == nil || *got.FontSize != 24 {
		t.Errorf("headline font size = %v, want 24", got.FontSize)
	}
	if got.FontWeight == nil || *got.FontWeight != style.WeightBold {
		t.Errorf("headline font weight = %v, want bold", got.FontWeight)
	}
}

func TestResolveFallbackToDefault(t *testing.T) {
	body := &style.Entry{
		Name: "body",
		Kind: style.KindTextBlock,
		Style: &style.BlockStyle{
			TextProps: style.TextProps{Indent: fptr(12)},
		},
	}
	sheet := mustSheet(t, pageEntry(11), body)
	if err := sheet.SetDefault(style.StdParagraph, "body"); err != nil {
		t.Fatalf("unable to register default: %v", err)
	}

	p := doc.NewParagraph("no-such-class", doc.Run("text"))
	res := NewResolver(nil).Resolve(singleParagraphDoc(p), sheet)

	got := res.Of(p).(*style.BlockStyle)
	if got.Indent == nil || *got.Indent != 12 {
		t.Errorf("paragraph indent = %v, want 12 from the default", got.Indent)
	}
	if got.FontSize == nil || *got.FontSize != 11 {
		t.Errorf("paragraph font size = %v, want 11 inherited from page", got.FontSize)
	}
}

func TestResolveWrongKindFallsThrough(t *testing.T) {
	sheet := mustSheet(t,
		pageEntry(11),
		// registered under the class a paragraph uses, but a run bag
		&style.Entry{
			Name:  "mismatched",
			Kind:  style.KindTextRun,
			Style: &style.RunStyle{FontProps: style.FontProps{FontSize: fptr(99)}},
		},
	)

	p := doc.NewParagraph("mismatched", doc.Run("text"))
	res := NewResolver(nil).Resolve(singleParagraphDoc(p), sheet)

	got := res.Of(p).(*style.BlockStyle)
	if got.FontSize == nil || *got.FontSize != 11 {
		t.Errorf("paragraph font size = %v, want 11 from page, not 99 from the mismatched bag", got.FontSize)
	}
}

func TestResolveSectionVariantKey(t *testing.T) {
	sheet := mustSheet(t,
		pageEntry(11),
		&style.Entry{
			Name:  "notice-box",
			Kind:  style.KindSection,
			Style: &style.SectionStyle{FontProps: style.FontProps{FontSize: fptr(14)}},
		},
		&style.Entry{
			Name:  "notice-box.note",
			Kind:  style.KindSection,
			Style: &style.SectionStyle{FontProps: style.FontProps{FontSize: fptr(9)}},
		},
	)

	note := doc.NewSection("notice-box", doc.SectionNote)
	plain := doc.NewSection("notice-box", doc.SectionPlain)
	d := &doc.Document{
		Sequences: []doc.PageSequence{
			{
				StyleClass: "page",
				Areas: []doc.ContentArea{
					{Role: doc.AreaMain, Elements: []doc.Element{
						doc.SectionElement(note),
						doc.SectionElement(plain),
					}},
				},
			},
		},
	}

	res := NewResolver(nil).Resolve(d, sheet)

	if got := res.Of(note).(*style.SectionStyle); got.FontSize == nil || *got.FontSize != 9 {
		t.Errorf("note section font size = %v, want 9 from the variant-qualified entry", got.FontSize)
	}
	if got := res.Of(plain).(*style.SectionStyle); got.FontSize == nil || *got.FontSize != 14 {
		t.Errorf("plain section font size = %v, want 14 from the bare class", got.FontSize)
	}
}

func TestResolveFootnoteIsolation(t *testing.T) {
	sheet := mustSheet(t,
		pageEntry(11),
		&style.Entry{
			Name:  "body",
			Kind:  style.KindTextBlock,
			Style: &style.BlockStyle{FontProps: style.FontProps{FontSize: fptr(12)}},
		},
		&style.Entry{
			Name:  "small-note",
			Kind:  style.KindFootnote,
			Style: &style.FootnoteStyle{FontProps: style.FontProps{FontSize: fptr(9)}},
		},
	)

	inner := &doc.TextRun{Text: "note body"}
	fn := doc.NewFootnote("small-note", "1", doc.TextInline(inner))
	run := &doc.TextRun{Text: "before"}
	p := doc.NewParagraph("body", doc.TextInline(run), doc.FootnoteInline(fn))

	res := NewResolver(nil).Resolve(singleParagraphDoc(p), sheet)

	if got := res.Of(fn).(*style.FootnoteStyle); got.FontSize == nil || *got.FontSize != 9 {
		t.Errorf("footnote body font size = %v, want 9", got.FontSize)
	}
	if got := res.Of(inner).(*style.RunStyle); got.FontSize == nil || *got.FontSize != 9 {
		t.Errorf("footnote inline font size = %v, want 9 inherited from the note body", got.FontSize)
	}
	if got := res.Of(run).(*style.RunStyle); got.FontSize == nil || *got.FontSize != 12 {
		t.Errorf("surrounding run font size = %v, want 12 from the paragraph", got.FontSize)
	}
}

func TestResolveTableCellInheritance(t *testing.T) {
	sheet := mustSheet(t,
		pageEntry(11),
		&style.Entry{
			Name:  "bordered",
			Kind:  style.KindTable,
			Style: &style.TableStyle{BoxProps: style.BoxProps{BorderWidth: fptr(1)}},
		},
	)

	cell := doc.NewTableCell("", 2, 1, doc.ParagraphElement(doc.NewParagraph("", doc.Run("x"))))
	table := &doc.Table{
		StyleClass: "bordered",
		Columns:    2,
		Body:       &doc.TableSection{Rows: []doc.TableRow{{Cells: []doc.TableCell{cell}}}},
	}
	d := &doc.Document{
		Sequences: []doc.PageSequence{
			{
				StyleClass: "page",
				Areas: []doc.ContentArea{
					{Role: doc.AreaMain, Elements: []doc.Element{doc.TableElement(table)}},
				},
			},
		},
	}

	res := NewResolver(nil).Resolve(d, sheet)

	stored := &table.Body.Rows[0].Cells[0]
	got, ok := res.Of(stored).(*style.CellStyle)
	if !ok {
		t.Fatalf("cell resolved to %T, want *style.CellStyle", res.Of(stored))
	}
	if got.BorderWidth == nil || *got.BorderWidth != 1 {
		t.Errorf("cell border width = %v, want 1 inherited from the table", got.BorderWidth)
	}
	if stored.Colspan != 2 {
		t.Errorf("cell colspan = %d, want 2 untouched by resolution", stored.Colspan)
	}
}

func TestResolveLayoutSidesShareContext(t *testing.T) {
	sheet := mustSheet(t,
		pageEntry(11),
		&style.Entry{
			Name:  "columns",
			Kind:  style.KindLayoutTable,
			Style: &style.LayoutStyle{FontProps: style.FontProps{FontSize: fptr(10)}, Split: fptr(0.5)},
		},
	)

	left := doc.NewParagraph("", doc.Run("left"))
	right := doc.NewParagraph("", doc.Run("right"))
	le := doc.ParagraphElement(left)
	re := doc.ParagraphElement(right)
	layout := &doc.LayoutTable{StyleClass: "columns", Left: &le, Right: &re}
	d := &doc.Document{
		Sequences: []doc.PageSequence{
			{
				StyleClass: "page",
				Areas: []doc.ContentArea{
					{Role: doc.AreaMain, Elements: []doc.Element{doc.LayoutElement(layout)}},
				},
			},
		},
	}

	res := NewResolver(nil).Resolve(d, sheet)

	for _, p := range []*doc.Paragraph{left, right} {
		got := res.Of(p).(*style.BlockStyle)
		if got.FontSize == nil || *got.FontSize != 10 {
			t.Errorf("side paragraph font size = %v, want 10 from the layout context", got.FontSize)
		}
	}
}

func TestResolvePageNumberHasNoStyle(t *testing.T) {
	sheet := mustSheet(t, pageEntry(11))

	run := &doc.TextRun{Text: "Page "}
	p := doc.NewParagraph("", doc.TextInline(run), doc.PageNumberInline())
	res := NewResolver(nil).Resolve(singleParagraphDoc(p), sheet)

	// sequence, paragraph and run, nothing for the marker
	if len(res) != 3 {
		t.Errorf("resolution has %d entries, want 3", len(res))
	}
	if !res.Has(run) {
		t.Error("text run has no resolved style")
	}
}

func TestResolveRepeatable(t *testing.T) {
	sheet, err := style.DefaultSheet()
	if err != nil {
		t.Fatalf("unable to load default sheet: %v", err)
	}

	p := doc.NewParagraph("body-text", doc.Run("text"), doc.FootnoteInline(doc.NewFootnote("", "*", doc.Run("note"))))
	d := singleParagraphDoc(p)
	d.Sequences[0].StyleClass = "page-body"

	r := NewResolver(nil)
	first := r.Resolve(d, sheet)
	second := r.Resolve(d, sheet)

	if !reflect.DeepEqual(first, second) {
		t.Error("two passes over the same tree produced different resolutions")
	}
}

func TestResolveDefaultSheetHeadings(t *testing.T) {
	sheet, err := style.DefaultSheet()
	if err != nil {
		t.Fatalf("unable to load default sheet: %v", err)
	}

	h := doc.NewHeadline("", 1, doc.Run("Title"))
	d := &doc.Document{
		Sequences: []doc.PageSequence{
			{
				StyleClass: "page-body",
				Areas: []doc.ContentArea{
					{Role: doc.AreaMain, Elements: []doc.Element{doc.HeadlineElement(h)}},
				},
			},
		},
	}

	res := NewResolver(nil).Resolve(d, sheet)

	got := res.Of(h).(*style.BlockStyle)
	if got.FontSize == nil || *got.FontSize != 24 {
		t.Errorf("h1 font size = %v, want 24 from the built-in sheet", got.FontSize)
	}
	if got.FontFamily == nil || *got.FontFamily != "Serif" {
		t.Errorf("h1 font family = %v, want Serif inherited from the page", got.FontFamily)
	}
}
