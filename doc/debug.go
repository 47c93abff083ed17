package doc

import (
	"maps"
	"slices"
	"sort"

	"github.com/maruel/natural"

	"press/utils/debug"
)

// String returns a readable tree of the whole document. It exists solely for
// manual inspection during debugging.
func (d *Document) String() string {
	if d == nil {
		return "<nil Document>"
	}

	tw := debug.NewTreeWriter()
	tw.Line(0, "document")
	tw.TextBlock(1, "title", d.Meta.Title)
	for _, a := range d.Meta.Authors {
		tw.TextBlock(1, "author", a)
	}
	if !d.Meta.Lang.IsRoot() {
		tw.TextBlock(1, "lang", d.Meta.Lang.String())
	}
	tw.TextBlock(1, "id", d.Meta.ID)

	if d.Addresses != nil {
		dumpDictionary(tw, "fonts", d.Addresses.FontDictionary)
		dumpDictionary(tw, "images", d.Addresses.ImageDictionary)
	}

	for i := range d.Sequences {
		seq := &d.Sequences[i]
		tw.Node(1, "sequence", "class", seq.StyleClass)
		for j := range seq.Areas {
			area := &seq.Areas[j]
			tw.Node(2, "area", "role", string(area.Role))
			for k := range area.Elements {
				dumpElement(tw, 3, &area.Elements[k])
			}
		}
	}
	return tw.String()
}

func dumpDictionary(tw *debug.TreeWriter, label string, dict map[string]string) {
	if len(dict) == 0 {
		return
	}
	tw.Line(1, "%s (%d entries)", label, len(dict))
	keys := slices.Collect(maps.Keys(dict))
	sort.Sort(natural.StringSlice(keys))
	for _, k := range keys {
		tw.Line(2, "%s -> %s", k, dict[k])
	}
}

func dumpElement(tw *debug.TreeWriter, depth int, e *Element) {
	switch e.Kind {
	case ElementParagraph:
		tw.Node(depth, "paragraph", "class", e.Paragraph.StyleClass)
		dumpInlines(tw, depth+1, e.Paragraph.Text)
	case ElementHeadline:
		tw.Node(depth, "headline", "level", e.Headline.Level, "class", e.Headline.StyleClass)
		dumpInlines(tw, depth+1, e.Headline.Text)
	case ElementSection:
		tw.Node(depth, "section", "variant", string(e.Section.Variant), "class", e.Section.StyleClass, "alt", e.Section.AltText)
		for i := range e.Section.Elements {
			dumpElement(tw, depth+1, &e.Section.Elements[i])
		}
	case ElementPart:
		tw.Node(depth, "part", "role", e.Part.Variant.Role(), "class", e.Part.StyleClass)
		for i := range e.Part.Elements {
			dumpElement(tw, depth+1, &e.Part.Elements[i])
		}
	case ElementList:
		tw.Node(depth, "list", "ordering", string(e.List.Ordering), "class", e.List.StyleClass)
		for i := range e.List.Items {
			item := &e.List.Items[i]
			tw.Node(depth+1, "item", "class", item.StyleClass)
			dumpInlines(tw, depth+2, item.Label)
			for j := range item.Elements {
				dumpElement(tw, depth+2, &item.Elements[j])
			}
		}
	case ElementTable:
		tw.Node(depth, "table", "columns", e.Table.Columns, "class", e.Table.StyleClass)
		dumpTableSection(tw, depth+1, "header", e.Table.Header)
		dumpTableSection(tw, depth+1, "body", e.Table.Body)
		dumpTableSection(tw, depth+1, "footer", e.Table.Footer)
	case ElementLayout:
		tw.Node(depth, "layout-table", "class", e.Layout.StyleClass)
		if e.Layout.Left != nil {
			tw.Line(depth+1, "left")
			dumpElement(tw, depth+2, e.Layout.Left)
		}
		if e.Layout.Right != nil {
			tw.Line(depth+1, "right")
			dumpElement(tw, depth+2, e.Layout.Right)
		}
	case ElementImage:
		tw.Node(depth, "block-image", "path", e.Image.Path, "alt", e.Image.AltText, "class", e.Image.StyleClass)
	default:
		tw.Node(depth, "unknown-element", "kind", string(e.Kind))
	}
}

func dumpTableSection(tw *debug.TreeWriter, depth int, label string, ts *TableSection) {
	if ts == nil {
		return
	}
	tw.Line(depth, "%s (%d rows)", label, len(ts.Rows))
	for i := range ts.Rows {
		row := &ts.Rows[i]
		tw.Line(depth+1, "row")
		for j := range row.Cells {
			cell := &row.Cells[j]
			tw.Node(depth+2, "cell", "colspan", cell.Colspan, "rowspan", cell.Rowspan, "class", cell.StyleClass)
			for k := range cell.Elements {
				dumpElement(tw, depth+3, &cell.Elements[k])
			}
		}
	}
}

func dumpInlines(tw *debug.TreeWriter, depth int, inlines []Inline) {
	for i := range inlines {
		in := &inlines[i]
		switch in.Kind {
		case InlineText:
			tw.Node(depth, "text", "class", in.Text.StyleClass, "value", in.Text.Text)
		case InlineLink:
			tw.Node(depth, "link", "href", in.Link.Href, "class", in.Link.StyleClass, "value", in.Link.Text)
		case InlinePageNumber:
			tw.Line(depth, "page-number")
		case InlineFootnote:
			tw.Node(depth, "footnote", "index", in.Footnote.Index, "class", in.Footnote.StyleClass)
			dumpInlines(tw, depth+1, in.Footnote.Inlines)
		default:
			tw.Node(depth, "unknown-inline", "kind", string(in.Kind))
		}
	}
}
