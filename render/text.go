package render

import (
	"context"
	"fmt"
	"io"
	"maps"
	"slices"
	"sort"

	"github.com/maruel/natural"

	"press/cascade"
	"press/doc"
	"press/resources"
	"press/utils/debug"
)

// TextRenderer writes a readable tree of the document with each node's
// resolved style kind attached. It doubles as a check that the resolution
// covers the whole tree: a styled node without a recorded style is an error.
type TextRenderer struct{}

func NewTextRenderer() *TextRenderer {
	return &TextRenderer{}
}

type textPass struct {
	tw  *debug.TreeWriter
	res cascade.Resolution
}

func (r *TextRenderer) Render(ctx context.Context, d *doc.Document, res cascade.Resolution, assets *resources.Assets, out io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p := &textPass{tw: debug.NewTreeWriter(), res: res}

	p.tw.Node(0, "document", "title", d.Meta.Title, "lang", d.Meta.Lang.String())
	for i := range d.Sequences {
		seq := &d.Sequences[i]
		if err := p.styled(1, "sequence", seq, "class", seq.StyleClass); err != nil {
			return err
		}
		for j := range seq.Areas {
			area := &seq.Areas[j]
			p.tw.Node(2, "area", "role", string(area.Role))
			for k := range area.Elements {
				if err := p.element(3, &area.Elements[k]); err != nil {
					return err
				}
			}
		}
	}

	p.renderAssets(assets)

	_, err := io.WriteString(out, p.tw.String())
	return err
}

// styled writes one node line and verifies its style was resolved.
func (p *textPass) styled(depth int, name string, node any, pairs ...any) error {
	s := p.res.Of(node)
	if s == nil {
		return fmt.Errorf("%s has no resolved style, tree was not resolved", name)
	}
	p.tw.Node(depth, name, append(pairs, "style", s.Kind().String())...)
	return nil
}

func (p *textPass) element(depth int, e *doc.Element) error {
	switch e.Kind {
	case doc.ElementParagraph:
		if err := p.styled(depth, "paragraph", e.Paragraph, "class", e.Paragraph.StyleClass); err != nil {
			return err
		}
		return p.inlines(depth+1, e.Paragraph.Text)
	case doc.ElementHeadline:
		if err := p.styled(depth, "headline", e.Headline, "level", e.Headline.Level, "class", e.Headline.StyleClass); err != nil {
			return err
		}
		return p.inlines(depth+1, e.Headline.Text)
	case doc.ElementSection:
		if err := p.styled(depth, "section", e.Section, "variant", string(e.Section.Variant), "class", e.Section.StyleClass); err != nil {
			return err
		}
		return p.elements(depth+1, e.Section.Elements)
	case doc.ElementPart:
		if err := p.styled(depth, "part", e.Part, "role", e.Part.Variant.Role(), "class", e.Part.StyleClass); err != nil {
			return err
		}
		return p.elements(depth+1, e.Part.Elements)
	case doc.ElementList:
		if err := p.styled(depth, "list", e.List, "ordering", string(e.List.Ordering), "class", e.List.StyleClass); err != nil {
			return err
		}
		for i := range e.List.Items {
			item := &e.List.Items[i]
			if err := p.styled(depth+1, "item", item, "class", item.StyleClass); err != nil {
				return err
			}
			if err := p.inlines(depth+2, item.Label); err != nil {
				return err
			}
			if err := p.elements(depth+2, item.Elements); err != nil {
				return err
			}
		}
	case doc.ElementTable:
		if err := p.styled(depth, "table", e.Table, "columns", e.Table.Columns, "class", e.Table.StyleClass); err != nil {
			return err
		}
		for _, ts := range []*doc.TableSection{e.Table.Header, e.Table.Body, e.Table.Footer} {
			if ts == nil {
				continue
			}
			for i := range ts.Rows {
				row := &ts.Rows[i]
				p.tw.Line(depth+1, "row")
				for j := range row.Cells {
					cell := &row.Cells[j]
					if err := p.styled(depth+2, "cell", cell, "colspan", cell.Colspan, "rowspan", cell.Rowspan, "class", cell.StyleClass); err != nil {
						return err
					}
					if err := p.elements(depth+3, cell.Elements); err != nil {
						return err
					}
				}
			}
		}
	case doc.ElementLayout:
		if err := p.styled(depth, "layout-table", e.Layout, "class", e.Layout.StyleClass); err != nil {
			return err
		}
		if e.Layout.Left != nil {
			if err := p.element(depth+1, e.Layout.Left); err != nil {
				return err
			}
		}
		if e.Layout.Right != nil {
			if err := p.element(depth+1, e.Layout.Right); err != nil {
				return err
			}
		}
	case doc.ElementImage:
		if err := p.styled(depth, "block-image", e.Image, "path", e.Image.Path, "class", e.Image.StyleClass); err != nil {
			return err
		}
	}
	return nil
}

func (p *textPass) elements(depth int, elements []doc.Element) error {
	for i := range elements {
		if err := p.element(depth, &elements[i]); err != nil {
			return err
		}
	}
	return nil
}

func (p *textPass) inlines(depth int, inlines []doc.Inline) error {
	for i := range inlines {
		in := &inlines[i]
		switch in.Kind {
		case doc.InlineText:
			if err := p.styled(depth, "text", in.Text, "value", in.Text.Text); err != nil {
				return err
			}
		case doc.InlineLink:
			if err := p.styled(depth, "link", in.Link, "href", in.Link.Href, "value", in.Link.Text); err != nil {
				return err
			}
		case doc.InlinePageNumber:
			p.tw.Line(depth, "page-number")
		case doc.InlineFootnote:
			if err := p.styled(depth, "footnote", in.Footnote, "index", in.Footnote.Index); err != nil {
				return err
			}
			if err := p.inlines(depth+1, in.Footnote.Inlines); err != nil {
				return err
			}
		}
	}
	return nil
}

func (p *textPass) renderAssets(assets *resources.Assets) {
	if assets == nil {
		return
	}
	for _, name := range sortedKeys(assets.Fonts) {
		a := assets.Fonts[name]
		p.tw.Node(1, "font", "name", a.Name, "path", a.Path, "type", a.MIME)
	}
	for _, name := range sortedKeys(assets.Images) {
		a := assets.Images[name]
		p.tw.Node(1, "image", "name", a.Name, "path", a.Path, "type", a.MIME, "size", fmt.Sprintf("%dx%d", a.Width, a.Height))
	}
}

func sortedKeys(m map[string]resources.Asset) []string {
	keys := slices.Collect(maps.Keys(m))
	sort.Sort(natural.StringSlice(keys))
	return keys
}
