package cascade

import (
	"fmt"
	"maps"
	"slices"
	"sort"

	"github.com/beevik/etree"
	"github.com/maruel/natural"
	yaml "gopkg.in/yaml.v3"

	"press/doc"
	"press/style"
)

// DebugXML renders the document tree as XML with every node's resolved style
// flattened into attributes. It exists solely for manual inspection and
// debug reports.
func (res Resolution) DebugXML(d *doc.Document) (string, error) {
	out := etree.NewDocument()
	out.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := out.CreateElement("resolution")
	root.CreateAttr("title", d.Meta.Title)

	for i := range d.Sequences {
		seq := &d.Sequences[i]
		se := root.CreateElement("sequence")
		se.CreateAttr("class", seq.StyleClass)
		if err := res.styleAttrs(se, seq); err != nil {
			return "", err
		}
		for j := range seq.Areas {
			area := &seq.Areas[j]
			ae := se.CreateElement("area")
			ae.CreateAttr("role", string(area.Role))
			for k := range area.Elements {
				if err := res.elementXML(ae, &area.Elements[k]); err != nil {
					return "", err
				}
			}
		}
	}

	out.Indent(2)
	return out.WriteToString()
}

func (res Resolution) elementXML(parent *etree.Element, e *doc.Element) error {
	switch e.Kind {
	case doc.ElementParagraph:
		pe := res.nodeXML(parent, "paragraph", e.Paragraph.StyleClass, e.Paragraph)
		return res.inlinesXML(pe, e.Paragraph.Text)
	case doc.ElementHeadline:
		he := res.nodeXML(parent, "headline", e.Headline.StyleClass, e.Headline)
		he.CreateAttr("level", fmt.Sprintf("%d", e.Headline.Level))
		return res.inlinesXML(he, e.Headline.Text)
	case doc.ElementSection:
		se := res.nodeXML(parent, "section", e.Section.StyleClass, e.Section)
		se.CreateAttr("variant", string(e.Section.Variant))
		for i := range e.Section.Elements {
			if err := res.elementXML(se, &e.Section.Elements[i]); err != nil {
				return err
			}
		}
	case doc.ElementPart:
		pe := res.nodeXML(parent, "part", e.Part.StyleClass, e.Part)
		pe.CreateAttr("role", e.Part.Variant.Role())
		for i := range e.Part.Elements {
			if err := res.elementXML(pe, &e.Part.Elements[i]); err != nil {
				return err
			}
		}
	case doc.ElementList:
		le := res.nodeXML(parent, "list", e.List.StyleClass, e.List)
		le.CreateAttr("ordering", string(e.List.Ordering))
		for i := range e.List.Items {
			item := &e.List.Items[i]
			ie := res.nodeXML(le, "item", item.StyleClass, item)
			if err := res.inlinesXML(ie.CreateElement("label"), item.Label); err != nil {
				return err
			}
			for j := range item.Elements {
				if err := res.elementXML(ie, &item.Elements[j]); err != nil {
					return err
				}
			}
		}
	case doc.ElementTable:
		te := res.nodeXML(parent, "table", e.Table.StyleClass, e.Table)
		te.CreateAttr("columns", fmt.Sprintf("%d", e.Table.Columns))
		for _, part := range []struct {
			name string
			ts   *doc.TableSection
		}{
			{"header", e.Table.Header},
			{"body", e.Table.Body},
			{"footer", e.Table.Footer},
		} {
			if part.ts == nil {
				continue
			}
			pe := te.CreateElement(part.name)
			for i := range part.ts.Rows {
				row := &part.ts.Rows[i]
				re := pe.CreateElement("row")
				for j := range row.Cells {
					cell := &row.Cells[j]
					ce := res.nodeXML(re, "cell", cell.StyleClass, cell)
					ce.CreateAttr("colspan", fmt.Sprintf("%d", cell.Colspan))
					ce.CreateAttr("rowspan", fmt.Sprintf("%d", cell.Rowspan))
					for k := range cell.Elements {
						if err := res.elementXML(ce, &cell.Elements[k]); err != nil {
							return err
						}
					}
				}
			}
		}
	case doc.ElementLayout:
		le := res.nodeXML(parent, "layout-table", e.Layout.StyleClass, e.Layout)
		if e.Layout.Left != nil {
			if err := res.elementXML(le.CreateElement("left"), e.Layout.Left); err != nil {
				return err
			}
		}
		if e.Layout.Right != nil {
			if err := res.elementXML(le.CreateElement("right"), e.Layout.Right); err != nil {
				return err
			}
		}
	case doc.ElementImage:
		ie := res.nodeXML(parent, "block-image", e.Image.StyleClass, e.Image)
		ie.CreateAttr("path", e.Image.Path)
	}
	return nil
}

func (res Resolution) inlinesXML(parent *etree.Element, inlines []doc.Inline) error {
	for i := range inlines {
		in := &inlines[i]
		switch in.Kind {
		case doc.InlineText:
			te := res.nodeXML(parent, "text", in.Text.StyleClass, in.Text)
			te.SetText(in.Text.Text)
		case doc.InlineLink:
			le := res.nodeXML(parent, "link", in.Link.StyleClass, in.Link)
			le.CreateAttr("href", in.Link.Href)
			le.SetText(in.Link.Text)
		case doc.InlinePageNumber:
			parent.CreateElement("page-number")
		case doc.InlineFootnote:
			fe := res.nodeXML(parent, "footnote", in.Footnote.StyleClass, in.Footnote)
			fe.CreateAttr("index", in.Footnote.Index)
			if err := res.inlinesXML(fe, in.Footnote.Inlines); err != nil {
				return err
			}
		}
	}
	return nil
}

func (res Resolution) nodeXML(parent *etree.Element, name, class string, node any) *etree.Element {
	e := parent.CreateElement(name)
	if len(class) != 0 {
		e.CreateAttr("class", class)
	}
	// best effort, a broken style dump shows up as a missing attribute set
	_ = res.styleAttrs(e, node)
	return e
}

// styleAttrs flattens the set fields of the node's resolved bag into sorted
// attributes, going through YAML so field names match stylesheet keys.
func (res Resolution) styleAttrs(e *etree.Element, node any) error {
	s := res.Of(node)
	if s == nil {
		return nil
	}
	fields, err := styleFields(s)
	if err != nil {
		return err
	}
	keys := slices.Collect(maps.Keys(fields))
	sort.Sort(natural.StringSlice(keys))
	for _, k := range keys {
		e.CreateAttr(k, fmt.Sprintf("%v", fields[k]))
	}
	return nil
}

func styleFields(s style.Style) (map[string]any, error) {
	data, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("unable to serialize resolved style: %w", err)
	}
	fields := make(map[string]any)
	if err := yaml.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("unable to flatten resolved style: %w", err)
	}
	return fields, nil
}
