package cascade

import (
	"go.uber.org/zap"

	"press/doc"
	"press/style"
)

// noDefault marks node kinds without a standard default entry, inline runs
// being the only ones.
const noDefault style.StandardKind = -1

// Resolver performs resolution passes over content trees. It holds no
// per-pass state, a single resolver may serve any number of trees.
type Resolver struct {
	log *zap.Logger
}

func NewResolver(log *zap.Logger) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{log: log}
}

// Resolve computes the style of every node in the document against the sheet
// and returns the resulting resolution. It never fails: missing classes,
// mismatched kinds and absent defaults are logged and substituted along the
// fallback chain, so every visited node ends up with a valid bag. Re-running
// the pass over the same inputs produces an equal resolution.
func (r *Resolver) Resolve(d *doc.Document, sheet *style.Sheet) Resolution {
	res := make(Resolution)
	root := NewContext(sheet)

	for i := range d.Sequences {
		seq := &d.Sequences[i]
		_, ctx := r.resolveNode(res, root, seq, []string{seq.StyleClass}, style.KindSection, style.StdPage)
		for j := range seq.Areas {
			area := &seq.Areas[j]
			for k := range area.Elements {
				r.resolveElement(res, ctx, &area.Elements[k])
			}
		}
	}
	return res
}

// resolveNode runs the fallback chain for one node, records the result and
// returns it together with the context its children should be resolved in.
func (r *Resolver) resolveNode(res Resolution, ctx Context, node any, keys []string, expected style.Kind, std style.StandardKind) (style.Style, Context) {
	chosen := r.lookup(ctx, keys, expected, std)
	resolved := chosen.Clone()
	resolved.MergeFrom(ctx.Parent)
	res.put(node, resolved)
	return resolved, ctx.Child(resolved)
}

// lookup walks the chain: first registered class key of the expected kind,
// then the standard default, then an empty bag. Entries of the wrong kind
// are treated as absent.
func (r *Resolver) lookup(ctx Context, keys []string, expected style.Kind, std style.StandardKind) style.Style {
	supplied := false
	for _, key := range keys {
		if len(key) == 0 {
			continue
		}
		supplied = true
		e, ok := ctx.Map.Get(key)
		if !ok {
			continue
		}
		if e.Style.Kind() != expected {
			r.log.Warn("Style class has unexpected kind, ignoring",
				zap.String("class", key),
				zap.Stringer("have", e.Style.Kind()),
				zap.Stringer("want", expected))
			continue
		}
		return e.Style
	}
	if supplied {
		r.log.Warn("Unknown style class, falling back to default", zap.Strings("class", keys))
	}

	if std != noDefault {
		if e, ok := ctx.Sheet.Default(std); ok {
			if e.Style.Kind() == expected {
				return e.Style
			}
			r.log.Warn("Default style has unexpected kind, ignoring",
				zap.Stringer("element", std),
				zap.String("style", e.Name),
				zap.Stringer("have", e.Style.Kind()),
				zap.Stringer("want", expected))
		} else {
			r.log.Warn("No default style registered, using empty style", zap.Stringer("element", std))
		}
	}
	return style.New(expected)
}

func (r *Resolver) resolveElement(res Resolution, ctx Context, e *doc.Element) {
	switch e.Kind {
	case doc.ElementParagraph:
		p := e.Paragraph
		_, child := r.resolveNode(res, ctx, p, []string{p.StyleClass}, style.KindTextBlock, style.StdParagraph)
		r.resolveInlines(res, child, p.Text)
	case doc.ElementHeadline:
		h := e.Headline
		_, child := r.resolveNode(res, ctx, h, []string{h.StyleClass}, style.KindTextBlock, style.HeadingKind(h.Level))
		r.resolveInlines(res, child, h.Text)
	case doc.ElementSection:
		s := e.Section
		_, child := r.resolveNode(res, ctx, s, sectionKeys(s), style.KindSection, style.StdSection)
		for i := range s.Elements {
			r.resolveElement(res, child, &s.Elements[i])
		}
	case doc.ElementPart:
		p := e.Part
		_, child := r.resolveNode(res, ctx, p, []string{p.StyleClass}, style.KindPart, style.StdPart)
		for i := range p.Elements {
			r.resolveElement(res, child, &p.Elements[i])
		}
	case doc.ElementList:
		r.resolveList(res, ctx, e.List)
	case doc.ElementTable:
		r.resolveTable(res, ctx, e.Table)
	case doc.ElementLayout:
		l := e.Layout
		_, child := r.resolveNode(res, ctx, l, []string{l.StyleClass}, style.KindLayoutTable, style.StdLayout)
		if l.Left != nil {
			r.resolveElement(res, child, l.Left)
		}
		if l.Right != nil {
			r.resolveElement(res, child, l.Right)
		}
	case doc.ElementImage:
		img := e.Image
		r.resolveNode(res, ctx, img, []string{img.StyleClass}, style.KindBlockImage, style.StdImage)
	default:
		r.log.Warn("Unexpected element kind during resolution, ignoring", zap.String("kind", string(e.Kind)))
	}
}

// sectionKeys composes the variant-qualified key looked up before the bare
// class, "notice-box.note" for class "notice-box" with the note variant.
func sectionKeys(s *doc.Section) []string {
	if len(s.StyleClass) == 0 {
		return nil
	}
	return []string{s.StyleClass + "." + s.Variant.StyleName(), s.StyleClass}
}

func (r *Resolver) resolveList(res Resolution, ctx Context, l *doc.SimpleList) {
	_, child := r.resolveNode(res, ctx, l, []string{l.StyleClass}, style.KindList, style.StdList)
	for i := range l.Items {
		item := &l.Items[i]
		_, itemCtx := r.resolveNode(res, child, item, []string{item.StyleClass}, style.KindListItem, style.StdListItem)
		r.resolveInlines(res, itemCtx, item.Label)
		for j := range item.Elements {
			r.resolveElement(res, itemCtx, &item.Elements[j])
		}
	}
}

// resolveTable resolves the table bag and hands one child context down
// uniformly. Sections and rows carry no style of their own, so cells merge
// straight from the table's resolved style.
func (r *Resolver) resolveTable(res Resolution, ctx Context, t *doc.Table) {
	_, child := r.resolveNode(res, ctx, t, []string{t.StyleClass}, style.KindTable, style.StdTable)
	r.resolveTableSection(res, child, t.Header)
	r.resolveTableSection(res, child, t.Body)
	r.resolveTableSection(res, child, t.Footer)
}

func (r *Resolver) resolveTableSection(res Resolution, ctx Context, ts *doc.TableSection) {
	if ts == nil {
		return
	}
	for i := range ts.Rows {
		row := &ts.Rows[i]
		for j := range row.Cells {
			cell := &row.Cells[j]
			_, cellCtx := r.resolveNode(res, ctx, cell, []string{cell.StyleClass}, style.KindTableCell, style.StdTableCell)
			for k := range cell.Elements {
				r.resolveElement(res, cellCtx, &cell.Elements[k])
			}
		}
	}
}

func (r *Resolver) resolveInlines(res Resolution, ctx Context, inlines []doc.Inline) {
	for i := range inlines {
		in := &inlines[i]
		switch in.Kind {
		case doc.InlineText:
			r.resolveNode(res, ctx, in.Text, []string{in.Text.StyleClass}, style.KindTextRun, noDefault)
		case doc.InlineLink:
			r.resolveNode(res, ctx, in.Link, []string{in.Link.StyleClass}, style.KindTextRun, noDefault)
		case doc.InlinePageNumber:
			// pure layout marker, carries no style at all
		case doc.InlineFootnote:
			r.resolveFootnote(res, ctx, in.Footnote)
		default:
			r.log.Warn("Unexpected inline kind during resolution, ignoring", zap.String("kind", string(in.Kind)))
		}
	}
}

// resolveFootnote works in two phases. The body style resolves against the
// surrounding text's context first, then the footnote's inline children
// resolve against the body style alone, keeping the note internally
// consistent but independent from its reference point.
func (r *Resolver) resolveFootnote(res Resolution, ctx Context, f *doc.Footnote) {
	_, child := r.resolveNode(res, ctx, f, []string{f.StyleClass}, style.KindFootnote, style.StdFootnote)
	r.resolveInlines(res, child, f.Inlines)
}
