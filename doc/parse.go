package doc

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

// JSON wire format parsing. We want exhaustive parsing: every recognized
// field is mapped explicitly, anything unexpected is logged and skipped, and
// structural invariant violations are collected and rejected before
// resolution ever starts. Style lookups that may fail are NOT checked here -
// the cascade always produces a valid bag via its fallback chain.

// ParseOptions carries the default substitutions the parser may apply.
type ParseOptions struct {
	// DefaultTitle is substituted when metadata carries no title. When empty
	// a missing title is a hard error.
	DefaultTitle string
	// DefaultFootnoteIndex overrides the built-in "*" substitution.
	DefaultFootnoteIndex string
}

type documentWire struct {
	Metadata  *metadataWire  `json:"metadata"`
	Addresses *addressesWire `json:"addresses"`
	Sequences []sequenceWire `json:"sequences"`
}

type metadataWire struct {
	Title   *string  `json:"title"`
	Authors []string `json:"authors"`
	Lang    string   `json:"lang"`
	ID      string   `json:"id"`
}

type addressesWire struct {
	Fonts  map[string]string `json:"fonts"`
	Images map[string]string `json:"images"`
}

type sequenceWire struct {
	StyleClass *string    `json:"style_class"`
	Areas      []areaWire `json:"areas"`
}

type areaWire struct {
	Role     string        `json:"role"`
	Elements []elementWire `json:"elements"`
}

// elementWire is the superset of all block element fields; Kind decides
// which ones are meaningful.
type elementWire struct {
	Kind       string        `json:"kind"`
	StyleClass *string       `json:"style_class"`
	Level      *int          `json:"level"`
	Variant    string        `json:"variant"`
	AltText    string        `json:"alt_text"`
	Ordering   string        `json:"ordering"`
	Text       []inlineWire  `json:"text"`
	Elements   []elementWire `json:"elements"`
	Items      []itemWire    `json:"items"`
	Columns    int           `json:"columns"`
	Header     *tsecWire     `json:"header"`
	Body       *tsecWire     `json:"body"`
	Footer     *tsecWire     `json:"footer"`
	Left       *elementWire  `json:"left"`
	Right      *elementWire  `json:"right"`
	Path       string        `json:"path"`
}

type itemWire struct {
	StyleClass *string       `json:"style_class"`
	Label      []inlineWire  `json:"label"`
	Elements   []elementWire `json:"elements"`
}

type tsecWire struct {
	Rows []rowWire `json:"rows"`
}

type rowWire struct {
	Cells []cellWire `json:"cells"`
}

type cellWire struct {
	StyleClass *string       `json:"style_class"`
	Colspan    int           `json:"colspan"`
	Rowspan    int           `json:"rowspan"`
	Elements   []elementWire `json:"elements"`
}

// inlineWire is the superset of all inline element fields.
type inlineWire struct {
	Kind       string       `json:"kind"`
	StyleClass *string      `json:"style_class"`
	Text       *string      `json:"text"`
	Href       string       `json:"href"`
	AltText    string       `json:"alt_text"`
	Index      string       `json:"index"`
	Inlines    []inlineWire `json:"inlines"`
}

type parser struct {
	opts ParseOptions
	log  *zap.Logger
	errs error
}

func (p *parser) fail(format string, args ...any) {
	p.errs = multierr.Append(p.errs, fmt.Errorf(format, args...))
}

// ParseDocumentJSON decodes the JSON wire format and constructs a validated
// content tree. Recoverable oddities (unknown kinds, out of range heading
// levels, missing footnote indexes) are logged and substituted; structural
// invariant violations are accumulated and returned as one error.
func ParseDocumentJSON(r io.Reader, opts ParseOptions, log *zap.Logger) (*Document, error) {
	var wire documentWire
	dec := json.NewDecoder(r)
	if err := dec.Decode(&wire); err != nil {
		return nil, fmt.Errorf("unable to decode document: %w", err)
	}

	if opts.DefaultFootnoteIndex == "" {
		opts.DefaultFootnoteIndex = DefaultFootnoteIndex
	}
	if log == nil {
		log = zap.NewNop()
	}
	p := &parser{opts: opts, log: log}

	d := &Document{
		Meta:      p.parseMetadata(wire.Metadata),
		Addresses: parseAddresses(wire.Addresses),
	}
	for i := range wire.Sequences {
		d.Sequences = append(d.Sequences, p.parseSequence(&wire.Sequences[i], i))
	}

	if p.errs != nil {
		return nil, p.errs
	}
	return d, nil
}

func (p *parser) parseMetadata(wire *metadataWire) Metadata {
	var meta Metadata
	if wire == nil {
		wire = &metadataWire{}
	}

	switch {
	case wire.Title != nil && strings.TrimSpace(*wire.Title) != "":
		meta.Title = strings.TrimSpace(*wire.Title)
	case p.opts.DefaultTitle != "":
		meta.Title = p.opts.DefaultTitle
		p.log.Warn("Document has no title, substituting default", zap.String("title", meta.Title))
	default:
		p.fail("metadata: document has no title and no default title is configured")
	}

	meta.Authors = wire.Authors
	meta.ID = wire.ID

	meta.Lang = language.Und
	if wire.Lang != "" {
		if tag, err := language.Parse(wire.Lang); err == nil {
			meta.Lang = tag
		} else {
			p.log.Warn("Unable to parse document language", zap.String("lang", wire.Lang))
		}
	}
	return meta
}

func parseAddresses(wire *addressesWire) *InternalAddresses {
	if wire == nil {
		return nil
	}
	return &InternalAddresses{
		FontDictionary:  wire.Fonts,
		ImageDictionary: wire.Images,
	}
}

func (p *parser) parseSequence(wire *sequenceWire, idx int) PageSequence {
	seq := PageSequence{
		StyleClass: p.parseClass(wire.StyleClass, fmt.Sprintf("sequence %d", idx)),
	}
	if seq.StyleClass == "" {
		p.fail("sequence %d: page sequence requires a non-empty style class", idx)
	}
	for i := range wire.Areas {
		area := &wire.Areas[i]
		role := AreaRole(area.Role)
		switch role {
		case AreaMain, AreaHeader, AreaFooter:
		case "":
			role = AreaMain
		default:
			p.log.Warn("Unknown content area role, treating as main", zap.String("role", area.Role))
			role = AreaMain
		}
		seq.Areas = append(seq.Areas, ContentArea{
			Role:     role,
			Elements: p.parseElements(area.Elements),
		})
	}
	return seq
}

// parseClass enforces the "supplied class must not be blank" invariant.
func (p *parser) parseClass(class *string, where string) string {
	if class == nil {
		return ""
	}
	if strings.TrimSpace(*class) == "" {
		p.fail("%s: style class is supplied but blank", where)
		return ""
	}
	return *class
}

func (p *parser) parseElements(wires []elementWire) []Element {
	elements := []Element{}
	for i := range wires {
		if el, ok := p.parseElement(&wires[i]); ok {
			elements = append(elements, el)
		}
	}
	return elements
}

func (p *parser) parseElement(wire *elementWire) (Element, bool) {
	class := p.parseClass(wire.StyleClass, wire.Kind+" element")

	switch ElementKind(wire.Kind) {
	case ElementParagraph:
		return ParagraphElement(NewParagraph(class, p.parseInlines(wire.Text)...)), true

	case ElementHeadline:
		level := 1
		if wire.Level != nil {
			level = *wire.Level
			if level != ClampHeadingLevel(level) {
				p.log.Warn("Heading level out of range, clamping", zap.Int("level", level))
			}
		}
		return HeadlineElement(NewHeadline(class, level, p.parseInlines(wire.Text)...)), true

	case ElementSection:
		variant := SectionPlain
		switch SectionVariant(wire.Variant) {
		case SectionPlain, SectionNote, SectionAside:
			variant = SectionVariant(wire.Variant)
		case "":
		default:
			p.log.Warn("Unknown section variant, using plain", zap.String("variant", wire.Variant))
		}
		sec := NewSection(class, variant, p.parseElements(wire.Elements)...)
		sec.AltText = wire.AltText
		return SectionElement(sec), true

	case ElementPart:
		variant := PartPlain
		switch PartVariant(wire.Variant) {
		case PartPlain, PartArticle:
			variant = PartVariant(wire.Variant)
		case "":
		default:
			p.log.Warn("Unknown part variant, using plain", zap.String("variant", wire.Variant))
		}
		return PartElement(NewPart(class, variant, p.parseElements(wire.Elements)...)), true

	case ElementList:
		ordering := ListUnordered
		switch ListOrdering(wire.Ordering) {
		case ListOrdered, ListUnordered:
			ordering = ListOrdering(wire.Ordering)
		case "":
		default:
			p.log.Warn("Unknown list ordering, using unordered", zap.String("ordering", wire.Ordering))
		}
		items := make([]ListItem, 0, len(wire.Items))
		for i := range wire.Items {
			item := &wire.Items[i]
			items = append(items, NewListItem(
				p.parseClass(item.StyleClass, "list item"),
				p.parseInlines(item.Label),
				p.parseElements(item.Elements)...))
		}
		return ListElement(NewList(class, ordering, items...)), true

	case ElementTable:
		table := &Table{StyleClass: class, Columns: wire.Columns}
		if table.Columns < 1 {
			table.Columns = 1
		}
		table.Header = p.parseTableSection(wire.Header)
		table.Body = p.parseTableSection(wire.Body)
		table.Footer = p.parseTableSection(wire.Footer)
		return TableElement(table), true

	case ElementLayout:
		layout := &LayoutTable{StyleClass: class}
		if wire.Left != nil {
			if el, ok := p.parseElement(wire.Left); ok {
				layout.Left = &el
			}
		}
		if wire.Right != nil {
			if el, ok := p.parseElement(wire.Right); ok {
				layout.Right = &el
			}
		}
		return LayoutElement(layout), true

	case ElementImage:
		if wire.Path == "" {
			p.log.Warn("Block image without path, ignoring")
			return Element{}, false
		}
		return ImageElement(&BlockImage{StyleClass: class, Path: wire.Path, AltText: wire.AltText}), true

	default:
		if len(wire.Text) > 0 {
			p.log.Warn("Unexpected element kind, converting to paragraph", zap.String("kind", wire.Kind))
			return ParagraphElement(NewParagraph(class, p.parseInlines(wire.Text)...)), true
		}
		p.log.Warn("Unexpected element kind, ignoring", zap.String("kind", wire.Kind))
		return Element{}, false
	}
}

func (p *parser) parseTableSection(wire *tsecWire) *TableSection {
	if wire == nil {
		return nil
	}
	sec := &TableSection{Rows: []TableRow{}}
	for i := range wire.Rows {
		row := TableRow{Cells: []TableCell{}}
		for j := range wire.Rows[i].Cells {
			cell := &wire.Rows[i].Cells[j]
			row.Cells = append(row.Cells, NewTableCell(
				p.parseClass(cell.StyleClass, "table cell"),
				cell.Colspan, cell.Rowspan,
				p.parseElements(cell.Elements)...))
		}
		sec.Rows = append(sec.Rows, row)
	}
	return sec
}

func (p *parser) parseInlines(wires []inlineWire) []Inline {
	inlines := []Inline{}
	for i := range wires {
		if in, ok := p.parseInline(&wires[i]); ok {
			inlines = append(inlines, in)
		}
	}
	return inlines
}

func (p *parser) parseInline(wire *inlineWire) (Inline, bool) {
	class := p.parseClass(wire.StyleClass, wire.Kind+" inline")

	switch InlineKind(wire.Kind) {
	case InlineText:
		if wire.Text == nil {
			p.fail("text run without text")
			return Inline{}, false
		}
		return TextInline(&TextRun{StyleClass: class, Text: *wire.Text}), true

	case InlineLink:
		if wire.Text == nil {
			p.fail("hyperlink without text")
			return Inline{}, false
		}
		return LinkInline(&Hyperlink{
			TextRun: TextRun{StyleClass: class, Text: *wire.Text},
			Href:    wire.Href,
			AltText: wire.AltText,
		}), true

	case InlinePageNumber:
		return PageNumberInline(), true

	case InlineFootnote:
		if strings.TrimSpace(wire.Index) == "" {
			p.log.Warn("Footnote without index, substituting default", zap.String("index", p.opts.DefaultFootnoteIndex))
			wire.Index = p.opts.DefaultFootnoteIndex
		}
		fn := NewFootnote(class, wire.Index, p.parseInlines(wire.Inlines)...)
		return FootnoteInline(fn), true

	default:
		if wire.Text != nil {
			p.log.Warn("Unexpected inline kind, converting to text run", zap.String("kind", wire.Kind))
			return TextInline(&TextRun{StyleClass: class, Text: *wire.Text}), true
		}
		p.log.Warn("Unexpected inline kind, ignoring", zap.String("kind", wire.Kind))
		return Inline{}, false
	}
}
