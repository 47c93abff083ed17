package doc

import "strings"

// Plain constructors normalizing author input. They never fail: out of range
// values are substituted with documented defaults, callers that care about
// the substitutions go through ParseDocumentJSON which logs them.

// DefaultFootnoteIndex is substituted when a footnote carries no index.
const DefaultFootnoteIndex = "*"

// NewHeadline clamps level into [1,6]; anything else becomes level 1.
func NewHeadline(styleClass string, level int, text ...Inline) *Headline {
	return &Headline{
		StyleClass: styleClass,
		Level:      ClampHeadingLevel(level),
		Text:       normalizeInlines(text),
	}
}

// ClampHeadingLevel maps out of range heading levels to 1.
func ClampHeadingLevel(level int) int {
	if level < 1 || level > 6 {
		return 1
	}
	return level
}

// NewParagraph builds a paragraph with normalized inline content.
func NewParagraph(styleClass string, text ...Inline) *Paragraph {
	return &Paragraph{StyleClass: styleClass, Text: normalizeInlines(text)}
}

// NewSection builds a section; an unknown variant becomes the plain one.
func NewSection(styleClass string, variant SectionVariant, elements ...Element) *Section {
	switch variant {
	case SectionPlain, SectionNote, SectionAside:
	default:
		variant = SectionPlain
	}
	return &Section{
		StyleClass: styleClass,
		Variant:    variant,
		Elements:   normalizeElements(elements),
	}
}

// NewPart builds a part; an unknown variant becomes the plain one.
func NewPart(styleClass string, variant PartVariant, elements ...Element) *Part {
	if variant != PartArticle {
		variant = PartPlain
	}
	return &Part{
		StyleClass: styleClass,
		Variant:    variant,
		Elements:   normalizeElements(elements),
	}
}

// NewList builds a list; an unknown ordering becomes unordered.
func NewList(styleClass string, ordering ListOrdering, items ...ListItem) *SimpleList {
	if ordering != ListOrdered {
		ordering = ListUnordered
	}
	if items == nil {
		items = []ListItem{}
	}
	return &SimpleList{StyleClass: styleClass, Ordering: ordering, Items: items}
}

// NewListItem builds a list item with normalized label and content.
func NewListItem(styleClass string, label []Inline, elements ...Element) ListItem {
	return ListItem{
		StyleClass: styleClass,
		Label:      normalizeInlines(label),
		Elements:   normalizeElements(elements),
	}
}

// NewTableCell normalizes spans: anything below 1 becomes 1.
func NewTableCell(styleClass string, colspan, rowspan int, elements ...Element) TableCell {
	if colspan < 1 {
		colspan = 1
	}
	if rowspan < 1 {
		rowspan = 1
	}
	return TableCell{
		StyleClass: styleClass,
		Colspan:    colspan,
		Rowspan:    rowspan,
		Elements:   normalizeElements(elements),
	}
}

// NewFootnote substitutes a blank index with DefaultFootnoteIndex.
func NewFootnote(styleClass, index string, inlines ...Inline) *Footnote {
	if strings.TrimSpace(index) == "" {
		index = DefaultFootnoteIndex
	}
	return &Footnote{
		StyleClass: styleClass,
		Index:      index,
		Inlines:    normalizeInlines(inlines),
	}
}

func normalizeInlines(in []Inline) []Inline {
	if in == nil {
		return []Inline{}
	}
	return in
}

func normalizeElements(in []Element) []Element {
	if in == nil {
		return []Element{}
	}
	return in
}

// Wrappers building tagged union values around concrete nodes.

func ParagraphElement(p *Paragraph) Element { return Element{Kind: ElementParagraph, Paragraph: p} }
func HeadlineElement(h *Headline) Element   { return Element{Kind: ElementHeadline, Headline: h} }
func SectionElement(s *Section) Element     { return Element{Kind: ElementSection, Section: s} }
func PartElement(p *Part) Element           { return Element{Kind: ElementPart, Part: p} }
func ListElement(l *SimpleList) Element     { return Element{Kind: ElementList, List: l} }
func TableElement(t *Table) Element         { return Element{Kind: ElementTable, Table: t} }
func LayoutElement(l *LayoutTable) Element  { return Element{Kind: ElementLayout, Layout: l} }
func ImageElement(i *BlockImage) Element    { return Element{Kind: ElementImage, Image: i} }

func TextInline(r *TextRun) Inline      { return Inline{Kind: InlineText, Text: r} }
func LinkInline(l *Hyperlink) Inline    { return Inline{Kind: InlineLink, Link: l} }
func PageNumberInline() Inline          { return Inline{Kind: InlinePageNumber} }
func FootnoteInline(f *Footnote) Inline { return Inline{Kind: InlineFootnote, Footnote: f} }

// Run is shorthand for a plain text inline without a style class.
func Run(text string) Inline {
	return TextInline(&TextRun{Text: text})
}
