// Package doc defines the content tree of a press document: closed tagged
// unions for block and inline nodes, document roots, and the constructors
// that normalize author input. The tree is built once, is structurally
// immutable afterwards, and is resolved exactly once by the cascade package
// before being handed to the rendering collaborator.
package doc

import (
	"strings"

	"golang.org/x/text/language"
)

// Document is the root of the content tree.
type Document struct {
	Meta      Metadata
	Addresses *InternalAddresses
	Sequences []PageSequence
}

// Metadata carries document level information consumed by the renderer and
// by output naming.
type Metadata struct {
	Title   string
	Authors []string
	Lang    language.Tag
	ID      string
}

// InternalAddresses maps resource names used by the tree to locations.
// Resolving names to actual bytes is the resource provider's job, not ours.
type InternalAddresses struct {
	FontDictionary  map[string]string
	ImageDictionary map[string]string
}

// AreaRole distinguishes content areas within a page sequence.
type AreaRole string

const (
	AreaMain   AreaRole = "main"
	AreaHeader AreaRole = "header"
	AreaFooter AreaRole = "footer"
)

// PageSequence groups content areas rendered with one page style. Its style
// class is required and must not be blank.
type PageSequence struct {
	StyleClass string
	Areas      []ContentArea
}

// ContentArea holds an ordered sequence of block elements for one page region.
type ContentArea struct {
	Role     AreaRole
	Elements []Element
}

// ElementKind distinguishes the block-level element variants.
type ElementKind string

const (
	ElementParagraph ElementKind = "paragraph"
	ElementHeadline  ElementKind = "headline"
	ElementSection   ElementKind = "section"
	ElementPart      ElementKind = "part"
	ElementList      ElementKind = "list"
	ElementTable     ElementKind = "table"
	ElementLayout    ElementKind = "layout-table"
	ElementImage     ElementKind = "block-image"
)

// Element stores a single block-level node, keeping the original ordering.
// Exactly one variant pointer matching Kind is set.
type Element struct {
	Kind      ElementKind
	Paragraph *Paragraph
	Headline  *Headline
	Section   *Section
	Part      *Part
	List      *SimpleList
	Table     *Table
	Layout    *LayoutTable
	Image     *BlockImage
}

// StyleClass returns the style class of the underlying variant.
func (e *Element) StyleClass() string {
	switch e.Kind {
	case ElementParagraph:
		if e.Paragraph != nil {
			return e.Paragraph.StyleClass
		}
	case ElementHeadline:
		if e.Headline != nil {
			return e.Headline.StyleClass
		}
	case ElementSection:
		if e.Section != nil {
			return e.Section.StyleClass
		}
	case ElementPart:
		if e.Part != nil {
			return e.Part.StyleClass
		}
	case ElementList:
		if e.List != nil {
			return e.List.StyleClass
		}
	case ElementTable:
		if e.Table != nil {
			return e.Table.StyleClass
		}
	case ElementLayout:
		if e.Layout != nil {
			return e.Layout.StyleClass
		}
	case ElementImage:
		if e.Image != nil {
			return e.Image.StyleClass
		}
	}
	return ""
}

// AsPlainText extracts plain text from the element for debug output and
// table of contents generation.
func (e *Element) AsPlainText() string {
	switch e.Kind {
	case ElementParagraph:
		if e.Paragraph != nil {
			return e.Paragraph.AsPlainText()
		}
	case ElementHeadline:
		if e.Headline != nil {
			return e.Headline.AsPlainText()
		}
	case ElementSection:
		if e.Section != nil {
			return joinPlainText(e.Section.Elements)
		}
	case ElementPart:
		if e.Part != nil {
			return joinPlainText(e.Part.Elements)
		}
	}
	return ""
}

func joinPlainText(elements []Element) string {
	var buf strings.Builder
	for i := range elements {
		text := elements[i].AsPlainText()
		if text != "" {
			if buf.Len() > 0 {
				buf.WriteString(" ")
			}
			buf.WriteString(text)
		}
	}
	return strings.TrimSpace(buf.String())
}

// Paragraph is ordered inline content forming one block of body text.
type Paragraph struct {
	StyleClass string
	Text       []Inline
}

func (p *Paragraph) AsPlainText() string {
	var buf strings.Builder
	for i := range p.Text {
		buf.WriteString(p.Text[i].AsText())
	}
	return strings.TrimSpace(buf.String())
}

// Headline is a heading block. Level is always within [1,6], constructors
// clamp anything else.
type Headline struct {
	StyleClass string
	Level      int
	Text       []Inline
}

func (h *Headline) AsPlainText() string {
	var buf strings.Builder
	for i := range h.Text {
		buf.WriteString(h.Text[i].AsText())
	}
	return strings.TrimSpace(buf.String())
}

// SectionVariant is a semantic modifier changing the effective style lookup
// key of a section without changing its node kind.
type SectionVariant string

const (
	SectionPlain SectionVariant = "section"
	SectionNote  SectionVariant = "note"
	SectionAside SectionVariant = "aside"
)

// StyleName returns the suffix used for variant-qualified style keys.
func (v SectionVariant) StyleName() string {
	return string(v)
}

// Section is a container of block elements with an optional semantic variant.
type Section struct {
	StyleClass string
	Variant    SectionVariant
	AltText    string
	Elements   []Element
}

// PartVariant selects the accessibility role of a part; unlike section
// variants it never participates in style key composition.
type PartVariant string

const (
	PartPlain   PartVariant = "part"
	PartArticle PartVariant = "article"
)

// Role returns the accessibility role the renderer should tag the part with.
func (v PartVariant) Role() string {
	if v == PartArticle {
		return "article"
	}
	return "part"
}

// Part is a top level container of block elements.
type Part struct {
	StyleClass string
	Variant    PartVariant
	Elements   []Element
}

// ListOrdering distinguishes ordered and unordered lists.
type ListOrdering string

const (
	ListOrdered   ListOrdering = "ordered"
	ListUnordered ListOrdering = "unordered"
)

// SimpleList contains list items.
type SimpleList struct {
	StyleClass string
	Ordering   ListOrdering
	Items      []ListItem
}

// ListItem has an inline label and block content, cascading separately
// against the item's resolved style.
type ListItem struct {
	StyleClass string
	Label      []Inline
	Elements   []Element
}

// Table is a tabular container with optional header, body and footer
// sections sharing the table's column count.
type Table struct {
	StyleClass string
	Columns    int
	Header     *TableSection
	Body       *TableSection
	Footer     *TableSection
}

// TableSection groups rows of one table region.
type TableSection struct {
	Rows []TableRow
}

// TableRow holds the cells of one row.
type TableRow struct {
	Cells []TableCell
}

// TableCell contains block elements and spans at least one column and row.
type TableCell struct {
	StyleClass string
	Colspan    int
	Rowspan    int
	Elements   []Element
}

// LayoutTable places two optional elements side by side. Each side is
// resolved independently and is unaware of its sibling.
type LayoutTable struct {
	StyleClass string
	Left       *Element
	Right      *Element
}

// BlockImage is a leaf block node referencing an image by dictionary name.
type BlockImage struct {
	StyleClass string
	Path       string
	AltText    string
}

// InlineKind distinguishes the inline element variants.
type InlineKind string

const (
	InlineText       InlineKind = "text"
	InlineLink       InlineKind = "link"
	InlinePageNumber InlineKind = "page-number"
	InlineFootnote   InlineKind = "footnote"
)

// Inline stores a single inline node. PageNumber is a pure layout marker and
// carries no payload at all.
type Inline struct {
	Kind     InlineKind
	Text     *TextRun
	Link     *Hyperlink
	Footnote *Footnote
}

// AsText returns the plain text content of the inline node. Footnote bodies
// and page number markers are skipped.
func (in *Inline) AsText() string {
	switch in.Kind {
	case InlineText:
		if in.Text != nil {
			return in.Text.Text
		}
	case InlineLink:
		if in.Link != nil {
			return in.Link.Text
		}
	}
	return ""
}

// StyleClass returns the style class of the underlying variant.
func (in *Inline) StyleClass() string {
	switch in.Kind {
	case InlineText:
		if in.Text != nil {
			return in.Text.StyleClass
		}
	case InlineLink:
		if in.Link != nil {
			return in.Link.StyleClass
		}
	case InlineFootnote:
		if in.Footnote != nil {
			return in.Footnote.StyleClass
		}
	}
	return ""
}

// TextRun is a leaf run of text.
type TextRun struct {
	StyleClass string
	Text       string
}

// Hyperlink is a text run pointing at an internal or external target.
type Hyperlink struct {
	TextRun
	Href    string
	AltText string
}

// Footnote is a container despite being inline: its body is an ordered
// sequence of inline nodes resolved independently from the reference point.
type Footnote struct {
	StyleClass string
	Index      string
	Inlines    []Inline
}
