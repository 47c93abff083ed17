// Package style defines rendering-relevant property bags for every content
// node kind, the named style sheet they are collected in, and the merge
// machinery the cascade uses to fill unset properties from ancestor styles.
package style

// Style is implemented by every property bag variant. Clone returns an
// independent deep copy, MergeFrom fills every unset field from the parent
// bag; fields already set are never overwritten. Merging is idempotent:
// merging with the same parent twice yields the same bag as merging once.
type Style interface {
	Kind() Kind
	Clone() Style
	MergeFrom(parent Style)
}

// New returns an empty bag of the requested kind. A freshly constructed bag
// has all fields unset, so MergeFrom(parent) on it copies the parent's
// compatible property groups verbatim.
func New(kind Kind) Style {
	switch kind {
	case KindTextRun:
		return &RunStyle{}
	case KindTextBlock:
		return &BlockStyle{}
	case KindSection:
		return &SectionStyle{}
	case KindPart:
		return &PartStyle{}
	case KindList:
		return &ListStyle{}
	case KindListItem:
		return &ListItemStyle{}
	case KindTable:
		return &TableStyle{}
	case KindTableCell:
		return &CellStyle{}
	case KindBlockImage:
		return &ImageStyle{}
	case KindLayoutTable:
		return &LayoutStyle{}
	case KindFootnote:
		return &FootnoteStyle{}
	default:
		// this should never happen
		panic("unsupported style kind requested")
	}
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func fillPtr[T any](dst **T, src *T) {
	if *dst == nil && src != nil {
		*dst = clonePtr(src)
	}
}

// FontProps groups character-level properties. Sizes are in points, colors
// are #rrggbb strings.
type FontProps struct {
	FontFamily *string     `yaml:"font_family,omitempty"`
	FontSize   *float64    `yaml:"font_size,omitempty"`
	FontWeight *FontWeight `yaml:"font_weight,omitempty"`
	FontSlant  *FontSlant  `yaml:"font_slant,omitempty"`
	Color      *string     `yaml:"color,omitempty"`
}

func (f *FontProps) clone() FontProps {
	return FontProps{
		FontFamily: clonePtr(f.FontFamily),
		FontSize:   clonePtr(f.FontSize),
		FontWeight: clonePtr(f.FontWeight),
		FontSlant:  clonePtr(f.FontSlant),
		Color:      clonePtr(f.Color),
	}
}

func (f *FontProps) fillFrom(p *FontProps) {
	if p == nil {
		return
	}
	fillPtr(&f.FontFamily, p.FontFamily)
	fillPtr(&f.FontSize, p.FontSize)
	fillPtr(&f.FontWeight, p.FontWeight)
	fillPtr(&f.FontSlant, p.FontSlant)
	fillPtr(&f.Color, p.Color)
}

// TextProps groups block-level text shaping properties.
type TextProps struct {
	Align      *Alignment `yaml:"align,omitempty"`
	Indent     *float64   `yaml:"indent,omitempty"`
	LineHeight *float64   `yaml:"line_height,omitempty"`
}

func (t *TextProps) clone() TextProps {
	return TextProps{
		Align:      clonePtr(t.Align),
		Indent:     clonePtr(t.Indent),
		LineHeight: clonePtr(t.LineHeight),
	}
}

func (t *TextProps) fillFrom(p *TextProps) {
	if p == nil {
		return
	}
	fillPtr(&t.Align, p.Align)
	fillPtr(&t.Indent, p.Indent)
	fillPtr(&t.LineHeight, p.LineHeight)
}

// BoxProps groups box model properties shared by block-level bags.
type BoxProps struct {
	MarginTop     *float64 `yaml:"margin_top,omitempty"`
	MarginBottom  *float64 `yaml:"margin_bottom,omitempty"`
	MarginLeft    *float64 `yaml:"margin_left,omitempty"`
	MarginRight   *float64 `yaml:"margin_right,omitempty"`
	PaddingTop    *float64 `yaml:"padding_top,omitempty"`
	PaddingBottom *float64 `yaml:"padding_bottom,omitempty"`
	PaddingLeft   *float64 `yaml:"padding_left,omitempty"`
	PaddingRight  *float64 `yaml:"padding_right,omitempty"`
	Background    *string  `yaml:"background,omitempty"`
	BorderWidth   *float64 `yaml:"border_width,omitempty"`
	BorderColor   *string  `yaml:"border_color,omitempty"`
}

func (b *BoxProps) clone() BoxProps {
	return BoxProps{
		MarginTop:     clonePtr(b.MarginTop),
		MarginBottom:  clonePtr(b.MarginBottom),
		MarginLeft:    clonePtr(b.MarginLeft),
		MarginRight:   clonePtr(b.MarginRight),
		PaddingTop:    clonePtr(b.PaddingTop),
		PaddingBottom: clonePtr(b.PaddingBottom),
		PaddingLeft:   clonePtr(b.PaddingLeft),
		PaddingRight:  clonePtr(b.PaddingRight),
		Background:    clonePtr(b.Background),
		BorderWidth:   clonePtr(b.BorderWidth),
		BorderColor:   clonePtr(b.BorderColor),
	}
}

func (b *BoxProps) fillFrom(p *BoxProps) {
	if p == nil {
		return
	}
	fillPtr(&b.MarginTop, p.MarginTop)
	fillPtr(&b.MarginBottom, p.MarginBottom)
	fillPtr(&b.MarginLeft, p.MarginLeft)
	fillPtr(&b.MarginRight, p.MarginRight)
	fillPtr(&b.PaddingTop, p.PaddingTop)
	fillPtr(&b.PaddingBottom, p.PaddingBottom)
	fillPtr(&b.PaddingLeft, p.PaddingLeft)
	fillPtr(&b.PaddingRight, p.PaddingRight)
	fillPtr(&b.Background, p.Background)
	fillPtr(&b.BorderWidth, p.BorderWidth)
	fillPtr(&b.BorderColor, p.BorderColor)
}

// Parent bags expose property groups through these interfaces so MergeFrom
// can fill compatible groups across different bag kinds: a table cell merges
// from the table's resolved style, a footnote body from the surrounding text
// block, an inline run from its paragraph.
type (
	fontStyled interface{ fontProps() *FontProps }
	textStyled interface{ textProps() *TextProps }
	boxStyled  interface{ boxProps() *BoxProps }
)

func mergeGroups(dst Style, parent Style) {
	if parent == nil {
		return
	}
	if df, ok := dst.(fontStyled); ok {
		if pf, ok := parent.(fontStyled); ok {
			df.fontProps().fillFrom(pf.fontProps())
		}
	}
	if dt, ok := dst.(textStyled); ok {
		if pt, ok := parent.(textStyled); ok {
			dt.textProps().fillFrom(pt.textProps())
		}
	}
	if db, ok := dst.(boxStyled); ok {
		if pb, ok := parent.(boxStyled); ok {
			db.boxProps().fillFrom(pb.boxProps())
		}
	}
}

// RunStyle is the bag for inline text runs and hyperlinks.
type RunStyle struct {
	FontProps     `yaml:",inline"`
	Letterspacing *float64    `yaml:"letterspacing,omitempty"`
	Decoration    *Decoration `yaml:"decoration,omitempty"`
}

func (s *RunStyle) Kind() Kind { return KindTextRun }

func (s *RunStyle) fontProps() *FontProps { return &s.FontProps }

func (s *RunStyle) Clone() Style {
	return &RunStyle{
		FontProps:     s.FontProps.clone(),
		Letterspacing: clonePtr(s.Letterspacing),
		Decoration:    clonePtr(s.Decoration),
	}
}

func (s *RunStyle) MergeFrom(parent Style) {
	mergeGroups(s, parent)
	if p, ok := parent.(*RunStyle); ok {
		fillPtr(&s.Letterspacing, p.Letterspacing)
		fillPtr(&s.Decoration, p.Decoration)
	}
}

// BlockStyle is the bag for block text: paragraphs and headlines.
type BlockStyle struct {
	FontProps    `yaml:",inline"`
	TextProps    `yaml:",inline"`
	BoxProps     `yaml:",inline"`
	KeepWithNext *bool `yaml:"keep_with_next,omitempty"`
}

func (s *BlockStyle) Kind() Kind { return KindTextBlock }

func (s *BlockStyle) fontProps() *FontProps { return &s.FontProps }
func (s *BlockStyle) textProps() *TextProps { return &s.TextProps }
func (s *BlockStyle) boxProps() *BoxProps   { return &s.BoxProps }

func (s *BlockStyle) Clone() Style {
	return &BlockStyle{
		FontProps:    s.FontProps.clone(),
		TextProps:    s.TextProps.clone(),
		BoxProps:     s.BoxProps.clone(),
		KeepWithNext: clonePtr(s.KeepWithNext),
	}
}

func (s *BlockStyle) MergeFrom(parent Style) {
	mergeGroups(s, parent)
	if p, ok := parent.(*BlockStyle); ok {
		fillPtr(&s.KeepWithNext, p.KeepWithNext)
	}
}

// SectionStyle is the bag for sections and page sequence roots.
type SectionStyle struct {
	FontProps   `yaml:",inline"`
	TextProps   `yaml:",inline"`
	BoxProps    `yaml:",inline"`
	BreakBefore *bool `yaml:"break_before,omitempty"`
}

func (s *SectionStyle) Kind() Kind { return KindSection }

func (s *SectionStyle) fontProps() *FontProps { return &s.FontProps }
func (s *SectionStyle) textProps() *TextProps { return &s.TextProps }
func (s *SectionStyle) boxProps() *BoxProps   { return &s.BoxProps }

func (s *SectionStyle) Clone() Style {
	return &SectionStyle{
		FontProps:   s.FontProps.clone(),
		TextProps:   s.TextProps.clone(),
		BoxProps:    s.BoxProps.clone(),
		BreakBefore: clonePtr(s.BreakBefore),
	}
}

func (s *SectionStyle) MergeFrom(parent Style) {
	mergeGroups(s, parent)
	if p, ok := parent.(*SectionStyle); ok {
		fillPtr(&s.BreakBefore, p.BreakBefore)
	}
}

// PartStyle is the bag for top level document parts and articles.
type PartStyle struct {
	FontProps   `yaml:",inline"`
	TextProps   `yaml:",inline"`
	BoxProps    `yaml:",inline"`
	BreakBefore *bool `yaml:"break_before,omitempty"`
}

func (s *PartStyle) Kind() Kind { return KindPart }

func (s *PartStyle) fontProps() *FontProps { return &s.FontProps }
func (s *PartStyle) textProps() *TextProps { return &s.TextProps }
func (s *PartStyle) boxProps() *BoxProps   { return &s.BoxProps }

func (s *PartStyle) Clone() Style {
	return &PartStyle{
		FontProps:   s.FontProps.clone(),
		TextProps:   s.TextProps.clone(),
		BoxProps:    s.BoxProps.clone(),
		BreakBefore: clonePtr(s.BreakBefore),
	}
}

func (s *PartStyle) MergeFrom(parent Style) {
	mergeGroups(s, parent)
	if p, ok := parent.(*PartStyle); ok {
		fillPtr(&s.BreakBefore, p.BreakBefore)
	}
}

// ListStyle is the bag for simple lists.
type ListStyle struct {
	FontProps   `yaml:",inline"`
	BoxProps    `yaml:",inline"`
	Marker      *string  `yaml:"marker,omitempty"`
	ItemSpacing *float64 `yaml:"item_spacing,omitempty"`
}

func (s *ListStyle) Kind() Kind { return KindList }

func (s *ListStyle) fontProps() *FontProps { return &s.FontProps }
func (s *ListStyle) boxProps() *BoxProps   { return &s.BoxProps }

func (s *ListStyle) Clone() Style {
	return &ListStyle{
		FontProps:   s.FontProps.clone(),
		BoxProps:    s.BoxProps.clone(),
		Marker:      clonePtr(s.Marker),
		ItemSpacing: clonePtr(s.ItemSpacing),
	}
}

func (s *ListStyle) MergeFrom(parent Style) {
	mergeGroups(s, parent)
	if p, ok := parent.(*ListStyle); ok {
		fillPtr(&s.Marker, p.Marker)
		fillPtr(&s.ItemSpacing, p.ItemSpacing)
	}
}

// ListItemStyle is the bag for list items.
type ListItemStyle struct {
	FontProps  `yaml:",inline"`
	TextProps  `yaml:",inline"`
	BoxProps   `yaml:",inline"`
	LabelWidth *float64 `yaml:"label_width,omitempty"`
}

func (s *ListItemStyle) Kind() Kind { return KindListItem }

func (s *ListItemStyle) fontProps() *FontProps { return &s.FontProps }
func (s *ListItemStyle) textProps() *TextProps { return &s.TextProps }
func (s *ListItemStyle) boxProps() *BoxProps   { return &s.BoxProps }

func (s *ListItemStyle) Clone() Style {
	return &ListItemStyle{
		FontProps:  s.FontProps.clone(),
		TextProps:  s.TextProps.clone(),
		BoxProps:   s.BoxProps.clone(),
		LabelWidth: clonePtr(s.LabelWidth),
	}
}

func (s *ListItemStyle) MergeFrom(parent Style) {
	mergeGroups(s, parent)
	if p, ok := parent.(*ListItemStyle); ok {
		fillPtr(&s.LabelWidth, p.LabelWidth)
	}
}

// TableStyle is the bag for tables. Font properties set here cascade into
// cells through the table's child context.
type TableStyle struct {
	FontProps   `yaml:",inline"`
	BoxProps    `yaml:",inline"`
	CellPadding *float64 `yaml:"cell_padding,omitempty"`
}

func (s *TableStyle) Kind() Kind { return KindTable }

func (s *TableStyle) fontProps() *FontProps { return &s.FontProps }
func (s *TableStyle) boxProps() *BoxProps   { return &s.BoxProps }

func (s *TableStyle) Clone() Style {
	return &TableStyle{
		FontProps:   s.FontProps.clone(),
		BoxProps:    s.BoxProps.clone(),
		CellPadding: clonePtr(s.CellPadding),
	}
}

func (s *TableStyle) MergeFrom(parent Style) {
	mergeGroups(s, parent)
	if p, ok := parent.(*TableStyle); ok {
		fillPtr(&s.CellPadding, p.CellPadding)
	}
}

// CellStyle is the bag for table cells.
type CellStyle struct {
	FontProps     `yaml:",inline"`
	TextProps     `yaml:",inline"`
	BoxProps      `yaml:",inline"`
	VerticalAlign *VerticalAlign `yaml:"vertical_align,omitempty"`
}

func (s *CellStyle) Kind() Kind { return KindTableCell }

func (s *CellStyle) fontProps() *FontProps { return &s.FontProps }
func (s *CellStyle) textProps() *TextProps { return &s.TextProps }
func (s *CellStyle) boxProps() *BoxProps   { return &s.BoxProps }

func (s *CellStyle) Clone() Style {
	return &CellStyle{
		FontProps:     s.FontProps.clone(),
		TextProps:     s.TextProps.clone(),
		BoxProps:      s.BoxProps.clone(),
		VerticalAlign: clonePtr(s.VerticalAlign),
	}
}

func (s *CellStyle) MergeFrom(parent Style) {
	mergeGroups(s, parent)
	if p, ok := parent.(*CellStyle); ok {
		fillPtr(&s.VerticalAlign, p.VerticalAlign)
	}
}

// ImageStyle is the bag for block images. Width and height are in points,
// zero means natural size.
type ImageStyle struct {
	BoxProps `yaml:",inline"`
	Width    *float64   `yaml:"width,omitempty"`
	Height   *float64   `yaml:"height,omitempty"`
	Align    *Alignment `yaml:"align,omitempty"`
}

func (s *ImageStyle) Kind() Kind { return KindBlockImage }

func (s *ImageStyle) boxProps() *BoxProps { return &s.BoxProps }

func (s *ImageStyle) Clone() Style {
	return &ImageStyle{
		BoxProps: s.BoxProps.clone(),
		Width:    clonePtr(s.Width),
		Height:   clonePtr(s.Height),
		Align:    clonePtr(s.Align),
	}
}

func (s *ImageStyle) MergeFrom(parent Style) {
	mergeGroups(s, parent)
	if p, ok := parent.(*ImageStyle); ok {
		fillPtr(&s.Width, p.Width)
		fillPtr(&s.Height, p.Height)
		fillPtr(&s.Align, p.Align)
	}
}

// LayoutStyle is the bag for two-sided layout tables. Split is the fraction
// of the available width given to the left element.
type LayoutStyle struct {
	FontProps `yaml:",inline"`
	BoxProps  `yaml:",inline"`
	Split     *float64 `yaml:"split,omitempty"`
	Gap       *float64 `yaml:"gap,omitempty"`
}

func (s *LayoutStyle) Kind() Kind { return KindLayoutTable }

func (s *LayoutStyle) fontProps() *FontProps { return &s.FontProps }
func (s *LayoutStyle) boxProps() *BoxProps   { return &s.BoxProps }

func (s *LayoutStyle) Clone() Style {
	return &LayoutStyle{
		FontProps: s.FontProps.clone(),
		BoxProps:  s.BoxProps.clone(),
		Split:     clonePtr(s.Split),
		Gap:       clonePtr(s.Gap),
	}
}

func (s *LayoutStyle) MergeFrom(parent Style) {
	mergeGroups(s, parent)
	if p, ok := parent.(*LayoutStyle); ok {
		fillPtr(&s.Split, p.Split)
		fillPtr(&s.Gap, p.Gap)
	}
}

// FootnoteStyle is the bag for footnote bodies.
type FootnoteStyle struct {
	FontProps `yaml:",inline"`
	TextProps `yaml:",inline"`
}

func (s *FootnoteStyle) Kind() Kind { return KindFootnote }

func (s *FootnoteStyle) fontProps() *FontProps { return &s.FontProps }
func (s *FootnoteStyle) textProps() *TextProps { return &s.TextProps }

func (s *FootnoteStyle) Clone() Style {
	return &FootnoteStyle{
		FontProps: s.FontProps.clone(),
		TextProps: s.TextProps.clone(),
	}
}

func (s *FootnoteStyle) MergeFrom(parent Style) {
	mergeGroups(s, parent)
}
