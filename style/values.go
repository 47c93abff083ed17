package style

import "fmt"

// Enumerated property values shared by the bags. All of them parse from the
// same lowercase names the stylesheet YAML uses.

type FontWeight int

const (
	WeightNormal FontWeight = iota
	WeightBold
)

var fontWeightNames = map[FontWeight]string{
	WeightNormal: "normal",
	WeightBold:   "bold",
}

type FontSlant int

const (
	SlantNormal FontSlant = iota
	SlantItalic
)

var fontSlantNames = map[FontSlant]string{
	SlantNormal: "normal",
	SlantItalic: "italic",
}

type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
	AlignCenter
	AlignJustify
)

var alignmentNames = map[Alignment]string{
	AlignLeft:    "left",
	AlignRight:   "right",
	AlignCenter:  "center",
	AlignJustify: "justify",
}

type VerticalAlign int

const (
	VAlignTop VerticalAlign = iota
	VAlignMiddle
	VAlignBottom
)

var verticalAlignNames = map[VerticalAlign]string{
	VAlignTop:    "top",
	VAlignMiddle: "middle",
	VAlignBottom: "bottom",
}

type Decoration int

const (
	DecorationNone Decoration = iota
	DecorationUnderline
	DecorationStrike
)

var decorationNames = map[Decoration]string{
	DecorationNone:      "none",
	DecorationUnderline: "underline",
	DecorationStrike:    "strike",
}

func (v FontWeight) String() string    { return enumName(fontWeightNames, v) }
func (v FontSlant) String() string     { return enumName(fontSlantNames, v) }
func (v Alignment) String() string     { return enumName(alignmentNames, v) }
func (v VerticalAlign) String() string { return enumName(verticalAlignNames, v) }
func (v Decoration) String() string    { return enumName(decorationNames, v) }

func ParseFontWeight(name string) (FontWeight, error) { return parseEnum(fontWeightNames, name) }
func ParseFontSlant(name string) (FontSlant, error)   { return parseEnum(fontSlantNames, name) }
func ParseAlignment(name string) (Alignment, error)   { return parseEnum(alignmentNames, name) }
func ParseVerticalAlign(name string) (VerticalAlign, error) {
	return parseEnum(verticalAlignNames, name)
}
func ParseDecoration(name string) (Decoration, error) { return parseEnum(decorationNames, name) }

func (v *FontWeight) UnmarshalYAML(unmarshal func(any) error) error {
	return unmarshalEnum(fontWeightNames, v, unmarshal)
}

func (v *FontSlant) UnmarshalYAML(unmarshal func(any) error) error {
	return unmarshalEnum(fontSlantNames, v, unmarshal)
}

func (v *Alignment) UnmarshalYAML(unmarshal func(any) error) error {
	return unmarshalEnum(alignmentNames, v, unmarshal)
}

func (v *VerticalAlign) UnmarshalYAML(unmarshal func(any) error) error {
	return unmarshalEnum(verticalAlignNames, v, unmarshal)
}

func (v *Decoration) UnmarshalYAML(unmarshal func(any) error) error {
	return unmarshalEnum(decorationNames, v, unmarshal)
}

func (v FontWeight) MarshalYAML() (any, error)    { return v.String(), nil }
func (v FontSlant) MarshalYAML() (any, error)     { return v.String(), nil }
func (v Alignment) MarshalYAML() (any, error)     { return v.String(), nil }
func (v VerticalAlign) MarshalYAML() (any, error) { return v.String(), nil }
func (v Decoration) MarshalYAML() (any, error)    { return v.String(), nil }

func enumName[T comparable](names map[T]string, v T) string {
	if name, ok := names[v]; ok {
		return name
	}
	return fmt.Sprintf("%v(?)", any(v))
}

func parseEnum[T comparable](names map[T]string, name string) (T, error) {
	for val, n := range names {
		if n == name {
			return val, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("%s is not a valid value", name)
}

func unmarshalEnum[T comparable](names map[T]string, out *T, unmarshal func(any) error) error {
	var name string
	if err := unmarshal(&name); err != nil {
		return err
	}
	val, err := parseEnum(names, name)
	if err != nil {
		return err
	}
	*out = val
	return nil
}
