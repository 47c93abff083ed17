package style

import "fmt"

// Kind discriminates property bag variants, one per content node kind.
type Kind int

const (
	KindTextRun Kind = iota
	KindTextBlock
	KindSection
	KindPart
	KindList
	KindListItem
	KindTable
	KindTableCell
	KindBlockImage
	KindLayoutTable
	KindFootnote
)

var kindNames = map[Kind]string{
	KindTextRun:     "text-run",
	KindTextBlock:   "text-block",
	KindSection:     "section",
	KindPart:        "part",
	KindList:        "list",
	KindListItem:    "list-item",
	KindTable:       "table",
	KindTableCell:   "table-cell",
	KindBlockImage:  "block-image",
	KindLayoutTable: "layout-table",
	KindFootnote:    "footnote",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind converts textual representation to Kind value.
func ParseKind(name string) (Kind, error) {
	for val, n := range kindNames {
		if n == name {
			return val, nil
		}
	}
	return 0, fmt.Errorf("%s is not a valid style kind", name)
}

func (k *Kind) UnmarshalYAML(unmarshal func(any) error) error {
	var name string
	if err := unmarshal(&name); err != nil {
		return err
	}
	val, err := ParseKind(name)
	if err != nil {
		return err
	}
	*k = val
	return nil
}

func (k Kind) MarshalYAML() (any, error) {
	return k.String(), nil
}

// StandardKind is the closed set of canonical node roles used for
// default-style fallback when no explicit class resolves.
type StandardKind int

const (
	StdParagraph StandardKind = iota
	StdH1
	StdH2
	StdH3
	StdH4
	StdH5
	StdH6
	StdListItem
	StdList
	StdSection
	StdPart
	StdTable
	StdTableCell
	StdFootnote
	StdImage
	StdLayout
	StdPage
)

var standardKindNames = map[StandardKind]string{
	StdParagraph: "p",
	StdH1:        "h1",
	StdH2:        "h2",
	StdH3:        "h3",
	StdH4:        "h4",
	StdH5:        "h5",
	StdH6:        "h6",
	StdListItem:  "li",
	StdList:      "ul",
	StdSection:   "section",
	StdPart:      "part",
	StdTable:     "table",
	StdTableCell: "td",
	StdFootnote:  "footnote",
	StdImage:     "image",
	StdLayout:    "layout",
	StdPage:      "page",
}

func (s StandardKind) String() string {
	if name, ok := standardKindNames[s]; ok {
		return name
	}
	return fmt.Sprintf("StandardKind(%d)", int(s))
}

// ParseStandardKind converts textual representation to StandardKind value.
func ParseStandardKind(name string) (StandardKind, error) {
	for val, n := range standardKindNames {
		if n == name {
			return val, nil
		}
	}
	return 0, fmt.Errorf("%s is not a valid standard element kind", name)
}

// HeadingKind maps a heading level to its standard kind. Levels outside [1,6]
// are clamped by the document constructors before we get here.
func HeadingKind(level int) StandardKind {
	switch level {
	case 2:
		return StdH2
	case 3:
		return StdH3
	case 4:
		return StdH4
	case 5:
		return StdH5
	case 6:
		return StdH6
	default:
		return StdH1
	}
}

// BagKind returns the property bag kind a standard element is expected to carry.
func (s StandardKind) BagKind() Kind {
	switch s {
	case StdParagraph, StdH1, StdH2, StdH3, StdH4, StdH5, StdH6:
		return KindTextBlock
	case StdListItem:
		return KindListItem
	case StdList:
		return KindList
	case StdSection, StdPage:
		return KindSection
	case StdPart:
		return KindPart
	case StdTable:
		return KindTable
	case StdTableCell:
		return KindTableCell
	case StdFootnote:
		return KindFootnote
	case StdImage:
		return KindBlockImage
	case StdLayout:
		return KindLayoutTable
	default:
		// this should never happen
		panic("unsupported standard element kind")
	}
}
