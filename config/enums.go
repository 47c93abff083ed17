package config

import (
	"fmt"
)

// Specification of requested debug output type for resolved documents.
type DumpFmt int

const (
	DumpFmtNone DumpFmt = iota
	DumpFmtText
	DumpFmtXML
)

var dumpFmtNames = map[DumpFmt]string{
	DumpFmtNone: "none",
	DumpFmtText: "text",
	DumpFmtXML:  "xml",
}

func (d DumpFmt) String() string {
	if name, ok := dumpFmtNames[d]; ok {
		return name
	}
	return fmt.Sprintf("DumpFmt(%d)", int(d))
}

// ParseDumpFmt converts textual representation to DumpFmt value.
func ParseDumpFmt(name string) (DumpFmt, error) {
	for val, n := range dumpFmtNames {
		if n == name {
			return val, nil
		}
	}
	return DumpFmtNone, fmt.Errorf("%s is not a valid DumpFmt", name)
}

func (d DumpFmt) MarshalYAML() (any, error) {
	return d.String(), nil
}

func (d *DumpFmt) UnmarshalYAML(unmarshal func(any) error) error {
	var name string
	if err := unmarshal(&name); err != nil {
		return err
	}
	val, err := ParseDumpFmt(name)
	if err != nil {
		return err
	}
	*d = val
	return nil
}

func (d DumpFmt) Ext() string {
	switch d {
	case DumpFmtText:
		return ".txt"
	case DumpFmtXML:
		return ".xml"
	default:
		// this should never happen
		panic("unsupported dump format requested")
	}
}
