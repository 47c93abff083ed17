// Package debug provides a small indented tree writer used by content tree
// and resolution dumps.
package debug

import (
	"fmt"
	"strconv"
	"strings"
)

type TreeWriter struct {
	w *strings.Builder
}

func NewTreeWriter() *TreeWriter {
	return &TreeWriter{
		w: &strings.Builder{},
	}
}

func (tw TreeWriter) String() string {
	return tw.w.String()
}

func (tw TreeWriter) Line(depth int, format string, args ...any) {
	for range depth {
		tw.w.WriteString("  ")
	}
	fmt.Fprintf(tw.w, format, args...)
	tw.w.WriteByte('\n')
}

func (tw TreeWriter) TextBlock(depth int, label, value string) {
	for range depth {
		tw.w.WriteString("  ")
	}
	tw.w.WriteString(label)
	tw.w.WriteString(": ")
	tw.w.WriteString(encodeText(value))
	tw.w.WriteByte('\n')
}

// Node writes a node line followed by name=value attribute pairs. String
// values are quoted, empty ones are dropped so dumps stay compact.
func (tw TreeWriter) Node(depth int, name string, pairs ...any) {
	for range depth {
		tw.w.WriteString("  ")
	}
	tw.w.WriteString(name)
	for i := 0; i+1 < len(pairs); i += 2 {
		if s, ok := pairs[i+1].(string); ok {
			if s == "" {
				continue
			}
			fmt.Fprintf(tw.w, " %v=%s", pairs[i], encodeText(s))
			continue
		}
		fmt.Fprintf(tw.w, " %v=%v", pairs[i], pairs[i+1])
	}
	tw.w.WriteByte('\n')
}

func encodeText(raw string) string {
	if raw == "" {
		return raw
	}
	return strconv.Quote(raw)
}
