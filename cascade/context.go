// Package cascade computes the final style of every content tree node. It
// walks the tree exactly once in pre-order, resolving each node's property
// bag through the class, default and inheritance chain, and records the
// results in a map keyed by node identity. The tree itself is never mutated.
package cascade

import "press/style"

// Context is the immutable value carried down the tree during resolution. It
// holds the class lookup map, the sheet the defaults come from and the
// resolved style of the nearest styled ancestor.
type Context struct {
	Map    style.Map
	Sheet  *style.Sheet
	Parent style.Style
}

// NewContext builds the root context for a resolution pass. Parent is nil
// until the first node resolves.
func NewContext(sheet *style.Sheet) Context {
	return Context{
		Map:   sheet.StyleMap(),
		Sheet: sheet,
	}
}

// Child derives a context for the node's children: same lookups, the node's
// freshly resolved style as the new parent.
func (ctx Context) Child(resolved style.Style) Context {
	ctx.Parent = resolved
	return ctx
}
