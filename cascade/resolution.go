package cascade

import "press/style"

// Resolution maps content tree nodes to their resolved styles. Keys are node
// pointers, so a resolution is only meaningful for the exact tree it was
// computed from. Page number markers have no entry at all.
type Resolution map[any]style.Style

// Of returns the resolved style recorded for node, nil when the node was not
// part of the resolved tree.
func (r Resolution) Of(node any) style.Style {
	return r[node]
}

// Has reports whether a style was recorded for node.
func (r Resolution) Has(node any) bool {
	_, ok := r[node]
	return ok
}

func (r Resolution) put(node any, s style.Style) {
	r[node] = s
}
