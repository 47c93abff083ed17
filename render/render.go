// Package render defines the boundary the resolved tree is handed across.
// Real paginated output is produced by an external engine; the package ships
// a text renderer so the boundary stays exercised end to end.
package render

import (
	"context"
	"io"

	"press/cascade"
	"press/doc"
	"press/resources"
)

// Renderer consumes a fully resolved tree. Implementations walk the document
// read-only, styles come exclusively from the resolution, never from
// re-running the cascade.
type Renderer interface {
	Render(ctx context.Context, d *doc.Document, res cascade.Resolution, assets *resources.Assets, out io.Writer) error
}
