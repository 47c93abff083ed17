package compose

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"

	"press/doc"
)

// Values holds the variables available to the output name template.
type Values struct {
	Title      string
	Authors    []string
	Language   string
	DocumentID string
	SourceFile string
}

func expandTemplate(d *doc.Document, field, srcName string) (string, error) {
	tmpl, err := template.New("output_name_template").Funcs(sprig.FuncMap()).Parse(field)
	if err != nil {
		return "", fmt.Errorf("unable to parse output name template: %w", err)
	}

	values := Values{
		Title:      d.Meta.Title,
		Authors:    d.Meta.Authors,
		Language:   d.Meta.Lang.String(),
		DocumentID: d.Meta.ID,
		SourceFile: strings.TrimSuffix(filepath.Base(srcName), filepath.Ext(srcName)),
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		return "", err
	}
	return buf.String(), nil
}
