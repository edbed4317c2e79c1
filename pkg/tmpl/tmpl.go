// Package tmpl provides template rendering utilities for text reports.
package tmpl

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
)

// pct formats n out of total as a whole percentage. A zero total reads as
// fully done rather than dividing by zero.
func pct(n, total int) string {
	if total == 0 {
		return "100%"
	}
	return fmt.Sprintf("%d%%", n*100/total)
}

// plural picks the singular or plural form for n.
func plural(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}

var funcs = template.FuncMap{
	"join":   strings.Join,
	"pct":    pct,
	"plural": plural,
}

// Render executes a Go template string with the given data.
// Returns an error if the template is invalid or references undefined keys.
//
// Available template functions:
//   - join: Join string slice with separator (e.g., join .Names ", ")
//   - pct: Format a count out of a total as a percentage (e.g., pct .Done .Total)
//   - plural: Pick singular or plural form by count (e.g., plural .N "hunk" "hunks")
func Render(tmpl string, data any) (string, error) {
	t, err := template.New("").Funcs(funcs).Option("missingkey=error").Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute template: %w", err)
	}

	return buf.String(), nil
}
