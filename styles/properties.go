// Package styles implements the style side of the editing pipeline:
// extraction of named style objects from source, resolution of computed
// styles from rendered documents, normalization of resolved values onto the
// design-token scales, and the merge that produces the editable style view.
package styles

import (
	"strings"
)

// Properties is a flat style map. Keys are camelCase, the spelling used in
// JSX style objects and in the editor's updates contract.
type Properties map[string]string

// Definitions maps style-object variable names to their evaluated properties.
// It is rebuilt by re-scanning the full source whenever the source changes;
// there is no incremental maintenance to drift out of sync.
type Definitions map[string]Properties

// Clone returns a shallow copy.
func (p Properties) Clone() Properties {
	out := make(Properties, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Merge combines source-declared styles with computed styles. Computed values
// form the base, so the editor always shows what actually renders, including
// inherited and defaulted values; source-declared values override per key
// because explicit author intent is authoritative where it exists.
func Merge(source, computed Properties) Properties {
	out := make(Properties, len(source)+len(computed))
	for k, v := range computed {
		out[k] = v
	}
	for k, v := range source {
		out[k] = v
	}
	return out
}

// KebabToCamel converts a CSS property name to its JSX spelling.
func KebabToCamel(s string) string {
	if !strings.ContainsRune(s, '-') {
		return s
	}
	parts := strings.Split(s, "-")
	var b strings.Builder
	b.WriteString(parts[0])
	for _, p := range parts[1:] {
		if p == "" {
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	return b.String()
}

// CamelToKebab converts a JSX style key to its CSS spelling.
func CamelToKebab(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= 'A' && r <= 'Z' {
			b.WriteByte('-')
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
