// Package editor assembles the editable view of a selected element and
// applies update deltas back into the source. It is the write side of the
// pipeline: every apply is a full parse-mutate-serialize pass over the
// immutable source string.
package editor

import (
	"errors"
	"fmt"

	"mailedit/common"
	"mailedit/styles"
)

// ElementData is the editor's snapshot of one element at the moment of
// selection. It is created fresh on every selection and never mutated;
// edits flow through Updates instead.
type ElementData struct {
	ID                  string                `json:"id"`
	Kind                common.ElementKind    `json:"kind"`
	Line                int                   `json:"line"`
	Content             string                `json:"content"`
	HasNestedFormatting bool                  `json:"hasNestedFormatting"`
	Origin              common.StyleOrigin    `json:"origin"`
	StyleName           string                `json:"styleName,omitempty"`
	ClassName           string                `json:"className,omitempty"`
	SourceStyles        styles.Properties     `json:"sourceStyles,omitempty"`
	ComputedStyles      styles.Properties     `json:"computedStyles,omitempty"`
	Styles              styles.Properties     `json:"styles"`
	Attributes          map[string]string     `json:"attributes,omitempty"`
}

// Updates is the write-side delta contract surfaced to the editor UI. Every
// field present is additive or overwriting; there is deliberately no way to
// express property removal (an explicit Unset sentinel is a possible future
// extension, empty string does NOT mean delete).
type Updates struct {
	Content    *string           `json:"content,omitempty"`
	Styles     map[string]string `json:"styles,omitempty"`
	Attributes map[string]any    `json:"attributes,omitempty"`
}

// IsEmpty reports whether the delta carries no changes at all.
func (u Updates) IsEmpty() bool {
	return u.Content == nil && len(u.Styles) == 0 && len(u.Attributes) == 0
}

// ErrMissingIdentifier reports selection of a DOM node that carries no
// element identifier. It means the identity tagger never ran over the
// rendered source, which is a caller bug rather than user input.
var ErrMissingIdentifier = errors.New("editor: selected node carries no element identifier")

// StaleLocationError reports that a source line no longer matches the
// element an identifier was issued for. It is recoverable: the caller should
// re-render and re-select rather than treat the document as corrupt.
type StaleLocationError struct {
	Line int
	Kind common.ElementKind
}

func (e *StaleLocationError) Error() string {
	return fmt.Sprintf("editor: no %s element at line %d; source has shifted, re-render required", e.Kind, e.Line)
}
