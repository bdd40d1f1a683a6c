// Package common holds enums shared between the editing pipeline, the
// renderer and the configuration layer. Keeping them in one place keeps the
// selectable-element allow-list single-sourced: the tagger, the extractor and
// the renderer all dispatch on the same closed set.
package common

// ElementKind is the closed set of email building-block components the
// editor knows how to select and edit. Component names outside this set are
// rendered as opaque markup and never tagged for selection.
// ENUM(Html, Head, Body, Preview, Container, Section, Row, Column, Heading, Text, Button, Img, Link, Hr)
type ElementKind string

// StyleOrigin describes where an element's author styles come from. Class
// styling wins in the reported origin when both class and style attributes
// are present, since that is what actually renders in the target system.
// ENUM(none, inline, styleObject, cssClass)
type StyleOrigin int

// elementTraits is the single dispatch table for per-kind behavior.
type elementTraits struct {
	htmlTag string // host tag the renderer emits
	textual bool   // direct content editing makes sense
	void    bool   // element never has children
}

var elementTraitsTable = map[ElementKind]elementTraits{
	ElementKindHtml:      {htmlTag: "html"},
	ElementKindHead:      {htmlTag: "head"},
	ElementKindBody:      {htmlTag: "body"},
	ElementKindPreview:   {htmlTag: "div", textual: true},
	ElementKindContainer: {htmlTag: "table"},
	ElementKindSection:   {htmlTag: "table"},
	ElementKindRow:       {htmlTag: "table"},
	ElementKindColumn:    {htmlTag: "td"},
	ElementKindHeading:   {htmlTag: "h1", textual: true},
	ElementKindText:      {htmlTag: "p", textual: true},
	ElementKindButton:    {htmlTag: "a", textual: true},
	ElementKindImg:       {htmlTag: "img", void: true},
	ElementKindLink:      {htmlTag: "a", textual: true},
	ElementKindHr:        {htmlTag: "hr", void: true},
}

// KindForName maps a JSX component name to its ElementKind. The second
// result is false for names outside the selectable allow-list.
func KindForName(name string) (ElementKind, bool) {
	k := ElementKind(name)
	_, ok := elementTraitsTable[k]
	return k, ok
}

// Selectable reports whether a JSX component name belongs to the allow-list.
func Selectable(name string) bool {
	_, ok := KindForName(name)
	return ok
}

// HTMLTag returns the host HTML tag the renderer emits for the kind.
func (k ElementKind) HTMLTag() string {
	return elementTraitsTable[k].htmlTag
}

// Textual reports whether direct text-content editing makes sense for the kind.
func (k ElementKind) Textual() bool {
	return elementTraitsTable[k].textual
}

// Void reports whether elements of this kind never carry children.
func (k ElementKind) Void() bool {
	return elementTraitsTable[k].void
}
