// Package brandkit serves the color palettes and font stacks the editor
// offers when styling elements. Values go through the same normalization as
// edited styles, so a palette pick and a hand-typed value always compare
// equal.
package brandkit

import "mailedit/styles"

// Color is one named palette entry. Value is a normalized hex color.
type Color struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// FontStack is a named font-family fallback chain.
type FontStack struct {
	Name  string `json:"name"`
	Stack string `json:"stack"`
}

// Kit bundles a palette with its font stacks.
type Kit struct {
	Name   string      `json:"name"`
	Colors []Color     `json:"colors"`
	Fonts  []FontStack `json:"fonts"`
}

// Provider is the source of available brand kits.
type Provider interface {
	Kits() []Kit
	Kit(name string) (Kit, bool)
}

type staticProvider struct {
	kits []Kit
}

// NewStatic returns the built-in kits. Color values are normalized on
// construction.
func NewStatic() Provider {
	p := &staticProvider{kits: builtinKits()}
	for i := range p.kits {
		for j := range p.kits[i].Colors {
			p.kits[i].Colors[j].Value = styles.NormalizeColor(p.kits[i].Colors[j].Value)
		}
	}
	return p
}

func (p *staticProvider) Kits() []Kit {
	out := make([]Kit, len(p.kits))
	copy(out, p.kits)
	return out
}

func (p *staticProvider) Kit(name string) (Kit, bool) {
	for _, k := range p.kits {
		if k.Name == name {
			return k, true
		}
	}
	return Kit{}, false
}

func builtinKits() []Kit {
	return []Kit{
		{
			Name: "default",
			Colors: []Color{
				{Name: "Ink", Value: "#111827"},
				{Name: "Slate", Value: "#64748b"},
				{Name: "Sky", Value: "rgb(14, 165, 233)"},
				{Name: "Emerald", Value: "#10b981"},
				{Name: "Amber", Value: "#f59e0b"},
				{Name: "Paper", Value: "#ffffff"},
			},
			Fonts: []FontStack{
				{Name: "Sans", Stack: "Arial, 'Helvetica Neue', Helvetica, sans-serif"},
				{Name: "Serif", Stack: "Georgia, 'Times New Roman', serif"},
				{Name: "Mono", Stack: "'Courier New', Courier, monospace"},
			},
		},
		{
			Name: "mono",
			Colors: []Color{
				{Name: "Black", Value: "#000"},
				{Name: "Gray", Value: "#666"},
				{Name: "Light", Value: "#e5e5e5"},
				{Name: "White", Value: "white"},
			},
			Fonts: []FontStack{
				{Name: "Mono", Stack: "'Courier New', Courier, monospace"},
			},
		},
	}
}
