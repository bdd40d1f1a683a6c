// Package scaffold generates starter template source for newly created
// templates, so nobody begins from an empty file.
package scaffold

import (
	"embed"
	"fmt"
	"sort"
	"strings"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"

	"mailedit/brandkit"
)

//go:embed templates/*.tsx.tmpl
var templatesFS embed.FS

// Params feeds a starter template. Kit supplies the palette; a zero Kit
// falls back to neutral defaults.
type Params struct {
	Name    string
	Preview string
	Kit     brandkit.Kit
}

// Color resolves a palette color by name, with a neutral fallback so
// starter templates work without a brand kit.
func (p Params) Color(name string) string {
	for _, c := range p.Kit.Colors {
		if strings.EqualFold(c.Name, name) {
			return c.Value
		}
	}
	switch strings.ToLower(name) {
	case "paper", "white":
		return "#ffffff"
	default:
		return "#111827"
	}
}

// Ident derives a valid component identifier from the template name.
func (p Params) Ident() string {
	var sb strings.Builder
	upper := true
	for _, r := range p.Name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			if upper {
				sb.WriteString(strings.ToUpper(string(r)))
			} else {
				sb.WriteRune(r)
			}
			upper = false
		case r >= '0' && r <= '9' && sb.Len() > 0:
			sb.WriteRune(r)
			upper = true
		default:
			upper = true
		}
	}
	if sb.Len() == 0 {
		return "EmailTemplate"
	}
	return sb.String()
}

// Font resolves a font stack by name.
func (p Params) Font(name string) string {
	for _, f := range p.Kit.Fonts {
		if strings.EqualFold(f.Name, name) {
			return f.Stack
		}
	}
	return "Arial, 'Helvetica Neue', Helvetica, sans-serif"
}

// List returns the available starter names.
func List() ([]string, error) {
	entries, err := templatesFS.ReadDir("templates")
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".tsx.tmpl"))
	}
	sort.Strings(names)
	return names, nil
}

// Generate renders the named starter with the given parameters.
func Generate(name string, p Params) (string, error) {
	if p.Name == "" {
		p.Name = "Untitled"
	}
	if p.Preview == "" {
		p.Preview = p.Name
	}

	t, err := template.New(name + ".tsx.tmpl").
		Delims("[[", "]]").
		Funcs(sprig.FuncMap()).
		ParseFS(templatesFS, "templates/"+name+".tsx.tmpl")
	if err != nil {
		return "", fmt.Errorf("unknown starter '%s': %w", name, err)
	}

	var sb strings.Builder
	if err := t.Execute(&sb, p); err != nil {
		return "", fmt.Errorf("unable to generate starter '%s': %w", name, err)
	}
	return sb.String(), nil
}
