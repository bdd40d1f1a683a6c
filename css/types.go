// Package css parses the stylesheets embedded in rendered email documents
// into simple class and tag rules. Email CSS is intentionally flat, so only
// simple selectors participate; anything with combinators, pseudo-classes or
// attribute matching is kept as a warning and ignored by resolution.
package css

import (
	"strconv"
	"strings"
)

// Value is one declared property value. Raw preserves the declaration text;
// Value/Unit are filled when the value is a single dimension, percentage or
// number token.
type Value struct {
	Raw   string
	Value float64
	Unit  string
}

// Selector is a parsed simple selector: a tag, a class, or tag.class.
type Selector struct {
	Raw   string
	Tag   string
	Class string
}

// IsSimple reports whether the selector is resolvable by the computed-style
// engine: no combinators, no pseudo-classes, no attribute selectors.
func (s Selector) IsSimple() bool {
	return (s.Tag != "" || s.Class != "") &&
		!strings.ContainsAny(s.Raw, " >+~:[")
}

// Rule couples a selector with its declarations.
type Rule struct {
	Selector   Selector
	Properties map[string]Value
}

// Stylesheet is a parsed set of rules in document order. Document order is
// load-bearing: later rules of equal specificity override earlier ones.
type Stylesheet struct {
	Rules    []Rule
	Warnings []string
}

// RulesForClass returns all rules whose selector names the given class, in
// document order.
func (s *Stylesheet) RulesForClass(class string) []Rule {
	var out []Rule
	for _, r := range s.Rules {
		if r.Selector.Class == class {
			out = append(out, r)
		}
	}
	return out
}

// RulesForTag returns all rules selecting the bare tag, in document order.
func (s *Stylesheet) RulesForTag(tag string) []Rule {
	var out []Rule
	for _, r := range s.Rules {
		if r.Selector.Tag == tag && r.Selector.Class == "" {
			out = append(out, r)
		}
	}
	return out
}

// parseSelector splits a raw selector into tag and class parts.
func parseSelector(raw string) Selector {
	sel := Selector{Raw: raw}
	if raw == "" || strings.ContainsAny(raw, " >+~:[") {
		return sel
	}
	if i := strings.IndexByte(raw, '.'); i >= 0 {
		sel.Tag = raw[:i]
		sel.Class = raw[i+1:]
		// a second class or another dot means a compound we do not resolve
		if strings.ContainsRune(sel.Class, '.') {
			return Selector{Raw: raw}
		}
		return sel
	}
	if strings.HasPrefix(raw, "#") {
		return sel // id selectors are not used by the editor
	}
	sel.Tag = raw
	return sel
}

// parseDimension splits "12px" style values into number and unit.
func parseDimension(s string) (float64, string) {
	i := len(s)
	for i > 0 {
		c := s[i-1]
		if (c >= '0' && c <= '9') || c == '.' || c == '-' {
			break
		}
		i--
	}
	v, err := strconv.ParseFloat(s[:i], 64)
	if err != nil {
		return 0, s[i:]
	}
	return v, s[i:]
}
