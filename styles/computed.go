package styles

import (
	"strings"

	"golang.org/x/net/html"

	"mailedit/css"
	"mailedit/dom"
)

// The computed-style engine. The original pipeline asked the browser for
// resolved styles; here resolution is deterministic over the rendered
// document: inline style wins, then class rules from the document's
// stylesheets, then tag defaults, then inheritance for inheritable
// properties, then the UA baseline. A property whose resolved value is its
// default sentinel (none/normal/auto) is omitted whether authored or not,
// except background-image, where "none" is meaningful state.

// propertySpec drives resolution and normalization of one CSS property.
type propertySpec struct {
	css       string
	inherited bool
	normalize func(string) string
	// resolved values equal to one of these are omitted from the result
	defaultSentinels []string
}

var passthrough = func(s string) string { return strings.TrimSpace(s) }

var computedProps = []propertySpec{
	{css: "color", inherited: true, normalize: NormalizeColor},
	{css: "background-color", normalize: NormalizeColor},
	// background-image follows a different inclusion rule than the rest:
	// an authored "none" is itself meaningful state for image-editing UI.
	{css: "background-image", normalize: passthrough},
	{css: "font-family", inherited: true, normalize: passthrough},
	{css: "font-size", inherited: true, normalize: NormalizeFontSize},
	{css: "font-weight", inherited: true, normalize: NormalizeFontWeight},
	{css: "font-style", inherited: true, normalize: passthrough, defaultSentinels: []string{"normal"}},
	{css: "line-height", inherited: true, normalize: NormalizeLineHeight},
	{css: "letter-spacing", inherited: true, normalize: NormalizeLetterSpacing, defaultSentinels: []string{"normal"}},
	{css: "text-align", inherited: true, normalize: passthrough},
	{css: "text-decoration", inherited: true, normalize: NormalizeTextDecoration, defaultSentinels: []string{"none"}},
	{css: "text-transform", inherited: true, normalize: passthrough, defaultSentinels: []string{"none"}},
	{css: "width", normalize: NormalizeDimension, defaultSentinels: []string{"auto"}},
	{css: "height", normalize: NormalizeDimension, defaultSentinels: []string{"auto"}},
	{css: "max-width", normalize: NormalizeDimension, defaultSentinels: []string{"auto", "none"}},
	{css: "min-width", normalize: NormalizeDimension, defaultSentinels: []string{"auto"}},
	{css: "border-width", normalize: NormalizeDimension, defaultSentinels: []string{"auto"}},
	{css: "border-style", normalize: passthrough, defaultSentinels: []string{"none"}},
	{css: "border-color", normalize: NormalizeColor},
	{css: "border-radius", normalize: NormalizeBorderRadius},
}

var sideNames = [4]string{"top", "right", "bottom", "left"}

// baseline is the UA root default for inheritable properties that always
// resolve to something in a browser.
var baseline = Properties{
	"color":       "#000000",
	"font-family": "Arial, Helvetica, sans-serif",
	"font-size":   "16px",
	"line-height": "normal",
}

// tagDefaults approximates the UA stylesheet for the host tags the renderer
// emits. Only properties the editor surfaces are listed.
var tagDefaults = map[string]Properties{
	"h1": {"font-size": "32px", "font-weight": "bold", "margin": "16px 0"},
	"h2": {"font-size": "24px", "font-weight": "bold", "margin": "16px 0"},
	"h3": {"font-size": "20px", "font-weight": "bold", "margin": "16px 0"},
	"h4": {"font-size": "16px", "font-weight": "bold", "margin": "16px 0"},
	"p":  {"margin": "16px 0"},
	"a":  {"color": "#0000ee", "text-decoration": "underline"},
	"hr": {"border-width": "1px", "border-style": "solid", "border-color": "#eaeaea"},
}

// ResolveComputed reads the fixed property allow-list for one rendered node
// and returns normalized values keyed by their camelCase JSX spelling.
func ResolveComputed(doc *dom.Document, n *html.Node) Properties {
	r := &resolver{doc: doc, inline: make(map[*html.Node]map[string]css.Value)}
	out := make(Properties)

	for _, spec := range computedProps {
		raw, found := r.resolve(n, spec.css, spec.inherited)
		if !found {
			continue
		}
		if isSentinel(raw, spec.defaultSentinels) {
			continue
		}
		out[KebabToCamel(spec.css)] = spec.normalize(raw)
	}

	r.resolveSpacing(n, "padding", out)
	r.resolveSpacing(n, "margin", out)
	return out
}

type resolver struct {
	doc    *dom.Document
	parser *css.Parser
	inline map[*html.Node]map[string]css.Value
}

// resolve walks the cascade for one property: declared values on the node
// itself, tag defaults, then ancestors for inheritable properties, then the
// UA baseline.
func (r *resolver) resolve(n *html.Node, prop string, inherited bool) (raw string, found bool) {
	for node := n; node != nil; node = parentElement(node) {
		if v, ok := r.declaredValue(node, prop); ok {
			return v, true
		}
		if v, ok := tagDefaults[node.Data][prop]; ok {
			return v, true
		}
		if !inherited {
			break
		}
	}
	if v, ok := baseline[prop]; ok && inherited {
		return v, true
	}
	return "", false
}

// declaredValue checks inline style then class rules then tag rules on one
// node, in specificity order.
func (r *resolver) declaredValue(n *html.Node, prop string) (string, bool) {
	if v, ok := r.inlineStyles(n)[prop]; ok {
		return v.Raw, true
	}

	// later rules of equal specificity win, so scan back-to-front
	classes := dom.Classes(n)
	for i := len(classes) - 1; i >= 0; i-- {
		for j := len(r.doc.Sheets) - 1; j >= 0; j-- {
			rules := r.doc.Sheets[j].RulesForClass(classes[i])
			for k := len(rules) - 1; k >= 0; k-- {
				rule := rules[k]
				if rule.Selector.Tag != "" && rule.Selector.Tag != n.Data {
					continue
				}
				if v, ok := rule.Properties[prop]; ok {
					return v.Raw, true
				}
			}
		}
	}
	for j := len(r.doc.Sheets) - 1; j >= 0; j-- {
		rules := r.doc.Sheets[j].RulesForTag(n.Data)
		for k := len(rules) - 1; k >= 0; k-- {
			if v, ok := rules[k].Properties[prop]; ok {
				return v.Raw, true
			}
		}
	}
	return "", false
}

func (r *resolver) inlineStyles(n *html.Node) map[string]css.Value {
	if cached, ok := r.inline[n]; ok {
		return cached
	}
	if r.parser == nil {
		r.parser = css.NewParser(nil)
	}
	var props map[string]css.Value
	if style := dom.Attr(n, "style"); style != "" {
		props = r.parser.ParseDeclarations(style)
	}
	r.inline[n] = props
	return props
}

// resolveSpacing resolves padding or margin: each side individually (the
// shorthand expands to sides first), snapped to the spacing scale, then
// re-collapsed to the shortest shorthand. Nothing is emitted when no side is
// set anywhere in the cascade.
func (r *resolver) resolveSpacing(n *html.Node, prop string, out Properties) {
	var sides [4]string
	any := false

	shorthand, shorthandFound := r.resolve(n, prop, false)
	expanded := expandShorthand(shorthand)

	for i, side := range sideNames {
		raw, found := r.resolve(n, prop+"-"+side, false)
		switch {
		case found:
			sides[i] = NormalizeSpacing(raw)
			any = true
		case shorthandFound:
			sides[i] = NormalizeSpacing(expanded[i])
			any = true
		default:
			sides[i] = "0px"
		}
	}
	if any {
		out[prop] = CollapseSides(sides[0], sides[1], sides[2], sides[3])
	}
}

// expandShorthand expands a 1/2/3/4 token box shorthand into its four sides.
func expandShorthand(s string) [4]string {
	t := strings.Fields(s)
	switch len(t) {
	case 1:
		return [4]string{t[0], t[0], t[0], t[0]}
	case 2:
		return [4]string{t[0], t[1], t[0], t[1]}
	case 3:
		return [4]string{t[0], t[1], t[2], t[1]}
	case 4:
		return [4]string{t[0], t[1], t[2], t[3]}
	default:
		return [4]string{"0", "0", "0", "0"}
	}
}

func parentElement(n *html.Node) *html.Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode {
			return p
		}
	}
	return nil
}

func isSentinel(v string, sentinels []string) bool {
	v = strings.ToLower(strings.TrimSpace(v))
	for _, s := range sentinels {
		if v == s {
			return true
		}
	}
	return false
}
