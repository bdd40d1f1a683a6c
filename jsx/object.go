package jsx

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// ConstObject is a top-level `const X = { ... }` declaration.
type ConstObject struct {
	Name   string
	Line   int // 1-based line of the declaration
	Object *sitter.Node
}

// TopLevelConstObjects returns every top-level const bound to an object
// literal, in document order. Declarations wrapped in `export` are included
// since templates commonly export their style maps.
func (t *Tree) TopLevelConstObjects() []ConstObject {
	var out []ConstObject
	root := t.Root()
	for i := 0; i < int(root.NamedChildCount()); i++ {
		decl := root.NamedChild(i)
		if decl.Type() == "export_statement" {
			if inner := decl.ChildByFieldName("declaration"); inner != nil {
				decl = inner
			}
		}
		if decl.Type() != "lexical_declaration" || !strings.HasPrefix(decl.Content(t.src), "const") {
			continue
		}
		for j := 0; j < int(decl.NamedChildCount()); j++ {
			vd := decl.NamedChild(j)
			if vd.Type() != "variable_declarator" {
				continue
			}
			name := vd.ChildByFieldName("name")
			value := vd.ChildByFieldName("value")
			if name == nil || value == nil {
				continue
			}
			// `const x = {...} as const` and satisfies-expressions still count.
			obj := unwrapObject(value)
			if obj == nil || name.Type() != "identifier" {
				continue
			}
			out = append(out, ConstObject{
				Name:   name.Content(t.src),
				Line:   int(vd.StartPoint().Row) + 1,
				Object: obj,
			})
		}
	}
	return out
}

// StyleObjectNode finds the object literal of a top-level const by name.
func (t *Tree) StyleObjectNode(name string) *sitter.Node {
	for _, co := range t.TopLevelConstObjects() {
		if co.Name == name {
			return co.Object
		}
	}
	return nil
}

func unwrapObject(n *sitter.Node) *sitter.Node {
	switch n.Type() {
	case "object":
		return n
	case "as_expression", "satisfies_expression", "parenthesized_expression":
		if inner := n.NamedChild(0); inner != nil {
			return unwrapObject(inner)
		}
	}
	return nil
}

// Pair is one key/value entry of an object literal.
type Pair struct {
	Key   string
	Node  *sitter.Node // the pair node
	Value *sitter.Node
}

// ObjectPairs lists the literal pairs of an object node in source order.
// Spread elements, methods and computed keys are skipped.
func (t *Tree) ObjectPairs(obj *sitter.Node) []Pair {
	var out []Pair
	for i := 0; i < int(obj.NamedChildCount()); i++ {
		p := obj.NamedChild(i)
		if p.Type() != "pair" {
			continue
		}
		key := p.ChildByFieldName("key")
		value := p.ChildByFieldName("value")
		if key == nil || value == nil {
			continue
		}
		var name string
		switch key.Type() {
		case "property_identifier":
			name = key.Content(t.src)
		case "string":
			name = stringFragment(key, t.src)
		default:
			continue
		}
		out = append(out, Pair{Key: name, Node: p, Value: value})
	}
	return out
}

// EvalObject evaluates an object literal into a plain key/value map. Only
// literal values participate: strings, numbers, booleans and nested literal
// objects (serialized compactly). Computed or expression values are silently
// dropped, which degrades those properties to "not editable" rather than
// failing the whole extraction.
func (t *Tree) EvalObject(obj *sitter.Node) map[string]string {
	out := make(map[string]string)
	for _, p := range t.ObjectPairs(obj) {
		if v, ok := t.evalValue(p.Value); ok {
			out[p.Key] = v
		}
	}
	return out
}

func (t *Tree) evalValue(n *sitter.Node) (string, bool) {
	switch n.Type() {
	case "string":
		return stringFragment(n, t.src), true
	case "number":
		return n.Content(t.src), true
	case "true":
		return "true", true
	case "false":
		return "false", true
	case "unary_expression":
		// negative numeric literals parse as unary expressions
		if arg := n.ChildByFieldName("argument"); arg != nil && arg.Type() == "number" {
			return n.Content(t.src), true
		}
	case "template_string":
		// only templates without substitutions are literal
		if !hasChildOfType(n, "template_substitution") {
			return stringFragment(n, t.src), true
		}
	case "object":
		var b strings.Builder
		b.WriteByte('{')
		first := true
		for _, p := range t.ObjectPairs(n) {
			v, ok := t.evalValue(p.Value)
			if !ok {
				continue
			}
			if !first {
				b.WriteByte(',')
			}
			first = false
			b.WriteString(`"` + p.Key + `":"` + v + `"`)
		}
		b.WriteByte('}')
		return b.String(), true
	}
	return "", false
}

func hasChildOfType(n *sitter.Node, typ string) bool {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if n.NamedChild(i).Type() == typ {
			return true
		}
	}
	return false
}
