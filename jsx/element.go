package jsx

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"mailedit/common"
)

// Element is one selectable JSX element: the full node (opening tag, children,
// closing tag) plus the decoded identity of its opening tag. Line is 1-based
// and is the join key used by identifiers and the updater.
type Element struct {
	Kind common.ElementKind
	Name string // component name as written in source
	Line int    // line the opening tag starts on

	tree    *Tree
	node    *sitter.Node // jsx_element or jsx_self_closing_element
	opening *sitter.Node // jsx_opening_element, or node itself when self-closing
}

// Elements returns every allow-listed element in document order. Components
// outside the allow-list are not returned; their subtrees are still walked
// since selectable elements can nest inside opaque wrappers.
func (t *Tree) Elements() []*Element {
	var out []*Element
	t.walkElements(t.Root(), func(el *Element) {
		out = append(out, el)
	})
	return out
}

// ElementAtLine returns the element whose opening tag starts at exactly the
// given 1-based line, or nil when no selectable element starts there. A nil
// result is the normal way of detecting that the source has shifted under a
// previously issued identifier.
func (t *Tree) ElementAtLine(line int) *Element {
	var found *Element
	t.walkElements(t.Root(), func(el *Element) {
		if found == nil && el.Line == line {
			found = el
		}
	})
	return found
}

func (t *Tree) walkElements(n *sitter.Node, fn func(*Element)) {
	if el := t.elementFor(n); el != nil {
		fn(el)
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		t.walkElements(n.NamedChild(i), fn)
	}
}

// elementFor builds an Element for a node when it is an allow-listed JSX
// element, nil otherwise.
func (t *Tree) elementFor(n *sitter.Node) *Element {
	var opening *sitter.Node
	switch n.Type() {
	case "jsx_element":
		opening = n.NamedChild(0)
		if opening == nil || opening.Type() != "jsx_opening_element" {
			return nil
		}
	case "jsx_self_closing_element":
		opening = n
	default:
		return nil
	}

	nameNode := opening.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}
	name := nameNode.Content(t.src)
	kind, ok := common.KindForName(name)
	if !ok {
		return nil
	}
	return &Element{
		Kind:    kind,
		Name:    name,
		Line:    int(opening.StartPoint().Row) + 1,
		tree:    t,
		node:    n,
		opening: opening,
	}
}

// SelfClosing reports whether the element has no children section at all.
func (e *Element) SelfClosing() bool {
	return e.node.Type() == "jsx_self_closing_element"
}

// Node returns the full element node.
func (e *Element) Node() *sitter.Node {
	return e.node
}

// nameNode returns the opening tag's name node.
func (e *Element) nameNode() *sitter.Node {
	return e.opening.ChildByFieldName("name")
}

// AfterName returns the byte offset immediately after the opening tag's name,
// the insertion point for new attributes.
func (e *Element) AfterName() uint32 {
	return e.nameNode().EndByte()
}

// ContentRange returns the byte range between the opening and closing tags.
// ok is false for self-closing elements.
func (e *Element) ContentRange() (start, end uint32, ok bool) {
	if e.SelfClosing() {
		return 0, 0, false
	}
	closing := e.node.NamedChild(int(e.node.NamedChildCount()) - 1)
	if closing == nil || closing.Type() != "jsx_closing_element" {
		return 0, 0, false
	}
	return e.opening.EndByte(), closing.StartByte(), true
}

// Attributes returns the element's attributes in source order.
func (e *Element) Attributes() []Attribute {
	var out []Attribute
	for i := 0; i < int(e.opening.NamedChildCount()); i++ {
		c := e.opening.NamedChild(i)
		if c.Type() != "jsx_attribute" {
			continue
		}
		if a, ok := e.tree.attributeFor(c); ok {
			out = append(out, a)
		}
	}
	return out
}

// Attribute looks an attribute up by name.
func (e *Element) Attribute(name string) (Attribute, bool) {
	for _, a := range e.Attributes() {
		if a.Name == name {
			return a, true
		}
	}
	return Attribute{}, false
}

// Text concatenates the element's plain text content: jsx_text children and
// string-literal or identifier expression containers. nested becomes true when
// any child is itself an element, which signals that direct text editing
// would destroy structure.
func (e *Element) Text() (content string, nested bool) {
	if e.SelfClosing() {
		return "", false
	}
	var b strings.Builder
	for i := 0; i < int(e.node.NamedChildCount()); i++ {
		c := e.node.NamedChild(i)
		switch c.Type() {
		case "jsx_opening_element", "jsx_closing_element":
			continue
		case "jsx_text":
			b.WriteString(c.Content(e.tree.src))
		case "jsx_expression":
			inner := c.NamedChild(0)
			if inner == nil {
				continue
			}
			switch inner.Type() {
			case "string":
				b.WriteString(stringFragment(inner, e.tree.src))
			case "identifier":
				b.WriteString(inner.Content(e.tree.src))
			}
		case "jsx_element", "jsx_self_closing_element", "jsx_fragment":
			nested = true
		}
	}
	return strings.TrimSpace(b.String()), nested
}

// Attribute is one JSX attribute of an opening tag. The value node is either
// a string literal, a jsx_expression, or nil for bare boolean attributes.
type Attribute struct {
	Name string

	tree  *Tree
	node  *sitter.Node // jsx_attribute
	value *sitter.Node
}

func (t *Tree) attributeFor(n *sitter.Node) (Attribute, bool) {
	nameNode := n.NamedChild(0)
	if nameNode == nil {
		return Attribute{}, false
	}
	a := Attribute{
		Name: nameNode.Content(t.src),
		tree: t,
		node: n,
	}
	if n.NamedChildCount() > 1 {
		a.value = n.NamedChild(1)
	}
	return a, true
}

// Raw returns the attribute's full source text.
func (a Attribute) Raw() string {
	return a.node.Content(a.tree.src)
}

// Range returns the byte range of the whole attribute, name included.
func (a Attribute) Range() (start, end uint32) {
	return a.node.StartByte(), a.node.EndByte()
}

// ValueRange returns the byte range of the attribute's value node.
func (a Attribute) ValueRange() (start, end uint32, ok bool) {
	if a.value == nil {
		return 0, 0, false
	}
	return a.value.StartByte(), a.value.EndByte(), true
}

// StringValue returns the unquoted value of a string-literal attribute.
func (a Attribute) StringValue() (string, bool) {
	if a.value == nil || a.value.Type() != "string" {
		return "", false
	}
	return stringFragment(a.value, a.tree.src), true
}

// Expression returns the inner expression of a `{...}` attribute value.
func (a Attribute) Expression() (*sitter.Node, bool) {
	if a.value == nil || a.value.Type() != "jsx_expression" {
		return nil, false
	}
	inner := a.value.NamedChild(0)
	if inner == nil {
		return nil, false
	}
	return inner, true
}

// IdentifierRef returns the name of a bare identifier expression value, the
// shape of a named-style-object reference (`style={buttonStyle}`).
func (a Attribute) IdentifierRef() (string, bool) {
	inner, ok := a.Expression()
	if !ok || inner.Type() != "identifier" {
		return "", false
	}
	return inner.Content(a.tree.src), true
}

// ObjectLiteral returns the object node of an inline object expression value
// (`style={{color: "red"}}`).
func (a Attribute) ObjectLiteral() (*sitter.Node, bool) {
	inner, ok := a.Expression()
	if !ok || inner.Type() != "object" {
		return nil, false
	}
	return inner, true
}

// stringFragment extracts the content of a string literal node without its
// surrounding quotes.
func stringFragment(n *sitter.Node, src []byte) string {
	var b strings.Builder
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		if c.Type() == "string_fragment" || c.Type() == "escape_sequence" {
			b.WriteString(c.Content(src))
		}
	}
	return b.String()
}
