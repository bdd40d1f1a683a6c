package jsx_test

import (
	"errors"
	"strings"
	"testing"

	"mailedit/common"
	"mailedit/jsx"
)

const sampleSource = `import { Html, Body, Container, Text, Link, Button } from "@react-email/components";

const buttonStyle = {
  backgroundColor: "#000000",
  padding: "16px",
};

const footerStyle = { color: "#888888", fontSize: "12px" };

export default function Welcome() {
  return (
    <Html>
      <Body>
        <div className="wrapper">
          <Container style={{ backgroundColor: "#ffffff" }}>
            <Text style={footerStyle}>Hello there</Text>
            <Text>
              Mixed <Link href="https://example.com">content</Link> here
            </Text>
            <Button style={buttonStyle} href="https://example.com">Click me</Button>
          </Container>
        </div>
      </Body>
    </Html>
  );
}
`

func mustParse(t *testing.T, source string) *jsx.Tree {
	t.Helper()
	tree, err := jsx.Parse(source, nil)
	if err != nil {
		t.Fatalf("failed to parse source: %v", err)
	}
	return tree
}

func findElement(t *testing.T, tree *jsx.Tree, kind common.ElementKind) *jsx.Element {
	t.Helper()
	for _, el := range tree.Elements() {
		if el.Kind == kind {
			return el
		}
	}
	t.Fatalf("no %s element in sample source", kind)
	return nil
}

func TestParseReportsSyntaxError(t *testing.T) {
	_, err := jsx.Parse("export default function X() { return <Html; }", nil)
	if err == nil {
		t.Fatal("expected syntax error")
	}
	var serr *jsx.SyntaxError
	if !errors.As(err, &serr) {
		t.Fatalf("expected *jsx.SyntaxError, got %T: %v", err, err)
	}
	if serr.Line < 1 {
		t.Errorf("expected 1-based line, got %d", serr.Line)
	}
}

func TestRoundTripUnmodified(t *testing.T) {
	tree := mustParse(t, sampleSource)
	if tree.Source() != sampleSource {
		t.Fatal("unmodified tree must serialize to its exact input")
	}
}

func TestElementsWalk(t *testing.T) {
	tree := mustParse(t, sampleSource)

	var kinds []common.ElementKind
	for _, el := range tree.Elements() {
		kinds = append(kinds, el.Kind)
	}
	want := []common.ElementKind{
		common.ElementKindHtml,
		common.ElementKindBody,
		common.ElementKindContainer,
		common.ElementKindText,
		common.ElementKindText,
		common.ElementKindLink,
		common.ElementKindButton,
	}
	if len(kinds) != len(want) {
		t.Fatalf("expected %d selectable elements, got %d (%v)", len(want), len(kinds), kinds)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("element %d: expected %s, got %s", i, want[i], kinds[i])
		}
	}
}

func TestElementAtLine(t *testing.T) {
	tree := mustParse(t, sampleSource)

	button := findElement(t, tree, common.ElementKindButton)
	if got := tree.ElementAtLine(button.Line); got == nil || got.Kind != common.ElementKindButton {
		t.Fatalf("expected Button at line %d, got %v", button.Line, got)
	}
	if got := tree.ElementAtLine(9999); got != nil {
		t.Fatalf("expected nil for non-existent line, got %s", got.Name)
	}
}

func TestTextContent(t *testing.T) {
	tree := mustParse(t, sampleSource)

	var texts []*jsx.Element
	for _, el := range tree.Elements() {
		if el.Kind == common.ElementKindText {
			texts = append(texts, el)
		}
	}
	if len(texts) != 2 {
		t.Fatalf("expected 2 Text elements, got %d", len(texts))
	}

	content, nested := texts[0].Text()
	if content != "Hello there" {
		t.Errorf("expected plain content %q, got %q", "Hello there", content)
	}
	if nested {
		t.Error("plain text element must not report nested formatting")
	}

	content, nested = texts[1].Text()
	if !nested {
		t.Error("element with a nested Link must report nested formatting")
	}
	if !strings.Contains(content, "Mixed") || strings.Contains(content, "content") {
		t.Errorf("nested child text must be excluded from content, got %q", content)
	}
}

func TestAttributes(t *testing.T) {
	tree := mustParse(t, sampleSource)
	button := findElement(t, tree, common.ElementKindButton)

	style, ok := button.Attribute("style")
	if !ok {
		t.Fatal("expected style attribute on Button")
	}
	if name, ok := style.IdentifierRef(); !ok || name != "buttonStyle" {
		t.Errorf("expected identifier reference buttonStyle, got %q (ok=%v)", name, ok)
	}

	href, ok := button.Attribute("href")
	if !ok {
		t.Fatal("expected href attribute on Button")
	}
	if v, ok := href.StringValue(); !ok || v != "https://example.com" {
		t.Errorf("unexpected href value %q (ok=%v)", v, ok)
	}

	container := findElement(t, tree, common.ElementKindContainer)
	cstyle, ok := container.Attribute("style")
	if !ok {
		t.Fatal("expected style attribute on Container")
	}
	obj, ok := cstyle.ObjectLiteral()
	if !ok {
		t.Fatal("expected inline object literal on Container style")
	}
	props := tree.EvalObject(obj)
	if props["backgroundColor"] != "#ffffff" {
		t.Errorf("unexpected evaluated object: %v", props)
	}
}

func TestTopLevelConstObjects(t *testing.T) {
	tree := mustParse(t, sampleSource)

	objs := tree.TopLevelConstObjects()
	if len(objs) != 2 {
		t.Fatalf("expected 2 top-level const objects, got %d", len(objs))
	}
	if objs[0].Name != "buttonStyle" || objs[1].Name != "footerStyle" {
		t.Fatalf("unexpected const object names: %s, %s", objs[0].Name, objs[1].Name)
	}

	props := tree.EvalObject(objs[0].Object)
	if props["backgroundColor"] != "#000000" || props["padding"] != "16px" {
		t.Errorf("unexpected buttonStyle evaluation: %v", props)
	}
}

func TestEvalObjectDropsExpressions(t *testing.T) {
	src := `const headerStyle = { color: "#333333", width: computeWidth(), fontSize: 14, hidden: false };`
	tree := mustParse(t, src)

	node := tree.StyleObjectNode("headerStyle")
	if node == nil {
		t.Fatal("expected headerStyle object")
	}
	props := tree.EvalObject(node)
	if _, ok := props["width"]; ok {
		t.Error("computed value must be silently dropped")
	}
	if props["color"] != "#333333" || props["fontSize"] != "14" || props["hidden"] != "false" {
		t.Errorf("unexpected evaluation result: %v", props)
	}
}

func TestEditListApply(t *testing.T) {
	src := "abcdef"
	var edits jsx.EditList
	edits.Insert(3, "XY")
	edits.Replace(0, 1, "Z")
	if got := edits.Apply(src); got != "ZbcXYdef" {
		t.Fatalf("unexpected splice result %q", got)
	}
	if src != "abcdef" {
		t.Fatal("input must not be modified")
	}
}

func TestInjectIdentifiersIdempotent(t *testing.T) {
	once, err := jsx.InjectIdentifiers(sampleSource, nil)
	if err != nil {
		t.Fatalf("failed to inject identifiers: %v", err)
	}
	twice, err := jsx.InjectIdentifiers(once, nil)
	if err != nil {
		t.Fatalf("failed to re-inject identifiers: %v", err)
	}
	if once != twice {
		t.Fatal("identifier injection must be idempotent")
	}

	tree := mustParse(t, sampleSource)
	button := findElement(t, tree, common.ElementKindButton)
	want := jsx.FormatIdentifier("Button", button.Line)
	if !strings.Contains(once, jsx.AttrElementID+`="`+want+`"`) {
		t.Errorf("expected identifier %q in tagged source", want)
	}

	if strings.Contains(once, `<div className="wrapper" `+jsx.AttrElementID) {
		t.Error("elements outside the allow-list must not be tagged")
	}
}

func TestIdentifierUniquePerPass(t *testing.T) {
	tagged, err := jsx.InjectIdentifiers(sampleSource, nil)
	if err != nil {
		t.Fatalf("failed to inject identifiers: %v", err)
	}
	tree := mustParse(t, tagged)

	seen := make(map[string]bool)
	for _, el := range tree.Elements() {
		attr, ok := el.Attribute(jsx.AttrElementID)
		if !ok {
			t.Fatalf("%s at line %d is untagged", el.Name, el.Line)
		}
		id, _ := attr.StringValue()
		if seen[id] {
			t.Fatalf("duplicate identifier %q", id)
		}
		seen[id] = true
	}
}

func TestParseIdentifier(t *testing.T) {
	kind, line, err := jsx.ParseIdentifier("element-Button-19")
	if err != nil {
		t.Fatalf("failed to parse identifier: %v", err)
	}
	if kind != common.ElementKindButton || line != 19 {
		t.Errorf("unexpected result: %s, %d", kind, line)
	}

	for _, bad := range []string{"", "Button-19", "element-Button", "element-Marquee-3", "element-Button-x"} {
		if _, _, err := jsx.ParseIdentifier(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}
