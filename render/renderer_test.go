package render_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"mailedit/common"
	"mailedit/dom"
	"mailedit/jsx"
	"mailedit/render"
)

const welcomeSource = `import { Html, Head, Body, Preview, Container, Heading, Text, Button, Hr } from "@react-email/components";
import { Font } from "@react-email/font";

const buttonStyle = { backgroundColor: "#000000", padding: "16px 24px" };

const perks = ["One", "Two"];

export default function Welcome() {
  return (
    <Html lang="en">
      <Head>
        <Font fallbackFontFamily="Arial" />
      </Head>
      <Preview>Welcome aboard</Preview>
      <Body>
        <Container>
          <Heading as="h2">Hello</Heading>
          {perks.map((p) => (
            <Text key={p}>{p}</Text>
          ))}
          <Hr />
          <Button href="https://example.com" style={buttonStyle}>Get started</Button>
        </Container>
      </Body>
    </Html>
  );
}
`

func renderTagged(t *testing.T, source string) (string, *jsx.Tree) {
	t.Helper()
	tagged, err := jsx.InjectIdentifiers(source, nil)
	if err != nil {
		t.Fatalf("failed to tag source: %v", err)
	}
	out, err := render.NewRenderer(0, nil).Render(context.Background(), tagged)
	if err != nil {
		t.Fatalf("failed to render: %v", err)
	}
	tree, err := jsx.Parse(tagged, nil)
	if err != nil {
		t.Fatalf("failed to re-parse tagged source: %v", err)
	}
	return out, tree
}

func elementID(t *testing.T, tree *jsx.Tree, kind common.ElementKind) string {
	t.Helper()
	for _, el := range tree.Elements() {
		if el.Kind != kind {
			continue
		}
		if attr, ok := el.Attribute(jsx.AttrElementID); ok {
			id, _ := attr.StringValue()
			return id
		}
	}
	t.Fatalf("no tagged %s element", kind)
	return ""
}

func TestRenderDocument(t *testing.T) {
	out, tree := renderTagged(t, welcomeSource)

	if !strings.HasPrefix(out, "<!DOCTYPE html>") {
		t.Error("document must start with a doctype")
	}

	doc, err := dom.ParseDocument(out, nil)
	if err != nil {
		t.Fatalf("rendered document does not parse: %v", err)
	}

	button := doc.FindByElementID(elementID(t, tree, common.ElementKindButton))
	if button == nil {
		t.Fatal("button identifier did not survive rendering")
	}
	if button.Data != "a" {
		t.Errorf("button must render as an anchor, got <%s>", button.Data)
	}
	if got := dom.Attr(button, "href"); got != "https://example.com" {
		t.Errorf("unexpected href %q", got)
	}
	if got := dom.Attr(button, "target"); got != "_blank" {
		t.Errorf("buttons default to target=_blank, got %q", got)
	}
	style := dom.Attr(button, "style")
	if !strings.Contains(style, "background-color:#000000") || !strings.Contains(style, "padding:16px 24px") {
		t.Errorf("shared style object must serialize to inline css, got %q", style)
	}

	heading := doc.FindByElementID(elementID(t, tree, common.ElementKindHeading))
	if heading == nil || heading.Data != "h2" {
		t.Errorf("heading must honor its as prop, got %v", heading)
	}

	container := doc.FindByElementID(elementID(t, tree, common.ElementKindContainer))
	if container == nil || container.Data != "table" {
		t.Errorf("container must render as a table, got %v", container)
	}

	preview := doc.FindByElementID(elementID(t, tree, common.ElementKindPreview))
	if preview == nil || !strings.Contains(dom.Attr(preview, "style"), "display:none") {
		t.Error("preview text must be hidden")
	}

	// dynamic children from the array map
	for _, want := range []string{"One", "Two"} {
		if !strings.Contains(out, ">"+want+"<") {
			t.Errorf("rendered output is missing mapped child %q", want)
		}
	}
}

func TestRenderStages(t *testing.T) {
	tests := []struct {
		name   string
		source string
		stage  string
	}{
		{"syntax error", "export default function X() { return <Htmlырь; }", render.StageParse},
		{"no default export", "const x = 1;\n", render.StagePreprocess},
		{"throwing template", "export default function X() { return missing(); }\n", render.StageEvaluate},
		{"non element result", "export default () => 42;\n", render.StageEvaluate},
	}

	r := render.NewRenderer(0, nil)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := r.Render(context.Background(), tc.source)
			var rerr *render.Error
			if !errors.As(err, &rerr) {
				t.Fatalf("expected *render.Error, got %v", err)
			}
			if rerr.Stage != tc.stage {
				t.Errorf("expected stage %s, got %s (%v)", tc.stage, rerr.Stage, rerr)
			}
		})
	}
}

func TestRenderTimeout(t *testing.T) {
	src := "export default function X() { while (true) {} return <div/>; }\n"
	_, err := render.NewRenderer(1, nil).Render(context.Background(), src)

	var rerr *render.Error
	if !errors.As(err, &rerr) {
		t.Fatalf("expected *render.Error, got %v", err)
	}
	if rerr.Stage != render.StageEvaluate {
		t.Errorf("runaway template must fail evaluation, got %s", rerr.Stage)
	}
}
