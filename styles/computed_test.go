package styles_test

import (
	"testing"

	"mailedit/dom"
	"mailedit/styles"
)

func parseRendered(t *testing.T, html string) *dom.Document {
	t.Helper()
	doc, err := dom.ParseDocument(html, nil)
	if err != nil {
		t.Fatalf("failed to parse rendered html: %v", err)
	}
	return doc
}

func TestResolveComputedInlineWins(t *testing.T) {
	doc := parseRendered(t, `<html><head><style>.msg { color: #111111; }</style></head>
<body><p data-element-id="element-Text-10" class="msg" style="color: #ff0000; font-size: 17px">hi</p></body></html>`)

	n := doc.FindByElementID("element-Text-10")
	if n == nil {
		t.Fatal("node not found")
	}
	got := styles.ResolveComputed(doc, n)

	if got["color"] != "#ff0000" {
		t.Errorf("inline style must win over class rule, got %q", got["color"])
	}
	if got["fontSize"] != "16px" {
		t.Errorf("computed font size must snap to the scale, got %q", got["fontSize"])
	}
}

func TestResolveComputedClassAndInheritance(t *testing.T) {
	doc := parseRendered(t, `<html><head><style>.wrap { color: #222222; }</style></head>
<body><div class="wrap"><p data-element-id="element-Text-12">hi</p></div></body></html>`)

	n := doc.FindByElementID("element-Text-12")
	got := styles.ResolveComputed(doc, n)

	if got["color"] != "#222222" {
		t.Errorf("color must inherit from the classed ancestor, got %q", got["color"])
	}
	// paragraph default margin comes from the tag table
	if got["margin"] != "16px 0px" {
		t.Errorf("expected default paragraph margin, got %q", got["margin"])
	}
}

func TestResolveComputedBaseline(t *testing.T) {
	doc := parseRendered(t, `<html><body><p data-element-id="element-Text-5">hi</p></body></html>`)

	got := styles.ResolveComputed(doc, doc.FindByElementID("element-Text-5"))

	if got["color"] != "#000000" {
		t.Errorf("expected baseline color, got %q", got["color"])
	}
	if got["fontSize"] != "16px" {
		t.Errorf("expected baseline font size, got %q", got["fontSize"])
	}
	if got["lineHeight"] != "1.5" {
		t.Errorf("expected normal line height mapped to 1.5, got %q", got["lineHeight"])
	}
	// defaulted sentinels stay omitted
	if _, ok := got["fontStyle"]; ok {
		t.Error("defaulted font-style must be omitted")
	}
	if _, ok := got["width"]; ok {
		t.Error("defaulted width must be omitted")
	}
}

func TestResolveComputedAuthoredSentinelsOmitted(t *testing.T) {
	doc := parseRendered(t, `<html><body>
<p data-element-id="element-Text-4" style="width: auto; font-style: normal; text-decoration: none; color: #333333">hi</p>
</body></html>`)

	got := styles.ResolveComputed(doc, doc.FindByElementID("element-Text-4"))

	if _, ok := got["width"]; ok {
		t.Error("authored width:auto must be omitted like the defaulted sentinel")
	}
	if _, ok := got["fontStyle"]; ok {
		t.Error("authored font-style:normal must be omitted")
	}
	if _, ok := got["textDecoration"]; ok {
		t.Error("authored text-decoration:none must be omitted")
	}
	if got["color"] != "#333333" {
		t.Errorf("non-sentinel authored values must survive, got %q", got["color"])
	}
}

func TestResolveComputedSpacingCollapse(t *testing.T) {
	doc := parseRendered(t, `<html><body>
<a data-element-id="element-Button-7" style="padding: 15px 31px; margin-top: 9px">go</a>
</body></html>`)

	got := styles.ResolveComputed(doc, doc.FindByElementID("element-Button-7"))

	// 15 snaps to 16, 31 snaps to 32, vertical/horizontal pairs collapse
	if got["padding"] != "16px 32px" {
		t.Errorf("unexpected padding %q", got["padding"])
	}
	// 9 snaps to 8; other margin sides default to 0
	if got["margin"] != "8px 0px 0px 0px" {
		t.Errorf("unexpected margin %q", got["margin"])
	}
}

func TestResolveComputedLinkDefaults(t *testing.T) {
	doc := parseRendered(t, `<html><body><a data-element-id="element-Link-3">go</a></body></html>`)

	got := styles.ResolveComputed(doc, doc.FindByElementID("element-Link-3"))

	if got["color"] != "#0000ee" {
		t.Errorf("expected default link color, got %q", got["color"])
	}
	if got["textDecoration"] != "underline" {
		t.Errorf("expected default link decoration, got %q", got["textDecoration"])
	}
}
