package styles_test

import (
	"testing"

	"mailedit/jsx"
	"mailedit/styles"
)

func TestExtractDefinitions(t *testing.T) {
	src := `
const buttonStyle = { backgroundColor: "#000000", padding: "16px" };
const palette = { color: "#333333" };
const config = { timeout: 30, retries: 3 };
const headerStyles = { fontSize: dynamicSize(), fontWeight: "bold" };
`
	tree, err := jsx.Parse(src, nil)
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}

	defs := styles.ExtractDefinitions(tree, nil)

	// captured by name suffix
	if got := defs["buttonStyle"]; got["backgroundColor"] != "#000000" || got["padding"] != "16px" {
		t.Errorf("unexpected buttonStyle: %v", got)
	}
	// captured by recognized property key despite the name
	if got, ok := defs["palette"]; !ok || got["color"] != "#333333" {
		t.Errorf("expected palette captured via css-ish key, got %v", got)
	}
	// plain config object must not be captured
	if _, ok := defs["config"]; ok {
		t.Error("config object must not be treated as a style definition")
	}
	// expression values are dropped, literals survive
	if got := defs["headerStyles"]; got["fontWeight"] != "bold" {
		t.Errorf("unexpected headerStyles: %v", got)
	}
	if _, ok := defs["headerStyles"]["fontSize"]; ok {
		t.Error("computed fontSize must be silently dropped")
	}
}
