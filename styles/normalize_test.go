package styles_test

import (
	"testing"

	"mailedit/styles"
)

func TestSnapDeterministicTieBreak(t *testing.T) {
	// |17-16| == |17-18| is a tie; 16 is listed first in the scale and wins.
	if got := styles.NormalizeFontSize("17px"); got != "16px" {
		t.Fatalf("expected 17px to snap to 16px, got %s", got)
	}
	// repeat to make determinism explicit
	for i := 0; i < 10; i++ {
		if got := styles.NormalizeFontSize("17px"); got != "16px" {
			t.Fatalf("snapping must be deterministic, got %s on run %d", got, i)
		}
	}
}

func TestParseLength(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"16px", 16, true},
		{"1rem", 16, true},
		{"1.5em", 24, true},
		{"12pt", 16, true},
		{"20", 20, true},
		{"auto", 0, false},
		{"", 0, false},
	}
	for _, tc := range tests {
		got, ok := styles.ParseLength(tc.in)
		if ok != tc.ok || (ok && got != tc.want) {
			t.Errorf("ParseLength(%q) = %v, %v; want %v, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestNormalizeColor(t *testing.T) {
	tests := []struct{ in, want string }{
		{"#FFF", "#ffffff"},
		{"#ff0000", "#ff0000"},
		{"rgb(0, 0, 0)", "#000000"},
		{"rgb(255, 165, 0)", "#ffa500"},
		{"rgba(10, 20, 30, 0)", "transparent"},
		{"rgba(10, 20, 30, 0.5)", "#0a141e"},
		{"transparent", "transparent"},
		{"white", "#ffffff"},
	}
	for _, tc := range tests {
		if got := styles.NormalizeColor(tc.in); got != tc.want {
			t.Errorf("NormalizeColor(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeFontWeight(t *testing.T) {
	tests := []struct{ in, want string }{
		{"normal", "400"},
		{"bold", "700"},
		{"lighter", "300"}, // named weights map directly, no snapping
		{"bolder", "700"},
		{"550", "500"},
		{"650", "600"}, // tie between 600 and 700, first occurrence wins
	}
	for _, tc := range tests {
		if got := styles.NormalizeFontWeight(tc.in); got != tc.want {
			t.Errorf("NormalizeFontWeight(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeLineHeight(t *testing.T) {
	tests := []struct{ in, want string }{
		{"normal", "1.5"},
		{"1.6", "1.5"},
		{"2.4", "2"},
		{"24px", "1.5"}, // 24/16
	}
	for _, tc := range tests {
		if got := styles.NormalizeLineHeight(tc.in); got != tc.want {
			t.Errorf("NormalizeLineHeight(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeLetterSpacing(t *testing.T) {
	tests := []struct{ in, want string }{
		{"normal", "0em"},
		{"0", "0em"},
		{"0.03em", "0.025em"},
		{"0.8px", "0.05em"},
		{"-1px", "-0.05em"},
	}
	for _, tc := range tests {
		if got := styles.NormalizeLetterSpacing(tc.in); got != tc.want {
			t.Errorf("NormalizeLetterSpacing(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeTextDecoration(t *testing.T) {
	tests := []struct{ in, want string }{
		{"none solid rgb(0, 0, 0)", "none"},
		{"underline solid rgb(7, 125, 247)", "underline"},
		{"underline line-through", "underline"}, // priority order
		{"line-through", "line-through"},
		{"wavy overline", "overline"},
	}
	for _, tc := range tests {
		if got := styles.NormalizeTextDecoration(tc.in); got != tc.want {
			t.Errorf("NormalizeTextDecoration(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCollapseSides(t *testing.T) {
	tests := []struct {
		sides [4]string
		want  string
	}{
		{[4]string{"16px", "16px", "16px", "16px"}, "16px"},
		{[4]string{"8px", "16px", "8px", "16px"}, "8px 16px"},
		{[4]string{"8px", "16px", "24px", "16px"}, "8px 16px 24px 16px"},
	}
	for _, tc := range tests {
		got := styles.CollapseSides(tc.sides[0], tc.sides[1], tc.sides[2], tc.sides[3])
		if got != tc.want {
			t.Errorf("CollapseSides(%v) = %q, want %q", tc.sides, got, tc.want)
		}
	}
}

func TestNormalizeDimension(t *testing.T) {
	tests := []struct{ in, want string }{
		{"50%", "50%"},
		{"auto", "auto"},
		{"none", "auto"},
		{"37.5em", "600px"},
		{"120.4px", "120px"},
	}
	for _, tc := range tests {
		if got := styles.NormalizeDimension(tc.in); got != tc.want {
			t.Errorf("NormalizeDimension(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestMergeComputedBaseSourceWins(t *testing.T) {
	source := styles.Properties{"color": "#ff0000"}
	computed := styles.Properties{"color": "#000000", "fontSize": "16px"}

	merged := styles.Merge(source, computed)
	if merged["color"] != "#ff0000" {
		t.Errorf("source style must win, got %q", merged["color"])
	}
	if merged["fontSize"] != "16px" {
		t.Errorf("computed base must be preserved, got %q", merged["fontSize"])
	}
}

func TestKeyConversion(t *testing.T) {
	if got := styles.KebabToCamel("background-color"); got != "backgroundColor" {
		t.Errorf("KebabToCamel = %q", got)
	}
	if got := styles.CamelToKebab("backgroundColor"); got != "background-color" {
		t.Errorf("CamelToKebab = %q", got)
	}
	if got := styles.KebabToCamel("color"); got != "color" {
		t.Errorf("KebabToCamel plain = %q", got)
	}
}
