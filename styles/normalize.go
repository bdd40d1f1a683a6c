package styles

import (
	"fmt"
	"strconv"
	"strings"
)

// Per-property normalizers for resolved computed values. Browsers hand back
// arbitrary units and verbose multi-token strings; everything here lands on
// the discrete token scales the editor UI works with. All numeric snapping is
// nearest-by-absolute-difference with first-occurrence-wins ties (Scale.Snap).

// ParseLength parses a CSS length into pixels. Supported units: px, rem, em,
// pt and unitless numbers. rem and em resolve against the 16px baseline.
func ParseLength(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	unit := ""
	num := s
	for _, u := range []string{"px", "rem", "em", "pt"} {
		if strings.HasSuffix(s, u) {
			unit = u
			num = strings.TrimSuffix(s, u)
			break
		}
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(num), 64)
	if err != nil {
		return 0, false
	}
	switch unit {
	case "rem", "em":
		return v * 16, true
	case "pt":
		return v * 4 / 3, true
	default:
		return v, true
	}
}

var namedColors = map[string]string{
	"black":   "#000000",
	"white":   "#ffffff",
	"red":     "#ff0000",
	"green":   "#008000",
	"blue":    "#0000ff",
	"yellow":  "#ffff00",
	"gray":    "#808080",
	"grey":    "#808080",
	"orange":  "#ffa500",
	"purple":  "#800080",
	"silver":  "#c0c0c0",
	"maroon":  "#800000",
	"navy":    "#000080",
	"teal":    "#008080",
	"olive":   "#808000",
	"fuchsia": "#ff00ff",
	"aqua":    "#00ffff",
	"lime":    "#00ff00",
}

// NormalizeColor resolves a computed color to lowercase hex. Fully
// transparent colors collapse to the literal "transparent"; values that
// cannot be parsed pass through unchanged.
func NormalizeColor(s string) string {
	v := strings.ToLower(strings.TrimSpace(s))
	switch {
	case v == "transparent":
		return "transparent"
	case strings.HasPrefix(v, "#"):
		return normalizeHex(v)
	case strings.HasPrefix(v, "rgb(") || strings.HasPrefix(v, "rgba("):
		return rgbToHex(v)
	}
	if hex, ok := namedColors[v]; ok {
		return hex
	}
	return s
}

func normalizeHex(v string) string {
	hex := v[1:]
	switch len(hex) {
	case 3:
		return "#" + strings.Repeat(string(hex[0]), 2) + strings.Repeat(string(hex[1]), 2) + strings.Repeat(string(hex[2]), 2)
	case 8:
		if hex[6:8] == "00" {
			return "transparent"
		}
		return "#" + hex[:6]
	case 6:
		return v
	default:
		return v
	}
}

func rgbToHex(v string) string {
	open := strings.IndexByte(v, '(')
	end := strings.LastIndexByte(v, ')')
	if open < 0 || end <= open {
		return v
	}
	parts := strings.FieldsFunc(v[open+1:end], func(r rune) bool {
		return r == ',' || r == ' ' || r == '/'
	})
	if len(parts) < 3 {
		return v
	}
	if len(parts) >= 4 {
		if a, err := strconv.ParseFloat(parts[3], 64); err == nil && a == 0 {
			return "transparent"
		}
	}
	var ch [3]int
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(strings.TrimSuffix(parts[i], "%"), 64)
		if err != nil {
			return v
		}
		if strings.HasSuffix(parts[i], "%") {
			f = f * 255 / 100
		}
		ch[i] = clampByte(f)
	}
	return fmt.Sprintf("#%02x%02x%02x", ch[0], ch[1], ch[2])
}

func clampByte(f float64) int {
	if f < 0 {
		return 0
	}
	if f > 255 {
		return 255
	}
	return int(f + 0.5)
}

// NormalizeFontSize snaps an arbitrary resolved font size to the font-size
// scale, in pixels.
func NormalizeFontSize(s string) string {
	px, ok := ParseLength(s)
	if !ok {
		return s
	}
	return formatPx(FontSizeScale.Snap(px))
}

var namedWeights = map[string]float64{
	"normal":  400,
	"bold":    700,
	"lighter": 300,
	"bolder":  700,
}

// NormalizeFontWeight maps named weights to their numbers directly; numeric
// values snap to the weight scale.
func NormalizeFontWeight(s string) string {
	v := strings.ToLower(strings.TrimSpace(s))
	if w, ok := namedWeights[v]; ok {
		return formatNumber(w)
	}
	w, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return s
	}
	return formatNumber(FontWeightScale.Snap(w))
}

// NormalizeLineHeight snaps to the unitless line-height scale. "normal" maps
// to 1.5; pixel values convert to a ratio against the 16px baseline first.
func NormalizeLineHeight(s string) string {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "normal" {
		return "1.5"
	}
	ratio, err := strconv.ParseFloat(v, 64)
	if err != nil {
		px, ok := ParseLength(v)
		if !ok {
			return s
		}
		ratio = px / 16
	}
	return formatNumber(LineHeightScale.Snap(ratio))
}

// NormalizeLetterSpacing normalizes to em and snaps to the letter-spacing
// scale. Zero and "normal" both land on "0em".
func NormalizeLetterSpacing(s string) string {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "normal" || v == "0" {
		return "0em"
	}
	em := 0.0
	switch {
	case strings.HasSuffix(v, "em") && !strings.HasSuffix(v, "rem"):
		f, err := strconv.ParseFloat(strings.TrimSuffix(v, "em"), 64)
		if err != nil {
			return s
		}
		em = f
	default:
		px, ok := ParseLength(v)
		if !ok {
			return s
		}
		em = px / 16
	}
	return formatNumber(LetterSpacingScale.Snap(em)) + "em"
}

// decorationPriority is the reduction order for the browser's verbose
// text-decoration value ("underline solid rgb(...)" and similar).
var decorationPriority = []string{"underline", "line-through", "overline", "none"}

// NormalizeTextDecoration reduces a multi-token decoration value to a single
// keyword by substring match in priority order.
func NormalizeTextDecoration(s string) string {
	v := strings.ToLower(s)
	for _, d := range decorationPriority {
		if strings.Contains(v, d) {
			return d
		}
	}
	return "none"
}

// NormalizeSpacing snaps a single padding/margin side to the spacing scale.
func NormalizeSpacing(s string) string {
	px, ok := ParseLength(s)
	if !ok {
		return s
	}
	return formatPx(SpacingScale.Snap(px))
}

// CollapseSides re-collapses snapped top/right/bottom/left values into the
// shortest CSS shorthand using the standard equality-folding rule: one token
// when all sides match, two when vertical and horizontal pairs match, four
// otherwise.
func CollapseSides(top, right, bottom, left string) string {
	if top == right && right == bottom && bottom == left {
		return top
	}
	if top == bottom && right == left {
		return top + " " + right
	}
	return top + " " + right + " " + bottom + " " + left
}

// NormalizeDimension handles width/height style values: percentages and
// "auto" pass through unchanged ("none" becomes "auto"); absolute lengths
// convert to rounded pixels.
func NormalizeDimension(s string) string {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "auto" || v == "none" {
		return "auto"
	}
	if strings.HasSuffix(v, "%") {
		return v
	}
	px, ok := ParseLength(v)
	if !ok {
		return s
	}
	return fmt.Sprintf("%dpx", int(px+0.5))
}

// NormalizeBorderRadius snaps to the border-radius scale.
func NormalizeBorderRadius(s string) string {
	px, ok := ParseLength(s)
	if !ok {
		return s
	}
	return formatPx(BorderRadiusScale.Snap(px))
}

func formatPx(v float64) string {
	return formatNumber(v) + "px"
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
