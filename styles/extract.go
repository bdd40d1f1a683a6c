package styles

import (
	"strings"

	"go.uber.org/zap"

	"mailedit/jsx"
)

// cssishKeys is the fixed set of recognized style-property names. An object
// literal containing at least one of these counts as a style definition even
// when its variable name does not say so.
var cssishKeys = map[string]bool{
	"color":           true,
	"background":      true,
	"backgroundColor": true,
	"backgroundImage": true,
	"fontSize":        true,
	"fontFamily":      true,
	"fontWeight":      true,
	"fontStyle":       true,
	"lineHeight":      true,
	"letterSpacing":   true,
	"textAlign":       true,
	"textDecoration":  true,
	"textTransform":   true,
	"padding":         true,
	"paddingTop":      true,
	"paddingRight":    true,
	"paddingBottom":   true,
	"paddingLeft":     true,
	"margin":          true,
	"marginTop":       true,
	"marginRight":     true,
	"marginBottom":    true,
	"marginLeft":      true,
	"width":           true,
	"height":          true,
	"maxWidth":        true,
	"minWidth":        true,
	"border":          true,
	"borderColor":     true,
	"borderStyle":     true,
	"borderWidth":     true,
	"borderRadius":    true,
	"display":         true,
	"flexDirection":   true,
	"justifyContent":  true,
	"alignItems":      true,
	"gap":             true,
	"verticalAlign":   true,
	"boxShadow":       true,
	"objectFit":       true,
}

// ExtractDefinitions scans top-level const declarations for style maps. A
// declaration qualifies when its name contains "style" (case-insensitive) or
// its object literal carries at least one recognized style-property key. Only
// literal values survive evaluation; expression values are dropped silently.
func ExtractDefinitions(tree *jsx.Tree, log *zap.Logger) Definitions {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("styledefs")

	defs := make(Definitions)
	for _, co := range tree.TopLevelConstObjects() {
		if !isStyleDefinition(tree, co) {
			continue
		}
		props := tree.EvalObject(co.Object)
		defs[co.Name] = Properties(props)
		log.Debug("Extracted style definition", zap.String("name", co.Name), zap.Int("properties", len(props)))
	}
	return defs
}

func isStyleDefinition(tree *jsx.Tree, co jsx.ConstObject) bool {
	if strings.Contains(strings.ToLower(co.Name), "style") {
		return true
	}
	for _, p := range tree.ObjectPairs(co.Object) {
		if cssishKeys[p.Key] {
			return true
		}
	}
	return false
}
