package editor

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"go.uber.org/zap"

	"mailedit/jsx"
	"mailedit/styles"
)

// Result is the outcome of one apply pass. When Stale is true the source was
// returned unchanged because the target line no longer holds the expected
// element; that is a recoverable condition, not an error.
type Result struct {
	Source      string
	Definitions styles.Definitions
	Stale       bool
}

// ApplyUpdates applies an update delta to the element identified by
// data.Line and re-serializes the source. Style writes land in the shared
// named style object when the element references one (affecting every
// element using it), otherwise in the element's own inline style attribute
// with previously set properties preserved. The style-definitions map in the
// result is rebuilt from the updated source, never patched incrementally.
func ApplyUpdates(source string, data *ElementData, upd Updates, log *zap.Logger) (Result, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("updater")

	tree, err := jsx.Parse(source, log)
	if err != nil {
		return Result{}, err
	}

	el := tree.ElementAtLine(data.Line)
	if el == nil || el.Kind != data.Kind {
		log.Warn("Stale update location, returning source unchanged",
			zap.Int("line", data.Line), zap.String("kind", string(data.Kind)))
		return Result{Source: source, Definitions: styles.ExtractDefinitions(tree, log), Stale: true}, nil
	}

	var edits jsx.EditList

	if upd.Content != nil {
		applyContent(el, *upd.Content, &edits, log)
	}
	if len(upd.Attributes) > 0 {
		applyAttributes(el, upd.Attributes, &edits)
	}
	if len(upd.Styles) > 0 {
		applyStyles(tree, el, data, upd.Styles, &edits, log)
	}

	updated := edits.Apply(source)

	// Full re-scan of definitions keeps them from drifting out of sync with
	// the source; cheap at single-template size.
	newTree, err := jsx.Parse(updated, log)
	if err != nil {
		return Result{}, fmt.Errorf("editor: update produced unparsable source: %w", err)
	}
	return Result{Source: updated, Definitions: styles.ExtractDefinitions(newTree, log)}, nil
}

// applyContent replaces all children of the element with a single text node.
// Nested formatting is destroyed if this path is taken; callers are expected
// to disable content editing when HasNestedFormatting is set.
func applyContent(el *jsx.Element, content string, edits *jsx.EditList, log *zap.Logger) {
	start, end, ok := el.ContentRange()
	if !ok {
		log.Debug("Content update on element without children section", zap.String("element", el.Name))
		return
	}
	edits.Replace(start, end, jsxText(content))
}

// applyAttributes upserts attributes by name: replace the value when the
// attribute exists, append after the tag name when it does not.
func applyAttributes(el *jsx.Element, attrs map[string]any, edits *jsx.EditList) {
	for _, name := range sortedKeys(attrs) {
		lit := attributeLiteral(attrs[name])
		if existing, ok := el.Attribute(name); ok {
			if start, end, ok := existing.ValueRange(); ok {
				edits.Replace(start, end, lit)
			} else {
				// bare boolean attribute, no value node: rewrite it whole
				start, end := existing.Range()
				edits.Replace(start, end, name+"="+lit)
			}
			continue
		}
		edits.Insert(el.AfterName(), " "+name+"="+lit)
	}
}

// applyStyles routes a style delta to its destination: the shared named
// style object when the element references one, the inline style attribute
// otherwise. Both paths are partial merges; unrelated properties survive.
func applyStyles(tree *jsx.Tree, el *jsx.Element, data *ElementData, upd map[string]string, edits *jsx.EditList, log *zap.Logger) {
	if data.StyleName != "" {
		if obj := tree.StyleObjectNode(data.StyleName); obj != nil {
			mergeIntoObject(tree, obj, upd, edits)
			return
		}
		log.Warn("Named style object disappeared, writing styles inline", zap.String("name", data.StyleName))
	}

	if style, ok := el.Attribute("style"); ok {
		if obj, ok := style.ObjectLiteral(); ok {
			mergeIntoObject(tree, obj, upd, edits)
			return
		}
		// style attribute with an unexpected value shape: replace wholesale
		if start, end, ok := style.ValueRange(); ok {
			edits.Replace(start, end, "{"+styleObjectLiteral(upd)+"}")
			return
		}
	}
	edits.Insert(el.AfterName(), " style={"+styleObjectLiteral(upd)+"}")
}

// mergeIntoObject merges key/value pairs into an object literal: existing
// pairs get their value node replaced, new pairs are inserted right after
// the opening brace.
func mergeIntoObject(tree *jsx.Tree, obj *sitter.Node, upd map[string]string, edits *jsx.EditList) {
	existing := make(map[string]jsx.Pair)
	for _, p := range tree.ObjectPairs(obj) {
		existing[p.Key] = p
	}

	var inserts []string
	for _, key := range sortedKeys(upd) {
		lit := strconv.Quote(upd[key])
		if p, ok := existing[key]; ok {
			edits.Replace(p.Value.StartByte(), p.Value.EndByte(), lit)
			continue
		}
		inserts = append(inserts, key+": "+lit)
	}
	if len(inserts) > 0 {
		edits.Insert(obj.StartByte()+1, " "+strings.Join(inserts, ", ")+",")
	}
}

// styleObjectLiteral renders a style map as a fresh object literal.
func styleObjectLiteral(m map[string]string) string {
	parts := make([]string, 0, len(m))
	for _, k := range sortedKeys(m) {
		parts = append(parts, k+": "+strconv.Quote(m[k]))
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}

// attributeLiteral renders an attribute value as the correct literal node:
// strings become quoted JSX strings, numbers and booleans become expression
// containers.
func attributeLiteral(v any) string {
	switch t := v.(type) {
	case string:
		return strconv.Quote(t)
	case bool:
		return "{" + strconv.FormatBool(t) + "}"
	case int:
		return "{" + strconv.Itoa(t) + "}"
	case int64:
		return "{" + strconv.FormatInt(t, 10) + "}"
	case float64:
		return "{" + strconv.FormatFloat(t, 'f', -1, 64) + "}"
	default:
		return strconv.Quote(fmt.Sprintf("%v", t))
	}
}

// jsxText renders plain text as a JSX child, escaping through an expression
// container when the text carries JSX-significant characters.
func jsxText(s string) string {
	if strings.ContainsAny(s, "{}<>") {
		return "{" + strconv.Quote(s) + "}"
	}
	return s
}

func sortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
