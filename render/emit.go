package render

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"mailedit/common"
	"mailedit/styles"
)

// previewStyle hides preview text from the rendered body while keeping it
// at the top of the document for inbox preview lines.
const previewStyle = "display:none;overflow:hidden;line-height:1px;opacity:0;max-height:0;max-width:0"

// tablePresets are the attributes structural components carry on their host
// tables so email clients lay them out consistently.
var tablePresets = map[common.ElementKind]map[string]string{
	common.ElementKindContainer: {"align": "center", "width": "100%", "border": "0", "cellpadding": "0", "cellspacing": "0", "role": "presentation"},
	common.ElementKindSection:   {"align": "center", "width": "100%", "border": "0", "cellpadding": "0", "cellspacing": "0", "role": "presentation"},
	common.ElementKindRow:       {"align": "center", "width": "100%", "border": "0", "cellpadding": "0", "cellspacing": "0", "role": "presentation"},
}

// emitDocument serializes an evaluated element tree to an HTML document.
// The root must be an Html component.
func emitDocument(root *vnode) (string, error) {
	if root.Type != string(common.ElementKindHtml) {
		return "", stageErr(StageEmit, fmt.Errorf("template root must be Html, got %q", root.Type))
	}
	doc := etree.NewDocument()
	if err := emitNode(&doc.Element, root); err != nil {
		return "", err
	}
	body, err := doc.WriteToString()
	if err != nil {
		return "", stageErr(StageEmit, err)
	}
	return "<!DOCTYPE html>\n" + body, nil
}

func emitNode(parent *etree.Element, child any) error {
	switch c := child.(type) {
	case string:
		parent.CreateText(c)
		return nil
	case *vnode:
		return emitElement(parent, c)
	default:
		return stageErr(StageEmit, fmt.Errorf("unsupported node %T", child))
	}
}

func emitElement(parent *etree.Element, n *vnode) error {
	kind, selectable := common.KindForName(n.Type)

	// fragments and components outside the selectable set contribute their
	// children in place, as opaque markup
	if n.Type == fragmentMarker || (!selectable && !isHostTag(n.Type)) {
		return emitChildren(parent, n.Children)
	}
	if !selectable {
		el := parent.CreateElement(n.Type)
		emitProps(el, n.Props)
		return emitChildren(el, n.Children)
	}

	el := parent.CreateElement(hostTag(kind, n.Props))
	for name, value := range tablePresets[kind] {
		el.CreateAttr(name, value)
	}
	emitProps(el, n.Props)

	switch kind {
	case common.ElementKindPreview:
		mergeStyleAttr(el, previewStyle)
	case common.ElementKindButton:
		if el.SelectAttr("target") == nil {
			el.CreateAttr("target", "_blank")
		}
	case common.ElementKindImg:
		mergeStyleAttr(el, "display:block;outline:none;border:none;text-decoration:none")
	}

	if kind.Void() {
		if len(n.Children) > 0 {
			return stageErr(StageEmit, errors.New(n.Type+" cannot have children"))
		}
		return nil
	}

	// structural components wrap their children in table scaffolding
	switch kind {
	case common.ElementKindContainer, common.ElementKindSection:
		cell := el.CreateElement("tbody").CreateElement("tr").CreateElement("td")
		return emitChildren(cell, n.Children)
	case common.ElementKindRow:
		row := el.CreateElement("tbody").CreateElement("tr")
		return emitChildren(row, n.Children)
	}
	return emitChildren(el, n.Children)
}

func emitChildren(parent *etree.Element, children []any) error {
	for _, c := range children {
		if err := emitNode(parent, c); err != nil {
			return err
		}
	}
	return nil
}

// hostTag picks the emitted tag for a kind; Heading honors its `as` prop.
func hostTag(kind common.ElementKind, props map[string]any) string {
	if kind == common.ElementKindHeading {
		if as, ok := props["as"].(string); ok {
			switch as {
			case "h1", "h2", "h3", "h4", "h5", "h6":
				return as
			}
		}
	}
	return kind.HTMLTag()
}

func emitProps(el *etree.Element, props map[string]any) {
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		value := props[name]
		switch name {
		case "as", "children":
			continue
		case "style":
			if obj, ok := value.(map[string]any); ok {
				mergeStyleAttr(el, styleText(obj))
			}
			continue
		case "className":
			el.CreateAttr("class", attrText(value))
			continue
		}
		el.CreateAttr(attrName(name), attrText(value))
	}
}

// attrName lowercases camelCase prop names for HTML; data-* and aria-*
// attributes pass through unchanged.
func attrName(name string) string {
	if strings.HasPrefix(name, "data-") || strings.HasPrefix(name, "aria-") {
		return name
	}
	return strings.ToLower(name)
}

func attrText(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

// styleText serializes a style object to inline CSS, kebab-casing the
// property names. Keys are sorted so output is deterministic.
func styleText(obj map[string]any) string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, k := range keys {
		if obj[k] == nil {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte(';')
		}
		sb.WriteString(styles.CamelToKebab(k))
		sb.WriteByte(':')
		sb.WriteString(attrText(obj[k]))
	}
	return sb.String()
}

func mergeStyleAttr(el *etree.Element, css string) {
	if existing := el.SelectAttr("style"); existing != nil {
		if existing.Value != "" {
			existing.Value = existing.Value + ";" + css
		} else {
			existing.Value = css
		}
		return
	}
	el.CreateAttr("style", css)
}

// isHostTag reports whether a type name is a lowercase intrinsic tag rather
// than a component reference.
func isHostTag(name string) bool {
	return name != "" && name[0] >= 'a' && name[0] <= 'z'
}
