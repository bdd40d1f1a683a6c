package editor

import (
	"go.uber.org/zap"
	"golang.org/x/net/html"

	"mailedit/common"
	"mailedit/dom"
	"mailedit/jsx"
	"mailedit/styles"
)

// ExtractElementData assembles the unified element record for a clicked DOM
// node: identity, text content, style origin, raw author styles, computed
// styles and non-style attributes.
//
// It fails with ErrMissingIdentifier when the node was never tagged and with
// StaleLocationError when the decoded source line no longer holds a matching
// element (source and render are out of sync).
func ExtractElementData(doc *dom.Document, node *html.Node, tree *jsx.Tree, defs styles.Definitions, log *zap.Logger) (*ElementData, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("editor")

	id := dom.Attr(node, jsx.AttrElementID)
	if id == "" {
		return nil, ErrMissingIdentifier
	}
	kind, line, err := jsx.ParseIdentifier(id)
	if err != nil {
		return nil, err
	}

	el := tree.ElementAtLine(line)
	if el == nil || el.Kind != kind {
		log.Warn("Element lookup is stale", zap.String("id", id), zap.Int("line", line))
		return nil, &StaleLocationError{Line: line, Kind: kind}
	}

	content, nested := el.Text()
	data := &ElementData{
		ID:                  id,
		Kind:                kind,
		Line:                line,
		Content:             content,
		HasNestedFormatting: nested,
		Origin:              common.StyleOriginNone,
		Attributes:          make(map[string]string),
	}

	detectStyleOrigin(tree, el, data, defs, log)

	for _, a := range el.Attributes() {
		switch a.Name {
		case "style", "className", jsx.AttrElementID:
			continue
		}
		if v, ok := a.StringValue(); ok {
			data.Attributes[a.Name] = v
		}
	}

	data.ComputedStyles = styles.ResolveComputed(doc, node)
	data.Styles = styles.Merge(data.SourceStyles, data.ComputedStyles)

	log.Debug("Extracted element data",
		zap.String("id", id),
		zap.String("origin", data.Origin.String()),
		zap.Bool("nested", nested),
		zap.Int("styles", len(data.Styles)))
	return data, nil
}

// detectStyleOrigin fills the style origin fields: a bare identifier
// reference means a shared named style object; an object literal means
// inline styles; a class attribute overrides the reported origin because
// class styling is what actually renders when both are present.
func detectStyleOrigin(tree *jsx.Tree, el *jsx.Element, data *ElementData, defs styles.Definitions, log *zap.Logger) {
	if style, ok := el.Attribute("style"); ok {
		if name, ok := style.IdentifierRef(); ok {
			data.Origin = common.StyleOriginStyleObject
			data.StyleName = name
			if props, ok := defs[name]; ok {
				data.SourceStyles = props.Clone()
			} else {
				log.Debug("Style reference has no extracted definition", zap.String("name", name))
			}
		} else if obj, ok := style.ObjectLiteral(); ok {
			data.Origin = common.StyleOriginInline
			data.SourceStyles = styles.Properties(tree.EvalObject(obj))
		}
	}
	if class, ok := el.Attribute("className"); ok {
		if v, ok := class.StringValue(); ok && v != "" {
			data.Origin = common.StyleOriginCssClass
			data.ClassName = v
		}
	}
}

// LocateElement builds the element record an update needs from the source
// alone, without a rendered document: identity, location and style origin.
func LocateElement(tree *jsx.Tree, id string, defs styles.Definitions, log *zap.Logger) (*ElementData, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("editor")

	kind, line, err := jsx.ParseIdentifier(id)
	if err != nil {
		return nil, err
	}
	el := tree.ElementAtLine(line)
	if el == nil || el.Kind != kind {
		return nil, &StaleLocationError{Line: line, Kind: kind}
	}

	data := &ElementData{ID: id, Kind: kind, Line: line, Origin: common.StyleOriginNone}
	detectStyleOrigin(tree, el, data, defs, log)
	return data, nil
}
