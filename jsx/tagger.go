package jsx

import (
	"fmt"

	"go.uber.org/zap"
)

// InjectIdentifiers adds a data-element-id attribute to every allow-listed
// element that does not already carry one. The operation is idempotent:
// elements already tagged are skipped, so a second pass produces identical
// output. Attributes are inserted inline, so line numbers do not shift within
// a single pass.
//
// Identifiers are stable across re-renders only while the element's opening
// tag stays on the same source line; edits that add or remove lines above an
// element invalidate its previous identifier.
func InjectIdentifiers(source string, log *zap.Logger) (string, error) {
	tree, err := Parse(source, log)
	if err != nil {
		return "", err
	}
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("tagger")

	var edits EditList
	tagged := 0
	for _, el := range tree.Elements() {
		if _, ok := el.Attribute(AttrElementID); ok {
			continue
		}
		id := FormatIdentifier(el.Name, el.Line)
		edits.Insert(el.AfterName(), fmt.Sprintf(" %s=%q", AttrElementID, id))
		tagged++
	}
	log.Debug("Injected element identifiers", zap.Int("tagged", tagged), zap.Int("selectable", len(tree.Elements())))

	return edits.Apply(source), nil
}
