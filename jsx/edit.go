package jsx

import (
	"sort"
)

// Edit replaces the byte range [Start, End) of the source with Text.
// Start == End inserts without removing anything.
type Edit struct {
	Start, End uint32
	Text       string
}

// EditList collects splice edits computed against one parse of the source.
// Edits must not overlap; they may be added in any order.
type EditList []Edit

// Insert appends an insertion edit at the given offset.
func (l *EditList) Insert(at uint32, text string) {
	*l = append(*l, Edit{Start: at, End: at, Text: text})
}

// Replace appends a replacement edit for the given range.
func (l *EditList) Replace(start, end uint32, text string) {
	*l = append(*l, Edit{Start: start, End: end, Text: text})
}

// Apply splices all edits into source and returns the new text. Edits are
// applied back-to-front so earlier offsets stay valid; the input is never
// modified.
func (l EditList) Apply(source string) string {
	if len(l) == 0 {
		return source
	}
	edits := make([]Edit, len(l))
	copy(edits, l)
	// Stable ascending sort, then splice back-to-front. For insertions at the
	// same offset this keeps them in the order they were added.
	sort.SliceStable(edits, func(i, j int) bool {
		if edits[i].Start != edits[j].Start {
			return edits[i].Start < edits[j].Start
		}
		return edits[i].End < edits[j].End
	})

	out := []byte(source)
	for i := len(edits) - 1; i >= 0; i-- {
		e := edits[i]
		if int(e.End) > len(out) || e.Start > e.End {
			continue
		}
		tail := append([]byte(e.Text), out[e.End:]...)
		out = append(out[:e.Start], tail...)
	}
	return string(out)
}
