package jsx

import (
	"fmt"
	"strconv"
	"strings"

	"mailedit/common"
)

// AttrElementID is the attribute carrying the element identifier. It is the
// wire format between render output and the click-to-select handler and must
// match exactly on both the emit and read side.
const AttrElementID = "data-element-id"

const identifierPrefix = "element-"

// FormatIdentifier builds the identifier value for an element: tag name plus
// the 1-based source line of its opening tag. Two elements of the same tag
// cannot start on the same line, so the value is unique per render pass.
func FormatIdentifier(name string, line int) string {
	return fmt.Sprintf("%s%s-%d", identifierPrefix, name, line)
}

// ParseIdentifier decodes an identifier back into its tag name and line.
func ParseIdentifier(id string) (kind common.ElementKind, line int, err error) {
	rest, ok := strings.CutPrefix(id, identifierPrefix)
	if !ok {
		return "", 0, fmt.Errorf("jsx: malformed element identifier %q", id)
	}
	i := strings.LastIndexByte(rest, '-')
	if i <= 0 {
		return "", 0, fmt.Errorf("jsx: malformed element identifier %q", id)
	}
	line, err = strconv.Atoi(rest[i+1:])
	if err != nil || line < 1 {
		return "", 0, fmt.Errorf("jsx: malformed element identifier %q", id)
	}
	kind, ok = common.KindForName(rest[:i])
	if !ok {
		return "", 0, fmt.Errorf("jsx: identifier %q names unknown element %q", id, rest[:i])
	}
	return kind, line, nil
}
