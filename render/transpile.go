package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
)

// Transpile lowers the preprocessed TSX script to plain JavaScript the
// embedded engine can run: type annotations are erased and JSX is compiled
// to React.createElement calls, which the runtime provides.
func Transpile(script string) (string, error) {
	result := api.Transform(script, api.TransformOptions{
		Loader:      api.LoaderTSX,
		JSX:         api.JSXTransform,
		JSXFactory:  "React.createElement",
		JSXFragment: "React.Fragment",
		Target:      api.ES2017,
		Charset:     api.CharsetUTF8,
	})
	if len(result.Errors) > 0 {
		msgs := make([]string, 0, len(result.Errors))
		for _, m := range result.Errors {
			if m.Location != nil {
				msgs = append(msgs, fmt.Sprintf("%d:%d: %s", m.Location.Line, m.Location.Column, m.Text))
			} else {
				msgs = append(msgs, m.Text)
			}
		}
		return "", stageErr(StageTranspile, errors.New(strings.Join(msgs, "; ")))
	}
	return string(result.Code), nil
}
