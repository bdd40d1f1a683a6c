// Package render turns an email template module into the HTML document the
// editor displays and selects against. The pipeline has four stages: the
// module is rewritten to a plain script, lowered to JavaScript, evaluated in
// an embedded engine where components build an element tree, and the tree
// is serialized to HTML. Identifier attributes injected into the source
// survive all four stages, which is what lets a click on the rendered
// document be traced back to a source location.
package render

import (
	"context"
	"time"

	"go.uber.org/zap"

	"mailedit/jsx"
)

// DefaultTimeout bounds script evaluation when the caller's context has no
// deadline of its own.
const DefaultTimeout = 5 * time.Second

type Renderer struct {
	timeout time.Duration
	log     *zap.Logger
}

func NewRenderer(timeout time.Duration, log *zap.Logger) *Renderer {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Renderer{timeout: timeout, log: log.Named("render")}
}

// Render produces the HTML document for a template source. The source
// should already carry identifier attributes when the result is meant for
// element selection; rendering untagged source is fine and simply yields a
// document nothing can be selected in.
//
// All failures are reported as *Error with the stage that produced them.
func (r *Renderer) Render(ctx context.Context, source string) (string, error) {
	start := time.Now()

	tree, err := jsx.Parse(source, r.log)
	if err != nil {
		return "", stageErr(StageParse, err)
	}
	script, imported, err := Preprocess(tree)
	if err != nil {
		return "", err
	}
	js, err := Transpile(script)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	root, err := newRuntime(imported, r.log).evaluate(ctx, js)
	if err != nil {
		return "", err
	}
	doc, err := emitDocument(root)
	if err != nil {
		return "", err
	}

	r.log.Debug("Rendered template",
		zap.Int("source_bytes", len(source)),
		zap.Int("html_bytes", len(doc)),
		zap.Duration("elapsed", time.Since(start)))
	return doc, nil
}
