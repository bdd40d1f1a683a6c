package render

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/dop251/goja"
	"go.uber.org/zap"

	"mailedit/common"
)

// fragmentMarker is the type value createElement receives for <>...</>.
const fragmentMarker = "__fragment"

// vnode is the in-memory element tree a template evaluates to. The type is
// either a component name from the selectable set, an imported component
// name outside it, or a lowercase host tag.
type vnode struct {
	Type     string
	Props    map[string]any
	Children []any // *vnode or string
}

// runtime hosts one script evaluation. A fresh runtime is built per render,
// so template code can never observe state from a previous run.
type runtime struct {
	vm  *goja.Runtime
	log *zap.Logger
}

// newRuntime builds a JavaScript engine with React.createElement and every
// component binding installed. Components are plain string markers; the
// element tree is assembled on the Go side by the createElement callback.
func newRuntime(imported []string, log *zap.Logger) *runtime {
	r := &runtime{vm: goja.New(), log: log}

	react := r.vm.NewObject()
	_ = react.Set("createElement", r.createElement)
	_ = react.Set("Fragment", fragmentMarker)
	_ = r.vm.Set("React", react)

	for _, k := range common.ElementKindValues() {
		_ = r.vm.Set(string(k), string(k))
	}
	// imported names outside the selectable set still need a binding, or
	// the script would fail with a reference error
	for _, name := range imported {
		if r.vm.Get(name) == nil {
			_ = r.vm.Set(name, name)
		}
	}
	return r
}

func (r *runtime) createElement(call goja.FunctionCall) goja.Value {
	n := &vnode{Props: map[string]any{}}
	switch t := call.Argument(0).Export().(type) {
	case string:
		n.Type = t
	case nil:
		n.Type = fragmentMarker
	default:
		panic(r.vm.ToValue(fmt.Sprintf("unsupported element type %T", t)))
	}
	if props, ok := call.Argument(1).Export().(map[string]any); ok {
		n.Props = props
	}
	for _, arg := range call.Arguments[2:] {
		appendChild(n, arg.Export())
	}
	return r.vm.ToValue(n)
}

// appendChild flattens arrays and drops the child values React ignores
// (null, undefined and booleans, typically from `cond && <El/>`).
func appendChild(n *vnode, child any) {
	switch c := child.(type) {
	case nil, bool:
	case []any:
		for _, item := range c {
			appendChild(n, item)
		}
	case *vnode:
		n.Children = append(n.Children, c)
	case string:
		n.Children = append(n.Children, c)
	case int64:
		n.Children = append(n.Children, strconv.FormatInt(c, 10))
	case float64:
		n.Children = append(n.Children, strconv.FormatFloat(c, 'g', -1, 64))
	default:
		n.Children = append(n.Children, fmt.Sprint(c))
	}
}

// evaluate runs the transpiled script and calls its default export. The
// context cancels long-running template code through the engine's
// interrupt mechanism.
func (r *runtime) evaluate(ctx context.Context, js string) (*vnode, error) {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			r.vm.Interrupt(ctx.Err())
		case <-done:
		}
	}()

	if _, err := r.vm.RunString(js); err != nil {
		return nil, stageErr(StageEvaluate, err)
	}
	entry, ok := goja.AssertFunction(r.vm.Get(entryBinding))
	if !ok {
		return nil, stageErr(StageEvaluate, errors.New("default export is not a function"))
	}
	result, err := entry(goja.Undefined())
	if err != nil {
		return nil, stageErr(StageEvaluate, err)
	}
	root, ok := result.Export().(*vnode)
	if !ok {
		return nil, stageErr(StageEvaluate, errors.New("default export did not return an element"))
	}
	return root, nil
}
