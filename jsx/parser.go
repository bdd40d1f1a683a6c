// Package jsx parses React-Email JSX/TSX source into a position-aware tree
// and applies incremental edits back to the source text.
//
// The tree is transient: it is valid only for the source string it was parsed
// from and is re-created after every edit. All mutations are expressed as
// byte-range splices against the immutable source, so the unmodified
// round-trip is the identity and node positions stay the single join key
// between source locations and rendered DOM nodes.
package jsx

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"go.uber.org/zap"
)

// SyntaxError reports source that cannot be parsed as JSX/TSX. It is always
// fatal to the current operation and is never auto-recovered.
type SyntaxError struct {
	Line    int // 1-based
	Column  int // 0-based
	Snippet string
}

func (e *SyntaxError) Error() string {
	if e.Snippet != "" {
		return fmt.Sprintf("jsx: syntax error at line %d, column %d near %q", e.Line, e.Column, e.Snippet)
	}
	return fmt.Sprintf("jsx: syntax error at line %d, column %d", e.Line, e.Column)
}

// Tree is a parsed JSX/TSX document. It keeps the source bytes it was parsed
// from; node byte offsets and line numbers index into that exact slice.
type Tree struct {
	src  []byte
	tree *sitter.Tree
	log  *zap.Logger
}

// Parse parses source into a Tree. A nil logger disables logging.
func Parse(source string, log *zap.Logger) (*Tree, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("jsx")

	parser := sitter.NewParser()
	parser.SetLanguage(tsx.GetLanguage())

	src := []byte(source)
	tree, err := parser.ParseCtx(context.Background(), nil, src)
	if err != nil {
		return nil, fmt.Errorf("jsx: parser failed: %w", err)
	}

	root := tree.RootNode()
	if root.HasError() {
		bad := firstErrorNode(root)
		serr := &SyntaxError{Line: 1}
		if bad != nil {
			serr.Line = int(bad.StartPoint().Row) + 1
			serr.Column = int(bad.StartPoint().Column)
			serr.Snippet = clip(bad.Content(src), 40)
		}
		log.Debug("Source failed to parse", zap.Int("line", serr.Line), zap.Int("column", serr.Column))
		return nil, serr
	}

	return &Tree{src: src, tree: tree, log: log}, nil
}

// Source returns the exact source text this tree was parsed from.
func (t *Tree) Source() string {
	return string(t.src)
}

// Bytes returns the source bytes backing node offsets. Callers must not
// modify the returned slice.
func (t *Tree) Bytes() []byte {
	return t.src
}

// Root returns the root node of the parse tree.
func (t *Tree) Root() *sitter.Node {
	return t.tree.RootNode()
}

// Content returns the source text covered by a node of this tree.
func (t *Tree) Content(n *sitter.Node) string {
	return n.Content(t.src)
}

// firstErrorNode finds the first ERROR or MISSING node in document order.
func firstErrorNode(n *sitter.Node) *sitter.Node {
	if n.IsError() || n.IsMissing() {
		return n
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if bad := firstErrorNode(n.Child(i)); bad != nil {
			return bad
		}
	}
	return nil
}

func clip(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
