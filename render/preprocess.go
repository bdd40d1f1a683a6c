package render

import (
	"errors"

	sitter "github.com/smacker/go-tree-sitter"

	"mailedit/jsx"
)

// entryBinding is the name the preprocessed script binds the template's
// default export to, so the runtime can look it up after evaluation.
const entryBinding = "__template_entry"

// Preprocess rewrites a template module into a plain script the runtime can
// evaluate directly: import statements are blanked out (component bindings
// are provided as globals by the runtime), `export` keywords are stripped,
// and the default export is bound to a stable name. Byte edits only touch
// the statements themselves, so line numbers stay intact.
//
// The returned names are every identifier mentioned in an import clause;
// the runtime registers each of them so that components outside the
// selectable set still evaluate instead of raising a reference error.
func Preprocess(tree *jsx.Tree) (script string, imported []string, err error) {
	var edits jsx.EditList
	haveEntry := false

	root := tree.Root()
	for i := 0; i < int(root.NamedChildCount()); i++ {
		n := root.NamedChild(i)
		switch n.Type() {
		case "import_statement":
			imported = append(imported, importedNames(tree, n)...)
			edits.Replace(n.StartByte(), n.EndByte(), "")
		case "export_statement":
			decl := exportedDeclaration(n)
			if decl == nil {
				edits.Replace(n.StartByte(), n.EndByte(), "")
				continue
			}
			if isDefaultExport(n) {
				if haveEntry {
					return "", nil, stageErr(StagePreprocess, errors.New("multiple default exports"))
				}
				haveEntry = true
				// turns `export default function F() {...}` (or any
				// expression form) into `var __template_entry = ...`
				edits.Replace(n.StartByte(), decl.StartByte(), "var "+entryBinding+" = ")
			} else {
				edits.Replace(n.StartByte(), decl.StartByte(), "")
			}
		}
	}

	if !haveEntry {
		return "", nil, stageErr(StagePreprocess, errors.New("template has no default export"))
	}
	return edits.Apply(tree.Source()), imported, nil
}

// exportedDeclaration returns the declaration or expression an export
// statement carries, skipping decorators.
func exportedDeclaration(n *sitter.Node) *sitter.Node {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		if c.Type() != "decorator" && c.Type() != "comment" {
			return c
		}
	}
	return nil
}

func isDefaultExport(n *sitter.Node) bool {
	for i := 0; i < int(n.ChildCount()); i++ {
		if n.Child(i).Type() == "default" {
			return true
		}
	}
	return false
}

// importedNames collects every identifier bound by an import statement:
// default imports, namespace imports and named specifiers (including
// aliases, which bind the alias identifier).
func importedNames(tree *jsx.Tree, stmt *sitter.Node) []string {
	var names []string
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if n.Type() == "import_specifier" {
			// `{a as b}` binds b, `{a}` binds a
			last := n.NamedChild(int(n.NamedChildCount()) - 1)
			if last != nil {
				names = append(names, tree.Content(last))
			}
			return
		}
		if n.Type() == "identifier" {
			names = append(names, tree.Content(n))
			return
		}
		for i := 0; i < int(n.NamedChildCount()); i++ {
			walk(n.NamedChild(i))
		}
	}
	for i := 0; i < int(stmt.NamedChildCount()); i++ {
		c := stmt.NamedChild(i)
		if c.Type() == "import_clause" {
			walk(c)
		}
	}
	return names
}
