package rootseed

import (
	"github.com/shrinkkit/seedroots/internal/hierarchy"
	"github.com/shrinkkit/seedroots/pkg/ir"
)

// MarkSerdeSuperclasses implements spec §4.7's "Serde superclasses":
// given a configured list of base class names (json_serde_supercls),
// every transitive subclass of a base that resolves in scope is marked
// is_serde.
func MarkSerdeSuperclasses(scope *ir.Scope, tree *hierarchy.Tree, baseNames []string) {
	for _, name := range baseNames {
		base, ok := scope.Lookup(name)
		if !ok {
			continue
		}
		for _, child := range tree.ChildrenOf(base) {
			child.State.SetIsSerde()
		}
	}
}
