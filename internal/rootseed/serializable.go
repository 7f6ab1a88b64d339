package rootseed

import (
	"github.com/shrinkkit/seedroots/internal/hierarchy"
	"github.com/shrinkkit/seedroots/pkg/ir"
	"github.com/shrinkkit/seedroots/pkg/state"
)

// MarkSerializableChain implements spec §4.7's "Serializable chain":
// every implementor C of the framework serializable interface has its
// superclass S examined; if S is non-external, non-serializable itself,
// every zero-argument constructor of S is set as a Serializable root
// (the runtime default-constructs S during deserialization even though
// nothing in the optimized program calls that constructor directly).
func MarkSerializableChain(scope *ir.Scope, tree *hierarchy.Tree, serializableIface string) {
	iface, ok := scope.Lookup(serializableIface)
	if !ok {
		return
	}

	for _, impl := range tree.ImplementorsOf(iface) {
		s := impl.Super
		if s == nil || s.External {
			continue
		}
		if tree.Implements(s, iface) {
			continue
		}
		for _, ctor := range s.Constructors() {
			if len(ctor.Params) != 0 {
				continue
			}
			ctor.State.SetRoot(state.ReasonSerializable, impl.Name)
		}
	}
}
