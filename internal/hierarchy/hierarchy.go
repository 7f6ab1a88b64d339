package hierarchy

import (
	"github.com/puzpuzpuz/xsync/v4"

	"github.com/shrinkkit/seedroots/pkg/ir"
)

// Tree is the type hierarchy induced by the superclass edge and the
// interface-implementation edges of a scope, cached for repeated
// ChildrenOf/ImplementorsOf queries within a single seeding run. Cached
// the same way internal's NameCache memoizes canonical names: a
// concurrent map keyed by the object identity, grounded on the teacher's
// github.com/puzpuzpuz/xsync/v4 usage in its name cache.
type Tree struct {
	scope       *ir.Scope
	childrenOf  *xsync.Map[*ir.Class, []*ir.Class]
	interfaceSet *xsync.Map[*ir.Class, map[*ir.Class]struct{}]
}

// Build constructs a Tree over scope. Building is cheap (it only allocates
// empty caches); direct children and interface closures are computed on
// first query and memoized.
func Build(scope *ir.Scope) *Tree {
	t := &Tree{
		scope:        scope,
		childrenOf:   xsync.NewMap[*ir.Class, []*ir.Class](),
		interfaceSet: xsync.NewMap[*ir.Class, map[*ir.Class]struct{}](),
	}
	return t
}

// directChildren returns the classes in scope whose Super is exactly parent.
func (tr *Tree) directChildren(parent *ir.Class) []*ir.Class {
	if cached, ok := tr.childrenOf.Load(parent); ok {
		return cached
	}
	var out []*ir.Class
	for _, c := range tr.scope.Classes() {
		if c.Super == parent {
			out = append(out, c)
		}
	}
	tr.childrenOf.Store(parent, out)
	return out
}

// ChildrenOf returns the transitive subtypes of t via the superclass edge
// (spec §3: children_of(T)).
func (tr *Tree) ChildrenOf(t *ir.Class) []*ir.Class {
	var out []*ir.Class
	seen := make(map[*ir.Class]bool)
	var walk func(*ir.Class)
	walk = func(parent *ir.Class) {
		for _, child := range tr.directChildren(parent) {
			if seen[child] {
				continue
			}
			seen[child] = true
			out = append(out, child)
			walk(child)
		}
	}
	walk(t)
	return out
}

// implementsInterface reports whether c's declared interface set, closed
// transitively over superinterfaces, contains iface.
func (tr *Tree) implementsInterface(c *ir.Class, iface *ir.Class) bool {
	set, ok := tr.interfaceSet.Load(c)
	if !ok {
		set = make(map[*ir.Class]struct{})
		var collect func(*ir.Class)
		seen := make(map[*ir.Class]bool)
		collect = func(cur *ir.Class) {
			if cur == nil || seen[cur] {
				return
			}
			seen[cur] = true
			for _, i := range cur.Interfaces {
				set[i] = struct{}{}
				collect(i)
			}
			collect(cur.Super)
		}
		collect(c)
		tr.interfaceSet.Store(c, set)
	}
	_, ok = set[iface]
	return ok
}

// Implements reports whether c's declared interface set, closed
// transitively over superinterfaces and superclasses, contains iface.
func (tr *Tree) Implements(c *ir.Class, iface *ir.Class) bool {
	return tr.implementsInterface(c, iface)
}

// ImplementorsOf returns the transitive subtypes of scope whose declared
// interface set closes over iface (spec §3: implementors_of(I)).
func (tr *Tree) ImplementorsOf(iface *ir.Class) []*ir.Class {
	var out []*ir.Class
	for _, c := range tr.scope.Classes() {
		if tr.implementsInterface(c, iface) {
			out = append(out, c)
		}
	}
	return out
}
