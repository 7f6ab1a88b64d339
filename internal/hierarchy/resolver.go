// Package hierarchy implements the Member Resolver (spec §4.2) and the
// type-hierarchy relations (children_of, implementors_of) used by several
// root seeders. Grounded on ReachableClasses.cpp's blacklist_field /
// blacklist_method and TypeSystem::get_all_children /
// get_all_implementors, reworked into the teacher's iterative,
// revisit-guarded traversal style (internal/rta's worklist loops) instead
// of unbounded recursion, so a malformed cyclic superclass chain in the
// input terminates instead of stack-overflowing (spec §7).
package hierarchy

import (
	"log/slog"

	"github.com/shrinkkit/seedroots/pkg/ir"
	"github.com/shrinkkit/seedroots/pkg/state"
)

// BlacklistField walks the declared static-then-instance fields of class,
// marking every field named name as a Reflection root. When declaredOnly
// is false, non-public fields are skipped and the walk continues into the
// superclass chain; when true, only class's own declarations are
// considered. origin is the reflecting method, recorded for diagnostics.
func BlacklistField(origin string, class *ir.Class, name string, declaredOnly bool) {
	visited := make(map[*ir.Class]bool)
	for c := class; c != nil; c = c.Super {
		if visited[c] {
			slog.Warn("inheritance cycle detected, terminating super-walk", "class", c.Name)
			return
		}
		visited[c] = true

		if c.External {
			return
		}

		for _, f := range c.AllFields() {
			if f.Name != name {
				continue
			}
			if !declaredOnly && f.Visibility != ir.Public {
				continue
			}
			f.State.SetRoot(state.ReasonReflection, origin)
		}

		if declaredOnly {
			return
		}
	}
}

// BlacklistMethod walks the declared direct-then-virtual methods of class,
// marking every method named name (optionally also matching params
// element-wise) as a Reflection root. Semantics mirror BlacklistField; see
// spec §4.2 for the declared-vs-non-declared rationale.
func BlacklistMethod(origin string, class *ir.Class, name string, params []string, hasParams bool, declaredOnly bool) {
	visited := make(map[*ir.Class]bool)
	for c := class; c != nil; c = c.Super {
		if visited[c] {
			slog.Warn("inheritance cycle detected, terminating super-walk", "class", c.Name)
			return
		}
		visited[c] = true

		if c.External {
			return
		}

		for _, m := range c.AllMethods() {
			if m.Name != name {
				continue
			}
			if hasParams && !m.ParamsEqual(params) {
				continue
			}
			if !declaredOnly && m.Visibility != ir.Public {
				continue
			}
			m.State.SetRoot(state.ReasonReflection, origin)
		}

		if declaredOnly {
			return
		}
	}
}
