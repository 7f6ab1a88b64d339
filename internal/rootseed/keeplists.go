package rootseed

import (
	"strings"

	"github.com/shrinkkit/seedroots/pkg/ir"
)

// MarkKeepMethods implements the configured keep_methods list (spec §4.7):
// any direct or virtual method in scope whose simple name is in names is
// marked referenced_by_string.
func MarkKeepMethods(scope *ir.Scope, names map[string]struct{}) {
	if len(names) == 0 {
		return
	}
	for _, cls := range scope.Classes() {
		for _, m := range cls.AllMethods() {
			if _, ok := names[m.Name]; ok {
				m.State.MarkByString()
			}
		}
	}
}

// MarkKeepClassMembers implements the configured keep_class_members list
// (spec §4.7): each entry is a free-form string expected to contain a
// class name followed by a field name; for each class in scope, if its
// name occurs in the entry and a static field's name occurs in the
// remainder of the entry, both are marked by_type.
//
// Spec §9 flags this unqualified-substring matching as an open question
// ("prone to false positives ... preserve the observable behavior but
// flag it in documentation; do not silently tighten the match"). This
// implementation preserves it exactly: substring containment, no
// word-boundary check, first-match-wins on the remainder search.
func MarkKeepClassMembers(scope *ir.Scope, entries []string) {
	for _, entry := range entries {
		for _, cls := range scope.Classes() {
			classIdx := strings.Index(entry, cls.Name)
			if classIdx < 0 {
				continue
			}
			remainder := entry[classIdx+len(cls.Name):]
			for _, f := range cls.StaticFields {
				if f.Name == "" || !strings.Contains(remainder, f.Name) {
					continue
				}
				f.State.MarkByType()
				cls.State.MarkByType()
			}
		}
	}
}
