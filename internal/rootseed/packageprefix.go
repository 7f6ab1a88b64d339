package rootseed

import (
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/shrinkkit/seedroots/pkg/ir"
)

// MarkPackagePrefixes implements the configured keep_packages list (spec
// §4.7 "Configured package prefixes", also spec §4.8 step 6's
// "reflected_package" expansion): every class whose fully-qualified name
// begins with one of prefixes, plus every transitive subclass of such a
// class, is marked referenced_by_string.
//
// Spec §9 flags the source's two-pass approach (seed the package set,
// then mark) as an open question and prefers "a single pass that
// recomputes in_reflected_pkg via memoization". inReflectedPkg below is
// exactly that: a single pass over scope, memoizing each class's answer
// (own name matches, or its superclass's answer is true) in an LRU cache
// keyed by class identity.
func MarkPackagePrefixes(scope *ir.Scope, prefixes []string) {
	if len(prefixes) == 0 {
		return
	}

	cache, _ := lru.New[*ir.Class, bool](len(scope.Classes()) + 1)

	var inReflectedPkg func(cls *ir.Class, visiting map[*ir.Class]bool) bool
	inReflectedPkg = func(cls *ir.Class, visiting map[*ir.Class]bool) bool {
		if cls == nil {
			return false
		}
		if v, ok := cache.Get(cls); ok {
			return v
		}
		if visiting[cls] {
			// Malformed cyclic superclass chain; terminate defensively.
			return false
		}
		visiting[cls] = true

		result := hasAnyPrefix(cls.Name, prefixes) || inReflectedPkg(cls.Super, visiting)
		cache.Add(cls, result)
		return result
	}

	for _, cls := range scope.Classes() {
		if inReflectedPkg(cls, map[*ir.Class]bool{}) {
			markByStringWithMembers(cls)
		}
	}
}

func hasAnyPrefix(name string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}
