package rootseed

import (
	"golang.org/x/sync/errgroup"

	"github.com/shrinkkit/seedroots/pkg/ir"
)

// MarkNativeMethods sets referenced_by_string on every method in scope
// with the native access flag set, and on its declaring class (spec
// §4.7 "Native-method marking"). Each class's methods are independent of
// every other class's, so the pass runs concurrently over classes with no
// synchronization (spec §5).
func MarkNativeMethods(scope *ir.Scope) error {
	var g errgroup.Group
	for _, cls := range scope.Classes() {
		g.Go(func() error {
			markNativeMethodsInClass(cls)
			return nil
		})
	}
	return g.Wait()
}

func markNativeMethodsInClass(cls *ir.Class) {
	for _, m := range cls.AllMethods() {
		if !m.IsNative {
			continue
		}
		m.State.MarkByString()
		cls.State.MarkByString()
	}
}
