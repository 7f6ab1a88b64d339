// Package rootseed implements the Miscellaneous Root Seeders (spec §4.7):
// native-method marking, native-library classname marking, configured
// package-prefix marking, configured method/member keep lists, the
// serializable-supertype constructor chain, and serde superclass marking.
// Grounded on ReachableClasses.cpp's keep_class_for_package /
// keep_methods / keep_fields / init_permanently_reachable_classes
// handling, reworked onto this module's ir.Scope and hierarchy.Tree.
package rootseed

import "github.com/shrinkkit/seedroots/pkg/ir"

// markByStringWithMembers sets referenced_by_string on cls and every
// declared member of cls, the "mark ... (and members)" shorthand spec
// §4.7 uses for the native-library and package-prefix sub-seeders. Every
// class marked through it has every declared member marked too (invariant
// P1); MarkNativeMethods does not use it and marks only the native methods
// and their declaring class.
func markByStringWithMembers(cls *ir.Class) {
	cls.State.MarkByString()
	for _, f := range cls.AllFields() {
		f.State.MarkByString()
	}
	for _, m := range cls.AllMethods() {
		m.State.MarkByString()
	}
}
