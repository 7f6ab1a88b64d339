// Package annotate implements the Annotation Propagator (spec §4.3):
// marks every class and declared member whose declared annotations match
// a configured set of annotation type identities. Grounded on
// ReachableClasses.cpp's keep_annotated_classes, which walks the same five
// element groups (class, sfields, ifields, dmethods, vmethods).
package annotate

import "github.com/shrinkkit/seedroots/pkg/ir"

// MarkAnnotated marks, for each non-external class in scope and for each
// of its declared members, elements whose declared annotations intersect
// annotationTypes, a set of annotation type identities. External
// classes are skipped (spec P6): they are inspectable but not part of the
// optimized program.
func MarkAnnotated(scope *ir.Scope, annotationTypes map[string]struct{}) {
	if len(annotationTypes) == 0 {
		return
	}
	for _, cls := range scope.Classes() {
		if cls.External {
			continue
		}
		if ir.HasAnnotation(cls.Annotations, annotationTypes) {
			cls.State.MarkByType()
		}
		for _, m := range cls.DirectMethods {
			if ir.HasAnnotation(m.Annotations, annotationTypes) {
				m.State.MarkByType()
			}
		}
		for _, m := range cls.VirtualMethods {
			if ir.HasAnnotation(m.Annotations, annotationTypes) {
				m.State.MarkByType()
			}
		}
		for _, f := range cls.StaticFields {
			if ir.HasAnnotation(f.Annotations, annotationTypes) {
				f.State.MarkByType()
			}
		}
		for _, f := range cls.InstanceFields {
			if ir.HasAnnotation(f.Annotations, annotationTypes) {
				f.State.MarkByType()
			}
		}
	}
}
