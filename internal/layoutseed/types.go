// Package layoutseed implements the Resource Layout Seeder (spec §4.5):
// classes named as XML element tags in a layout, and click-handler
// methods bound by literal attribute values, are rooted with the
// recomputable referenced_by_resource_xml flag. Grounded on
// ReachableClasses.cpp's analyze_reflection_reachable_classes /ClassSet
// handling for layout XML and its "keep_class_in_string" treatment of
// android:onClick.
package layoutseed

// LayoutInfo is the collector's output (spec §6:
// collect_layout_classes_and_attributes): the set of class names used as
// XML element tags across all layouts, and, per tracked attribute name,
// the multiset of literal string values bound to it.
type LayoutInfo struct {
	Classes           []string
	AttributeBindings map[string][]string
}
