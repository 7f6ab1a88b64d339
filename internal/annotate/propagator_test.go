package annotate

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shrinkkit/seedroots/pkg/ir"
)

func TestMarkAnnotated_ClassAndMembers(t *testing.T) {
	keep := map[string]struct{}{"Lkeep/Keep;": {}}

	cls := ir.NewClass("La;")
	cls.Annotations = []ir.Annotation{{Type: "Lkeep/Keep;"}}

	method := ir.NewMethod(cls, "m", ir.Public, nil)
	method.Annotations = []ir.Annotation{{Type: "Lkeep/Keep;"}}
	cls.VirtualMethods = []*ir.Method{method}

	field := ir.NewField(cls, "f", ir.Public)
	field.Annotations = []ir.Annotation{{Type: "Lother/Anno;"}}
	cls.InstanceFields = []*ir.Field{field}

	scope := ir.NewScope([]*ir.Class{cls})
	MarkAnnotated(scope, keep)

	require.True(t, cls.State.ReferencedByType())
	require.True(t, method.State.ReferencedByType())
	require.False(t, field.State.ReferencedByType())
}

func TestMarkAnnotated_AllFiveElementGroups(t *testing.T) {
	keep := map[string]struct{}{"Lkeep/Keep;": {}}
	anno := []ir.Annotation{{Type: "Lkeep/Keep;"}}

	cls := ir.NewClass("La;")
	sf := ir.NewField(cls, "sf", ir.Public)
	sf.Annotations = anno
	cls.StaticFields = []*ir.Field{sf}

	ifield := ir.NewField(cls, "ifield", ir.Public)
	ifield.Annotations = anno
	cls.InstanceFields = []*ir.Field{ifield}

	dm := ir.NewMethod(cls, "<init>", ir.Public, nil)
	dm.Annotations = anno
	cls.DirectMethods = []*ir.Method{dm}

	vm := ir.NewMethod(cls, "vm", ir.Public, nil)
	vm.Annotations = anno
	cls.VirtualMethods = []*ir.Method{vm}

	scope := ir.NewScope([]*ir.Class{cls})
	MarkAnnotated(scope, keep)

	require.True(t, sf.State.ReferencedByType())
	require.True(t, ifield.State.ReferencedByType())
	require.True(t, dm.State.ReferencedByType())
	require.True(t, vm.State.ReferencedByType())
}

func TestMarkAnnotated_EmptyConfigMarksNothing(t *testing.T) {
	cls := ir.NewClass("La;")
	cls.Annotations = []ir.Annotation{{Type: "Lkeep/Keep;"}}
	scope := ir.NewScope([]*ir.Class{cls})

	MarkAnnotated(scope, nil)

	require.False(t, cls.State.ReferencedByType())
}

func TestMarkAnnotated_ExternalClassNotMutated(t *testing.T) {
	keep := map[string]struct{}{"Lkeep/Keep;": {}}

	ext := ir.NewClass("Landroid/Foo;")
	ext.External = true
	ext.Annotations = []ir.Annotation{{Type: "Lkeep/Keep;"}}

	method := ir.NewMethod(ext, "m", ir.Public, nil)
	method.Annotations = []ir.Annotation{{Type: "Lkeep/Keep;"}}
	ext.VirtualMethods = []*ir.Method{method}

	scope := ir.NewScope([]*ir.Class{ext})
	MarkAnnotated(scope, keep)

	require.False(t, ext.State.ReferencedByType())
	require.False(t, method.State.ReferencedByType())
}

func TestMarkAnnotated_NoMatchLeavesUnmarked(t *testing.T) {
	keep := map[string]struct{}{"Lkeep/Keep;": {}}
	cls := ir.NewClass("La;")
	cls.Annotations = []ir.Annotation{{Type: "Lunrelated/Anno;"}}
	scope := ir.NewScope([]*ir.Class{cls})

	MarkAnnotated(scope, keep)

	require.False(t, cls.State.ReferencedByType())
}
