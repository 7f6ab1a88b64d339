package seed

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shrinkkit/seedroots/pkg/ir"
)

func TestInitReachable_KeepMethodsAndPackagePrefixes(t *testing.T) {
	pluginBase := ir.NewClass("Lcom/example/plugin/Base;")
	onCreate := ir.NewMethod(pluginBase, "onCreate", ir.Public, nil)
	helper := ir.NewMethod(pluginBase, "helper", ir.Public, nil)
	pluginBase.VirtualMethods = []*ir.Method{onCreate, helper}

	unrelated := ir.NewClass("Lcom/other/Unrelated;")

	scope := ir.NewScope([]*ir.Class{pluginBase, unrelated})

	cfg := Config{
		KeepMethods:  []string{"onCreate"},
		KeepPackages: []string{"Lcom/example/plugin/"},
	}

	require.NoError(t, InitReachable(scope, cfg, Collaborators{}, nil))

	require.True(t, onCreate.State.ReferencedByString())
	// helper is not in keep_methods, but its class matches keep_packages,
	// which marks the class together with every declared member.
	require.True(t, helper.State.ReferencedByString())
	require.True(t, pluginBase.State.ReferencedByString())
	require.False(t, unrelated.State.ReferencedByString())
}

func TestInitReachable_SerializableChainRuns(t *testing.T) {
	serializable := ir.NewClass("Ljava/io/Serializable;")

	base := ir.NewClass("Lcom/example/Base;")
	ctor := ir.NewMethod(base, ir.CtorName, ir.Public, nil)
	base.DirectMethods = []*ir.Method{ctor}

	impl := ir.NewClass("Lcom/example/Impl;")
	impl.Super = base
	impl.Interfaces = []*ir.Class{serializable}

	scope := ir.NewScope([]*ir.Class{serializable, base, impl})

	err := InitReachable(scope, Config{}, Collaborators{
		SerializableInterface: serializable.Name,
	}, nil)
	require.NoError(t, err)

	require.True(t, ctor.State.IsRoot())
}

func TestInitReachable_AnnotationMergeSkipsUnresolvedNames(t *testing.T) {
	cls := ir.NewClass("Lcom/example/Kept;")
	cls.Annotations = []ir.Annotation{{Type: "Lcom/example/Keep;"}}

	scope := ir.NewScope([]*ir.Class{cls})

	err := InitReachable(scope, Config{}, Collaborators{}, []string{"Lcom/example/Keep;", "not-a-class-name"})
	require.NoError(t, err)

	require.True(t, cls.State.ReferencedByType())
}

func TestInitReachable_SerdeSuperclasses(t *testing.T) {
	base := ir.NewClass("Lcom/example/JsonBase;")
	child := ir.NewClass("Lcom/example/Dto;")
	child.Super = base

	scope := ir.NewScope([]*ir.Class{base, child})

	cfg := Config{JSONSerdeSupercls: []string{base.Name}}
	require.NoError(t, InitReachable(scope, cfg, Collaborators{}, nil))

	require.True(t, child.State.IsSerde())
}

func TestInitReachable_NativeMethodsMarked(t *testing.T) {
	cls := ir.NewClass("Lcom/example/Foo;")
	native := ir.NewMethod(cls, "nativeThing", ir.Public, nil)
	native.IsNative = true
	cls.DirectMethods = []*ir.Method{native}

	scope := ir.NewScope([]*ir.Class{cls})
	require.NoError(t, InitReachable(scope, Config{}, Collaborators{}, nil))

	require.True(t, native.State.ReferencedByString())
}

func TestInitReachable_NoApkDirSkipsManifestAndLayout(t *testing.T) {
	cls := ir.NewClass("Lcom/example/Foo;")
	scope := ir.NewScope([]*ir.Class{cls})

	cfg := Config{ApkDir: ""}
	collab := Collaborators{
		ManifestPath: "/does/not/matter",
		LayoutDir:    "/does/not/matter",
	}
	require.NoError(t, InitReachable(scope, cfg, collab, nil))
	require.False(t, cls.State.ReferencedByString())
}
