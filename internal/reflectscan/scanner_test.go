package reflectscan

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shrinkkit/seedroots/pkg/ir"
	"github.com/shrinkkit/seedroots/pkg/state"
)

// fakeAnalyzer is a hand-rolled stand-in for the reflection abstract
// interpreter, resolving a fixed set of register->value bindings set up
// by each test. Production code never implements Analyzer itself (spec
// §1); this fake plays the role a test harness for an external
// collaborator normally plays.
type fakeAnalyzer struct {
	values map[ir.Register]Value
	params map[*ir.Invoke][]string
}

func (f *fakeAnalyzer) ValueAt(reg ir.Register) Value {
	if v, ok := f.values[reg]; ok {
		return v
	}
	return Value{Kind: Imprecise}
}

func (f *fakeAnalyzer) ParamTypes(call *ir.Invoke) ([]string, bool) {
	p, ok := f.params[call]
	return p, ok
}

func TestScan_GetFieldOnPublicInheritedField(t *testing.T) {
	// Scenario 4 from spec §8: B.class.getField("x") where A declares
	// public x and B extends A. A.x is rooted; B is untouched directly.
	a := ir.NewClass("La;")
	x := ir.NewField(a, "x", ir.Public)
	a.InstanceFields = []*ir.Field{x}

	b := ir.NewClass("Lb;")
	b.Super = a

	caller := ir.NewMethod(b, "reflectIn", ir.Public, nil)
	inst := &ir.Invoke{CalleeClass: ClassClass, MethodName: "getField", Receiver: 0, Args: []ir.Register{1}}
	caller.SetInstructions([]*ir.Invoke{inst})
	b.VirtualMethods = []*ir.Method{caller}

	scope := ir.NewScope([]*ir.Class{a, b})

	fa := &fakeAnalyzer{values: map[ir.Register]Value{
		0: {Kind: Class, Class: b},
		1: {Kind: String, Str: "x"},
	}}

	Scan(scope, func(*ir.Method) Analyzer { return fa })

	require.True(t, x.State.IsRoot())
	require.Equal(t, state.ReasonReflection, x.State.RootReason())
}

func TestScan_GetDeclaredFieldIgnoresVisibility(t *testing.T) {
	// Scenario 5: A.class.getDeclaredField("y") on a private field roots
	// it regardless of visibility.
	a := ir.NewClass("La;")
	y := ir.NewField(a, "y", ir.NonPublic)
	a.InstanceFields = []*ir.Field{y}

	caller := ir.NewMethod(a, "reflectIn", ir.Public, nil)
	inst := &ir.Invoke{CalleeClass: ClassClass, MethodName: "getDeclaredField", Receiver: 0, Args: []ir.Register{1}}
	caller.SetInstructions([]*ir.Invoke{inst})
	a.VirtualMethods = []*ir.Method{caller}

	scope := ir.NewScope([]*ir.Class{a})

	fa := &fakeAnalyzer{values: map[ir.Register]Value{
		0: {Kind: Class, Class: a},
		1: {Kind: String, Str: "y"},
	}}

	Scan(scope, func(*ir.Method) Analyzer { return fa })

	require.True(t, y.State.IsRoot())
}

func TestScan_ImpreciseReceiverSkipped(t *testing.T) {
	a := ir.NewClass("La;")
	x := ir.NewField(a, "x", ir.Public)
	a.InstanceFields = []*ir.Field{x}

	caller := ir.NewMethod(a, "reflectIn", ir.Public, nil)
	inst := &ir.Invoke{CalleeClass: ClassClass, MethodName: "getField", Receiver: 0, Args: []ir.Register{1}}
	caller.SetInstructions([]*ir.Invoke{inst})
	a.VirtualMethods = []*ir.Method{caller}

	scope := ir.NewScope([]*ir.Class{a})

	fa := &fakeAnalyzer{values: map[ir.Register]Value{
		1: {Kind: String, Str: "x"},
		// register 0 left unresolved -> Imprecise
	}}

	Scan(scope, func(*ir.Method) Analyzer { return fa })

	require.False(t, x.State.IsRoot())
}

func TestScan_GetConstructorUsesInitializerToken(t *testing.T) {
	a := ir.NewClass("La;")
	ctor := ir.NewMethod(a, ir.CtorName, ir.Public, nil)
	a.DirectMethods = []*ir.Method{ctor}

	caller := ir.NewMethod(a, "reflectIn", ir.Public, nil)
	inst := &ir.Invoke{CalleeClass: ClassClass, MethodName: "getConstructor", Receiver: 0, Args: nil}
	caller.SetInstructions([]*ir.Invoke{inst})
	a.VirtualMethods = []*ir.Method{caller}

	scope := ir.NewScope([]*ir.Class{a})

	fa := &fakeAnalyzer{values: map[ir.Register]Value{
		0: {Kind: Class, Class: a},
	}}

	Scan(scope, func(*ir.Method) Analyzer { return fa })

	require.True(t, ctor.State.IsRoot())
}

func TestScan_RefUpdaterNameIsThirdArgument(t *testing.T) {
	// AtomicReferenceFieldUpdater.newUpdater(tclass, vclass, fieldName) is a
	// static 3-register call; register 0 is consumed by dispatch as the
	// receiver (tclass), register 1 is the unrelated vclass register, and
	// the field name is the third.
	a := ir.NewClass("La;")
	f := ir.NewField(a, "state", ir.NonPublic)
	a.InstanceFields = []*ir.Field{f}

	v := ir.NewClass("Lv;")

	caller := ir.NewMethod(a, "reflectIn", ir.Public, nil)
	inst := &ir.Invoke{
		CalleeClass: ClassReferenceFieldUpdater,
		MethodName:  "newUpdater",
		IsStatic:    true,
		Args:        []ir.Register{0, 1, 2},
	}
	caller.SetInstructions([]*ir.Invoke{inst})
	a.VirtualMethods = []*ir.Method{caller}

	scope := ir.NewScope([]*ir.Class{a})

	fa := &fakeAnalyzer{values: map[ir.Register]Value{
		0: {Kind: Class, Class: a},
		1: {Kind: Class, Class: v},
		2: {Kind: String, Str: "state"},
	}}

	Scan(scope, func(*ir.Method) Analyzer { return fa })

	require.True(t, f.State.IsRoot())
}

func TestScan_IntUpdaterNameIsSecondArgument(t *testing.T) {
	// AtomicIntegerFieldUpdater.newUpdater(tclass, fieldName) is a static
	// 2-register call; register 0 is consumed by dispatch as the receiver
	// (tclass), leaving the field name at register 1.
	a := ir.NewClass("La;")
	f := ir.NewField(a, "count", ir.NonPublic)
	a.InstanceFields = []*ir.Field{f}

	caller := ir.NewMethod(a, "reflectIn", ir.Public, nil)
	inst := &ir.Invoke{
		CalleeClass: ClassIntFieldUpdater,
		MethodName:  "newUpdater",
		IsStatic:    true,
		Args:        []ir.Register{0, 1},
	}
	caller.SetInstructions([]*ir.Invoke{inst})
	a.VirtualMethods = []*ir.Method{caller}

	scope := ir.NewScope([]*ir.Class{a})

	fa := &fakeAnalyzer{values: map[ir.Register]Value{
		0: {Kind: Class, Class: a},
		1: {Kind: String, Str: "count"},
	}}

	Scan(scope, func(*ir.Method) Analyzer { return fa })

	require.True(t, f.State.IsRoot())
	require.Equal(t, state.ReasonReflection, f.State.RootReason())
}

func TestScan_LongUpdaterNameIsSecondArgument(t *testing.T) {
	// AtomicLongFieldUpdater.newUpdater(tclass, fieldName); same shape as
	// IntUpdater, distinct dispatch-table entry.
	a := ir.NewClass("La;")
	f := ir.NewField(a, "total", ir.NonPublic)
	a.InstanceFields = []*ir.Field{f}

	caller := ir.NewMethod(a, "reflectIn", ir.Public, nil)
	inst := &ir.Invoke{
		CalleeClass: ClassLongFieldUpdater,
		MethodName:  "newUpdater",
		IsStatic:    true,
		Args:        []ir.Register{0, 1},
	}
	caller.SetInstructions([]*ir.Invoke{inst})
	a.VirtualMethods = []*ir.Method{caller}

	scope := ir.NewScope([]*ir.Class{a})

	fa := &fakeAnalyzer{values: map[ir.Register]Value{
		0: {Kind: Class, Class: a},
		1: {Kind: String, Str: "total"},
	}}

	Scan(scope, func(*ir.Method) Analyzer { return fa })

	require.True(t, f.State.IsRoot())
	require.Equal(t, state.ReasonReflection, f.State.RootReason())
}

func TestScan_LazyAnalyzerConstructedOncePerMethod(t *testing.T) {
	a := ir.NewClass("La;")
	x := ir.NewField(a, "x", ir.Public)
	y := ir.NewField(a, "y", ir.Public)
	a.InstanceFields = []*ir.Field{x, y}

	caller := ir.NewMethod(a, "reflectIn", ir.Public, nil)
	inst1 := &ir.Invoke{CalleeClass: ClassClass, MethodName: "getField", Receiver: 0, Args: []ir.Register{1}}
	inst2 := &ir.Invoke{CalleeClass: ClassClass, MethodName: "getField", Receiver: 0, Args: []ir.Register{2}}
	caller.SetInstructions([]*ir.Invoke{inst1, inst2})
	a.VirtualMethods = []*ir.Method{caller}

	scope := ir.NewScope([]*ir.Class{a})

	fa := &fakeAnalyzer{values: map[ir.Register]Value{
		0: {Kind: Class, Class: a},
		1: {Kind: String, Str: "x"},
		2: {Kind: String, Str: "y"},
	}}

	calls := 0
	Scan(scope, func(*ir.Method) Analyzer {
		calls++
		return fa
	})

	require.Equal(t, 1, calls)
	require.True(t, x.State.IsRoot())
	require.True(t, y.State.IsRoot())
}
