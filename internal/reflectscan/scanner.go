package reflectscan

import (
	"fmt"

	"github.com/shrinkkit/seedroots/internal/hierarchy"
	"github.com/shrinkkit/seedroots/pkg/ir"
)

// Scan walks every method in scope, identifying reflective lookup call
// sites and dispatching confirmed lookups to the Member Resolver (spec
// §4.6). newAnalyzer lazily builds the per-method analyzer on the first
// matching call site in that method; later matches in the same method
// reuse it, and it is dropped (goes out of scope) once the method's
// instructions are exhausted (spec §9).
func Scan(scope *ir.Scope, newAnalyzer NewAnalyzer) {
	for _, cls := range scope.Classes() {
		for _, m := range cls.AllMethods() {
			scanMethod(m, newAnalyzer)
		}
	}
}

func scanMethod(method *ir.Method, newAnalyzer NewAnalyzer) {
	var analyzer Analyzer

	for _, inst := range method.Instructions() {
		action, ok := lookupAction(inst.CalleeClass, inst.MethodName)
		if !ok {
			continue
		}

		if analyzer == nil {
			analyzer = newAnalyzer(method)
		}

		dispatch(method, inst, action, analyzer)
	}
}

func dispatch(method *ir.Method, inst *ir.Invoke, action ActionKind, analyzer Analyzer) {
	receiverReg := inst.Receiver
	if inst.IsStatic {
		if len(inst.Args) == 0 {
			return
		}
		receiverReg = inst.Args[0]
	}

	classVal := analyzer.ValueAt(receiverReg)
	if classVal.Kind != Class || classVal.Class == nil {
		return
	}

	var name string
	if isConstructorAction(action) {
		name = ir.CtorName
	} else {
		nameReg, ok := nameArgRegister(inst, action)
		if !ok {
			return
		}
		nameVal := analyzer.ValueAt(nameReg)
		if nameVal.Kind != String {
			return
		}
		name = nameVal.Str
	}

	origin := originLabel(method)
	cls := classVal.Class

	if isFieldAction(action) {
		hierarchy.BlacklistField(origin, cls, name, declaredOnly(action))
		return
	}

	var params []string
	hasParams := false
	if wantsParamTypes(action) {
		params, hasParams = analyzer.ParamTypes(inst)
	}
	hierarchy.BlacklistMethod(origin, cls, name, params, hasParams, declaredOnly(action))
}

// nameArgRegister resolves which argument register carries the name
// string for action (spec §4.6 step 2). For a static updater call
// (AtomicIntegerFieldUpdater/AtomicLongFieldUpdater/
// AtomicReferenceFieldUpdater.newUpdater), dispatch already consumed
// inst.Args[0] as the receiver-class register, so the name search must
// start one slot past it; AtomicReferenceFieldUpdater.newUpdater takes an
// additional vclass register (tclass, vclass, fieldName) ahead of the
// name, so RefUpdater skips one slot further still. For every other
// (non-static, instance Class.getXxx) action, inst.Args holds only the
// method's own arguments and the name is the first of them.
func nameArgRegister(inst *ir.Invoke, action ActionKind) (ir.Register, bool) {
	idx := 0
	if inst.IsStatic {
		idx = 1
	}
	if action == RefUpdater {
		idx++
	}
	if idx >= len(inst.Args) {
		return 0, false
	}
	return inst.Args[idx], true
}

func originLabel(method *ir.Method) string {
	if method.DeclaringClass == nil {
		return method.Name
	}
	return fmt.Sprintf("%s.%s", method.DeclaringClass.Name, method.Name)
}
