package reflectscan

// ActionKind is the reflective-lookup behavior a matched call site
// dispatches to (spec §4.6 dispatch table).
type ActionKind int

const (
	GetField ActionKind = iota
	GetDeclaredField
	GetMethod
	GetDeclaredMethod
	GetConstructor
	GetDeclaredConstructor
	IntUpdater
	LongUpdater
	RefUpdater
)

// Callee class identities used by the dispatch table. These are the
// binary names the reflective APIs live on; spec §4.6 names them by
// simple class name ("Class", "AtomicIntegerFieldUpdater", ...), the
// binary form is the conventional qualification a real loader's class
// identities would carry.
const (
	ClassClass                = "Ljava/lang/Class;"
	ClassIntFieldUpdater      = "Ljava/util/concurrent/atomic/AtomicIntegerFieldUpdater;"
	ClassLongFieldUpdater     = "Ljava/util/concurrent/atomic/AtomicLongFieldUpdater;"
	ClassReferenceFieldUpdater = "Ljava/util/concurrent/atomic/AtomicReferenceFieldUpdater;"
)

type dispatchKey struct {
	calleeClass string
	methodName  string
}

// dispatchTable is the two-level static lookup spec §9 calls for
// ("class-identity -> name -> action-kind variant; a flat tuple set is
// equivalent"); a flat map keyed by the pair is that equivalent.
var dispatchTable = map[dispatchKey]ActionKind{
	{ClassClass, "getField"}:                     GetField,
	{ClassClass, "getDeclaredField"}:              GetDeclaredField,
	{ClassClass, "getMethod"}:                     GetMethod,
	{ClassClass, "getDeclaredMethod"}:              GetDeclaredMethod,
	{ClassClass, "getConstructor"}:                GetConstructor,
	{ClassClass, "getConstructors"}:                GetConstructor,
	{ClassClass, "getDeclaredConstructor"}:         GetDeclaredConstructor,
	{ClassClass, "getDeclaredConstructors"}:        GetDeclaredConstructor,
	{ClassIntFieldUpdater, "newUpdater"}:           IntUpdater,
	{ClassLongFieldUpdater, "newUpdater"}:          LongUpdater,
	{ClassReferenceFieldUpdater, "newUpdater"}:     RefUpdater,
}

// lookupAction resolves the dispatch-table entry for a call site, if any.
func lookupAction(calleeClass, methodName string) (ActionKind, bool) {
	a, ok := dispatchTable[dispatchKey{calleeClass, methodName}]
	return a, ok
}

// isConstructorAction reports whether action targets a constructor, in
// which case the name is the literal initializer token rather than a
// resolved string register (spec §4.6 step 2).
func isConstructorAction(a ActionKind) bool {
	return a == GetConstructor || a == GetDeclaredConstructor
}

// isFieldAction reports whether action dispatches to BlacklistField.
func isFieldAction(a ActionKind) bool {
	switch a {
	case GetField, GetDeclaredField, IntUpdater, LongUpdater, RefUpdater:
		return true
	default:
		return false
	}
}

// declaredOnly reports the declared_only argument BlacklistField/
// BlacklistMethod is called with for action (spec §4.6 "Dispatch to the
// Member Resolver").
func declaredOnly(a ActionKind) bool {
	switch a {
	case GetDeclaredField, GetDeclaredMethod, GetDeclaredConstructor, IntUpdater, LongUpdater, RefUpdater:
		return true
	default:
		return false
	}
}

// wantsParamTypes reports whether action requires asking the analyzer to
// infer a parameter-type list (spec §4.6 step 3).
func wantsParamTypes(a ActionKind) bool {
	switch a {
	case GetMethod, GetConstructor, GetDeclaredMethod, GetDeclaredConstructor:
		return true
	default:
		return false
	}
}
