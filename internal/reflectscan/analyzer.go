// Package reflectscan implements the Reflection Scanner (spec §4.6): it
// walks method bodies looking for call sites that match the reflective-API
// dispatch table, resolves their arguments through a reflection analyzer,
// and dispatches confirmed lookups to the Member Resolver
// (internal/hierarchy). The analyzer itself — the abstract interpreter
// that resolves a register to a concrete class or string literal — is an
// external collaborator per spec §1 ("only its query surface is
// specified"); this package defines only that surface.
package reflectscan

import "github.com/shrinkkit/seedroots/pkg/ir"

// ValueKind classifies an abstract value the analyzer reports for a
// register.
type ValueKind int

const (
	// Imprecise means the analyzer could not resolve the register to a
	// single concrete value; the call site is soundly ignored (spec §4.6,
	// final paragraph).
	Imprecise ValueKind = iota
	Class
	String
)

// Value is the abstract object the analyzer returns for a register: a
// resolved program class, a string literal, or neither.
type Value struct {
	Kind  ValueKind
	Class *ir.Class // set when Kind == Class
	Str   string    // set when Kind == String
}

// Analyzer is the per-method query surface the reflective-lookup abstract
// interpreter exposes. Spec §4.6 describes it as lazily instantiated on
// first need and owned solely by the scan of one method (spec §5); this
// package never caches an Analyzer across methods.
type Analyzer interface {
	// ValueAt returns the abstract value the analyzer infers for reg.
	ValueAt(reg ir.Register) Value

	// ParamTypes infers the parameter-type list a getMethod/getConstructor
	// call site resolves to. ok is false when the analyzer cannot infer a
	// precise list (spec §4.6 step 3: "it may return unknown/none").
	ParamTypes(call *ir.Invoke) (params []string, ok bool)
}

// NewAnalyzer constructs the per-method analyzer on first need. Scan calls
// this at most once per method, regardless of how many matching call
// sites that method contains (spec §9, "Lazy per-method analyzer").
type NewAnalyzer func(method *ir.Method) Analyzer
