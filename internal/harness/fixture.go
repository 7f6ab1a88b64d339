// Package harness provides lookup helpers for scopeio-built program
// scopes in tests, the way unusedfunc's own harness package wrapped
// go/packages.Package loading with test-only convenience functions.
package harness

import "github.com/shrinkkit/seedroots/pkg/ir"

// FindMethod returns the method named name on cls with matching params, or
// nil. It searches direct methods before virtual methods, matching
// ir.Class.AllMethods's own order.
func FindMethod(cls *ir.Class, name string, params []string) *ir.Method {
	for _, m := range cls.AllMethods() {
		if m.Name == name && m.ParamsEqual(params) {
			return m
		}
	}
	return nil
}

// FindField returns the field named name on cls, or nil.
func FindField(cls *ir.Class, name string) *ir.Field {
	for _, f := range cls.AllFields() {
		if f.Name == name {
			return f
		}
	}
	return nil
}
