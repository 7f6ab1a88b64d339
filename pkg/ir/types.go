// Package ir defines the program element data model the root seeders
// operate over: classes, methods, and fields in a closed-world view of an
// application's compiled classes (spec §3). Loading this IR from a
// bytecode container is an external concern; this package only models
// the shape the seeders need.
package ir

import "github.com/shrinkkit/seedroots/pkg/state"

// Visibility distinguishes public members from everything else, the only
// distinction the Member Resolver's declared-vs-inherited lookup cares
// about (spec §4.2).
type Visibility int

const (
	NonPublic Visibility = iota
	Public
)

// CtorName is the reserved method name a constructor carries; spec §3:
// "constructors are methods whose name is the reserved token <init>".
const CtorName = "<init>"

// Annotation identifies a declared annotation by its type identity.
type Annotation struct {
	Type string
}

// Field is a declared static or instance field.
type Field struct {
	Name           string
	DeclaringClass *Class
	Visibility     Visibility
	Annotations    []Annotation
	State          *state.State
}

// Method is a declared direct or virtual method, including constructors.
type Method struct {
	Name           string
	DeclaringClass *Class
	Visibility     Visibility
	Params         []string // parameter type identities, in order
	IsNative       bool
	Annotations    []Annotation
	State          *state.State
	invokes        []*Invoke
}

// IsConstructor reports whether this method is a constructor (spec §3:
// name equals the reserved token "<init>").
func (m *Method) IsConstructor() bool { return m.Name == CtorName }

// ParamsEqual reports whether this method's parameter list matches params
// element-wise. A nil or empty params list matches a method that takes no
// parameters, so "no params filter" has to be handled by the caller
// skipping this check, not by passing nil here.
func (m *Method) ParamsEqual(params []string) bool {
	if len(m.Params) != len(params) {
		return false
	}
	for i, p := range m.Params {
		if p != params[i] {
			return false
		}
	}
	return true
}

// Class is a declared class, interface, or the synthetic root that has no
// superclass.
type Class struct {
	Name           string
	Super          *Class
	Interfaces     []*Class
	StaticFields   []*Field
	InstanceFields []*Field
	DirectMethods  []*Method // includes constructors
	VirtualMethods []*Method
	External       bool // not part of the optimized program; inspectable, not rewritable
	Annotations    []Annotation
	State          *state.State
}

// Constructors returns this class's declared constructors (direct methods
// named "<init>").
func (c *Class) Constructors() []*Method {
	var out []*Method
	for _, m := range c.DirectMethods {
		if m.IsConstructor() {
			out = append(out, m)
		}
	}
	return out
}

// AllFields returns static fields followed by instance fields, the order
// the Member Resolver walks them in (spec §4.2).
func (c *Class) AllFields() []*Field {
	out := make([]*Field, 0, len(c.StaticFields)+len(c.InstanceFields))
	out = append(out, c.StaticFields...)
	out = append(out, c.InstanceFields...)
	return out
}

// AllMethods returns direct methods followed by virtual methods, the order
// the Member Resolver walks them in (spec §4.2).
func (c *Class) AllMethods() []*Method {
	out := make([]*Method, 0, len(c.DirectMethods)+len(c.VirtualMethods))
	out = append(out, c.DirectMethods...)
	out = append(out, c.VirtualMethods...)
	return out
}

// HasAnnotation reports whether any of the element's declared annotations
// has a type in types.
func HasAnnotation(annos []Annotation, types map[string]struct{}) bool {
	for _, a := range annos {
		if _, ok := types[a.Type]; ok {
			return true
		}
	}
	return false
}

// NewClass allocates a Class with fresh reachability state.
func NewClass(name string) *Class {
	return &Class{Name: name, State: state.New()}
}

// NewField allocates a Field with fresh reachability state, owned by cls.
func NewField(cls *Class, name string, vis Visibility) *Field {
	return &Field{Name: name, DeclaringClass: cls, Visibility: vis, State: state.New()}
}

// NewMethod allocates a Method with fresh reachability state, owned by cls.
func NewMethod(cls *Class, name string, vis Visibility, params []string) *Method {
	return &Method{Name: name, DeclaringClass: cls, Visibility: vis, Params: params, State: state.New()}
}
