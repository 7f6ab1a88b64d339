package ir

// Scope is the ordered collection of all classes loaded for optimization,
// external and non-external alike (spec GLOSSARY). Seeders iterate it in
// order; lookups by name are used to resolve dangling string references
// from the manifest, layouts, and native libraries.
type Scope struct {
	classes []*Class
	byName  map[string]*Class
}

// NewScope builds a Scope from an ordered list of classes. Later entries
// with a duplicate name overwrite earlier ones in the lookup index, but
// the ordered slice keeps every entry — a malformed input duplicating a
// class name is the loader's problem, not this package's.
func NewScope(classes []*Class) *Scope {
	s := &Scope{
		classes: classes,
		byName:  make(map[string]*Class, len(classes)),
	}
	for _, c := range classes {
		s.byName[c.Name] = c
	}
	return s
}

// Classes returns the ordered class list.
func (s *Scope) Classes() []*Class { return s.classes }

// Lookup resolves a class by fully-qualified name. Returns nil, false for
// a dangling reference — callers log-and-skip per spec §7.
func (s *Scope) Lookup(name string) (*Class, bool) {
	c, ok := s.byName[name]
	return c, ok
}

// AllMethods returns every declared method (direct and virtual) across
// every class in the scope, in class order then declaration order.
func (s *Scope) AllMethods() []*Method {
	var out []*Method
	for _, c := range s.classes {
		out = append(out, c.AllMethods()...)
	}
	return out
}

// AllFields returns every declared field across every class in the scope.
func (s *Scope) AllFields() []*Field {
	var out []*Field
	for _, c := range s.classes {
		out = append(out, c.AllFields()...)
	}
	return out
}
