// Package scopeio builds an ir.Scope from a declarative YAML program
// description. Loading a real bytecode container is an external concern
// (spec §1); this package is the "external loader" every root seeder
// assumes exists, expressed the simplest way a fixture-driven Go tool
// reasonably can: a whole program scope as one YAML document, grounded on
// unusedfunc's own harness expected.yaml convention.
package scopeio

import (
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"

	"github.com/shrinkkit/seedroots/pkg/ir"
)

// FieldFixture describes one field of a ClassFixture.
type FieldFixture struct {
	Name        string   `yaml:"name"`
	Visibility  string   `yaml:"visibility,omitempty"` // "public"; anything else is non-public
	Annotations []string `yaml:"annotations,omitempty"`
}

// InvokeFixture describes one call site inside a MethodFixture's body, the
// unit internal/reflectscan walks.
type InvokeFixture struct {
	CalleeClass string `yaml:"callee_class"`
	MethodName  string `yaml:"method_name"`
	Static      bool   `yaml:"static,omitempty"`
	Receiver    int    `yaml:"receiver"`
	Args        []int  `yaml:"args,omitempty"`
}

// MethodFixture describes one method of a ClassFixture.
type MethodFixture struct {
	Name        string          `yaml:"name"`
	Visibility  string          `yaml:"visibility,omitempty"`
	Params      []string        `yaml:"params,omitempty"`
	Native      bool            `yaml:"native,omitempty"`
	Annotations []string        `yaml:"annotations,omitempty"`
	Invokes     []InvokeFixture `yaml:"invokes,omitempty"`
}

// ClassFixture describes one class in a program scope fixture. Super and
// Interfaces are resolved by name against the fixture's own class list
// after every class has been constructed, so declaration order within
// the YAML document doesn't matter.
type ClassFixture struct {
	Name           string          `yaml:"name"`
	Super          string          `yaml:"super,omitempty"`
	Interfaces     []string        `yaml:"interfaces,omitempty"`
	External       bool            `yaml:"external,omitempty"`
	Annotations    []string        `yaml:"annotations,omitempty"`
	StaticFields   []FieldFixture  `yaml:"static_fields,omitempty"`
	InstanceFields []FieldFixture  `yaml:"instance_fields,omitempty"`
	DirectMethods  []MethodFixture `yaml:"direct_methods,omitempty"`
	VirtualMethods []MethodFixture `yaml:"virtual_methods,omitempty"`
}

// ProgramFixture is the root YAML document: a complete program scope.
type ProgramFixture struct {
	Classes []ClassFixture `yaml:"classes"`
}

// LoadProgramFixture reads and parses a YAML program description from
// path.
func LoadProgramFixture(path string) (ProgramFixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ProgramFixture{}, fmt.Errorf("scopeio: reading %s: %w", path, err)
	}
	var pf ProgramFixture
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return ProgramFixture{}, fmt.Errorf("scopeio: parsing %s: %w", path, err)
	}
	return pf, nil
}

// BuildScope materializes pf into an ir.Scope. It also returns a by-name
// index so callers can grab a specific class without re-deriving its
// lookup key.
func BuildScope(pf ProgramFixture) (*ir.Scope, map[string]*ir.Class) {
	classes := make(map[string]*ir.Class, len(pf.Classes))
	ordered := make([]*ir.Class, 0, len(pf.Classes))
	for _, cf := range pf.Classes {
		cls := ir.NewClass(cf.Name)
		cls.External = cf.External
		cls.Annotations = annotationsOf(cf.Annotations)
		classes[cf.Name] = cls
		ordered = append(ordered, cls)
	}

	for _, cf := range pf.Classes {
		cls := classes[cf.Name]
		if cf.Super != "" {
			cls.Super = classes[cf.Super]
		}
		for _, ifaceName := range cf.Interfaces {
			if iface := classes[ifaceName]; iface != nil {
				cls.Interfaces = append(cls.Interfaces, iface)
			}
		}

		for _, ff := range cf.StaticFields {
			cls.StaticFields = append(cls.StaticFields, buildField(cls, ff))
		}
		for _, ff := range cf.InstanceFields {
			cls.InstanceFields = append(cls.InstanceFields, buildField(cls, ff))
		}
		for _, mf := range cf.DirectMethods {
			cls.DirectMethods = append(cls.DirectMethods, buildMethod(cls, mf))
		}
		for _, mf := range cf.VirtualMethods {
			cls.VirtualMethods = append(cls.VirtualMethods, buildMethod(cls, mf))
		}
	}

	return ir.NewScope(ordered), classes
}

func buildField(cls *ir.Class, ff FieldFixture) *ir.Field {
	f := ir.NewField(cls, ff.Name, visibilityOf(ff.Visibility))
	f.Annotations = annotationsOf(ff.Annotations)
	return f
}

func buildMethod(cls *ir.Class, mf MethodFixture) *ir.Method {
	m := ir.NewMethod(cls, mf.Name, visibilityOf(mf.Visibility), mf.Params)
	m.IsNative = mf.Native
	m.Annotations = annotationsOf(mf.Annotations)
	if len(mf.Invokes) > 0 {
		invokes := make([]*ir.Invoke, 0, len(mf.Invokes))
		for _, inv := range mf.Invokes {
			args := make([]ir.Register, len(inv.Args))
			for i, a := range inv.Args {
				args[i] = ir.Register(a)
			}
			invokes = append(invokes, &ir.Invoke{
				CalleeClass: inv.CalleeClass,
				MethodName:  inv.MethodName,
				IsStatic:    inv.Static,
				Receiver:    ir.Register(inv.Receiver),
				Args:        args,
			})
		}
		m.SetInstructions(invokes)
	}
	return m
}

func visibilityOf(v string) ir.Visibility {
	if v == "public" {
		return ir.Public
	}
	return ir.NonPublic
}

func annotationsOf(types []string) []ir.Annotation {
	if len(types) == 0 {
		return nil
	}
	out := make([]ir.Annotation, len(types))
	for i, t := range types {
		out[i] = ir.Annotation{Type: t}
	}
	return out
}
