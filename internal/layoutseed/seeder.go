package layoutseed

import (
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/shrinkkit/seedroots/internal/hierarchy"
	"github.com/shrinkkit/seedroots/pkg/ir"
)

// Config parameterizes the click-handler half of the seeder (spec §4.5b).
// The framework specifics (which attribute carries a handler name, which
// base type hosts handler methods, which parameter type a handler takes)
// are all external to this module's IR, so they're supplied rather than
// hardcoded — spec §4.5 calls BaseUiContext and ViewType "external;
// resolved by fully-qualified name".
type Config struct {
	HandlerAttribute string // e.g. "onClick"
	BaseUIContext    string // fully-qualified class name hosting handler methods
	ViewType         string // the handler's sole parameter type
}

// Mark applies both effects of the Resource Layout Seeder to scope: (a)
// classes named in layouts, and (b) click-handler methods bound by the
// configured handler attribute.
func Mark(scope *ir.Scope, tree *hierarchy.Tree, info LayoutInfo, cfg Config) {
	markLayoutClasses(scope, info.Classes)
	markClickHandlers(scope, tree, info.AttributeBindings[cfg.HandlerAttribute], cfg)
}

func markLayoutClasses(scope *ir.Scope, classNames []string) {
	for _, name := range classNames {
		cls, ok := scope.Lookup(name)
		if !ok {
			slog.Warn("layoutseed: dangling layout class reference", "classname", name)
			continue
		}
		cls.State.MarkByXML()
		for _, ctor := range cls.Constructors() {
			ctor.State.MarkByXML()
		}
	}
}

func markClickHandlers(scope *ir.Scope, tree *hierarchy.Tree, boundValues []string, cfg Config) {
	if len(boundValues) == 0 {
		return
	}
	names := distinct(boundValues)

	base, ok := scope.Lookup(cfg.BaseUIContext)
	if !ok {
		slog.Warn("layoutseed: base UI context class not in scope", "classname", cfg.BaseUIContext)
		return
	}

	for _, child := range tree.ChildrenOf(base) {
		if child.External {
			continue
		}
		for _, m := range child.VirtualMethods {
			if _, want := names[m.Name]; !want {
				continue
			}
			if !m.ParamsEqual([]string{cfg.ViewType}) {
				continue
			}
			m.State.MarkByXML()
		}
	}
}

func distinct(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

// Recompute clears referenced_by_xml across the full scope, then re-runs
// Mark — the only flag with clear semantics (spec §4.5 "Recomputability",
// invariant I1).
func Recompute(scope *ir.Scope, tree *hierarchy.Tree, info LayoutInfo, cfg Config) error {
	if err := ResetXML(scope); err != nil {
		return err
	}
	Mark(scope, tree, info, cfg)
	return nil
}

// ResetXML clears referenced_by_xml on every class, direct method,
// virtual method, instance field, and static field in scope. Each class's
// writes touch only elements it owns, so the pass runs concurrently over
// classes with no synchronization (spec §5) — grounded on the teacher's
// errgroup-bounded fan-out in pkg/unusedfunc.Analyzer.collectFunctions.
func ResetXML(scope *ir.Scope) error {
	var g errgroup.Group
	for _, cls := range scope.Classes() {
		g.Go(func() error {
			resetClassXML(cls)
			return nil
		})
	}
	return g.Wait()
}

func resetClassXML(cls *ir.Class) {
	cls.State.UnmarkByXML()
	for _, m := range cls.DirectMethods {
		m.State.UnmarkByXML()
	}
	for _, m := range cls.VirtualMethods {
		m.State.UnmarkByXML()
	}
	for _, f := range cls.InstanceFields {
		f.State.UnmarkByXML()
	}
	for _, f := range cls.StaticFields {
		f.State.UnmarkByXML()
	}
}
