package manifestseed

import (
	"log/slog"

	"github.com/shrinkkit/seedroots/pkg/ir"
	"github.com/shrinkkit/seedroots/pkg/state"
)

// PruneSet is the set of component kinds for which an unexported component
// with no intent filters is not manifest-rooted (spec §4.4).
type PruneSet map[ComponentKind]struct{}

// Mark applies the Manifest Seeder's policy to scope using info, logging
// and skipping any manifest-declared classname with no matching class in
// scope.
func Mark(scope *ir.Scope, info ManifestClassInfo, pruneSet PruneSet) {
	for _, name := range info.ApplicationClasses {
		rootClass(scope, name, "manifest.application")
	}
	for _, name := range info.InstrumentationClasses {
		rootClass(scope, name, "manifest.instrumentation")
	}

	for _, tag := range info.Components {
		switch tag.Kind {
		case Activity, ActivityAlias:
			_, prune := pruneSet[tag.Kind]
			if tag.IsExported || tag.HasIntentFilters || !prune {
				rootClass(scope, tag.Classname, "manifest."+tag.Kind.String())
				continue
			}
			// Not rooted, but the manifest still references the name
			// textually: pin the name and forbid renaming without
			// making the class itself reachable.
			cls, ok := scope.Lookup(tag.Classname)
			if !ok {
				slog.Warn("manifest seeder: dangling component class", "classname", tag.Classname, "kind", tag.Kind.String())
				continue
			}
			cls.State.IncrementKeepCount()
			cls.State.ClearAllowObfuscation()

		case Receiver, Service:
			rootClass(scope, tag.Classname, "manifest."+tag.Kind.String())

		case Provider:
			rootClass(scope, tag.Classname, "manifest.Provider")
			for _, authority := range tag.AuthorityClasses {
				rootClass(scope, authority, "manifest.Provider.authority")
			}
		}
	}
}

// rootClass manifest-roots the named class: set_root on the class, an
// increment_keep_count, and set_root on every declared constructor. A
// dangling name is logged and skipped.
func rootClass(scope *ir.Scope, name string, originator string) {
	cls, ok := scope.Lookup(name)
	if !ok {
		slog.Warn("manifest seeder: dangling class reference", "classname", name, "originator", originator)
		return
	}
	cls.State.SetRoot(state.ReasonManifest, originator)
	cls.State.IncrementKeepCount()
	for _, ctor := range cls.Constructors() {
		ctor.State.SetRoot(state.ReasonManifest, originator)
	}
}
