package seed

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/shrinkkit/seedroots/internal/annotate"
	"github.com/shrinkkit/seedroots/internal/hierarchy"
	"github.com/shrinkkit/seedroots/internal/layoutseed"
	"github.com/shrinkkit/seedroots/internal/manifestseed"
	"github.com/shrinkkit/seedroots/internal/reflectscan"
	"github.com/shrinkkit/seedroots/internal/rootseed"
	"github.com/shrinkkit/seedroots/pkg/ir"
)

// Collaborators bundles the inputs init_reachable needs beyond the
// program scope and Config: the reflection analyzer factory and the
// well-known names/paths that the loader and collectors, not this
// package, resolve (spec §1: "only its query surface is specified" for
// everything outside this module's IR).
type Collaborators struct {
	// ManifestPath is the AndroidManifest-shaped XML file to parse. Empty
	// disables manifest seeding even if ApkDir is set.
	ManifestPath string
	// ApplicationPackage qualifies manifest android:name values that
	// start with a leading dot.
	ApplicationPackage string
	// LayoutDir is the directory tree of layout XML resources to scan.
	LayoutDir string
	LayoutConfig layoutseed.Config
	// NativeLibDir is the directory of embedded native libraries to scan
	// for classnames (spec §4.7, native-library classname marking).
	NativeLibDir string
	// SerializableInterface is the fully-qualified name identifying
	// java.io.Serializable in the loaded scope.
	SerializableInterface string
	// NewReflectionAnalyzer builds the per-method reflection analyzer the
	// Reflection Scanner (internal/reflectscan) drives.
	NewReflectionAnalyzer reflectscan.NewAnalyzer
}

// InitReachable is the Orchestrator's single entrypoint (spec §4.8): it
// runs every root seeder over scope in the fixed order the spec defines,
// then returns. baselineAnnotations are annotation type names rooted
// unconditionally, merged with cfg.KeepAnnotations before the Annotation
// Propagator runs.
//
// The only error it returns comes from the native-method marking pass;
// prune_unexported_components names are validated earlier, by LoadConfig.
// Every externally-sourced collection failure (a missing manifest, an
// unreadable layout directory, a native library without a usable
// classname) is logged and treated as an empty contribution, never fatal.
func InitReachable(scope *ir.Scope, cfg Config, collab Collaborators, baselineAnnotations []string) error {
	tree := hierarchy.Build(scope)

	// Step 1+2: merge configured and baseline annotation types, then run
	// the Annotation Propagator.
	annotationTypes := make(map[string]struct{})
	for _, name := range append(append([]string{}, baselineAnnotations...), cfg.KeepAnnotations...) {
		if !looksLikeClassName(name) {
			slog.Warn("seed: skipping unresolved annotation type name", "name", name)
			continue
		}
		annotationTypes[name] = struct{}{}
	}
	annotate.MarkAnnotated(scope, annotationTypes)

	// Step 3: configured keep lists.
	keepMethodNames := make(map[string]struct{}, len(cfg.KeepMethods))
	for _, m := range cfg.KeepMethods {
		keepMethodNames[m] = struct{}{}
	}
	rootseed.MarkKeepMethods(scope, keepMethodNames)
	rootseed.MarkKeepClassMembers(scope, cfg.KeepClassMembers)

	// Step 4: manifest and layout XML reachability, native-library
	// classname reachability — all gated on an application directory
	// being configured at all (spec §7: "Missing application directory:
	// skip manifest/layout/native steps silently").
	if cfg.ApkDir != "" {
		if cfg.ComputeXMLReachability {
			runManifestSeeder(scope, collab, pruneSetFromConfig(cfg))
			runLayoutSeeder(scope, tree, collab)
		}
		if cfg.AnalyzeNativeLibReachability {
			runNativeLibSeeder(scope, collab)
		}
	}

	// Step 5: reflection scanning.
	if collab.NewReflectionAnalyzer != nil {
		reflectscan.Scan(scope, collab.NewReflectionAnalyzer)
	}

	// Step 6: configured package prefixes.
	rootseed.MarkPackagePrefixes(scope, cfg.KeepPackages)

	// Step 7: serializable-supertype constructor chain.
	if collab.SerializableInterface != "" {
		rootseed.MarkSerializableChain(scope, tree, collab.SerializableInterface)
	}

	// Step 8: native-method marking.
	if err := rootseed.MarkNativeMethods(scope); err != nil {
		return fmt.Errorf("seed: native method marking: %w", err)
	}

	// Step 9: configured serde superclasses.
	rootseed.MarkSerdeSuperclasses(scope, tree, cfg.JSONSerdeSupercls)

	return nil
}

func runManifestSeeder(scope *ir.Scope, collab Collaborators, prune manifestseed.PruneSet) {
	if collab.ManifestPath == "" {
		return
	}
	f, err := os.Open(collab.ManifestPath)
	if err != nil {
		slog.Warn("seed: manifest unreadable, skipping manifest seeding", "path", collab.ManifestPath, "err", err)
		return
	}
	defer f.Close()

	info, err := manifestseed.CollectFromXML(f, collab.ApplicationPackage)
	if err != nil {
		slog.Warn("seed: manifest parse failed, skipping manifest seeding", "path", collab.ManifestPath, "err", err)
		return
	}
	manifestseed.Mark(scope, info, prune)
}

// pruneSetFromConfig translates cfg.PruneUnexportedComponents' validated
// name set into the ComponentKind-keyed set manifestseed.Mark consumes.
func pruneSetFromConfig(cfg Config) manifestseed.PruneSet {
	prune := make(manifestseed.PruneSet)
	if _, ok := cfg.PruneUnexportedComponents["activity"]; ok {
		prune[manifestseed.Activity] = struct{}{}
	}
	if _, ok := cfg.PruneUnexportedComponents["activity-alias"]; ok {
		prune[manifestseed.ActivityAlias] = struct{}{}
	}
	return prune
}

func runLayoutSeeder(scope *ir.Scope, tree *hierarchy.Tree, collab Collaborators) {
	if collab.LayoutDir == "" {
		return
	}
	info, err := layoutseed.CollectFromLayouts(collab.LayoutDir, []string{collab.LayoutConfig.HandlerAttribute})
	if err != nil {
		slog.Warn("seed: layout collection failed, skipping layout seeding", "dir", collab.LayoutDir, "err", err)
		return
	}
	layoutseed.Mark(scope, tree, info, collab.LayoutConfig)
}

func runNativeLibSeeder(scope *ir.Scope, collab Collaborators) {
	if collab.NativeLibDir == "" {
		return
	}
	names, err := rootseed.CollectNativeClassnames(collab.NativeLibDir, scope)
	if err != nil {
		slog.Warn("seed: native library scan failed, skipping native-library seeding", "dir", collab.NativeLibDir, "err", err)
		return
	}
	rootseed.MarkNativeLibraryClasses(scope, names)
}

// looksLikeClassName is the "unresolved name" check step 1 applies to
// configured/baseline annotation types: this module's IR names classes
// "Lpkg/Name;", so anything else is rejected rather than silently
// propagated into the Annotation Propagator's match set.
func looksLikeClassName(name string) bool {
	return strings.HasPrefix(name, "L") && strings.HasSuffix(name, ";")
}
