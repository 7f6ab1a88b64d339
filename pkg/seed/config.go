// Package seed implements the Orchestrator (spec §4.8): the single
// composite entrypoint, init_reachable, that runs every root seeder over
// a program scope in the order spec §4.8 specifies.
package seed

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config is the hierarchical configuration record spec §6 describes. It
// is populated from a *viper.Viper so callers get the pack's usual
// flags>env>file>defaults layering (grounded on gooze-dev-gooze's
// cmd/config.go) without this package depending on cobra or any CLI
// concern.
type Config struct {
	ApkDir                        string
	KeepPackages                  []string
	KeepAnnotations               []string
	KeepClassMembers              []string
	KeepMethods                   []string
	ComputeXMLReachability        bool
	PruneUnexportedComponents     map[string]struct{}
	AnalyzeNativeLibReachability  bool
	JSONSerdeSupercls             []string
}

// Config keys, matching spec §6's table exactly.
const (
	KeyApkDir                        = "apk_dir"
	KeyKeepPackages                   = "keep_packages"
	KeyKeepAnnotations                = "keep_annotations"
	KeyKeepClassMembers               = "keep_class_members"
	KeyKeepMethods                    = "keep_methods"
	KeyComputeXMLReachability         = "compute_xml_reachability"
	KeyPruneUnexportedComponents      = "prune_unexported_components"
	KeyAnalyzeNativeLibReachability   = "analyze_native_lib_reachability"
	KeyJSONSerdeSupercls              = "json_serde_supercls"
)

// validPruneComponents is the enum spec §4.4/§6 allows in
// prune_unexported_components. A configured name outside this set is a
// programmer invariant violation: "configuration is authored by the
// operator" (spec §7), so LoadConfig rejects it rather than silently
// dropping it.
var validPruneComponents = map[string]struct{}{
	"activity":       {},
	"activity-alias": {},
}

// SetDefaults installs spec §6's default column onto v. Call this before
// binding flags/env so config-file and env values still override it.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyApkDir, "")
	v.SetDefault(KeyKeepPackages, []string{})
	v.SetDefault(KeyKeepAnnotations, []string{})
	v.SetDefault(KeyKeepClassMembers, []string{})
	v.SetDefault(KeyKeepMethods, []string{})
	v.SetDefault(KeyComputeXMLReachability, true)
	v.SetDefault(KeyPruneUnexportedComponents, []string{})
	v.SetDefault(KeyAnalyzeNativeLibReachability, true)
	v.SetDefault(KeyJSONSerdeSupercls, []string{})
}

// LoadConfig reads the nine keys spec §6 defines from v. It returns an
// error only for the programmer-invariant violation spec §7 calls out: a
// prune_unexported_components entry outside {activity, activity-alias}.
func LoadConfig(v *viper.Viper) (Config, error) {
	prune := make(map[string]struct{})
	for _, name := range v.GetStringSlice(KeyPruneUnexportedComponents) {
		if _, ok := validPruneComponents[name]; !ok {
			return Config{}, fmt.Errorf("seed: prune_unexported_components: %q is not one of activity, activity-alias", name)
		}
		prune[name] = struct{}{}
	}

	return Config{
		ApkDir:                        v.GetString(KeyApkDir),
		KeepPackages:                  v.GetStringSlice(KeyKeepPackages),
		KeepAnnotations:               v.GetStringSlice(KeyKeepAnnotations),
		KeepClassMembers:              v.GetStringSlice(KeyKeepClassMembers),
		KeepMethods:                   v.GetStringSlice(KeyKeepMethods),
		ComputeXMLReachability:        v.GetBool(KeyComputeXMLReachability),
		PruneUnexportedComponents:     prune,
		AnalyzeNativeLibReachability:  v.GetBool(KeyAnalyzeNativeLibReachability),
		JSONSerdeSupercls:             v.GetStringSlice(KeyJSONSerdeSupercls),
	}, nil
}
