package main

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/shrinkkit/seedroots/pkg/seed"
)

const (
	configBaseName = "seedroots"
	configFileName = configBaseName + ".yaml"

	envPrefix = "SEEDROOTS"

	flagJSON    = "json"
	flagVerbose = "verbose"
	flagProgram = "program"

	// External-input flags, layered over pkg/seed.Config's nine keys.
	flagManifest              = "manifest"
	flagApplicationPackage    = "application-package"
	flagLayoutDir             = "layout-dir"
	flagNativeLibDir          = "native-lib-dir"
	flagSerializableInterface = "serializable-interface"
	flagHandlerAttribute      = "handler-attribute"
	flagBaseUIContext         = "base-ui-context"
	flagViewType              = "view-type"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".seedroots.log"
	defaultLogLevel      = "info"
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true

	defaultHandlerAttribute = "onClick"
)

var v = viper.New()

func initConfig() {
	v.SetConfigName(configBaseName)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetConfigFile(filepath.Join(".", configFileName))
	v.AutomaticEnv()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	seed.SetDefaults(v)

	v.SetDefault(flagManifest, "")
	v.SetDefault(flagApplicationPackage, "")
	v.SetDefault(flagLayoutDir, "")
	v.SetDefault(flagNativeLibDir, "")
	v.SetDefault(flagSerializableInterface, "")
	v.SetDefault(flagHandlerAttribute, defaultHandlerAttribute)
	v.SetDefault(flagBaseUIContext, "")
	v.SetDefault(flagViewType, "")

	v.SetDefault(logFilenameKey, defaultLogFilename)
	v.SetDefault(logLevelKey, defaultLogLevel)
	v.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	v.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	v.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	v.SetDefault(logCompressKey, defaultLogCompress)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			slog.Warn("seedroots: reading config file failed", "err", err)
		}
	}
}

// configureLogger points the global slog logger at a rotating log file
// (gopkg.in/natefinch/lumberjack.v2), the same way the rest of the pack's
// CLI tools keep stdout clean for the human/JSON report and push
// diagnostics to a rotated file instead.
func configureLogger(verbose bool) {
	level := parseSlogLevel(v.GetString(logLevelKey))
	if verbose {
		level = slog.LevelDebug
	}

	logWriter := &lumberjack.Logger{
		Filename:   v.GetString(logFilenameKey),
		MaxSize:    v.GetInt(logMaxSizeKey),
		MaxBackups: v.GetInt(logMaxBackupsKey),
		MaxAge:     v.GetInt(logMaxAgeKey),
		Compress:   v.GetBool(logCompressKey),
	}

	handler := slog.NewJSONHandler(logWriter, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

// bindSeedFlags registers the external-input flags and pkg/seed.Config's
// nine keys as persistent flags on cmd, then binds each one into the
// package-level viper instance so flag > env > file > default layering
// (grounded on gooze-dev-gooze's cmd/config.go) covers the whole
// configuration surface, not just --program/--json/--verbose.
func bindSeedFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()

	flags.String(flagManifest, "", "path to the AndroidManifest-shaped XML file")
	flags.String(flagApplicationPackage, "", "application package for qualifying leading-dot manifest names")
	flags.String(flagLayoutDir, "", "directory tree of layout XML resources to scan")
	flags.String(flagNativeLibDir, "", "directory of embedded native libraries (lib/*/*.so) to scan")
	flags.String(flagSerializableInterface, "", "fully-qualified name of the serializable interface in scope")
	flags.String(flagHandlerAttribute, defaultHandlerAttribute, "layout attribute naming a click-handler method")
	flags.String(flagBaseUIContext, "", "fully-qualified base type hosting click-handler methods")
	flags.String(flagViewType, "", "fully-qualified parameter type a click-handler method takes")

	flags.String(seed.KeyApkDir, "", "root directory of the input application package")
	flags.StringSlice(seed.KeyKeepPackages, nil, "class-name prefixes marked by_string with transitive subclasses")
	flags.StringSlice(seed.KeyKeepAnnotations, nil, "annotation type names that mark by_type")
	flags.StringSlice(seed.KeyKeepClassMembers, nil, "free-form class+field substrings")
	flags.StringSlice(seed.KeyKeepMethods, nil, "simple method names marked by_string")
	flags.Bool(seed.KeyComputeXMLReachability, true, "enable manifest and layout seeding")
	flags.StringSlice(seed.KeyPruneUnexportedComponents, nil, "subset of {activity, activity-alias}")
	flags.Bool(seed.KeyAnalyzeNativeLibReachability, true, "enable ELF classname seeding")
	flags.StringSlice(seed.KeyJSONSerdeSupercls, nil, "serde base types")

	for _, flagName := range []string{
		flagManifest, flagApplicationPackage, flagLayoutDir, flagNativeLibDir,
		flagSerializableInterface, flagHandlerAttribute, flagBaseUIContext, flagViewType,
		seed.KeyApkDir, seed.KeyKeepPackages, seed.KeyKeepAnnotations, seed.KeyKeepClassMembers,
		seed.KeyKeepMethods, seed.KeyComputeXMLReachability, seed.KeyPruneUnexportedComponents,
		seed.KeyAnalyzeNativeLibReachability, seed.KeyJSONSerdeSupercls,
	} {
		if err := v.BindPFlag(flagName, flags.Lookup(flagName)); err != nil {
			panic(fmt.Sprintf("seedroots: binding flag %q: %v", flagName, err))
		}
	}
}

func parseSlogLevel(value string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "":
		return slog.LevelInfo
	}
	if n, err := strconv.Atoi(value); err == nil {
		return slog.Level(n)
	}
	return slog.LevelInfo
}
