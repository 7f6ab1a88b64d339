package rootseed

import (
	"debug/elf"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/shrinkkit/seedroots/pkg/ir"
)

// minStringLen is the shortest run of printable bytes worth considering a
// candidate class name when scanning an ELF string table. Below this,
// coincidental matches against short field/class names dominate.
const minStringLen = 6

// CollectNativeClassnames implements spec §6's get_native_classes(apk_dir):
// it scans every lib/*/*.so under apkDir for embedded string-table entries
// that resolve to a class name in scope, the way JNI-registered native
// methods and JNI_OnLoad lookups embed the slash-qualified class name they
// call back into. debug/elf is stdlib because no example repo in the
// retrieval pack ships an ELF reader (see DESIGN.md).
func CollectNativeClassnames(apkDir string, scope *ir.Scope) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(apkDir, "lib", "*", "*.so"))
	if err != nil {
		return nil, fmt.Errorf("rootseed: glob native libraries: %w", err)
	}

	seen := make(map[string]struct{})
	var out []string
	for _, path := range matches {
		names, err := scanLibraryStrings(path, scope)
		if err != nil {
			slog.Warn("rootseed: skipping malformed native library", "path", path, "error", err)
			continue
		}
		for _, n := range names {
			if _, dup := seen[n]; dup {
				continue
			}
			seen[n] = struct{}{}
			out = append(out, n)
		}
	}
	return out, nil
}

func scanLibraryStrings(path string, scope *ir.Scope) ([]string, error) {
	f, err := elf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var out []string
	for _, sec := range f.Sections {
		if sec.Type == elf.SHT_NOBITS || sec.Size == 0 {
			continue
		}
		data, err := sec.Data()
		if err != nil {
			continue
		}
		for _, s := range extractStrings(data) {
			if cls := resolveClassString(s, scope); cls != "" {
				out = append(out, cls)
			}
		}
	}
	return out, nil
}

// extractStrings pulls NUL-delimited printable-ASCII runs of at least
// minStringLen bytes out of data, mirroring what `strings` does to a
// binary's string table.
func extractStrings(data []byte) []string {
	var out []string
	start := -1
	for i, b := range data {
		if b >= 0x20 && b < 0x7f {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 && i-start >= minStringLen {
			out = append(out, string(data[start:i]))
		}
		start = -1
	}
	if start >= 0 && len(data)-start >= minStringLen {
		out = append(out, string(data[start:]))
	}
	return out
}

// resolveClassString checks whether a candidate string, in either its
// slash-qualified JNI form ("com/example/Foo") or dotted Java form
// ("com.example.Foo"), names a class in scope. Returns the binary class
// name ("Lcom/example/Foo;") on a hit, or "" otherwise.
func resolveClassString(s string, scope *ir.Scope) string {
	if !strings.ContainsAny(s, "./") {
		return ""
	}
	candidate := "L" + strings.ReplaceAll(s, ".", "/") + ";"
	if _, ok := scope.Lookup(candidate); ok {
		return candidate
	}
	return ""
}

// MarkNativeLibraryClasses sets referenced_by_string on each resolved
// class (and its members) named by classNames, the classname set
// CollectNativeClassnames produces (spec §4.7 "Native-library
// classnames").
func MarkNativeLibraryClasses(scope *ir.Scope, classNames []string) {
	for _, name := range classNames {
		cls, ok := scope.Lookup(name)
		if !ok {
			slog.Warn("rootseed: dangling native-library class reference", "classname", name)
			continue
		}
		markByStringWithMembers(cls)
	}
}
