package layoutseed

import (
	"encoding/xml"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// CollectFromLayouts walks every *.xml file under layoutDir and extracts
// the LayoutInfo the seeder needs: element tags that name a fully
// qualified class, and literal values bound to any attribute in
// attrsOfInterest. This is the default implementation of spec §6's
// collect_layout_classes_and_attributes; encoding/xml is stdlib because
// no example repo in the retrieval pack carries an Android-layout-aware
// XML library (see DESIGN.md).
func CollectFromLayouts(layoutDir string, attrsOfInterest []string) (LayoutInfo, error) {
	interesting := make(map[string]struct{}, len(attrsOfInterest))
	for _, a := range attrsOfInterest {
		interesting[a] = struct{}{}
	}

	info := LayoutInfo{AttributeBindings: make(map[string][]string)}
	seenClasses := make(map[string]struct{})

	walkErr := filepath.WalkDir(layoutDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".xml") {
			return nil
		}
		return collectFile(path, interesting, seenClasses, &info)
	})
	if walkErr != nil {
		return info, fmt.Errorf("layoutseed: walk %s: %w", layoutDir, walkErr)
	}
	return info, nil
}

func collectFile(path string, interesting map[string]struct{}, seenClasses map[string]struct{}, info *LayoutInfo) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("layoutseed: open %s: %w", path, err)
	}
	defer f.Close()
	return CollectFromReader(f, interesting, seenClasses, info)
}

// CollectFromReader parses one already-decoded layout XML document,
// merging classes and attribute bindings into info. Exposed separately
// from CollectFromLayouts so tests and callers with an in-memory document
// (already-decoded AXML, per spec §6) don't need a filesystem.
func CollectFromReader(r io.Reader, interesting map[string]struct{}, seenClasses map[string]struct{}, info *LayoutInfo) error {
	if info.AttributeBindings == nil {
		info.AttributeBindings = make(map[string][]string)
	}
	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		if cls := elementClassName(start.Name.Local); cls != "" {
			if _, dup := seenClasses[cls]; !dup {
				seenClasses[cls] = struct{}{}
				info.Classes = append(info.Classes, cls)
			}
		}

		for _, attr := range start.Attr {
			name := localAttrName(attr.Name.Local)
			if _, want := interesting[name]; !want {
				continue
			}
			info.AttributeBindings[name] = append(info.AttributeBindings[name], attr.Value)
		}
	}
}

// elementClassName converts a layout element tag into a binary class name
// when the tag looks like a fully qualified class (contains a '.'), the
// way a custom view or fragment tag would. Framework shorthand tags
// (View, LinearLayout, "include", "merge") are not qualified names and are
// skipped.
func elementClassName(tag string) string {
	if !strings.Contains(tag, ".") {
		return ""
	}
	return "L" + strings.ReplaceAll(tag, ".", "/") + ";"
}

// localAttrName strips a namespace prefix ("android:onClick" -> "onClick")
// the way Android layout attributes are conventionally qualified.
func localAttrName(name string) string {
	if idx := strings.LastIndexByte(name, ':'); idx >= 0 {
		return name[idx+1:]
	}
	return name
}
