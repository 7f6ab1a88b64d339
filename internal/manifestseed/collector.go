package manifestseed

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// manifestXML mirrors the subset of AndroidManifest.xml's schema the
// seeder cares about. Grounded on
// _examples/original_source/test/unit/resources/ManifestClassesTest.cpp's
// fixture manifests. encoding/xml is stdlib: none of the retrieval pack
// carries an Android-manifest-aware XML library, and the schema here is
// fixed and small enough that a general XML decoding library would add
// nothing beyond what encoding/xml already gives us.
type manifestXML struct {
	Application struct {
		Name              string `xml:"name,attr"`
		BackupAgent       string `xml:"backupAgent,attr"`
		Activities        []activityXML   `xml:"activity"`
		ActivityAliases   []activityXML   `xml:"activity-alias"`
		Receivers         []componentXML  `xml:"receiver"`
		Services          []componentXML  `xml:"service"`
		Providers         []providerXML   `xml:"provider"`
	} `xml:"application"`
	Instrumentation []struct {
		Name string `xml:"name,attr"`
	} `xml:"instrumentation"`
}

type activityXML struct {
	Name          string       `xml:"name,attr"`
	Exported      string       `xml:"exported,attr"`
	IntentFilters []struct{}   `xml:"intent-filter"`
}

type componentXML struct {
	Name          string     `xml:"name,attr"`
	Exported      string     `xml:"exported,attr"`
	IntentFilters []struct{} `xml:"intent-filter"`
}

type providerXML struct {
	Name        string `xml:"name,attr"`
	Exported    string `xml:"exported,attr"`
	Authorities string `xml:"authorities,attr"`
}

// CollectFromXML parses an AndroidManifest.xml-shaped document into a
// ManifestClassInfo, the default collector referenced by spec §4.4's
// get_manifest_class_info. Component classnames beginning with "." are
// expanded against the application package the way Android's manifest
// merger does.
func CollectFromXML(r io.Reader, applicationPackage string) (ManifestClassInfo, error) {
	var doc struct {
		Package string `xml:"package,attr"`
		XMLName xml.Name `xml:"manifest"`
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return ManifestClassInfo{}, fmt.Errorf("manifestseed: read manifest: %w", err)
	}
	if err := xml.Unmarshal(data, &doc); err != nil {
		return ManifestClassInfo{}, fmt.Errorf("manifestseed: parse manifest: %w", err)
	}
	pkg := doc.Package
	if pkg == "" {
		pkg = applicationPackage
	}

	var parsed manifestXML
	if err := xml.Unmarshal(data, &parsed); err != nil {
		return ManifestClassInfo{}, fmt.Errorf("manifestseed: parse manifest: %w", err)
	}

	info := ManifestClassInfo{}
	if parsed.Application.Name != "" {
		info.ApplicationClasses = append(info.ApplicationClasses, qualify(parsed.Application.Name, pkg))
	}
	if parsed.Application.BackupAgent != "" {
		info.ApplicationClasses = append(info.ApplicationClasses, qualify(parsed.Application.BackupAgent, pkg))
	}
	for _, inst := range parsed.Instrumentation {
		info.InstrumentationClasses = append(info.InstrumentationClasses, qualify(inst.Name, pkg))
	}

	for _, a := range parsed.Application.Activities {
		info.Components = append(info.Components, activityTag(Activity, a, pkg))
	}
	for _, a := range parsed.Application.ActivityAliases {
		info.Components = append(info.Components, activityTag(ActivityAlias, a, pkg))
	}
	for _, c := range parsed.Application.Receivers {
		info.Components = append(info.Components, componentTag(Receiver, c, pkg))
	}
	for _, c := range parsed.Application.Services {
		info.Components = append(info.Components, componentTag(Service, c, pkg))
	}
	for _, p := range parsed.Application.Providers {
		info.Components = append(info.Components, ComponentTag{
			Kind:             Provider,
			Classname:        qualify(p.Name, pkg),
			IsExported:       p.Exported == "true",
			AuthorityClasses: splitAuthorities(p.Authorities, pkg),
		})
	}
	return info, nil
}

func activityTag(kind ComponentKind, a activityXML, pkg string) ComponentTag {
	return ComponentTag{
		Kind:             kind,
		Classname:        qualify(a.Name, pkg),
		IsExported:       a.Exported == "true",
		HasIntentFilters: len(a.IntentFilters) > 0,
	}
}

func componentTag(kind ComponentKind, c componentXML, pkg string) ComponentTag {
	return ComponentTag{
		Kind:             kind,
		Classname:        qualify(c.Name, pkg),
		IsExported:       c.Exported == "true",
		HasIntentFilters: len(c.IntentFilters) > 0,
	}
}

// qualify expands a manifest name of the form ".Foo" into "Lpkg/Foo;"
// (dots in pkg become slashes), converts a dotted fully-qualified name
// ("com.example.Foo") into "Lcom/example/Foo;", and leaves an
// already-qualified binary name ("L...;") untouched. A leading-dot name
// with no package is returned as is.
func qualify(name, pkg string) string {
	if name == "" {
		return name
	}
	if name[0] == '.' {
		if pkg == "" {
			return name
		}
		return "L" + strings.ReplaceAll(pkg+name, ".", "/") + ";"
	}
	if strings.HasPrefix(name, "L") && strings.HasSuffix(name, ";") {
		return name
	}
	return "L" + strings.ReplaceAll(name, ".", "/") + ";"
}

func splitAuthorities(authorities, pkg string) []string {
	if authorities == "" {
		return nil
	}
	var out []string
	start := 0
	for i := 0; i <= len(authorities); i++ {
		if i == len(authorities) || authorities[i] == ';' {
			if i > start {
				out = append(out, qualify(authorities[start:i], pkg))
			}
			start = i + 1
		}
	}
	return out
}
