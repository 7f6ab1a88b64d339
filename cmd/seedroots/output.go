package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"

	"github.com/shrinkkit/seedroots/pkg/ir"
)

// classSummary is one row of the human/JSON report: a class and the
// reachability state seeding left it in.
type classSummary struct {
	Name              string `json:"name"`
	IsRoot            bool   `json:"is_root"`
	RootReason        string `json:"root_reason,omitempty"`
	ReferencedByType  bool   `json:"referenced_by_type"`
	ReferencedByStr   bool   `json:"referenced_by_string"`
	ReferencedByXML   bool   `json:"referenced_by_resource_xml"`
	IsSerde           bool   `json:"is_serde"`
	AllowObfuscation  bool   `json:"allow_obfuscation"`
	KeepCount         int64  `json:"keep_count"`
}

// Report is the top-level JSON document --json emits.
type Report struct {
	Classes []classSummary `json:"classes"`
	Stats   struct {
		TotalClasses int `json:"total_classes"`
		RootClasses  int `json:"root_classes"`
	} `json:"stats"`
}

func buildReport(scope *ir.Scope) *Report {
	r := &Report{}
	for _, cls := range scope.Classes() {
		s := cls.State
		summary := classSummary{
			Name:             cls.Name,
			IsRoot:           s.IsRoot(),
			ReferencedByType: s.ReferencedByType(),
			ReferencedByStr:  s.ReferencedByString(),
			ReferencedByXML:  s.ReferencedByXML(),
			IsSerde:          s.IsSerde(),
			AllowObfuscation: s.AllowObfuscation(),
			KeepCount:        s.KeepCount(),
		}
		if s.IsRoot() {
			summary.RootReason = s.RootReason().String()
		}
		r.Classes = append(r.Classes, summary)
		r.Stats.TotalClasses++
		if s.IsRoot() {
			r.Stats.RootClasses++
		}
	}
	sort.Slice(r.Classes, func(i, j int) bool { return r.Classes[i].Name < r.Classes[j].Name })
	return r
}

func formatJSONReport(r *Report) (string, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling json report: %w", err)
	}
	return string(data), nil
}

var headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))

func formatTextReport(r *Report) string {
	var buf bytes.Buffer

	buf.WriteString(headerStyle.Render(fmt.Sprintf("seedroots: %d/%d classes rooted", r.Stats.RootClasses, r.Stats.TotalClasses)))
	buf.WriteString("\n\n")

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Class", "Root", "Reason", "Obfuscatable", "Keep Count"})
	table.SetBorder(false)
	table.SetCenterSeparator("")

	for _, c := range r.Classes {
		if !c.IsRoot && c.KeepCount == 0 {
			continue
		}
		table.Append([]string{
			c.Name,
			fmt.Sprintf("%v", c.IsRoot),
			c.RootReason,
			fmt.Sprintf("%v", c.AllowObfuscation),
			fmt.Sprintf("%d", c.KeepCount),
		})
	}
	table.Render()

	return buf.String()
}
