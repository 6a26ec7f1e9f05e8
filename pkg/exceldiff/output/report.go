// Package output renders comparison results into report documents.
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/sujitpursuit/exceldiff/pkg/exceldiff/models"
)

// Report is the JSON report document consumed by downstream viewers.
type Report struct {
	ReportMetadata   ReportMetadata   `json:"report_metadata"`
	FileInformation  FileInformation  `json:"file_information"`
	ExecutiveSummary ExecutiveSummary `json:"executive_summary"`
	DetailedChanges  DetailedChanges  `json:"detailed_changes"`
	Errors           []string         `json:"errors,omitempty"`
}

// ReportMetadata describes the report itself.
type ReportMetadata struct {
	Title               string `json:"title"`
	Subtitle            string `json:"subtitle"`
	GeneratedBy         string `json:"generated_by"`
	GenerationTimestamp string `json:"generation_timestamp"`
}

// FileInfo identifies one input workbook.
type FileInfo struct {
	Name         string `json:"name"`
	Path         string `json:"path"`
	LastModified string `json:"last_modified,omitempty"`
}

// FileInformation holds both input workbooks.
type FileInformation struct {
	OriginalFile FileInfo `json:"original_file"`
	ModifiedFile FileInfo `json:"modified_file"`
}

// ExecutiveSummary carries the headline statistics.
type ExecutiveSummary struct {
	TotalChanges int          `json:"total_changes"`
	Tabs         CountSummary `json:"tabs"`
	Mappings     CountSummary `json:"mappings"`
}

// CountSummary is a before/after count with per-status deltas.
type CountSummary struct {
	OriginalCount int `json:"original_count"`
	ModifiedCount int `json:"modified_count"`
	Added         int `json:"added"`
	Deleted       int `json:"deleted"`
	Modified      int `json:"modified"`
	Unchanged     int `json:"unchanged,omitempty"`
}

// DetailedChanges splits tabs into changed and unchanged sets.
type DetailedChanges struct {
	ChangedTabs   []TabChanges   `json:"changed_tabs"`
	UnchangedTabs []UnchangedTab `json:"unchanged_tabs"`
}

// UnchangedTab names a tab with no detected changes.
type UnchangedTab struct {
	TabName string `json:"tab_name"`
	Status  string `json:"status"`
}

// TabChanges is the per-tab detailed change block.
type TabChanges struct {
	TabName        string                        `json:"tab_name"`
	PhysicalNameV1 string                        `json:"physical_name_v1,omitempty"`
	PhysicalNameV2 string                        `json:"physical_name_v2,omitempty"`
	Status         models.TabStatus              `json:"status"`
	ChangeType     string                        `json:"change_type"`
	ChangeSummary  ChangeSummary                 `json:"change_summary"`
	Added          []models.MappingRecord        `json:"added_mappings"`
	Deleted        []models.MappingRecord        `json:"deleted_mappings"`
	Modified       []models.MappingChange        `json:"modified_mappings"`
	Metadata       map[string]models.FieldChange `json:"metadata_changes,omitempty"`
}

// ChangeSummary is the per-tab change count block with a readable label.
type ChangeSummary struct {
	Added       int    `json:"added"`
	Deleted     int    `json:"deleted"`
	Modified    int    `json:"modified"`
	Description string `json:"description"`
}

// BuildReport assembles the report document from a comparison result.
// Pass an empty title to use the default.
func BuildReport(result *models.ComparisonResult, title string) *Report {
	if title == "" {
		title = "Excel Source-Target Mapping Comparison Report"
	}

	report := &Report{
		ReportMetadata: ReportMetadata{
			Title:               title,
			Subtitle:            "Detailed analysis of changes between workbook versions",
			GeneratedBy:         "exceldiff",
			GenerationTimestamp: time.Now().Format(time.RFC3339),
		},
		FileInformation: FileInformation{
			OriginalFile: fileInfo(result.File1),
			ModifiedFile: fileInfo(result.File2),
		},
		ExecutiveSummary: executiveSummary(result.Summary),
		DetailedChanges:  detailedChanges(result),
		Errors:           result.Errors,
	}
	return report
}

func fileInfo(path string) FileInfo {
	info := FileInfo{
		Name: filepath.Base(path),
		Path: path,
	}
	if stat, err := os.Stat(path); err == nil {
		info.LastModified = stat.ModTime().Format(time.RFC3339)
	}
	return info
}

func executiveSummary(s models.ComparisonSummary) ExecutiveSummary {
	return ExecutiveSummary{
		TotalChanges: s.TabsAdded + s.TabsDeleted + s.TabsModified +
			s.MappingsAdded + s.MappingsDeleted + s.MappingsModified,
		Tabs: CountSummary{
			OriginalCount: s.TotalTabsV1,
			ModifiedCount: s.TotalTabsV2,
			Added:         s.TabsAdded,
			Deleted:       s.TabsDeleted,
			Modified:      s.TabsModified,
			Unchanged:     s.TabsUnchanged,
		},
		Mappings: CountSummary{
			OriginalCount: s.TotalMappingsV1,
			ModifiedCount: s.TotalMappingsV2,
			Added:         s.MappingsAdded,
			Deleted:       s.MappingsDeleted,
			Modified:      s.MappingsModified,
		},
	}
}

func detailedChanges(result *models.ComparisonResult) DetailedChanges {
	changes := DetailedChanges{
		ChangedTabs:   []TabChanges{},
		UnchangedTabs: []UnchangedTab{},
	}

	names := make([]string, 0, len(result.TabComparisons))
	for name := range result.TabComparisons {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		tc := result.TabComparisons[name]
		if !tc.HasChanges() {
			changes.UnchangedTabs = append(changes.UnchangedTabs, UnchangedTab{
				TabName: name,
				Status:  string(models.StatusUnchanged),
			})
			continue
		}
		changes.ChangedTabs = append(changes.ChangedTabs, TabChanges{
			TabName:        name,
			PhysicalNameV1: tc.PhysicalNameV1,
			PhysicalNameV2: tc.PhysicalNameV2,
			Status:         tc.Status,
			ChangeType:     changeType(tc),
			ChangeSummary: ChangeSummary{
				Added:       len(tc.AddedMappings),
				Deleted:     len(tc.DeletedMappings),
				Modified:    len(tc.ModifiedMappings),
				Description: changeDescription(tc),
			},
			Added:    tc.AddedMappings,
			Deleted:  tc.DeletedMappings,
			Modified: tc.ModifiedMappings,
			Metadata: tc.MetadataChanges,
		})
	}

	return changes
}

func changeType(tc *models.TabComparison) string {
	added, deleted, modified := len(tc.AddedMappings), len(tc.DeletedMappings), len(tc.ModifiedMappings)
	switch {
	case added > 0 && deleted == 0 && modified == 0:
		return "additions_only"
	case added == 0 && deleted > 0 && modified == 0:
		return "deletions_only"
	case added == 0 && deleted == 0 && modified > 0:
		return "modifications_only"
	default:
		return "mixed"
	}
}

func changeDescription(tc *models.TabComparison) string {
	var parts []string
	if n := len(tc.AddedMappings); n > 0 {
		parts = append(parts, fmt.Sprintf("%d %s added", n, plural(n)))
	}
	if n := len(tc.DeletedMappings); n > 0 {
		parts = append(parts, fmt.Sprintf("%d %s deleted", n, plural(n)))
	}
	if n := len(tc.ModifiedMappings); n > 0 {
		parts = append(parts, fmt.Sprintf("%d %s modified", n, plural(n)))
	}
	if len(parts) == 0 {
		return "metadata changes only"
	}
	result := parts[0]
	for _, p := range parts[1:] {
		result += ", " + p
	}
	return result
}

func plural(n int) string {
	if n == 1 {
		return "mapping"
	}
	return "mappings"
}
