package models

import "time"

// TabStatus classifies a per-sheet comparison outcome.
type TabStatus string

const (
	StatusAdded     TabStatus = "added"
	StatusDeleted   TabStatus = "deleted"
	StatusModified  TabStatus = "modified"
	StatusUnchanged TabStatus = "unchanged"
)

// FieldChange holds the before/after values of one field.
type FieldChange struct {
	Old string `json:"old"`
	New string `json:"new"`
}

// MappingChange records a field-modified mapping pair. It exists only when
// at least one field differs; identical matched records are never
// represented.
type MappingChange struct {
	// Old is the record from file 1, New the record from file 2.
	Old MappingRecord `json:"old"`
	New MappingRecord `json:"new"`
	// FieldChanges maps field name to its before/after values, original
	// casing preserved.
	FieldChanges map[string]FieldChange `json:"field_changes"`
}

// AddFieldChange records a change to a single field.
func (c *MappingChange) AddFieldChange(field, oldValue, newValue string) {
	if c.FieldChanges == nil {
		c.FieldChanges = make(map[string]FieldChange)
	}
	c.FieldChanges[field] = FieldChange{Old: oldValue, New: newValue}
}

// TabComparison is the diff result for a single logical sheet.
type TabComparison struct {
	// LogicalName identifies the sheet independently of versioned or
	// truncated physical names.
	LogicalName string `json:"logical_name"`
	// PhysicalNameV1/V2, VersionV1/V2 and TruncatedMatch carry the
	// identity-resolution metadata for report renderers.
	PhysicalNameV1 string    `json:"physical_name_v1,omitempty"`
	PhysicalNameV2 string    `json:"physical_name_v2,omitempty"`
	VersionV1      int       `json:"version_v1,omitempty"`
	VersionV2      int       `json:"version_v2,omitempty"`
	TruncatedMatch bool      `json:"truncated_match,omitempty"`
	Status         TabStatus `json:"status"`

	AddedMappings    []MappingRecord `json:"added_mappings,omitempty"`
	DeletedMappings  []MappingRecord `json:"deleted_mappings,omitempty"`
	ModifiedMappings []MappingChange `json:"modified_mappings,omitempty"`

	// MetadataChanges records sheet-level changes such as a renamed
	// source or target system.
	MetadataChanges map[string]FieldChange `json:"metadata_changes,omitempty"`

	SourceSystem string `json:"source_system,omitempty"`
	TargetSystem string `json:"target_system,omitempty"`
}

// HasChanges reports whether the tab differs in any way between versions.
func (t *TabComparison) HasChanges() bool {
	return len(t.AddedMappings) > 0 ||
		len(t.DeletedMappings) > 0 ||
		len(t.ModifiedMappings) > 0 ||
		len(t.MetadataChanges) > 0
}

// ChangeSummary returns per-category change counts.
func (t *TabComparison) ChangeSummary() map[string]int {
	return map[string]int{
		"added":    len(t.AddedMappings),
		"deleted":  len(t.DeletedMappings),
		"modified": len(t.ModifiedMappings),
	}
}

// ComparisonSummary holds workbook-level statistics.
type ComparisonSummary struct {
	TotalTabsV1      int `json:"total_tabs_v1"`
	TotalTabsV2      int `json:"total_tabs_v2"`
	TabsAdded        int `json:"tabs_added"`
	TabsDeleted      int `json:"tabs_deleted"`
	TabsModified     int `json:"tabs_modified"`
	TabsUnchanged    int `json:"tabs_unchanged"`
	TotalMappingsV1  int `json:"total_mappings_v1"`
	TotalMappingsV2  int `json:"total_mappings_v2"`
	MappingsAdded    int `json:"total_mappings_added"`
	MappingsDeleted  int `json:"total_mappings_deleted"`
	MappingsModified int `json:"total_mappings_modified"`
	// Timestamp is when the comparison ran, RFC 3339.
	Timestamp string `json:"comparison_timestamp"`
}

// ComparisonResult is the complete diff between two workbooks.
type ComparisonResult struct {
	File1          string                    `json:"file1"`
	File2          string                    `json:"file2"`
	Summary        ComparisonSummary         `json:"summary"`
	TabComparisons map[string]*TabComparison `json:"tab_comparisons"`
	// Errors lists non-fatal processing failures. A result with errors is
	// still renderable.
	Errors []string `json:"errors,omitempty"`
}

// NewComparisonResult creates an empty result for the given inputs.
func NewComparisonResult(file1, file2 string) *ComparisonResult {
	return &ComparisonResult{
		File1:          file1,
		File2:          file2,
		TabComparisons: make(map[string]*TabComparison),
		Summary:        ComparisonSummary{Timestamp: time.Now().Format(time.RFC3339)},
	}
}

// AddError appends a non-fatal processing error.
func (r *ComparisonResult) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
}

// HasErrors reports whether any processing errors were recorded.
func (r *ComparisonResult) HasErrors() bool { return len(r.Errors) > 0 }

// TabsByStatus returns all tab comparisons with the given status.
func (r *ComparisonResult) TabsByStatus(status TabStatus) []*TabComparison {
	var out []*TabComparison
	for _, tc := range r.TabComparisons {
		if tc.Status == status {
			out = append(out, tc)
		}
	}
	return out
}

// ChangedTabs returns all tab comparisons with changes.
func (r *ComparisonResult) ChangedTabs() []*TabComparison {
	var out []*TabComparison
	for _, tc := range r.TabComparisons {
		if tc.HasChanges() {
			out = append(out, tc)
		}
	}
	return out
}
