package models

// LogicalSheetMapping links one logical sheet identity to the physical
// sheet names chosen from each file. Either side may be absent (empty
// name, version 0) when the base name exists in only one file.
type LogicalSheetMapping struct {
	// LogicalName is the canonical base name shared by both sides.
	LogicalName string `json:"logical_name"`
	// PhysicalNameV1 is the representative physical name from file 1.
	PhysicalNameV1 string `json:"physical_name_v1,omitempty"`
	// PhysicalNameV2 is the representative physical name from file 2.
	PhysicalNameV2 string `json:"physical_name_v2,omitempty"`
	// VersionV1 and VersionV2 are the detected version suffixes of the
	// chosen representatives (1 when no suffix is present).
	VersionV1 int `json:"version_v1,omitempty"`
	VersionV2 int `json:"version_v2,omitempty"`
	// TruncatedMatch reports whether truncation matching was needed to
	// group the two sides.
	TruncatedMatch bool `json:"truncated_match,omitempty"`
	// SkippedV1 and SkippedV2 list same-file physical names excluded as
	// stale lower versions of the chosen representative.
	SkippedV1 []string `json:"skipped_v1,omitempty"`
	SkippedV2 []string `json:"skipped_v2,omitempty"`
}

// InFile1 reports whether file 1 contributes a physical sheet.
func (l LogicalSheetMapping) InFile1() bool { return l.PhysicalNameV1 != "" }

// InFile2 reports whether file 2 contributes a physical sheet.
func (l LogicalSheetMapping) InFile2() bool { return l.PhysicalNameV2 != "" }
