// Package models defines data structures for mapping workbook comparison.
package models

import "strings"

// IDDelimiter separates identity key segments. Multi-character so it cannot
// collide with worksheet data.
const IDDelimiter = "||@@||"

// Identity key tier prefixes. One-sided rows get their own tier so they can
// never collide with a complete row that shares the populated side.
const (
	tierComplete   = "COMPLETE"
	tierSourceOnly = "SOURCE_ONLY"
	tierTargetOnly = "TARGET_ONLY"
	tierPartial    = "PARTIAL"

	blankSegment = "BLANK"
)

// MappingRecord represents a single source-to-target field mapping row
// extracted from a worksheet.
type MappingRecord struct {
	// SourceSystem is the system name the source section belongs to.
	SourceSystem string `json:"source_system,omitempty"`
	// SourceCanonical is the source entity/canonical name.
	SourceCanonical string `json:"source_canonical"`
	// SourceField is the source field name.
	SourceField string `json:"source_field"`
	// TargetSystem is the system name the target section belongs to.
	TargetSystem string `json:"target_system,omitempty"`
	// TargetCanonical is the target entity/canonical name.
	TargetCanonical string `json:"target_canonical"`
	// TargetField is the target field name.
	TargetField string `json:"target_field"`
	// UniqueID is the derived identity key. See ComputeUniqueID.
	UniqueID string `json:"unique_id"`
	// AllFields holds every other named column value for this row.
	AllFields map[string]string `json:"all_fields,omitempty"`
	// RowNumber is the 1-based physical spreadsheet row.
	RowNumber int `json:"row_number"`
}

// NewMappingRecord creates a record with its identity key populated.
func NewMappingRecord(sourceCanonical, sourceField, targetCanonical, targetField string) *MappingRecord {
	m := &MappingRecord{
		SourceCanonical: sourceCanonical,
		SourceField:     sourceField,
		TargetCanonical: targetCanonical,
		TargetField:     targetField,
	}
	m.RefreshUniqueID()
	return m
}

// SetIdentity replaces the identity-contributing fields and recomputes the
// identity key so it is never stale.
func (m *MappingRecord) SetIdentity(sourceCanonical, sourceField, targetCanonical, targetField string) {
	m.SourceCanonical = sourceCanonical
	m.SourceField = sourceField
	m.TargetCanonical = targetCanonical
	m.TargetField = targetField
	m.RefreshUniqueID()
}

// RefreshUniqueID recomputes UniqueID from the current identity fields.
func (m *MappingRecord) RefreshUniqueID() {
	m.UniqueID = m.ComputeUniqueID()
}

// ComputeUniqueID derives the identity key from the trimmed source and
// target canonical+field values. Two records denote the same mapping iff
// their keys are equal; row position never contributes.
func (m *MappingRecord) ComputeUniqueID() string {
	sc := strings.TrimSpace(m.SourceCanonical)
	sf := strings.TrimSpace(m.SourceField)
	tc := strings.TrimSpace(m.TargetCanonical)
	tf := strings.TrimSpace(m.TargetField)

	sourceComplete := sc != "" && sf != ""
	targetComplete := tc != "" && tf != ""

	switch {
	case sourceComplete && targetComplete:
		return join(tierComplete, sc, sf, tc, tf)
	case sourceComplete:
		return join(tierSourceOnly, sc, sf, blankSegment, blankSegment)
	case targetComplete:
		return join(tierTargetOnly, blankSegment, blankSegment, tc, tf)
	default:
		return join(tierPartial, sc, sf, tc, tf)
	}
}

// IsValid reports whether the record carries enough identity data to take
// part in a comparison. One complete side suffices; otherwise both sides
// must have at least some data.
func (m *MappingRecord) IsValid() bool {
	sourceComplete := m.SourceCanonical != "" && m.SourceField != ""
	targetComplete := m.TargetCanonical != "" && m.TargetField != ""
	if sourceComplete || targetComplete {
		return true
	}
	return (m.SourceCanonical != "" || m.SourceField != "") &&
		(m.TargetCanonical != "" || m.TargetField != "")
}

func join(segments ...string) string {
	return strings.Join(segments, IDDelimiter)
}
