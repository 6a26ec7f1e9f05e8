package models

// SheetMetadata describes a single worksheet within one workbook.
type SheetMetadata struct {
	// SheetName is the physical sheet name as stored in the workbook,
	// subject to the Excel name-length ceiling.
	SheetName string `json:"sheet_name"`
	// SourceSystem is the system name detected for the source section.
	SourceSystem string `json:"source_system,omitempty"`
	// TargetSystem is the system name detected for the target section.
	TargetSystem string `json:"target_system,omitempty"`
	// TargetSystemColumn is the 1-based column where the target system
	// name was found.
	TargetSystemColumn int `json:"target_system_column,omitempty"`
	// Hidden reports whether the worksheet is hidden.
	Hidden bool `json:"hidden,omitempty"`
	// MaxRow and MaxColumn are the worksheet's structural bounds.
	MaxRow    int `json:"max_row,omitempty"`
	MaxColumn int `json:"max_column,omitempty"`
}

// SheetAnalysis holds the extracted contents of one worksheet: its
// metadata and the ordered mapping records, plus any extraction errors.
type SheetAnalysis struct {
	Metadata SheetMetadata   `json:"metadata"`
	Mappings []MappingRecord `json:"mappings,omitempty"`
	Errors   []string        `json:"errors,omitempty"`
}

// SheetName returns the physical sheet name.
func (a *SheetAnalysis) SheetName() string {
	return a.Metadata.SheetName
}

// AddError records an extraction error for this sheet.
func (a *SheetAnalysis) AddError(msg string) {
	a.Errors = append(a.Errors, msg)
}

// MappingCount returns the number of valid mappings in the sheet.
func (a *SheetAnalysis) MappingCount() int {
	n := 0
	for i := range a.Mappings {
		if a.Mappings[i].IsValid() {
			n++
		}
	}
	return n
}
