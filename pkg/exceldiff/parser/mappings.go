package parser

import (
	"strconv"
	"strings"

	"github.com/sujitpursuit/exceldiff/pkg/exceldiff/models"
)

// ExtractMappings reads every data row of a sheet into mapping records.
// Rows without meaningful data are skipped; RowNumber keeps the 1-based
// physical position so reports can point back into the spreadsheet.
func ExtractMappings(rows [][]string, meta models.SheetMetadata, layout ColumnLayout) []models.MappingRecord {
	var mappings []models.MappingRecord

	for rowNum := dataStartRow; rowNum <= meta.MaxRow; rowNum++ {
		record, ok := extractRow(rows, rowNum, meta, layout)
		if ok && record.IsValid() {
			mappings = append(mappings, *record)
		}
	}

	return mappings
}

func extractRow(rows [][]string, rowNum int, meta models.SheetMetadata, layout ColumnLayout) (*models.MappingRecord, bool) {
	record := &models.MappingRecord{
		SourceSystem: meta.SourceSystem,
		TargetSystem: meta.TargetSystem,
		RowNumber:    rowNum,
		AllFields:    make(map[string]string),
	}

	var sourceCanonical, sourceField, targetCanonical, targetField string
	if col, ok := layout.SourceColumn("canonical_name"); ok {
		sourceCanonical = cell(rows, rowNum, col)
	}
	if col, ok := layout.SourceColumn("field"); ok {
		sourceField = cell(rows, rowNum, col)
	}
	if col, ok := layout.TargetColumn("canonical_name"); ok {
		targetCanonical = cell(rows, rowNum, col)
	}
	if col, ok := layout.TargetColumn("field"); ok {
		targetField = cell(rows, rowNum, col)
	}

	// Carry every mapped column under its original header, prefixed by
	// section, so unknown columns still take part in field-level diffing.
	for _, col := range layout.SourceColumns {
		header := headerOr(layout, col)
		record.AllFields[fieldKey("source", header)] = cell(rows, rowNum, col)
	}
	for _, col := range layout.TargetColumns {
		header := headerOr(layout, col)
		record.AllFields[fieldKey("target", header)] = cell(rows, rowNum, col)
	}

	// Sets identity fields and derives the key in one step so the key is
	// never stale.
	record.SetIdentity(sourceCanonical, sourceField, targetCanonical, targetField)

	if !hasMeaningfulData(record.AllFields) {
		return nil, false
	}
	return record, true
}

func headerOr(layout ColumnLayout, col int) string {
	if header, ok := layout.AllHeaders[col]; ok {
		return header
	}
	return "col_" + strconv.Itoa(col)
}

// fieldKey builds a stable attribute-bag key from a section prefix and
// the original header text.
func fieldKey(prefix, header string) string {
	key := strings.ToLower(header)
	key = strings.ReplaceAll(key, " ", "_")
	key = strings.ReplaceAll(key, "(", "")
	key = strings.ReplaceAll(key, ")", "")
	return prefix + "_" + key
}

func hasMeaningfulData(fields map[string]string) bool {
	nonEmpty := 0
	for _, v := range fields {
		if strings.TrimSpace(v) != "" {
			nonEmpty++
		}
	}
	return nonEmpty >= minMappingFields
}
