package parser

import (
	"strings"

	"github.com/sujitpursuit/exceldiff/pkg/exceldiff/models"
)

// ExtractSheetMetadata reads structural bounds and system names from a
// sheet's rows. The source system sits in column A of the system-names
// row; the target system is the first non-empty cell after it.
func ExtractSheetMetadata(rows [][]string, sheetName string) models.SheetMetadata {
	meta := models.SheetMetadata{
		SheetName: sheetName,
		MaxRow:    len(rows),
	}
	for _, row := range rows {
		if len(row) > meta.MaxColumn {
			meta.MaxColumn = len(row)
		}
	}

	meta.SourceSystem = cell(rows, systemNamesRow, sourceSystemColumn)

	meta.TargetSystemColumn = sourceSystemColumn + 1
	limit := systemNameSearchColumns
	if meta.MaxColumn < limit {
		limit = meta.MaxColumn
	}
	for col := sourceSystemColumn + 1; col <= limit; col++ {
		value := cell(rows, systemNamesRow, col)
		if len(value) >= systemNameMinLength {
			meta.TargetSystem = value
			meta.TargetSystemColumn = col
			break
		}
	}

	return meta
}

// cleanValue trims a raw cell value for comparison-safe storage.
func cleanValue(v string) string {
	return strings.TrimSpace(v)
}
