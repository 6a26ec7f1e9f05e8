package parser

import (
	"sort"
	"strings"
)

// columnNameVariations maps each standard column type to the header
// spellings seen across mapping workbooks.
var columnNameVariations = map[string][]string{
	"canonical_name":          {"canonical name", "entity", "table", "entity field"},
	"field":                   {"field", "field name", "column", "column name"},
	"description":             {"description", "desc", "comments", "comment"},
	"type":                    {"type", "data type", "datatype"},
	"length_min":              {"length(min)", "length min", "min length", "minimum length"},
	"length_max":              {"length(max)", "length max", "max length", "maximum length", "length"},
	"format":                  {"format", "data format"},
	"enum_values":             {"enum values", "enumeration", "enum", "values", "possible values"},
	"mandatory":               {"mandatory", "required", "optional"},
	"notes":                   {"notes", "note", "remarks", "remark"},
	"business_transformation": {"business transformation", "transformation", "mapping rule", "rule"},
	"sample_data":             {"sample data", "sample", "sample data value", "example"},
	"primary_key":             {"primary key", "pk", "key"},
}

// NormalizeColumnName maps a raw header to its standard column type, or
// "" when the header is not recognized.
func NormalizeColumnName(header string) string {
	normalized := strings.ToLower(strings.TrimSpace(header))
	if normalized == "" {
		return ""
	}
	for standard, variations := range columnNameVariations {
		for _, v := range variations {
			if normalized == v {
				return standard
			}
		}
	}
	return ""
}

// ColumnLayout maps standard column types to their worksheet positions,
// split into the source and target sections.
type ColumnLayout struct {
	SourceColumns map[string]int
	TargetColumns map[string]int
	// AllHeaders maps 1-based column number to the raw header text.
	AllHeaders map[int]string
}

// SourceColumn returns the column number for a source field type.
func (l ColumnLayout) SourceColumn(kind string) (int, bool) {
	col, ok := l.SourceColumns[kind]
	return col, ok
}

// TargetColumn returns the column number for a target field type.
func (l ColumnLayout) TargetColumn(kind string) (int, bool) {
	col, ok := l.TargetColumns[kind]
	return col, ok
}

// IdentifyColumns reads the row-10 headers and assigns each recognized
// column to the source or target section. targetBoundary is the column
// where the target system name was found.
func IdentifyColumns(rows [][]string, targetBoundary int) ColumnLayout {
	layout := ColumnLayout{
		SourceColumns: make(map[string]int),
		TargetColumns: make(map[string]int),
		AllHeaders:    make(map[int]string),
	}

	maxCol := 0
	if headersRow <= len(rows) {
		maxCol = len(rows[headersRow-1])
	}
	for col := 1; col <= maxCol; col++ {
		header := cell(rows, headersRow, col)
		if len(header) >= headerMinLength {
			layout.AllHeaders[col] = header
		}
	}

	sourceCols, targetCols := detectSections(layout.AllHeaders, targetBoundary)
	inSource := toSet(sourceCols)
	inTarget := toSet(targetCols)

	for _, col := range sortedColumns(layout.AllHeaders) {
		standard := NormalizeColumnName(layout.AllHeaders[col])
		if standard == "" {
			continue
		}
		switch {
		case inSource[col]:
			if _, exists := layout.SourceColumns[standard]; !exists {
				layout.SourceColumns[standard] = col
			}
		case inTarget[col]:
			if existing, exists := layout.TargetColumns[standard]; !exists {
				layout.TargetColumns[standard] = col
			} else if standard == "description" {
				// Duplicate description-type headers on the target side:
				// a "Comments" column wins over a plain "Description".
				existingHeader := strings.ToLower(layout.AllHeaders[existing])
				currentHeader := strings.ToLower(layout.AllHeaders[col])
				if strings.Contains(currentHeader, "comment") && !strings.Contains(existingHeader, "comment") {
					layout.TargetColumns[standard] = col
				}
			}
		}
	}

	return layout
}

// detectSections splits header columns into source and target sections.
// Duplicated column types mark the section boundary: the first occurrence
// belongs to the source, later occurrences to the target. Remaining
// columns fall back to position relative to the target-system column,
// unless a wide empty gap pushes them back to the source side.
func detectSections(headers map[int]string, targetBoundary int) (source, target []int) {
	byType := make(map[string][]int)
	for _, col := range sortedColumns(headers) {
		if standard := NormalizeColumnName(headers[col]); standard != "" {
			byType[standard] = append(byType[standard], col)
		}
	}

	assigned := make(map[int]bool)
	for _, cols := range byType {
		if len(cols) >= 2 {
			source = append(source, cols[0])
			target = append(target, cols[1:]...)
			assigned[cols[0]] = true
			for _, c := range cols[1:] {
				assigned[c] = true
			}
		}
	}

	for _, col := range sortedColumns(headers) {
		if assigned[col] {
			continue
		}
		if col < targetBoundary {
			source = append(source, col)
			continue
		}
		if emptyColumnsBefore(col, headers, targetBoundary) <= maxSectionGap {
			target = append(target, col)
		} else {
			source = append(source, col)
		}
	}

	sort.Ints(source)
	sort.Ints(target)
	return source, target
}

func emptyColumnsBefore(col int, headers map[int]string, start int) int {
	count := 0
	for c := start; c < col; c++ {
		if _, ok := headers[c]; !ok {
			count++
		}
	}
	return count
}

func sortedColumns(headers map[int]string) []int {
	cols := make([]int, 0, len(headers))
	for col := range headers {
		cols = append(cols, col)
	}
	sort.Ints(cols)
	return cols
}

func toSet(cols []int) map[int]bool {
	set := make(map[int]bool, len(cols))
	for _, c := range cols {
		set[c] = true
	}
	return set
}
