// Package parser turns raw xlsx worksheets into sheet analyses the
// comparison core consumes: sheet metadata plus ordered mapping records.
package parser

// Workbook layout constants. Mapping workbooks carry descriptive content
// in rows 1-8, system names in row 9, column headers in row 10 and data
// from row 11 on.
const (
	systemNamesRow = 9
	headersRow     = 10
	dataStartRow   = 11

	sourceSystemColumn = 1

	// systemNameSearchColumns bounds the row-9 scan for the target
	// system name.
	systemNameSearchColumns = 20
	systemNameMinLength     = 2

	headerMinLength = 2

	// maxSectionGap is the largest run of empty header cells still
	// treated as part of the target section.
	maxSectionGap = 3

	// minMappingFields is the fewest non-empty cells a row needs to
	// count as a mapping.
	minMappingFields = 2
)

// cell returns the trimmed value at a 1-based row/column position, or ""
// when the position is outside the sheet's ragged row data.
func cell(rows [][]string, rowNum, colNum int) string {
	if rowNum < 1 || rowNum > len(rows) {
		return ""
	}
	row := rows[rowNum-1]
	if colNum < 1 || colNum > len(row) {
		return ""
	}
	return cleanValue(row[colNum-1])
}
