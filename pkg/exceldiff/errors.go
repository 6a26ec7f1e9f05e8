package exceldiff

import (
	"errors"
	"fmt"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the input file is not a valid xlsx workbook.
var ErrInvalidFormat = errors.New("invalid xlsx format")

// ErrNoSheets indicates neither input workbook contributed any sheets.
var ErrNoSheets = errors.New("no sheets to compare")

// ErrInvalidOptions indicates the comparison configuration is unusable.
var ErrInvalidOptions = errors.New("invalid comparison options")

// SheetError represents a failure while processing a single sheet.
type SheetError struct {
	Sheet string
	Stage string // "metadata", "columns", "mappings", "compare"
	Err   error
}

func (e *SheetError) Error() string {
	return fmt.Sprintf("sheet %q (%s): %v", e.Sheet, e.Stage, e.Err)
}

func (e *SheetError) Unwrap() error {
	return e.Err
}

// NewSheetError creates a new SheetError.
func NewSheetError(sheet, stage string, err error) *SheetError {
	return &SheetError{
		Sheet: sheet,
		Stage: stage,
		Err:   err,
	}
}
