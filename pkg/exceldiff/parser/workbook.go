package parser

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"github.com/sujitpursuit/exceldiff/internal/logutil"
	"github.com/sujitpursuit/exceldiff/pkg/exceldiff"
	"github.com/sujitpursuit/exceldiff/pkg/exceldiff/models"
)

// AnalyzeWorkbook opens an xlsx workbook and analyzes every sheet, hidden
// ones included. Hidden-sheet filtering is the comparison layer's call.
// The returned slice preserves workbook sheet order.
func AnalyzeWorkbook(path string) ([]models.SheetAnalysis, error) {
	log := logutil.GetLogger()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", exceldiff.ErrFileNotFound, path)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", exceldiff.ErrInvalidFormat, path, err)
	}
	defer f.Close()

	sheetList := f.GetSheetList()
	if len(sheetList) == 0 {
		return nil, fmt.Errorf("%w: %s", exceldiff.ErrNoSheets, path)
	}

	analyses := make([]models.SheetAnalysis, 0, len(sheetList))
	for _, sheetName := range sheetList {
		analysis := AnalyzeSheet(f, sheetName)
		log.WithFields(logrus.Fields{
			"workbook": path,
			"sheet":    sheetName,
			"mappings": analysis.MappingCount(),
			"hidden":   analysis.Metadata.Hidden,
			"errors":   len(analysis.Errors),
		}).Debug("analyzed sheet")
		analyses = append(analyses, analysis)
	}

	log.WithFields(logrus.Fields{
		"workbook": path,
		"sheets":   len(analyses),
	}).Info("workbook analysis complete")

	return analyses, nil
}

// AnalyzeSheet extracts metadata, column layout and mapping records from
// one worksheet. Sheets without a mapping structure come back with an
// explanatory error and no records rather than failing the workbook.
func AnalyzeSheet(f *excelize.File, sheetName string) models.SheetAnalysis {
	analysis := models.SheetAnalysis{
		Metadata: models.SheetMetadata{SheetName: sheetName},
	}

	hidden := false
	if visible, err := f.GetSheetVisible(sheetName); err == nil {
		hidden = !visible
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		analysis.Metadata.Hidden = hidden
		analysis.AddError(exceldiff.NewSheetError(sheetName, "metadata", err).Error())
		return analysis
	}

	analysis.Metadata = ExtractSheetMetadata(rows, sheetName)
	analysis.Metadata.Hidden = hidden

	if !isMappingSheet(rows, analysis.Metadata) {
		analysis.AddError(fmt.Sprintf("sheet %q skipped - no mapping structure found", sheetName))
		return analysis
	}

	layout := IdentifyColumns(rows, analysis.Metadata.TargetSystemColumn)
	analysis.Mappings = ExtractMappings(rows, analysis.Metadata, layout)

	return analysis
}

// isMappingSheet checks whether a sheet has the structure of a
// source-target mapping tab: enough rows, a system name in the
// system-names row and recognizable headers spread across both sections.
func isMappingSheet(rows [][]string, meta models.SheetMetadata) bool {
	if meta.MaxRow < dataStartRow || meta.MaxColumn < 3 {
		return false
	}

	if len(meta.SourceSystem) < systemNameMinLength && len(meta.TargetSystem) < systemNameMinLength {
		return false
	}

	var headerCols []int
	for col := 1; col <= meta.MaxColumn; col++ {
		header := cell(rows, headersRow, col)
		if header == "" {
			continue
		}
		if NormalizeColumnName(header) != "" || looksLikeHeader(header) {
			headerCols = append(headerCols, col)
		}
	}
	if len(headerCols) < 4 {
		return false
	}
	// Headers must span wide enough to hold a source and a target section.
	return headerCols[len(headerCols)-1]-headerCols[0] >= 8
}

func looksLikeHeader(header string) bool {
	lowered := strings.ToLower(header)
	for _, keyword := range []string{
		"canonical", "field", "description", "type", "length",
		"format", "mandatory", "notes", "enum", "entity",
	} {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}
	return false
}
