package exceldiff

import (
	"fmt"

	"github.com/tiendc/go-deepcopy"

	"github.com/sujitpursuit/exceldiff/pkg/exceldiff/differ"
	"github.com/sujitpursuit/exceldiff/pkg/exceldiff/models"
	"github.com/sujitpursuit/exceldiff/pkg/exceldiff/resolver"
)

// Compare diffs two analyzed workbooks and builds the full comparison
// result. file1 and file2 identify the inputs in the result; book1 and
// book2 are the per-sheet analyses produced by the extraction adapter.
//
// Compare never returns an error: expected edge cases (empty inputs,
// unusable options, a sheet pair failing mid-diff) are reported through
// the result's Errors list so report renderers always have a structure
// to work with.
func Compare(file1, file2 string, book1, book2 []models.SheetAnalysis, opts Options) *models.ComparisonResult {
	result := models.NewComparisonResult(file1, file2)

	if opts.MaxSheetNameLength < 0 {
		result.AddError(fmt.Sprintf("%v: max sheet name length %d", ErrInvalidOptions, opts.MaxSheetNameLength))
		return result
	}
	if len(book1) == 0 && len(book2) == 0 {
		result.AddError(ErrNoSheets.Error())
		return result
	}

	valid1 := usableSheets(book1, opts, result)
	valid2 := usableSheets(book2, opts, result)

	logical := resolver.Resolve(metadataOf(valid1), metadataOf(valid2), opts.resolverParams())

	byName1 := indexByName(valid1)
	byName2 := indexByName(valid2)

	for _, lm := range logical {
		tc, err := compareSafely(lm, byName1[lm.PhysicalNameV1], byName2[lm.PhysicalNameV2], opts)
		if err != nil {
			// Partial-failure isolation: one broken sheet pair must not
			// abort the run or poison the statistics.
			result.AddError(fmt.Sprintf("%s: %v", lm.LogicalName, err))
			continue
		}
		result.TabComparisons[lm.LogicalName] = tc
	}

	summarize(result, valid1, valid2)
	return result
}

// ResolveSheetIdentities exposes identity resolution on its own so report
// renderers can show physical-versus-logical name metadata without
// running a full comparison.
func ResolveSheetIdentities(sheets1, sheets2 []models.SheetMetadata, opts Options) []models.LogicalSheetMapping {
	if opts.ShouldSkipHidden() {
		sheets1 = visibleOnly(sheets1)
		sheets2 = visibleOnly(sheets2)
	}
	return resolver.Resolve(sheets1, sheets2, opts.resolverParams())
}

// usableSheets drops hidden sheets (per options) and sheets the adapter
// failed on, surfacing the latter's errors on the result.
func usableSheets(book []models.SheetAnalysis, opts Options, result *models.ComparisonResult) []models.SheetAnalysis {
	out := make([]models.SheetAnalysis, 0, len(book))
	for i := range book {
		sheet := book[i]
		if opts.ShouldSkipHidden() && sheet.Metadata.Hidden {
			continue
		}
		if len(sheet.Errors) > 0 {
			for _, e := range sheet.Errors {
				result.AddError(fmt.Sprintf("%s: %s", sheet.SheetName(), e))
			}
			continue
		}
		out = append(out, sheet)
	}
	return out
}

func compareSafely(lm models.LogicalSheetMapping, a1, a2 *models.SheetAnalysis, opts Options) (tc *models.TabComparison, err error) {
	defer func() {
		if r := recover(); r != nil {
			tc = nil
			err = fmt.Errorf("%v", r)
		}
	}()
	return compareLogicalSheet(lm, a1, a2, opts), nil
}

func compareLogicalSheet(lm models.LogicalSheetMapping, a1, a2 *models.SheetAnalysis, opts Options) *models.TabComparison {
	tc := &models.TabComparison{
		LogicalName:    lm.LogicalName,
		PhysicalNameV1: lm.PhysicalNameV1,
		PhysicalNameV2: lm.PhysicalNameV2,
		VersionV1:      lm.VersionV1,
		VersionV2:      lm.VersionV2,
		TruncatedMatch: lm.TruncatedMatch,
	}

	switch {
	case a1 == nil && a2 != nil:
		tc.Status = models.StatusAdded
		tc.AddedMappings = copyRecords(a2.Mappings)
		tc.SourceSystem = a2.Metadata.SourceSystem
		tc.TargetSystem = a2.Metadata.TargetSystem

	case a1 != nil && a2 == nil:
		tc.Status = models.StatusDeleted
		tc.DeletedMappings = copyRecords(a1.Mappings)
		tc.SourceSystem = a1.Metadata.SourceSystem
		tc.TargetSystem = a1.Metadata.TargetSystem

	case a1 != nil && a2 != nil:
		diff := differ.DiffMappings(a1.Mappings, a2.Mappings, opts.differParams())
		tc.Status = diff.Status
		tc.AddedMappings = diff.Added
		tc.DeletedMappings = diff.Deleted
		tc.ModifiedMappings = diff.Modified
		tc.MetadataChanges = compareSheetMetadata(a1.Metadata, a2.Metadata)
		tc.SourceSystem = a2.Metadata.SourceSystem
		tc.TargetSystem = a2.Metadata.TargetSystem
		if tc.Status == models.StatusUnchanged && len(tc.MetadataChanges) > 0 {
			tc.Status = models.StatusModified
		}

	default:
		// Resolver guarantees at least one side; degrade quietly.
		tc.Status = models.StatusUnchanged
	}

	return tc
}

// compareSheetMetadata detects sheet-level changes such as a renamed
// source or target system.
func compareSheetMetadata(m1, m2 models.SheetMetadata) map[string]models.FieldChange {
	changes := make(map[string]models.FieldChange)
	if m1.SourceSystem != m2.SourceSystem {
		changes["source_system"] = models.FieldChange{Old: m1.SourceSystem, New: m2.SourceSystem}
	}
	if m1.TargetSystem != m2.TargetSystem {
		changes["target_system"] = models.FieldChange{Old: m1.TargetSystem, New: m2.TargetSystem}
	}
	if len(changes) == 0 {
		return nil
	}
	return changes
}

// copyRecords deep-copies a record list so results never alias the
// caller's slices or attribute bags.
func copyRecords(src []models.MappingRecord) []models.MappingRecord {
	if len(src) == 0 {
		return nil
	}
	var dst []models.MappingRecord
	if err := deepcopy.Copy(&dst, src); err != nil {
		// Records are plain data; copying cannot realistically fail.
		// Fall back to a shallow copy of the slice.
		dst = append([]models.MappingRecord(nil), src...)
	}
	return dst
}

func summarize(result *models.ComparisonResult, valid1, valid2 []models.SheetAnalysis) {
	s := &result.Summary

	s.TotalTabsV1 = len(valid1)
	s.TotalTabsV2 = len(valid2)
	for i := range valid1 {
		s.TotalMappingsV1 += len(valid1[i].Mappings)
	}
	for i := range valid2 {
		s.TotalMappingsV2 += len(valid2[i].Mappings)
	}

	for _, tc := range result.TabComparisons {
		switch tc.Status {
		case models.StatusAdded:
			s.TabsAdded++
		case models.StatusDeleted:
			s.TabsDeleted++
		case models.StatusModified:
			s.TabsModified++
		case models.StatusUnchanged:
			s.TabsUnchanged++
		}
		s.MappingsAdded += len(tc.AddedMappings)
		s.MappingsDeleted += len(tc.DeletedMappings)
		s.MappingsModified += len(tc.ModifiedMappings)
	}
}

func metadataOf(book []models.SheetAnalysis) []models.SheetMetadata {
	metas := make([]models.SheetMetadata, len(book))
	for i := range book {
		metas[i] = book[i].Metadata
	}
	return metas
}

func indexByName(book []models.SheetAnalysis) map[string]*models.SheetAnalysis {
	byName := make(map[string]*models.SheetAnalysis, len(book))
	for i := range book {
		byName[book[i].SheetName()] = &book[i]
	}
	return byName
}

func visibleOnly(sheets []models.SheetMetadata) []models.SheetMetadata {
	out := make([]models.SheetMetadata, 0, len(sheets))
	for _, s := range sheets {
		if !s.Hidden {
			out = append(out, s)
		}
	}
	return out
}
