package exceldiff

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sujitpursuit/exceldiff/pkg/exceldiff/models"
)

func record(sourceCanonical, sourceField, targetCanonical, targetField string, fields map[string]string) models.MappingRecord {
	m := models.NewMappingRecord(sourceCanonical, sourceField, targetCanonical, targetField)
	m.AllFields = fields
	return *m
}

func sheet(name string, hidden bool, records ...models.MappingRecord) models.SheetAnalysis {
	return models.SheetAnalysis{
		Metadata: models.SheetMetadata{
			SheetName:    name,
			SourceSystem: "SystemA",
			TargetSystem: "SystemB",
			Hidden:       hidden,
		},
		Mappings: records,
	}
}

func TestCompareSheetOnlyInFile1(t *testing.T) {
	records := make([]models.MappingRecord, 0, 5)
	for _, f := range []string{"f1", "f2", "f3", "f4", "f5"} {
		records = append(records, record("A", f, "B", f, nil))
	}
	book1 := []models.SheetAnalysis{sheet("Orders", false, records...)}

	result := Compare("old.xlsx", "new.xlsx", book1, nil, DefaultOptions())

	assert.Empty(t, result.Errors)
	tc := result.TabComparisons["Orders"]
	assert.NotNil(t, tc)
	assert.Equal(t, models.StatusDeleted, tc.Status)
	assert.Len(t, tc.DeletedMappings, 5)
	assert.Empty(t, tc.AddedMappings)
	assert.Empty(t, tc.ModifiedMappings)
	assert.Equal(t, 1, result.Summary.TabsDeleted)
	assert.Equal(t, 5, result.Summary.MappingsDeleted)
}

func TestCompareIdenticalBooksUnchanged(t *testing.T) {
	records := []models.MappingRecord{
		record("A", "f1", "B", "g1", map[string]string{"type": "string"}),
	}
	book1 := []models.SheetAnalysis{sheet("Orders", false, records...)}
	book2 := []models.SheetAnalysis{sheet("Orders", false, records...)}

	result := Compare("old.xlsx", "new.xlsx", book1, book2, DefaultOptions())

	tc := result.TabComparisons["Orders"]
	assert.Equal(t, models.StatusUnchanged, tc.Status)
	assert.False(t, tc.HasChanges())
	assert.Equal(t, 1, result.Summary.TabsUnchanged)
}

func TestCompareBothInputsEmpty(t *testing.T) {
	result := Compare("old.xlsx", "new.xlsx", nil, nil, DefaultOptions())

	assert.Empty(t, result.TabComparisons)
	assert.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "no sheets")
}

func TestCompareInvalidOptions(t *testing.T) {
	book := []models.SheetAnalysis{sheet("Orders", false)}
	result := Compare("old.xlsx", "new.xlsx", book, book, Options{MaxSheetNameLength: -1})

	assert.Empty(t, result.TabComparisons)
	assert.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "invalid comparison options")
}

func TestCompareHiddenSheetsSkipped(t *testing.T) {
	visible := sheet("Orders", false, record("A", "f1", "B", "g1", nil))
	hidden := sheet("Scratch", true, record("X", "f1", "Y", "g1", nil))
	book2 := []models.SheetAnalysis{visible, hidden}

	result := Compare("old.xlsx", "new.xlsx", []models.SheetAnalysis{visible}, book2, DefaultOptions())
	assert.NotContains(t, result.TabComparisons, "Scratch")
	assert.Equal(t, 1, result.Summary.TotalTabsV2)

	withHidden := Compare("old.xlsx", "new.xlsx", []models.SheetAnalysis{visible}, book2, Options{IncludeHidden: true})
	tc := withHidden.TabComparisons["Scratch"]
	assert.NotNil(t, tc)
	assert.Equal(t, models.StatusAdded, tc.Status)
}

func TestCompareErroredSheetsExcluded(t *testing.T) {
	broken := sheet("Broken", false)
	broken.AddError("sheet skipped - no mapping structure found")
	book := []models.SheetAnalysis{sheet("Orders", false, record("A", "f1", "B", "g1", nil)), broken}

	result := Compare("old.xlsx", "new.xlsx", book, book, DefaultOptions())

	assert.NotContains(t, result.TabComparisons, "Broken")
	assert.Equal(t, 1, result.Summary.TotalTabsV1)
	assert.NotEmpty(t, result.Errors)
	assert.Contains(t, result.Errors[0], "Broken")
}

func TestCompareVersionedCopyPicksActive(t *testing.T) {
	oldRecords := []models.MappingRecord{
		record("A", "f1", "B", "g1", nil),
		record("A", "f2", "B", "g2", nil),
	}
	lockedRecords := []models.MappingRecord{
		record("A", "f1", "B", "g1", nil),
	}
	activeRecords := []models.MappingRecord{
		record("A", "f1", "B", "g1", nil),
		record("A", "f2", "B", "g2", nil),
		record("A", "f3", "B", "g3", nil),
	}

	book1 := []models.SheetAnalysis{sheet("Process Tab", false, oldRecords...)}
	book2 := []models.SheetAnalysis{
		sheet("Process Tab", false, lockedRecords...),
		sheet("Process Tab (2)", false, activeRecords...),
	}

	result := Compare("old.xlsx", "new.xlsx", book1, book2, DefaultOptions())

	assert.Len(t, result.TabComparisons, 1)
	tc := result.TabComparisons["Process Tab"]
	assert.NotNil(t, tc)
	assert.Equal(t, "Process Tab", tc.PhysicalNameV1)
	assert.Equal(t, "Process Tab (2)", tc.PhysicalNameV2)
	assert.Equal(t, 2, tc.VersionV2)
	assert.Equal(t, models.StatusModified, tc.Status)
	assert.Len(t, tc.AddedMappings, 1)
	assert.Equal(t, "f3", tc.AddedMappings[0].SourceField)
}

func TestCompareTruncatedNameMatchesNotAddedDeleted(t *testing.T) {
	original := "VendorInboundVendorProxytoD365STTM"
	truncated := "VendorInboundVendorProxytoD (2)"
	records := []models.MappingRecord{record("A", "f1", "B", "g1", nil)}

	book1 := []models.SheetAnalysis{sheet(original, false, records...)}
	book2 := []models.SheetAnalysis{
		sheet(original, false, records...),
		sheet(truncated, false, records...),
	}

	result := Compare("old.xlsx", "new.xlsx", book1, book2, DefaultOptions())

	assert.Len(t, result.TabComparisons, 1)
	tc := result.TabComparisons[original]
	assert.NotNil(t, tc)
	assert.True(t, tc.TruncatedMatch)
	assert.Equal(t, original, tc.PhysicalNameV1)
	assert.Equal(t, truncated, tc.PhysicalNameV2)
	assert.Equal(t, 0, result.Summary.TabsAdded)
	assert.Equal(t, 0, result.Summary.TabsDeleted)
}

func TestCompareMetadataChangeMarksModified(t *testing.T) {
	records := []models.MappingRecord{record("A", "f1", "B", "g1", nil)}
	s1 := sheet("Orders", false, records...)
	s2 := sheet("Orders", false, records...)
	s2.Metadata.TargetSystem = "SystemC"

	result := Compare("old.xlsx", "new.xlsx", []models.SheetAnalysis{s1}, []models.SheetAnalysis{s2}, DefaultOptions())

	tc := result.TabComparisons["Orders"]
	assert.Equal(t, models.StatusModified, tc.Status)
	assert.Equal(t, models.FieldChange{Old: "SystemB", New: "SystemC"}, tc.MetadataChanges["target_system"])
	assert.Empty(t, tc.AddedMappings)
}

func TestCompareResultDoesNotAliasInput(t *testing.T) {
	fields := map[string]string{"type": "string"}
	book1 := []models.SheetAnalysis{sheet("Orders", false, record("A", "f1", "B", "g1", fields))}

	result := Compare("old.xlsx", "new.xlsx", book1, nil, DefaultOptions())

	fields["type"] = "mutated"
	assert.Equal(t, "string", result.TabComparisons["Orders"].DeletedMappings[0].AllFields["type"])
}

func TestResolveSheetIdentitiesSkipsHidden(t *testing.T) {
	sheets1 := []models.SheetMetadata{
		{SheetName: "Orders"},
		{SheetName: "Scratch", Hidden: true},
	}
	sheets2 := []models.SheetMetadata{
		{SheetName: "Orders"},
	}

	mappings := ResolveSheetIdentities(sheets1, sheets2, DefaultOptions())
	assert.Len(t, mappings, 1)
	assert.Equal(t, "Orders", mappings[0].LogicalName)

	withHidden := ResolveSheetIdentities(sheets1, sheets2, Options{IncludeHidden: true})
	assert.Len(t, withHidden, 2)
}

func TestOptionsDefaults(t *testing.T) {
	opts := DefaultOptions()
	assert.True(t, opts.ShouldSkipHidden())
	assert.True(t, opts.ShouldMatchTruncated())
	assert.False(t, opts.CaseSensitive)
	assert.Equal(t, 31, opts.EffectiveMaxNameLength())

	off := false
	opts = Options{SkipHidden: &off, TruncatedMatching: &off, MaxSheetNameLength: 40}
	assert.False(t, opts.ShouldSkipHidden())
	assert.False(t, opts.ShouldMatchTruncated())
	assert.Equal(t, 40, opts.EffectiveMaxNameLength())
}
