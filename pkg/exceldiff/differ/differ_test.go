package differ

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sujitpursuit/exceldiff/pkg/exceldiff/models"
)

func rec(sourceCanonical, sourceField, targetCanonical, targetField string, fields map[string]string) models.MappingRecord {
	m := models.NewMappingRecord(sourceCanonical, sourceField, targetCanonical, targetField)
	m.AllFields = fields
	return *m
}

func TestDiffIdenticalListsUnchanged(t *testing.T) {
	records := []models.MappingRecord{
		rec("A", "f1", "B", "g1", map[string]string{"type": "string"}),
		rec("A", "f2", "B", "g2", map[string]string{"type": "int"}),
	}
	clone := append([]models.MappingRecord(nil), records...)

	res := DiffMappings(records, clone, DefaultParams())

	assert.Equal(t, models.StatusUnchanged, res.Status)
	assert.Empty(t, res.Added)
	assert.Empty(t, res.Deleted)
	assert.Empty(t, res.Modified)
}

func TestDiffAddedModifiedScenario(t *testing.T) {
	oldRecords := []models.MappingRecord{
		rec("A", "f1", "B", "g1", map[string]string{"type": "string"}),
	}
	newRecords := []models.MappingRecord{
		rec("A", "f1", "B", "g1", map[string]string{"type": "boolean"}),
		rec("A", "f2", "B", "g2", map[string]string{"type": "int"}),
	}

	res := DiffMappings(oldRecords, newRecords, DefaultParams())

	assert.Equal(t, models.StatusModified, res.Status)
	assert.Empty(t, res.Deleted)

	assert.Len(t, res.Added, 1)
	assert.Equal(t, "f2", res.Added[0].SourceField)

	assert.Len(t, res.Modified, 1)
	change, ok := res.Modified[0].FieldChanges["type"]
	assert.True(t, ok)
	assert.Equal(t, "string", change.Old)
	assert.Equal(t, "boolean", change.New)
}

func TestDiffSymmetry(t *testing.T) {
	listA := []models.MappingRecord{
		rec("A", "f1", "B", "g1", nil),
		rec("A", "f2", "B", "g2", nil),
	}
	listB := []models.MappingRecord{
		rec("A", "f2", "B", "g2", nil),
		rec("A", "f3", "B", "g3", nil),
	}

	forward := DiffMappings(listA, listB, DefaultParams())
	backward := DiffMappings(listB, listA, DefaultParams())

	ids := func(records []models.MappingRecord) []string {
		out := make([]string, len(records))
		for i, r := range records {
			out[i] = r.UniqueID
		}
		return out
	}
	assert.ElementsMatch(t, ids(forward.Added), ids(backward.Deleted))
	assert.ElementsMatch(t, ids(forward.Deleted), ids(backward.Added))
}

func TestDiffNoFalseModification(t *testing.T) {
	oldRecords := []models.MappingRecord{
		rec("Customer", "Name", "CustTable", "CustName", map[string]string{"type": "String", "notes": "  primary  "}),
	}
	newRecords := []models.MappingRecord{
		rec("CUSTOMER", "name", "CustTable", "CustName", map[string]string{"type": "string", "notes": "primary"}),
	}

	res := DiffMappings(oldRecords, newRecords, DefaultParams())
	assert.Equal(t, models.StatusUnchanged, res.Status)
	assert.Empty(t, res.Modified)
}

func TestDiffCaseSensitiveMode(t *testing.T) {
	oldRecords := []models.MappingRecord{
		rec("Customer", "Name", "CustTable", "CustName", map[string]string{"type": "String"}),
	}
	newRecords := []models.MappingRecord{
		rec("Customer", "Name", "CustTable", "CustName", map[string]string{"type": "string"}),
	}

	res := DiffMappings(oldRecords, newRecords, Params{CaseSensitive: true})
	assert.Equal(t, models.StatusModified, res.Status)
	assert.Len(t, res.Modified, 1)
	// Original casing is preserved in the change record.
	assert.Equal(t, "String", res.Modified[0].FieldChanges["type"].Old)
	assert.Equal(t, "string", res.Modified[0].FieldChanges["type"].New)
}

func TestDiffEmptyVersusMissingFieldEqual(t *testing.T) {
	oldRecords := []models.MappingRecord{
		rec("A", "f1", "B", "g1", map[string]string{"notes": ""}),
	}
	newRecords := []models.MappingRecord{
		rec("A", "f1", "B", "g1", nil),
	}

	res := DiffMappings(oldRecords, newRecords, DefaultParams())
	assert.Equal(t, models.StatusUnchanged, res.Status)
}

func TestDiffDedupLastWins(t *testing.T) {
	oldRecords := []models.MappingRecord{
		rec("A", "f1", "B", "g1", map[string]string{"type": "string"}),
	}
	newRecords := []models.MappingRecord{
		rec("A", "f1", "B", "g1", map[string]string{"type": "decimal"}),
		rec("A", "f1", "B", "g1", map[string]string{"type": "string"}),
	}

	// The later duplicate is the one compared, so nothing changed.
	res := DiffMappings(oldRecords, newRecords, DefaultParams())
	assert.Equal(t, models.StatusUnchanged, res.Status)
}

func TestDiffSheetLevelAddedDeleted(t *testing.T) {
	records := []models.MappingRecord{
		rec("A", "f1", "B", "g1", nil),
		rec("A", "f2", "B", "g2", nil),
	}

	added := DiffMappings(nil, records, DefaultParams())
	assert.Equal(t, models.StatusAdded, added.Status)
	assert.Len(t, added.Added, 2)

	deleted := DiffMappings(records, nil, DefaultParams())
	assert.Equal(t, models.StatusDeleted, deleted.Status)
	assert.Len(t, deleted.Deleted, 2)

	empty := DiffMappings(nil, nil, DefaultParams())
	assert.Equal(t, models.StatusUnchanged, empty.Status)
}

func TestDiffEmptyIdentityComponentsStillCompared(t *testing.T) {
	oldRecords := []models.MappingRecord{
		rec("", "", "B", "g1", map[string]string{"notes": "a"}),
	}
	newRecords := []models.MappingRecord{
		rec("", "", "B", "g1", map[string]string{"notes": "b"}),
	}

	res := DiffMappings(oldRecords, newRecords, DefaultParams())
	assert.Equal(t, models.StatusModified, res.Status)
	assert.Len(t, res.Modified, 1)
}

func TestDiffOutputOrderFollowsInput(t *testing.T) {
	newRecords := []models.MappingRecord{
		rec("A", "f3", "B", "g3", nil),
		rec("A", "f1", "B", "g1", nil),
		rec("A", "f2", "B", "g2", nil),
	}

	res := DiffMappings(nil, newRecords, DefaultParams())
	assert.Equal(t, "f3", res.Added[0].SourceField)
	assert.Equal(t, "f1", res.Added[1].SourceField)
	assert.Equal(t, "f2", res.Added[2].SourceField)
}
