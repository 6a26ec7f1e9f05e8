// Package differ computes added, deleted and field-modified mapping
// records between two versions of the same logical sheet.
package differ

import (
	"sort"
	"strings"

	"github.com/sujitpursuit/exceldiff/pkg/exceldiff/models"
)

// Params holds parameters for mapping comparison.
type Params struct {
	// CaseSensitive controls whether identity keys and field values are
	// compared case-sensitively. Off by default; reported values keep
	// their original casing either way.
	CaseSensitive bool
}

// DefaultParams returns default comparison parameters.
func DefaultParams() Params {
	return Params{CaseSensitive: false}
}

// Result is the record-level diff of one matched sheet pair.
type Result struct {
	Status   models.TabStatus
	Added    []models.MappingRecord
	Deleted  []models.MappingRecord
	Modified []models.MappingChange
}

// DiffMappings compares two ordered record lists belonging to the same
// logical sheet. Duplicate identity keys within one side are deduplicated
// keeping the last occurrence. It never fails: records with empty identity
// components participate normally.
func DiffMappings(oldRecords, newRecords []models.MappingRecord, params Params) Result {
	oldKeys, oldByKey := index(oldRecords, params)
	newKeys, newByKey := index(newRecords, params)

	var res Result

	// Added and deleted are emitted in input order of appearance, never
	// resorted; consumers needing spreadsheet order use RowNumber.
	for _, k := range newKeys {
		if _, ok := oldByKey[k]; !ok {
			res.Added = append(res.Added, newByKey[k])
		}
	}
	for _, k := range oldKeys {
		if _, ok := newByKey[k]; !ok {
			res.Deleted = append(res.Deleted, oldByKey[k])
		}
	}
	for _, k := range oldKeys {
		newRec, ok := newByKey[k]
		if !ok {
			continue
		}
		oldRec := oldByKey[k]
		if change, changed := compareFields(oldRec, newRec, params); changed {
			res.Modified = append(res.Modified, change)
		}
	}

	res.Status = status(len(oldRecords), len(newRecords), &res)
	return res
}

// index builds the identity-key lookup for one side: key order by first
// appearance, record value from the last occurrence (last-wins dedup).
func index(records []models.MappingRecord, params Params) ([]string, map[string]models.MappingRecord) {
	keys := make([]string, 0, len(records))
	byKey := make(map[string]models.MappingRecord, len(records))
	for i := range records {
		k := lookupKey(&records[i], params)
		if _, seen := byKey[k]; !seen {
			keys = append(keys, k)
		}
		byKey[k] = records[i]
	}
	return keys, byKey
}

func lookupKey(m *models.MappingRecord, params Params) string {
	k := m.UniqueID
	if k == "" {
		k = m.ComputeUniqueID()
	}
	if !params.CaseSensitive {
		k = strings.ToLower(k)
	}
	return k
}

// compareFields diffs the open-ended attribute bags of a matched pair.
// The four identity-contributing fields cannot differ for matched keys by
// construction, so only the bag is inspected. Empty string and missing
// are equal after trimming.
func compareFields(oldRec, newRec models.MappingRecord, params Params) (models.MappingChange, bool) {
	change := models.MappingChange{Old: oldRec, New: newRec}

	names := make(map[string]struct{}, len(oldRec.AllFields)+len(newRec.AllFields))
	for name := range oldRec.AllFields {
		names[name] = struct{}{}
	}
	for name := range newRec.AllFields {
		names[name] = struct{}{}
	}
	ordered := make([]string, 0, len(names))
	for name := range names {
		ordered = append(ordered, name)
	}
	sort.Strings(ordered)

	for _, name := range ordered {
		oldVal := oldRec.AllFields[name]
		newVal := newRec.AllFields[name]
		if normalize(oldVal, params) != normalize(newVal, params) {
			change.AddFieldChange(name, oldVal, newVal)
		}
	}

	return change, len(change.FieldChanges) > 0
}

func normalize(v string, params Params) string {
	v = strings.TrimSpace(v)
	if !params.CaseSensitive {
		v = strings.ToLower(v)
	}
	return v
}

// status derives the sheet-level status. An entirely one-sided record set
// means the sheet content was added or deleted wholesale, distinct from
// per-row added/deleted within a surviving sheet.
func status(oldLen, newLen int, res *Result) models.TabStatus {
	switch {
	case oldLen == 0 && newLen == 0:
		return models.StatusUnchanged
	case oldLen == 0:
		return models.StatusAdded
	case newLen == 0:
		return models.StatusDeleted
	case len(res.Added) == 0 && len(res.Deleted) == 0 && len(res.Modified) == 0:
		return models.StatusUnchanged
	default:
		return models.StatusModified
	}
}
