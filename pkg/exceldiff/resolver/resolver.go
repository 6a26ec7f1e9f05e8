// Package resolver reconciles the physical sheet names of two workbooks
// into logical sheet identities, collapsing Excel's copy suffixes
// ("Name (2)") and 31-character name truncation.
package resolver

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/sujitpursuit/exceldiff/pkg/exceldiff/models"
)

// ExcelSheetNameMaxLength is the sheet name ceiling Excel enforces.
const ExcelSheetNameMaxLength = 31

// Params holds parameters for sheet identity resolution.
type Params struct {
	// MaxNameLength is the physical name length ceiling used to detect
	// truncated copies.
	MaxNameLength int
	// TruncatedMatching enables prefix-based reconciliation of names that
	// hit the length ceiling while carrying a version suffix.
	TruncatedMatching bool
}

// DefaultParams returns default resolution parameters.
func DefaultParams() Params {
	return Params{
		MaxNameLength:     ExcelSheetNameMaxLength,
		TruncatedMatching: true,
	}
}

// versionSuffixPattern matches Excel's duplicate-sheet suffix: a trailing
// " (N)" with a positive integer N.
var versionSuffixPattern = regexp.MustCompile(`^(.+) \((\d+)\)$`)

// ParseSheetName splits a physical sheet name into its base name and
// version number. A name without a parseable suffix is version 1.
func ParseSheetName(name string) (base string, version int) {
	m := versionSuffixPattern.FindStringSubmatch(name)
	if m == nil {
		return name, 1
	}
	n, err := strconv.Atoi(m[2])
	if err != nil || n < 1 {
		return name, 1
	}
	return m[1], n
}

// entry is one physical sheet name with its resolved grouping data.
type entry struct {
	name      string
	base      string
	version   int
	truncated bool
}

// Resolve maps every physical sheet in either input to exactly one
// LogicalSheetMapping. It never fails: malformed names degrade to version
// 1 with no truncation matching.
func Resolve(sheets1, sheets2 []models.SheetMetadata, params Params) []models.LogicalSheetMapping {
	if params.MaxNameLength <= 0 {
		params.MaxNameLength = ExcelSheetNameMaxLength
	}

	names1 := sheetNames(sheets1)
	names2 := sheetNames(sheets2)

	entries1 := buildEntries(names1, names1, names2, params)
	entries2 := buildEntries(names2, names1, names2, params)

	// Group by resolved base name, preserving first-appearance order
	// across file 1 then file 2.
	type group struct {
		base      string
		file1     []entry
		file2     []entry
		truncated bool
	}
	groups := make(map[string]*group)
	var order []string

	add := func(e entry, file int) {
		g, ok := groups[e.base]
		if !ok {
			g = &group{base: e.base}
			groups[e.base] = g
			order = append(order, e.base)
		}
		if file == 1 {
			g.file1 = append(g.file1, e)
		} else {
			g.file2 = append(g.file2, e)
		}
		if e.truncated {
			g.truncated = true
		}
	}
	for _, e := range entries1 {
		add(e, 1)
	}
	for _, e := range entries2 {
		add(e, 2)
	}

	mappings := make([]models.LogicalSheetMapping, 0, len(order))
	for _, base := range order {
		g := groups[base]
		m := models.LogicalSheetMapping{
			LogicalName:    base,
			TruncatedMatch: g.truncated,
		}
		if rep, skipped, ok := pickRepresentative(g.file1); ok {
			m.PhysicalNameV1 = rep.name
			m.VersionV1 = rep.version
			m.SkippedV1 = skipped
		}
		if rep, skipped, ok := pickRepresentative(g.file2); ok {
			m.PhysicalNameV2 = rep.name
			m.VersionV2 = rep.version
			m.SkippedV2 = skipped
		}
		mappings = append(mappings, m)
	}
	return mappings
}

func sheetNames(sheets []models.SheetMetadata) []string {
	names := make([]string, len(sheets))
	for i := range sheets {
		names[i] = sheets[i].SheetName
	}
	return names
}

func buildEntries(names, names1, names2 []string, params Params) []entry {
	entries := make([]entry, 0, len(names))
	for _, name := range names {
		base, version := ParseSheetName(name)
		e := entry{name: name, base: base, version: version}
		if params.TruncatedMatching && isTruncationCandidate(name, version, params.MaxNameLength) {
			if trueBase, ok := findTruncationBase(base, name, names1, names2); ok {
				e.base = trueBase
				e.truncated = true
			}
		}
		entries = append(entries, e)
	}
	return entries
}

// isTruncationCandidate reports whether a physical name looks like a
// duplicated copy whose combined "<base> (N)" hit the length ceiling.
func isTruncationCandidate(name string, version, maxLength int) bool {
	return len(name) == maxLength && version > 1
}

// findTruncationBase searches both files' physical names for the original
// the candidate's base was truncated from. An exact match of the base
// portion wins over a longer original; otherwise the first prefix match
// scanning file 1 then file 2 is adopted. Returns the match's own
// stripped base name.
func findTruncationBase(basePortion, candidate string, names1, names2 []string) (string, bool) {
	all := make([]string, 0, len(names1)+len(names2))
	all = append(all, names1...)
	all = append(all, names2...)

	for _, name := range all {
		if name == basePortion {
			return basePortion, true
		}
	}
	for _, name := range all {
		if name == candidate {
			continue
		}
		if len(name) > len(basePortion) && strings.HasPrefix(name, basePortion) {
			base, _ := ParseSheetName(name)
			return base, true
		}
	}
	return "", false
}

// pickRepresentative selects the highest-version entry from one file's
// subgroup, later occurrence winning ties. The remaining entries are
// stale duplicates, reported as skipped rather than added or deleted.
func pickRepresentative(entries []entry) (rep entry, skipped []string, ok bool) {
	if len(entries) == 0 {
		return entry{}, nil, false
	}
	rep = entries[0]
	for _, e := range entries[1:] {
		if e.version >= rep.version {
			rep = e
		}
	}
	for _, e := range entries {
		if e.name != rep.name {
			skipped = append(skipped, e.name)
		}
	}
	return rep, skipped, true
}
