// Package exceldiff compares two versions of a source-target mapping
// workbook and produces a structured, position-independent diff.
package exceldiff

import (
	"github.com/sujitpursuit/exceldiff/pkg/exceldiff/differ"
	"github.com/sujitpursuit/exceldiff/pkg/exceldiff/resolver"
)

// Options configures a comparison run. The zero value gives the defaults;
// every run receives its own explicit Options so concurrent runs with
// different settings cannot interfere.
type Options struct {
	// SkipHidden excludes hidden sheets entirely before identity
	// resolution. If nil, defaults to true.
	SkipHidden *bool
	// IncludeHidden forces hidden sheets into the comparison regardless
	// of SkipHidden.
	IncludeHidden bool
	// CaseSensitive controls field value and identity key comparison.
	// Defaults to false; original casing is always preserved in results.
	CaseSensitive bool
	// MaxSheetNameLength is the physical sheet name ceiling used for
	// truncation detection. If 0, defaults to 31.
	MaxSheetNameLength int
	// TruncatedMatching enables reconciliation of truncated duplicate
	// names. If nil, defaults to true.
	TruncatedMatching *bool
}

// DefaultOptions returns default comparison options.
func DefaultOptions() Options {
	return Options{}
}

// ShouldSkipHidden returns whether hidden sheets are excluded before
// resolution runs.
func (o Options) ShouldSkipHidden() bool {
	if o.IncludeHidden {
		return false
	}
	if o.SkipHidden != nil {
		return *o.SkipHidden
	}
	return true
}

// ShouldMatchTruncated returns whether truncated-name matching is enabled.
func (o Options) ShouldMatchTruncated() bool {
	if o.TruncatedMatching != nil {
		return *o.TruncatedMatching
	}
	return true
}

// EffectiveMaxNameLength returns the sheet name ceiling in effect.
func (o Options) EffectiveMaxNameLength() int {
	if o.MaxSheetNameLength == 0 {
		return resolver.ExcelSheetNameMaxLength
	}
	return o.MaxSheetNameLength
}

func (o Options) resolverParams() resolver.Params {
	return resolver.Params{
		MaxNameLength:     o.EffectiveMaxNameLength(),
		TruncatedMatching: o.ShouldMatchTruncated(),
	}
}

func (o Options) differParams() differ.Params {
	return differ.Params{CaseSensitive: o.CaseSensitive}
}
