package output

import "encoding/json"

// ToJSON serializes a report, optionally pretty-printed.
func ToJSON(report *Report, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(report, "", "  ")
	}
	return json.Marshal(report)
}

// ResultToJSON serializes a raw comparison result for callers that want
// the unshaped structure instead of the report document.
func ResultToJSON(v interface{}, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
