package config

import "fmt"

// FieldDiff is one field that differs between two configs.
type FieldDiff struct {
	Field string
	A     string
	B     string
}

// Diff compares two configs field by field in declaration order and returns
// the fields whose values differ. Unset *bool fields render as "-".
func Diff(a, b *Config) []FieldDiff {
	var diffs []FieldDiff
	for _, key := range a.Fields() {
		av := render(a.Get(key))
		bv := render(b.Get(key))
		if av != bv {
			diffs = append(diffs, FieldDiff{Field: key, A: av, B: bv})
		}
	}
	return diffs
}

func render(v interface{}) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%v", v)
}
