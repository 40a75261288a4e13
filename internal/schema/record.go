package schema

// Record is a raw or normalized candidate record. Raw records come straight
// from a decoded JSON body; normalized records hold trimmed strings and
// numeric-typed numbers only.
type Record map[string]any

// Has reports whether the field is present with a non-nil value.
func (r Record) Has(field string) bool {
	v, ok := r[field]
	return ok && v != nil
}

// String returns the field as a string, or "" when absent or mistyped.
func (r Record) String(field string) string {
	if v, ok := r[field].(string); ok {
		return v
	}
	return ""
}

// Float returns the field as a float64, or 0 when absent or mistyped.
func (r Record) Float(field string) float64 {
	if v, ok := r[field].(float64); ok {
		return v
	}
	return 0
}

// Bool returns the field as a bool, false when absent.
func (r Record) Bool(field string) bool {
	if v, ok := r[field].(bool); ok {
		return v
	}
	return false
}
