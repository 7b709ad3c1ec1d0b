package models

// ValidationErrors maps a field name to every rule it violated. Handlers
// return the whole map at once; callers never see just the first failure.
type ValidationErrors map[string][]string

// Add appends a violation message for a field.
func (v ValidationErrors) Add(field, message string) {
	v[field] = append(v[field], message)
}

// Any reports whether at least one violation was recorded.
func (v ValidationErrors) Any() bool {
	return len(v) > 0
}
