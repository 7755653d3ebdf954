package models

// Machines are the presses a die cut, roll or ink can be assigned to.
var Machines = []string{"E5", "P5", "P7", "P7-11"}

// StringPtr returns nil for an empty string.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// StringValue dereferences s, treating nil as empty.
func StringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
