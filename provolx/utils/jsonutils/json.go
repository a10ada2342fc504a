package jsonutils

import (
	"encoding/json"
	"strings"
)

// Compact serializes v as single-line JSON. It is used to render sample rows
// into prompt text. Returns an empty string if serialization fails.
func Compact(v interface{}) string {
	bytes, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(bytes)
}

// ToJSON serializes a Go value to a JSON string with indentation.
// Returns an empty string if serialization fails.
func ToJSON(v interface{}) string {
	bytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(bytes))
}
