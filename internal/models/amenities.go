package models

import (
	"encoding/json"
	"fmt"
)

// AmenityList is a set of amenity tags. Submissions may carry it either as a
// native JSON array or as a JSON-encoded string (the multipart form path
// always sends a string); both decode to the same structured form.
type AmenityList []string

// UnmarshalJSON accepts ["pool","gym"] as well as "[\"pool\",\"gym\"]".
func (a *AmenityList) UnmarshalJSON(data []byte) error {
	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		*a = arr
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("amenities must be an array of strings or a JSON-encoded string")
	}
	parsed, err := ParseAmenities(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// ParseAmenities decodes a JSON-encoded amenity string as submitted by the
// multipart form path. An empty string yields a nil list.
func ParseAmenities(s string) (AmenityList, error) {
	if s == "" {
		return nil, nil
	}
	var arr []string
	if err := json.Unmarshal([]byte(s), &arr); err != nil {
		return nil, fmt.Errorf("amenities is not a valid JSON array of strings")
	}
	return arr, nil
}
