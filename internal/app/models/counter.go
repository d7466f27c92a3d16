package models

import (
	"bytes"
	"math"
	"strconv"

	"github.com/goccy/go-json"
)

// Counter is a non-negative view counter.
// Missing, null, negative or non-numeric stored values decode as 0.
type Counter int

// UnmarshalJSON implements json.Unmarshaler
func (c *Counter) UnmarshalJSON(data []byte) error {
	*c = 0
	if f, ok := lenientNumber(data); ok && f > 0 {
		*c = Counter(clampInt(f))
	}
	return nil
}

// Int returns the counter as an int
func (c Counter) Int() int {
	return int(c)
}

// semesterValue decodes a stored semester, accepting numeric strings.
// Anything else, such as "2025A", decodes as 0.
type semesterValue int

// UnmarshalJSON implements json.Unmarshaler
func (s *semesterValue) UnmarshalJSON(data []byte) error {
	*s = 0
	if f, ok := lenientNumber(data); ok && f > 0 {
		*s = semesterValue(clampInt(f))
	}
	return nil
}

// lenientNumber reads a JSON number or a string holding one
func lenientNumber(data []byte) (float64, bool) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return 0, false
	}

	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		return f, true
	}

	var s string
	if json.Unmarshal(data, &s) != nil {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

func clampInt(f float64) int {
	if f >= math.MaxInt {
		return math.MaxInt
	}
	return int(f)
}
