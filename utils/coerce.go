package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Layouts tried in order when a string must be read as a date.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
}

// ToNumber converts x to a float64. Unlike ToFloat, strings holding
// a number are parsed and booleans are rejected.
func ToNumber(x interface{}) (float64, bool) {
	switch t := x.(type) {
	case bool, *bool:
		return 0, false
	case string:
		return parseNumber(t)
	case *string:
		if t == nil {
			return 0, false
		}
		return parseNumber(*t)
	case []byte:
		return parseNumber(string(t))
	}
	return ToFloat(x)
}

func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	value, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(value) {
		return 0, false
	}
	return value, true
}

// ToTime converts time values and date-like strings into a time.
func ToTime(x interface{}) (time.Time, bool) {
	switch t := x.(type) {
	case time.Time:
		return t, true
	case *time.Time:
		if t == nil {
			return time.Time{}, false
		}
		return *t, true
	}

	str, ok := ToString(x)
	if !ok {
		return time.Time{}, false
	}

	str = strings.TrimSpace(str)
	for _, layout := range dateLayouts {
		parsed, err := time.Parse(layout, str)
		if err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

func ToBool(x interface{}) (bool, bool) {
	switch t := deref(x).(type) {
	case bool:
		return t, true
	case string:
		value, err := strconv.ParseBool(strings.TrimSpace(t))
		return value, err == nil
	}

	if IsNumber(x) {
		value, _ := ToFloat(x)
		return value != 0, true
	}
	return false, false
}

// ToDisplayString formats any value the way it would be printed in a
// grid cell. Numbers use the shortest representation so 26 and 26.0
// both print as "26".
func ToDisplayString(x interface{}) string {
	switch t := deref(x).(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case time.Time:
		return t.Format(time.RFC3339Nano)
	case fmt.Stringer:
		return t.String()
	}

	if IsInt(x) {
		value, _ := ToInt64(x)
		return strconv.FormatInt(value, 10)
	}

	return fmt.Sprintf("%v", x)
}
