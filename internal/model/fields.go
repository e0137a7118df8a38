package model

import (
	"strconv"
	"strings"
	"time"
)

// DateLayout is the only accepted calendar date format (ISO-8601, YYYY-MM-DD).
const DateLayout = "2006-01-02"

// ParseDate parses s as a calendar date in DateLayout.  Any other separator
// or shape is a validation error.  The returned time is midnight UTC.
func ParseDate(field, s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, invalid(field, "date must be in YYYY-MM-DD format")
	}
	return d, nil
}

// FormatDate renders d in DateLayout.
func FormatDate(d time.Time) string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

// validEmail accepts the basic local@domain shape: exactly one '@' with
// non-empty parts on both sides.
func validEmail(s string) bool {
	if strings.Count(s, "@") != 1 {
		return false
	}
	local, domain, _ := strings.Cut(s, "@")
	return strings.TrimSpace(local) != "" && strings.TrimSpace(domain) != ""
}

// scalarString converts a map value to its string form.  Strings pass
// through; integers and JSON numbers are rendered in decimal.  Anything else
// is rejected.
func scalarString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case int:
		return strconv.Itoa(t), true
	case int32:
		return strconv.FormatInt(int64(t), 10), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case uint:
		return strconv.FormatUint(uint64(t), 10), true
	case uint32:
		return strconv.FormatUint(uint64(t), 10), true
	case uint64:
		return strconv.FormatUint(t, 10), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	}
	return "", false
}

// scalarInt converts a map value to an int.  JSON numbers arrive as float64
// and must be whole.
func scalarInt(v any) (int, bool) {
	switch t := v.(type) {
	case int:
		return t, true
	case int32:
		return int(t), true
	case int64:
		return int(t), true
	case uint32:
		return int(t), true
	case float64:
		if t != float64(int(t)) {
			return 0, false
		}
		return int(t), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

// requireKeys returns a validation error naming the first missing key.
func requireKeys(data map[string]any, keys ...string) error {
	for _, k := range keys {
		if _, ok := data[k]; !ok {
			return invalid(k, "missing required field")
		}
	}
	return nil
}

func stringField(data map[string]any, key string) (string, error) {
	s, ok := scalarString(data[key])
	if !ok {
		return "", invalid(key, "must be a string or number")
	}
	return s, nil
}
