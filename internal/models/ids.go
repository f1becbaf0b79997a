package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// NormalizeID converts any identifier value the remote endpoints produce into
// its canonical string form. Some directories return ids as JSON numbers,
// others as strings; every identity comparison in this codebase goes through
// this function first.
func NormalizeID(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	case float64:
		// JSON numbers decode as float64; ids are integral in practice
		return strconv.FormatInt(int64(t), 10)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", v))
	}
}

// SameID reports whether two raw identifier values refer to the same record,
// regardless of the numeric/string form they arrived in.
func SameID(a, b any) bool {
	ka := NormalizeID(a)
	if ka == "" {
		return false
	}
	return ka == NormalizeID(b)
}
