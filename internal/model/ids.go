package model

import (
	"math"
	"strconv"
	"strings"
)

// SourceID is an MLBAM player identifier as used by Statcast.
type SourceID string

// TargetID is a FanGraphs player identifier as used by season aggregates.
type TargetID string

// ParseSourceID normalizes a raw identifier cell. Numeric forms such as
// "660271", "660271.0" and " 660271 " all become "660271"; null markers yield
// the zero SourceID.
func ParseSourceID(raw string) SourceID {
	return SourceID(normalizeID(raw))
}

// ParseTargetID normalizes a raw FanGraphs identifier. Non-numeric IDs
// (minor-league "sa..." keys) are kept verbatim.
func ParseTargetID(raw string) TargetID {
	return TargetID(normalizeID(raw))
}

func (id SourceID) IsZero() bool   { return id == "" }
func (id SourceID) String() string { return string(id) }
func (id TargetID) IsZero() bool   { return id == "" }
func (id TargetID) String() string { return string(id) }

func normalizeID(raw string) string {
	s := strings.TrimSpace(raw)
	if IsNull(s) {
		return ""
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return s
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return ""
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return s
}

// IsNull reports whether a CSV cell represents a missing value.
func IsNull(s string) bool {
	switch strings.TrimSpace(s) {
	case "", "NA", "N/A", "NaN", "nan", "null", "NULL", "None", "<NA>":
		return true
	}
	return false
}
