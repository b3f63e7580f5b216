package idm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Level is a severity, likelihood, or confidence value. Upstream phase
// outputs use qualitative labels ("High") and bare numbers interchangeably,
// so Level carries either form and round-trips it unchanged on the wire.
type Level struct {
	Label   string
	Numeric float64
	IsNum   bool
}

// LabelLevel builds a qualitative Level.
func LabelLevel(s string) Level { return Level{Label: s} }

// NumericLevel builds a numeric Level.
func NumericLevel(v float64) Level { return Level{Numeric: v, IsNum: true} }

// String returns the label, or the numeric value formatted without
// trailing zeros.
func (l Level) String() string {
	if l.IsNum {
		return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%f", l.Numeric), "0"), ".")
	}
	return l.Label
}

// IsZero reports whether the level carries no value at all.
func (l Level) IsZero() bool { return !l.IsNum && l.Label == "" }

// Rank maps the level onto a comparable scale so severities sort. Numeric
// levels rank by value; labels rank Critical > High > Medium > Low.
func (l Level) Rank() float64 {
	if l.IsNum {
		return l.Numeric
	}
	switch strings.ToLower(l.Label) {
	case "critical":
		return 4
	case "high":
		return 3
	case "medium":
		return 2
	case "low":
		return 1
	}
	return 0
}

// MarshalJSON writes the label as a JSON string or the numeric value as a
// JSON number, matching whichever form was ingested.
func (l Level) MarshalJSON() ([]byte, error) {
	if l.IsNum {
		return json.Marshal(l.Numeric)
	}
	return json.Marshal(l.Label)
}

// UnmarshalJSON accepts either a JSON string or a JSON number.
func (l *Level) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*l = NumericLevel(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("level must be a string or number, got %s", string(data))
	}
	*l = LabelLevel(s)
	return nil
}
