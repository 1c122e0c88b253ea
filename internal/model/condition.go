package model

import (
	"encoding/json"
	"strings"
)

// Condition describes the wear of an item. Like Category, unrecognized
// labels are kept as-is.
type Condition struct {
	label string
	known bool
}

// Known conditions, best first.
var (
	ConditionNew     = Condition{label: "New", known: true}
	ConditionLikeNew = Condition{label: "Like New", known: true}
	ConditionGood    = Condition{label: "Good", known: true}
	ConditionFair    = Condition{label: "Fair", known: true}
	ConditionPoor    = Condition{label: "Poor", known: true}
)

var knownConditions = []Condition{
	ConditionNew,
	ConditionLikeNew,
	ConditionGood,
	ConditionFair,
	ConditionPoor,
}

// Conditions returns the known conditions, best first.
func Conditions() []Condition {
	out := make([]Condition, len(knownConditions))
	copy(out, knownConditions)
	return out
}

// ParseCondition maps a label onto a known condition (case-insensitive).
func ParseCondition(s string) Condition {
	trimmed := strings.TrimSpace(s)
	for _, c := range knownConditions {
		if strings.EqualFold(c.label, trimmed) {
			return c
		}
	}
	return Condition{label: s}
}

func (c Condition) String() string {
	return c.label
}

// Known reports whether c is part of the fixed enumeration.
func (c Condition) Known() bool {
	return c.known
}

// IsZero reports whether no condition was set.
func (c Condition) IsZero() bool {
	return c.label == "" && !c.known
}

// MarshalJSON encodes the condition as its label.
func (c Condition) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.label)
}

// UnmarshalJSON decodes a label, keeping unknown labels verbatim.
func (c *Condition) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*c = ParseCondition(s)
	return nil
}
