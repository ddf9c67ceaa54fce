package units

import (
	"math"
	"slices"
	"strings"
)

type Group int

const (
	Weight Group = iota
	Distance
	// Measurement is used for body measurements (mm, cm, in)
	Measurement
)

var groupNames = map[Group]string{
	Weight:      "weight",
	Distance:    "distance",
	Measurement: "measurement",
}

func (g Group) String() string {
	if name, ok := groupNames[g]; ok {
		return name
	}
	return "unknown"
}

func (g Group) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

func (g *Group) UnmarshalText(text []byte) error {
	parsed, err := ParseGroup(string(text))
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

func ParseGroup(s string) (Group, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "weight", "equipment", "e":
		return Weight, nil
	case "distance", "d":
		return Distance, nil
	case "measurement":
		return Measurement, nil
	default:
		return 0, &UnknownGroupError{Name: s}
	}
}

type UnknownGroupError struct {
	Name string
}

func (e *UnknownGroupError) Error() string {
	return "unknown unit group: " + e.Name
}

// factors to each group's base unit: kg for weight, m for distance, mm for measurement
var toBase = map[Group]map[string]float64{
	Weight: {
		"kg":  1,
		"lbs": 0.45359237,
	},
	Distance: {
		"km": 1000,
		"m":  1,
		"mi": 1609.34,
		"ft": 0.3048,
		"yd": 0.9144,
	},
	Measurement: {
		"mm": 1,
		"cm": 10,
		"in": 25.4,
	},
}

var orderedUnits = map[Group][]string{
	Weight:      {"kg", "lbs"},
	Distance:    {"km", "m", "mi", "ft", "yd"},
	Measurement: {"mm", "cm", "in"},
}

func WeightUnits() []string {
	return Units(Weight)
}

func DistanceUnits() []string {
	return Units(Distance)
}

// Units returns a copy of the legal unit symbols for the group, in display order.
func Units(group Group) []string {
	return slices.Clone(orderedUnits[group])
}

func IsValid(unit string, group Group) bool {
	_, ok := toBase[group][unit]
	return ok
}

// GroupOf returns the group the unit symbol belongs to.
func GroupOf(unit string) (Group, bool) {
	for _, group := range []Group{Weight, Distance, Measurement} {
		if IsValid(unit, group) {
			return group, true
		}
	}
	return 0, false
}

// Convert converts value between two units of the same group.
// Non-finite or non-positive values yield 0, and unknown unit symbols
// leave the value unconverted. Convert never panics.
func Convert(value float64, fromUnit, toUnit string, group Group) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) || value <= 0 {
		return 0
	}

	if fromUnit == toUnit {
		return value
	}

	factors, ok := toBase[group]
	if !ok {
		return value
	}
	fromFactor, fromOk := factors[fromUnit]
	toFactor, toOk := factors[toUnit]
	if !fromOk || !toOk {
		return value
	}

	converted := value * fromFactor / toFactor
	if math.IsNaN(converted) || math.IsInf(converted, 0) {
		return value
	}

	return converted
}
