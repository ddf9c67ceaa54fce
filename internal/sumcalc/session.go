package sumcalc

import (
	"slices"

	"github.com/vik-ma/local-lift-log-sub002/internal/sumcalc/units"
)

// Session is one sum calculator list. The items are summed and encoded
// in insertion order.
type Session struct {
	Items                []Item      `json:"items"`
	Group                units.Group `json:"group"`
	TotalMultiplierInput string      `json:"totalMultiplierInput"`
	ActiveUnit           string      `json:"activeUnit"`
}

func NewSession(group units.Group, activeUnit string) Session {
	return Session{
		Items:      []Item{},
		Group:      group,
		ActiveUnit: activeUnit,
	}
}

func (s Session) TotalMultiplier() float64 {
	m, _ := ParseMultiplierOrDefault(s.TotalMultiplierInput)
	return m
}

func (s Session) TotalMultiplierInvalid() bool {
	_, valid := ParseMultiplierOrDefault(s.TotalMultiplierInput)
	return !valid
}

func (s Session) Append(item Item) Session {
	s.Items = append(slices.Clone(s.Items), item)
	return s
}

// Replace swaps the item at index; out of range indexes leave the session unchanged.
func (s Session) Replace(index int, item Item) Session {
	if index < 0 || index >= len(s.Items) {
		return s
	}
	s.Items = slices.Clone(s.Items)
	s.Items[index] = item
	return s
}

func (s Session) Remove(index int) Session {
	if index < 0 || index >= len(s.Items) {
		return s
	}
	s.Items = slices.Delete(slices.Clone(s.Items), index, index+1)
	return s
}

// Clear empties the list and resets the total multiplier.
func (s Session) Clear() Session {
	s.Items = []Item{}
	s.TotalMultiplierInput = ""
	return s
}

func (s Session) WithTotalMultiplierInput(input string) Session {
	s.TotalMultiplierInput = input
	return s
}

type Totals struct {
	Total  float64 `json:"total"`
	Result float64 `json:"result"`
}

// Aggregate sums all item contributions in full precision and rounds only
// the final total, then applies the total multiplier.
func Aggregate(s Session) Totals {
	var sum float64
	for _, item := range s.Items {
		if !isFinite(item.Value) || item.Value < 0 {
			continue
		}
		sum += item.Value * item.EffectiveMultiplier()
	}

	total := Round2(sum)
	return Totals{
		Total:  total,
		Result: Round2(total * s.TotalMultiplier()),
	}
}

// ConvertSession expresses every item value in newUnit. Units from another
// group leave the session unchanged.
func ConvertSession(s Session, newUnit string) Session {
	if newUnit == s.ActiveUnit || !units.IsValid(newUnit, s.Group) {
		return s
	}

	converted := s
	converted.ActiveUnit = newUnit
	converted.Items = make([]Item, len(s.Items))
	for i, item := range s.Items {
		value := Round2(units.Convert(item.Value, item.Unit, newUnit, s.Group))
		label := item.Label
		if item.Kind == Number {
			label = numberLabel(value, newUnit)
		}
		converted.Items[i] = EditItem(item, ItemPatch{
			Value:            value,
			Label:            label,
			Unit:             newUnit,
			SourceExpression: item.SourceExpression,
			PresetID:         item.PresetID,
		})
	}

	return converted
}
