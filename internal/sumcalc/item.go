package sumcalc

import (
	"fmt"
	"strings"

	"github.com/vik-ma/local-lift-log-sub002/internal/sumcalc/expr"
	"github.com/vik-ma/local-lift-log-sub002/internal/sumcalc/units"
)

type Kind int

const (
	Number Kind = iota
	Expression
	PresetWeight
	PresetDistance
)

var kindNames = map[Kind]string{
	Number:         "number",
	Expression:     "expression",
	PresetWeight:   "preset-weight",
	PresetDistance: "preset-distance",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

func (k Kind) MarshalText() ([]byte, error) {
	if _, ok := kindNames[k]; !ok {
		return nil, fmt.Errorf("unknown item kind: %d", int(k))
	}
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	for kind, name := range kindNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown item kind: %s", text)
}

func (k Kind) IsPreset() bool {
	return k == PresetWeight || k == PresetDistance
}

// PresetKind returns the preset item kind that is legal within the group.
func PresetKind(group units.Group) (Kind, bool) {
	switch group {
	case units.Weight:
		return PresetWeight, true
	case units.Distance:
		return PresetDistance, true
	default:
		return 0, false
	}
}

// Preset is a named magnitude kept in the external preset store
// (equipment weights and distances).
type Preset struct {
	ID        int64       `json:"id"`
	Name      string      `json:"name"`
	Magnitude float64     `json:"magnitude"`
	Unit      string      `json:"unit"`
	Group     units.Group `json:"group"`
	Favorite  bool        `json:"favorite"`
}

// PresetLookup is an already resolved id -> preset snapshot of the preset store.
type PresetLookup map[int64]Preset

func NewPresetLookup(presets []Preset) PresetLookup {
	lookup := make(PresetLookup, len(presets))
	for _, p := range presets {
		lookup[p.ID] = p
	}
	return lookup
}

func (l PresetLookup) Lookup(id int64) (Preset, bool) {
	p, ok := l[id]
	return p, ok
}

type Item struct {
	Kind  Kind    `json:"kind"`
	Value float64 `json:"value"`
	Label string  `json:"label"`
	Unit  string  `json:"unit"`
	// SourceExpression is only set for Expression items
	SourceExpression string `json:"sourceExpression,omitempty"`
	// PresetID is only set for preset items
	PresetID        int64   `json:"presetId,omitempty"`
	Multiplier      float64 `json:"multiplier"`
	MultiplierInput string  `json:"multiplierInput"`
}

// WithMultiplierInput returns a copy of the item holding the new raw
// multiplier text and the multiplier derived from it.
func (i Item) WithMultiplierInput(input string) Item {
	i.MultiplierInput = input
	i.Multiplier, _ = ParseMultiplierOrDefault(input)
	return i
}

// MultiplierInvalid is true for non-empty multiplier text that does not parse.
func (i Item) MultiplierInvalid() bool {
	_, valid := ParseMultiplierOrDefault(i.MultiplierInput)
	return !valid
}

func (i Item) EffectiveMultiplier() float64 {
	m, _ := ParseMultiplierOrDefault(i.MultiplierInput)
	return m
}

type ItemParams struct {
	Kind Kind
	// Unit is the session's active unit
	Unit             string
	Group            units.Group
	MultiplierInput  string
	Value            float64
	SourceExpression string
	Preset           *Preset
}

func numberLabel(value float64, unit string) string {
	return FormatNumber(value) + " " + unit
}

// NewItem builds a calculation item. It returns false when the value is
// not a finite non-negative number, or when a preset item has no usable preset.
func NewItem(params ItemParams) (Item, bool) {
	item := Item{
		Kind: params.Kind,
		Unit: params.Unit,
	}.WithMultiplierInput(params.MultiplierInput)

	switch params.Kind {
	case Number, Expression:
		if !isFinite(params.Value) || params.Value < 0 {
			return Item{}, false
		}
		item.Value = Round2(params.Value)
		if !isFinite(item.Value) {
			return Item{}, false
		}
		if params.Kind == Number {
			item.Label = numberLabel(item.Value, params.Unit)
			return item, true
		}

		source := strings.TrimSpace(params.SourceExpression)
		if source == "" {
			return Item{}, false
		}
		item.Label = source
		item.SourceExpression = source
		return item, true

	case PresetWeight, PresetDistance:
		expectedKind, ok := PresetKind(params.Group)
		if !ok || expectedKind != params.Kind || params.Preset == nil {
			return Item{}, false
		}
		value, ok := presetValue(*params.Preset, params.Unit, params.Group)
		if !ok {
			return Item{}, false
		}
		item.Value = value
		item.Label = params.Preset.Name
		item.PresetID = params.Preset.ID
		return item, true
	}

	return Item{}, false
}

// presetValue converts the preset magnitude into the active unit.
func presetValue(preset Preset, activeUnit string, group units.Group) (float64, bool) {
	if !units.IsValid(preset.Unit, group) || !units.IsValid(activeUnit, group) {
		return 0, false
	}
	if !isFinite(preset.Magnitude) || preset.Magnitude < 0 {
		return 0, false
	}

	value := preset.Magnitude
	if preset.Unit != activeUnit {
		value = units.Convert(value, preset.Unit, activeUnit, group)
	}

	value = Round2(value)
	if !isFinite(value) {
		return 0, false
	}
	return value, true
}

// NewExpressionItem evaluates the typed calculation and builds an
// Expression item from it.
func NewExpressionItem(source, unit, multiplierInput string) (Item, bool) {
	validation := expr.Validate(source)
	if !validation.IsValid {
		return Item{}, false
	}
	return NewItem(ItemParams{
		Kind:             Expression,
		Unit:             unit,
		MultiplierInput:  multiplierInput,
		Value:            *validation.Result,
		SourceExpression: source,
	})
}

type ItemPatch struct {
	Value            float64
	Label            string
	Unit             string
	SourceExpression string
	PresetID         int64
}

// EditItem replaces the value, label and unit of an item while keeping
// its kind and multiplier.
func EditItem(existing Item, patch ItemPatch) Item {
	edited := existing
	edited.Value = patch.Value
	edited.Label = patch.Label
	edited.Unit = patch.Unit

	switch existing.Kind {
	case Expression:
		edited.SourceExpression = patch.SourceExpression
	case PresetWeight, PresetDistance:
		edited.PresetID = patch.PresetID
	}

	return edited
}

// SwapPreset points a preset item at another preset of the same group.
func SwapPreset(existing Item, preset Preset, activeUnit string, group units.Group) (Item, bool) {
	expectedKind, ok := PresetKind(group)
	if !ok || existing.Kind != expectedKind {
		return existing, false
	}

	value, ok := presetValue(preset, activeUnit, group)
	if !ok {
		return existing, false
	}

	return EditItem(existing, ItemPatch{
		Value:    value,
		Label:    preset.Name,
		Unit:     activeUnit,
		PresetID: preset.ID,
	}), true
}

// ReviseExpression re-evaluates an edited calculation for an Expression item.
func ReviseExpression(existing Item, source string) (Item, bool) {
	if existing.Kind != Expression {
		return existing, false
	}

	validation := expr.Validate(source)
	if !validation.IsValid {
		return existing, false
	}

	value := Round2(*validation.Result)
	if !isFinite(value) || value < 0 {
		return existing, false
	}

	source = strings.TrimSpace(source)
	return EditItem(existing, ItemPatch{
		Value:            value,
		Label:            source,
		Unit:             existing.Unit,
		SourceExpression: source,
	}), true
}
