package sumcalc

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/vik-ma/local-lift-log-sub002/internal/sumcalc/units"

	"go.uber.org/multierr"
)

// Calculation string format:
//
//	session       := item ("," item)* ["|" totalMultiplier]
//	presetItem    := ("e" | "d") "[" presetId "]" "x" multiplier
//	numberItem    := "n[" decimalNumber "]x" multiplier
//	decimalNumber := [1-9]\d*(\.\d{1,2})? | 0\.\d{1,2}
//
// Expression items are stored as number items holding their evaluated value.
const (
	itemSeparator        = ","
	totalSeparator       = "|"
	tagNumber            = "n"
	tagEquipmentPreset   = "e"
	tagDistancePreset    = "d"
	multiplierSeparator  = "x"
	decimalNumberPattern = `(?:[1-9]\d*(?:\.\d{1,2})?|0\.\d{1,2})`
)

var (
	itemRegex          = regexp.MustCompile(`^([nde])\[([^\[\]]*)\]x([^\[\]]*)$`)
	decimalNumberRegex = regexp.MustCompile(`^` + decimalNumberPattern + `$`)
	presetIDRegex      = regexp.MustCompile(`^[1-9]\d*$`)
	// plain non-negative numbers that are clamped to 1 when outside the grammar
	looseNumberRegex = regexp.MustCompile(`^\d+(?:\.\d+)?$`)
)

var (
	ErrUnencodableItem            = errors.New("unencodable item")
	ErrUnencodableTotalMultiplier = errors.New("unencodable total multiplier")
)

type ItemEncodeError struct {
	Index  int
	Item   Item
	Reason string
}

func (e *ItemEncodeError) Error() string {
	return fmt.Sprintf("item [%d] %q: %s", e.Index, e.Item.Label, e.Reason)
}

func (e *ItemEncodeError) Unwrap() error {
	return ErrUnencodableItem
}

func presetTag(group units.Group) (string, bool) {
	switch group {
	case units.Weight:
		return tagEquipmentPreset, true
	case units.Distance:
		return tagDistancePreset, true
	default:
		return "", false
	}
}

// encodeDecimal renders x in the grammar's decimalNumber form.
func encodeDecimal(x float64) (string, bool) {
	if !isFinite(x) || x <= 0 || !hasAtMostTwoDecimals(x) {
		return "", false
	}
	s := FormatNumber(x)
	if !decimalNumberRegex.MatchString(s) {
		return "", false
	}
	return s, true
}

func encodeMultiplierInput(input string) (string, error) {
	m, valid := ParseMultiplierOrDefault(input)
	if !valid {
		return "", fmt.Errorf("invalid multiplier [%s]", input)
	}
	encoded, ok := encodeDecimal(m)
	if !ok {
		return "", fmt.Errorf("multiplier [%s] needs at most two decimals", input)
	}
	return encoded, nil
}

func encodeItem(item Item, group units.Group) (string, string) {
	multiplier, err := encodeMultiplierInput(item.MultiplierInput)
	if err != nil {
		return "", err.Error()
	}

	switch item.Kind {
	case Number, Expression:
		value, ok := encodeDecimal(item.Value)
		if !ok {
			return "", fmt.Sprintf("value %v must be above 0 with at most two decimals", item.Value)
		}
		return tagNumber + "[" + value + "]" + multiplierSeparator + multiplier, ""

	case PresetWeight, PresetDistance:
		expectedKind, ok := PresetKind(group)
		if !ok || expectedKind != item.Kind {
			return "", fmt.Sprintf("%s item in a %s session", item.Kind, group)
		}
		if item.PresetID <= 0 {
			return "", "missing preset id"
		}
		tag, _ := presetTag(group)
		return tag + "[" + strconv.FormatInt(item.PresetID, 10) + "]" + multiplierSeparator + multiplier, ""
	}

	return "", fmt.Sprintf("unknown kind %d", int(item.Kind))
}

// Encode writes the session as a calculation string. It never writes
// partial output: any item outside the grammar fails the whole encode.
func Encode(session Session) (string, error) {
	var (
		tokens []string
		errs   error
	)
	for i, item := range session.Items {
		token, reason := encodeItem(item, session.Group)
		if reason != "" {
			errs = multierr.Append(errs, &ItemEncodeError{Index: i, Item: item, Reason: reason})
			continue
		}
		tokens = append(tokens, token)
	}

	totalSegment := ""
	if strings.TrimSpace(session.TotalMultiplierInput) != "" {
		total, err := encodeMultiplierInput(session.TotalMultiplierInput)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%w: %s", ErrUnencodableTotalMultiplier, err))
		} else if total != "1" {
			totalSegment = totalSeparator + total
		}
	}

	if errs != nil {
		return "", errs
	}
	if len(tokens) == 0 {
		return "", nil
	}

	return strings.Join(tokens, itemSeparator) + totalSegment, nil
}

type Decoded struct {
	Items           []Item  `json:"items"`
	TotalMultiplier float64 `json:"totalMultiplier"`
	// Skipped counts the tokens that were dropped while decoding
	Skipped int `json:"skipped"`
}

// decodeMultiplier returns the multiplier of an item token. Plain numbers
// outside the grammar are clamped to 1; anything else rejects the item.
func decodeMultiplier(token string) (float64, bool) {
	if decimalNumberRegex.MatchString(token) {
		m, err := strconv.ParseFloat(token, 64)
		if err == nil && m > 0 {
			return m, true
		}
		return 1, true
	}
	if looseNumberRegex.MatchString(token) {
		return 1, true
	}
	return 0, false
}

func decodeTotalMultiplier(segment string, present bool) float64 {
	if !present || !decimalNumberRegex.MatchString(segment) {
		return 1
	}
	m, err := strconv.ParseFloat(segment, 64)
	if err != nil || m <= 0 {
		return 1
	}
	return m
}

func multiplierInput(m float64) string {
	if m == 1 {
		return ""
	}
	return FormatNumber(m)
}

func decodeItem(token, activeUnit string, group units.Group, lookup PresetLookup) (Item, bool) {
	match := itemRegex.FindStringSubmatch(token)
	if match == nil {
		return Item{}, false
	}
	tag, body, multiplierToken := match[1], match[2], match[3]

	multiplier, ok := decodeMultiplier(multiplierToken)
	if !ok {
		return Item{}, false
	}
	input := multiplierInput(multiplier)

	if tag == tagNumber {
		if !decimalNumberRegex.MatchString(body) {
			return Item{}, false
		}
		value, err := strconv.ParseFloat(body, 64)
		if err != nil || value <= 0 {
			return Item{}, false
		}
		return NewItem(ItemParams{
			Kind:            Number,
			Unit:            activeUnit,
			Group:           group,
			MultiplierInput: input,
			Value:           value,
		})
	}

	expectedTag, ok := presetTag(group)
	if !ok || tag != expectedTag || !presetIDRegex.MatchString(body) {
		return Item{}, false
	}
	presetID, err := strconv.ParseInt(body, 10, 64)
	if err != nil {
		return Item{}, false
	}
	preset, ok := lookup.Lookup(presetID)
	if !ok {
		// the preset was deleted from the store
		return Item{}, false
	}

	kind, _ := PresetKind(group)
	return NewItem(ItemParams{
		Kind:            kind,
		Unit:            activeUnit,
		Group:           group,
		MultiplierInput: input,
		Preset:          &preset,
	})
}

// Decode reads a calculation string. It is fail-soft: tokens that do not
// match the grammar, belong to the other unit group, or reference a preset
// missing from lookup are skipped, and the rest of the list still loads.
func Decode(text, activeUnit string, group units.Group, lookup PresetLookup) Decoded {
	decoded := Decoded{
		Items:           []Item{},
		TotalMultiplier: 1,
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return decoded
	}

	itemsPart, totalPart, hasTotal := strings.Cut(text, totalSeparator)
	decoded.TotalMultiplier = decodeTotalMultiplier(totalPart, hasTotal)

	if itemsPart == "" {
		return decoded
	}

	for _, token := range strings.Split(itemsPart, itemSeparator) {
		item, ok := decodeItem(strings.TrimSpace(token), activeUnit, group, lookup)
		if !ok {
			decoded.Skipped++
			continue
		}
		decoded.Items = append(decoded.Items, item)
	}

	return decoded
}

// DecodeSession decodes text into a Session and returns the number of skipped tokens.
func DecodeSession(text, activeUnit string, group units.Group, lookup PresetLookup) (Session, int) {
	decoded := Decode(text, activeUnit, group, lookup)
	return Session{
		Items:                decoded.Items,
		Group:                group,
		TotalMultiplierInput: multiplierInput(decoded.TotalMultiplier),
		ActiveUnit:           activeUnit,
	}, decoded.Skipped
}
