package presets

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vik-ma/local-lift-log-sub002/internal/sumcalc"
	"github.com/vik-ma/local-lift-log-sub002/internal/sumcalc/units"
)

var (
	ErrPresetNotFound   = errors.New("preset not found")
	ErrPresetExists     = errors.New("preset already exists")
	ErrUnsupportedGroup = errors.New("unit group has no presets")
	ErrInvalidPreset    = errors.New("invalid preset")
)

//go:generate mockgen -source=$GOFILE -destination=store_mocks_test.go -package=presets_test

type Lister interface {
	List(ctx context.Context, group units.Group) ([]sumcalc.Preset, error)
}

// Store keeps the named equipment weights and distances that preset items refer to.
type Store interface {
	Lister
	Get(ctx context.Context, group units.Group, id int64) (sumcalc.Preset, error)
	Add(ctx context.Context, preset sumcalc.Preset) (sumcalc.Preset, error)
	Delete(ctx context.Context, group units.Group, id int64) error
}

type table struct {
	name         string
	magnitudeCol string
	unitCol      string
}

func tableFor(group units.Group) (table, error) {
	switch group {
	case units.Weight:
		return table{name: "equipment_weight", magnitudeCol: "weight", unitCol: "weight_unit"}, nil
	case units.Distance:
		return table{name: "distance", magnitudeCol: "distance", unitCol: "distance_unit"}, nil
	default:
		return table{}, fmt.Errorf("%w: %s", ErrUnsupportedGroup, group)
	}
}

func Validate(p sumcalc.Preset) error {
	if _, err := tableFor(p.Group); err != nil {
		return err
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidPreset)
	}
	if p.Magnitude < 0 {
		return fmt.Errorf("%w: negative magnitude %v", ErrInvalidPreset, p.Magnitude)
	}
	if !units.IsValid(p.Unit, p.Group) {
		return fmt.Errorf("%w: unit [%s] not in group %s", ErrInvalidPreset, p.Unit, p.Group)
	}
	return nil
}

// LoadLookup resolves all presets of the group, ready to be passed to sumcalc.Decode.
func LoadLookup(ctx context.Context, store Lister, group units.Group) (sumcalc.PresetLookup, error) {
	if _, ok := sumcalc.PresetKind(group); !ok {
		// measurement sessions only hold numbers and expressions
		return sumcalc.PresetLookup{}, nil
	}
	list, err := store.List(ctx, group)
	if err != nil {
		return nil, fmt.Errorf("list presets: %w", err)
	}
	return sumcalc.NewPresetLookup(list), nil
}

// Seed adds the default presets of the group when the store has none yet.
// It returns the number of added presets.
func Seed(ctx context.Context, store Store, group units.Group, metric bool) (int, error) {
	existing, err := store.List(ctx, group)
	if err != nil {
		return 0, fmt.Errorf("list presets: %w", err)
	}
	if len(existing) > 0 {
		return 0, nil
	}

	added := 0
	for _, p := range Defaults(group, metric) {
		if _, err := store.Add(ctx, p); err != nil {
			return added, fmt.Errorf("add default preset [%s]: %w", p.Name, err)
		}
		added++
	}
	return added, nil
}
