package presets

import (
	"github.com/vik-ma/local-lift-log-sub002/internal/sumcalc"
	"github.com/vik-ma/local-lift-log-sub002/internal/sumcalc/units"
)

var (
	metricPlates   = []float64{25, 20, 15, 10, 5, 2.5, 1.25}
	imperialPlates = []float64{45, 35, 25, 10, 5, 2.5}
)

// Defaults returns the presets a fresh store is seeded with.
func Defaults(group units.Group, metric bool) []sumcalc.Preset {
	switch group {
	case units.Weight:
		return defaultEquipmentWeights(metric)
	case units.Distance:
		return defaultDistances(metric)
	default:
		return nil
	}
}

func defaultEquipmentWeights(metric bool) []sumcalc.Preset {
	unit, barbell, dumbbell, plates := "lbs", 45.0, 5.0, imperialPlates
	if metric {
		unit, barbell, dumbbell, plates = "kg", 20, 2, metricPlates
	}

	weights := []sumcalc.Preset{
		{Name: "Barbell", Magnitude: barbell, Unit: unit, Group: units.Weight},
		{Name: "Dumbbell", Magnitude: dumbbell, Unit: unit, Group: units.Weight},
	}
	for _, plate := range plates {
		weights = append(weights, sumcalc.Preset{
			Name:      sumcalc.FormatNumber(plate) + " " + unit,
			Magnitude: plate,
			Unit:      unit,
			Group:     units.Weight,
		})
	}
	return weights
}

func defaultDistances(metric bool) []sumcalc.Preset {
	if metric {
		return []sumcalc.Preset{
			{Name: "5K", Magnitude: 5, Unit: "km", Group: units.Distance},
			{Name: "10K", Magnitude: 10, Unit: "km", Group: units.Distance},
			{Name: "1 Mile", Magnitude: 1.6, Unit: "km", Group: units.Distance},
		}
	}
	return []sumcalc.Preset{
		{Name: "5K", Magnitude: 3.1, Unit: "mi", Group: units.Distance},
		{Name: "10K", Magnitude: 6.2, Unit: "mi", Group: units.Distance},
		{Name: "1 Mile", Magnitude: 1, Unit: "mi", Group: units.Distance},
	}
}
