package zone

import (
	"errors"
	"fmt"
	"strings"

	"Atex/internal/gas"
)

var ErrInvalidInput = errors.New("invalid input")

// Resolver looks up gas properties by name.
type Resolver interface {
	Resolve(name string) (gas.Property, error)
}

// Input is the scenario form as submitted by a client; the gas is referenced
// by name and resolved against the gas table.
type Input struct {
	Name            string          `json:"name"`
	GasName         string          `json:"gas"`
	LeakType        LeakType        `json:"leak_type"`
	LeakRate        float64         `json:"leak_rate_m3h"`
	LeakDuration    float64         `json:"leak_duration_h"`
	VentilationRate float64         `json:"ventilation_rate_m3h"`
	VentilationType VentilationType `json:"ventilation_type"`
	Volume          float64         `json:"volume_m3"`
	Temperature     float64         `json:"temperature_c"`
	Pressure        float64         `json:"pressure_bar"`
	Notes           string          `json:"notes"`
}

type bound struct {
	field    string
	min, max float64
}

var (
	leakRateBounds     = bound{"leak_rate_m3h", 0.01, 1000}
	leakDurationBounds = bound{"leak_duration_h", 0.01, 24}
	ventilationBounds  = bound{"ventilation_rate_m3h", 0.01, 10000}
	volumeBounds       = bound{"volume_m3", 0.1, 10000}
	temperatureBounds  = bound{"temperature_c", -40, 80}
	pressureBounds     = bound{"pressure_bar", 0.8, 2.0}
)

func (b bound) check(v float64) error {
	if !(v >= b.min && v <= b.max) {
		return fmt.Errorf("%w: %s must be between %g and %g, got %g", ErrInvalidInput, b.field, b.min, b.max, v)
	}
	return nil
}

// NewScenario resolves the gas and validates the form ranges. An unknown gas
// fails with gas.ErrNotFound before anything else is checked.
func NewScenario(in Input, gases Resolver) (Scenario, error) {
	g, err := gases.Resolve(in.GasName)
	if err != nil {
		return Scenario{}, err
	}

	leak, err := parseLeakType(in.LeakType)
	if err != nil {
		return Scenario{}, err
	}
	vent, err := parseVentilationType(in.VentilationType)
	if err != nil {
		return Scenario{}, err
	}

	checks := []struct {
		b bound
		v float64
	}{
		{leakRateBounds, in.LeakRate},
		{leakDurationBounds, in.LeakDuration},
		{ventilationBounds, in.VentilationRate},
		{volumeBounds, in.Volume},
		{temperatureBounds, in.Temperature},
		{pressureBounds, in.Pressure},
	}
	for _, c := range checks {
		if err := c.b.check(c.v); err != nil {
			return Scenario{}, err
		}
	}

	return Scenario{
		Name:            strings.TrimSpace(in.Name),
		Gas:             g,
		LeakType:        leak,
		LeakRate:        in.LeakRate,
		LeakDuration:    in.LeakDuration,
		VentilationRate: in.VentilationRate,
		VentilationType: vent,
		Volume:          in.Volume,
		Temperature:     in.Temperature,
		Pressure:        in.Pressure,
		Notes:           in.Notes,
	}, nil
}

func parseLeakType(t LeakType) (LeakType, error) {
	switch LeakType(strings.ToLower(strings.TrimSpace(string(t)))) {
	case "", LeakContinuous:
		return LeakContinuous, nil
	case LeakPrimary:
		return LeakPrimary, nil
	case LeakSecondary:
		return LeakSecondary, nil
	}
	return "", fmt.Errorf("%w: unknown leak type %q", ErrInvalidInput, t)
}

func parseVentilationType(t VentilationType) (VentilationType, error) {
	switch VentilationType(strings.ToLower(strings.TrimSpace(string(t)))) {
	case "", VentilationNatural:
		return VentilationNatural, nil
	case VentilationMechanical:
		return VentilationMechanical, nil
	}
	return "", fmt.Errorf("%w: unknown ventilation type %q", ErrInvalidInput, t)
}
