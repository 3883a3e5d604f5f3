package zone

import (
	"errors"
	"math"
	"strconv"

	"Atex/internal/gas"
)

type LeakType string

const (
	LeakContinuous LeakType = "continuous"
	LeakPrimary    LeakType = "primary"
	LeakSecondary  LeakType = "secondary"
)

type VentilationType string

const (
	VentilationNatural    VentilationType = "natural"
	VentilationMechanical VentilationType = "mechanical"
)

var ErrDivideByZero = errors.New("ventilation rate is zero")

type Scenario struct {
	Name            string          `json:"name"`
	Gas             gas.Property    `json:"gas"`
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

type Result struct {
	Zone0RadiusM   float64 `json:"zone0_radius_m"`
	Zone1RadiusM   float64 `json:"zone1_radius_m"`
	Zone2RadiusM   float64 `json:"zone2_radius_m"`
	DilutionFactor float64 `json:"dilution_factor"`
}

type step struct {
	maxD   float64
	radius float64
}

// Evaluated top to bottom, first threshold not exceeded wins.
var radiusSteps = []step{
	{0.01, 0.5},
	{0.1, 1.0},
	{1.0, 3.0},
	{10.0, 5.0},
	{math.Inf(1), 8.0},
}

const fallbackRadius = 0.5

// BaseRadius maps a dilution factor to the uncorrected zone radius in metres.
func BaseRadius(d float64) float64 {
	for _, s := range radiusSteps {
		if d <= s.maxD {
			return s.radius
		}
	}
	return fallbackRadius
}

// Calculate returns the zone radii for a scenario. Leak type only gates the
// zone 0 radius; zone 1 and zone 2 use the same corrected radius for every
// leak type.
func Calculate(in Scenario) (Result, error) {
	if in.VentilationRate == 0 {
		return Result{}, ErrDivideByZero
	}
	d := in.LeakRate / in.VentilationRate
	r := BaseRadius(d)

	switch in.Gas.Group {
	case gas.GroupIIC:
		r *= 1.2
	case gas.GroupIIB:
		r *= 1.1
	}
	if in.Gas.LEL < 2 {
		r *= 1.1
	}

	if in.Volume < 10 {
		r *= 0.8
	}
	if in.Temperature > 40 {
		r *= 1.05
	}
	if in.Pressure > 1.2 {
		r *= 1.1
	}

	zone0 := 0.0
	if in.LeakType == LeakContinuous {
		zone0 = r * 0.3
	}

	return Result{
		Zone0RadiusM:   round(zone0, 2),
		Zone1RadiusM:   round(r*0.7, 2),
		Zone2RadiusM:   round(r, 2),
		DilutionFactor: round(d, 4),
	}, nil
}

// round rounds the exact binary value of v to places decimals, ties to even,
// so 1/32 gives 0.0312 at four places.
func round(v float64, places int) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', places, 64), 64)
	if err != nil {
		return v
	}
	return r
}
