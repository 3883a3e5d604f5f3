package batch

import (
	"fmt"

	"Atex/internal/calc/zone"
)

// Row pairs a scenario with its freshly computed result.
type Row struct {
	Scenario zone.Scenario `json:"scenario"`
	Result   zone.Result   `json:"result"`
}

// Calculate runs the zone calculator over scenarios in order. Results are
// recomputed on every call and never cached.
func Calculate(scenarios []zone.Scenario) ([]Row, error) {
	out := make([]Row, 0, len(scenarios))
	for i, sc := range scenarios {
		res, err := zone.Calculate(sc)
		if err != nil {
			return nil, fmt.Errorf("scenario %d (%s): %w", i+1, sc.Name, err)
		}
		out = append(out, Row{Scenario: sc, Result: res})
	}
	return out, nil
}
