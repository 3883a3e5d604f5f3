package importer

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"Atex/internal/calc/zone"

	"github.com/xuri/excelize/v2"
)

// Columns of the scenario sheet, in order. The first row is a header and is
// skipped.
var Columns = []string{
	"name", "gas", "leak_type", "leak_rate", "leak_duration", "ventilation_rate",
	"ventilation_type", "volume", "temperature", "pressure", "notes",
}

const minColumns = 10 // notes may be omitted

type RowError struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

// Parse reads scenarios from the first sheet of a workbook. Rows that fail to
// parse or validate are reported in the second return value and left out.
func Parse(r io.Reader, gases zone.Resolver) ([]zone.Scenario, []RowError, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	// Raw values: the display text of a formatted cell ("1,000", "2") is not the number.
	rows, err := f.GetRows(f.GetSheetName(0), excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, nil, fmt.Errorf("read workbook: %w", err)
	}

	var scenarios []zone.Scenario
	var skipped []RowError
	for i := 1; i < len(rows); i++ {
		if blank(rows[i]) {
			continue
		}
		input, err := parseRow(rows[i])
		if err == nil {
			var sc zone.Scenario
			if sc, err = zone.NewScenario(input, gases); err == nil {
				scenarios = append(scenarios, sc)
				continue
			}
		}
		skipped = append(skipped, RowError{Row: i + 1, Error: err.Error()})
	}
	return scenarios, skipped, nil
}

func parseRow(row []string) (zone.Input, error) {
	if len(row) < minColumns {
		return zone.Input{}, fmt.Errorf("expected at least %d columns, got %d", minColumns, len(row))
	}
	nums := make([]float64, 0, 6)
	for _, col := range []int{3, 4, 5, 7, 8, 9} {
		v, err := toFloat(row[col])
		if err != nil {
			return zone.Input{}, fmt.Errorf("column %s: %w", Columns[col], err)
		}
		nums = append(nums, v)
	}
	notes := ""
	if len(row) > 10 {
		notes = row[10]
	}
	return zone.Input{
		Name:            strings.TrimSpace(row[0]),
		GasName:         strings.TrimSpace(row[1]),
		LeakType:        zone.LeakType(row[2]),
		LeakRate:        nums[0],
		LeakDuration:    nums[1],
		VentilationRate: nums[2],
		VentilationType: zone.VentilationType(row[6]),
		Volume:          nums[3],
		Temperature:     nums[4],
		Pressure:        nums[5],
		Notes:           notes,
	}, nil
}

func toFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(strings.ReplaceAll(s, ",", ".")), 64)
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
