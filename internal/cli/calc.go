package cli

import (
	"encoding/json"
	"fmt"

	"Atex/internal/calc/zone"

	"github.com/spf13/cobra"
)

func newCalcCommand(opts *globalOptions) *cobra.Command {
	var in zone.Input
	var leakType, ventType string

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Calculate the zone radii of one release",
		Long: `Calculate the Zone 0, 1 and 2 radii of a single release scenario.

Examples:
  zonecalc calc --gas Methane --leak-rate 10 --ventilation-rate 100
  zonecalc calc --gas Hydrogen --leak-type secondary --leak-rate 50 \
    --ventilation-rate 10 --ventilation-type mechanical --volume 5 \
    --temperature 45 --pressure 1.5 -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			asJSON, err := opts.jsonOutput()
			if err != nil {
				return err
			}
			table, err := opts.loadGases()
			if err != nil {
				return err
			}
			in.LeakType = zone.LeakType(leakType)
			in.VentilationType = zone.VentilationType(ventType)

			sc, err := zone.NewScenario(in, table)
			if err != nil {
				return err
			}
			res, err := zone.Calculate(sc)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return json.NewEncoder(out).Encode(zone.CalcResponse{Scenario: sc, Result: res})
			}
			fmt.Fprintf(out, "Gas:             %s (%s, LEL %g%%)\n", sc.Gas.Name, sc.Gas.Group, sc.Gas.LEL)
			fmt.Fprintf(out, "Dilution factor: %.4f\n", res.DilutionFactor)
			fmt.Fprintf(out, "Zone 0 radius:   %.2f m\n", res.Zone0RadiusM)
			fmt.Fprintf(out, "Zone 1 radius:   %.2f m\n", res.Zone1RadiusM)
			fmt.Fprintf(out, "Zone 2 radius:   %.2f m\n", res.Zone2RadiusM)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&in.Name, "name", "", "scenario name")
	f.StringVar(&in.GasName, "gas", "", "gas name as listed by 'zonecalc gases'")
	f.StringVar(&leakType, "leak-type", string(zone.LeakContinuous), "leak type (continuous, primary, secondary)")
	f.Float64Var(&in.LeakRate, "leak-rate", 0, "leak rate in m³/h")
	f.Float64Var(&in.LeakDuration, "leak-duration", 1, "leak duration in hours")
	f.Float64Var(&in.VentilationRate, "ventilation-rate", 0, "ventilation rate in m³/h")
	f.StringVar(&ventType, "ventilation-type", string(zone.VentilationNatural), "ventilation type (natural, mechanical)")
	f.Float64Var(&in.Volume, "volume", 100, "room volume in m³")
	f.Float64Var(&in.Temperature, "temperature", 20, "ambient temperature in °C")
	f.Float64Var(&in.Pressure, "pressure", 1, "pressure in bar")
	f.StringVar(&in.Notes, "notes", "", "free-text notes")
	_ = cmd.MarkFlagRequired("gas")
	_ = cmd.MarkFlagRequired("leak-rate")
	_ = cmd.MarkFlagRequired("ventilation-rate")

	return cmd
}
