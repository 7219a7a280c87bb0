package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/samy8144/AI-Operations-Coordinator/pkg/fleet"
)

func newFleetCommand() *cobra.Command {
	var (
		capability string
		location   string
		status     string
		weather    string
	)

	cmd := &cobra.Command{
		Use:   "fleet",
		Short: "List drones, optionally filtered",
		Long: `List drones. The --weather flag takes a forecast (Sunny, Cloudy,
Rainy, Stormy) and keeps only drones rated to fly in it.`,
		Example: `  # Drones that can shoot LiDAR in the rain
  skyops fleet --capability lidar --weather rainy`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime()
			if err != nil {
				return err
			}

			snap, err := rt.store.LoadSnapshot(cmd.Context())
			if err != nil {
				return err
			}

			var required fleet.WeatherRating
			if weather != "" {
				f, err := parseForecast(weather)
				if err != nil {
					return err
				}
				required = f.RequiredRating()
			}

			var drones []fleet.Drone
			for _, d := range snap.Drones {
				if capability != "" && !d.Capabilities.Contains(capability) {
					continue
				}
				if location != "" && !containsFold(d.Location, location) {
					continue
				}
				if status != "" && !strings.EqualFold(string(d.Status), status) {
					continue
				}
				if weather != "" && !d.WeatherRating.Covers(required) {
					continue
				}
				drones = append(drones, d)
			}

			if jsonOutput {
				return printJSON(drones)
			}

			if len(drones) == 0 {
				fmt.Println("No drones match.")
				return nil
			}

			for _, d := range drones {
				due := "-"
				if d.MaintenanceDue != nil {
					due = d.MaintenanceDue.String()
				}
				fmt.Printf("%-6s %-20s %-12s %-12s %-12s due %-10s %s\n",
					d.ID, d.Model, d.Location, d.Status, d.WeatherRating, due, d.Capabilities)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&capability, "capability", "", "require a capability")
	cmd.Flags().StringVar(&location, "location", "", "filter by location substring")
	cmd.Flags().StringVar(&status, "status", "", "filter by status")
	cmd.Flags().StringVar(&weather, "weather", "", "keep drones rated for this forecast")

	return cmd
}

func parseForecast(raw string) (fleet.Forecast, error) {
	for _, f := range []fleet.Forecast{fleet.ForecastSunny, fleet.ForecastCloudy, fleet.ForecastRainy, fleet.ForecastStormy} {
		if strings.EqualFold(raw, string(f)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("invalid forecast %q: expected Sunny, Cloudy, Rainy or Stormy", raw)
}
