package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/samy8144/AI-Operations-Coordinator/pkg/fleet"
)

func newRosterCommand() *cobra.Command {
	var (
		skill    string
		cert     string
		location string
		status   string
	)

	cmd := &cobra.Command{
		Use:   "roster",
		Short: "List pilots, optionally filtered",
		Example: `  # Everyone
  skyops roster

  # Thermal-rated pilots in Mumbai
  skyops roster --skill thermal --location mumbai`,
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

			var pilots []fleet.Pilot
			for _, p := range snap.Pilots {
				if skill != "" && !p.Skills.Contains(skill) {
					continue
				}
				if cert != "" && !p.Certifications.Contains(cert) {
					continue
				}
				if location != "" && !containsFold(p.Location, location) {
					continue
				}
				if status != "" && !strings.EqualFold(string(p.Status), status) {
					continue
				}
				pilots = append(pilots, p)
			}

			if jsonOutput {
				return printJSON(pilots)
			}

			if len(pilots) == 0 {
				fmt.Println("No pilots match.")
				return nil
			}

			for _, p := range pilots {
				fmt.Printf("%-6s %-22s %-12s %-10s %8.0f/day  %s\n",
					p.ID, p.Name, p.Location, p.Status, p.DailyRate, p.Skills)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&skill, "skill", "", "require a skill")
	cmd.Flags().StringVar(&cert, "cert", "", "require a certification")
	cmd.Flags().StringVar(&location, "location", "", "filter by location substring")
	cmd.Flags().StringVar(&status, "status", "", "filter by status")

	return cmd
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
