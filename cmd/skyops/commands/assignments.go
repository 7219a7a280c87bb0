package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

type assignmentRow struct {
	MissionID string   `json:"mission_id"`
	Project   string   `json:"project"`
	Dates     string   `json:"dates"`
	Pilots    []string `json:"pilots,omitempty"`
	Drones    []string `json:"drones,omitempty"`
}

func newAssignmentsCommand() *cobra.Command {
	var activeOnly bool

	cmd := &cobra.Command{
		Use:   "assignments",
		Short: "Show which resources are linked to each mission",
		Example: `  # Only missions with at least one resource attached
  skyops assignments --active`,
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

			var rows []assignmentRow
			for _, m := range snap.Missions {
				row := assignmentRow{MissionID: m.ID, Project: m.Project, Dates: m.Dates.String()}
				for _, p := range snap.Pilots {
					if p.AssignedTo(m.ID) {
						row.Pilots = append(row.Pilots, fmt.Sprintf("%s (%s)", p.ID, p.Name))
					}
				}
				for _, d := range snap.Drones {
					if d.AssignedTo(m.ID) {
						row.Drones = append(row.Drones, fmt.Sprintf("%s (%s)", d.ID, d.Model))
					}
				}
				if activeOnly && len(row.Pilots) == 0 && len(row.Drones) == 0 {
					continue
				}
				rows = append(rows, row)
			}

			if jsonOutput {
				return printJSON(rows)
			}

			for _, row := range rows {
				fmt.Printf("%s  %s  %s\n", row.MissionID, row.Project, row.Dates)
				for _, p := range row.Pilots {
					fmt.Printf("  pilot %s\n", p)
				}
				for _, d := range row.Drones {
					fmt.Printf("  drone %s\n", d)
				}
				if len(row.Pilots) == 0 && len(row.Drones) == 0 {
					fmt.Println("  unstaffed")
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&activeOnly, "active", false, "hide unstaffed missions")

	return cmd
}
