package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/samy8144/AI-Operations-Coordinator/pkg/fleet"
)

func newMissionsCommand() *cobra.Command {
	var (
		location string
		priority string
		id       string
	)

	cmd := &cobra.Command{
		Use:   "missions",
		Short: "List missions, optionally filtered",
		Example: `  # Urgent work in Bangalore
  skyops missions --priority urgent --location bangalore

  # One mission in full
  skyops missions --id PRJ003 --json`,
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

			var missions []fleet.Mission
			for _, m := range snap.Missions {
				if id != "" && !strings.EqualFold(m.ID, id) {
					continue
				}
				if location != "" && !containsFold(m.Location, location) {
					continue
				}
				if priority != "" && !strings.EqualFold(string(m.Priority), priority) {
					continue
				}
				missions = append(missions, m)
			}

			if jsonOutput {
				return printJSON(missions)
			}

			if len(missions) == 0 {
				fmt.Println("No missions match.")
				return nil
			}

			for _, m := range missions {
				fmt.Printf("%-8s %-24s %-12s %-8s %s  budget %.0f  %s\n",
					m.ID, m.Project, m.Location, m.Priority, m.Dates, m.Budget, m.RequiredSkills)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&location, "location", "", "filter by location substring")
	cmd.Flags().StringVar(&priority, "priority", "", "filter by priority")
	cmd.Flags().StringVar(&id, "id", "", "show a single mission")

	return cmd
}
