package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCostCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cost <pilot-id> <mission-id>",
		Short: "Estimate a pilot's cost for a mission",
		Long: `Estimate the cost of fielding a pilot on a mission: the pilot's
daily rate multiplied by the mission's duration, counting both the
start and end dates.`,
		Example: `  skyops cost P001 PRJ003`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime()
			if err != nil {
				return err
			}

			snap, err := rt.store.LoadSnapshot(cmd.Context())
			if err != nil {
				return err
			}

			cost, err := rt.eng.EstimateCost(snap, args[0], args[1])
			if err != nil {
				return err
			}

			if jsonOutput {
				return printJSON(map[string]any{
					"pilot_id":   args[0],
					"mission_id": args[1],
					"cost":       cost,
				})
			}

			mission := snap.Mission(args[1])
			pilot := snap.Pilot(args[0])
			fmt.Printf("%s on %s: %.0f (%.0f/day x %d days)\n",
				pilot.Name, args[1], cost, pilot.DailyRate, mission.Days())
			return nil
		},
	}

	return cmd
}
