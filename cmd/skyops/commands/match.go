package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/samy8144/AI-Operations-Coordinator/pkg/fleet"
)

func newMatchCommand() *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "match <mission-id>",
		Short: "Rank eligible resources for a mission",
		Long: `Rank the pilots or drones eligible for a mission, best first.

Hard constraints (skills, certifications, weather rating, overlapping
assignments) exclude a resource outright; location and budget only move
the score. An empty result means nothing passes the hard constraints.`,
		Example: `  # Best pilots for PRJ001
  skyops match PRJ001

  # Best drones
  skyops match PRJ001 --kind drone`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime()
			if err != nil {
				return err
			}

			snap, err := rt.store.LoadSnapshot(cmd.Context())
			if err != nil {
				return err
			}

			candidates, err := rt.eng.FindCandidates(snap, args[0], fleet.ResourceKind(kind))
			if err != nil {
				return err
			}

			if jsonOutput {
				return printJSON(candidates)
			}

			if len(candidates) == 0 {
				fmt.Printf("No eligible %ss for %s. Run 'skyops reassign' for a blocker breakdown.\n", kind, args[0])
				return nil
			}

			fmt.Printf("Candidates for %s (%s):\n", args[0], kind)
			for i, c := range candidates {
				fmt.Printf("%2d. %s (%s) score=%.1f", i+1, c.Name, c.ResourceID, c.Score)
				if c.Kind == fleet.KindPilot {
					fmt.Printf(" cost=%.0f", c.Cost)
				}
				fmt.Println()
				for _, reason := range c.Reasons {
					fmt.Printf("      - %s\n", reason)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&kind, "kind", "k", "pilot", "resource kind: pilot or drone")

	return cmd
}
