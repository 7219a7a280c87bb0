package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/samy8144/AI-Operations-Coordinator/pkg/engine"
	"github.com/samy8144/AI-Operations-Coordinator/pkg/fleet"
)

func newReassignCommand() *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "reassign <mission-id> <resource-id>",
		Short: "Plan an urgent replacement for a resource on a mission",
		Long: `Plan a replacement for a resource that must come off a mission.

The outgoing resource is excluded from consideration, and candidates
already linked to the target mission are not penalized for that link.
When no replacement exists, the plan lists what blocks each near-miss
so a dispatcher can decide what to relax.`,
		Example: `  # Pilot P003 dropped off PRJ004, find a replacement
  skyops reassign PRJ004 P003

  # Replace a grounded drone
  skyops reassign PRJ002 D005 --kind drone`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime()
			if err != nil {
				return err
			}

			snap, err := rt.store.LoadSnapshot(cmd.Context())
			if err != nil {
				return err
			}

			plan, err := rt.eng.PlanReassignment(snap, args[0], args[1], fleet.ResourceKind(kind))
			if err != nil {
				rt.metrics.RecordReassignment("error")
				return err
			}

			if plan.Replacement != nil {
				rt.metrics.RecordReassignment("replacement")
			} else {
				rt.metrics.RecordReassignment("blocked")
			}

			if jsonOutput {
				return printJSON(plan)
			}

			printReassignmentPlan(plan)
			return nil
		},
	}

	cmd.Flags().StringVarP(&kind, "kind", "k", "pilot", "resource kind: pilot or drone")

	return cmd
}

func printReassignmentPlan(plan *engine.ReassignmentPlan) {
	fmt.Printf("Reassignment plan %s\n", plan.ID)
	fmt.Printf("Mission:  %s (priority %s)\n", plan.MissionID, plan.Priority)
	fmt.Printf("Outgoing: %s (%s)\n\n", plan.OutgoingID, plan.Kind)

	if plan.Replacement != nil {
		r := plan.Replacement
		fmt.Printf("Replacement: %s (%s) score=%.1f", r.Name, r.ResourceID, r.Score)
		if r.Kind == fleet.KindPilot {
			fmt.Printf(" cost=%.0f", r.Cost)
		}
		fmt.Println()
		for _, reason := range r.Reasons {
			fmt.Printf("  - %s\n", reason)
		}
	} else {
		fmt.Println("No eligible replacement.")
	}

	if len(plan.Alternatives) > 0 {
		fmt.Println("\nAlternatives:")
		for _, alt := range plan.Alternatives {
			fmt.Printf("  %s (%s) score=%.1f\n", alt.Name, alt.ResourceID, alt.Score)
		}
	}

	if len(plan.BlockerSummary) > 0 {
		fmt.Println("\nBlocked candidates:")
		for _, line := range plan.BlockerSummary {
			fmt.Printf("  %s\n", line)
		}
	}

	if len(plan.Checklist) > 0 {
		fmt.Println("\nChecklist:")
		for i, step := range plan.Checklist {
			fmt.Printf("  %d. %s\n", i+1, step)
		}
	}
}
