package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/samy8144/AI-Operations-Coordinator/pkg/fleet"
	"github.com/samy8144/AI-Operations-Coordinator/pkg/stores"
)

func newStatusCommand() *cobra.Command {
	var (
		note    string
		noAudit bool
	)

	cmd := &cobra.Command{
		Use:   "status <pilot|drone> <resource-id> <new-status>",
		Short: "Update a pilot or drone status",
		Long: `Update the status cell on a pilot or drone record and write the
change to the audit database.

Pilot statuses: Available, Assigned, "On Leave".
Drone statuses: Available, Assigned, Maintenance.`,
		Example: `  skyops status pilot P004 "On Leave" --note "medical"
  skyops status drone D002 Maintenance`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime()
			if err != nil {
				return err
			}

			kind := fleet.ResourceKind(strings.ToLower(args[0]))
			if err := kind.Validate(); err != nil {
				return err
			}
			id := args[1]
			ctx := cmd.Context()

			var oldStatus, newStatus string
			switch kind {
			case fleet.KindPilot:
				status, err := canonicalPilotStatus(args[2])
				if err != nil {
					return err
				}
				prev, err := rt.store.UpdatePilotStatus(ctx, id, status)
				if err != nil {
					return err
				}
				oldStatus, newStatus = string(prev), string(status)
			case fleet.KindDrone:
				status, err := canonicalDroneStatus(args[2])
				if err != nil {
					return err
				}
				prev, err := rt.store.UpdateDroneStatus(ctx, id, status)
				if err != nil {
					return err
				}
				oldStatus, newStatus = string(prev), string(status)
			}

			rt.metrics.RecordStatusUpdate(string(kind))

			if !noAudit {
				audit, err := rt.openAudit(ctx)
				if err != nil {
					return err
				}
				if audit != nil {
					defer audit.Close()
					event := &stores.StatusEvent{
						ResourceKind: string(kind),
						ResourceID:   id,
						OldStatus:    oldStatus,
						NewStatus:    newStatus,
						Note:         note,
					}
					if err := audit.RecordStatusEvent(ctx, event); err != nil {
						zl := rt.logger.Zerolog()
						zl.Warn().Err(err).Msg("Failed to record status event")
					}
				}
			}

			if jsonOutput {
				return printJSON(map[string]string{
					"resource_kind": string(kind),
					"resource_id":   id,
					"old_status":    oldStatus,
					"new_status":    newStatus,
				})
			}

			fmt.Printf("%s %s: %s -> %s\n", kind, id, oldStatus, newStatus)
			return nil
		},
	}

	cmd.Flags().StringVar(&note, "note", "", "free-form note recorded with the change")
	cmd.Flags().BoolVar(&noAudit, "no-audit", false, "skip the audit database")

	return cmd
}

func canonicalPilotStatus(raw string) (fleet.PilotStatus, error) {
	for _, s := range []fleet.PilotStatus{fleet.PilotAvailable, fleet.PilotAssigned, fleet.PilotOnLeave} {
		if strings.EqualFold(raw, string(s)) {
			return s, nil
		}
	}
	return "", fmt.Errorf("invalid pilot status %q: expected Available, Assigned or \"On Leave\"", raw)
}

func canonicalDroneStatus(raw string) (fleet.DroneStatus, error) {
	for _, s := range []fleet.DroneStatus{fleet.DroneAvailable, fleet.DroneAssigned, fleet.DroneMaintenance} {
		if strings.EqualFold(raw, string(s)) {
			return s, nil
		}
	}
	return "", fmt.Errorf("invalid drone status %q: expected Available, Assigned or Maintenance", raw)
}
