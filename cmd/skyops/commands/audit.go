package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAuditCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "audit <scans|events>",
		Short: "Show recent audited scans or status changes",
		Example: `  # Last ten scans
  skyops audit scans

  # Last 50 status changes
  skyops audit events --limit 50`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"scans", "events"},
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			audit, err := rt.openAudit(ctx)
			if err != nil {
				return err
			}
			if audit == nil {
				return fmt.Errorf("no audit database configured (set audit_db in the config file)")
			}
			defer audit.Close()

			switch args[0] {
			case "scans":
				scans, err := audit.RecentScans(ctx, limit)
				if err != nil {
					return err
				}
				if jsonOutput {
					return printJSON(scans)
				}
				if len(scans) == 0 {
					fmt.Println("No scans recorded.")
					return nil
				}
				for _, s := range scans {
					fmt.Printf("%s  %s  %d conflicts (high %d, medium %d, low %d), %d advisories\n",
						s.GeneratedAt.Format("2006-01-02 15:04:05"), s.ID,
						s.Conflicts, s.High, s.Medium, s.Low, s.Advisories)
				}
			case "events":
				events, err := audit.RecentStatusEvents(ctx, limit)
				if err != nil {
					return err
				}
				if jsonOutput {
					return printJSON(events)
				}
				if len(events) == 0 {
					fmt.Println("No status changes recorded.")
					return nil
				}
				for _, e := range events {
					line := fmt.Sprintf("%s  %s %s: %s -> %s",
						e.CreatedAt.Format("2006-01-02 15:04:05"),
						e.ResourceKind, e.ResourceID, e.OldStatus, e.NewStatus)
					if e.Note != "" {
						line += " (" + e.Note + ")"
					}
					fmt.Println(line)
				}
			default:
				return fmt.Errorf("unknown audit view %q: expected scans or events", args[0])
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "maximum rows to show")

	return cmd
}
