package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/samy8144/AI-Operations-Coordinator/pkg/engine"
)

func newScanCommand() *cobra.Command {
	var noAudit bool

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan all current assignments for conflicts",
		Long: `Run a full conflict scan over the fleet snapshot.

Every assignment link is checked for double bookings, maintenance
conflicts, skill and certification mismatches, weather risk, budget
overruns, and location mismatches. Data-quality advisories (malformed
rows, status/link disagreement, dangling references) are listed
separately. The result is recorded in the audit database.`,
		Example: `  # Scan with human-readable output
  skyops scan

  # Machine-readable report
  skyops scan --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			snap, err := rt.store.LoadSnapshot(ctx)
			if err != nil {
				return err
			}

			report := rt.eng.ScanAll(snap)

			if !noAudit {
				audit, err := rt.openAudit(ctx)
				if err != nil {
					return err
				}
				if audit != nil {
					defer audit.Close()
					if err := audit.RecordScan(ctx, report); err != nil {
						return err
					}
				}
			}

			if jsonOutput {
				return printJSON(report)
			}

			printScanReport(report)
			return nil
		},
	}

	cmd.Flags().BoolVar(&noAudit, "no-audit", false, "skip recording the scan in the audit database")

	return cmd
}

func printScanReport(report *engine.ScanReport) {
	if len(report.Conflicts) == 0 {
		fmt.Println("No conflicts detected across current assignments.")
	} else {
		fmt.Printf("Conflict report %s: %d issue(s)\n", report.ID, len(report.Conflicts))
		for _, sev := range []engine.Severity{engine.SeverityHigh, engine.SeverityMedium, engine.SeverityLow} {
			printed := false
			for _, c := range report.Conflicts {
				if c.Severity != sev {
					continue
				}
				if !printed {
					fmt.Printf("\n%s:\n", sev)
					printed = true
				}
				fmt.Printf("  [%s] %s\n", c.Type, c.Description)
			}
		}
	}

	if len(report.Advisories) > 0 {
		fmt.Printf("\nAdvisories (%d):\n", len(report.Advisories))
		for _, a := range report.Advisories {
			fmt.Printf("  [%s] %s\n", a.Code, a.Message)
		}
	}
}
