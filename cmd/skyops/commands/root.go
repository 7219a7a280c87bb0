package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/samy8144/AI-Operations-Coordinator/pkg/config"
	"github.com/samy8144/AI-Operations-Coordinator/pkg/engine"
	"github.com/samy8144/AI-Operations-Coordinator/pkg/stores"
	"github.com/samy8144/AI-Operations-Coordinator/pkg/telemetry"
)

var (
	// Global flags
	configPath string
	dataDir    string
	jsonOutput bool
	verbose    bool
)

// Execute runs the root command
func Execute(ctx context.Context, version, commit, buildDate string) error {
	rootCmd := newRootCommand(version, commit, buildDate)
	return rootCmd.ExecuteContext(ctx)
}

func newRootCommand(version, commit, buildDate string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "skyops",
		Short: "Skyops - Drone Operations Coordinator",
		Long: `Skyops coordinates pilots and drones across survey missions.

It matches resources to missions on skills, certifications, weather
tolerance, location, and budget; scans every current assignment for
rule violations; and plans urgent reassignments when a resource drops
out. Fleet data lives in CSV sheets; scans and status changes are
recorded in a local audit database.`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
	}

	// Persistent flags available to all commands
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().StringVarP(&dataDir, "data", "d", "", "data directory override")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(newRosterCommand())
	rootCmd.AddCommand(newFleetCommand())
	rootCmd.AddCommand(newMissionsCommand())
	rootCmd.AddCommand(newAssignmentsCommand())
	rootCmd.AddCommand(newMatchCommand())
	rootCmd.AddCommand(newScanCommand())
	rootCmd.AddCommand(newReassignCommand())
	rootCmd.AddCommand(newCostCommand())
	rootCmd.AddCommand(newStatusCommand())
	rootCmd.AddCommand(newAuditCommand())
	rootCmd.AddCommand(newServeCommand())

	return rootCmd
}

// runtime bundles the collaborators every command needs: configuration,
// logging, the CSV-backed snapshot store, and the engine.
type runtime struct {
	cfg     *config.Config
	logger  *telemetry.Logger
	metrics *telemetry.Metrics
	store   *stores.CSVStore
	eng     *engine.Engine
}

func newRuntime() (*runtime, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}

	logger, err := telemetry.NewLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logging: %w", err)
	}
	metrics, err := telemetry.NewMetrics(cfg.Metrics)
	if err != nil {
		return nil, fmt.Errorf("failed to set up metrics: %w", err)
	}

	return &runtime{
		cfg:     cfg,
		logger:  logger,
		metrics: metrics,
		store:   stores.NewCSVStore(cfg.DataDir, logger.Zerolog()),
		eng:     engine.New(logger.Zerolog()),
	}, nil
}

// openAudit opens the audit store when configured; nil means auditing is
// disabled and callers skip recording.
func (rt *runtime) openAudit(ctx context.Context) (*stores.AuditStore, error) {
	if rt.cfg.AuditDB == "" {
		return nil, nil
	}
	audit, err := stores.NewAuditStore(rt.cfg.AuditDB)
	if err != nil {
		return nil, err
	}
	if err := audit.Init(ctx); err != nil {
		return nil, fmt.Errorf("failed to open audit database: %w", err)
	}
	return audit, nil
}

// printJSON renders any result as indented JSON on stdout.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
