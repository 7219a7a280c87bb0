package commands

import (
	"github.com/spf13/cobra"

	"github.com/samy8144/AI-Operations-Coordinator/pkg/server"
)

func newServeCommand() *cobra.Command {
	var listenAddress string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the coordinator HTTP API",
		Long: `Serve the matching, scanning, and reassignment operations over HTTP.

The server caches the snapshot and, when watch_data is enabled, reloads
it whenever a sheet under the data directory changes.`,
		Example: `  skyops serve
  skyops serve --listen 0.0.0.0:9090`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime()
			if err != nil {
				return err
			}
			if listenAddress != "" {
				rt.cfg.Server.ListenAddress = listenAddress
			}

			srv := server.New(rt.cfg.Server, rt.cfg.DataDir, rt.store, rt.eng, rt.metrics, rt.logger.Zerolog())
			return srv.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&listenAddress, "listen", "l", "", "listen address override")

	return cmd
}
