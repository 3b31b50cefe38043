package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/texbox/internal/server"
	"github.com/matzehuels/texbox/pkg/observability"
)

// serveCommand runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the render pipeline over HTTP",
		Long: `Run the HTTP API until interrupted.

Routes: GET /healthz, GET|POST /render, GET|POST /parse. The listen
address, body limit and cache backend come from the config file and
TEXBOX_* environment variables; --addr overrides the address.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}

			runner, err := c.newRunner(cmd, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			logger := loggerFromContext(cmd.Context())
			observability.NewLogHooks(logger).Register()
			defer observability.Reset()

			return server.New(runner, cfg, logger).ListenAndServe(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	return cmd
}
