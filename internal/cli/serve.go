package cli

import (
	"github.com/spf13/cobra"

	"github.com/piwi3910/SocketPlan/internal/api"
)

func (c *CLI) serveCommand() *cobra.Command {
	var addr string
	var cors []string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the JSON HTTP API",
		Long: `Serve exposes the placement rules and the PDF and cut list exporters over
HTTP. Requests carry their own plates and groups; the server keeps no state.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			if addr == "" {
				addr = c.Config.ServerAddr
			}

			e := api.NewServer(api.Dependencies{
				Version:     version,
				Logger:      logger,
				BodyLimit:   c.Config.BodyLimit,
				CORSOrigins: cors,
			})
			logger.Info("listening", "addr", addr)
			if err := api.Serve(cmd.Context(), e, addr); err != nil {
				return err
			}
			logger.Info("server stopped")
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	cmd.Flags().StringSliceVar(&cors, "cors", nil, "allowed CORS origins")
	return cmd
}
