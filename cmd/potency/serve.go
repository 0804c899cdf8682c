package main

import (
	"github.com/spf13/cobra"

	"github.com/arloliu/potency/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the estimator over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr != "" {
				a.cfg.Server.Addr = addr
			}

			return server.New(a.cfg, a.logger).Run(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")

	return cmd
}
