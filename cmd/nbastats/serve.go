package main

import (
	"github.com/spf13/cobra"

	"github.com/bigredeye/nbastats/internal/web"
)

func makeServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve standings over http",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app) error {
				return web.Run(a.config, a.logger, a.client)
			})
		},
	}
}
