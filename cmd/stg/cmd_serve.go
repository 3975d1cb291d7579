// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"stacked-cli/internal/docserve"
	"stacked-cli/internal/issue"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	serveHost string
	servePort int

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Serve the command list over SSH",
		Long: `Serve the command list over SSH.

Clients connect with any key or password and receive the rendered
command list; passing "markup" as the SSH command selects the
documentation markup renderer:

  ssh -p 2222 localhost
  ssh -p 2222 localhost markup`,
		Args: cobra.NoArgs,
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			logger := log.Default()
			if verbose {
				logger.SetLevel(log.DebugLevel)
			}

			cfg := docserve.DefaultConfig()
			cfg.Host = serveHost
			cfg.Port = servePort

			srv, err := docserve.New(cfg, commandTable, logger)
			if err != nil {
				return issue.WrapWithOperation(err, "create doc server")
			}

			ctx := cobraCmd.Context()
			if err := srv.Start(ctx); err != nil {
				explain(issue.DocServerStartFailedId)
				return issue.WrapWithOperation(err, "start doc server")
			}
			fmt.Fprintf(cobraCmd.OutOrStdout(), "Serving command list on ssh://%s\n", srv.Address())

			select {
			case <-ctx.Done():
				return srv.Stop()
			case err := <-srv.Err():
				_ = srv.Stop()
				return issue.WrapWithOperation(err, "serve command list")
			}
		},
	}
)

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", docserve.DefaultHost, "address to bind")
	serveCmd.Flags().IntVar(&servePort, "port", docserve.DefaultPort, "port to listen on")
}
