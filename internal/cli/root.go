// Package cli holds the clubs-portal commands.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/sethvargo/go-envconfig"
	"github.com/spf13/cobra"

	"github.com/medicaps/clubs-portal/internal/pkg/config"
	"github.com/medicaps/clubs-portal/pkg/logger"
)

const serviceName = "clubs-portal"

// app carries what PersistentPreRunE resolved to the subcommands.
type app struct {
	lookuper envconfig.Lookuper
	cfg      *config.Config
	log      zerolog.Logger
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	rootCmd := newRootCmd(envconfig.OsLookuper())
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd(l envconfig.Lookuper) *cobra.Command {
	a := &app{lookuper: l, log: zerolog.Nop()}

	rootCmd := &cobra.Command{
		Use:           serviceName,
		Short:         "Club management portal",
		Long:          "Serves the club management portal and inspects its persisted store.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadWith(cmd.Context(), a.lookuper)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			a.cfg = cfg
			a.log = logger.Init(logger.Options{
				Level:   cfg.LogLevel,
				Pretty:  cfg.LogPretty,
				Service: serviceName,
				Output:  cmd.ErrOrStderr(),
			})
			return nil
		},
	}

	rootCmd.AddCommand(
		newServeCmd(a),
		newStoreCmd(a),
		newCredentialsCmd(a),
	)
	return rootCmd
}
