// AngelaMos | 2026
// root.go

// Package cli defines the rpctl operator commands.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/amontalvo1020/rentalspro/internal/config"
	"github.com/amontalvo1020/rentalspro/internal/core"
)

// Version is set at build time via -ldflags.
var Version = "dev"

var flagConfig string

func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "rpctl",
		Short:         "Operator tooling for the RentalsPro API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flagConfig, "config", "config.yaml", "path to config file")

	root.AddCommand(
		newHashPasswordCmd(),
		newVerifyPasswordCmd(),
		newKeygenCmd(),
		newMigrateCmd(),
		newAuditLeasesCmd(),
		newVersionCmd(),
	)

	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), Version)
		},
	}
}

// openDatabase loads config and connects. Callers close the result.
func openDatabase(ctx context.Context) (*core.Database, *config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, nil, err
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return nil, nil, err
	}

	return db, cfg, nil
}
