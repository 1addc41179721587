// AngelaMos | 2026
// migrate.go

package cli

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/amontalvo1020/rentalspro/internal/core"
	"github.com/amontalvo1020/rentalspro/migrations"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the embedded schema migrations",
		Long:  "Runs every embedded migration in file name order, each in its own transaction. Migrations are idempotent.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			db, _, err := openDatabase(ctx)
			if err != nil {
				return err
			}
			defer db.Close() //nolint:errcheck // process exits next

			all, err := migrations.All()
			if err != nil {
				return fmt.Errorf("read migrations: %w", err)
			}

			for _, m := range all {
				err := core.InTx(ctx, db.DB, func(tx *sqlx.Tx) error {
					_, execErr := tx.ExecContext(ctx, m.SQL)
					return execErr
				})
				if err != nil {
					return fmt.Errorf("apply %s: %w", m.Name, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "applied %s\n", m.Name)
			}

			return nil
		},
	}
}
