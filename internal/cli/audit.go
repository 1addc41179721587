// AngelaMos | 2026
// audit.go

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/amontalvo1020/rentalspro/internal/lease"
)

func newAuditLeasesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "audit-leases",
		Short: "List properties and units with more than one active lease",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			db, _, err := openDatabase(ctx)
			if err != nil {
				return err
			}
			defer db.Close() //nolint:errcheck // process exits next

			dups, err := lease.NewRepository(db.DB).ListDuplicateActive(ctx)
			if err != nil {
				return err
			}

			if len(dups) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no duplicate active leases")
				return nil
			}

			for _, d := range dups {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: leases %v\n", d.Key, d.LeaseIDs)
			}
			return fmt.Errorf("%d slot(s) with duplicate active leases", len(dups))
		},
	}
}
