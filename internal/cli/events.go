package cli

import (
	"strconv"

	"addrbook/internal/errors"
	"addrbook/internal/infra/persistence/gormdb"

	"github.com/spf13/cobra"
)

func newEventsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "events <address-id>",
		Short: "Print the journaled change events of an address as JSON",
		Long:  "Print the change events the worker recorded for one address, oldest first.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			addressID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return errors.Errorf("invalid address id %q", args[0])
			}

			ctx := cmd.Context()

			db, closeDB, err := a.openDB(ctx)
			if err != nil {
				return err
			}
			defer closeDB()

			events, err := gormdb.NewAddressEventRepository(db).ListByAddress(ctx, addressID)
			if err != nil {
				return err
			}

			return writeJSON(cmd.OutOrStdout(), events)
		},
	}
}
