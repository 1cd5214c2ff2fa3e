package cli

import (
	"io"
	"log/slog"
	"os"

	"addrbook/internal/errors"
	"addrbook/internal/infra/persistence/gormdb"
	"addrbook/internal/infra/pubsub"
	"addrbook/internal/usecase/impl"

	"github.com/spf13/cobra"
)

func newImportCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Bulk-create addresses from a CSV file",
		Long: `Read a CSV file whose header names street, city, state, country, latitude and longitude
(in any order) and create one address per row. Use "-" to read from stdin.

Rows that fail validation are skipped and listed in the summary.
Change events are published when pubsub is configured.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var input io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				file, err := os.Open(args[0])
				if err != nil {
					return errors.Wrapf(err, "failed to open %s", args[0])
				}
				defer file.Close()
				input = file
			}

			db, closeDB, err := a.openDB(ctx)
			if err != nil {
				return err
			}
			defer closeDB()

			publisher, err := pubsub.NewPublisher(ctx, a.cfg.PubSub, a.logger)
			if err != nil {
				return err
			}
			defer func() {
				if err := publisher.Close(); err != nil {
					a.logger.Warn("Failed to close event publisher", slog.Any("error", err))
				}
			}()

			addressUC := impl.NewAddressService(impl.AddressServiceParams{
				TxManager:   gormdb.NewTransactionManager(db),
				AddressRepo: gormdb.NewAddressRepository(db),
				Publisher:   publisher,
				Logger:      a.logger,
			})
			importer := impl.NewImportService(impl.ImportServiceParams{
				AddressUC: addressUC,
				Logger:    a.logger,
			})

			result, err := importer.ImportCSV(ctx, input)
			if result != nil {
				if writeErr := writeJSON(cmd.OutOrStdout(), result); writeErr != nil {
					return writeErr
				}
			}

			return err
		},
	}
}
