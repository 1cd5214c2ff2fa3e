package cli

import (
	"addrbook/internal/infra/persistence/gormdb"
	"addrbook/internal/usecase"
	"addrbook/internal/usecase/impl"

	"github.com/spf13/cobra"
)

func newSearchCommand(a *app) *cobra.Command {
	var input usecase.SearchInput

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Find addresses within a distance of a point",
		Long:  "Print every address whose great-circle distance from --lat/--lng is at most --distance kilometers, as JSON.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			db, closeDB, err := a.openDB(ctx)
			if err != nil {
				return err
			}
			defer closeDB()

			searchUC := impl.NewSearchService(impl.SearchServiceParams{
				AddressRepo: gormdb.NewAddressRepository(db),
				Config:      a.cfg,
				Logger:      a.logger,
			})

			matches, err := searchUC.SearchWithinRadius(ctx, &input)
			if err != nil {
				return err
			}

			return writeJSON(cmd.OutOrStdout(), matches)
		},
	}

	cmd.Flags().Float64Var(&input.Latitude, "lat", 0, "latitude of the center in degrees")
	cmd.Flags().Float64Var(&input.Longitude, "lng", 0, "longitude of the center in degrees")
	cmd.Flags().Float64Var(&input.DistanceKm, "distance", 0, "search radius in kilometers")
	_ = cmd.MarkFlagRequired("lat")
	_ = cmd.MarkFlagRequired("lng")
	_ = cmd.MarkFlagRequired("distance")

	return cmd
}

func newListCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print every stored address as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			db, closeDB, err := a.openDB(ctx)
			if err != nil {
				return err
			}
			defer closeDB()

			addresses, err := gormdb.NewAddressRepository(db).List(ctx)
			if err != nil {
				return err
			}

			return writeJSON(cmd.OutOrStdout(), addresses)
		},
	}
}
