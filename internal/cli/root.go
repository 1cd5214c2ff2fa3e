// Package cli implements addrctl, the operator tool for the address store.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"addrbook/config"
	"addrbook/internal/errors"
	logs "addrbook/internal/infra/log"
	"addrbook/internal/infra/persistence/gormdb"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// app holds state shared by all subcommands of one invocation.
type app struct {
	loadConfig func() (*config.Config, error)

	driver     string
	sqlitePath string

	cfg    *config.Config
	logger *slog.Logger
}

// NewRootCommand builds the addrctl command tree using the service configuration files.
func NewRootCommand(version string) *cobra.Command {
	return newRootCommand(config.New, version)
}

func newRootCommand(loadConfig func() (*config.Config, error), version string) *cobra.Command {
	a := &app{loadConfig: loadConfig}

	rootCmd := &cobra.Command{
		Use:   "addrctl",
		Short: "Manage the address book store",
		Long: `addrctl operates on the same store as the addrbook API server.

It initializes the schema, bulk-loads addresses from CSV, runs radius searches
and prints the change journal kept by addrworker.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "version" {
				return nil
			}

			return a.setup(cmd.ErrOrStderr())
		},
	}

	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().StringVar(&a.driver, "driver", "", "storage driver override (sqlite or postgres)")
	rootCmd.PersistentFlags().StringVar(&a.sqlitePath, "sqlite-path", "", "SQLite database file override")

	rootCmd.AddCommand(
		newMigrateCommand(a),
		newImportCommand(a),
		newSearchCommand(a),
		newListCommand(a),
		newEventsCommand(a),
		&cobra.Command{
			Use:   "version",
			Short: "Print the version number",
			Run: func(cmd *cobra.Command, _ []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "addrctl %s\n", version)
			},
		},
	)

	return rootCmd
}

func (a *app) setup(logOutput io.Writer) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}

	if driver := strings.TrimSpace(a.driver); driver != "" {
		cfg.Storage.Driver = driver
	}
	if a.sqlitePath != "" {
		cfg.Storage.Driver = config.StorageDriverSQLite
		cfg.Storage.SQLite.Path = a.sqlitePath
	}
	if err := config.Finalize(cfg); err != nil {
		return err
	}

	logger, err := logs.NewWithWriter(cfg, logOutput)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger

	return nil
}

// openDB connects to the configured store. The returned func closes it.
func (a *app) openDB(ctx context.Context) (*gorm.DB, func(), error) {
	db, err := gormdb.Open(a.cfg, a.logger)
	if err != nil {
		return nil, nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to get sql.DB")
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()

		return nil, nil, errors.Wrapf(err, "failed to ping %s", a.cfg.Storage.Driver)
	}

	return db, func() { _ = sqlDB.Close() }, nil
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	return errors.WithStack(encoder.Encode(v))
}
