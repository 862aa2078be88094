// Package service is the command-line entry point: it serves the admin API
// and maintains the stores behind it.
package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"realestate/app/config"
	"realestate/app/repositories"
	"realestate/app/services"

	"github.com/dgraph-io/badger/v4"
	"github.com/spf13/cobra"
)

const cliVersion = "1.0.0"

// Execute runs the CLI with os.Args and returns the process exit code.
func Execute() int {
	if err := NewRootCommand().Execute(); err != nil {
		return 1
	}
	return 0
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	o := &options{}
	root := &cobra.Command{
		Use:          "realestate",
		Short:        "Admin backend for the real-estate dashboard",
		Version:      cliVersion,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&o.configPath, "config", "config.yaml", "path to the YAML config file")
	root.PersistentFlags().StringVar(&o.envFile, "env-file", ".env", "path to a .env file")
	root.PersistentFlags().StringVar(&o.dbPath, "db", "", "Badger directory (overrides store.badger_path)")

	root.AddCommand(
		newServeCommand(o),
		newInitCommand(o),
		newCleanCommand(o),
		newBackupCommand(o),
		newRestoreCommand(o),
		newMigrateCommand(o),
		newEnsureIndexesCommand(o),
	)
	return root
}

func newInitCommand(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize a new empty Badger database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := o.load()
			if err != nil {
				return err
			}
			return initDb(cmd, cfg.Store.BadgerPath)
		},
	}
}

func newCleanCommand(o *options) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove the Badger database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := o.load()
			if err != nil {
				return err
			}
			return clean(cmd, cfg.Store.BadgerPath, yes)
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func newBackupCommand(o *options) *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Create a backup of the Badger database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := o.load()
			if err != nil {
				return err
			}
			_, err = backup(cmd, cfg.Store.BadgerPath, dir)
			return err
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "data/backups", "directory for backup files")
	return cmd
}

func newRestoreCommand(o *options) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "restore <file>",
		Short: "Restore the Badger database from a backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := o.load()
			if err != nil {
				return err
			}
			return restore(cmd, cfg.Store.BadgerPath, args[0], yes)
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "replace an existing database without asking")
	return cmd
}

func newMigrateCommand(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate-listings",
		Short: "Rewrite legacy userEmail/country listings into the contact snapshot shape",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := o.load()
			if err != nil {
				return err
			}
			return withBackend(cmd, o, cfg, func(ctx context.Context, b *backend) error {
				migrator, ok := b.Store.Listings.(repositories.ListingMigrator)
				if !ok {
					return fmt.Errorf("store driver %q cannot migrate listings", cfg.Store.Driver)
				}
				svc := services.NewListingService(b.Store.Listings, b.Store.Contacts)
				n, err := svc.MigrateLegacy(ctx, migrator)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Migrated %d listings\n", n)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&o.store, "store", "", "store driver: mongo or badger (overrides store.driver)")
	return cmd
}

func newEnsureIndexesCommand(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "ensure-indexes",
		Short: "Create the Mongo indexes the API relies on",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := o.load()
			if err != nil {
				return err
			}
			cfg.Store.Driver = config.DriverMongo
			return withBackend(cmd, o, cfg, func(ctx context.Context, b *backend) error {
				if err := repositories.EnsureIndexes(ctx, b.Mongo); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Indexes are in place")
				return nil
			})
		},
	}
}

// withBackend opens the configured store for the duration of fn.
func withBackend(cmd *cobra.Command, o *options, cfg *config.Config, fn func(ctx context.Context, b *backend) error) error {
	if cfg.Store.Driver == config.DriverMongo && cfg.Mongo.URI == "" {
		return errors.New("MONGODB_URI is not set")
	}
	logger, err := o.logger(cmd, cfg)
	if err != nil {
		return err
	}
	b, err := openBackend(cfg, logger)
	if err != nil {
		return err
	}
	defer b.Close(context.Background())

	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
	defer cancel()
	return fn(ctx, b)
}

// initDb initializes a new empty database.
func initDb(cmd *cobra.Command, dbPath string) error {
	out := cmd.OutOrStdout()
	if exists(dbPath) {
		fmt.Fprintln(out, "Database already exists. Use 'clean' first if you want to reinitialize.")
		return nil
	}
	if err := os.MkdirAll(dbPath, 0755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}
	db, err := repositories.OpenBadger(dbPath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	fmt.Fprintln(out, "Database initialized successfully")
	return nil
}

// clean removes the database.
func clean(cmd *cobra.Command, dbPath string, yes bool) error {
	out := cmd.OutOrStdout()
	if !exists(dbPath) {
		fmt.Fprintln(out, "Database is already clean (does not exist)")
		return nil
	}
	if !yes && !confirm(cmd, "Are you sure you want to clean the database? This cannot be undone.") {
		fmt.Fprintln(out, "Operation cancelled")
		return nil
	}
	if err := os.RemoveAll(dbPath); err != nil {
		return fmt.Errorf("failed to clean database: %w", err)
	}
	fmt.Fprintln(out, "Database cleaned successfully")
	return nil
}

// backup writes a full backup of the database into dir and returns its path.
func backup(cmd *cobra.Command, dbPath, dir string) (string, error) {
	out := cmd.OutOrStdout()
	if !exists(dbPath) {
		fmt.Fprintln(out, "No database exists to backup")
		return "", nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	db, err := repositories.OpenBadger(dbPath)
	if err != nil {
		return "", fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	backupFile := filepath.Join(dir, fmt.Sprintf("backup_%d.db", time.Now().UnixNano()))
	f, err := os.Create(backupFile)
	if err != nil {
		return "", fmt.Errorf("failed to create backup file: %w", err)
	}
	defer f.Close()

	if _, err := db.Backup(f, 0); err != nil {
		return "", fmt.Errorf("failed to backup database: %w", err)
	}
	fmt.Fprintf(out, "Database backed up successfully to %s\n", backupFile)
	return backupFile, nil
}

// restore replaces the database with the contents of backupFile.
func restore(cmd *cobra.Command, dbPath, backupFile string, yes bool) error {
	out := cmd.OutOrStdout()
	fi, err := os.Stat(backupFile)
	if err != nil {
		return fmt.Errorf("backup file does not exist: %s", backupFile)
	}
	if fi.Size() == 0 {
		return fmt.Errorf("backup file is empty: %s", backupFile)
	}

	if exists(dbPath) {
		if !yes && !confirm(cmd, "Existing database found. Do you want to replace it?") {
			fmt.Fprintln(out, "Operation cancelled")
			return nil
		}
		if err := os.RemoveAll(dbPath); err != nil {
			return fmt.Errorf("failed to remove existing database: %w", err)
		}
	}
	if err := os.MkdirAll(dbPath, 0755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := repositories.OpenBadger(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	f, err := os.Open(backupFile)
	if err != nil {
		return fmt.Errorf("failed to open backup file: %w", err)
	}
	defer f.Close()

	if err := load(db, f); err != nil {
		return fmt.Errorf("failed to restore database: %w", err)
	}
	fmt.Fprintln(out, "Database restored successfully")
	return nil
}

// load runs db.Load, turning a panic on a corrupt file into an error.
func load(db *badger.DB, f *os.File) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic occurred during restore: %v", r)
		}
	}()
	return db.Load(f, 4)
}
