package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/ToNga156/FinalProject/internal/config"
	"github.com/ToNga156/FinalProject/internal/shop"
	"github.com/ToNga156/FinalProject/internal/store"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	dbPath     string
	verbose    bool
	jsonOutput bool
)

// app holds what one invocation opens. Commands close over it.
type app struct {
	store    *store.Store
	shop     *shop.Service
	imageDir string
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "storefront",
		Short: "Storefront - local catalog, cart and order store",
		Long: `Storefront manages the embedded database behind the shop: the product
catalog, shopping carts, orders and user accounts.

The database is created and seeded on first use. Every command runs the
idempotent schema initialization before it starts, so stores written by
older versions are upgraded in place.`,
		Version:       "1.0.0",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open(cmd.Context())
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
	}

	cmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database file (overrides DB_PATH)")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	cmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	cmd.AddCommand(
		newSchemaCmd(a),
		newCategoryCmd(a),
		newProductCmd(a),
		newUserCmd(a),
		newCartCmd(a),
		newOrderCmd(a),
		newStatsCmd(a),
	)
	return cmd
}

// Execute runs the command line given to the process.
func Execute(ctx context.Context) error {
	return new(app).execute(ctx, os.Args[1:])
}

// execute builds a fresh command tree and runs it with args. The store is
// closed on return, also when the command failed and the post-run hook was
// skipped.
func (a *app) execute(ctx context.Context, args []string) error {
	cmd := newRootCmd(a)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	if cerr := a.close(); err == nil {
		err = cerr
	}
	return err
}

func (a *app) open(ctx context.Context) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	if verbose {
		cfg.LogLevel = slog.LevelDebug
	}
	slog.SetDefault(cfg.NewLogger())
	a.imageDir = cfg.ImageDir

	a.store, err = store.NewStore(cfg.DBPath, store.Options{
		BusyTimeout:             cfg.BusyTimeout,
		StrictStatusTransitions: cfg.StrictStatusTransitions,
		AdminUsername:           cfg.AdminUsername,
		AdminPassword:           cfg.AdminPassword,
	})
	if err != nil {
		return fmt.Errorf("failed to open database %s: %w", cfg.DBPath, err)
	}

	// A partial schema still serves whatever tables exist.
	if err := a.store.Initialize(ctx); err != nil {
		slog.Warn("Store initialized with errors", "error", err)
	}
	a.shop = shop.NewService(a.store)
	return nil
}

func (a *app) close() error {
	if a.store == nil {
		return nil
	}
	err := a.store.Close()
	a.store, a.shop = nil, nil
	return err
}
