// financas-admin runs the maintenance and store-sync operations from the
// command line, against the same services the HTTP surface uses.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/financas-app/financas_backend/internal/core/domain"
	portsrepo "github.com/financas-app/financas_backend/internal/core/ports/repositories"
	portssvc "github.com/financas-app/financas_backend/internal/core/ports/services"
	"github.com/financas-app/financas_backend/internal/core/services"
	"github.com/financas-app/financas_backend/internal/middleware"
	"github.com/financas-app/financas_backend/internal/repositories/database/pgsql"
	"github.com/financas-app/financas_backend/internal/repositories/localstore"
	"github.com/financas-app/financas_backend/pkg/config"
	"github.com/financas-app/financas_backend/pkg/database"
	"github.com/spf13/cobra"
)

var (
	flagUserID  string
	flagCanSync bool
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	rootCmd := &cobra.Command{
		Use:           "financas-admin",
		Short:         "Administrative operations for the finance tracker backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&flagUserID, "user", "", "user id to operate on")
	rootCmd.PersistentFlags().BoolVar(&flagCanSync, "cloud", false, "operate on the cloud store instead of the local one")

	rootCmd.AddCommand(
		newRepairCmd(logger),
		newLinkRecurrencesCmd(logger),
		newMigrateToCloudCmd(logger),
		newSyncToLocalCmd(logger),
		newSeedCmd(logger),
	)

	if err := rootCmd.Execute(); err != nil {
		logger.Error("Command failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// buildServices wires the service container the same way the server does.
func buildServices(ctx context.Context) (*portssvc.ServiceContainer, func(), error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, err
	}

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to cloud store: %w", err)
	}

	localStore, err := localstore.NewStore(cfg.LocalStorePath)
	if err != nil {
		dbPool.Close()
		return nil, nil, err
	}

	var checker portsrepo.AvailabilityChecker
	if cfg.EnableDBCheck {
		checker = pgsql.NewChecker(dbPool)
	}

	container := services.NewServiceContainer(
		pgsql.NewRepositoryProvider(dbPool),
		localstore.NewRepositoryProvider(localStore),
		checker,
		pgsql.NewPgxUserRepository(dbPool),
	)
	return container, dbPool.Close, nil
}

func requireUser(cmd *cobra.Command) (domain.AuthUser, error) {
	if flagUserID == "" {
		return domain.AuthUser{}, fmt.Errorf("--user is required")
	}
	return domain.AuthUser{UserID: flagUserID, CanSync: flagCanSync}, nil
}

func commandContext(logger *slog.Logger) context.Context {
	return middleware.WithLogger(context.Background(), logger)
}

func newRepairCmd(logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "repair",
		Short: "Renormalize corrupted transaction dates and derived fields",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := requireUser(cmd)
			if err != nil {
				return err
			}
			svcs, closeFn, err := buildServices(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			report, err := svcs.Maintenance.RepairAll(commandContext(logger), user)
			if err != nil {
				return err
			}
			fmt.Printf("repaired %d record(s), skipped %d unrepairable\n", report.Count, report.Skipped)
			return nil
		},
	}
}

func newLinkRecurrencesCmd(logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "link-recurrences",
		Short: "Mint series ids for recurring records that predate series tracking",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := requireUser(cmd)
			if err != nil {
				return err
			}
			svcs, closeFn, err := buildServices(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			report, err := svcs.Maintenance.LinkLegacyRecurrences(commandContext(logger), user)
			if err != nil {
				return err
			}
			fmt.Printf("linked %d legacy series: %d records updated, %d created\n", report.Legacy, report.Updated, report.Created)
			return nil
		},
	}
}

func newMigrateToCloudCmd(logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate-to-cloud",
		Short: "Upload the local store's data into the cloud store",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := requireUser(cmd)
			if err != nil {
				return err
			}
			user.CanSync = true
			svcs, closeFn, err := buildServices(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			report, err := svcs.Sync.MigrateLocalToCloud(commandContext(logger), user)
			if err != nil {
				return err
			}
			fmt.Printf("migrated %d categories, %d accounts, %d transactions\n", report.Categories, report.Accounts, report.Transactions)
			for _, e := range report.Errors {
				fmt.Printf("  error: %s\n", e)
			}
			return nil
		},
	}
}

func newSyncToLocalCmd(logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "sync-to-local",
		Short: "Replace the local store's data with the user's cloud data",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := requireUser(cmd)
			if err != nil {
				return err
			}
			user.CanSync = true
			svcs, closeFn, err := buildServices(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			report, err := svcs.Sync.SyncCloudToLocal(commandContext(logger), user)
			if err != nil {
				return err
			}
			fmt.Printf("synced %d categories, %d accounts, %d transactions\n", report.Categories, report.Accounts, report.Transactions)
			return nil
		},
	}
}
