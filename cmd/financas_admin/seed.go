package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/financas-app/financas_backend/internal/apperrors"
	"github.com/financas-app/financas_backend/internal/core/domain"
	portssvc "github.com/financas-app/financas_backend/internal/core/ports/services"
	"github.com/financas-app/financas_backend/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// seedFile is the YAML shape consumed by the seed command.
type seedFile struct {
	Users []struct {
		Email    string `yaml:"email"`
		Name     string `yaml:"name"`
		Password string `yaml:"password"`
	} `yaml:"users"`
	Categories []struct {
		Name string                 `yaml:"name"`
		Type domain.TransactionType `yaml:"type"`
	} `yaml:"categories"`
	Accounts []struct {
		Name  string             `yaml:"name"`
		Type  domain.AccountType `yaml:"type"`
		Limit string             `yaml:"limit"`
	} `yaml:"accounts"`
}

func newSeedCmd(logger *slog.Logger) *cobra.Command {
	var seedPath string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create users, categories and accounts from a YAML file",
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(seedPath)
			if err != nil {
				return fmt.Errorf("failed to read seed file: %w", err)
			}
			var seed seedFile
			if err := yaml.Unmarshal(raw, &seed); err != nil {
				return fmt.Errorf("failed to parse seed file: %w", err)
			}

			svcs, closeFn, err := buildServices(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			ctx := commandContext(logger)
			if err := seedUsers(ctx, svcs, seed, logger); err != nil {
				return err
			}
			if flagUserID == "" {
				return nil
			}

			user := domain.AuthUser{UserID: flagUserID, CanSync: flagCanSync}
			return seedMasterData(ctx, svcs, user, seed, logger)
		},
	}
	cmd.Flags().StringVar(&seedPath, "file", "seed.yaml", "path to the YAML seed file")
	return cmd
}

func seedUsers(ctx context.Context, svcs *portssvc.ServiceContainer, seed seedFile, logger *slog.Logger) error {
	for _, u := range seed.Users {
		created, err := svcs.User.Register(ctx, dto.RegisterRequest{
			Email:    u.Email,
			Name:     u.Name,
			Password: u.Password,
		})
		if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Info("User already exists, skipping", slog.String("email", u.Email))
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to seed user %q: %w", u.Email, err)
		}
		fmt.Printf("created user %s (%s)\n", created.Email, created.UserID)
	}
	return nil
}

func seedMasterData(ctx context.Context, svcs *portssvc.ServiceContainer, user domain.AuthUser, seed seedFile, logger *slog.Logger) error {
	for _, c := range seed.Categories {
		created, err := svcs.Category.CreateCategory(ctx, user, dto.CreateCategoryRequest{
			Name: c.Name,
			Type: c.Type,
		})
		if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Info("Category already exists, skipping", slog.String("name", c.Name))
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to seed category %q: %w", c.Name, err)
		}
		fmt.Printf("created category %s (%s)\n", created.Name, created.CategoryID)
	}

	for _, a := range seed.Accounts {
		limit := decimal.Zero
		if a.Limit != "" {
			parsed, err := decimal.NewFromString(a.Limit)
			if err != nil {
				return fmt.Errorf("invalid limit for account %q: %w", a.Name, err)
			}
			limit = parsed
		}
		created, err := svcs.Account.CreateAccount(ctx, user, dto.CreateAccountRequest{
			Name:  a.Name,
			Type:  a.Type,
			Limit: limit,
		})
		if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Info("Account already exists, skipping", slog.String("name", a.Name))
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to seed account %q: %w", a.Name, err)
		}
		fmt.Printf("created account %s (%s)\n", created.Name, created.AccountID)
	}
	return nil
}
