package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"sharvari-site/internal/di"
	"sharvari-site/internal/shared/logger"

	"github.com/spf13/cobra"
)

var (
	adminEmail    string
	adminPassword string
)

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create or promote an admin account",
	Long: `Creates an account for --email and marks its profile as admin. An existing
account is promoted when --password matches it.

The password may also be given through ADMIN_PASSWORD.`,
	RunE: runCreateAdmin,
}

func init() {
	createAdminCmd.Flags().StringVar(&adminEmail, "email", "", "admin email address")
	createAdminCmd.Flags().StringVar(&adminPassword, "password", "", "admin password (default $ADMIN_PASSWORD)")
	_ = createAdminCmd.MarkFlagRequired("email")
}

func runCreateAdmin(cmd *cobra.Command, args []string) error {
	if adminPassword == "" {
		adminPassword = os.Getenv("ADMIN_PASSWORD")
	}
	if adminPassword == "" {
		return fmt.Errorf("a password is required: pass --password or set ADMIN_PASSWORD")
	}

	cfg, err := di.LoadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	container := di.NewContainer(logger.NewLogger())
	if err := container.Initialize(ctx, cfg); err != nil {
		return fmt.Errorf("failed to initialize modules: %w", err)
	}
	defer container.Close()

	cred, err := container.AuthModule.Identity.ProvisionAdmin(ctx, container.StoreModule.Client, adminEmail, adminPassword)
	if err != nil {
		return fmt.Errorf("failed to provision admin: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Admin %s ready (uid %s)\n", cred.Email, cred.UID)
	return nil
}
