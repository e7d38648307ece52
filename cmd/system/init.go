package system

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/Alijeyrad/nutriguard_backend/config"
	"github.com/Alijeyrad/nutriguard_backend/pkg/database"
)

func NewInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the database and application schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, err := cmd.Root().PersistentFlags().GetString("config")
			if err != nil {
				return fmt.Errorf("failed to get config flag: %w", err)
			}
			cfg, err := config.ReadConfig(filepath.Dir(cfgPath))
			if err != nil {
				return fmt.Errorf("failed to read config: %w", err)
			}

			ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.TimeoutSeconds)*time.Second)
			defer cancel()

			fmt.Println("Initializing database...")
			if err := database.InitializeDatabase(ctx, cfg); err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}
			fmt.Printf("Database %q with schema %q initialized successfully.\n", cfg.Database.DBName, cfg.Database.Schema)
			return nil
		},
	}

	return cmd
}
