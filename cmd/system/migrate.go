package system

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Alijeyrad/nutriguard_backend/config"
	"github.com/Alijeyrad/nutriguard_backend/internal/schema"
	"github.com/Alijeyrad/nutriguard_backend/pkg/database"
)

func NewMigrateCommand() *cobra.Command {
	var down int

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, err := cmd.Root().PersistentFlags().GetString("config")
			if err != nil {
				return fmt.Errorf("failed to get config flag: %w", err)
			}
			cfg, err := config.ReadConfig(filepath.Dir(cfgPath))
			if err != nil {
				return fmt.Errorf("failed to read config: %w", err)
			}

			m, err := database.NewMigrator(database.FromCentralConfig(cfg.Database), schema.Migrations, schema.MigrationsDir)
			if err != nil {
				return fmt.Errorf("failed to create migrator: %w", err)
			}
			defer m.Close()

			if down > 0 {
				fmt.Printf("Rolling back %d migration(s).\n", down)
				return m.Down(down)
			}

			fmt.Println("Running migrations.")
			if err := m.Up(); err != nil {
				return err
			}

			version, dirty, err := m.Version()
			if err != nil {
				return err
			}
			fmt.Printf("Migrations executed successfully (version %d, dirty %t).\n", version, dirty)
			return nil
		},
	}

	cmd.Flags().IntVar(&down, "down", 0, "Roll back this many migrations instead of migrating up")

	return cmd
}
