package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	httpcmd "github.com/Alijeyrad/nutriguard_backend/cmd/http"
	systemcmd "github.com/Alijeyrad/nutriguard_backend/cmd/system"
)

var (
	cfgFile string
)

var rootCmd = &cobra.Command{
	Use:   "nutriguard",
	Short: "NutriGuard healthcare food management backend.",
	Long: `NutriGuard manages patient nutrition in care facilities: patients, recipes,
meal plans, ingredient inventory, food-safety logs, nutrition intake and alerts,
with model-backed dietary recommendations.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global config flag, available for all commands.
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file path")

	// Attach top-level command trees.
	rootCmd.AddCommand(systemcmd.NewSystemCommand())
	rootCmd.AddCommand(httpcmd.NewHTTPCommand())
}
