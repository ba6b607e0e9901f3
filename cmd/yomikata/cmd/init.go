package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yomikata/yomikata/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the default configuration file",
	Long: `Create the yomikata configuration directory and write a config file
with default settings you can then edit.`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	configDir := getConfigDir()
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := config.Save(configDir, config.Default()); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Println("Wrote", filepath.Join(configDir, "config.yaml"))
	return nil
}
