// Package cmd contains all CLI commands for the yomikata tool.
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/yomikata/yomikata/internal/analyzer"
	"github.com/yomikata/yomikata/internal/config"
	"github.com/yomikata/yomikata/internal/dict"
	"github.com/yomikata/yomikata/internal/selection"
	"github.com/yomikata/yomikata/internal/tagger"
	"github.com/yomikata/yomikata/internal/tui"
	"github.com/yomikata/yomikata/internal/tui/views"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "yomikata",
	Short: "Read Japanese sentences with per-word dictionary lookups",
	Long: `yomikata analyzes Japanese sentences: it splits a sentence into
morphemes, regroups them into readable words with furigana, and looks up
the selected word in the Jisho dictionary.

Running 'yomikata' without arguments launches the interactive TUI.`,
	RunE: runTUI,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config directory (default is $HOME/.config/yomikata)")
	rootCmd.PersistentFlags().Bool("verbose", false, "verbose output")

	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.Set("config_dir", cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error finding home directory:", err)
			os.Exit(1)
		}
		viper.Set("config_dir", filepath.Join(home, ".config", "yomikata"))
	}

	viper.SetEnvPrefix("YOMIKATA")
	viper.AutomaticEnv()
}

// getConfigDir returns the configuration directory path.
func getConfigDir() string {
	return viper.GetString("config_dir")
}

// newLogger builds the CLI logger; --verbose enables debug output.
func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if viper.GetBool("verbose") {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// loadConfig loads the user config, falling back to defaults.
func loadConfig() *config.Config {
	cfg, err := config.Load(getConfigDir())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v; using defaults\n", err)
		return config.Default()
	}
	return cfg
}

// openCache opens the lookup cache when enabled. Cache failures are not
// fatal: lookups fall back to network-only.
func openCache(cfg *config.Config, log *slog.Logger) *dict.Cache {
	if !cfg.Cache.Enabled {
		return nil
	}
	cache, err := dict.OpenCache(cfg.CachePath(getConfigDir()))
	if err != nil {
		log.Warn("opening lookup cache failed", "error", err)
		return nil
	}
	return cache
}

// runTUI launches the TUI application.
func runTUI(cmd *cobra.Command, args []string) error {
	configDir := getConfigDir()
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	cfg := loadConfig()

	// The TUI owns the terminal; background warnings are discarded.
	log := slog.New(slog.DiscardHandler)

	cache := openCache(cfg, log)
	if cache != nil {
		defer cache.Close()
	}

	client := dict.NewClient(
		dict.WithBaseURL(cfg.Dictionary.BaseURL),
		dict.WithTimeout(cfg.Dictionary.Timeout()),
		dict.WithCache(cache),
		dict.WithLogger(log),
	)

	lifecycle := tagger.NewLifecycle(tagger.NewKagome, cfg.Tagger.LoadTimeout())
	an := analyzer.New(lifecycle, log)

	// Lookup completions arrive from the controller's goroutines and are
	// injected into the UI loop as messages.
	var program *tea.Program
	ctrl := selection.New(client, func(s selection.Snapshot) {
		if program != nil {
			program.Send(views.SelectionUpdatedMsg{Snapshot: s})
		}
	})

	program = tea.NewProgram(
		tui.NewApp(lifecycle, an, ctrl, cache),
		tea.WithAltScreen(),
	)

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}
