package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yomikata/yomikata/internal/dict"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <word>",
	Short: "Look up a word in the Jisho dictionary",
	Long: `Look up a Japanese word (or English keyword) in the Jisho dictionary
and print its readings and senses.

Examples:
  yomikata lookup 食べる
  yomikata lookup cat`,
	Args: cobra.ExactArgs(1),
	RunE: runLookup,
}

func init() {
	rootCmd.AddCommand(lookupCmd)
}

func runLookup(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	log := newLogger()

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

	entries, err := client.Lookup(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("looking up %q: %w", args[0], err)
	}
	if len(entries) == 0 {
		fmt.Printf("No dictionary entries for %q\n", args[0])
		return nil
	}

	for i, entry := range entries {
		printEntry(i+1, entry)
		if i < len(entries)-1 {
			fmt.Println()
		}
	}
	return nil
}

func printEntry(n int, entry dict.Entry) {
	header := fmt.Sprintf("%d. %s", n, entry.Slug)
	if len(entry.Japanese) > 0 && entry.Japanese[0].Reading != "" {
		header += fmt.Sprintf(" [%s]", entry.Japanese[0].Reading)
	}
	var badges []string
	if entry.IsCommon {
		badges = append(badges, "common")
	}
	for _, lvl := range entry.JLPT {
		badges = append(badges, lvl)
	}
	if len(badges) > 0 {
		header += "  (" + strings.Join(badges, ", ") + ")"
	}
	fmt.Println(header)

	for _, sense := range entry.Senses {
		line := "   - " + strings.Join(sense.EnglishDefinitions, "; ")
		if len(sense.PartsOfSpeech) > 0 {
			line += "  [" + strings.Join(sense.PartsOfSpeech, ", ") + "]"
		}
		fmt.Println(line)
	}
}
