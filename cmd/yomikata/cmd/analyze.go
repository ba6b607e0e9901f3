package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yomikata/yomikata/internal/analyzer"
	"github.com/yomikata/yomikata/internal/morph"
	"github.com/yomikata/yomikata/internal/tagger"
)

var analyzeJSON bool

var analyzeCmd = &cobra.Command{
	Use:   "analyze <sentence>",
	Short: "Split a Japanese sentence into words",
	Long: `Analyze a Japanese sentence: tokenize it into morphemes and regroup
them into readable words with their reading and base form.

Examples:
  yomikata analyze 食べたの
  yomikata analyze --json 猫たちは走った`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "output words as JSON")
	rootCmd.AddCommand(analyzeCmd)
}

// analyzedWord is the JSON shape for one grouped word.
type analyzedWord struct {
	Surface  string   `json:"surface"`
	Reading  string   `json:"reading,omitempty"`
	BaseForm string   `json:"base_form,omitempty"`
	Tokens   []string `json:"tokens"`
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	log := newLogger()

	lifecycle := tagger.NewLifecycle(tagger.NewKagome, cfg.Tagger.LoadTimeout())
	if err := lifecycle.Load(cmd.Context()); err != nil {
		return fmt.Errorf("loading tagger: %w", err)
	}

	an := analyzer.New(lifecycle, log)
	analysis, err := an.Analyze(strings.Join(args, ""))
	if err != nil {
		return err
	}

	if analyzeJSON {
		return printAnalysisJSON(analysis)
	}
	printAnalysis(analysis)
	return nil
}

func printAnalysisJSON(analysis morph.Analysis) error {
	words := make([]analyzedWord, 0, len(analysis.Words))
	for _, w := range analysis.Words {
		aw := analyzedWord{
			Surface:  w.Surface(),
			BaseForm: w.BaseForm(),
		}
		if r := w.Reading(); r != aw.Surface {
			aw.Reading = r
		}
		if aw.BaseForm == aw.Surface {
			aw.BaseForm = ""
		}
		for _, tok := range w.Tokens {
			aw.Tokens = append(aw.Tokens, tok.Surface)
		}
		words = append(words, aw)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(words)
}

func printAnalysis(analysis morph.Analysis) {
	for i, w := range analysis.Words {
		line := fmt.Sprintf("%2d. %s", i+1, w.Surface())
		if r := w.Reading(); r != w.Surface() {
			line += fmt.Sprintf("  [%s]", r)
		}
		if base := w.BaseForm(); base != w.Surface() {
			line += fmt.Sprintf("  (base: %s)", base)
		}
		if len(w.Tokens) > 1 {
			parts := make([]string, 0, len(w.Tokens))
			for _, tok := range w.Tokens {
				parts = append(parts, tok.Surface)
			}
			line += fmt.Sprintf("  = %s", strings.Join(parts, " + "))
		}
		fmt.Println(line)
	}
}
