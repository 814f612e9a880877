package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/docsift/docsift/internal/config"
	"github.com/docsift/docsift/internal/pdfdoc"
	"github.com/docsift/docsift/internal/pipeline"
	"github.com/docsift/docsift/internal/rank"
	"github.com/docsift/docsift/internal/report"
)

var (
	analyzeOutput string
	analyzeReport bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <collection-dir>",
	Short: "Analyze a document collection against its persona and task",
	Long: `Analyze reads <collection-dir>/challenge1b_input.json, processes the PDFs
under <collection-dir>/PDFs/, and writes the ranked analysis to
<collection-dir>/../Output/challenge1b_output.json unless --output is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "output", "o", "", "output JSON path (default <dir>/../Output/challenge1b_output.json)")
	analyzeCmd.Flags().BoolVar(&analyzeReport, "report", false, "also print a Markdown report to stdout")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	log := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	collectionDir := args[0]
	req, err := pipeline.LoadRequest(filepath.Join(collectionDir, "challenge1b_input.json"))
	if err != nil {
		return err
	}

	ctx := context.Background()
	embedder := rank.NewOpenAIEmbedder(cfg.OpenAIAPIKey, cfg.EmbeddingModel, cfg.EmbeddingTimeout)
	// Ranking has no fallback: an unreachable embedding service aborts the
	// run before any document work starts.
	if err := embedder.Ping(ctx); err != nil {
		return err
	}

	runner := pipeline.NewRunner(pdfdoc.Open, embedder, log, cfg.DocConcurrency)
	out, err := runner.Run(ctx, req, filepath.Join(collectionDir, "PDFs"))
	if err != nil {
		return err
	}

	outputPath := analyzeOutput
	if outputPath == "" {
		outputDir := filepath.Join(collectionDir, "..", "Output")
		if err := os.MkdirAll(outputDir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
		outputPath = filepath.Join(outputDir, "challenge1b_output.json")
	}
	if err := out.WriteFile(outputPath); err != nil {
		return err
	}
	log.Info("analysis complete", "output", outputPath)

	if analyzeReport {
		fmt.Fprintln(cmd.OutOrStdout(), report.Markdown(out))
	}
	return nil
}
