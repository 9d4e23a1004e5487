package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/varlex/varlex/internal/pipeline"
	"github.com/varlex/varlex/internal/worker"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Analyze multiple corpus files from a list in parallel",
	Long: `Batch analyzes multiple KWIC corpus files concurrently:
- Read corpus paths or URLs from the input file (one per line)
- Analyze each corpus with its own independent pipeline pass
- Write one workbook per corpus into the output directory

All corpora in a batch share the construction type, language and
collaborator configuration.

Example:
  varlex batch corpora.txt --construction n_adj --senses-index wn-por.tsv
  varlex batch corpora.txt --workers 4 --output-dir ./results`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "workers", runtime.NumCPU(), "number of concurrent corpus analyses")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./varlex-results", "output directory for workbooks")
	batchCmd.Flags().DurationVar(&batchTimeout, "batch-timeout", 30*time.Minute, "total timeout for batch processing")

	// Shared analysis flags
	batchCmd.Flags().StringVarP(&construction, "construction", "c", "svo", "construction type (svo, n_adj, adj_n)")
	batchCmd.Flags().StringVar(&language, "lang", "por", "sense-lookup language (ISO 639-3)")
	batchCmd.Flags().StringVar(&corpusElement, "element", "kwic", "markup element holding one sentence")
	batchCmd.Flags().StringVar(&parserURL, "parser-url", "http://localhost:8080/parse", "dependency-parser service endpoint")
	batchCmd.Flags().StringVar(&parserModel, "parser-model", "pt_core_news_lg", "parser model name")
	batchCmd.Flags().StringVar(&sensesProvider, "senses", "file", "sense provider (file, openai)")
	batchCmd.Flags().StringVar(&sensesIndex, "senses-index", "", "compiled sense index path (file provider)")
	batchCmd.Flags().StringVar(&sensesModel, "senses-model", "gpt-4o-mini", "model name (openai provider)")
	batchCmd.Flags().DurationVar(&timeout, "timeout", 10*time.Minute, "timeout for individual analyses")
	batchCmd.Flags().StringVar(&userAgent, "ua", "Varlex/0.1 (+https://github.com/varlex/varlex)", "HTTP User-Agent")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the sense-lookup cache")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Varlex Batch Processing\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Input file:    %s\n", file)
	fmt.Fprintf(os.Stderr, "  Construction:  %s\n", cfg.Construction)
	fmt.Fprintf(os.Stderr, "  Workers:       %d\n", concurrency)
	fmt.Fprintf(os.Stderr, "  Output dir:    %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "\n")

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return err
	}

	processor := worker.NewBatchProcessor(p, concurrency)
	renderer := p.Renderer()

	results, err := processor.ProcessFile(ctx, file)
	if err != nil {
		return fmt.Errorf("process file: %w", err)
	}

	successCount := 0
	failureCount := 0

	for _, result := range results {
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Source, result.Error)
			continue
		}

		successCount++

		outPath := filepath.Join(outputDir, workbookName(result.Source, result.Report.GeneratedAt.Format("20060102_150405")))
		if err := renderer.RenderXLSX(result.Report, outPath); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write workbook: %v\n", result.Source, err)
			continue
		}

		fmt.Fprintf(os.Stderr, "✓ %s: %d construções, cobertura %.1f%% → %s\n",
			result.Source, len(result.Report.Rows), result.Report.Coverage, outPath)
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d corpora\n", len(results))
	fmt.Fprintf(os.Stderr, "  Success:   %d\n", successCount)
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failureCount)
	fmt.Fprintf(os.Stderr, "\n")

	if failureCount > 0 {
		return fmt.Errorf("%d of %d corpora failed", failureCount, len(results))
	}
	return nil
}

// workbookName derives a per-corpus output filename from its source
func workbookName(source, stamp string) string {
	base := filepath.Base(source)
	if idx := strings.IndexAny(base, "?#"); idx >= 0 {
		base = base[:idx]
	}
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." || base == "/" {
		base = "corpus"
	}

	replacer := strings.NewReplacer("/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_", " ", "-")
	base = replacer.Replace(base)

	if len(base) > 100 {
		base = base[:100]
	}

	return base + "_" + stamp + ".xlsx"
}
