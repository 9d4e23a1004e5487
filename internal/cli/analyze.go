package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/varlex/varlex/internal/model"
	"github.com/varlex/varlex/internal/pipeline"
)

var (
	construction   string
	language       string
	corpusElement  string
	parserURL      string
	parserModel    string
	sensesProvider string
	sensesIndex    string
	sensesModel    string
	outXLSX        string
	csvDir         string
	timeout        time.Duration
	userAgent      string
	maxBytes       int64
	noCache        bool
	insecureTLS    bool
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <corpus>",
	Short: "Analyze one KWIC corpus file and export variability tables",
	Long: `Analyze runs the full pipeline over a single KWIC corpus document
(a local file or an http(s) URL):
- Strip inline annotation tags from each sentence
- Extract one construction per sentence for the chosen type
- Classify open-slot fillers into coarse semantic domains
- Rank anchors by the number of distinct domains they co-occur with
- Export the constructions and variability tables as a workbook

Example:
  varlex analyze corpus.xml --construction svo --senses-index wn-por.tsv
  varlex analyze corpus.xml --construction n_adj --out results.xlsx --csv-dir ./tables
  varlex analyze https://corpora.example.org/kwic?q=medo --construction adj_n`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	// Analysis flags
	analyzeCmd.Flags().StringVarP(&construction, "construction", "c", "svo", "construction type (svo, n_adj, adj_n)")
	analyzeCmd.Flags().StringVar(&language, "lang", "por", "sense-lookup language (ISO 639-3)")
	analyzeCmd.Flags().StringVar(&corpusElement, "element", "kwic", "markup element holding one sentence")

	// Collaborator flags
	analyzeCmd.Flags().StringVar(&parserURL, "parser-url", "http://localhost:8080/parse", "dependency-parser service endpoint")
	analyzeCmd.Flags().StringVar(&parserModel, "parser-model", "pt_core_news_lg", "parser model name")
	analyzeCmd.Flags().StringVar(&sensesProvider, "senses", "file", "sense provider (file, openai)")
	analyzeCmd.Flags().StringVar(&sensesIndex, "senses-index", "", "compiled sense index path (file provider)")
	analyzeCmd.Flags().StringVar(&sensesModel, "senses-model", "gpt-4o-mini", "model name (openai provider)")

	// Output flags
	analyzeCmd.Flags().StringVar(&outXLSX, "out", "", "output workbook path (default: timestamped)")
	analyzeCmd.Flags().StringVar(&csvDir, "csv-dir", "", "additionally write one CSV per table")

	// HTTP flags
	analyzeCmd.Flags().DurationVar(&timeout, "timeout", 10*time.Minute, "overall analysis timeout")
	analyzeCmd.Flags().StringVar(&userAgent, "ua", "Varlex/0.1 (+https://github.com/varlex/varlex)", "HTTP User-Agent")
	analyzeCmd.Flags().Int64Var(&maxBytes, "max-bytes", 20_000_000, "max corpus bytes to read from a URL")
	analyzeCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the sense-lookup cache")
	analyzeCmd.Flags().BoolVar(&insecureTLS, "insecure", false, "skip TLS certificate verification (use for self-signed certs)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	source := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Analyzing: %s\n", source)
		fmt.Fprintf(os.Stderr, "Construction: %s\n", cfg.Construction)
		fmt.Fprintf(os.Stderr, "Language: %s\n", cfg.Language)
		fmt.Fprintln(os.Stderr)
	}

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return err
	}

	report, err := p.Run(ctx, source)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if err := p.Render(report); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	return nil
}

// buildConfig assembles the run configuration from flags
func buildConfig() (*model.Config, error) {
	ctype, err := model.ParseConstructionType(construction)
	if err != nil {
		return nil, err
	}

	cfg := model.DefaultConfig()
	cfg.Construction = ctype
	cfg.Language = language
	cfg.Corpus.Element = corpusElement
	cfg.Parser.URL = parserURL
	cfg.Parser.Model = parserModel
	cfg.Senses.Provider = sensesProvider
	cfg.Senses.IndexPath = sensesIndex
	cfg.Senses.Model = sensesModel
	cfg.HTTP.Timeout = timeout
	cfg.HTTP.UserAgent = userAgent
	cfg.HTTP.MaxBodyBytes = maxBytes
	cfg.HTTP.InsecureTLS = insecureTLS
	cfg.Cache.Enabled = !noCache
	cfg.Output.XLSXPath = outXLSX
	cfg.Output.CSVDir = csvDir
	cfg.Output.Verbose = verbose

	if sensesProvider == "openai" {
		cfg.Senses.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.Senses.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	}

	if cfg.Cache.Enabled && cfg.Cache.Dir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			cfg.Cache.Dir = filepath.Join(home, ".varlex", "cache")
		}
	}

	return cfg, nil
}
