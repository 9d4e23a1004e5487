package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/varlex/varlex/internal/aggregate"
	"github.com/varlex/varlex/internal/cache"
	"github.com/varlex/varlex/internal/classify"
	"github.com/varlex/varlex/internal/corpus"
	"github.com/varlex/varlex/internal/extract"
	"github.com/varlex/varlex/internal/model"
	"github.com/varlex/varlex/internal/parse"
	"github.com/varlex/varlex/internal/senses"
	"github.com/varlex/varlex/internal/worker"
)

// Pipeline runs the complete analysis pass for one construction type:
// load corpus, extract constructions, filter, classify domains, aggregate
// variability, report. Collaborators are constructed once and passed in;
// there is no package-level state.
type Pipeline struct {
	loader     *corpus.Loader
	parser     parse.Parser
	classifier *classify.Classifier
	strategy   extract.Strategy
	renderer   *Renderer
	config     *model.Config
}

// NewPipeline wires a pipeline from configuration
func NewPipeline(cfg *model.Config) (*Pipeline, error) {
	strategy, err := extract.ForType(cfg.Construction)
	if err != nil {
		return nil, err
	}

	limiter := worker.NewLimiter(cfg.Limits.RequestsPerSecond, cfg.Limits.Burst)

	fetcher := corpus.NewFetcher(cfg.HTTP)
	loader := corpus.NewLoader(cfg.Corpus.Element, fetcher)

	parser := parse.NewHTTPParser(cfg.Parser.URL, cfg.Parser.Model, cfg.Parser.Timeout, limiter)

	resolver, err := senses.NewResolver(cfg.Senses, limiter)
	if err != nil {
		return nil, fmt.Errorf("sense resolver: %w", err)
	}
	if cfg.Cache.Enabled {
		var c cache.Cache
		if cfg.Cache.Dir != "" {
			c = cache.NewLayeredCache(cfg.Cache.TTL, cfg.Cache.Dir, cfg.Cache.TTL)
		} else {
			c = cache.NewMemoryCache(cfg.Cache.TTL, 10*time.Minute)
		}
		resolver = senses.NewCachedResolver(resolver, c, cfg.Cache.TTL)
	}

	return &Pipeline{
		loader:     loader,
		parser:     parser,
		classifier: classify.NewClassifier(resolver, cfg.Language),
		strategy:   strategy,
		renderer:   NewRenderer(strategy),
		config:     cfg,
	}, nil
}

// NewPipelineWith wires a pipeline from explicit collaborators. Used by
// tests and by callers that bring their own parser or resolver.
func NewPipelineWith(cfg *model.Config, loader *corpus.Loader, parser parse.Parser, resolver senses.Resolver) (*Pipeline, error) {
	strategy, err := extract.ForType(cfg.Construction)
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		loader:     loader,
		parser:     parser,
		classifier: classify.NewClassifier(resolver, cfg.Language),
		strategy:   strategy,
		renderer:   NewRenderer(strategy),
		config:     cfg,
	}, nil
}

// Run executes the full pass over one corpus source. Loader failures are
// fatal preconditions; a sentence without a match is silently dropped; a
// word without senses resolves to the unknown sentinel.
func (p *Pipeline) Run(ctx context.Context, source string) (*model.Report, error) {
	verbose := p.config.Output.Verbose

	// 1. Load and normalize the corpus.
	utterances, err := p.loader.Load(ctx, source)
	if err != nil {
		return nil, err
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Read %d sentences from %s\n", len(utterances), source)
	}

	// 2. Parse and extract, one construction at most per sentence.
	rows := make([]model.Construction, 0, len(utterances))
	for _, u := range utterances {
		tokens, err := p.parser.Parse(ctx, u.Clean)
		if err != nil {
			return nil, fmt.Errorf("parse sentence: %w", err)
		}
		if row, ok := p.strategy.Extract(u, tokens); ok {
			rows = append(rows, row)
		}
	}
	extracted := len(rows)
	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Extracted %d constructions\n", extracted)
	}

	// 3. Drop light anchors before anything downstream sees them.
	rows, filtered := p.strategy.Filter(rows)
	if verbose && filtered > 0 {
		fmt.Fprintf(os.Stderr, "✓ Filtered %d light-verb constructions\n", filtered)
	}

	// 4. Classify the distinct lexical slots and annotate the rows.
	var words []string
	for _, row := range rows {
		words = append(words, p.strategy.Slots(row)...)
	}
	assignments, err := p.classifier.ClassifyAll(ctx, words, p.config.Concurrency.ClassifyWorkers)
	if err != nil {
		return nil, fmt.Errorf("classify: %w", err)
	}
	lookup := func(word string) classify.Assignment {
		if a, ok := assignments[word]; ok {
			return a
		}
		return classify.Unknown()
	}
	for i := range rows {
		p.strategy.Annotate(&rows[i], lookup)
	}

	// 5. Aggregate and report.
	report := &model.Report{
		Source:        source,
		Construction:  p.config.Construction,
		GeneratedAt:   time.Now().UTC(),
		SentencesRead: len(utterances),
		Extracted:     extracted,
		Filtered:      filtered,
		Rows:          rows,
		Tables:        p.strategy.Tables(rows),
		Coverage:      aggregate.Coverage(rows, func(r model.Construction) string { return r.Domain }),
	}

	return report, nil
}

// Renderer returns the pipeline's renderer, for callers that manage their
// own output paths
func (p *Pipeline) Renderer() *Renderer {
	return p.renderer
}

// Render writes the report to the configured outputs and prints the
// terminal summary
func (p *Pipeline) Render(report *model.Report) error {
	xlsxPath := p.config.Output.XLSXPath
	if xlsxPath == "" {
		xlsxPath = DefaultOutputPath(report.Construction, report.GeneratedAt)
	}

	if err := p.renderer.RenderXLSX(report, xlsxPath); err != nil {
		return fmt.Errorf("render xlsx: %w", err)
	}
	if p.config.Output.Verbose {
		fmt.Fprintf(os.Stderr, "✓ Wrote workbook: %s\n", xlsxPath)
	}

	if dir := p.config.Output.CSVDir; dir != "" {
		if err := p.renderer.RenderCSV(report, dir); err != nil {
			return fmt.Errorf("render csv: %w", err)
		}
		if p.config.Output.Verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote CSV tables: %s\n", dir)
		}
	}

	p.renderer.RenderSummary(report, xlsxPath)
	return nil
}
