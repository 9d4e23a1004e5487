package model

import "time"

// Config holds the full runtime configuration for an analysis run
type Config struct {
	Construction ConstructionType `yaml:"construction"`
	// Language is the sense-lookup language identifier (ISO 639-3).
	Language string `yaml:"language"`

	Corpus      CorpusConfig      `yaml:"corpus"`
	Parser      ParserConfig      `yaml:"parser"`
	Senses      SensesConfig      `yaml:"senses"`
	Cache       CacheConfig       `yaml:"cache"`
	HTTP        HTTPConfig        `yaml:"http"`
	Limits      LimitsConfig      `yaml:"limits"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Output      OutputConfig      `yaml:"output"`
}

// CorpusConfig controls corpus document loading
type CorpusConfig struct {
	// Element is the markup element whose text payload holds one sentence.
	Element string `yaml:"element"`
}

// ParserConfig points at the dependency-parser service
type ParserConfig struct {
	URL string `yaml:"url"`
	// Model is the parser model name passed through to the service.
	Model   string        `yaml:"model"`
	Timeout time.Duration `yaml:"timeout"`
}

// SensesConfig selects and configures the lexical-sense resolver
type SensesConfig struct {
	// Provider is "file" or "openai".
	Provider string `yaml:"provider"`
	// IndexPath is the compiled sense index for the file provider.
	IndexPath string `yaml:"index_path"`
	// Model, APIKey and BaseURL configure the openai provider.
	Model   string `yaml:"model"`
	APIKey  string `yaml:"-"`
	BaseURL string `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// CacheConfig controls sense-lookup memoization
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Dir     string        `yaml:"dir"`
	TTL     time.Duration `yaml:"ttl"`
}

// HTTPConfig controls corpus fetching over HTTP
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout"`
	UserAgent    string        `yaml:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes"`
	InsecureTLS  bool          `yaml:"insecure_tls"`
	// HTTPProxy and HTTPSProxy override the environment proxy settings.
	HTTPProxy  string `yaml:"http_proxy"`
	HTTPSProxy string `yaml:"https_proxy"`
}

// LimitsConfig throttles calls to remote collaborators
type LimitsConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

// ConcurrencyConfig sizes the concurrent stages
type ConcurrencyConfig struct {
	// ClassifyWorkers bounds concurrent sense lookups within one run.
	ClassifyWorkers int `yaml:"classify_workers"`
	// BatchWorkers bounds concurrent corpus files in batch mode.
	BatchWorkers int `yaml:"batch_workers"`
}

// OutputConfig controls result rendering
type OutputConfig struct {
	// XLSXPath is the workbook path; empty means a timestamped default.
	XLSXPath string `yaml:"xlsx_path"`
	// CSVDir, when set, additionally writes one CSV per table.
	CSVDir  string `yaml:"csv_dir"`
	Verbose bool   `yaml:"verbose"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Construction: ConstructionSVO,
		Language:     "por",
		Corpus: CorpusConfig{
			Element: "kwic",
		},
		Parser: ParserConfig{
			URL:     "http://localhost:8080/parse",
			Model:   "pt_core_news_lg",
			Timeout: 30 * time.Second,
		},
		Senses: SensesConfig{
			Provider:  "file",
			IndexPath: "",
			Model:     "gpt-4o-mini",
			Timeout:   30 * time.Second,
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     "",
			TTL:     30 * 24 * time.Hour,
		},
		HTTP: HTTPConfig{
			Timeout:      2 * time.Minute,
			UserAgent:    "Varlex/0.1 (+https://github.com/varlex/varlex)",
			MaxBodyBytes: 20_000_000,
		},
		Limits: LimitsConfig{
			RequestsPerSecond: 10,
			Burst:             5,
		},
		Concurrency: ConcurrencyConfig{
			ClassifyWorkers: 4,
			BatchWorkers:    2,
		},
		Output: OutputConfig{},
	}
}
