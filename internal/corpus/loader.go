package corpus

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/varlex/varlex/internal/model"
	"golang.org/x/net/html"
)

// Loader reads a KWIC concordance document from a local path or an http(s)
// URL and turns its sentence elements into normalized utterances
type Loader struct {
	element string
	fetcher *Fetcher
}

// NewLoader creates a loader that collects text payloads of the given
// element name. The fetcher may be nil if URL sources are not needed.
func NewLoader(element string, fetcher *Fetcher) *Loader {
	if element == "" {
		element = "kwic"
	}
	return &Loader{
		element: strings.ToLower(element),
		fetcher: fetcher,
	}
}

// Load reads the document at source and returns one utterance per sentence
// element. A missing or unreadable source, and a document with zero sentence
// elements, are both precondition failures.
func (l *Loader) Load(ctx context.Context, source string) ([]model.Utterance, error) {
	var content string

	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		if l.fetcher == nil {
			return nil, fmt.Errorf("URL source %q but no fetcher configured", source)
		}
		fetched, err := l.fetcher.FetchWithRetry(ctx, source)
		if err != nil {
			return nil, fmt.Errorf("fetch corpus: %w", err)
		}
		content = fetched
	} else {
		data, err := os.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("read corpus: %w", err)
		}
		content = string(data)
	}

	utterances, err := l.Parse(strings.NewReader(content))
	if err != nil {
		return nil, err
	}
	if len(utterances) == 0 {
		return nil, fmt.Errorf("no <%s> elements found in %s", l.element, source)
	}
	return utterances, nil
}

// Parse extracts sentence elements from a KWIC document. Concordance
// exports are rarely well-formed XML, so the lenient HTML tokenizer is
// used instead of a strict XML decoder.
func (l *Loader) Parse(r io.Reader) ([]model.Utterance, error) {
	tokenizer := html.NewTokenizer(r)

	var utterances []model.Utterance
	var depth int // nesting depth inside the target element
	var text strings.Builder

	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			if err := tokenizer.Err(); err != io.EOF {
				return nil, fmt.Errorf("parse corpus: %w", err)
			}
			return utterances, nil

		case html.StartTagToken:
			name, _ := tokenizer.TagName()
			if strings.ToLower(string(name)) == l.element {
				if depth == 0 {
					text.Reset()
				}
				depth++
			}

		case html.TextToken:
			if depth > 0 {
				text.Write(tokenizer.Text())
			}

		case html.EndTagToken:
			name, _ := tokenizer.TagName()
			if strings.ToLower(string(name)) == l.element && depth > 0 {
				depth--
				if depth == 0 {
					raw := strings.TrimSpace(text.String())
					if raw != "" {
						utterances = append(utterances, Normalize(raw))
					}
				}
			}
		}
	}
}
