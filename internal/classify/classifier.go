package classify

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/varlex/varlex/internal/senses"
	"golang.org/x/sync/errgroup"
)

// Assignment is the (coarse domain, fine sense tag) pair computed for one
// lexical item
type Assignment struct {
	Domain    string `json:"dominio"`
	Subdomain string `json:"subdominio"`
}

// Unknown is the sentinel assignment for words without sense information
func Unknown() Assignment {
	return Assignment{Domain: DomainUnknown, Subdomain: DomainUnknown}
}

// Classifier maps a word to its semantic domain via the first candidate
// sense returned by the resolver. No contextual disambiguation is
// performed.
type Classifier struct {
	resolver senses.Resolver
	language string
}

// NewClassifier creates a classifier for the given lookup language
func NewClassifier(resolver senses.Resolver, language string) *Classifier {
	return &Classifier{
		resolver: resolver,
		language: language,
	}
}

// Classify returns the domain assignment for word. Blank words, lookup
// errors and empty lookups all resolve to the unknown sentinel; a sense
// whose lexname is outside the curated table resolves to "outro".
func (c *Classifier) Classify(ctx context.Context, word string) Assignment {
	word = strings.TrimSpace(word)
	if word == "" {
		return Unknown()
	}

	candidates, err := c.resolver.Lookup(ctx, word, c.language)
	if err != nil || len(candidates) == 0 {
		return Unknown()
	}

	// First candidate only: the resolver orders senses most frequent first.
	first := candidates[0]
	return Assignment{
		Domain:    MapLexname(first.Lexname),
		Subdomain: first.Lexname,
	}
}

// ClassifyAll classifies the distinct words of the dataset with bounded
// concurrency and returns the assignments keyed by word. Lookups are pure
// per word, so scheduling cannot change the result.
func (c *Classifier) ClassifyAll(ctx context.Context, words []string, workers int) (map[string]Assignment, error) {
	if workers <= 0 {
		workers = 1
	}

	distinct := make(map[string]bool, len(words))
	var order []string
	for _, w := range words {
		w = strings.TrimSpace(w)
		if w == "" || distinct[w] {
			continue
		}
		distinct[w] = true
		order = append(order, w)
	}
	sort.Strings(order)

	out := make(map[string]Assignment, len(order))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, word := range order {
		g.Go(func() error {
			a := c.Classify(ctx, word)
			mu.Lock()
			out[word] = a
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}
