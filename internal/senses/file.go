package senses

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

// FileResolver serves sense lookups from a compiled sense index loaded
// into memory. The index is a tab-separated file with one line per sense
// in rank order:
//
//	word<TAB>pos<TAB>lexname
//
// Lines starting with '!' or '#' are comments. Such an index is produced
// offline from an Open Multilingual Wordnet release.
type FileResolver struct {
	// language the index was compiled for (ISO 639-3).
	language string
	senses   map[string][]Sense
}

// NewFileResolver loads the sense index at path
func NewFileResolver(path, language string) (*FileResolver, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sense index: %w", err)
	}
	defer func() { _ = f.Close() }()

	r := &FileResolver{
		language: language,
		senses:   make(map[string][]Sense),
	}

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "!") {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 3 {
			return nil, fmt.Errorf("sense index %s:%d: expected 3 tab-separated fields", path, lineNo)
		}
		word := strings.ToLower(strings.TrimSpace(fields[0]))
		r.senses[word] = append(r.senses[word], Sense{
			POS:     strings.TrimSpace(fields[1]),
			Lexname: strings.TrimSpace(fields[2]),
		})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read sense index: %w", err)
	}

	return r, nil
}

// Len returns the number of distinct words in the index
func (r *FileResolver) Len() int {
	return len(r.senses)
}

// Lookup returns the senses of word in rank order. A language other than
// the one the index was compiled for yields no senses.
func (r *FileResolver) Lookup(_ context.Context, word, language string) ([]Sense, error) {
	if language != "" && r.language != "" && language != r.language {
		return nil, nil
	}
	return r.senses[strings.ToLower(strings.TrimSpace(word))], nil
}
