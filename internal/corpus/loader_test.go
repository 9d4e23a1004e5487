package corpus

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoader_Parse(t *testing.T) {
	loader := NewLoader("kwic", nil)

	doc := `<?xml version="1.0"?>
<results>
  <kwic>O gato/noun come/verb peixe/noun</kwic>
  <kwic>  bom/adj dia/noun  </kwic>
  <other>ignored</other>
  <kwic></kwic>
</results>`

	utterances, err := loader.Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if len(utterances) != 2 {
		t.Fatalf("expected 2 utterances, got %d", len(utterances))
	}

	if utterances[0].Clean != "O gato come peixe" {
		t.Errorf("first utterance = %q", utterances[0].Clean)
	}
	if utterances[0].Original != "O gato/noun come/verb peixe/noun" {
		t.Errorf("first original = %q", utterances[0].Original)
	}
	if utterances[1].Clean != "bom dia" {
		t.Errorf("second utterance = %q", utterances[1].Clean)
	}
}

func TestLoader_Parse_MalformedMarkup(t *testing.T) {
	loader := NewLoader("kwic", nil)

	// KWIC exports are often not well-formed; the lenient tokenizer must
	// still recover the sentence payloads. Unclosed sibling tags and a
	// missing document close are typical.
	doc := `<results><kwic>primeira frase</kwic><hit><kwic>segunda frase</kwic>`

	utterances, err := loader.Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(utterances) != 2 {
		t.Fatalf("expected 2 utterances from malformed markup, got %d", len(utterances))
	}
}

func TestLoader_Load_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "corpus.xml")
	if err := os.WriteFile(path, []byte(`<r><kwic>uma frase/tag</kwic></r>`), 0644); err != nil {
		t.Fatal(err)
	}

	loader := NewLoader("kwic", nil)
	utterances, err := loader.Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(utterances) != 1 {
		t.Fatalf("expected 1 utterance, got %d", len(utterances))
	}
	if utterances[0].Clean != "uma frase" {
		t.Errorf("Clean = %q", utterances[0].Clean)
	}
}

func TestLoader_Load_Preconditions(t *testing.T) {
	loader := NewLoader("kwic", nil)

	t.Run("missing file", func(t *testing.T) {
		if _, err := loader.Load(context.Background(), "/nonexistent/corpus.xml"); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("zero sentence elements", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "empty.xml")
		if err := os.WriteFile(path, []byte(`<results><hit>not a kwic</hit></results>`), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := loader.Load(context.Background(), path); err == nil {
			t.Error("expected error for document with no kwic elements")
		}
	})

	t.Run("URL without fetcher", func(t *testing.T) {
		if _, err := loader.Load(context.Background(), "https://example.com/corpus.xml"); err == nil {
			t.Error("expected error for URL source without fetcher")
		}
	})
}

func TestLoader_CustomElement(t *testing.T) {
	loader := NewLoader("line", nil)

	utterances, err := loader.Parse(strings.NewReader(`<doc><line>frase um</line><kwic>frase dois</kwic></doc>`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(utterances) != 1 {
		t.Fatalf("expected 1 utterance, got %d", len(utterances))
	}
	if utterances[0].Clean != "frase um" {
		t.Errorf("Clean = %q", utterances[0].Clean)
	}
}
