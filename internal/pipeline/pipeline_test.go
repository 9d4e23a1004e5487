package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/varlex/varlex/internal/corpus"
	"github.com/varlex/varlex/internal/model"
	"github.com/varlex/varlex/internal/parse"
	"github.com/varlex/varlex/internal/senses"
	"github.com/xuri/excelize/v2"
)

// fakeParser serves canned token sequences keyed by sentence
type fakeParser struct {
	sentences map[string][]parse.Token
}

func (p *fakeParser) Parse(_ context.Context, sentence string) ([]parse.Token, error) {
	tokens, ok := p.sentences[sentence]
	if !ok {
		return nil, fmt.Errorf("no parse for %q", sentence)
	}
	return tokens, nil
}

// fakeSenses serves canned sense lists keyed by word
type fakeSenses struct {
	words map[string]string // word → lexname
}

func (s *fakeSenses) Lookup(_ context.Context, word, _ string) ([]senses.Sense, error) {
	lexname, ok := s.words[word]
	if !ok {
		return nil, nil
	}
	return []senses.Sense{{Lexname: lexname, POS: "n"}}, nil
}

func writeCorpus(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "corpus.xml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write corpus: %v", err)
	}
	return path
}

func testConfig(construction model.ConstructionType) *model.Config {
	cfg := model.DefaultConfig()
	cfg.Construction = construction
	cfg.Output.Verbose = false
	return cfg
}

func svoParser() *fakeParser {
	return &fakeParser{sentences: map[string][]parse.Token{
		"O gato come o peixe.": {
			{Text: "O", Lemma: "o", POS: "DET", Dep: "det", Head: 1, Index: 0},
			{Text: "gato", Lemma: "gato", POS: "NOUN", Dep: "nsubj", Head: 2, Index: 1},
			{Text: "come", Lemma: "comer", POS: "VERB", Dep: "ROOT", Head: 2, Index: 2},
			{Text: "o", Lemma: "o", POS: "DET", Dep: "det", Head: 4, Index: 3},
			{Text: "peixe", Lemma: "peixe", POS: "NOUN", Dep: "obj", Head: 2, Index: 4},
		},
		"A Maria faz o bolo.": {
			{Text: "A", Lemma: "o", POS: "DET", Dep: "det", Head: 1, Index: 0},
			{Text: "Maria", Lemma: "Maria", POS: "PROPN", Dep: "nsubj", Head: 2, Index: 1},
			{Text: "faz", Lemma: "fazer", POS: "VERB", Dep: "ROOT", Head: 2, Index: 2},
			{Text: "o", Lemma: "o", POS: "DET", Dep: "det", Head: 4, Index: 3},
			{Text: "bolo", Lemma: "bolo", POS: "NOUN", Dep: "obj", Head: 2, Index: 4},
		},
		"O cão vê a bola.": {
			{Text: "O", Lemma: "o", POS: "DET", Dep: "det", Head: 1, Index: 0},
			{Text: "cão", Lemma: "cão", POS: "NOUN", Dep: "nsubj", Head: 2, Index: 1},
			{Text: "vê", Lemma: "ver", POS: "VERB", Dep: "ROOT", Head: 2, Index: 2},
			{Text: "a", Lemma: "o", POS: "DET", Dep: "det", Head: 4, Index: 3},
			{Text: "bola", Lemma: "bola", POS: "NOUN", Dep: "obj", Head: 2, Index: 4},
		},
		"Bom dia.": {
			{Text: "Bom", Lemma: "bom", POS: "ADJ", Dep: "amod", Head: 1, Index: 0},
			{Text: "dia", Lemma: "dia", POS: "NOUN", Dep: "ROOT", Head: 1, Index: 1},
		},
	}}
}

func svoSenses() *fakeSenses {
	return &fakeSenses{words: map[string]string{
		"peixe": "noun.animal",
		"bola":  "noun.artifact",
		"gato":  "noun.animal",
		"cão":   "noun.animal",
	}}
}

const svoCorpus = `<conc>
<line><kwic>O gato come o peixe.</kwic></line>
<line><kwic>A Maria faz o bolo.</kwic></line>
<line><kwic>O cão vê a bola.</kwic></line>
<line><kwic>Bom dia.</kwic></line>
</conc>`

func TestPipeline_Run_SVO(t *testing.T) {
	cfg := testConfig(model.ConstructionSVO)
	p, err := NewPipelineWith(cfg, corpus.NewLoader("kwic", nil), svoParser(), svoSenses())
	if err != nil {
		t.Fatalf("NewPipelineWith() error = %v", err)
	}

	report, err := p.Run(context.Background(), writeCorpus(t, svoCorpus))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if report.SentencesRead != 4 {
		t.Errorf("SentencesRead = %d, want 4", report.SentencesRead)
	}
	// "Bom dia." has no root verb and yields nothing.
	if report.Extracted != 3 {
		t.Errorf("Extracted = %d, want 3", report.Extracted)
	}
	// "fazer" is a light verb and is dropped before classification.
	if report.Filtered != 1 {
		t.Errorf("Filtered = %d, want 1", report.Filtered)
	}
	if len(report.Rows) != 2 {
		t.Fatalf("Rows = %d, want 2", len(report.Rows))
	}

	first := report.Rows[0]
	if first.Subject != "gato" || first.VerbLemma != "comer" || first.Object != "peixe" {
		t.Errorf("first row = %+v", first)
	}
	if first.Domain != "animal" || first.Subdomain != "noun.animal" {
		t.Errorf("object assignment = %q/%q, want animal/noun.animal", first.Domain, first.Subdomain)
	}
	if first.SubjectDomain != "animal" {
		t.Errorf("SubjectDomain = %q, want animal", first.SubjectDomain)
	}

	if report.Coverage != 100 {
		t.Errorf("Coverage = %v, want 100", report.Coverage)
	}

	if len(report.Tables) != 2 {
		t.Fatalf("Tables = %d, want 2", len(report.Tables))
	}
	objTable := report.Tables[0]
	if objTable.Sheet != "Variabilidade_verbo_objeto" {
		t.Errorf("Tables[0].Sheet = %q", objTable.Sheet)
	}
	if len(objTable.Records) != 2 {
		t.Fatalf("object table records = %d, want 2", len(objTable.Records))
	}
	for _, rec := range objTable.Records {
		if rec.Anchor == "fazer" {
			t.Error("light verb fazer must not appear in a variability table")
		}
	}
	if objTable.Records[0].Anchor != "comer" || !reflect.DeepEqual(objTable.Records[0].Domains, []string{"animal"}) {
		t.Errorf("Records[0] = %+v", objTable.Records[0])
	}
}

func TestPipeline_Run_AdjNounFallback(t *testing.T) {
	cfg := testConfig(model.ConstructionAdjNoun)
	parser := &fakeParser{sentences: map[string][]parse.Token{
		// Head indices carry no usable relation; extraction must fall back
		// to surface adjacency.
		"Bom dia.": {
			{Text: "Bom", Lemma: "Bom", POS: "ADJ", Dep: "dep", Head: 0, Index: 0},
			{Text: "dia", Lemma: "dia", POS: "NOUN", Dep: "dep", Head: 1, Index: 1},
		},
	}}
	resolver := &fakeSenses{words: map[string]string{"dia": "noun.time"}}

	p, err := NewPipelineWith(cfg, corpus.NewLoader("kwic", nil), parser, resolver)
	if err != nil {
		t.Fatalf("NewPipelineWith() error = %v", err)
	}

	report, err := p.Run(context.Background(), writeCorpus(t, "<kwic>Bom dia.</kwic>"))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(report.Rows) != 1 {
		t.Fatalf("Rows = %d, want 1", len(report.Rows))
	}
	row := report.Rows[0]
	if row.AdjLemma != "bom" || row.NounLemma != "dia" {
		t.Errorf("row = %+v, want bom/dia lowercased", row)
	}
	if row.Domain != "tempo" {
		t.Errorf("noun domain = %q, want tempo", row.Domain)
	}
}

func TestPipeline_Run_Preconditions(t *testing.T) {
	cfg := testConfig(model.ConstructionSVO)
	p, err := NewPipelineWith(cfg, corpus.NewLoader("kwic", nil), svoParser(), svoSenses())
	if err != nil {
		t.Fatalf("NewPipelineWith() error = %v", err)
	}
	ctx := context.Background()

	t.Run("missing corpus is fatal", func(t *testing.T) {
		if _, err := p.Run(ctx, filepath.Join(t.TempDir(), "nope.xml")); err == nil {
			t.Error("expected error for missing corpus file")
		}
	})

	t.Run("corpus without sentence elements is fatal", func(t *testing.T) {
		path := writeCorpus(t, "<conc><line>sem elementos</line></conc>")
		if _, err := p.Run(ctx, path); err == nil {
			t.Error("expected error for corpus without kwic elements")
		}
	})

	t.Run("parser failure is fatal", func(t *testing.T) {
		path := writeCorpus(t, "<kwic>frase sem parse</kwic>")
		if _, err := p.Run(ctx, path); err == nil {
			t.Error("expected error when the parser fails")
		}
	})
}

func TestRenderer_RenderXLSX(t *testing.T) {
	cfg := testConfig(model.ConstructionSVO)
	p, err := NewPipelineWith(cfg, corpus.NewLoader("kwic", nil), svoParser(), svoSenses())
	if err != nil {
		t.Fatalf("NewPipelineWith() error = %v", err)
	}

	report, err := p.Run(context.Background(), writeCorpus(t, svoCorpus))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	path := filepath.Join(t.TempDir(), "out.xlsx")
	if err := p.Renderer().RenderXLSX(report, path); err != nil {
		t.Fatalf("RenderXLSX() error = %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer func() { _ = f.Close() }()

	want := []string{"Construcoes", "Variabilidade_verbo_objeto", "Variabilidade_verbo_sujeito"}
	if got := f.GetSheetList(); !reflect.DeepEqual(got, want) {
		t.Fatalf("sheets = %v, want %v", got, want)
	}

	header, err := f.GetCellValue("Construcoes", "A1")
	if err != nil {
		t.Fatalf("read header: %v", err)
	}
	if header != "frase_limpa" {
		t.Errorf("A1 = %q, want frase_limpa", header)
	}

	verb, err := f.GetCellValue("Variabilidade_verbo_objeto", "A2")
	if err != nil {
		t.Fatalf("read anchor: %v", err)
	}
	if verb != "comer" {
		t.Errorf("first anchor = %q, want comer", verb)
	}
}

func TestRenderer_RenderCSV(t *testing.T) {
	cfg := testConfig(model.ConstructionSVO)
	p, err := NewPipelineWith(cfg, corpus.NewLoader("kwic", nil), svoParser(), svoSenses())
	if err != nil {
		t.Fatalf("NewPipelineWith() error = %v", err)
	}

	report, err := p.Run(context.Background(), writeCorpus(t, svoCorpus))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	dir := t.TempDir()
	if err := p.Renderer().RenderCSV(report, dir); err != nil {
		t.Fatalf("RenderCSV() error = %v", err)
	}

	for _, name := range []string{"Construcoes.csv", "Variabilidade_verbo_objeto.csv", "Variabilidade_verbo_sujeito.csv"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("expected %s: %v", name, err)
		}
	}
}

func TestDefaultOutputPath(t *testing.T) {
	at, _ := time.Parse("2006-01-02 15:04:05", "2026-03-01 10:30:00")
	got := DefaultOutputPath(model.ConstructionSVO, at)
	want := "output_variabilidade_svo_20260301_103000.xlsx"
	if got != want {
		t.Errorf("DefaultOutputPath() = %q, want %q", got, want)
	}
}
