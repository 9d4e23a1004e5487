package extract

import (
	"testing"

	"github.com/varlex/varlex/internal/model"
	"github.com/varlex/varlex/internal/parse"
)

func TestAdjNounStrategy_Extract(t *testing.T) {
	s := NewAdjNounStrategy()

	t.Run("tier 1 prenominal adjective", func(t *testing.T) {
		// "grande casa"
		tokens := []parse.Token{
			{Text: "grande", Lemma: "grande", POS: "ADJ", Dep: "amod", Head: 1, Index: 0},
			{Text: "casa", Lemma: "casa", POS: "NOUN", Dep: "ROOT", Head: 1, Index: 1},
		}

		row, ok := s.Extract(utterance("grande casa"), tokens)
		if !ok {
			t.Fatal("expected extraction to succeed")
		}
		if row.AdjLemma != "grande" || row.NounLemma != "casa" {
			t.Errorf("got %q %q", row.AdjLemma, row.NounLemma)
		}
		if row.Pattern != "grande casa" {
			t.Errorf("Pattern = %q", row.Pattern)
		}
	})

	t.Run("postnominal adjective rejected by tier 1", func(t *testing.T) {
		// "casa grande": the adjective follows its noun head, so tier 1
		// must not match; tier 2 adjacency does not match either (NOUN
		// ADJ, not ADJ NOUN).
		tokens := []parse.Token{
			{Text: "casa", Lemma: "casa", POS: "NOUN", Dep: "ROOT", Head: 0, Index: 0},
			{Text: "grande", Lemma: "grande", POS: "ADJ", Dep: "amod", Head: 0, Index: 1},
		}

		if _, ok := s.Extract(utterance("casa grande"), tokens); ok {
			t.Error("expected no extraction for postnominal adjective")
		}
	})

	t.Run("tier 2 adjacency fallback without head relation", func(t *testing.T) {
		// Dependency parse attached no head to the adjective; positional
		// adjacency must still recover the pair.
		tokens := []parse.Token{
			{Text: "bom", Lemma: "bom", POS: "ADJ", Dep: "ROOT", Head: 0, Index: 0},
			{Text: "dia", Lemma: "dia", POS: "NOUN", Dep: "flat", Head: 1, Index: 1},
		}

		row, ok := s.Extract(utterance("bom dia"), tokens)
		if !ok {
			t.Fatal("expected tier 2 fallback to succeed")
		}
		if row.AdjLemma != "bom" || row.NounLemma != "dia" {
			t.Errorf("got %q %q, want bom dia", row.AdjLemma, row.NounLemma)
		}
	})

	t.Run("tier 1 preferred over tier 2", func(t *testing.T) {
		// "nova ideia ... velho carro": the second pair is adjacent but
		// tier 1 already matches the first pair via the head relation.
		tokens := []parse.Token{
			{Text: "nova", Lemma: "novo", POS: "ADJ", Dep: "amod", Head: 1, Index: 0},
			{Text: "ideia", Lemma: "ideia", POS: "NOUN", Dep: "nsubj", Head: 2, Index: 1},
			{Text: "surge", Lemma: "surgir", POS: "VERB", Dep: "ROOT", Head: 2, Index: 2},
			{Text: "velho", Lemma: "velho", POS: "ADJ", Dep: "", Head: 3, Index: 3},
			{Text: "carro", Lemma: "carro", POS: "NOUN", Dep: "obj", Head: 2, Index: 4},
		}

		row, ok := s.Extract(utterance("nova ideia surge velho carro"), tokens)
		if !ok {
			t.Fatal("expected extraction to succeed")
		}
		if row.AdjLemma != "novo" || row.NounLemma != "ideia" {
			t.Errorf("got %q %q, want tier 1 pair novo ideia", row.AdjLemma, row.NounLemma)
		}
	})

	t.Run("tier 2 takes the first adjacent pair", func(t *testing.T) {
		tokens := []parse.Token{
			{Text: "bom", Lemma: "bom", POS: "ADJ", Dep: "", Head: 0, Index: 0},
			{Text: "dia", Lemma: "dia", POS: "NOUN", Dep: "", Head: 1, Index: 1},
			{Text: "belo", Lemma: "belo", POS: "ADJ", Dep: "", Head: 2, Index: 2},
			{Text: "sol", Lemma: "sol", POS: "NOUN", Dep: "", Head: 3, Index: 3},
		}

		row, ok := s.Extract(utterance("bom dia belo sol"), tokens)
		if !ok {
			t.Fatal("expected extraction to succeed")
		}
		if row.AdjLemma != "bom" || row.NounLemma != "dia" {
			t.Errorf("got %q %q, want first pair bom dia", row.AdjLemma, row.NounLemma)
		}
	})

	t.Run("no match yields nothing", func(t *testing.T) {
		tokens := []parse.Token{
			{Text: "chove", Lemma: "chover", POS: "VERB", Dep: "ROOT", Head: 0, Index: 0},
		}
		if _, ok := s.Extract(utterance("chove"), tokens); ok {
			t.Error("expected no extraction")
		}
	})
}

func TestAdjNounStrategy_Tables(t *testing.T) {
	s := NewAdjNounStrategy()

	rows := []model.Construction{
		{AdjLemma: "bom", NounLemma: "dia", Domain: "tempo"},
		{AdjLemma: "bom", NounLemma: "livro", Domain: "comunicação"},
		{AdjLemma: "belo", NounLemma: "sol", Domain: "fenómeno"},
	}

	tables := s.Tables(rows)
	if len(tables) != 1 {
		t.Fatalf("expected 1 table, got %d", len(tables))
	}

	table := tables[0]
	if table.Sheet != "Variabilidade" {
		t.Errorf("sheet = %q", table.Sheet)
	}
	if table.Headers[1] != "variabilidade_semântica" {
		t.Errorf("count header = %q", table.Headers[1])
	}
	if table.Records[0].Anchor != "bom" || table.Records[0].Count != 2 {
		t.Errorf("top record = %+v", table.Records[0])
	}
}
