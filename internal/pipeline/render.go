package pipeline

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/varlex/varlex/internal/extract"
	"github.com/varlex/varlex/internal/model"
	"github.com/xuri/excelize/v2"
)

// constructionsSheet is the first sheet of every workbook: one row per
// retained sentence with all extracted and annotated fields.
const constructionsSheet = "Construcoes"

// Renderer writes analysis reports as a multi-sheet workbook, optional
// per-table CSV files and a terminal summary
type Renderer struct {
	strategy extract.Strategy
}

// NewRenderer creates a renderer for the given construction strategy
func NewRenderer(strategy extract.Strategy) *Renderer {
	return &Renderer{strategy: strategy}
}

// DefaultOutputPath returns the timestamped default workbook path
func DefaultOutputPath(t model.ConstructionType, at time.Time) string {
	return fmt.Sprintf("output_variabilidade_%s_%s.xlsx", t, at.Format("20060102_150405"))
}

// RenderXLSX writes the constructions sheet plus one sheet per
// variability table to a single workbook. Empty datasets still produce a
// valid workbook with header-only sheets.
func (r *Renderer) RenderXLSX(report *model.Report, path string) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", constructionsSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	if err := writeSheet(f, constructionsSheet, r.strategy.Columns(), constructionRows(r.strategy, report.Rows)); err != nil {
		return err
	}

	for _, table := range report.Tables {
		if _, err := f.NewSheet(table.Sheet); err != nil {
			return fmt.Errorf("create sheet %s: %w", table.Sheet, err)
		}
		if err := writeSheet(f, table.Sheet, table.Headers[:], variabilityRows(table)); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

// RenderCSV writes the same tables as separate CSV files under dir
func (r *Renderer) RenderCSV(report *model.Report, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	if err := writeCSV(filepath.Join(dir, constructionsSheet+".csv"), r.strategy.Columns(), constructionRows(r.strategy, report.Rows)); err != nil {
		return err
	}

	for _, table := range report.Tables {
		if err := writeCSV(filepath.Join(dir, table.Sheet+".csv"), table.Headers[:], variabilityRows(table)); err != nil {
			return err
		}
	}
	return nil
}

// RenderSummary prints the run statistics to stdout
func (r *Renderer) RenderSummary(report *model.Report, outputPath string) {
	fmt.Printf("Construção: %s\n", report.Construction)
	fmt.Printf("Frases lidas: %d\n", report.SentencesRead)
	fmt.Printf("Número de frases extraídas: %d\n", report.Extracted)
	if report.Filtered > 0 {
		fmt.Printf("Construções com verbos leves removidas: %d\n", report.Filtered)
	}
	fmt.Printf("Cobertura de classificação: %.1f%%\n", report.Coverage)
	for _, table := range report.Tables {
		fmt.Printf("Tabela %s: %d entradas\n", table.Sheet, len(table.Records))
	}
	fmt.Printf("📁 Ficheiro exportado com sucesso: %s\n", outputPath)
}

func constructionRows(strategy extract.Strategy, rows []model.Construction) [][]string {
	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		out = append(out, strategy.Values(row))
	}
	return out
}

func variabilityRows(table model.VariabilityTable) [][]string {
	out := make([][]string, 0, len(table.Records))
	for _, rec := range table.Records {
		out = append(out, []string{
			rec.Anchor,
			fmt.Sprintf("%d", rec.Count),
			strings.Join(rec.Domains, ", "),
		})
	}
	return out
}

func writeSheet(f *excelize.File, sheet string, headers []string, rows [][]string) error {
	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("cell name: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	for i, row := range rows {
		for col, val := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return fmt.Errorf("cell name: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, val); err != nil {
				return fmt.Errorf("write cell: %w", err)
			}
		}
	}
	return nil
}

func writeCSV(path string, headers []string, rows [][]string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, closeErr)
		}
	}()

	w := csv.NewWriter(f)
	if err := w.Write(headers); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}
