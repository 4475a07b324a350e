package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/diillson/printer-tco-cli/internal/domain/entity"
	"github.com/diillson/printer-tco-cli/internal/domain/repository"
	"github.com/jung-kurt/gofpdf"
)

// ExportRepositoryImpl implementa o ExportRepository.
type ExportRepositoryImpl struct{}

// NewExportRepository cria uma nova implementação do ExportRepository.
func NewExportRepository() repository.ExportRepository {
	return &ExportRepositoryImpl{}
}

// --- Funções de Exportação do Catálogo ---

func (r *ExportRepositoryImpl) ExportPrintersToCSV(printers []entity.Printer, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "csv")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating printers CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	headers := []string{"id", "model", "purchase_price", "is_color"}
	if err := writer.Write(headers); err != nil {
		return "", fmt.Errorf("error writing CSV header: %w", err)
	}

	for _, p := range printers {
		record := []string{
			strconv.FormatInt(p.ID, 10),
			p.Model,
			formatFloat(p.PurchasePrice),
			strconv.FormatBool(p.IsColor),
		}
		if err := writer.Write(record); err != nil {
			return "", fmt.Errorf("error writing CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("error flushing CSV data: %w", err)
	}
	return filepath.Abs(outputFilename)
}

func (r *ExportRepositoryImpl) ExportConsumablesToCSV(printers []entity.Printer, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "csv")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating consumables CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	headers := []string{"model", "channel", "price", "yield_pages"}
	if err := writer.Write(headers); err != nil {
		return "", fmt.Errorf("error writing CSV header: %w", err)
	}

	// Canais na ordem fixa de exibição, uma linha por cartucho registrado.
	for _, p := range printers {
		for _, ch := range entity.AllChannels {
			c, ok := p.Cartridge(ch)
			if !ok {
				continue
			}
			record := []string{
				p.Model,
				string(ch),
				formatFloat(c.Price),
				strconv.Itoa(c.YieldPages),
			}
			if err := writer.Write(record); err != nil {
				return "", fmt.Errorf("error writing CSV record: %w", err)
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("error flushing CSV data: %w", err)
	}
	return filepath.Abs(outputFilename)
}

// --- Funções de Exportação do Comparativo ---

func (r *ExportRepositoryImpl) ExportComparisonToCSV(rows []entity.ComparisonRow, cov entity.CoverageAssumptions, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "csv")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating comparison CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	headers := []string{
		"model", "purchase_price",
		fmt.Sprintf("bw_cost_per_page (%.0f%% coverage)", cov.CoverageBW),
		fmt.Sprintf("color_cost_per_page (%.0f%% coverage)", cov.CoverageColor),
		fmt.Sprintf("blended_cost_per_page (%.0f%% color pages)", cov.ColorShare),
		"break_even_pages", "baseline",
	}
	if err := writer.Write(headers); err != nil {
		return "", fmt.Errorf("error writing CSV header: %w", err)
	}

	for _, row := range rows {
		record := []string{
			row.Model,
			fmt.Sprintf("%.2f", row.PurchasePrice),
			fmt.Sprintf("%.4f", row.BWCostPerPage),
			fmt.Sprintf("%.4f", row.ColorCostPerPage),
			fmt.Sprintf("%.4f", row.BlendedCostPerPage),
			FormatBreakEven(row.BreakEvenPages),
			strconv.FormatBool(row.Baseline),
		}
		if err := writer.Write(record); err != nil {
			return "", fmt.Errorf("error writing CSV record: %w", err)
		}
	}

	return filepath.Abs(outputFilename)
}

func (r *ExportRepositoryImpl) ExportComparisonToJSON(rows []entity.ComparisonRow, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "json")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating comparison JSON file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(rows); err != nil {
		return "", fmt.Errorf("error encoding comparison JSON data: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func (r *ExportRepositoryImpl) ExportComparisonToPDF(rows []entity.ComparisonRow, cov entity.CoverageAssumptions, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "pdf")
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	headerColor := [3]int{40, 40, 40}
	headerTextColor := [3]int{255, 255, 255}
	sectionTitleColor := [3]int{0, 0, 0}
	bodyTextColor := [3]int{50, 50, 50}
	lineColor := [3]int{200, 200, 200}

	drawSection := func(title string, content string) {
		if strings.TrimSpace(content) == "" {
			return
		}
		pdf.SetFont("Arial", "B", 12)
		pdf.SetTextColor(sectionTitleColor[0], sectionTitleColor[1], sectionTitleColor[2])
		pdf.Cell(0, 8, tr(title))
		pdf.Ln(7)

		pdf.SetDrawColor(lineColor[0], lineColor[1], lineColor[2])
		pdf.Line(pdf.GetX(), pdf.GetY(), pdf.GetX()+190, pdf.GetY())
		pdf.Ln(4)

		pdf.SetFont("Arial", "", 10)
		pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
		pdf.MultiCell(190, 5, tr(content), "", "L", false)
		pdf.Ln(8)
	}

	pdf.AddPage()

	// Cabeçalho
	pdf.SetFillColor(headerColor[0], headerColor[1], headerColor[2])
	pdf.SetTextColor(headerTextColor[0], headerTextColor[1], headerTextColor[2])
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 12, tr("  Printer TCO Comparison"), "", 1, "L", true, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
	pdf.CellFormat(0, 8, tr(fmt.Sprintf("  Coverage: %.1f%% B/W, %.1f%% color  |  Color pages: %.1f%%",
		cov.CoverageBW, cov.CoverageColor, cov.ColorShare)), "", 1, "L", true, 0, "")
	pdf.Ln(10)

	// Cenário e referência
	var baseline string
	for _, row := range rows {
		if row.Baseline {
			baseline = fmt.Sprintf("%s (EUR %.2f) — cheapest purchase price, break-even reference", row.Model, row.PurchasePrice)
		}
	}
	drawSection("Baseline", baseline)

	// Linhas do comparativo
	var b strings.Builder
	for _, row := range rows {
		b.WriteString(fmt.Sprintf("%s\n", row.Model))
		b.WriteString(fmt.Sprintf("  Purchase: EUR %.2f\n", row.PurchasePrice))
		b.WriteString(fmt.Sprintf("  Cost per page: B/W %.4f | Color %.4f | Blended %.4f\n", row.BWCostPerPage, row.ColorCostPerPage, row.BlendedCostPerPage))
		b.WriteString(fmt.Sprintf("  Break-even vs baseline: %s pages\n\n", FormatBreakEven(row.BreakEvenPages)))
	}
	drawSection("Comparison", strings.TrimSpace(b.String()))

	// Rodapé
	pdf.SetY(-15)
	pdf.SetFont("Arial", "I", 8)
	pdf.SetTextColor(128, 128, 128)
	footerText := fmt.Sprintf("Generated by Printer TCO CLI | %s", time.Now().Format("2006-01-02"))
	pdf.CellFormat(0, 10, tr(footerText), "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 10, tr("Page 1"), "", 0, "R", false, 0, "")

	if err := pdf.OutputFileAndClose(outputFilename); err != nil {
		return "", fmt.Errorf("error writing PDF file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

// --- Importação ---

// ImportPrintersFromCSV lê de volta um CSV no formato de ExportPrintersToCSV.
func (r *ExportRepositoryImpl) ImportPrintersFromCSV(path string) ([]entity.Printer, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("error parsing CSV file: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("CSV file %s is empty", path)
	}

	header := records[0]
	if len(header) < 4 || header[0] != "id" || header[1] != "model" {
		return nil, fmt.Errorf("unexpected CSV header: %v", header)
	}

	var printers []entity.Printer
	for i, rec := range records[1:] {
		if len(rec) < 4 {
			return nil, fmt.Errorf("CSV line %d has %d fields, want 4", i+2, len(rec))
		}

		id, err := strconv.ParseInt(rec[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("CSV line %d: invalid id %q: %w", i+2, rec[0], err)
		}
		price, err := strconv.ParseFloat(rec[2], 64)
		if err != nil {
			return nil, fmt.Errorf("CSV line %d: invalid purchase price %q: %w", i+2, rec[2], err)
		}
		isColor, err := strconv.ParseBool(rec[3])
		if err != nil {
			return nil, fmt.Errorf("CSV line %d: invalid is_color %q: %w", i+2, rec[3], err)
		}

		printers = append(printers, entity.Printer{
			ID:            id,
			Model:         rec[1],
			PurchasePrice: price,
			IsColor:       isColor,
		})
	}
	return printers, nil
}

// --- Funções Auxiliares ---

// FormatBreakEven formata o resultado do break-even; o sentinela vira "-".
func FormatBreakEven(pages int64) string {
	if pages == entity.NoBreakEven {
		return "-"
	}
	return strconv.FormatInt(pages, 10)
}

// generateFilename cria um nome de arquivo único com timestamp e garante que o diretório exista.
func generateFilename(base, dir, ext string) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("could not get current working directory: %w", err)
		}
		dir = cwd
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("error creating output directory '%s': %w", dir, err)
	}
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.%s", base, timestamp, ext)
	return filepath.Join(dir, filename), nil
}

// formatFloat imprime o valor sem zeros à direita, preservando a fidelidade no re-import.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
