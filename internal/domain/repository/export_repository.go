package repository

import (
	"github.com/diillson/printer-tco-cli/internal/domain/entity"
)

type ExportRepository interface {
	ExportPrintersToCSV(printers []entity.Printer, filename string, outputDir string) (string, error)
	ExportConsumablesToCSV(printers []entity.Printer, filename string, outputDir string) (string, error)

	// Comparison
	ExportComparisonToCSV(rows []entity.ComparisonRow, cov entity.CoverageAssumptions, filename, outputDir string) (string, error)
	ExportComparisonToJSON(rows []entity.ComparisonRow, filename, outputDir string) (string, error)
	ExportComparisonToPDF(rows []entity.ComparisonRow, cov entity.CoverageAssumptions, filename, outputDir string) (string, error)

	// Re-import
	ImportPrintersFromCSV(path string) ([]entity.Printer, error)
}
