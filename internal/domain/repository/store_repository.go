package repository

import (
	"context"

	"github.com/diillson/printer-tco-cli/internal/domain/entity"
)

// StoreRepository defines the interface for the printer and consumable catalog.
type StoreRepository interface {
	// Printer Operations
	AddPrinter(ctx context.Context, p entity.Printer) (int64, error)
	UpdatePrinter(ctx context.Context, p entity.Printer) error
	DeletePrinter(ctx context.Context, id int64) error
	GetPrinter(ctx context.Context, id int64) (entity.Printer, error)
	GetPrinterByModel(ctx context.Context, model string) (entity.Printer, error)
	ListPrinters(ctx context.Context, search string) ([]entity.Printer, error)

	// Consumable Operations
	SetCartridge(ctx context.Context, printerID int64, ch entity.Channel, c entity.Cartridge) error
	DeleteCartridge(ctx context.Context, printerID int64, ch entity.Channel) error

	// ReplaceAll substitui o catálogo inteiro, preservando a ordem informada.
	// Usado pelo carregamento de perfis (nunca há merge parcial).
	ReplaceAll(ctx context.Context, printers []entity.Printer) error

	Close() error
}
