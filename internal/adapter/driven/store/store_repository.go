package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/diillson/printer-tco-cli/internal/domain/entity"
	"github.com/diillson/printer-tco-cli/internal/domain/repository"
	"github.com/diillson/printer-tco-cli/internal/shared/types"
)

// SQLiteRepository implementa o StoreRepository sobre um banco SQLite local.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository abre (ou cria) o banco no caminho informado e aplica as migrações.
func NewSQLiteRepository(dbPath string) (repository.StoreRepository, error) {
	db, err := Open(dbPath)
	if err != nil {
		return nil, err
	}

	if err := migrateUp(db); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteRepository{db: db}, nil
}

// Close fecha a conexão com o banco.
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// AddPrinter insere um novo modelo no catálogo e devolve o id gerado.
func (r *SQLiteRepository) AddPrinter(ctx context.Context, p entity.Printer) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO printers (model, purchase_price, is_color) VALUES (?, ?, ?)`,
		p.Model, p.PurchasePrice, boolToInt(p.IsColor),
	)
	if err != nil {
		return 0, fmt.Errorf("error inserting printer %q: %w", p.Model, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("error reading generated printer id: %w", err)
	}

	for ch, c := range p.Cartridges {
		if err := r.SetCartridge(ctx, id, ch, c); err != nil {
			return 0, err
		}
	}
	return id, nil
}

// UpdatePrinter atualiza modelo, preço e tipo; o id permanece estável.
func (r *SQLiteRepository) UpdatePrinter(ctx context.Context, p entity.Printer) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE printers SET model = ?, purchase_price = ?, is_color = ? WHERE id = ?`,
		p.Model, p.PurchasePrice, boolToInt(p.IsColor), p.ID,
	)
	if err != nil {
		return fmt.Errorf("error updating printer %d: %w", p.ID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking update result: %w", err)
	}
	if affected == 0 {
		return types.ErrPrinterNotFound
	}
	return nil
}

// DeletePrinter remove o modelo e todo o seu material de consumo.
func (r *SQLiteRepository) DeletePrinter(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM consumables WHERE printer_id = ?`, id); err != nil {
		return fmt.Errorf("error deleting consumables of printer %d: %w", id, err)
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM printers WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("error deleting printer %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking delete result: %w", err)
	}
	if affected == 0 {
		return types.ErrPrinterNotFound
	}
	return nil
}

// GetPrinter carrega um modelo pelo id, incluindo os cartuchos registrados.
func (r *SQLiteRepository) GetPrinter(ctx context.Context, id int64) (entity.Printer, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, model, purchase_price, is_color FROM printers WHERE id = ?`, id)
	return r.scanPrinter(ctx, row)
}

// GetPrinterByModel carrega um modelo pelo nome, incluindo os cartuchos registrados.
func (r *SQLiteRepository) GetPrinterByModel(ctx context.Context, model string) (entity.Printer, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, model, purchase_price, is_color FROM printers WHERE model = ?`, model)
	return r.scanPrinter(ctx, row)
}

func (r *SQLiteRepository) scanPrinter(ctx context.Context, row *sql.Row) (entity.Printer, error) {
	var p entity.Printer
	var isColor int
	if err := row.Scan(&p.ID, &p.Model, &p.PurchasePrice, &isColor); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Printer{}, types.ErrPrinterNotFound
		}
		return entity.Printer{}, fmt.Errorf("error reading printer: %w", err)
	}
	p.IsColor = isColor != 0

	if err := r.loadCartridges(ctx, &p); err != nil {
		return entity.Printer{}, err
	}
	return p, nil
}

func (r *SQLiteRepository) loadCartridges(ctx context.Context, p *entity.Printer) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT channel, price, yield_pages, edited FROM consumables WHERE printer_id = ?`, p.ID)
	if err != nil {
		return fmt.Errorf("error reading consumables of printer %d: %w", p.ID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var ch string
		var c entity.Cartridge
		var edited int
		if err := rows.Scan(&ch, &c.Price, &c.YieldPages, &edited); err != nil {
			return fmt.Errorf("error scanning consumable row: %w", err)
		}
		c.Edited = edited != 0
		p.SetCartridge(entity.Channel(ch), c)
	}
	return rows.Err()
}

// ListPrinters lista o catálogo em ordem de inserção, com busca opcional por
// substring no modelo (LIKE, como o banco original fazia).
func (r *SQLiteRepository) ListPrinters(ctx context.Context, search string) ([]entity.Printer, error) {
	query := `SELECT id, model, purchase_price, is_color FROM printers ORDER BY id`
	args := []interface{}{}
	if search != "" {
		query = `SELECT id, model, purchase_price, is_color FROM printers WHERE model LIKE ? ORDER BY id`
		args = append(args, "%"+search+"%")
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing printers: %w", err)
	}
	defer rows.Close()

	var printers []entity.Printer
	for rows.Next() {
		var p entity.Printer
		var isColor int
		if err := rows.Scan(&p.ID, &p.Model, &p.PurchasePrice, &isColor); err != nil {
			return nil, fmt.Errorf("error scanning printer row: %w", err)
		}
		p.IsColor = isColor != 0
		printers = append(printers, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range printers {
		if err := r.loadCartridges(ctx, &printers[i]); err != nil {
			return nil, err
		}
	}
	return printers, nil
}

// SetCartridge registra ou substitui o cartucho de um canal (upsert, como o original).
func (r *SQLiteRepository) SetCartridge(ctx context.Context, printerID int64, ch entity.Channel, c entity.Cartridge) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO consumables (printer_id, channel, price, yield_pages, edited)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(printer_id, channel)
		 DO UPDATE SET price = excluded.price, yield_pages = excluded.yield_pages, edited = excluded.edited`,
		printerID, string(ch), c.Price, c.YieldPages, boolToInt(c.Edited),
	)
	if err != nil {
		return fmt.Errorf("error saving %s consumable of printer %d: %w", ch, printerID, err)
	}
	return nil
}

// DeleteCartridge remove o cartucho de um canal.
func (r *SQLiteRepository) DeleteCartridge(ctx context.Context, printerID int64, ch entity.Channel) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM consumables WHERE printer_id = ? AND channel = ?`, printerID, string(ch))
	if err != nil {
		return fmt.Errorf("error deleting %s consumable of printer %d: %w", ch, printerID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking delete result: %w", err)
	}
	if affected == 0 {
		return types.ErrMissingCartridge
	}
	return nil
}

// ReplaceAll troca o catálogo inteiro pelo conteúdo informado, preservando os
// ids e a ordem do perfil carregado.
func (r *SQLiteRepository) ReplaceAll(ctx context.Context, printers []entity.Printer) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting replace transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM consumables`); err != nil {
		return fmt.Errorf("error clearing consumables: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM printers`); err != nil {
		return fmt.Errorf("error clearing printers: %w", err)
	}

	for _, p := range printers {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO printers (id, model, purchase_price, is_color) VALUES (?, ?, ?, ?)`,
			p.ID, p.Model, p.PurchasePrice, boolToInt(p.IsColor),
		); err != nil {
			return fmt.Errorf("error restoring printer %q: %w", p.Model, err)
		}
		for _, ch := range entity.AllChannels {
			c, ok := p.Cartridge(ch)
			if !ok {
				continue
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO consumables (printer_id, channel, price, yield_pages, edited) VALUES (?, ?, ?, ?, ?)`,
				p.ID, string(ch), c.Price, c.YieldPages, boolToInt(c.Edited),
			); err != nil {
				return fmt.Errorf("error restoring %s consumable of %q: %w", ch, p.Model, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing replace transaction: %w", err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
