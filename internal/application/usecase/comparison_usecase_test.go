package usecase

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/diillson/printer-tco-cli/internal/adapter/driven/config"
	"github.com/diillson/printer-tco-cli/internal/adapter/driven/export"
	"github.com/diillson/printer-tco-cli/internal/adapter/driven/profilestore"
	"github.com/diillson/printer-tco-cli/internal/adapter/driven/store"
	"github.com/diillson/printer-tco-cli/internal/domain/entity"
	"github.com/diillson/printer-tco-cli/internal/shared/types"
)

// fakeConsole registra as mensagens emitidas, sem tocar o terminal.
type fakeConsole struct {
	warnings  []string
	successes []string
	costBars  []types.PrinterCost
}

func (c *fakeConsole) Print(a ...interface{})                 {}
func (c *fakeConsole) Printf(format string, a ...interface{}) {}
func (c *fakeConsole) Println(a ...interface{})               {}
func (c *fakeConsole) LogInfo(format string, a ...interface{}) {}
func (c *fakeConsole) LogWarning(format string, a ...interface{}) {
	c.warnings = append(c.warnings, fmt.Sprintf(format, a...))
}
func (c *fakeConsole) LogError(format string, a ...interface{}) {}
func (c *fakeConsole) LogSuccess(format string, a ...interface{}) {
	c.successes = append(c.successes, fmt.Sprintf(format, a...))
}
func (c *fakeConsole) Status(message string) types.StatusHandle { return &fakeStatus{} }
func (c *fakeConsole) CreateTable() types.TableInterface        { return &fakeTable{} }
func (c *fakeConsole) DisplayCostBars(costs []types.PrinterCost) {
	c.costBars = append(c.costBars, costs...)
}

type fakeStatus struct{}

func (s *fakeStatus) Update(message string) {}
func (s *fakeStatus) Stop()                 {}

type fakeTable struct{}

func (t *fakeTable) AddColumn(name string, options ...interface{}) {}
func (t *fakeTable) AddRow(cells ...interface{})                   {}
func (t *fakeTable) Render() string                                { return "" }

func newTestUseCase(t *testing.T) (*ComparisonUseCase, *fakeConsole, *types.CLIArgs) {
	t.Helper()

	dir := t.TempDir()
	console := &fakeConsole{}
	uc := NewComparisonUseCase(
		store.NewSQLiteRepository,
		profilestore.NewProfileRepository,
		export.NewExportRepository(),
		config.NewConfigRepository(),
		console,
	)
	args := &types.CLIArgs{
		DBPath: filepath.Join(dir, "catalog.db"),
		Dir:    dir,
	}
	return uc, console, args
}

func TestAddConsumableCyanPropagatesByDefault(t *testing.T) {
	uc, _, args := newTestUseCase(t)
	ctx := context.Background()

	if err := uc.AddPrinter(ctx, args, "OfficeJet 9010", 180, true); err != nil {
		t.Fatalf("AddPrinter: %v", err)
	}
	if err := uc.AddConsumable(ctx, args, "OfficeJet 9010", entity.Cyan, 24.90, 850); err != nil {
		t.Fatalf("AddConsumable: %v", err)
	}

	repo, err := store.NewSQLiteRepository(args.DBPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer repo.Close()

	p, err := repo.GetPrinterByModel(ctx, "OfficeJet 9010")
	if err != nil {
		t.Fatalf("GetPrinterByModel: %v", err)
	}
	for _, ch := range []entity.Channel{entity.Magenta, entity.Yellow} {
		c, ok := p.Cartridge(ch)
		if !ok {
			t.Fatalf("expected %s cartridge after cyan propagation", ch)
		}
		if c.Price != 24.90 || c.YieldPages != 850 {
			t.Errorf("%s cartridge = %+v, want price 24.90 yield 850", ch, c)
		}
		if c.Edited {
			t.Errorf("propagated %s cartridge must not be marked as edited", ch)
		}
	}
}

func TestAddConsumableManualModeDoesNotPropagate(t *testing.T) {
	uc, _, args := newTestUseCase(t)
	args.Propagation = types.PropagationManual
	ctx := context.Background()

	if err := uc.AddPrinter(ctx, args, "Color LaserJet Pro", 329, true); err != nil {
		t.Fatalf("AddPrinter: %v", err)
	}
	if err := uc.AddConsumable(ctx, args, "Color LaserJet Pro", entity.Cyan, 79, 2100); err != nil {
		t.Fatalf("AddConsumable: %v", err)
	}

	repo, err := store.NewSQLiteRepository(args.DBPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer repo.Close()

	p, err := repo.GetPrinterByModel(ctx, "Color LaserJet Pro")
	if err != nil {
		t.Fatalf("GetPrinterByModel: %v", err)
	}
	if _, ok := p.Cartridge(entity.Magenta); ok {
		t.Error("magenta cartridge present although propagation mode is manual")
	}
}

func TestBuildComparisonBreakEvenAgainstCheapest(t *testing.T) {
	uc, _, args := newTestUseCase(t)
	ctx := context.Background()

	// Barata de comprar, cara de usar: 100 EUR, 0.10 EUR/página.
	if err := uc.AddPrinter(ctx, args, "Budget", 100, false); err != nil {
		t.Fatalf("AddPrinter: %v", err)
	}
	if err := uc.AddConsumable(ctx, args, "Budget", entity.Black, 50, 500); err != nil {
		t.Fatalf("AddConsumable: %v", err)
	}

	// Cara de comprar, barata de usar: 150 EUR, 0.05 EUR/página.
	if err := uc.AddPrinter(ctx, args, "Workhorse", 150, false); err != nil {
		t.Fatalf("AddPrinter: %v", err)
	}
	if err := uc.AddConsumable(ctx, args, "Workhorse", entity.Black, 25, 500); err != nil {
		t.Fatalf("AddConsumable: %v", err)
	}

	repo, err := store.NewSQLiteRepository(args.DBPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer repo.Close()

	rows, err := uc.BuildComparison(ctx, repo, nil, entity.DefaultCoverage())
	if err != nil {
		t.Fatalf("BuildComparison: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}

	if !rows[0].Baseline {
		t.Error("cheapest purchase price must be the baseline")
	}
	if rows[0].BreakEvenPages != entity.NoBreakEven {
		t.Errorf("baseline break-even = %d, want sentinel", rows[0].BreakEvenPages)
	}
	if rows[1].BreakEvenPages != 1000 {
		t.Errorf("Workhorse break-even = %d, want 1000", rows[1].BreakEvenPages)
	}
}

func TestBuildComparisonSkipsPrintersWithoutCartridges(t *testing.T) {
	uc, console, args := newTestUseCase(t)
	ctx := context.Background()

	if err := uc.AddPrinter(ctx, args, "Complete", 100, false); err != nil {
		t.Fatalf("AddPrinter: %v", err)
	}
	if err := uc.AddConsumable(ctx, args, "Complete", entity.Black, 40, 800); err != nil {
		t.Fatalf("AddConsumable: %v", err)
	}
	if err := uc.AddPrinter(ctx, args, "NoToner", 90, false); err != nil {
		t.Fatalf("AddPrinter: %v", err)
	}

	repo, err := store.NewSQLiteRepository(args.DBPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer repo.Close()

	rows, err := uc.BuildComparison(ctx, repo, nil, entity.DefaultCoverage())
	if err != nil {
		t.Fatalf("BuildComparison: %v", err)
	}
	if len(rows) != 1 || rows[0].Model != "Complete" {
		t.Fatalf("rows = %+v, want only Complete", rows)
	}

	found := false
	for _, w := range console.warnings {
		if strings.Contains(w, "NoToner") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a warning about the skipped printer, got %q", console.warnings)
	}
}

func TestBuildComparisonSelectionOrderAndUnknownModels(t *testing.T) {
	uc, console, args := newTestUseCase(t)
	ctx := context.Background()

	for _, model := range []string{"Alpha", "Beta"} {
		if err := uc.AddPrinter(ctx, args, model, 100, false); err != nil {
			t.Fatalf("AddPrinter: %v", err)
		}
		if err := uc.AddConsumable(ctx, args, model, entity.Black, 40, 800); err != nil {
			t.Fatalf("AddConsumable: %v", err)
		}
	}

	repo, err := store.NewSQLiteRepository(args.DBPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer repo.Close()

	rows, err := uc.BuildComparison(ctx, repo, []string{"Beta", "Ghost", "Alpha"}, entity.DefaultCoverage())
	if err != nil {
		t.Fatalf("BuildComparison: %v", err)
	}
	if len(rows) != 2 || rows[0].Model != "Beta" || rows[1].Model != "Alpha" {
		t.Fatalf("rows out of selection order: %+v", rows)
	}
	if len(console.warnings) == 0 || !strings.Contains(console.warnings[0], "Ghost") {
		t.Errorf("expected a warning about the unknown model, got %q", console.warnings)
	}
}

func TestBuildComparisonEmptyCatalog(t *testing.T) {
	uc, _, args := newTestUseCase(t)
	ctx := context.Background()

	repo, err := store.NewSQLiteRepository(args.DBPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer repo.Close()

	if _, err := uc.BuildComparison(ctx, repo, nil, entity.DefaultCoverage()); err != types.ErrNoPrintersSelected {
		t.Errorf("got %v, want ErrNoPrintersSelected", err)
	}
}

func TestProfileSaveLoadRoundTrip(t *testing.T) {
	uc, _, args := newTestUseCase(t)
	args.ProfileDir = filepath.Join(t.TempDir(), "profiles")
	ctx := context.Background()

	if err := uc.AddPrinter(ctx, args, "Keeper", 250, true); err != nil {
		t.Fatalf("AddPrinter: %v", err)
	}
	if err := uc.AddConsumable(ctx, args, "Keeper", entity.Black, 30, 1500); err != nil {
		t.Fatalf("AddConsumable: %v", err)
	}
	if err := uc.SaveProfile(ctx, args, "office"); err != nil {
		t.Fatalf("SaveProfile: %v", err)
	}

	// O catálogo muda depois do snapshot.
	if err := uc.AddPrinter(ctx, args, "Stray", 99, false); err != nil {
		t.Fatalf("AddPrinter: %v", err)
	}

	// Carregar o perfil restaura o estado inteiro do snapshot.
	if err := uc.LoadProfile(ctx, args, "office"); err != nil {
		t.Fatalf("LoadProfile: %v", err)
	}

	repo, err := store.NewSQLiteRepository(args.DBPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer repo.Close()

	printers, err := repo.ListPrinters(ctx, "")
	if err != nil {
		t.Fatalf("ListPrinters: %v", err)
	}
	if len(printers) != 1 || printers[0].Model != "Keeper" {
		t.Fatalf("catalog after load = %+v, want only Keeper", printers)
	}
	if _, ok := printers[0].Cartridge(entity.Black); !ok {
		t.Error("black cartridge lost in profile round trip")
	}
}

func TestResolveConfigFlagsWinOverFile(t *testing.T) {
	uc, _, args := newTestUseCase(t)

	coverageBW := 7.5
	args.CoverageBW = &coverageBW
	args.ReportName = "from-flag"

	cfg, err := uc.ResolveConfig(args)
	if err != nil {
		t.Fatalf("ResolveConfig: %v", err)
	}
	if cfg.CoverageBW != 7.5 {
		t.Errorf("CoverageBW = %v, want flag value 7.5", cfg.CoverageBW)
	}
	if cfg.ReportName != "from-flag" {
		t.Errorf("ReportName = %q, want from-flag", cfg.ReportName)
	}
	// Valores não informados seguem o padrão.
	if cfg.ColorShare != 50 {
		t.Errorf("ColorShare = %v, want default 50", cfg.ColorShare)
	}
}

func TestResolveConfigRejectsBadPropagationMode(t *testing.T) {
	uc, _, args := newTestUseCase(t)
	args.Propagation = "sometimes"

	if _, err := uc.ResolveConfig(args); err == nil {
		t.Fatal("expected an error for an unsupported propagation mode")
	}
}
