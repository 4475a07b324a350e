package usecase

import (
	"context"
	"fmt"

	"github.com/diillson/printer-tco-cli/internal/adapter/driven/config"
	"github.com/diillson/printer-tco-cli/internal/domain/calc"
	"github.com/diillson/printer-tco-cli/internal/domain/entity"
	"github.com/diillson/printer-tco-cli/internal/domain/repository"
	"github.com/diillson/printer-tco-cli/internal/shared/types"
)

// StoreFactory abre o catálogo no caminho resolvido pela configuração.
type StoreFactory func(dbPath string) (repository.StoreRepository, error)

// ProfileFactory abre o diretório de perfis resolvido pela configuração.
type ProfileFactory func(dir string) repository.ProfileRepository

// ComparisonUseCase handles the printer catalog and cost comparison functionality.
type ComparisonUseCase struct {
	newStore    StoreFactory
	newProfiles ProfileFactory
	exportRepo  repository.ExportRepository
	configRepo  repository.ConfigRepository
	console     types.ConsoleInterface
}

// NewComparisonUseCase creates a new comparison use case.
func NewComparisonUseCase(
	newStore StoreFactory,
	newProfiles ProfileFactory,
	exportRepo repository.ExportRepository,
	configRepo repository.ConfigRepository,
	console types.ConsoleInterface,
) *ComparisonUseCase {
	return &ComparisonUseCase{
		newStore:    newStore,
		newProfiles: newProfiles,
		exportRepo:  exportRepo,
		configRepo:  configRepo,
		console:     console,
	}
}

// ResolveConfig mescla arquivo de configuração (se houver) e flags da CLI;
// flags sempre vencem.
func (uc *ComparisonUseCase) ResolveConfig(args *types.CLIArgs) (*types.Config, error) {
	cfg := config.DefaultConfig()

	if args.ConfigFile != "" {
		loaded, err := uc.configRepo.LoadConfigFile(args.ConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if args.DBPath != "" {
		cfg.DBPath = args.DBPath
	}
	if args.ReportName != "" {
		cfg.ReportName = args.ReportName
	}
	if len(args.ReportType) > 0 {
		cfg.ReportType = args.ReportType
	}
	if args.Dir != "" {
		cfg.Dir = args.Dir
	}
	if args.ProfileDir != "" {
		cfg.ProfileDir = args.ProfileDir
	}
	if args.CoverageBW != nil {
		cfg.CoverageBW = *args.CoverageBW
	}
	if args.CoverageColor != nil {
		cfg.CoverageColor = *args.CoverageColor
	}
	if args.ColorShare != nil {
		cfg.ColorShare = *args.ColorShare
	}
	if args.Propagation != "" {
		switch args.Propagation {
		case types.PropagationAuto, types.PropagationManual:
			cfg.Propagation = args.Propagation
		default:
			return nil, fmt.Errorf("unsupported propagation mode %q (expected %s or %s)",
				args.Propagation, types.PropagationAuto, types.PropagationManual)
		}
	}

	return cfg, nil
}

func (uc *ComparisonUseCase) coverage(cfg *types.Config) entity.CoverageAssumptions {
	return entity.CoverageAssumptions{
		CoverageBW:    cfg.CoverageBW,
		CoverageColor: cfg.CoverageColor,
		ColorShare:    cfg.ColorShare,
	}
}

func (uc *ComparisonUseCase) withStore(args *types.CLIArgs, fn func(cfg *types.Config, store repository.StoreRepository) error) error {
	cfg, err := uc.ResolveConfig(args)
	if err != nil {
		return err
	}

	store, err := uc.newStore(cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	return fn(cfg, store)
}

// --- Catálogo de Impressoras ---

// AddPrinter registra um novo modelo no catálogo.
func (uc *ComparisonUseCase) AddPrinter(ctx context.Context, args *types.CLIArgs, model string, price float64, isColor bool) error {
	if model == "" {
		return fmt.Errorf("printer model must not be empty")
	}
	if price < 0 {
		return fmt.Errorf("purchase price must not be negative")
	}

	return uc.withStore(args, func(cfg *types.Config, store repository.StoreRepository) error {
		id, err := store.AddPrinter(ctx, entity.Printer{Model: model, PurchasePrice: price, IsColor: isColor})
		if err != nil {
			return err
		}
		uc.console.LogSuccess("Printer %q registered with id %d", model, id)
		return nil
	})
}

// UpdatePrinter atualiza preço, nome ou tipo de um modelo; o id não muda.
func (uc *ComparisonUseCase) UpdatePrinter(ctx context.Context, args *types.CLIArgs, model string, rename string, price *float64, isColor *bool) error {
	if price != nil && *price < 0 {
		return fmt.Errorf("purchase price must not be negative")
	}

	return uc.withStore(args, func(cfg *types.Config, store repository.StoreRepository) error {
		p, err := store.GetPrinterByModel(ctx, model)
		if err != nil {
			return err
		}

		if rename != "" {
			p.Model = rename
		}
		if price != nil {
			p.PurchasePrice = *price
		}
		if isColor != nil {
			p.IsColor = *isColor
		}

		if err := store.UpdatePrinter(ctx, p); err != nil {
			return err
		}
		uc.console.LogSuccess("Printer %d updated", p.ID)
		return nil
	})
}

// RemovePrinter apaga o modelo e todo o material de consumo associado.
func (uc *ComparisonUseCase) RemovePrinter(ctx context.Context, args *types.CLIArgs, model string) error {
	return uc.withStore(args, func(cfg *types.Config, store repository.StoreRepository) error {
		p, err := store.GetPrinterByModel(ctx, model)
		if err != nil {
			return err
		}
		if err := store.DeletePrinter(ctx, p.ID); err != nil {
			return err
		}
		uc.console.LogSuccess("Printer %q removed", model)
		return nil
	})
}

// ListPrinters exibe o catálogo, aplicando busca e predicados de filtro, e
// exporta a lista quando um nome de relatório for configurado.
func (uc *ComparisonUseCase) ListPrinters(ctx context.Context, args *types.CLIArgs, search string, pred calc.Predicate) error {
	return uc.withStore(args, func(cfg *types.Config, store repository.StoreRepository) error {
		printers, err := store.ListPrinters(ctx, search)
		if err != nil {
			return err
		}
		printers = calc.Filter(printers, pred)

		table := uc.console.CreateTable()
		table.AddColumn("ID")
		table.AddColumn("Model")
		table.AddColumn("Purchase (EUR)")
		table.AddColumn("Color")
		for _, p := range printers {
			color := "no"
			if p.IsColor {
				color = "yes"
			}
			table.AddRow(p.ID, p.Model, fmt.Sprintf("%.2f", p.PurchasePrice), color)
		}
		uc.console.Print(table.Render())

		if len(printers) == 0 {
			uc.console.LogInfo("No printers matched")
			return nil
		}

		if cfg.ReportName != "" {
			for _, reportType := range cfg.ReportType {
				switch reportType {
				case "csv":
					csvPath, err := uc.exportRepo.ExportPrintersToCSV(printers, cfg.ReportName, cfg.Dir)
					if err != nil {
						uc.console.LogError("Failed to export printers to CSV: %s", err)
					} else {
						uc.console.LogSuccess("Successfully exported printers to CSV: %s", csvPath)
					}
				default:
					uc.console.LogWarning("Report type %q is not supported for the printer list", reportType)
				}
			}
		}
		return nil
	})
}

// ImportPrinters lê um CSV exportado anteriormente e registra os modelos ausentes.
func (uc *ComparisonUseCase) ImportPrinters(ctx context.Context, args *types.CLIArgs, path string) error {
	return uc.withStore(args, func(cfg *types.Config, store repository.StoreRepository) error {
		printers, err := uc.exportRepo.ImportPrintersFromCSV(path)
		if err != nil {
			return err
		}

		imported := 0
		for _, p := range printers {
			if _, err := store.GetPrinterByModel(ctx, p.Model); err == nil {
				uc.console.LogWarning("Printer %q already exists, skipping", p.Model)
				continue
			}
			if _, err := store.AddPrinter(ctx, entity.Printer{
				Model:         p.Model,
				PurchasePrice: p.PurchasePrice,
				IsColor:       p.IsColor,
			}); err != nil {
				return err
			}
			imported++
		}
		uc.console.LogSuccess("Imported %d of %d printers from %s", imported, len(printers), path)
		return nil
	})
}

// --- Material de Consumo ---

// AddConsumable registra um cartucho. A entrada é marcada como editada pelo
// usuário; no modo auto, um preço de cyan se propaga para magenta/yellow.
func (uc *ComparisonUseCase) AddConsumable(ctx context.Context, args *types.CLIArgs, model string, ch entity.Channel, price float64, yieldPages int) error {
	if price < 0 {
		return fmt.Errorf("cartridge price must not be negative")
	}
	if yieldPages <= 0 {
		return types.ErrInvalidYield
	}

	return uc.withStore(args, func(cfg *types.Config, store repository.StoreRepository) error {
		p, err := store.GetPrinterByModel(ctx, model)
		if err != nil {
			return err
		}

		p.SetCartridge(ch, entity.Cartridge{Price: price, YieldPages: yieldPages, Edited: true})
		if err := store.SetCartridge(ctx, p.ID, ch, entity.Cartridge{Price: price, YieldPages: yieldPages, Edited: true}); err != nil {
			return err
		}
		uc.console.LogSuccess("%s cartridge of %q saved", ch, model)

		// Übernahme automática: preço do cyan espelhado em magenta/yellow.
		if ch == entity.Cyan && cfg.Propagation == types.PropagationAuto {
			return uc.propagate(ctx, store, &p)
		}
		return nil
	})
}

// RemoveConsumable apaga o cartucho de um canal.
func (uc *ComparisonUseCase) RemoveConsumable(ctx context.Context, args *types.CLIArgs, model string, ch entity.Channel) error {
	return uc.withStore(args, func(cfg *types.Config, store repository.StoreRepository) error {
		p, err := store.GetPrinterByModel(ctx, model)
		if err != nil {
			return err
		}
		if err := store.DeleteCartridge(ctx, p.ID, ch); err != nil {
			return err
		}
		uc.console.LogSuccess("%s cartridge of %q removed", ch, model)
		return nil
	})
}

// ListConsumables exibe o material de consumo do catálogo (ou de um modelo) e
// exporta quando um nome de relatório for configurado.
func (uc *ComparisonUseCase) ListConsumables(ctx context.Context, args *types.CLIArgs, model string) error {
	return uc.withStore(args, func(cfg *types.Config, store repository.StoreRepository) error {
		var printers []entity.Printer
		if model != "" {
			p, err := store.GetPrinterByModel(ctx, model)
			if err != nil {
				return err
			}
			printers = []entity.Printer{p}
		} else {
			var err error
			printers, err = store.ListPrinters(ctx, "")
			if err != nil {
				return err
			}
		}

		table := uc.console.CreateTable()
		table.AddColumn("Model")
		table.AddColumn("Channel")
		table.AddColumn("Price (EUR)")
		table.AddColumn("Yield (pages @5%)")
		for _, p := range printers {
			for _, ch := range entity.AllChannels {
				c, ok := p.Cartridge(ch)
				if !ok {
					continue
				}
				table.AddRow(p.Model, string(ch), fmt.Sprintf("%.2f", c.Price), c.YieldPages)
			}
		}
		uc.console.Print(table.Render())

		if cfg.ReportName != "" {
			for _, reportType := range cfg.ReportType {
				switch reportType {
				case "csv":
					csvPath, err := uc.exportRepo.ExportConsumablesToCSV(printers, cfg.ReportName, cfg.Dir)
					if err != nil {
						uc.console.LogError("Failed to export consumables to CSV: %s", err)
					} else {
						uc.console.LogSuccess("Successfully exported consumables to CSV: %s", csvPath)
					}
				default:
					uc.console.LogWarning("Report type %q is not supported for the consumable list", reportType)
				}
			}
		}
		return nil
	})
}

// PropagateCyan aplica a regra de propagação explicitamente (modo manual).
func (uc *ComparisonUseCase) PropagateCyan(ctx context.Context, args *types.CLIArgs, model string) error {
	return uc.withStore(args, func(cfg *types.Config, store repository.StoreRepository) error {
		p, err := store.GetPrinterByModel(ctx, model)
		if err != nil {
			return err
		}
		return uc.propagate(ctx, store, &p)
	})
}

func (uc *ComparisonUseCase) propagate(ctx context.Context, store repository.StoreRepository, p *entity.Printer) error {
	changed, err := calc.PropagateCyan(p)
	if err != nil {
		return err
	}
	if len(changed) == 0 {
		uc.console.LogInfo("Nothing to propagate for %q", p.Model)
		return nil
	}

	for _, ch := range changed {
		c, _ := p.Cartridge(ch)
		if err := store.SetCartridge(ctx, p.ID, ch, c); err != nil {
			return err
		}
	}
	uc.console.LogSuccess("Cyan price of %q propagated to %d channel(s)", p.Model, len(changed))
	return nil
}

// --- Comparativo ---

// BuildComparison monta as linhas do comparativo para os modelos informados
// (todos, quando a lista vier vazia), na ordem de seleção.
func (uc *ComparisonUseCase) BuildComparison(ctx context.Context, store repository.StoreRepository, models []string, cov entity.CoverageAssumptions) ([]entity.ComparisonRow, error) {
	var selected []entity.Printer
	if len(models) == 0 {
		all, err := store.ListPrinters(ctx, "")
		if err != nil {
			return nil, err
		}
		selected = all
	} else {
		for _, model := range models {
			p, err := store.GetPrinterByModel(ctx, model)
			if err != nil {
				uc.console.LogWarning("Printer %q not found in catalog", model)
				continue
			}
			selected = append(selected, p)
		}
	}

	var rows []entity.ComparisonRow
	for _, p := range selected {
		costs, err := calc.BlendedCostPerPage(p, cov)
		if err != nil {
			// Erros de cálculo não derrubam o comparativo; o registro é pulado.
			uc.console.LogWarning("Skipping %q: %s", p.Model, err)
			continue
		}
		rows = append(rows, entity.ComparisonRow{
			PrinterID:          p.ID,
			Model:              p.Model,
			PurchasePrice:      p.PurchasePrice,
			BWCostPerPage:      costs.BW,
			ColorCostPerPage:   costs.Color,
			BlendedCostPerPage: costs.Blended,
		})
	}
	if len(rows) == 0 {
		return nil, types.ErrNoPrintersSelected
	}

	breakEven := calc.BreakEven(rows)
	baseline := calc.BaselineIndex(rows)
	for i := range rows {
		rows[i].BreakEvenPages = breakEven[rows[i].PrinterID]
		rows[i].Baseline = i == baseline
	}
	return rows, nil
}

// RunCompare executa a funcionalidade principal: comparativo de custo total.
func (uc *ComparisonUseCase) RunCompare(ctx context.Context, args *types.CLIArgs, models []string) error {
	return uc.withStore(args, func(cfg *types.Config, store repository.StoreRepository) error {
		cov := uc.coverage(cfg)

		status := uc.console.Status("Calculating page costs...")
		rows, err := uc.BuildComparison(ctx, store, models, cov)
		status.Stop()
		if err != nil {
			return err
		}

		// Tabela principal
		table := uc.console.CreateTable()
		table.AddColumn("Model")
		table.AddColumn("Purchase (EUR)")
		table.AddColumn("B/W page (EUR)")
		table.AddColumn("Color page (EUR)")
		table.AddColumn("Blended page (EUR)")
		table.AddColumn("Break-even (pages)")
		for _, row := range rows {
			model := row.Model
			if row.Baseline {
				model += " *"
			}
			breakEvenStr := "-"
			if row.BreakEvenPages != entity.NoBreakEven {
				breakEvenStr = fmt.Sprintf("%d", row.BreakEvenPages)
			}
			table.AddRow(
				model,
				fmt.Sprintf("%.2f", row.PurchasePrice),
				fmt.Sprintf("%.4f", row.BWCostPerPage),
				fmt.Sprintf("%.4f", row.ColorCostPerPage),
				fmt.Sprintf("%.4f", row.BlendedCostPerPage),
				breakEvenStr,
			)
		}
		uc.console.Print(table.Render())
		uc.console.LogInfo("* cheapest purchase price (break-even reference); coverage %.1f%% B/W, %.1f%% color, %.1f%% color pages",
			cov.CoverageBW, cov.CoverageColor, cov.ColorShare)

		// Barras de custo médio por página
		costs := make([]types.PrinterCost, 0, len(rows))
		for _, row := range rows {
			costs = append(costs, types.PrinterCost{Model: row.Model, Cost: row.BlendedCostPerPage})
		}
		uc.console.DisplayCostBars(costs)

		// Exporta os relatórios do comparativo
		if cfg.ReportName != "" && len(cfg.ReportType) > 0 {
			for _, reportType := range cfg.ReportType {
				switch reportType {
				case "csv":
					csvPath, err := uc.exportRepo.ExportComparisonToCSV(rows, cov, cfg.ReportName, cfg.Dir)
					if err != nil {
						uc.console.LogError("Failed to export to CSV: %s", err)
					} else {
						uc.console.LogSuccess("Successfully exported to CSV: %s", csvPath)
					}
				case "json":
					jsonPath, err := uc.exportRepo.ExportComparisonToJSON(rows, cfg.ReportName, cfg.Dir)
					if err != nil {
						uc.console.LogError("Failed to export to JSON: %s", err)
					} else {
						uc.console.LogSuccess("Successfully exported to JSON: %s", jsonPath)
					}
				case "pdf":
					pdfPath, err := uc.exportRepo.ExportComparisonToPDF(rows, cov, cfg.ReportName, cfg.Dir)
					if err != nil {
						uc.console.LogError("Failed to export to PDF: %s", err)
					} else {
						uc.console.LogSuccess("Successfully exported to PDF: %s", pdfPath)
					}
				default:
					uc.console.LogWarning("Unknown report type %q", reportType)
				}
			}
		}

		return nil
	})
}

// --- Perfis ---

// SaveProfile grava o cenário de cobertura atual e o catálogo inteiro sob um nome.
func (uc *ComparisonUseCase) SaveProfile(ctx context.Context, args *types.CLIArgs, name string) error {
	return uc.withStore(args, func(cfg *types.Config, store repository.StoreRepository) error {
		printers, err := store.ListPrinters(ctx, "")
		if err != nil {
			return err
		}

		snapshot := make([]entity.Printer, 0, len(printers))
		for _, p := range printers {
			snapshot = append(snapshot, p.Clone())
		}

		profile := entity.Profile{
			Name:     name,
			Coverage: uc.coverage(cfg),
			Printers: snapshot,
		}
		if err := uc.newProfiles(cfg.ProfileDir).Save(profile); err != nil {
			return err
		}
		uc.console.LogSuccess("Profile %q saved with %d printer(s)", name, len(snapshot))
		return nil
	})
}

// LoadProfile substitui o catálogo inteiro pelo conteúdo do perfil. Em caso de
// erro nada muda em memória ou no banco.
func (uc *ComparisonUseCase) LoadProfile(ctx context.Context, args *types.CLIArgs, name string) error {
	return uc.withStore(args, func(cfg *types.Config, store repository.StoreRepository) error {
		profile, err := uc.newProfiles(cfg.ProfileDir).Load(name)
		if err != nil {
			return err
		}

		if err := store.ReplaceAll(ctx, profile.Printers); err != nil {
			return err
		}
		uc.console.LogSuccess("Profile %q loaded: %d printer(s), coverage %.1f%%/%.1f%%, %.1f%% color pages",
			profile.Name, len(profile.Printers),
			profile.Coverage.CoverageBW, profile.Coverage.CoverageColor, profile.Coverage.ColorShare)
		return nil
	})
}

// ListProfiles exibe os perfis gravados.
func (uc *ComparisonUseCase) ListProfiles(args *types.CLIArgs) error {
	cfg, err := uc.ResolveConfig(args)
	if err != nil {
		return err
	}

	names, err := uc.newProfiles(cfg.ProfileDir).List()
	if err != nil {
		return err
	}
	if len(names) == 0 {
		uc.console.LogInfo("No profiles saved yet")
		return nil
	}
	for _, name := range names {
		uc.console.Println(name)
	}
	return nil
}
