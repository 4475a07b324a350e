package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/diillson/printer-tco-cli/internal/application/usecase"
	"github.com/diillson/printer-tco-cli/internal/domain/calc"
	"github.com/diillson/printer-tco-cli/internal/domain/entity"
	"github.com/diillson/printer-tco-cli/internal/shared/types"
	"github.com/diillson/printer-tco-cli/pkg/version"
)

// CLIApp represents the command-line interface application.
type CLIApp struct {
	rootCmd *cobra.Command
	useCase *usecase.ComparisonUseCase
	version string
}

// NewCLIApp cria uma nova aplicação CLI.
func NewCLIApp(versionStr string) *CLIApp {
	app := &CLIApp{
		version: versionStr,
	}

	// Obtem a versão formatada
	formattedVersion := version.FormatVersion()

	rootCmd := &cobra.Command{
		Use:     "printer-tco",
		Short:   "Printer total cost of ownership calculator",
		Version: formattedVersion,
	}

	// Personaliza a template para incluir mais informações de versão
	rootCmd.SetVersionTemplate(`{{printf "Printer TCO CLI version: %s\n" .Version}}`)

	// Flags globais, válidas para todos os subcomandos
	rootCmd.PersistentFlags().StringP("config-file", "C", "", "Path to a TOML, YAML, or JSON configuration file")
	rootCmd.PersistentFlags().StringP("db", "b", "", "Path to the printer catalog database file")
	rootCmd.PersistentFlags().StringP("report-name", "n", "", "Specify the base name for the report file (without extension)")
	rootCmd.PersistentFlags().StringSliceP("report-type", "y", nil, "Specify report types: csv, json, pdf")
	rootCmd.PersistentFlags().StringP("dir", "d", "", "Directory to save the report files (default: current directory)")
	rootCmd.PersistentFlags().Float64("coverage-bw", 0, "Assumed toner coverage for black-and-white pages, in percent")
	rootCmd.PersistentFlags().Float64("coverage-color", 0, "Assumed toner coverage for color pages, in percent")
	rootCmd.PersistentFlags().Float64("color-share", 0, "Share of printed pages that are color, in percent")
	rootCmd.PersistentFlags().String("propagation", "", "Cyan price propagation mode: auto or manual")
	rootCmd.PersistentFlags().String("profile-dir", "", "Directory holding saved profiles")

	rootCmd.AddCommand(app.newPrinterCmd())
	rootCmd.AddCommand(app.newConsumableCmd())
	rootCmd.AddCommand(app.newCompareCmd())
	rootCmd.AddCommand(app.newProfileCmd())
	rootCmd.AddCommand(app.newImportCmd())

	app.rootCmd = rootCmd
	return app
}

// Execute runs the CLI application.
func (app *CLIApp) Execute() error {
	return app.rootCmd.Execute()
}

// SetUseCase sets the comparison use case for the CLI app.
func (app *CLIApp) SetUseCase(useCase *usecase.ComparisonUseCase) {
	app.useCase = useCase
}

// parseArgs parses the global flags into a CLIArgs struct.
func (app *CLIApp) parseArgs(cmd *cobra.Command) (*types.CLIArgs, error) {
	flags := cmd.Flags()

	configFile, _ := flags.GetString("config-file")
	dbPath, _ := flags.GetString("db")
	reportName, _ := flags.GetString("report-name")
	reportType, _ := flags.GetStringSlice("report-type")
	dir, _ := flags.GetString("dir")
	propagation, _ := flags.GetString("propagation")
	profileDir, _ := flags.GetString("profile-dir")

	// Set default directory to current working directory if not specified
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		dir = cwd
	} else {
		// Convert to absolute path
		absDir, err := filepath.Abs(dir)
		if err != nil {
			return nil, err
		}
		dir = absDir
	}

	args := &types.CLIArgs{
		ConfigFile:  configFile,
		DBPath:      dbPath,
		ReportName:  reportName,
		ReportType:  reportType,
		Dir:         dir,
		Propagation: propagation,
		ProfileDir:  profileDir,
	}

	// Flags numéricas só sobrescrevem a configuração quando informadas.
	if flags.Changed("coverage-bw") {
		v, _ := flags.GetFloat64("coverage-bw")
		args.CoverageBW = &v
	}
	if flags.Changed("coverage-color") {
		v, _ := flags.GetFloat64("coverage-color")
		args.CoverageColor = &v
	}
	if flags.Changed("color-share") {
		v, _ := flags.GetFloat64("color-share")
		args.ColorShare = &v
	}

	return args, nil
}

func (app *CLIApp) newPrinterCmd() *cobra.Command {
	printerCmd := &cobra.Command{
		Use:   "printer",
		Short: "Manage the printer catalog",
	}

	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Register a printer model",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cliArgs, err := app.parseArgs(cmd)
			if err != nil {
				return err
			}
			model, _ := cmd.Flags().GetString("model")
			price, _ := cmd.Flags().GetFloat64("purchase-price")
			isColor, _ := cmd.Flags().GetBool("color")
			return app.useCase.AddPrinter(context.Background(), cliArgs, model, price, isColor)
		},
	}
	addCmd.Flags().StringP("model", "m", "", "Printer model name")
	addCmd.Flags().Float64P("purchase-price", "p", 0, "Purchase price in EUR")
	addCmd.Flags().BoolP("color", "c", false, "The printer can print in color")
	_ = addCmd.MarkFlagRequired("model")
	_ = addCmd.MarkFlagRequired("purchase-price")

	updateCmd := &cobra.Command{
		Use:   "update",
		Short: "Update a printer model",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cliArgs, err := app.parseArgs(cmd)
			if err != nil {
				return err
			}
			model, _ := cmd.Flags().GetString("model")
			rename, _ := cmd.Flags().GetString("rename")

			var price *float64
			if cmd.Flags().Changed("purchase-price") {
				v, _ := cmd.Flags().GetFloat64("purchase-price")
				price = &v
			}
			var isColor *bool
			if cmd.Flags().Changed("color") {
				v, _ := cmd.Flags().GetBool("color")
				isColor = &v
			}
			return app.useCase.UpdatePrinter(context.Background(), cliArgs, model, rename, price, isColor)
		},
	}
	updateCmd.Flags().StringP("model", "m", "", "Printer model name")
	updateCmd.Flags().String("rename", "", "New model name")
	updateCmd.Flags().Float64P("purchase-price", "p", 0, "New purchase price in EUR")
	updateCmd.Flags().BoolP("color", "c", false, "The printer can print in color")
	_ = updateCmd.MarkFlagRequired("model")

	removeCmd := &cobra.Command{
		Use:   "remove",
		Short: "Remove a printer model and its consumables",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cliArgs, err := app.parseArgs(cmd)
			if err != nil {
				return err
			}
			model, _ := cmd.Flags().GetString("model")
			return app.useCase.RemovePrinter(context.Background(), cliArgs, model)
		},
	}
	removeCmd.Flags().StringP("model", "m", "", "Printer model name")
	_ = removeCmd.MarkFlagRequired("model")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the printer catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cliArgs, err := app.parseArgs(cmd)
			if err != nil {
				return err
			}
			search, _ := cmd.Flags().GetString("search")
			colorOnly, _ := cmd.Flags().GetBool("color-only")

			pred := calc.Predicate{ColorOnly: colorOnly}
			if cmd.Flags().Changed("min-price") {
				v, _ := cmd.Flags().GetFloat64("min-price")
				pred.MinPrice = &v
			}
			if cmd.Flags().Changed("max-price") {
				v, _ := cmd.Flags().GetFloat64("max-price")
				pred.MaxPrice = &v
			}
			return app.useCase.ListPrinters(context.Background(), cliArgs, search, pred)
		},
	}
	listCmd.Flags().StringP("search", "s", "", "Only models whose name contains this text")
	listCmd.Flags().Float64("min-price", 0, "Only models at or above this purchase price")
	listCmd.Flags().Float64("max-price", 0, "Only models at or below this purchase price")
	listCmd.Flags().Bool("color-only", false, "Only color-capable models")

	printerCmd.AddCommand(addCmd, updateCmd, removeCmd, listCmd)
	return printerCmd
}

func (app *CLIApp) newConsumableCmd() *cobra.Command {
	consumableCmd := &cobra.Command{
		Use:   "consumable",
		Short: "Manage cartridges and toner",
	}

	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Register a cartridge for a printer",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cliArgs, err := app.parseArgs(cmd)
			if err != nil {
				return err
			}
			model, _ := cmd.Flags().GetString("model")
			channel, _ := cmd.Flags().GetString("channel")
			price, _ := cmd.Flags().GetFloat64("price")
			yieldPages, _ := cmd.Flags().GetInt("yield")

			ch, err := entity.ParseChannel(channel)
			if err != nil {
				return err
			}
			return app.useCase.AddConsumable(context.Background(), cliArgs, model, ch, price, yieldPages)
		},
	}
	addCmd.Flags().StringP("model", "m", "", "Printer model name")
	addCmd.Flags().StringP("channel", "c", "", "Cartridge channel: black, cyan, magenta or yellow")
	addCmd.Flags().Float64P("price", "p", 0, "Cartridge price in EUR")
	addCmd.Flags().Int("yield", 0, "Rated page yield at 5% coverage")
	_ = addCmd.MarkFlagRequired("model")
	_ = addCmd.MarkFlagRequired("channel")
	_ = addCmd.MarkFlagRequired("price")
	_ = addCmd.MarkFlagRequired("yield")

	removeCmd := &cobra.Command{
		Use:   "remove",
		Short: "Remove a cartridge",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cliArgs, err := app.parseArgs(cmd)
			if err != nil {
				return err
			}
			model, _ := cmd.Flags().GetString("model")
			channel, _ := cmd.Flags().GetString("channel")

			ch, err := entity.ParseChannel(channel)
			if err != nil {
				return err
			}
			return app.useCase.RemoveConsumable(context.Background(), cliArgs, model, ch)
		},
	}
	removeCmd.Flags().StringP("model", "m", "", "Printer model name")
	removeCmd.Flags().StringP("channel", "c", "", "Cartridge channel: black, cyan, magenta or yellow")
	_ = removeCmd.MarkFlagRequired("model")
	_ = removeCmd.MarkFlagRequired("channel")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List registered cartridges",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cliArgs, err := app.parseArgs(cmd)
			if err != nil {
				return err
			}
			model, _ := cmd.Flags().GetString("model")
			return app.useCase.ListConsumables(context.Background(), cliArgs, model)
		},
	}
	listCmd.Flags().StringP("model", "m", "", "Only cartridges of this printer model")

	propagateCmd := &cobra.Command{
		Use:   "propagate",
		Short: "Mirror the cyan cartridge price to magenta and yellow",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cliArgs, err := app.parseArgs(cmd)
			if err != nil {
				return err
			}
			model, _ := cmd.Flags().GetString("model")
			return app.useCase.PropagateCyan(context.Background(), cliArgs, model)
		},
	}
	propagateCmd.Flags().StringP("model", "m", "", "Printer model name")
	_ = propagateCmd.MarkFlagRequired("model")

	consumableCmd.AddCommand(addCmd, removeCmd, listCmd, propagateCmd)
	return consumableCmd
}

func (app *CLIApp) newCompareCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compare [model]...",
		Short: "Compare page costs and break-even points",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Exibe o banner de boas-vindas
			displayWelcomeBanner(app.version)

			// Verifica a versão mais recente disponível
			go version.CheckLatestVersion(app.version)

			cliArgs, err := app.parseArgs(cmd)
			if err != nil {
				return err
			}
			return app.useCase.RunCompare(context.Background(), cliArgs, args)
		},
	}
}

func (app *CLIApp) newProfileCmd() *cobra.Command {
	profileCmd := &cobra.Command{
		Use:   "profile",
		Short: "Save and restore catalog snapshots",
	}

	saveCmd := &cobra.Command{
		Use:   "save <name>",
		Short: "Save the catalog and coverage assumptions under a name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliArgs, err := app.parseArgs(cmd)
			if err != nil {
				return err
			}
			return app.useCase.SaveProfile(context.Background(), cliArgs, args[0])
		},
	}

	loadCmd := &cobra.Command{
		Use:   "load <name>",
		Short: "Replace the catalog with a saved profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliArgs, err := app.parseArgs(cmd)
			if err != nil {
				return err
			}
			return app.useCase.LoadProfile(context.Background(), cliArgs, args[0])
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List saved profiles",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cliArgs, err := app.parseArgs(cmd)
			if err != nil {
				return err
			}
			return app.useCase.ListProfiles(cliArgs)
		},
	}

	profileCmd.AddCommand(saveCmd, loadCmd, listCmd)
	return profileCmd
}

func (app *CLIApp) newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import printers from a previously exported CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliArgs, err := app.parseArgs(cmd)
			if err != nil {
				return err
			}
			return app.useCase.ImportPrinters(context.Background(), cliArgs, args[0])
		},
	}
}
