package main

import (
	"fmt"
	"os"

	"github.com/diillson/printer-tco-cli/internal/adapter/driven/config"
	"github.com/diillson/printer-tco-cli/internal/adapter/driven/export"
	"github.com/diillson/printer-tco-cli/internal/adapter/driven/profilestore"
	"github.com/diillson/printer-tco-cli/internal/adapter/driven/store"
	"github.com/diillson/printer-tco-cli/internal/adapter/driving/cli"
	"github.com/diillson/printer-tco-cli/internal/application/usecase"
	"github.com/diillson/printer-tco-cli/pkg/console"
	"github.com/diillson/printer-tco-cli/pkg/version"
)

func main() {
	// Inicializa o aplicativo CLI
	app := cli.NewCLIApp(version.Version)

	// Inicializa os repositórios
	exportRepo := export.NewExportRepository()
	configRepo := config.NewConfigRepository()
	consoleImpl := console.NewConsole()

	// Inicializa o caso de uso; o catálogo e os perfis abrem sob demanda, no
	// caminho resolvido pela configuração.
	comparisonUseCase := usecase.NewComparisonUseCase(
		store.NewSQLiteRepository,
		profilestore.NewProfileRepository,
		exportRepo,
		configRepo,
		consoleImpl,
	)

	// Define o caso de uso no aplicativo CLI
	app.SetUseCase(comparisonUseCase)

	// Executa o aplicativo
	if err := app.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
