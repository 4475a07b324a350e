package cli

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/diillson/printer-tco-cli/pkg/version"
)

// displayWelcomeBanner exibe o banner de boas-vindas com informações de versão.
func displayWelcomeBanner(versionStr string) {
	banner := `
         /$$$$$$$          /$$             /$$                           /$$$$$$$$ /$$$$$$   /$$$$$$
        | $$__  $$        |__/            | $$                          |__  $$__//$$__  $$ /$$__  $$
        | $$  \ $$ /$$$$$$ /$$ /$$$$$$$  /$$$$$$    /$$$$$$   /$$$$$$      | $$  | $$  \__/| $$  \ $$
        | $$$$$$$//$$__  $| $$| $$__  $$|_  $$_/   /$$__  $$ /$$__  $$     | $$  | $$      | $$  | $$
        | $$____/| $$  \__| $$| $$  \ $$  | $$    | $$$$$$$$| $$  \__/     | $$  | $$      | $$  | $$
        | $$     | $$     | $$| $$  | $$  | $$ /$$| $$_____/| $$           | $$  | $$    $$| $$  | $$
        | $$     | $$     | $$| $$  | $$  |  $$$$/|  $$$$$$$| $$           | $$  |  $$$$$$/|  $$$$$$/
        |__/     |__/     |__/|__/  |__/   \___/   \_______/|__/           |__/   \______/  \______/
        `
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	blue := color.New(color.FgBlue, color.Bold).SprintFunc()

	fmt.Println(cyan(banner))

	// Obtem a string formatada da versão através do pacote version
	formattedVersion := version.FormatVersion()
	fmt.Println(blue(fmt.Sprintf("Printer TCO CLI (v%s)", formattedVersion)))
}

// checkLatestVersion verifica se uma versão mais recente está disponível.
func checkLatestVersion(currentVersion string) {
	// Usa a função do pacote version para verificar por atualizações
	version.CheckLatestVersion(currentVersion)
}
