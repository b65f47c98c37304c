package cli

import (
	"fmt"

	"github.com/diillson/retail-report-go/pkg/console"
	"github.com/diillson/retail-report-go/pkg/version"
)

// displayWelcomeBanner exibe o banner de boas-vindas com informações de versão.
func displayWelcomeBanner(versionStr string) {
	banner := `
   ____      _        _ _   ____                       _
  |  _ \ ___| |_ __ _(_) | |  _ \ ___ _ __   ___  _ __| |_
  | |_) / _ \ __/ _' | | | | |_) / _ \ '_ \ / _ \| '__| __|
  |  _ <  __/ || (_| | | | |  _ <  __/ |_) | (_) | |  | |_
  |_| \_\___|\__\__,_|_|_| |_| \_\___| .__/ \___/|_|   \__|
                                     |_|
`
	fmt.Println(console.BrightMagenta(banner))
	fmt.Println(console.BrightCyan(fmt.Sprintf("Retail Report CLI (v%s)", version.FormatVersion())))
}

// checkLatestVersion verifica se uma versão mais recente está disponível.
func checkLatestVersion(currentVersion string) {
	version.CheckLatestVersion(currentVersion)
}
