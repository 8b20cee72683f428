package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/diillson/envcheck-reports/pkg/version"
)

// displayWelcomeBanner exibe o banner de boas-vindas com informações de versão.
func displayWelcomeBanner(out io.Writer) {
	banner := `
   ___             ___ _           _
  | __|_ ___ ___  / __| |_  ___ __| |__
  | _|| ' \ V / _| (__| ' \/ -_) _| / /
  |___|_||_\_/\__|\___|_||_\___\__|_\_\  reports
`
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	blue := color.New(color.FgBlue, color.Bold).SprintFunc()

	fmt.Fprintln(out, red(banner))
	fmt.Fprintln(out, blue(fmt.Sprintf("Environment Checker Reports (v%s)", version.FormatVersion())))
}
