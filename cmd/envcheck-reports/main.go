package main

import (
	"fmt"
	"os"

	"github.com/diillson/envcheck-reports/internal/adapter/driven/archive"
	"github.com/diillson/envcheck-reports/internal/adapter/driven/config"
	"github.com/diillson/envcheck-reports/internal/adapter/driven/export"
	"github.com/diillson/envcheck-reports/internal/adapter/driven/metrics"
	"github.com/diillson/envcheck-reports/internal/adapter/driven/notebook"
	"github.com/diillson/envcheck-reports/internal/adapter/driven/resultdump"
	"github.com/diillson/envcheck-reports/internal/adapter/driven/storage"
	"github.com/diillson/envcheck-reports/internal/adapter/driving/cli"
	"github.com/diillson/envcheck-reports/internal/shared/types"
	"github.com/diillson/envcheck-reports/pkg/console"
)

func main() {
	// Inicializa os repositórios
	deps := cli.Dependencies{
		Config:   config.NewConfigRepository(),
		Storage:  storage.NewStorageFactory,
		Archive:  archive.NewZipRepository(),
		Notebook: notebook.NewRepository(),
		Dumps:    resultdump.NewYAMLRepository(),
		Export:   export.NewExportRepository(),
		Metrics:  metrics.NewPrometheusRepository(),
		NewConsole: func(level string) types.ConsoleInterface {
			return console.NewConsole(console.ParseLevel(level))
		},
	}

	// Executa o aplicativo
	app := cli.NewCLIApp(deps)
	if err := app.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
