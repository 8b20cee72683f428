package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/diillson/envcheck-reports/internal/domain/repository"
	"github.com/diillson/envcheck-reports/internal/shared/types"
	"github.com/diillson/envcheck-reports/pkg/version"
)

// Dependencies agrupa os adaptadores usados pelos comandos.
type Dependencies struct {
	Config     repository.ConfigRepository
	Storage    func(base types.StorageConfig) repository.StorageFactory
	Archive    repository.ArchiveRepository
	Notebook   repository.NotebookRepository
	Dumps      repository.ResultDumpRepository
	Export     repository.ExportRepository
	Metrics    repository.MetricsRepository
	NewConsole func(level string) types.ConsoleInterface
}

// CLIApp represents the command-line interface application.
type CLIApp struct {
	rootCmd *cobra.Command
	deps    Dependencies
	out     io.Writer

	args    types.CLIArgs
	config  *types.Config
	console types.ConsoleInterface
}

// NewCLIApp cria uma nova aplicação CLI.
func NewCLIApp(deps Dependencies) *CLIApp {
	app := &CLIApp{
		deps: deps,
		out:  os.Stdout,
	}

	rootCmd := &cobra.Command{
		Use:               "envcheck-reports",
		Short:             "Environment checker report uploader and result recorder",
		Version:           version.FormatVersion(),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: app.setup,
	}
	rootCmd.SetVersionTemplate(`{{printf "envcheck-reports version: %s\n" .Version}}`)

	rootCmd.PersistentFlags().StringVarP(&app.args.ConfigFile, "config-file", "C", "", "Path to a TOML, YAML, or JSON configuration file")
	rootCmd.PersistentFlags().StringVar(&app.args.LogLevel, "log-level", "", "Log level: DEBUG, INFO, WARNING or ERROR (overrides ENVIRONMENT_CHECKER_LOG_LEVEL)")
	rootCmd.PersistentFlags().StringVar(&app.args.MetricsTextfile, "metrics-textfile", "", "Write Prometheus metrics of this run to the given file")
	rootCmd.PersistentFlags().BoolVar(&app.args.NoBanner, "no-banner", false, "Do not print the welcome banner")

	rootCmd.AddCommand(
		app.uploadReportsCmd(),
		app.uploadNotebookCmd(),
		app.uploadBulkTableCmd(),
		app.checkStorageCmd(),
		app.recordResultCmd(),
		app.generateReportCmd(),
	)

	app.rootCmd = rootCmd
	return app
}

// SetOutput redireciona a saída do banner e do cobra.
func (app *CLIApp) SetOutput(w io.Writer) {
	app.out = w
	app.rootCmd.SetOut(w)
	app.rootCmd.SetErr(w)
}

// SetArgs substitui os argumentos de os.Args.
func (app *CLIApp) SetArgs(args []string) {
	app.rootCmd.SetArgs(args)
}

// Execute runs the CLI application and flushes the run metrics.
func (app *CLIApp) Execute() error {
	err := app.rootCmd.Execute()

	if app.deps.Metrics != nil && app.args.MetricsTextfile != "" {
		if flushErr := app.deps.Metrics.Flush(app.args.MetricsTextfile); flushErr != nil && app.console != nil {
			app.console.LogWarning("Could not write metrics to %s: %v", app.args.MetricsTextfile, flushErr)
		}
	}
	return err
}

// setup carrega a configuração e prepara o console antes de cada subcomando.
func (app *CLIApp) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := app.deps.Config.Load(app.args.ConfigFile)
	if err != nil {
		return err
	}
	if app.args.LogLevel != "" {
		cfg.LogLevel = app.args.LogLevel
	}
	app.config = cfg
	app.console = app.deps.NewConsole(cfg.LogLevel)

	if !app.args.NoBanner {
		displayWelcomeBanner(app.out)
	}
	app.console.LogDebug("Running %s with output directory %s", cmd.Name(), cfg.OutputDir)
	return nil
}
