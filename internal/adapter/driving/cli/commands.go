package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/diillson/envcheck-reports/internal/application/usecase"
	"github.com/diillson/envcheck-reports/internal/domain/entity"
	"github.com/diillson/envcheck-reports/internal/shared/types"
)

type uploadFunc func(ctx context.Context, uc *usecase.UploadUseCase, arg string) (*entity.UploadResult, error)

func (app *CLIApp) uploadReportsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upload-reports <base-name>",
		Short: "Zip the reports generated for a notebook base name and upload them under reports/",
		Args:  cobra.ExactArgs(1),
		RunE: app.runUpload(func(ctx context.Context, uc *usecase.UploadUseCase, baseName string) (*entity.UploadResult, error) {
			return uc.UploadReports(ctx, baseName)
		}),
	}
}

func (app *CLIApp) uploadNotebookCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upload-notebook <notebook-path>",
		Short: "Zip the reports of an executed notebook and upload them under the cloud/initiator/date path",
		Args:  cobra.ExactArgs(1),
		RunE: app.runUpload(func(ctx context.Context, uc *usecase.UploadUseCase, path string) (*entity.UploadResult, error) {
			return uc.UploadReportsByNotebookPath(ctx, path)
		}),
	}
}

func (app *CLIApp) uploadBulkTableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upload-bulk-table <bulk-check-name>",
		Short: "Upload the HTML status table of a bulk check",
		Args:  cobra.ExactArgs(1),
		RunE: app.runUpload(func(ctx context.Context, uc *usecase.UploadUseCase, name string) (*entity.UploadResult, error) {
			return uc.UploadBulkCheckTable(ctx, name)
		}),
	}
}

// runUpload monta o caso de uso de upload e imprime o objeto enviado.
// Um resultado nil sem erro significa que o motivo já foi registrado no log.
func (app *CLIApp) runUpload(fn uploadFunc) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if err := app.config.Validate(); err != nil {
			return err
		}

		s := app.config.Storage
		store, err := app.deps.Storage(s)(ctx, s.ServerURL, s.AccessKey, s.SecretKey, s.Region)
		if err != nil {
			return err
		}

		uc := usecase.NewUploadUseCase(store, app.deps.Archive, app.deps.Notebook, app.deps.Metrics, app.console, app.config)
		result, err := fn(ctx, uc, args[0])
		if err != nil {
			return err
		}
		if result != nil {
			table := app.console.CreateTable()
			table.AddColumn("Key")
			table.AddColumn("URL")
			table.AddRow(result.Key, result.URL)
			app.console.Println(table.Render())
		}
		return nil
	}
}

func (app *CLIApp) checkStorageCmd() *cobra.Command {
	var host, user, token, region string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "check-storage",
		Short: "Check that the object store accepts the configured credentials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := app.config.Storage
			if host == "" {
				host = s.ServerURL
			}
			if user == "" {
				user = s.AccessKey
			}
			if token == "" {
				token = s.SecretKey
			}
			if region == "" {
				region = s.Region
			}

			status := app.console.Status(fmt.Sprintf("Checking connection to %s", host))
			uc := usecase.NewConnectivityUseCase(app.deps.Storage(s))
			result := uc.CheckConnectivity(cmd.Context(), host, user, token, region)
			status.Stop()

			if asJSON {
				data, err := json.MarshalIndent(result, "", "  ")
				if err != nil {
					return err
				}
				app.console.Println(string(data))
			} else if result.Status == entity.ResultSuccess {
				app.console.LogSuccess("%s", result.Message)
			} else {
				app.console.LogError("[%s] %s: %s", result.ErrorCode, result.Message, result.Details)
			}

			if result.Status != entity.ResultSuccess {
				return fmt.Errorf("%s: %s", result.ErrorCode, result.Message)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "S3 endpoint (default: STORAGE_SERVER_URL)")
	cmd.Flags().StringVar(&user, "user", "", "Access key (default: STORAGE_USERNAME)")
	cmd.Flags().StringVar(&token, "token", "", "Secret key (default: STORAGE_PASSWORD)")
	cmd.Flags().StringVar(&region, "region", "", "Region (default: STORAGE_REGION)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the check result as JSON")
	return cmd
}

func (app *CLIApp) recordResultCmd() *cobra.Command {
	var args types.RecordArgs

	cmd := &cobra.Command{
		Use:   "record-result",
		Short: "Append one validation result to a result dump in the output directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			status, err := entity.ParseCheckStatus(args.Status)
			if err != nil {
				return fmt.Errorf("%w: %v", types.ErrMissingStatus, err)
			}
			uc := usecase.NewResultUseCase(app.deps.Dumps, app.deps.Export, app.deps.Metrics, app.console, app.config.OutputDir)
			return uc.WriteResultRecord(args.File, args.Validation, entity.ValidationRecord{
				Namespace: args.Namespace,
				Status:    status,
				Message:   args.Message,
			})
		},
	}

	cmd.Flags().StringVarP(&args.File, "file", "f", "", "Result dump file name, relative to the output directory")
	cmd.Flags().StringVarP(&args.Validation, "validation", "v", "", "Validation name")
	cmd.Flags().StringVarP(&args.Namespace, "namespace", "n", "", "Namespace the validation ran against")
	cmd.Flags().StringVarP(&args.Status, "status", "s", "", "Check status: OK, ERROR, NONE or 0, 1, 2")
	cmd.Flags().StringVarP(&args.Message, "message", "m", "", "Optional message shown as a tooltip in the report")
	for _, name := range []string{"file", "validation", "namespace", "status"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func (app *CLIApp) generateReportCmd() *cobra.Command {
	var args types.ReportArgs

	cmd := &cobra.Command{
		Use:   "generate-report",
		Short: "Render a result dump as a colored namespace by validation table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc := usecase.NewResultUseCase(app.deps.Dumps, app.deps.Export, app.deps.Metrics, app.console, app.config.OutputDir)
			written, err := uc.GenerateReportFromResultDump(args.DumpFile, args.OutputFile, args.Formats...)
			if err != nil {
				return err
			}
			for _, path := range written {
				app.console.LogInfo("Report written to %s", filepath.Clean(path))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&args.DumpFile, "dump", "d", "", "Result dump YAML file")
	cmd.Flags().StringVarP(&args.OutputFile, "output", "o", "", "HTML report file; other formats use the same name with their extension")
	cmd.Flags().StringSliceVarP(&args.Formats, "format", "y", []string{usecase.FormatHTML}, "Report formats: html, json, pdf")
	_ = cmd.MarkFlagRequired("dump")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}
