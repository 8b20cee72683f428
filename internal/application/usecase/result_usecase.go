package usecase

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/diillson/envcheck-reports/internal/domain/entity"
	"github.com/diillson/envcheck-reports/internal/domain/repository"
	"github.com/diillson/envcheck-reports/internal/shared/types"
)

// Report formats accepted by GenerateReportFromResultDump.
const (
	FormatHTML = "html"
	FormatJSON = "json"
	FormatPDF  = "pdf"
)

// ResultUseCase collects validation results and turns them into a status report.
type ResultUseCase struct {
	dumps     repository.ResultDumpRepository
	export    repository.ExportRepository
	metrics   repository.MetricsRepository
	console   types.ConsoleInterface
	outputDir string
}

// NewResultUseCase creates a new result use case. Records are written below outputDir.
func NewResultUseCase(
	dumps repository.ResultDumpRepository,
	export repository.ExportRepository,
	metrics repository.MetricsRepository,
	console types.ConsoleInterface,
	outputDir string,
) *ResultUseCase {
	return &ResultUseCase{
		dumps:     dumps,
		export:    export,
		metrics:   metrics,
		console:   console,
		outputDir: outputDir,
	}
}

// WriteResultRecord appends record under validationName in {outputDir}/{filename}.
// The whole file is read, extended and rewritten; concurrent writers are not coordinated.
func (uc *ResultUseCase) WriteResultRecord(filename, validationName string, record entity.ValidationRecord) error {
	if strings.TrimSpace(record.Namespace) == "" {
		return types.ErrMissingNamespace
	}
	if !record.Status.Valid() {
		return types.ErrMissingStatus
	}

	path := filepath.Join(uc.outputDir, filename)
	dump, err := uc.dumps.Load(path)
	if err != nil {
		if !errors.Is(err, types.ErrResultDumpNotFound) {
			uc.console.LogDebug("Starting a new result dump, could not read %s: %v", path, err)
		}
		dump = entity.NewResultDump()
	}

	dump.Append(validationName, record)

	if err := uc.dumps.Save(path, dump); err != nil {
		if errors.Is(err, fs.ErrPermission) {
			uc.console.LogWarning("File %s not created. The record-result command should only be called for bulk running. Try running it through the .runNotebooks.sh script.", path)
			return nil
		}
		return err
	}
	uc.metrics.ObserveRecord(validationName)
	return nil
}

// BuildStatusGrid pivots dump into one row per namespace and one column per validation.
func BuildStatusGrid(dump *entity.ResultDump) (entity.StatusGrid, error) {
	validations := dump.Validations()
	grid := entity.StatusGrid{
		Headers: append([]string{"", "namespace"}, validations...),
	}

	for i, namespace := range dump.Namespaces() {
		row := entity.GridRow{Index: i + 1, Namespace: namespace}
		for _, validation := range validations {
			cell := entity.GridCell{Validation: validation, Color: entity.ColorMissing}
			if record, ok := dump.Lookup(validation, namespace); ok {
				if !record.Status.Valid() {
					return entity.StatusGrid{}, fmt.Errorf("%w %d in %s for namespace %s", types.ErrUnknownStatus, int(record.Status), validation, namespace)
				}
				cell.Label = record.Status.String()
				cell.Message = record.Message
				cell.Color = entity.StatusColor(record.Status)
			}
			row.Cells = append(row.Cells, cell)
		}
		grid.Rows = append(grid.Rows, row)
	}
	return grid, nil
}

// GenerateReportFromResultDump renders the dump at dumpFile into reportFile. Extra
// formats are written next to it with the matching extension. Returns written paths.
func (uc *ResultUseCase) GenerateReportFromResultDump(dumpFile, reportFile string, formats ...string) ([]string, error) {
	dump, err := uc.dumps.Load(dumpFile)
	if err != nil {
		return nil, err
	}
	grid, err := BuildStatusGrid(dump)
	if err != nil {
		return nil, err
	}

	if len(formats) == 0 {
		formats = []string{FormatHTML}
	}
	base := strings.TrimSuffix(reportFile, filepath.Ext(reportFile))

	var written []string
	for _, format := range formats {
		var path string
		switch strings.ToLower(strings.TrimSpace(format)) {
		case FormatHTML:
			path, err = uc.export.ExportGridToHTML(grid, reportFile)
		case FormatJSON:
			path, err = uc.export.ExportGridToJSON(grid, base+".json")
		case FormatPDF:
			path, err = uc.export.ExportGridToPDF(grid, base+".pdf")
		default:
			uc.console.LogWarning("Unsupported report format: %s", format)
			continue
		}
		if err != nil {
			return written, err
		}
		written = append(written, path)
	}

	uc.console.LogSuccess("Validation report for %d namespaces and %d validations generated", len(grid.Rows), len(grid.Headers)-2)
	return written, nil
}
