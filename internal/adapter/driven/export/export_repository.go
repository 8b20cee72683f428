package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strconv"

	"github.com/Masterminds/sprig"
	"github.com/jung-kurt/gofpdf"

	"github.com/diillson/envcheck-reports/internal/domain/entity"
	"github.com/diillson/envcheck-reports/internal/domain/repository"
)

// rgb maps the named colors of the grid to PDF fill colors.
var rgb = map[string][3]int{
	entity.ColorHeader:  {128, 128, 128},
	entity.ColorOK:      {143, 188, 143},
	entity.ColorError:   {233, 150, 122},
	entity.ColorNone:    {211, 211, 211},
	entity.ColorMissing: {255, 255, 255},
}

// ExportRepositoryImpl implementa o ExportRepository.
type ExportRepositoryImpl struct {
	tmpl *template.Template
}

// NewExportRepository cria uma nova implementação do ExportRepository.
func NewExportRepository() repository.ExportRepository {
	return &ExportRepositoryImpl{
		tmpl: template.Must(template.New("status-grid").Funcs(sprig.FuncMap()).Parse(gridTemplate)),
	}
}

const gridTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{ .Title }}</title>
<style>
table { border-collapse: collapse; font-family: Arial, Helvetica, sans-serif; font-size: 13px; }
th, td { border: 1px solid {{ .HeaderColor | lower }}; padding: 4px 8px; text-align: center; }
th { background-color: {{ .HeaderColor }}; color: {{ .HeaderText }}; }
.tooltip { position: relative; display: inline-block; }
.tooltip .tooltiptext { visibility: hidden; background-color: #555; color: #fff; border-radius: 4px; padding: 4px 6px; position: absolute; z-index: 1; bottom: 125%; left: 50%; transform: translateX(-50%); white-space: pre-wrap; min-width: 160px; }
.tooltip:hover .tooltiptext { visibility: visible; }
</style>
</head>
<body>
<table>
<tr>{{ range .Grid.Headers }}<th>{{ . }}</th>{{ end }}</tr>
{{- range .Grid.Rows }}
<tr><td style="background-color: {{ $.HeaderColor }}"><b style="color: White">{{ .Index }}</b></td><td>{{ .Namespace }}</td>
{{- range .Cells }}<td style="background-color: {{ .Color }}">{{ if .Message }}<div class="tooltip">{{ .Label }}<span class="tooltiptext" style="font-size: 11px">{{ .Message | trim }}</span></div>{{ else }}{{ .Label }}{{ end }}</td>{{ end }}</tr>
{{- end }}
</table>
</body>
</html>
`

type gridView struct {
	Title       string
	HeaderColor string
	HeaderText  string
	Grid        entity.StatusGrid
}

// ExportGridToHTML renderiza a tabela de status, sobrescrevendo outputFile.
func (r *ExportRepositoryImpl) ExportGridToHTML(grid entity.StatusGrid, outputFile string) (string, error) {
	if err := ensureDir(outputFile); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	view := gridView{
		Title:       trimExt(filepath.Base(outputFile)),
		HeaderColor: entity.ColorHeader,
		HeaderText:  entity.ColorHeaderText,
		Grid:        grid,
	}
	if err := r.tmpl.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("error rendering HTML report: %w", err)
	}
	if err := os.WriteFile(outputFile, buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("error writing HTML report: %w", err)
	}
	return filepath.Abs(outputFile)
}

func (r *ExportRepositoryImpl) ExportGridToJSON(grid entity.StatusGrid, outputFile string) (string, error) {
	if err := ensureDir(outputFile); err != nil {
		return "", err
	}

	file, err := os.Create(outputFile)
	if err != nil {
		return "", fmt.Errorf("error creating JSON file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(grid); err != nil {
		return "", fmt.Errorf("error encoding JSON data: %w", err)
	}
	return filepath.Abs(outputFile)
}

func (r *ExportRepositoryImpl) ExportGridToPDF(grid entity.StatusGrid, outputFile string) (string, error) {
	if err := ensureDir(outputFile); err != nil {
		return "", err
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 10, tr("Environment Checker - Validation Results"))
	pdf.Ln(12)

	pageWidth, _ := pdf.GetPageSize()
	usable := pageWidth - 20
	indexW, nsW := 12.0, 55.0
	cellW := 30.0
	if n := len(grid.Headers) - 2; n > 0 {
		cellW = (usable - indexW - nsW) / float64(n)
	}
	widths := func(i int) float64 {
		switch i {
		case 0:
			return indexW
		case 1:
			return nsW
		default:
			return cellW
		}
	}
	const rowH = 7.0

	setFill := func(name string) {
		c, ok := rgb[name]
		if !ok {
			c = rgb[entity.ColorMissing]
		}
		pdf.SetFillColor(c[0], c[1], c[2])
	}

	pdf.SetFont("Arial", "B", 9)
	pdf.SetTextColor(255, 255, 255)
	setFill(entity.ColorHeader)
	for i, h := range grid.Headers {
		pdf.CellFormat(widths(i), rowH, tr(truncate(h, 28)), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, row := range grid.Rows {
		pdf.SetTextColor(255, 255, 255)
		setFill(entity.ColorHeader)
		pdf.CellFormat(widths(0), rowH, strconv.Itoa(row.Index), "1", 0, "C", true, 0, "")
		pdf.SetTextColor(0, 0, 0)
		setFill(entity.ColorMissing)
		pdf.CellFormat(widths(1), rowH, tr(truncate(row.Namespace, 32)), "1", 0, "L", true, 0, "")
		for i, cell := range row.Cells {
			setFill(cell.Color)
			pdf.CellFormat(widths(i+2), rowH, tr(cell.Label), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
	}

	// Mensagens de cada validação, já que o PDF não tem tooltip.
	var notes []string
	for _, row := range grid.Rows {
		for _, cell := range row.Cells {
			if cell.Message == "" {
				continue
			}
			notes = append(notes, fmt.Sprintf("%s / %s [%s]: %s", row.Namespace, cell.Validation, cell.Label, cell.Message))
		}
	}
	if len(notes) > 0 {
		pdf.Ln(6)
		pdf.SetFont("Arial", "B", 11)
		pdf.Cell(0, 8, "Messages")
		pdf.Ln(8)
		pdf.SetFont("Arial", "", 8)
		for _, note := range notes {
			pdf.MultiCell(usable, 4, tr(note), "", "L", false)
		}
	}

	if err := pdf.OutputFileAndClose(outputFile); err != nil {
		return "", fmt.Errorf("error saving PDF file: %w", err)
	}
	return filepath.Abs(outputFile)
}

// --- Funções Auxiliares ---

func ensureDir(outputFile string) error {
	dir := filepath.Dir(outputFile)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating output directory '%s': %w", dir, err)
	}
	return nil
}

func trimExt(name string) string {
	return name[:len(name)-len(filepath.Ext(name))]
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
