package repository

import (
	"github.com/diillson/envcheck-reports/internal/domain/entity"
)

type ExportRepository interface {
	ExportGridToHTML(grid entity.StatusGrid, outputFile string) (string, error)
	ExportGridToJSON(grid entity.StatusGrid, outputFile string) (string, error)
	ExportGridToPDF(grid entity.StatusGrid, outputFile string) (string, error)
}
