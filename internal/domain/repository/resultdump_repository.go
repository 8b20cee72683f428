package repository

import "github.com/diillson/envcheck-reports/internal/domain/entity"

// ResultDumpRepository persists the validation result scratch file.
type ResultDumpRepository interface {
	Load(path string) (*entity.ResultDump, error)
	Save(path string, dump *entity.ResultDump) error
}
