package repository

import "github.com/diillson/envcheck-reports/internal/domain/entity"

// NotebookRepository reads and stamps execution metadata of executed notebooks.
type NotebookRepository interface {
	// FindByBaseName returns the newest executed notebook in dir for baseName, or "" if none.
	FindByBaseName(dir, baseName string) (string, error)
	// ExecutionData returns nil when the notebook carries no execution metadata.
	ExecutionData(path string) (*entity.ExecutionData, error)
	StampS3Link(path, url string) error
}
