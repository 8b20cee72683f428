package resultdump

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/diillson/envcheck-reports/internal/domain/entity"
	"github.com/diillson/envcheck-reports/internal/domain/repository"
	"github.com/diillson/envcheck-reports/internal/shared/types"
)

// YAMLRepositoryImpl implementa o ResultDumpRepository com um arquivo YAML.
// O arquivo é lido e reescrito por inteiro, sem lock.
type YAMLRepositoryImpl struct{}

// NewYAMLRepository cria uma nova implementação do ResultDumpRepository.
func NewYAMLRepository() repository.ResultDumpRepository {
	return &YAMLRepositoryImpl{}
}

// Load lê o dump. Arquivo inexistente devolve types.ErrResultDumpNotFound.
func (r *YAMLRepositoryImpl) Load(path string) (*entity.ResultDump, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", types.ErrResultDumpNotFound, path)
		}
		return nil, fmt.Errorf("error reading result dump: %w", err)
	}

	dump := entity.NewResultDump()
	if len(bytes.TrimSpace(data)) == 0 {
		return dump, nil
	}
	if err := yaml.Unmarshal(data, dump); err != nil {
		return nil, fmt.Errorf("error parsing result dump %s: %w", path, err)
	}
	return dump, nil
}

// Save trunca o arquivo e grava o dump completo.
func (r *YAMLRepositoryImpl) Save(path string, dump *entity.ResultDump) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("error creating result dump directory '%s': %w", dir, err)
		}
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(dump); err != nil {
		return fmt.Errorf("error encoding result dump: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("error encoding result dump: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("error opening result dump: %w", err)
	}
	if _, err := f.Write(buf.Bytes()); err != nil {
		f.Close()
		return fmt.Errorf("error writing result dump: %w", err)
	}
	return f.Close()
}
