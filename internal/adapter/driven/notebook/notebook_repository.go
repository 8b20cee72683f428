package notebook

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/diillson/envcheck-reports/internal/domain/entity"
	"github.com/diillson/envcheck-reports/internal/domain/repository"
)

// MetadataKey is the notebook metadata object holding execution labels.
const MetadataKey = "metadata.envchecker"

const notebookExt = ".ipynb"

var runSuffixRegex = regexp.MustCompile(`_\d+$`)

// RepositoryImpl implementa o NotebookRepository para notebooks Jupyter (.ipynb).
type RepositoryImpl struct{}

// NewRepository cria uma nova implementação do NotebookRepository.
func NewRepository() repository.NotebookRepository {
	return &RepositoryImpl{}
}

// FindByBaseName returns the most recently modified dir/baseName*.ipynb.
func (r *RepositoryImpl) FindByBaseName(dir, baseName string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("error listing notebooks in '%s': %w", dir, err)
	}

	var newest string
	var newestMod int64
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || filepath.Ext(name) != notebookExt || !strings.HasPrefix(name, baseName) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		mod := info.ModTime().UnixNano()
		if newest == "" || mod > newestMod || (mod == newestMod && name > filepath.Base(newest)) {
			newest = filepath.Join(dir, name)
			newestMod = mod
		}
	}
	return newest, nil
}

// ExecutionData lê os rótulos de execução do notebook.
func (r *RepositoryImpl) ExecutionData(path string) (*entity.ExecutionData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("error reading notebook %s: %w", path, err)
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("notebook %s is not valid JSON", path)
	}

	meta := gjson.GetBytes(data, MetadataKey)
	if !meta.Exists() || !meta.IsObject() {
		return nil, nil
	}
	initiator := meta.Get("initiator").String()
	lastRun := meta.Get("last_run")
	if initiator == "" || !lastRun.Exists() {
		return nil, nil
	}

	exec := &entity.ExecutionData{
		Initiator:  initiator,
		LastRun:    lastRun.Int(),
		Scope:      segment(meta.Get("scope")),
		Env:        segment(meta.Get("env")),
		ReportName: meta.Get("report_name").String(),
		S3Link:     meta.Get("s3_link").String(),
	}
	if exec.ReportName == "" {
		stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		exec.ReportName = runSuffixRegex.ReplaceAllString(stem, "")
	}
	return exec, nil
}

// StampS3Link grava a URL do upload no notebook sem tocar no resto do documento.
func (r *RepositoryImpl) StampS3Link(path, url string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("error accessing notebook %s: %w", path, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error reading notebook %s: %w", path, err)
	}
	updated, err := sjson.SetBytes(data, MetadataKey+".s3_link", url)
	if err != nil {
		return fmt.Errorf("error updating S3 link of %s: %w", path, err)
	}
	if err := os.WriteFile(path, updated, info.Mode().Perm()); err != nil {
		return fmt.Errorf("error writing notebook %s: %w", path, err)
	}
	return nil
}

// segment normalizes a scope/env label: missing or empty values become the null sentinel.
func segment(v gjson.Result) string {
	if !v.Exists() || v.Type == gjson.Null || v.String() == "" {
		return entity.NullSegment
	}
	return v.String()
}
