package archive

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/klauspost/compress/zip"

	"github.com/diillson/envcheck-reports/internal/domain/repository"
)

// ZipRepositoryImpl implementa o ArchiveRepository gerando zips em memória.
type ZipRepositoryImpl struct{}

// NewZipRepository cria uma nova implementação do ArchiveRepository.
func NewZipRepository() repository.ArchiveRepository {
	return &ZipRepositoryImpl{}
}

// ZipByBaseName packs every file in dir whose name contains baseName.
func (r *ZipRepositoryImpl) ZipByBaseName(dir, baseName string) (*bytes.Reader, error) {
	if baseName == "" {
		return nil, errors.New("report base name is required")
	}
	files, err := collect(dir, func(name string) bool {
		return strings.Contains(name, baseName)
	})
	if err != nil {
		return nil, err
	}
	return pack(files)
}

// ZipByNotebookPath packs the executed notebook plus every report in its
// directory and in dir that starts with the notebook stem.
func (r *ZipRepositoryImpl) ZipByNotebookPath(dir, notebookPath string) (*bytes.Reader, error) {
	stem := strings.TrimSuffix(filepath.Base(notebookPath), filepath.Ext(notebookPath))
	if stem == "" || stem == "." {
		return nil, fmt.Errorf("invalid notebook path %q", notebookPath)
	}
	match := func(name string) bool { return strings.HasPrefix(name, stem) }

	seen := make(map[string]bool)
	var files []string
	for _, d := range uniqueDirs(filepath.Dir(notebookPath), dir) {
		found, err := collect(d, match)
		if err != nil {
			return nil, err
		}
		for _, f := range found {
			abs, err := filepath.Abs(f)
			if err != nil {
				abs = f
			}
			if seen[abs] {
				continue
			}
			seen[abs] = true
			files = append(files, f)
		}
	}
	return pack(files)
}

func uniqueDirs(dirs ...string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, d := range dirs {
		if d == "" {
			continue
		}
		key := filepath.Clean(d)
		if abs, err := filepath.Abs(d); err == nil {
			key = abs
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, d)
	}
	return out
}

func collect(dir string, match func(name string) bool) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("error listing reports in '%s': %w", dir, err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !match(e.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// pack returns nil when there is nothing to archive.
func pack(files []string) (*bytes.Reader, error) {
	if len(files) == 0 {
		return nil, nil
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	used := make(map[string]int)
	for _, path := range files {
		name := filepath.Base(path)
		if n := used[name]; n > 0 {
			ext := filepath.Ext(name)
			name = fmt.Sprintf("%s_%d%s", strings.TrimSuffix(name, ext), n, ext)
		}
		used[filepath.Base(path)]++
		if err := addFile(zw, path, name); err != nil {
			zw.Close()
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("error finishing zip: %w", err)
	}
	return bytes.NewReader(buf.Bytes()), nil
}

func addFile(zw *zip.Writer, path, name string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("error opening report %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("error reading report %s: %w", path, err)
	}
	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return fmt.Errorf("error building zip header for %s: %w", path, err)
	}
	header.Name = name
	header.Method = zip.Deflate

	w, err := zw.CreateHeader(header)
	if err != nil {
		return fmt.Errorf("error adding %s to zip: %w", path, err)
	}
	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("error compressing %s: %w", path, err)
	}
	return nil
}
