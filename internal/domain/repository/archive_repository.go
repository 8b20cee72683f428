package repository

import "bytes"

// ArchiveRepository packs generated report files into an in-memory zip.
// A nil reader with a nil error means there was nothing to pack.
type ArchiveRepository interface {
	ZipByBaseName(dir, baseName string) (*bytes.Reader, error)
	ZipByNotebookPath(dir, notebookPath string) (*bytes.Reader, error)
}
