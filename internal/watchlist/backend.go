package watchlist

import (
	"errors"
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"
)

// Backend persists named records as opaque blobs. *db.Store satisfies it.
type Backend interface {
	// Get returns ok=false when the record has never been written.
	Get(key string) (value []byte, ok bool, err error)
	Set(key string, value []byte) error
}

// FileBackend keeps each record in <dir>/<key>.json.
type FileBackend struct {
	fs  afero.Fs
	dir string
}

func NewFileBackend(fsys afero.Fs, dir string) *FileBackend {
	return &FileBackend{fs: fsys, dir: dir}
}

func (b *FileBackend) path(key string) string {
	return filepath.Join(b.dir, key+".json")
}

func (b *FileBackend) Get(key string) ([]byte, bool, error) {
	data, err := afero.ReadFile(b.fs, b.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Set writes a temp file and renames it over the record.
func (b *FileBackend) Set(key string, value []byte) error {
	if err := b.fs.MkdirAll(b.dir, 0755); err != nil {
		return err
	}
	target := b.path(key)
	tmp := target + ".tmp"
	if err := afero.WriteFile(b.fs, tmp, value, 0644); err != nil {
		return err
	}
	return b.fs.Rename(tmp, target)
}
