// Package storage implements the file and CSV outputs written by plugins.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rsnakamura/theape/internal/core/domain"
	"go.trai.ch/zerr"
)

// maxSuffix bounds the search for a free file name.
const maxSuffix = 9999

// FileStorage writes plugin output below Dir.
// The zero FileStorage is not open; Open returns an opened copy.
type FileStorage struct {
	Dir       string
	Overwrite bool

	name string
	file *os.File
}

// NewFileStorage creates an unopened storage rooted at dir.
func NewFileStorage(dir string, overwrite bool) *FileStorage {
	return &FileStorage{Dir: filepath.Clean(dir), Overwrite: overwrite}
}

// Open creates Dir and opens name inside it for writing. Unless Overwrite is
// set an existing file is left alone and a numbered name is used instead:
// "name_0001.ext", "name_0002.ext" and so on.
func (s *FileStorage) Open(name string) (*FileStorage, error) {
	if name == "" || filepath.Base(name) != name {
		return nil, zerr.With(zerr.Wrap(domain.ErrStorage, "file name must be a base name"), "name", name)
	}
	if err := os.MkdirAll(s.Dir, domain.DirPerm); err != nil {
		return nil, zerr.With(zerr.Wrap(errors.Join(domain.ErrStorage, err), "failed to create output directory"), "dir", s.Dir)
	}

	if s.Overwrite {
		path := filepath.Join(s.Dir, name)
		// #nosec G304 -- path is confined to the output directory
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, domain.FilePerm)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(errors.Join(domain.ErrStorage, err), "failed to open output file"), "path", path)
		}
		return &FileStorage{Dir: s.Dir, Overwrite: true, name: name, file: f}, nil
	}

	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	candidate := name
	for i := 1; ; i++ {
		path := filepath.Join(s.Dir, candidate)
		// #nosec G304 -- path is confined to the output directory
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, domain.FilePerm)
		if err == nil {
			return &FileStorage{Dir: s.Dir, name: candidate, file: f}, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return nil, zerr.With(zerr.Wrap(errors.Join(domain.ErrStorage, err), "failed to open output file"), "path", path)
		}
		if i > maxSuffix {
			return nil, zerr.With(zerr.Wrap(domain.ErrStorage, "no free file name left"), "name", name)
		}
		candidate = fmt.Sprintf("%s_%04d%s", stem, i, ext)
	}
}

// Name returns the base name of the opened file.
func (s *FileStorage) Name() string {
	return s.name
}

// Path returns the full path of the opened file.
func (s *FileStorage) Path() string {
	if s.name == "" {
		return ""
	}
	return filepath.Join(s.Dir, s.name)
}

// Closed reports whether there is no open file.
func (s *FileStorage) Closed() bool {
	return s.file == nil
}

// Write implements io.Writer.
func (s *FileStorage) Write(p []byte) (int, error) {
	if s.file == nil {
		return 0, zerr.Wrap(errors.Join(domain.ErrStorage, domain.ErrStorageNotOpen), "write called on unopened file")
	}
	n, err := s.file.Write(p)
	if err != nil {
		return n, zerr.With(zerr.Wrap(errors.Join(domain.ErrStorage, err), "write failed"), "path", s.Path())
	}
	return n, nil
}

// WriteLine writes text followed by a newline.
func (s *FileStorage) WriteLine(text string) error {
	_, err := s.Write([]byte(text + "\n"))
	return err
}

// WriteLines writes each text as is.
func (s *FileStorage) WriteLines(texts []string) error {
	for _, text := range texts {
		if _, err := s.Write([]byte(text)); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the file. Closing an unopened storage is a no-op.
func (s *FileStorage) Close() error {
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	if err != nil {
		return zerr.With(zerr.Wrap(errors.Join(domain.ErrStorage, err), "close failed"), "path", s.Path())
	}
	return nil
}

func (s *FileStorage) String() string {
	return "FileStorage: " + s.name
}
