package book

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
)

const fileHeader = ",title,author\n"

// FileRepo stores the collection as comma-delimited text at a single path.
// Every Save rewrites the whole file in place; a crash mid-write can leave it truncated.
type FileRepo struct {
	path   string
	logger *slog.Logger
}

func NewFileRepo(path string, logger *slog.Logger) *FileRepo {
	return &FileRepo{path: path, logger: logger}
}

// Path returns the file backing the repository.
func (r *FileRepo) Path() string {
	return r.path
}

// Load reads the collection, creating a header-only file first if none exists.
func (r *FileRepo) Load(ctx context.Context) ([]Book, error) {
	if err := r.ensureFile(); err != nil {
		return nil, err
	}

	f, err := os.Open(r.path)
	if err != nil {
		return nil, &StorageError{Op: "load", Path: r.path, Err: err}
	}
	defer f.Close()

	books, err := ReadCollection(f)
	if err != nil {
		return nil, &StorageError{Op: "load", Path: r.path, Err: err}
	}

	r.logger.DebugContext(ctx, "collection loaded", "path", r.path, "count", len(books))
	return books, nil
}

// Save overwrites the file with a header followed by one indexed row per book.
func (r *FileRepo) Save(ctx context.Context, books []Book) error {
	f, err := os.OpenFile(r.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return &StorageError{Op: "save", Path: r.path, Err: err}
	}

	if err := WriteCollection(f, books); err != nil {
		_ = f.Close()
		return &StorageError{Op: "save", Path: r.path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &StorageError{Op: "save", Path: r.path, Err: err}
	}

	r.logger.DebugContext(ctx, "collection saved", "path", r.path, "count", len(books))
	return nil
}

func (r *FileRepo) ensureFile() error {
	info, err := os.Stat(r.path)
	switch {
	case err == nil:
		if !info.Mode().IsRegular() {
			return &StorageError{Op: "load", Path: r.path, Err: errors.New("not a regular file")}
		}
		return nil
	case errors.Is(err, fs.ErrNotExist):
		if err := os.WriteFile(r.path, []byte(fileHeader), 0o644); err != nil {
			return &StorageError{Op: "create", Path: r.path, Err: err}
		}
		r.logger.Info("created empty collection file", "path", r.path)
		return nil
	default:
		return &StorageError{Op: "load", Path: r.path, Err: err}
	}
}

// ReadCollection decodes a collection. The first row is a header and is discarded.
// A three-column header means rows carry a leading index column, which is ignored.
// An empty input is an empty collection.
func ReadCollection(rd io.Reader) ([]Book, error) {
	cr := csv.NewReader(rd)

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return []Book{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	var offset int
	switch len(header) {
	case 3:
		offset = 1
	case 2:
		offset = 0
	default:
		return nil, fmt.Errorf("header has %d columns, want title and author", len(header))
	}
	cr.FieldsPerRecord = len(header)

	books := []Book{}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(books), err)
		}
		books = append(books, Book{Title: rec[offset], Author: rec[offset+1]})
	}
	return books, nil
}

// WriteCollection encodes books in their current order with a 0-based row index.
func WriteCollection(w io.Writer, books []Book) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"", "title", "author"}); err != nil {
		return err
	}
	for i, b := range books {
		if err := cw.Write([]string{strconv.Itoa(i), b.Title, b.Author}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
