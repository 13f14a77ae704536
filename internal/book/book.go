package book

import (
	"errors"
	"fmt"
)

// ErrBadRequest is returned when a request is missing a required parameter.
var ErrBadRequest = errors.New("bad request")

// Book is one finished book. Title is the informal key, compared case-insensitively.
type Book struct {
	Title  string `json:"title"`
	Author string `json:"author"`
}

// StorageError reports a failure reading, writing or parsing the collection.
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// AddResult describes the outcome of Service.Add.
type AddResult struct {
	Book  Book
	Added bool
}
