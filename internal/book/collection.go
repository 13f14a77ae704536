package book

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Exists reports whether any book has the given title, ignoring case.
func Exists(title string, books []Book) bool {
	for _, b := range books {
		if strings.EqualFold(b.Title, title) {
			return true
		}
	}
	return false
}

// Insert returns a new collection with {title, author} added, sorted by title.
// It does not check for duplicates and never modifies books.
func Insert(title, author string, books []Book) []Book {
	out := make([]Book, 0, len(books)+1)
	out = append(out, books...)
	out = append(out, Book{Title: title, Author: author})
	sortByTitle(out)
	return out
}

// SortByTitle returns a copy of books sorted by title, ordinal and stable.
func SortByTitle(books []Book) []Book {
	out := slices.Clone(books)
	sortByTitle(out)
	return out
}

func sortByTitle(books []Book) {
	slices.SortStableFunc(books, func(a, b Book) int {
		return strings.Compare(a.Title, b.Title)
	})
}

var lineBreaks = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// Normalize lowercases a stored field and folds \r\n and \r to \n, the
// form a quoted CSV field reads back as.
func Normalize(s string) string {
	return strings.ToLower(lineBreaks.Replace(s))
}

// TitleCase uppercases the first letter of every word. Display only.
func TitleCase(s string) string {
	return cases.Title(language.Und).String(s)
}
