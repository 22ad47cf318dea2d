package library

import (
	"iter"
	"strings"

	"github.com/calvinalkan/shelf/internal/book"

	"golang.org/x/text/cases"
)

// Search returns the books whose title or author contains term, ignoring
// case. A blank term matches nothing.
//
// The sequence is lazy and can be ranged over more than once. Each range
// sees the library as it is when the range starts.
func (s *Store) Search(term string) iter.Seq[book.Book] {
	return func(yield func(book.Book) bool) {
		for _, b := range s.Matches(term) {
			if !yield(b) {
				return
			}
		}
	}
}

// Matches is like [Store.Search] but also yields each book's position.
func (s *Store) Matches(term string) iter.Seq2[int, book.Book] {
	return func(yield func(int, book.Book) bool) {
		fold := cases.Fold()

		needle := fold.String(strings.TrimSpace(term))
		if needle == "" {
			return
		}

		books := s.books

		for i, b := range books {
			if !strings.Contains(fold.String(b.Title), needle) &&
				!strings.Contains(fold.String(b.Author), needle) {
				continue
			}

			if !yield(i, b) {
				return
			}
		}
	}
}
