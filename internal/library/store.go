// Package library implements the record store: an ordered list of books held
// in memory and mirrored to a single JSON file.
//
// Every mutation rewrites the whole file. Writes go through a temp file and
// rename, so readers see either the old or the new document, never a partial
// one. A Store is not safe for concurrent use; callers that share a file
// across processes serialize mutations with [WithLock].
package library

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/calvinalkan/shelf/internal/book"

	"github.com/google/uuid"
	"github.com/natefinch/atomic"
)

const (
	dirPerms  = 0o750
	filePerms = 0o600
)

// Store owns the library and its file.
type Store struct {
	path  string
	books []book.Book

	// outdated is set while the file on disk is in the legacy format or
	// lacks ids that were assigned in memory.
	outdated bool

	now   func() time.Time
	newID func() (string, error)
	log   *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the time source used to stamp date_added.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDFunc sets the id generator.
func WithIDFunc(newID func() (string, error)) Option {
	return func(s *Store) { s.newID = newID }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.log = l }
}

// NewID returns a random UUID string.
func NewID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}

	return id.String(), nil
}

// Open loads the library stored at path. A missing file is an empty
// library. A file that cannot be decoded fails with [ErrMalformedDocument]
// and is left untouched.
//
// Files in the legacy array format, or with records missing ids, are given
// ids in memory only. Open never writes; see [Store.NeedsRewrite].
func Open(path string, opts ...Option) (*Store, error) {
	if path == "" {
		return nil, errors.New("open library: path is empty")
	}

	s := &Store{
		path:  filepath.Clean(path),
		now:   time.Now,
		newID: NewID,
		log:   slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(s)
	}

	err := s.Reload()
	if err != nil {
		return nil, err
	}

	return s, nil
}

// Path returns the library file path.
func (s *Store) Path() string {
	return s.path
}

// Reload replaces the in-memory library with the file contents. It never
// writes the file.
func (s *Store) Reload() error {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.log.Debug("library file not found, starting empty", "path", s.path)
		s.books = []book.Book{}
		s.outdated = false

		return nil
	}

	if err != nil {
		return fmt.Errorf("reading library: %w", err)
	}

	doc, err := decodeDocument(data)
	if err != nil {
		return fmt.Errorf("%s: %w", s.path, err)
	}

	s.books = doc.books
	s.outdated = doc.legacy || doc.missingIDs > 0

	if doc.missingIDs > 0 {
		err = s.assignMissingIDs()
		if err != nil {
			return err
		}

		s.log.Debug("assigned ids in memory", "path", s.path, "count", doc.missingIDs, "legacy", doc.legacy)
	}

	s.log.Debug("library loaded", "path", s.path, "books", len(s.books))

	return nil
}

func (s *Store) assignMissingIDs() error {
	for i := range s.books {
		if s.books[i].ID != "" {
			continue
		}

		id, err := s.newID()
		if err != nil {
			return err
		}

		s.books[i].ID = id
	}

	return nil
}

// save writes the full library, replacing the previous file.
func (s *Store) save() error {
	data, err := encodeDocument(s.books)
	if err != nil {
		return err
	}

	err = os.MkdirAll(filepath.Dir(s.path), dirPerms)
	if err != nil {
		return fmt.Errorf("creating library directory: %w", err)
	}

	err = atomic.WriteFile(s.path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("writing library: %w", err)
	}

	// atomic.WriteFile doesn't set permissions for new files
	err = os.Chmod(s.path, filePerms)
	if err != nil {
		return fmt.Errorf("setting library permissions: %w", err)
	}

	s.outdated = false

	s.log.Debug("library saved", "path", s.path, "books", len(s.books), "bytes", len(data))

	return nil
}

// NeedsRewrite reports whether the file is in the legacy format or had
// books without ids. Ids assigned to such books only persist once the file
// is rewritten, so callers holding [WithLock] should call [Store.Rewrite].
func (s *Store) NeedsRewrite() bool {
	return s.outdated
}

// Rewrite saves the library in the current document format without
// changing any book. Callers sharing the file must hold [WithLock].
func (s *Store) Rewrite() error {
	return s.save()
}

// Len returns the number of books.
func (s *Store) Len() int {
	return len(s.books)
}

// All returns a copy of the books in library order.
func (s *Store) All() []book.Book {
	return slices.Clone(s.books)
}

// Document returns a copy of the library in its on-disk shape.
func (s *Store) Document() Document {
	books := s.All()
	if books == nil {
		books = []book.Book{}
	}

	return Document{Version: DocumentVersion, Books: books}
}

// Get returns the book ref points to and its current position.
func (s *Store) Get(ref Ref) (int, book.Book, error) {
	pos, err := ref.resolve(s.books)
	if err != nil {
		return -1, book.Book{}, err
	}

	return pos, s.books[pos], nil
}

// Add validates in, stamps it with a new id and today's date, appends it and
// saves. On any error the library is unchanged.
func (s *Store) Add(in book.Input) (book.Book, error) {
	id, err := s.newID()
	if err != nil {
		return book.Book{}, err
	}

	b, err := book.New(id, in, s.now())
	if err != nil {
		return book.Book{}, err
	}

	s.books = append(s.books, b)

	err = s.save()
	if err != nil {
		s.books = s.books[:len(s.books)-1]

		return book.Book{}, err
	}

	s.log.Debug("book added", "id", b.ID, "title", b.Title)

	return b, nil
}

// Update applies p to the book ref points to and saves. The id and
// date_added never change. On any error the library is unchanged.
func (s *Store) Update(ref Ref, p book.Patch) (book.Book, error) {
	if p.Empty() {
		return book.Book{}, ErrNoChanges
	}

	pos, err := ref.resolve(s.books)
	if err != nil {
		return book.Book{}, err
	}

	prev := s.books[pos]

	updated, err := p.Apply(prev)
	if err != nil {
		return book.Book{}, err
	}

	s.books[pos] = updated

	err = s.save()
	if err != nil {
		s.books[pos] = prev

		return book.Book{}, err
	}

	s.log.Debug("book updated", "id", updated.ID, "pos", pos)

	return updated, nil
}

// Delete removes the book ref points to and saves. It returns the removed
// book. On any error the library is unchanged.
func (s *Store) Delete(ref Ref) (book.Book, error) {
	pos, err := ref.resolve(s.books)
	if err != nil {
		return book.Book{}, err
	}

	prev := s.books
	removed := prev[pos]

	s.books = slices.Delete(slices.Clone(prev), pos, pos+1)

	err = s.save()
	if err != nil {
		s.books = prev

		return book.Book{}, err
	}

	s.log.Debug("book deleted", "id", removed.ID, "pos", pos)

	return removed, nil
}
