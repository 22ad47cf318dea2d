package library

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/calvinalkan/shelf/internal/book"
)

// DocumentVersion is the version written to the library file.
const DocumentVersion = 1

// Document is the on-disk shape of a library file.
//
//	{"version": 1, "books": [{...}, ...]}
//
// Files holding a bare JSON array of books are read as well; they predate
// the version field and carry no ids.
type Document struct {
	Version int         `json:"version" yaml:"version"`
	Books   []book.Book `json:"books"   yaml:"books"`
}

// decoded is the result of decoding a library file.
type decoded struct {
	books []book.Book

	// legacy is true when the file was a bare array.
	legacy bool

	// missingIDs counts records that had no id.
	missingIDs int
}

// decodeDocument parses and validates data. A zero-length (or whitespace
// only) document is an empty library. Any other problem is reported as
// [ErrMalformedDocument].
func decodeDocument(data []byte) (decoded, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return decoded{books: []book.Book{}}, nil
	}

	var out decoded

	if trimmed[0] == '[' {
		out.legacy = true

		err := json.Unmarshal(trimmed, &out.books)
		if err != nil {
			return decoded{}, fmt.Errorf("%w: %w", ErrMalformedDocument, err)
		}
	} else {
		var doc Document

		dec := json.NewDecoder(bytes.NewReader(trimmed))
		dec.DisallowUnknownFields()

		err := dec.Decode(&doc)
		if err != nil {
			return decoded{}, fmt.Errorf("%w: %w", ErrMalformedDocument, err)
		}

		if dec.More() {
			return decoded{}, fmt.Errorf("%w: trailing data after document", ErrMalformedDocument)
		}

		if doc.Version != DocumentVersion {
			return decoded{}, fmt.Errorf("%w: unsupported version %d", ErrMalformedDocument, doc.Version)
		}

		out.books = doc.Books
	}

	if out.books == nil {
		out.books = []book.Book{}
	}

	seen := make(map[string]int, len(out.books))

	for i := range out.books {
		// Refs are matched in lower case.
		out.books[i].ID = strings.ToLower(strings.TrimSpace(out.books[i].ID))
		b := out.books[i]

		err := b.Validate()
		if err == nil {
			_, err = b.Added()
		}

		if err != nil {
			return decoded{}, fmt.Errorf("%w: book %d: %w", ErrMalformedDocument, i, err)
		}

		if b.ID == "" {
			out.missingIDs++

			continue
		}

		if prev, dup := seen[b.ID]; dup {
			return decoded{}, fmt.Errorf("%w: books %d and %d share id %s", ErrMalformedDocument, prev, i, b.ID)
		}

		seen[b.ID] = i
	}

	return out, nil
}

// encodeDocument renders books in the current document format.
func encodeDocument(books []book.Book) ([]byte, error) {
	if books == nil {
		books = []book.Book{}
	}

	data, err := json.MarshalIndent(Document{Version: DocumentVersion, Books: books}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding library: %w", err)
	}

	return append(data, '\n'), nil
}
