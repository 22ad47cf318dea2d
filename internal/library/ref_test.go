package library_test

import (
	"errors"
	"testing"

	"github.com/calvinalkan/shelf/internal/book"
	"github.com/calvinalkan/shelf/internal/library"
)

func TestParseRef(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    string
		wantErr error
	}{
		{"0", "#0", nil},
		{"#0", "#0", nil},
		{"12", "#12", nil},
		{"#1234", "#1234", nil},
		{"1234", "1234", nil},
		{"AbCd12", "abcd12", nil},
		{" 7 ", "#7", nil},
		{"-1", "#-1", nil},
		{"", "", library.ErrInvalidRef},
		{"#x", "", library.ErrInvalidRef},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			t.Parallel()

			ref, err := library.ParseRef(tc.input)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("ParseRef(%q) err=%v, want=%v", tc.input, err, tc.wantErr)
			}

			if err == nil && ref.String() != tc.want {
				t.Errorf("ParseRef(%q) = %s, want %s", tc.input, ref, tc.want)
			}
		})
	}
}

func TestGetByIDPrefix(t *testing.T) {
	t.Parallel()

	ids := []string{
		"abcd1111-0000-4000-8000-000000000000",
		"abcd2222-0000-4000-8000-000000000000",
		"ef010000-0000-4000-8000-000000000000",
	}
	next := 0

	s, err := library.Open(t.TempDir()+"/books.json", library.WithIDFunc(func() (string, error) {
		id := ids[next]
		next++

		return id, nil
	}))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	for _, title := range []string{"A", "B", "C"} {
		mustAdd(t, s, book.Input{Title: title, Author: "Anon"})
	}

	tests := []struct {
		ref       string
		wantTitle string
		wantPos   int
		wantErr   error
	}{
		{"abcd1", "A", 0, nil},
		{"ABCD2", "B", 1, nil},
		{"ef01", "C", 2, nil},
		{ids[1], "B", 1, nil},
		{"abcd", "", 0, library.ErrAmbiguousID},
		{"ffff", "", 0, library.ErrNotFound},
		{"#2", "C", 2, nil},
		{"#3", "", 0, library.ErrOutOfRange},
	}

	for _, tc := range tests {
		ref, err := library.ParseRef(tc.ref)
		if err != nil {
			t.Fatalf("ParseRef(%q): %v", tc.ref, err)
		}

		pos, got, err := s.Get(ref)
		if !errors.Is(err, tc.wantErr) {
			t.Errorf("Get(%s) err=%v, want=%v", tc.ref, err, tc.wantErr)

			continue
		}

		if err != nil {
			continue
		}

		if got.Title != tc.wantTitle || pos != tc.wantPos {
			t.Errorf("Get(%s) = (%d, %q), want (%d, %q)", tc.ref, pos, got.Title, tc.wantPos, tc.wantTitle)
		}
	}
}

func TestGetRejectsShortIDPrefix(t *testing.T) {
	t.Parallel()

	s, _ := newTestStore(t)
	mustAdd(t, s, book.Input{Title: "A", Author: "Anon"})

	_, _, err := s.Get(library.ByID("000"))
	if !errors.Is(err, library.ErrIDTooShort) {
		t.Errorf("err=%v, want ErrIDTooShort", err)
	}
}

func TestGetFindsUpperCaseIDsFromFile(t *testing.T) {
	t.Parallel()

	path := t.TempDir() + "/books.json"
	writeFile(t, path, `{"version": 1, "books": [{"id": "ABCD1111-0000-4000-8000-00000000BEEF",
  "title": "Dune", "author": "Herbert", "genre": "Fiction", "status": "To Read",
  "rating": 3, "notes": "", "date_added": "2024-01-02"}]}`)

	s := openTestStore(t, path)

	for _, ref := range []string{"abcd1", "ABCD1111", "abcd1111-0000-4000-8000-00000000beef"} {
		_, got, err := s.Get(library.ByID(ref))
		if err != nil {
			t.Errorf("Get(%s): %v", ref, err)

			continue
		}

		if got.Title != "Dune" {
			t.Errorf("Get(%s) title=%q", ref, got.Title)
		}
	}
}
