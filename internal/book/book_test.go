package book_test

import (
	"errors"
	"testing"
	"time"

	"github.com/calvinalkan/shelf/internal/book"
)

func TestParseGenre(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  book.Genre
	}{
		{"Fiction", book.GenreFiction},
		{"fiction", book.GenreFiction},
		{"non-fiction", book.GenreNonFiction},
		{"NonFiction", book.GenreNonFiction},
		{"self_help", book.GenreSelfHelp},
		{" Self-Help ", book.GenreSelfHelp},
		{"TECHNOLOGY", book.GenreTechnology},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			t.Parallel()

			got, err := book.ParseGenre(tc.input)
			if err != nil {
				t.Fatalf("ParseGenre(%q) error: %v", tc.input, err)
			}

			if got != tc.want {
				t.Errorf("ParseGenre(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestParseGenreRejectsUnknown(t *testing.T) {
	t.Parallel()

	_, err := book.ParseGenre("Poetry")
	if !errors.Is(err, book.ErrInvalidGenre) {
		t.Errorf("err = %v, want ErrInvalidGenre", err)
	}
}

func TestParseStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  book.Status
	}{
		{"To Read", book.StatusToRead},
		{"to-read", book.StatusToRead},
		{"currently_reading", book.StatusCurrentlyReading},
		{"reading", book.StatusCurrentlyReading},
		{"completed", book.StatusCompleted},
		{"done", book.StatusCompleted},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			t.Parallel()

			got, err := book.ParseStatus(tc.input)
			if err != nil {
				t.Fatalf("ParseStatus(%q) error: %v", tc.input, err)
			}

			if got != tc.want {
				t.Errorf("ParseStatus(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}

	_, err := book.ParseStatus("abandoned")
	if !errors.Is(err, book.ErrInvalidStatus) {
		t.Errorf("err = %v, want ErrInvalidStatus", err)
	}
}

func TestNewAppliesDefaults(t *testing.T) {
	t.Parallel()

	added := time.Date(2024, 3, 9, 22, 15, 0, 0, time.UTC)

	got, err := book.New("id-1", book.Input{Title: "  Dune ", Author: "Herbert"}, added)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	want := book.Book{
		ID:        "id-1",
		Title:     "Dune",
		Author:    "Herbert",
		Genre:     book.GenreFiction,
		Status:    book.StatusToRead,
		Rating:    book.DefaultRating,
		DateAdded: "2024-03-09",
	}

	if got != want {
		t.Errorf("New = %+v, want %+v", got, want)
	}
}

func TestNewValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   book.Input
		wantErr error
	}{
		{"empty title", book.Input{Author: "Austen"}, book.ErrTitleRequired},
		{"blank title", book.Input{Title: "   ", Author: "Austen"}, book.ErrTitleRequired},
		{"empty author", book.Input{Title: "Emma"}, book.ErrAuthorRequired},
		{"bad genre", book.Input{Title: "Emma", Author: "Austen", Genre: "Poetry"}, book.ErrInvalidGenre},
		{"bad status", book.Input{Title: "Emma", Author: "Austen", Status: "Lost"}, book.ErrInvalidStatus},
		{"rating too high", book.Input{Title: "Emma", Author: "Austen", Rating: 6}, book.ErrInvalidRating},
		{"rating negative", book.Input{Title: "Emma", Author: "Austen", Rating: -1}, book.ErrInvalidRating},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := book.New("x", tc.input, time.Now())
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("err = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestPatchApply(t *testing.T) {
	t.Parallel()

	orig := book.Book{
		ID:        "id-1",
		Title:     "Emma",
		Author:    "Austen",
		Genre:     book.GenreFiction,
		Status:    book.StatusToRead,
		Rating:    3,
		DateAdded: "2024-01-02",
	}

	rating := 5
	status := book.StatusCompleted
	notes := "reread in winter"

	got, err := book.Patch{Rating: &rating, Status: &status, Notes: &notes}.Apply(orig)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if got.Rating != 5 || got.Status != book.StatusCompleted || got.Notes != notes {
		t.Errorf("Apply = %+v, fields not updated", got)
	}

	if got.ID != orig.ID || got.DateAdded != orig.DateAdded || got.Title != orig.Title {
		t.Errorf("Apply changed untouched fields: %+v", got)
	}

	if orig.Rating != 3 {
		t.Errorf("Apply modified the original: %+v", orig)
	}

	empty := ""

	_, err = book.Patch{Author: &empty}.Apply(orig)
	if !errors.Is(err, book.ErrAuthorRequired) {
		t.Errorf("err = %v, want ErrAuthorRequired", err)
	}
}

func TestPatchEmpty(t *testing.T) {
	t.Parallel()

	if !(book.Patch{}).Empty() {
		t.Error("zero Patch should be empty")
	}

	notes := ""
	if (book.Patch{Notes: &notes}).Empty() {
		t.Error("Patch with notes set should not be empty")
	}
}

func TestAdded(t *testing.T) {
	t.Parallel()

	got, err := book.Book{DateAdded: "2023-12-31"}.Added()
	if err != nil {
		t.Fatalf("Added: %v", err)
	}

	if want := time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Errorf("Added = %v, want %v", got, want)
	}

	_, err = book.Book{DateAdded: "31/12/2023"}.Added()
	if !errors.Is(err, book.ErrInvalidDate) {
		t.Errorf("err = %v, want ErrInvalidDate", err)
	}
}
