// Package book defines the Book record tracked by shelf and the rules a
// record must satisfy before it can be stored.
package book

import (
	"fmt"
	"strings"
	"time"
)

// Genre is one of the fixed genres a book can be filed under.
type Genre string

// Genre values, in the order they are offered to the user.
const (
	GenreFiction    Genre = "Fiction"
	GenreNonFiction Genre = "Non-Fiction"
	GenreScience    Genre = "Science"
	GenreTechnology Genre = "Technology"
	GenreHistory    Genre = "History"
	GenreBiography  Genre = "Biography"
	GenreSelfHelp   Genre = "Self-Help"
	GenreOther      Genre = "Other"
)

// Status is the reading status of a book.
type Status string

// Status values, in reading order.
const (
	StatusToRead           Status = "To Read"
	StatusCurrentlyReading Status = "Currently Reading"
	StatusCompleted        Status = "Completed"
)

// Rating bounds and the default used when an input leaves the rating unset.
const (
	MinRating     = 1
	MaxRating     = 5
	DefaultRating = 3
)

// DateLayout is the format of [Book.DateAdded].
const DateLayout = time.DateOnly

// Genres returns all genres in display order.
func Genres() []Genre {
	return []Genre{
		GenreFiction,
		GenreNonFiction,
		GenreScience,
		GenreTechnology,
		GenreHistory,
		GenreBiography,
		GenreSelfHelp,
		GenreOther,
	}
}

// Statuses returns all statuses in display order.
func Statuses() []Status {
	return []Status{StatusToRead, StatusCurrentlyReading, StatusCompleted}
}

// Valid reports whether g is one of the known genres.
func (g Genre) Valid() bool {
	switch g {
	case GenreFiction, GenreNonFiction, GenreScience, GenreTechnology,
		GenreHistory, GenreBiography, GenreSelfHelp, GenreOther:
		return true
	default:
		return false
	}
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusToRead, StatusCurrentlyReading, StatusCompleted:
		return true
	default:
		return false
	}
}

// ParseGenre resolves user input to a Genre. Matching ignores case, spaces,
// hyphens and underscores, so "non-fiction", "NonFiction" and "self_help" all
// resolve.
func ParseGenre(input string) (Genre, error) {
	key := foldName(input)

	for _, g := range Genres() {
		if foldName(string(g)) == key {
			return g, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrInvalidGenre, input)
}

// ParseStatus resolves user input to a Status, with the same matching rules
// as [ParseGenre]. "reading" and "done" are accepted as short forms.
func ParseStatus(input string) (Status, error) {
	key := foldName(input)

	switch key {
	case "reading":
		return StatusCurrentlyReading, nil
	case "done":
		return StatusCompleted, nil
	}

	for _, s := range Statuses() {
		if foldName(string(s)) == key {
			return s, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, input)
}

func foldName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))

	return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(s)
}

// Book is one record in the library.
//
// ID and DateAdded are assigned when the book is added and never change
// afterwards.
type Book struct {
	ID        string `json:"id"         yaml:"id"`
	Title     string `json:"title"      yaml:"title"`
	Author    string `json:"author"     yaml:"author"`
	Genre     Genre  `json:"genre"      yaml:"genre"`
	Status    Status `json:"status"     yaml:"status"`
	Rating    int    `json:"rating"     yaml:"rating"`
	Notes     string `json:"notes"      yaml:"notes"`
	DateAdded string `json:"date_added" yaml:"date_added"`
}

// Added parses DateAdded.
func (b Book) Added() (time.Time, error) {
	t, err := time.Parse(DateLayout, b.DateAdded)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, b.DateAdded)
	}

	return t, nil
}

// Validate checks the user-editable fields of b. It returns the first
// violation found.
func (b Book) Validate() error {
	if strings.TrimSpace(b.Title) == "" {
		return ErrTitleRequired
	}

	if strings.TrimSpace(b.Author) == "" {
		return ErrAuthorRequired
	}

	if !b.Genre.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidGenre, b.Genre)
	}

	if !b.Status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, b.Status)
	}

	if b.Rating < MinRating || b.Rating > MaxRating {
		return fmt.Errorf("%w: %d", ErrInvalidRating, b.Rating)
	}

	return nil
}

// Input holds the fields supplied when adding a book. Zero values fall back
// to the defaults: genre Fiction, status To Read, rating 3.
type Input struct {
	Title  string
	Author string
	Genre  Genre
	Status Status
	Rating int
	Notes  string
}

// New builds a validated Book from in. The caller supplies the id and the
// creation time.
func New(id string, in Input, added time.Time) (Book, error) {
	b := Book{
		ID:        id,
		Title:     strings.TrimSpace(in.Title),
		Author:    strings.TrimSpace(in.Author),
		Genre:     in.Genre,
		Status:    in.Status,
		Rating:    in.Rating,
		Notes:     in.Notes,
		DateAdded: added.Format(DateLayout),
	}

	if b.Genre == "" {
		b.Genre = GenreFiction
	}

	if b.Status == "" {
		b.Status = StatusToRead
	}

	if b.Rating == 0 {
		b.Rating = DefaultRating
	}

	err := b.Validate()
	if err != nil {
		return Book{}, err
	}

	return b, nil
}

// Patch is a partial update. Nil fields are left unchanged.
type Patch struct {
	Title  *string
	Author *string
	Genre  *Genre
	Status *Status
	Rating *int
	Notes  *string
}

// Empty reports whether p changes nothing.
func (p Patch) Empty() bool {
	return p.Title == nil && p.Author == nil && p.Genre == nil &&
		p.Status == nil && p.Rating == nil && p.Notes == nil
}

// Apply returns b with p applied and validated. b itself is not modified.
func (p Patch) Apply(b Book) (Book, error) {
	if p.Title != nil {
		b.Title = strings.TrimSpace(*p.Title)
	}

	if p.Author != nil {
		b.Author = strings.TrimSpace(*p.Author)
	}

	if p.Genre != nil {
		b.Genre = *p.Genre
	}

	if p.Status != nil {
		b.Status = *p.Status
	}

	if p.Rating != nil {
		b.Rating = *p.Rating
	}

	if p.Notes != nil {
		b.Notes = *p.Notes
	}

	err := b.Validate()
	if err != nil {
		return Book{}, err
	}

	return b, nil
}
