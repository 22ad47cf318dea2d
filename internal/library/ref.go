package library

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/calvinalkan/shelf/internal/book"
)

// MinIDPrefix is the shortest id prefix accepted by [ByID].
const MinIDPrefix = 4

// Ref addresses a single book, either by its position in the library or by
// its id. Ids are stable across edits and deletes of other books; positions
// are not.
type Ref struct {
	pos   int
	id    string
	byPos bool
}

// At returns a Ref to the book at zero-based position pos.
func At(pos int) Ref {
	return Ref{pos: pos, byPos: true}
}

// ByID returns a Ref to the book whose id is id, or starts with id.
func ByID(id string) Ref {
	return Ref{id: strings.ToLower(strings.TrimSpace(id))}
}

// ParseRef parses user input. "#12" always addresses position 12. A bare
// number addresses a position only when it is shorter than [MinIDPrefix],
// since longer digit strings can be id prefixes. Anything else is an id or
// id prefix.
func ParseRef(s string) (Ref, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Ref{}, fmt.Errorf("%w: empty", ErrInvalidRef)
	}

	if digits, ok := strings.CutPrefix(s, "#"); ok {
		pos, err := strconv.Atoi(digits)
		if err != nil {
			return Ref{}, fmt.Errorf("%w: %s", ErrInvalidRef, s)
		}

		return At(pos), nil
	}

	if len(s) < MinIDPrefix {
		pos, err := strconv.Atoi(s)
		if err == nil {
			return At(pos), nil
		}
	}

	return ByID(s), nil
}

func (r Ref) String() string {
	if r.byPos {
		return "#" + strconv.Itoa(r.pos)
	}

	return r.id
}

// resolve finds the position r refers to within books.
func (r Ref) resolve(books []book.Book) (int, error) {
	if r.byPos {
		if r.pos < 0 || r.pos >= len(books) {
			return -1, fmt.Errorf("%w: %d (library has %d books)", ErrOutOfRange, r.pos, len(books))
		}

		return r.pos, nil
	}

	if r.id == "" {
		return -1, fmt.Errorf("%w: empty id", ErrInvalidRef)
	}

	for i, b := range books {
		if b.ID == r.id {
			return i, nil
		}
	}

	if len(r.id) < MinIDPrefix {
		return -1, fmt.Errorf("%w: %q (need at least %d characters)", ErrIDTooShort, r.id, MinIDPrefix)
	}

	found := -1

	for i, b := range books {
		if !strings.HasPrefix(b.ID, r.id) {
			continue
		}

		if found >= 0 {
			return -1, fmt.Errorf("%w: %s", ErrAmbiguousID, r.id)
		}

		found = i
	}

	if found < 0 {
		return -1, fmt.Errorf("%w: %s", ErrNotFound, r.id)
	}

	return found, nil
}
