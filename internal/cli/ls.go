package cli

import (
	"context"
	"errors"

	"github.com/calvinalkan/shelf/internal/book"

	flag "github.com/spf13/pflag"
)

const emptyLibraryHint = "No books in your library yet. Add one with: shelf add <title> -a <author>"

// LsCmd returns the ls command.
func LsCmd(s *session) *Command {
	fs := flag.NewFlagSet("ls", flag.ContinueOnError)
	fs.StringP("genre", "g", "", "Filter by genre")
	fs.StringP("status", "s", "", "Filter by status")
	fs.Int("limit", 0, "Maximum books to show (0 = all)")

	return &Command{
		Flags: fs,
		Usage: "ls [flags]",
		Short: "List books",
		Long: `List books in insertion order, one per line:
position, short ID, title, author, status and rating.

Positions and ID prefixes (4+ characters) can be passed to show, edit and rm.`,
		Exec: func(_ context.Context, io *IO, _ []string) error {
			return execLs(io, s, fs)
		},
	}
}

func execLs(io *IO, s *session, fs *flag.FlagSet) error {
	var (
		genre  book.Genre
		status book.Status
		err    error
	)

	if fs.Changed("genre") {
		v, _ := fs.GetString("genre")

		genre, err = book.ParseGenre(v)
		if err != nil {
			return err
		}
	}

	if fs.Changed("status") {
		v, _ := fs.GetString("status")

		status, err = book.ParseStatus(v)
		if err != nil {
			return err
		}
	}

	limit, _ := fs.GetInt("limit")
	if limit < 0 {
		return errors.New("--limit must be non-negative")
	}

	store, err := s.open()
	if err != nil {
		return err
	}

	if store.Len() == 0 {
		io.Println(emptyLibraryHint)

		return nil
	}

	var rows []listing

	for pos, b := range store.All() {
		if genre != "" && b.Genre != genre {
			continue
		}

		if status != "" && b.Status != status {
			continue
		}

		rows = append(rows, listing{pos: pos, book: b})

		if limit > 0 && len(rows) == limit {
			break
		}
	}

	if len(rows) == 0 {
		io.Println(noMatchesMessage)

		return nil
	}

	for _, line := range formatListings(rows) {
		io.Println(line)
	}

	return nil
}
