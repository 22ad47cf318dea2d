package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/calvinalkan/shelf/internal/book"
	"github.com/calvinalkan/shelf/internal/library"

	flag "github.com/spf13/pflag"
)

// AddCmd returns the add command.
func AddCmd(s *session) *Command {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	fs.StringP("author", "a", "", "Author (required)")
	fs.StringP("genre", "g", string(book.GenreFiction), "Genre: "+genreList())
	fs.StringP("status", "s", string(book.StatusToRead), "Status: "+statusList())
	fs.IntP("rating", "r", book.DefaultRating, "Rating 1-5")
	fs.StringP("notes", "n", "", "Free-form notes")

	return &Command{
		Flags: fs,
		Usage: "add <title> -a <author> [flags]",
		Short: "Add a book, prints its ID",
		Group: groupWrite,
		Long: `Add a book to the library. Prints the new book's ID on success.

The title is every positional argument joined by spaces, so quoting is optional.
Genre and status accept any casing, and spaces or hyphens may be left out.`,
		Exec: func(_ context.Context, io *IO, args []string) error {
			return execAdd(io, s, fs, args)
		},
	}
}

func execAdd(io *IO, s *session, fs *flag.FlagSet, args []string) error {
	in := book.Input{Title: strings.Join(args, " ")}

	in.Author, _ = fs.GetString("author")
	in.Notes, _ = fs.GetString("notes")

	genre, _ := fs.GetString("genre")

	g, err := book.ParseGenre(genre)
	if err != nil {
		return err
	}

	status, _ := fs.GetString("status")

	st, err := book.ParseStatus(status)
	if err != nil {
		return err
	}

	in.Genre, in.Status = g, st

	in.Rating, _ = fs.GetInt("rating")
	if in.Rating == 0 {
		// 0 would otherwise select the default.
		return fmt.Errorf("%w: 0", book.ErrInvalidRating)
	}

	var added book.Book

	err = s.mutate(func(store *library.Store) error {
		added, err = store.Add(in)

		return err
	})
	if err != nil {
		return err
	}

	io.Println(added.ID)

	return nil
}

func genreList() string {
	names := make([]string, 0, len(book.Genres()))
	for _, g := range book.Genres() {
		names = append(names, string(g))
	}

	return strings.Join(names, "|")
}

func statusList() string {
	names := make([]string, 0, len(book.Statuses()))
	for _, st := range book.Statuses() {
		names = append(names, string(st))
	}

	return strings.Join(names, "|")
}
