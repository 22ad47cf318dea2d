package cli

import (
	"context"

	"github.com/calvinalkan/shelf/internal/book"
	"github.com/calvinalkan/shelf/internal/library"

	flag "github.com/spf13/pflag"
)

// EditCmd returns the edit command.
func EditCmd(s *session) *Command {
	fs := flag.NewFlagSet("edit", flag.ContinueOnError)
	fs.StringP("title", "t", "", "New title")
	fs.StringP("author", "a", "", "New author")
	fs.StringP("genre", "g", "", "New genre: "+genreList())
	fs.StringP("status", "s", "", "New status: "+statusList())
	fs.IntP("rating", "r", 0, "New rating 1-5")
	fs.StringP("notes", "n", "", "New notes (empty string clears them)")

	return &Command{
		Flags: fs,
		Usage: "edit <ref> [flags]",
		Short: "Change fields of a book",
		Group: groupWrite,
		Long: `Change one or more fields of a book. Only the flags given are applied.
The ID and date added never change.

Example: shelf edit #2 -s done -r 5`,
		Exec: func(_ context.Context, io *IO, args []string) error {
			return execEdit(io, s, fs, args)
		},
	}
}

func execEdit(io *IO, s *session, fs *flag.FlagSet, args []string) error {
	ref, err := parseRefArg(args)
	if err != nil {
		return err
	}

	patch, err := patchFromFlags(fs)
	if err != nil {
		return err
	}

	var updated book.Book

	err = s.mutate(func(store *library.Store) error {
		updated, err = store.Update(ref, patch)

		return err
	})
	if err != nil {
		return err
	}

	io.Println("Updated", updated.Title, "by", updated.Author)

	return nil
}

// patchFromFlags builds a Patch from the flags that were set explicitly.
func patchFromFlags(fs *flag.FlagSet) (book.Patch, error) {
	var p book.Patch

	if fs.Changed("title") {
		v, _ := fs.GetString("title")
		p.Title = &v
	}

	if fs.Changed("author") {
		v, _ := fs.GetString("author")
		p.Author = &v
	}

	if fs.Changed("genre") {
		v, _ := fs.GetString("genre")

		g, err := book.ParseGenre(v)
		if err != nil {
			return book.Patch{}, err
		}

		p.Genre = &g
	}

	if fs.Changed("status") {
		v, _ := fs.GetString("status")

		st, err := book.ParseStatus(v)
		if err != nil {
			return book.Patch{}, err
		}

		p.Status = &st
	}

	if fs.Changed("rating") {
		v, _ := fs.GetInt("rating")
		p.Rating = &v
	}

	if fs.Changed("notes") {
		v, _ := fs.GetString("notes")
		p.Notes = &v
	}

	return p, nil
}
