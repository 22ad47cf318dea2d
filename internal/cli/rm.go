package cli

import (
	"context"

	"github.com/calvinalkan/shelf/internal/book"
	"github.com/calvinalkan/shelf/internal/library"

	flag "github.com/spf13/pflag"
)

// RmCmd returns the rm command.
func RmCmd(s *session) *Command {
	return &Command{
		Flags: flag.NewFlagSet("rm", flag.ContinueOnError),
		Usage: "rm <ref>",
		Short: "Delete a book",
		Group: groupWrite,
		Long:  "Delete one book. Use the ID rather than a position in scripts.",
		Exec: func(_ context.Context, io *IO, args []string) error {
			ref, err := parseRefArg(args)
			if err != nil {
				return err
			}

			var removed book.Book

			err = s.mutate(func(store *library.Store) error {
				removed, err = store.Delete(ref)

				return err
			})
			if err != nil {
				return err
			}

			io.Println("Deleted", removed.Title, "by", removed.Author)

			return nil
		},
	}
}
