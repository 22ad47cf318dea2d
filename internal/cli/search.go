package cli

import (
	"context"
	"errors"
	"strings"

	flag "github.com/spf13/pflag"
)

const noMatchesMessage = "No matching books found"

var errTermRequired = errors.New("search term is required")

// SearchCmd returns the search command.
func SearchCmd(s *session) *Command {
	return &Command{
		Flags: flag.NewFlagSet("search", flag.ContinueOnError),
		Usage: "search <term>",
		Short: "Find books by title or author",
		Long: `List books whose title or author contains <term>, ignoring case.
Multiple arguments are joined with spaces.`,
		Exec: func(_ context.Context, io *IO, args []string) error {
			term := strings.Join(args, " ")
			if strings.TrimSpace(term) == "" {
				return errTermRequired
			}

			store, err := s.open()
			if err != nil {
				return err
			}

			var rows []listing
			for pos, b := range store.Matches(term) {
				rows = append(rows, listing{pos: pos, book: b})
			}

			if len(rows) == 0 {
				io.Println(noMatchesMessage)

				return nil
			}

			for _, line := range formatListings(rows) {
				io.Println(line)
			}

			return nil
		},
	}
}
