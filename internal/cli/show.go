package cli

import (
	"context"

	flag "github.com/spf13/pflag"
)

// ShowCmd returns the show command.
func ShowCmd(s *session) *Command {
	return &Command{
		Flags: flag.NewFlagSet("show", flag.ContinueOnError),
		Usage: "show <ref>",
		Short: "Show one book in full",
		Long:  "Show every field of one book, including notes.",
		Exec: func(_ context.Context, io *IO, args []string) error {
			ref, err := parseRefArg(args)
			if err != nil {
				return err
			}

			store, err := s.open()
			if err != nil {
				return err
			}

			pos, b, err := store.Get(ref)
			if err != nil {
				return err
			}

			for _, line := range formatDetails(pos, b, s.now()) {
				io.Println(line)
			}

			return nil
		},
	}
}
