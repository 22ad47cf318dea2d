package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	flag "github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// ExportCmd returns the export command.
func ExportCmd(s *session) *Command {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	fs.StringP("format", "f", "json", "Output format: json|yaml")

	return &Command{
		Flags: fs,
		Usage: "export [--format json|yaml]",
		Short: "Write the whole library to stdout",
		Long: `Write the whole library to stdout.

JSON output has the same shape as the library file, so it can be used as a backup.`,
		Exec: func(_ context.Context, io *IO, _ []string) error {
			format, _ := fs.GetString("format")

			store, err := s.open()
			if err != nil {
				return err
			}

			doc := store.Document()

			var data []byte

			switch strings.ToLower(format) {
			case "json":
				data, err = json.MarshalIndent(doc, "", "  ")
				data = append(data, '\n')
			case "yaml", "yml":
				data, err = yaml.Marshal(doc)
			default:
				return fmt.Errorf("unknown format %q (want json or yaml)", format)
			}

			if err != nil {
				return fmt.Errorf("encoding library: %w", err)
			}

			io.Printf("%s", data)

			return nil
		},
	}
}
