package cli

import (
	"context"

	flag "github.com/spf13/pflag"
)

// PrintConfigCmd returns the print-config command.
func PrintConfigCmd(s *session) *Command {
	return &Command{
		Flags: flag.NewFlagSet("print-config", flag.ContinueOnError),
		Usage: "print-config",
		Short: "Show resolved configuration",
		Group: groupOther,
		Long:  "Display the effective configuration and which files it was loaded from.",
		Exec: func(_ context.Context, io *IO, _ []string) error {
			cfg := s.cfg

			io.Println("effective_cwd=" + cfg.EffectiveCwd)
			io.Println("library_file=" + cfg.LibraryFileAbs)

			if cfg.HistoryFileAbs != "" {
				io.Println("history_file=" + cfg.HistoryFileAbs)
			}

			io.Println("")
			io.Println("# sources")

			if cfg.Sources.Global == "" && cfg.Sources.Project == "" {
				io.Println("(defaults only)")

				return nil
			}

			if cfg.Sources.Global != "" {
				io.Println("global_config=" + cfg.Sources.Global)
			}

			if cfg.Sources.Project != "" {
				io.Println("project_config=" + cfg.Sources.Project)
			}

			return nil
		},
	}
}
