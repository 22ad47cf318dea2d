package cli

import (
	"context"
	"errors"

	"github.com/calvinalkan/shelf/internal/library"

	flag "github.com/spf13/pflag"
)

// RepairCmd returns the repair command.
func RepairCmd(s *session) *Command {
	fs := flag.NewFlagSet("repair", flag.ContinueOnError)
	fs.Bool("reset", false, "Move a malformed library aside and start empty")
	fs.Bool("dry-run", false, "Show what would be done without writing")

	return &Command{
		Flags: fs,
		Usage: "repair [--reset] [--dry-run]",
		Short: "Check the library file and fix what can be fixed",
		Group: groupWrite,
		Long: `Check that the library file can be read.

Legacy files (a bare JSON array) and books without IDs are upgraded in place.
A file that cannot be read is never modified unless --reset is given, which
renames it to <file>.corrupt-<timestamp> so a new library can be started.`,
		Exec: func(_ context.Context, io *IO, _ []string) error {
			reset, _ := fs.GetBool("reset")
			dryRun, _ := fs.GetBool("dry-run")

			// Whatever happens, the next command in this process rereads the file.
			defer s.forget()

			return library.WithLock(s.cfg.LibraryFileAbs, library.LockTimeout, func() error {
				return execRepair(io, s, reset, dryRun)
			})
		},
	}
}

func execRepair(io *IO, s *session, reset, dryRun bool) error {
	path := s.cfg.LibraryFileAbs

	report, err := library.Check(path)
	if errors.Is(err, library.ErrMalformedDocument) {
		return repairMalformed(io, s, err, reset, dryRun)
	}

	if err != nil {
		return err
	}

	if !report.Exists {
		io.Println("Nothing to repair (no library file yet)")

		return nil
	}

	if !report.Legacy && report.MissingIDs == 0 {
		io.Printf("Library OK: %d books\n", report.Books)

		return nil
	}

	if dryRun {
		if report.Legacy {
			io.Println("Would upgrade legacy library format")
		}

		if report.MissingIDs > 0 {
			io.Printf("Would assign IDs to %d books\n", report.MissingIDs)
		}

		return nil
	}

	store, err := s.load()
	if err != nil {
		return err
	}

	err = s.upgrade(store)
	if err != nil {
		return err
	}

	if report.Legacy {
		io.Println("Upgraded legacy library format")
	}

	if report.MissingIDs > 0 {
		io.Printf("Assigned IDs to %d books\n", report.MissingIDs)
	}

	return nil
}

func repairMalformed(io *IO, s *session, cause error, reset, dryRun bool) error {
	if !reset {
		io.Warn(cause.Error(), "run 'shelf repair --reset' to move it aside and start an empty library")

		return nil
	}

	if dryRun {
		io.Println("Would move malformed library aside:", s.cfg.LibraryFileAbs)

		return nil
	}

	dst, err := library.Quarantine(s.cfg.LibraryFileAbs, s.now())
	if err != nil {
		return err
	}

	io.Println("Moved malformed library to", dst)
	io.Println("Starting with an empty library")

	return nil
}
