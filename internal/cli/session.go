package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/calvinalkan/shelf/internal/library"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

// session is the state shared by the commands of one process: the resolved
// config, the logger and the single Store, opened on first use.
type session struct {
	cfg *library.Config
	log *slog.Logger
	now func() time.Time

	store *library.Store
}

// open returns the store, loading it on first call.
//
// A legacy or id-less file is upgraded under the library lock so the ids
// shown stay valid on the next run. If another process holds the lock the
// upgrade is skipped and the books are served from memory.
func (s *session) open() (*library.Store, error) {
	if s.store != nil {
		return s.store, nil
	}

	st, err := s.load()
	if err != nil {
		return nil, err
	}

	if st.NeedsRewrite() {
		err = library.WithLock(s.cfg.LibraryFileAbs, library.LockTimeout, func() error {
			loadErr := st.Reload()
			if loadErr != nil {
				return withRepairHint(loadErr)
			}

			return s.upgrade(st)
		})

		switch {
		case errors.Is(err, library.ErrLockTimeout):
			s.log.Info("library is locked, not upgrading its format now", "path", st.Path())
		case err != nil:
			return nil, err
		}
	}

	s.store = st

	return st, nil
}

// mutate runs fn under the library lock against freshly loaded state, so
// concurrent shelf processes do not drop each other's changes.
func (s *session) mutate(fn func(*library.Store) error) error {
	return library.WithLock(s.cfg.LibraryFileAbs, library.LockTimeout, func() error {
		st := s.store

		var err error
		if st == nil {
			st, err = s.load()
		} else {
			err = withRepairHint(st.Reload())
		}

		if err != nil {
			return err
		}

		s.store = st

		err = s.upgrade(st)
		if err != nil {
			return err
		}

		return fn(st)
	})
}

// load reads the library file without writing it.
func (s *session) load() (*library.Store, error) {
	st, err := library.Open(s.cfg.LibraryFileAbs, library.WithLogger(s.log), library.WithClock(s.now))
	if err != nil {
		return nil, withRepairHint(err)
	}

	return st, nil
}

// upgrade rewrites a legacy or id-less file. The caller holds the lock.
func (s *session) upgrade(st *library.Store) error {
	if !st.NeedsRewrite() {
		return nil
	}

	err := st.Rewrite()
	if err != nil {
		return err
	}

	s.log.Info("upgraded library file", "path", st.Path(), "books", st.Len())

	return nil
}

// forget drops the cached store so the next command reads the file afresh.
func (s *session) forget() {
	s.store = nil
}

func withRepairHint(err error) error {
	if errors.Is(err, library.ErrMalformedDocument) {
		return fmt.Errorf("%w\n(run 'shelf repair' for details, 'shelf repair --reset' to start over)", err)
	}

	return err
}

// newLogger builds the process logger. Only warnings and errors are shown
// unless verbose is set.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	noColor := true

	if f, ok := w.(*os.File); ok {
		noColor = !isatty.IsTerminal(f.Fd())
		w = colorable.NewColorable(f)
	}

	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05.000",
		NoColor:    noColor,
	}))
}
