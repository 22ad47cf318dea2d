package library_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/calvinalkan/shelf/internal/book"
	"github.com/calvinalkan/shelf/internal/library"

	"github.com/stretchr/testify/require"
)

func TestCheck(t *testing.T) {
	t.Parallel()

	s, path := newTestStore(t)

	report, err := library.Check(path)
	require.NoError(t, err)

	if report.Exists {
		t.Errorf("Check on missing file: Exists=true")
	}

	mustAdd(t, s, book.Input{Title: "Dune", Author: "Herbert"})

	report, err = library.Check(path)
	require.NoError(t, err)

	if !report.Exists || report.Books != 1 || report.Legacy {
		t.Errorf("Check=%+v, want one book in current format", report)
	}

	writeFile(t, path, "{broken")

	report, err = library.Check(path)
	if !errors.Is(err, library.ErrMalformedDocument) {
		t.Errorf("err=%v, want ErrMalformedDocument", err)
	}

	if !report.Exists {
		t.Errorf("malformed file should still be reported as existing")
	}
}

func TestQuarantine(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "books.json")
	writeFile(t, path, "{broken")

	dst, err := library.Quarantine(path, testNow)
	require.NoError(t, err)

	if got, want := dst, path+".corrupt-20240517T093000"; got != want {
		t.Errorf("dst=%q, want=%q", got, want)
	}

	if got := readFile(t, dst); got != "{broken" {
		t.Errorf("quarantined content=%q", got)
	}

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("original should be gone, stat err=%v", err)
	}

	s, err := library.Open(path)
	require.NoError(t, err)

	if s.Len() != 0 {
		t.Errorf("fresh library should be empty")
	}

	// Same second again: the earlier copy is kept and the new one numbered.
	for _, want := range []string{"-1", "-2"} {
		writeFile(t, path, "{again"+want)

		dst, err = library.Quarantine(path, testNow)
		require.NoError(t, err)

		if got, want := dst, path+".corrupt-20240517T093000"+want; got != want {
			t.Errorf("dst=%q, want=%q", got, want)
		}

		if got := readFile(t, dst); got != "{again"+want {
			t.Errorf("quarantined content=%q", got)
		}
	}

	if got := readFile(t, path+".corrupt-20240517T093000"); got != "{broken" {
		t.Errorf("first copy overwritten: %q", got)
	}
}
