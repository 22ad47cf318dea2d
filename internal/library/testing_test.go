package library_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/calvinalkan/shelf/internal/book"
	"github.com/calvinalkan/shelf/internal/library"

	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 5, 17, 9, 30, 0, 0, time.UTC)

// sequentialIDs returns an id generator producing predictable UUID-shaped ids.
func sequentialIDs() func() (string, error) {
	n := 0

	return func() (string, error) {
		n++

		return fmt.Sprintf("%08x-0000-4000-8000-000000000000", n), nil
	}
}

func openTestStore(t *testing.T, path string) *library.Store {
	t.Helper()

	s, err := library.Open(path,
		library.WithClock(func() time.Time { return testNow }),
		library.WithIDFunc(sequentialIDs()),
	)
	require.NoError(t, err)

	return s
}

func newTestStore(t *testing.T) (*library.Store, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "books.json")

	return openTestStore(t, path), path
}

func mustAdd(t *testing.T, s *library.Store, in book.Input) book.Book {
	t.Helper()

	b, err := s.Add(in)
	require.NoError(t, err)

	return b
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func readFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	return string(data)
}
