package library

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"
)

// CheckReport describes the state of a library file.
type CheckReport struct {
	Exists     bool
	Books      int
	Legacy     bool
	MissingIDs int
}

// Check decodes the file at path without modifying it. A missing file is
// reported, not an error. A file that cannot be decoded returns an error
// wrapping [ErrMalformedDocument].
func Check(path string) (CheckReport, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return CheckReport{}, nil
	}

	if err != nil {
		return CheckReport{}, fmt.Errorf("reading library: %w", err)
	}

	doc, err := decodeDocument(data)
	if err != nil {
		return CheckReport{Exists: true}, fmt.Errorf("%s: %w", path, err)
	}

	return CheckReport{
		Exists:     true,
		Books:      len(doc.books),
		Legacy:     doc.legacy,
		MissingIDs: doc.missingIDs,
	}, nil
}

// quarantineLayout keeps quarantined names sortable and free of colons.
const (
	quarantineLayout    = "20060102T150405"
	maxQuarantineSuffix = 1000
)

// Quarantine renames the file at path to "<path>.corrupt-<timestamp>" so a
// fresh library can be started without losing the old bytes. A name already
// taken gets a "-1", "-2", ... suffix. It returns the new name.
func Quarantine(path string, now time.Time) (string, error) {
	base := path + ".corrupt-" + now.UTC().Format(quarantineLayout)
	dst := base

	for n := 1; ; n++ {
		_, err := os.Lstat(dst)
		if errors.Is(err, fs.ErrNotExist) {
			break
		}

		if err != nil {
			return "", fmt.Errorf("quarantine library: %w", err)
		}

		if n > maxQuarantineSuffix {
			return "", fmt.Errorf("quarantine library: too many copies named %s", base)
		}

		dst = base + "-" + strconv.Itoa(n)
	}

	err := os.Rename(path, dst)
	if err != nil {
		return "", fmt.Errorf("quarantine library: %w", err)
	}

	return dst, nil
}
