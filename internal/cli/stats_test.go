package cli_test

import (
	"testing"

	"github.com/calvinalkan/shelf/internal/cli"
)

func TestStatsEmpty(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)

	if got, want := c.MustRun("stats"), "Add some books to see statistics!"; got != want {
		t.Errorf("stats=%q, want=%q", got, want)
	}
}

func TestStatsCommand(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.AddBook("A", "X", "-g", "Fiction", "-r", "5")
	c.AddBook("B", "X", "-g", "Fiction", "-r", "3", "-s", "Completed")
	c.AddBook("C", "X", "-g", "History", "-r", "4", "-s", "reading")

	stdout := c.MustRun("stats")

	for _, want := range []string{
		"Books: 3  Average rating: 4.0",
		"Books by genre",
		"Fiction",
		"66.7%",
		"33.3%",
		"Reading status",
		"Currently Reading",
		"Average rating by genre",
		"4.00",
		"█",
	} {
		cli.AssertContains(t, stdout, want)
	}

	// Genres with no books are left out.
	cli.AssertNotContains(t, stdout, "Biography")
}
