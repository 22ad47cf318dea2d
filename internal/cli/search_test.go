package cli_test

import (
	"strings"
	"testing"

	"github.com/calvinalkan/shelf/internal/cli"
)

func TestSearchCommand(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.AddBook("Dune", "Frank Herbert")
	c.AddBook("Emma", "Jane Austen")
	c.AddBook("Dune Messiah", "Frank Herbert")

	for _, tt := range []struct {
		name      string
		args      []string
		want      []string
		notWant   []string
		wantLines int
	}{
		{name: "title substring", args: []string{"search", "dune"}, want: []string{"#0", "#2", "Dune Messiah"}, notWant: []string{"Emma"}, wantLines: 2},
		{name: "author substring", args: []string{"search", "AUSTEN"}, want: []string{"#1", "Emma"}, wantLines: 1},
		{name: "multi word joined", args: []string{"search", "frank", "herbert"}, want: []string{"Dune"}, wantLines: 2},
		{name: "no match", args: []string{"search", "tolkien"}, want: []string{"No matching books found"}, wantLines: 1},
	} {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			stdout, stderr, code := c.Run(tt.args...)
			if code != 0 {
				t.Fatalf("exit=%d\nstderr: %s", code, stderr)
			}

			for _, w := range tt.want {
				cli.AssertContains(t, stdout, w)
			}

			for _, w := range tt.notWant {
				cli.AssertNotContains(t, stdout, w)
			}

			if got := len(strings.Split(strings.TrimSpace(stdout), "\n")); got != tt.wantLines {
				t.Errorf("lines=%d, want=%d\n%s", got, tt.wantLines, stdout)
			}
		})
	}
}

func TestSearchRequiresTerm(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)

	stderr := c.MustFail("search", " ")
	cli.AssertContains(t, stderr, "search term is required")
}
