package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/calvinalkan/shelf/internal/library"

	flag "github.com/spf13/pflag"
)

// Command is one shelf subcommand.
type Command struct {
	Flags *flag.FlagSet

	// Usage starts with the command name, e.g. "edit <ref> [flags]". A
	// "<ref>" in it adds the book reference syntax to the command help.
	Usage string

	// Short is the one-line description in command lists.
	Short string

	// Long is the full description for --help. Short is used when empty.
	Long string

	// Group decides where the command is listed and whether the shell
	// rereads the library before running it.
	Group commandGroup

	Exec func(ctx context.Context, o *IO, args []string) error
}

type commandGroup int

const (
	// groupRead commands only read the library.
	groupRead commandGroup = iota
	// groupWrite commands change the library file under its lock.
	groupWrite
	groupOther
)

var commandGroups = []struct {
	group commandGroup
	title string
}{
	{groupRead, "Browse the library:"},
	{groupWrite, "Change the library:"},
	{groupOther, "Other:"},
}

const refHelp = `<ref> is a position (#0, #1, ...) as listed by ls, or an ID prefix of at
least 4 characters. A bare number shorter than 4 digits is a position.
Positions shift when books are removed; IDs never change.`

var (
	errRefRequired = errors.New("book reference is required (#position or id)")
	errTooManyArgs = errors.New("expected a single book reference")
)

// Name returns the first word of Usage.
func (c *Command) Name() string {
	name, _, _ := strings.Cut(c.Usage, " ")

	return name
}

func (c *Command) takesRef() bool {
	return strings.Contains(c.Usage, "<ref>")
}

// HelpLine returns the command's line in command lists.
func (c *Command) HelpLine() string {
	return helpLine(c.Usage, c.Short)
}

func helpLine(usage, short string) string {
	return fmt.Sprintf("  %-30s %s", usage, short)
}

// PrintHelp prints the output of "shelf <cmd> --help".
func (c *Command) PrintHelp(o *IO) {
	o.Println("Usage: shelf", c.Usage)
	o.Println()

	if c.Long != "" {
		o.Println(c.Long)
	} else {
		o.Println(c.Short)
	}

	if c.takesRef() {
		o.Println()
		o.Println(refHelp)
	}

	if c.Flags != nil && c.Flags.HasFlags() {
		o.Println()
		o.Println("Flags:")
		o.Printf("%s", c.Flags.FlagUsages())
	}
}

// Run parses args and executes the command. It prints its own errors and
// returns the exit code.
func (c *Command) Run(ctx context.Context, o *IO, args []string) int {
	c.Flags.SetOutput(io.Discard)

	err := c.Flags.Parse(args)

	switch {
	case errors.Is(err, flag.ErrHelp):
		c.PrintHelp(o)

		return 0
	case err != nil:
		o.ErrPrintln("error:", err)
		o.ErrPrintln()
		c.PrintHelp(o)

		return 1
	}

	err = c.Exec(ctx, o, c.Flags.Args())
	if err != nil {
		o.ErrPrintln("error:", err)

		return 1
	}

	return 0
}

// printCommandList lists cmds under their group headings.
func printCommandList(w io.Writer, cmds []*Command) {
	for i, g := range commandGroups {
		if i > 0 {
			fprintln(w)
		}

		fprintln(w, g.title)

		for _, c := range cmds {
			if c.Group == g.group {
				fprintln(w, c.HelpLine())
			}
		}
	}
}

// parseRefArg parses the single <ref> argument of show, edit and rm.
func parseRefArg(args []string) (library.Ref, error) {
	switch len(args) {
	case 0:
		return library.Ref{}, errRefRequired
	case 1:
		return library.ParseRef(args[0])
	default:
		return library.Ref{}, fmt.Errorf("%w: got %d arguments", errTooManyArgs, len(args))
	}
}
