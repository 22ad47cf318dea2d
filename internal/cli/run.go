package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/calvinalkan/shelf/internal/library"

	flag "github.com/spf13/pflag"
)

// Run is the main entry point. Returns exit code.
func Run(in io.Reader, out io.Writer, errOut io.Writer, args []string, env map[string]string, sigCh <-chan os.Signal) int {
	globals := newGlobalFlags()

	if len(args) > 0 {
		args = args[1:]
	}

	err := globals.set.Parse(args)
	if err != nil {
		fprintln(errOut, "error:", err)
		fprintln(errOut)
		fprintln(errOut, "Global flags:")
		fprintln(errOut, globals.set.FlagUsages())

		return 1
	}

	rest := globals.set.Args()

	if globals.help || len(rest) == 0 {
		printUsage(out, globals.set, commands(&session{}, in))

		return 0
	}

	cfg, err := library.LoadConfig(library.LoadConfigInput{
		WorkDirOverride:     globals.cwd,
		ConfigPath:          globals.config,
		LibraryFileOverride: globals.library,
		HasLibraryOverride:  globals.set.Changed("library"),
		Env:                 env,
	})
	if err != nil {
		fprintln(errOut, "error:", err)

		return 1
	}

	sess := &session{
		cfg: &cfg,
		log: newLogger(errOut, globals.verbose),
		now: time.Now,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		select {
		case <-sigCh:
			cancel()
		case <-ctx.Done():
		}
	}()

	cmds := commands(sess, in)

	if rest[0] == "help" {
		printUsage(out, globals.set, cmds)

		return 0
	}

	return dispatch(ctx, cmds, NewIO(out, errOut), rest[0], rest[1:])
}

type globalFlags struct {
	set     *flag.FlagSet
	cwd     string
	config  string
	library string
	verbose bool
	help    bool
}

func newGlobalFlags() *globalFlags {
	g := &globalFlags{set: flag.NewFlagSet("shelf", flag.ContinueOnError)}

	g.set.SetInterspersed(false)
	g.set.SetOutput(&strings.Builder{}) // discard pflag output
	g.set.StringVarP(&g.cwd, "cwd", "C", "", "Run as if started in `dir`")
	g.set.StringVarP(&g.config, "config", "c", "", "Use specified config `file`")
	g.set.StringVar(&g.library, "library", "", "Use `file` as the library document")
	g.set.BoolVarP(&g.verbose, "verbose", "v", false, "Log debug details to stderr")
	g.set.BoolVarP(&g.help, "help", "h", false, "Show help")

	return g
}

// commands returns a fresh command set bound to s. FlagSets keep state
// between parses, so callers that run more than one command build a new set
// each time.
func commands(s *session, in io.Reader) []*Command {
	return []*Command{
		AddCmd(s),
		LsCmd(s),
		ShowCmd(s),
		EditCmd(s),
		RmCmd(s),
		SearchCmd(s),
		StatsCmd(s),
		ExportCmd(s),
		RepairCmd(s),
		PrintConfigCmd(s),
		ShellCmd(s, in),
	}
}

var errUnknownCommand = errors.New("unknown command")

func findCommand(cmds []*Command, name string) *Command {
	for _, c := range cmds {
		if c.Name() == name {
			return c
		}
	}

	return nil
}

// dispatch runs the named command and returns its exit code.
func dispatch(ctx context.Context, cmds []*Command, o *IO, name string, args []string) int {
	cmd := findCommand(cmds, name)
	if cmd == nil {
		o.ErrPrintln("error:", fmt.Errorf("%w: %s", errUnknownCommand, name))
		o.ErrPrintln("run 'shelf --help' for a list of commands")

		return 1
	}

	code := cmd.Run(ctx, o, args)
	if code != 0 {
		return code
	}

	return o.Finish()
}

func printUsage(w io.Writer, globals *flag.FlagSet, cmds []*Command) {
	fprintln(w, "shelf - personal library tracker")
	fprintln(w)
	fprintln(w, "Usage: shelf [global flags] <command> [args]")
	fprintln(w)
	fprintln(w, "Global flags:")
	fprintln(w, strings.TrimRight(globals.FlagUsages(), "\n"))
	fprintln(w)
	printCommandList(w, cmds)
	fprintln(w)
	fprintln(w, "Run 'shelf <command> --help' for command details.")
}

func fprintln(w io.Writer, a ...any) {
	_, _ = fmt.Fprintln(w, a...)
}
