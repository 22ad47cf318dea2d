package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"unicode"

	"github.com/google/shlex"
	"github.com/mattn/go-isatty"
	"github.com/natefinch/atomic"
	"github.com/peterh/liner"
	flag "github.com/spf13/pflag"
)

const shellPrompt = "shelf> "

var shellBuiltins = []string{"help", "exit", "quit", "q"}

// ShellCmd returns the shell command. Input comes from in; on a terminal it
// gets line editing, history and tab completion.
func ShellCmd(s *session, in io.Reader) *Command {
	return &Command{
		Flags: flag.NewFlagSet("shell", flag.ContinueOnError),
		Usage: "shell",
		Short: "Interactive prompt",
		Group: groupOther,
		Long: `Start an interactive prompt that runs shelf commands against one open
library, e.g. "add Dune -a 'Frank Herbert'" or "ls --status reading".

Type 'help' for commands and 'exit' (or Ctrl-D) to leave.`,
		Exec: func(ctx context.Context, o *IO, _ []string) error {
			sh := &shell{sess: s, out: o.out, errOut: o.errOut}

			return sh.run(ctx, in)
		},
	}
}

type shell struct {
	sess   *session
	out    io.Writer
	errOut io.Writer
}

// prompter is satisfied by *liner.State.
type prompter interface {
	Prompt(prompt string) (string, error)
}

// scanPrompter reads lines without echoing a prompt, for piped input.
type scanPrompter struct {
	sc *bufio.Scanner
}

func (p scanPrompter) Prompt(string) (string, error) {
	if !p.sc.Scan() {
		if err := p.sc.Err(); err != nil {
			return "", err
		}

		return "", io.EOF
	}

	return p.sc.Text(), nil
}

func (sh *shell) run(ctx context.Context, in io.Reader) error {
	if in == nil {
		in = strings.NewReader("")
	}

	f, ok := in.(*os.File)
	if !ok || !isatty.IsTerminal(f.Fd()) {
		return sh.loop(ctx, scanPrompter{sc: bufio.NewScanner(in)}, nil)
	}

	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetCompleter(sh.complete)

	sh.loadHistory(line)
	defer sh.saveHistory(line)

	fprintln(sh.out, "shelf - personal library tracker")
	fprintln(sh.out, "Type 'help' for commands, 'exit' to leave.")

	return sh.loop(ctx, line, line)
}

func (sh *shell) loop(ctx context.Context, p prompter, history *liner.State) error {
	for ctx.Err() == nil {
		input, err := p.Prompt(shellPrompt)
		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			return nil
		}

		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}

		input = strings.TrimSpace(input)
		if input == "" || strings.HasPrefix(input, "#") {
			continue
		}

		if history != nil {
			history.AppendHistory(input)
		}

		args, err := shlex.Split(escapeHashes(input))
		if err != nil {
			fprintln(sh.errOut, "error:", err)

			continue
		}

		if !sh.exec(ctx, args) {
			return nil
		}
	}

	return nil
}

// escapeHashes escapes '#' at the start of unquoted words. shlex treats
// those as comments, which would swallow position refs like "#2".
func escapeHashes(line string) string {
	var (
		b       strings.Builder
		quote   rune
		escaped bool
		prev    = ' '
	)

	for _, r := range line {
		switch {
		case escaped:
			escaped = false
		case quote != 0:
			if quote == '"' && r == '\\' {
				escaped = true
			} else if r == quote {
				quote = 0
			}
		case r == '\\':
			escaped = true
		case r == '\'' || r == '"':
			quote = r
		case r == '#' && unicode.IsSpace(prev):
			b.WriteRune('\\')
		}

		b.WriteRune(r)
		prev = r
	}

	return b.String()
}

// exec runs one input line. It returns false when the shell should exit.
func (sh *shell) exec(ctx context.Context, args []string) bool {
	cmds := sh.commands()

	switch args[0] {
	case "exit", "quit", "q":
		return false
	case "help", "?":
		printCommandList(sh.out, cmds)
		fprintln(sh.out, helpLine("help", "Show this help"))
		fprintln(sh.out, helpLine("exit / quit / q", "Leave the shell"))

		return true
	case "shell":
		fprintln(sh.errOut, "error: already in the shell")

		return true
	}

	// Pick up changes made by other shelf processes. Writing commands reload
	// under the lock themselves. A file that no longer loads is left for the
	// command to report, so repair still runs.
	if cmd := findCommand(cmds, args[0]); cmd != nil && cmd.Group == groupRead && sh.sess.store != nil {
		err := sh.sess.store.Reload()
		if err != nil {
			sh.sess.log.Debug("reload before command failed", "error", err)
			sh.sess.forget()
		}
	}

	dispatch(ctx, cmds, NewIO(sh.out, sh.errOut), args[0], args[1:])

	return true
}

// commands returns a fresh command set without the shell itself.
func (sh *shell) commands() []*Command {
	return slices.DeleteFunc(commands(sh.sess, nil), func(c *Command) bool {
		return c.Name() == "shell"
	})
}

// complete completes command names for the first word and flag names after
// that.
func (sh *shell) complete(line string) []string {
	var out []string

	name, rest, hasArgs := strings.Cut(line, " ")
	if !hasArgs {
		for _, c := range sh.commands() {
			if strings.HasPrefix(c.Name(), name) {
				out = append(out, c.Name())
			}
		}

		for _, b := range shellBuiltins {
			if strings.HasPrefix(b, name) {
				out = append(out, b)
			}
		}

		return out
	}

	cmd := findCommand(sh.commands(), name)
	if cmd == nil {
		return nil
	}

	head, last := "", rest
	if i := strings.LastIndex(rest, " "); i >= 0 {
		head, last = rest[:i+1], rest[i+1:]
	}

	if !strings.HasPrefix(last, "--") {
		return nil
	}

	cmd.Flags.VisitAll(func(f *flag.Flag) {
		if strings.HasPrefix("--"+f.Name, last) {
			out = append(out, name+" "+head+"--"+f.Name)
		}
	})

	return out
}

func (sh *shell) loadHistory(line *liner.State) {
	path := sh.sess.cfg.HistoryFileAbs
	if path == "" {
		return
	}

	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()

	_, err = line.ReadHistory(f)
	if err != nil {
		sh.sess.log.Debug("reading shell history", "path", path, "error", err)
	}
}

func (sh *shell) saveHistory(line *liner.State) {
	path := sh.sess.cfg.HistoryFileAbs
	if path == "" {
		return
	}

	var buf bytes.Buffer

	_, err := line.WriteHistory(&buf)
	if err == nil {
		err = atomic.WriteFile(path, &buf)
	}

	if err == nil {
		err = os.Chmod(path, 0o600)
	}

	if err != nil {
		sh.sess.log.Warn("saving shell history", "path", path, "error", err)
	}
}
