package cli

import (
	"fmt"
	"io"
)

// IO is the output side of one command run. Results go to out; errors and
// warnings go to errOut.
type IO struct {
	out    io.Writer
	errOut io.Writer

	warnings []string
	flushed  bool
}

// NewIO creates a new IO instance.
func NewIO(out, errOut io.Writer) *IO {
	return &IO{out: out, errOut: errOut}
}

// Warn records a problem the user should act on, e.g.
//
//	io.Warn("books.json: malformed library document", "run 'shelf repair --reset'")
//
// Warnings do not stop normal output. They are printed to stderr before the
// first line of output and again by [IO.Finish], so they survive head and
// tail, and they make the command exit 1.
func (o *IO) Warn(issue, action string) {
	o.warnings = append(o.warnings, issue+": "+action)
}

// Println writes a line to stdout.
func (o *IO) Println(a ...any) {
	o.flushOnce()
	_, _ = fmt.Fprintln(o.out, a...)
}

// Printf writes formatted output to stdout.
func (o *IO) Printf(format string, a ...any) {
	o.flushOnce()
	_, _ = fmt.Fprintf(o.out, format, a...)
}

// ErrPrintln writes a line to stderr.
func (o *IO) ErrPrintln(a ...any) {
	_, _ = fmt.Fprintln(o.errOut, a...)
}

// Finish prints pending warnings and returns the exit code: 1 if anything
// was warned about, 0 otherwise.
func (o *IO) Finish() int {
	o.flushOnce()
	o.printWarnings()

	if len(o.warnings) > 0 {
		return 1
	}

	return 0
}

func (o *IO) flushOnce() {
	if o.flushed || len(o.warnings) == 0 {
		return
	}

	o.flushed = true
	o.printWarnings()
}

func (o *IO) printWarnings() {
	for _, w := range o.warnings {
		_, _ = fmt.Fprintln(o.errOut, "warning:", w)
	}
}
