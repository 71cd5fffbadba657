// Package diagnostic renders the report shown when a launched command fails.
//
// A report is, in order: the command line; the exit status when the command
// did not succeed; stdout when non-empty; stderr when non-empty. Each part
// starts on its own line.
package diagnostic

import (
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"

	launcherrors "github.com/musher-dev/envexec/internal/errors"
	"github.com/musher-dev/envexec/internal/launch"
)

// Formatter renders diagnostics with an optional ANSI palette.
type Formatter struct {
	commandColor *color.Color
	stdoutColor  *color.Color
	stderrColor  *color.Color
}

// New returns a Formatter. When colored is false the output is plain text.
func New(colored bool) *Formatter {
	f := &Formatter{
		commandColor: color.New(color.FgHiMagenta),
		stdoutColor:  color.New(color.FgHiGreen),
		stderrColor:  color.New(color.FgHiRed),
	}

	// color.NoColor is global and derived from stdout; force each palette
	// entry so the choice is per formatter.
	for _, c := range []*color.Color{f.commandColor, f.stdoutColor, f.stderrColor} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	return f
}

// Command renders the command line, arguments joined by single spaces.
func (f *Formatter) Command(args []string) string {
	return f.commandColor.Sprint(strings.Join(args, " "))
}

// Format renders the full report for res. Output that is not valid UTF-8
// yields a decode error instead of a report.
func (f *Formatter) Format(res *launch.Result) (string, error) {
	stdout, err := decode(res.Stdout, "stdout")
	if err != nil {
		return "", err
	}

	stderr, err := decode(res.Stderr, "stderr")
	if err != nil {
		return "", err
	}

	var b strings.Builder

	b.WriteString(f.Command(res.Args))

	if !res.Status.Success {
		b.WriteString("\n")
		b.WriteString(res.Status.String())
	}

	if stdout != "" {
		b.WriteString("\n")
		b.WriteString(f.stdoutColor.Sprint(stdout))
	}

	if stderr != "" {
		b.WriteString("\n")
		b.WriteString(f.stderrColor.Sprint(stderr))
	}

	return b.String(), nil
}

func decode(data []byte, stream string) (string, error) {
	if !utf8.Valid(data) {
		return "", launcherrors.OutputNotUTF8(stream)
	}

	return string(data), nil
}
