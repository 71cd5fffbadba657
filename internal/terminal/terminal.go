// Package terminal decides whether diagnostics are colored.
//
// This package handles:
//   - TTY detection for stderr, where test failures are reported
//   - NO_COLOR environment variable support
//   - TERM=dumb
package terminal

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// Color modes accepted by ColorEnabled.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
	ColorTTY    = "tty"
)

// Info holds terminal capability information.
type Info struct {
	IsTTY   bool
	NoColor bool
}

// Detect returns terminal information for the current environment.
func Detect() *Info {
	isTTY := term.IsTerminal(int(os.Stderr.Fd()))

	// Check NO_COLOR environment variable (https://no-color.org/)
	_, noColor := os.LookupEnv("NO_COLOR")

	if os.Getenv("TERM") == "dumb" {
		noColor = true
	}

	return &Info{
		IsTTY:   isTTY,
		NoColor: noColor,
	}
}

// ColorEnabled reports whether diagnostics should carry ANSI colors under
// mode. Test output is usually piped through `go test`, so auto ignores TTY
// detection; use tty to require a terminal.
func (t *Info) ColorEnabled(mode string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", ColorAuto:
		return !t.NoColor, nil
	case ColorAlways:
		return true, nil
	case ColorNever:
		return false, nil
	case ColorTTY:
		return t.IsTTY && !t.NoColor, nil
	default:
		return false, fmt.Errorf("invalid color mode %q (allowed: auto, always, never, tty)", mode)
	}
}
