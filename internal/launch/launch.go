// Package launch runs a single child process to completion with a set of
// environment bindings merged into the inherited environment.
package launch

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	launcherrors "github.com/musher-dev/envexec/internal/errors"
)

// Binding is one environment variable passed to the child.
type Binding struct {
	Key   string
	Value string
}

// String renders the binding in KEY=VALUE form.
func (b Binding) String() string {
	return b.Key + "=" + b.Value
}

// Status describes how the child exited.
type Status struct {
	Success bool
	// Code is the exit code, or -1 when the child was terminated by a signal.
	Code int
	// Desc is the platform description, e.g. "exit status 3" or "signal: killed".
	Desc string
}

// String returns the platform description.
func (s Status) String() string {
	return s.Desc
}

// Result is the outcome of a child that ran to completion.
type Result struct {
	Args     []string
	Status   Status
	Stdout   []byte
	Stderr   []byte
	Duration time.Duration
}

// Execute spawns args[0] with args[1:], waits for it to exit and captures its
// output. A non-zero exit is reported through Result.Status, not as an error;
// the returned error is always a *errors.LaunchError of kind precondition or
// spawn.
func Execute(args []string, env []Binding) (*Result, error) {
	if len(args) == 0 {
		return nil, launcherrors.MissingCommand()
	}

	cmd := exec.Command(args[0], args[1:]...) //nolint:gosec // G204: argv is supplied by the calling test
	cmd.Env = Merge(os.Environ(), env)

	var stdout, stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	startedAt := time.Now()
	if err := cmd.Start(); err != nil {
		return nil, launcherrors.SpawnFailed(err)
	}

	waitErr := cmd.Wait()
	duration := time.Since(startedAt)

	if waitErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(waitErr, &exitErr) {
			return nil, launcherrors.SpawnFailed(waitErr)
		}
	}

	state := cmd.ProcessState

	return &Result{
		Args: append([]string(nil), args...),
		Status: Status{
			Success: state.Success(),
			Code:    state.ExitCode(),
			Desc:    state.String(),
		},
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
		Duration: duration,
	}, nil
}

// Merge builds a child environment block from parent (KEY=VALUE entries) and
// bindings. Parent entries whose key is rebound are dropped and the bindings
// are appended in order, so a binding always overrides an inherited value.
// Duplicate keys among the bindings are kept; os/exec keeps the last one.
func Merge(parent []string, bindings []Binding) []string {
	rebound := make(map[string]struct{}, len(bindings))
	for _, b := range bindings {
		rebound[envKey(b.Key)] = struct{}{}
	}

	merged := make([]string, 0, len(parent)+len(bindings))

	for _, kv := range parent {
		key, _, _ := strings.Cut(kv, "=")
		if _, ok := rebound[envKey(key)]; ok {
			continue
		}

		merged = append(merged, kv)
	}

	for _, b := range bindings {
		merged = append(merged, b.String())
	}

	return merged
}

func envKey(key string) string {
	if runtime.GOOS == "windows" {
		return strings.ToUpper(key)
	}

	return key
}
