package errors

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"
)

func TestLaunchError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *LaunchError
		want string
	}{
		{
			name: "message only",
			err:  MissingCommand(),
			want: "Missing command",
		},
		{
			name: "with cause",
			err:  SpawnFailed(os.ErrNotExist),
			want: "Failed to execute command: file does not exist",
		},
		{
			name: "with detail",
			err:  CommandFailed("false\nexit status 1"),
			want: "Command failed\nfalse\nexit status 1",
		},
		{
			name: "cause and detail",
			err:  SpawnFailed(os.ErrPermission).WithDetail("/tmp/x"),
			want: "Failed to execute command: permission denied\n/tmp/x",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLaunchError_Unwrap(t *testing.T) {
	err := fmt.Errorf("launch: %w", SpawnFailed(os.ErrNotExist))

	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("errors.Is(err, os.ErrNotExist) = false, want true")
	}

	var le *LaunchError
	if !As(err, &le) {
		t.Fatalf("As() = false, want true")
	}

	if le.Kind != KindSpawn {
		t.Errorf("Kind = %v, want %v", le.Kind, KindSpawn)
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{name: "nil", err: nil, want: 0},
		{name: "plain error", err: errors.New("boom"), want: 0},
		{name: "precondition", err: MissingCommand(), want: KindPrecondition},
		{name: "exit", err: CommandFailed("x"), want: KindExit},
		{name: "decode wrapped", err: fmt.Errorf("format: %w", OutputNotUTF8("stdout")), want: KindDecode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKind_String(t *testing.T) {
	tests := map[Kind]string{
		KindPrecondition: "precondition",
		KindSpawn:        "spawn",
		KindExit:         "exit",
		KindDecode:       "decode",
		Kind(42):         "unknown",
	}

	for kind, want := range tests {
		if got := kind.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", int(kind), got, want)
		}
	}
}

func TestConstructorsHaveHints(t *testing.T) {
	for _, err := range []*LaunchError{MissingCommand(), SpawnFailed(nil), OutputNotUTF8("stderr")} {
		if strings.TrimSpace(err.Hint) == "" {
			t.Errorf("%q has no hint", err.Message)
		}
	}
}

func TestOutputNotUTF8_NamesStream(t *testing.T) {
	err := OutputNotUTF8("stderr")

	if !strings.Contains(err.Error(), "stderr") {
		t.Errorf("Error() = %q, want to mention stderr", err.Error())
	}
}
