package terminal

import "testing"

func TestInfo_ColorEnabled(t *testing.T) {
	tests := []struct {
		name    string
		info    Info
		mode    string
		want    bool
		wantErr bool
	}{
		{name: "auto default", info: Info{}, mode: "", want: true},
		{name: "auto respects NO_COLOR", info: Info{NoColor: true}, mode: "auto", want: false},
		{name: "always ignores NO_COLOR", info: Info{NoColor: true}, mode: "always", want: true},
		{name: "never", info: Info{IsTTY: true}, mode: "never", want: false},
		{name: "tty without terminal", info: Info{}, mode: "tty", want: false},
		{name: "tty with terminal", info: Info{IsTTY: true}, mode: "TTY", want: true},
		{name: "tty with NO_COLOR", info: Info{IsTTY: true, NoColor: true}, mode: "tty", want: false},
		{name: "invalid mode", info: Info{}, mode: "rainbow", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.info.ColorEnabled(tt.mode)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ColorEnabled(%q) error = %v, wantErr %v", tt.mode, err, tt.wantErr)
			}

			if got != tt.want {
				t.Errorf("ColorEnabled(%q) = %v, want %v", tt.mode, got, tt.want)
			}
		})
	}
}

func TestDetect(t *testing.T) {
	t.Run("NO_COLOR", func(t *testing.T) {
		t.Setenv("NO_COLOR", "1")
		t.Setenv("TERM", "xterm-256color")

		if info := Detect(); !info.NoColor {
			t.Errorf("NoColor = false with NO_COLOR set")
		}
	})

	t.Run("dumb terminal", func(t *testing.T) {
		t.Setenv("TERM", "dumb")

		if info := Detect(); !info.NoColor {
			t.Errorf("NoColor = false with TERM=dumb")
		}
	})
}
