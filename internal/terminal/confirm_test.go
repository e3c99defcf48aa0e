package terminal

import (
	"bytes"
	"strings"
	"testing"
)

func TestConfirm(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		assumeYes bool
		want      bool
	}{
		{"yes", "y\n", false, true},
		{"yes word", "yes\n", false, true},
		{"uppercase", "YES\n", false, true},
		{"no", "n\n", false, false},
		{"empty defaults to no", "\n", false, false},
		{"garbage", "maybe\n", false, false},
		{"assume yes skips prompt", "", true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := Confirm(strings.NewReader(tt.input), &out, "delete everything?", tt.assumeYes)
			if err != nil && tt.input != "" {
				t.Fatalf("Confirm() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Confirm(%q) = %v, want %v", tt.input, got, tt.want)
			}
			if !tt.assumeYes && !strings.Contains(out.String(), "delete everything?") {
				t.Errorf("prompt not written: %q", out.String())
			}
		})
	}
}
