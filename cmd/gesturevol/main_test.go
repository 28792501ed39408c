package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ayusman/gesturevol/internal/app"
	"github.com/ayusman/gesturevol/internal/volume"
	"github.com/rs/zerolog"
)

func TestSelectBackend_Fallbacks(t *testing.T) {
	tests := []struct {
		name    string
		enabled bool
		dir     string
	}{
		{"audio disabled", false, t.TempDir()},
		{"no plugin installed", true, t.TempDir()},
		{"missing directory", true, filepath.Join(t.TempDir(), "nope")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := selectBackend(tt.enabled, tt.dir, zerolog.Nop())
			if _, ok := b.(volume.Noop); !ok {
				t.Errorf("selectBackend() = %T, want volume.Noop", b)
			}
		})
	}
}

func TestResolvePluginDir(t *testing.T) {
	if got := resolvePluginDir("/opt/plugins"); got != "/opt/plugins" {
		t.Errorf("resolvePluginDir(explicit) = %q", got)
	}

	// cmd/gesturevol has no plugins directory, so the home fallback applies
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	want := filepath.Join(home, ".gesturevol", "plugins")
	if got := resolvePluginDir(""); got != want {
		t.Errorf("resolvePluginDir(\"\") = %q, want %q", got, want)
	}
}

func executeRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		defaults := app.DefaultConfig()
		widthFlag = defaults.Width
		cameraFlag = defaults.CameraID
		noAudioFlag = false
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func TestRootCmd_ErrorsReportedOnce(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"invalid config", []string{"--no-audio", "--width", "0"}, "Invalid configuration"},
		{"bad flag value", []string{"--camera", "abc"}, "invalid argument"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := executeRoot(t, tt.args...)
			if err == nil {
				t.Fatal("Execute() error = nil")
			}
			if got := strings.Count(out, tt.want); got != 1 {
				t.Errorf("%q appears %d times, want once:\n%s", tt.want, got, out)
			}
			if got := strings.Count(out, err.Error()); got != 1 {
				t.Errorf("error text appears %d times, want once:\n%s", got, out)
			}
		})
	}
}
