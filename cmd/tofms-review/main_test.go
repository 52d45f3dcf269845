package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRun_Usage(t *testing.T) {
	t.Setenv("TOFMS_CONFIG", "")
	t.Setenv("TOFMS_OUTPUT_ROOT", t.TempDir())

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"help", []string{"--help"}, 0},
		{"version", []string{"-v"}, 0},
		{"config without path", []string{"--config"}, 2},
		{"unknown command", []string{"frobnicate"}, 2},
		{"plots without dir", []string{"plots"}, 2},
		{"missing input dir", []string{"plots", filepath.Join(t.TempDir(), "absent")}, 1},
		{"missing config file", []string{"--config", filepath.Join(t.TempDir(), "absent.yaml"), "plots", "."}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := run(tt.args); got != tt.want {
				t.Errorf("run(%v): got %d, want %d", tt.args, got, tt.want)
			}
		})
	}
}

func TestRun_Plots(t *testing.T) {
	root := t.TempDir()
	t.Setenv("TOFMS_CONFIG", "")
	t.Setenv("TOFMS_OUTPUT_ROOT", root)

	in := t.TempDir()
	if err := os.WriteFile(filepath.Join(in, "a.data"), []byte("0 1\n1 4\n2 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(in, "bad.data"), []byte("oops\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	// A bad file is skipped, not fatal.
	if got := run([]string{"plots", in}); got != 0 {
		t.Fatalf("run: got %d, want 0", got)
	}

	matches, _ := filepath.Glob(filepath.Join(root, "outputs_*", "a.png"))
	if len(matches) != 1 {
		t.Errorf("expected one a.png under %s, got %v", root, matches)
	}
}
