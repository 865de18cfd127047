package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func tempRoot(t *testing.T, names ...string) string {
	t.Helper()
	root, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(root, name), []byte(name), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func TestRoot_PositionalPath(t *testing.T) {
	root := tempRoot(t, "report.pdf", "README")

	out, err := executeCommand(t, root, "--no-color")
	if err != nil {
		t.Fatalf("Execute() failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(root, "pdf", "report.pdf")); err != nil {
		t.Errorf("Expected report.pdf to be sorted: %v", err)
	}
	if !strings.Contains(out, "no extension") {
		t.Errorf("Expected a notice for README, got:\n%s", out)
	}
	if !strings.HasSuffix(out, "Finished sorting files in `"+root+"` according to their extensions.\n") {
		t.Errorf("Expected completion line, got:\n%s", out)
	}
}

func TestRoot_PathFlagWins(t *testing.T) {
	flagged := tempRoot(t, "a.txt")
	positional := tempRoot(t, "b.txt")

	if _, err := executeCommand(t, positional, "-p", flagged, "--no-color"); err != nil {
		t.Fatalf("Execute() failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(flagged, "txt", "a.txt")); err != nil {
		t.Errorf("Expected the --path directory to be sorted: %v", err)
	}
	if _, err := os.Stat(filepath.Join(positional, "b.txt")); err != nil {
		t.Errorf("Expected the positional directory to be untouched: %v", err)
	}
}

func TestRoot_DryRun(t *testing.T) {
	root := tempRoot(t, "photo.jpg")

	out, err := executeCommand(t, "--dry-run", "--no-color", root)
	if err != nil {
		t.Fatalf("Execute() failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "photo.jpg")); err != nil {
		t.Error("Dry run must leave files in place")
	}
	if !strings.Contains(out, "Dry run: 1 files would be sorted into 1 folders") {
		t.Errorf("Unexpected output:\n%s", out)
	}
}

func TestRoot_Errors(t *testing.T) {
	root := tempRoot(t)

	tests := []struct {
		name string
		args []string
	}{
		{"missing path", []string{filepath.Join(root, "missing")}},
		{"too many arguments", []string{root, root}},
		{"bad log level", []string{root, "--log-level", "loud"}},
		{"bad report format", []string{root, "--report", filepath.Join(root, "run.csv")}},
		{"log dir is the root", []string{root, "--log-dir", root}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := executeCommand(t, tt.args...); err == nil {
				t.Error("Expected an error, got nil")
			}
		})
	}
}

func TestRoot_LogDirInsideRoot(t *testing.T) {
	root := tempRoot(t, "notes.txt")
	logDir := filepath.Join(root, "logs")

	out, err := executeCommand(t, root, "--log-dir", logDir, "--no-color")
	if err != nil {
		t.Fatalf("Execute() failed: %v", err)
	}

	if strings.Contains(out, "Moved `"+logDir) {
		t.Errorf("The log file must not be moved, got:\n%s", out)
	}
	if _, err := os.Stat(filepath.Join(root, "log")); !os.IsNotExist(err) {
		t.Error("No folder may be created for the log file")
	}
	if _, err := os.Stat(filepath.Join(logDir, "latest.log")); err != nil {
		t.Errorf("latest.log must still point at the log file: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "txt", "notes.txt")); err != nil {
		t.Errorf("Expected notes.txt to be sorted: %v", err)
	}
}

func TestVersion(t *testing.T) {
	out, err := executeCommand(t, "version")
	if err != nil {
		t.Fatalf("Execute() failed: %v", err)
	}
	if strings.TrimSpace(out) != version {
		t.Errorf("Expected %q, got %q", version, out)
	}
}
