package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mainbong/tidyup/internal/logger"
)

func TestDefaults(t *testing.T) {
	opts := Defaults()

	if opts.Root != "." {
		t.Errorf("Expected root '.', got '%s'", opts.Root)
	}
	if opts.LogLevel != "info" {
		t.Errorf("Expected log level 'info', got '%s'", opts.LogLevel)
	}
	if opts.DryRun || opts.ReportPath != "" || opts.LogDir != "" {
		t.Errorf("Unexpected defaults: %+v", opts)
	}
}

func TestNormalize_ResolvesSymlinks(t *testing.T) {
	base := t.TempDir()
	realDir := filepath.Join(base, "real")
	if err := os.Mkdir(realDir, 0755); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(base, "link")
	if err := os.Symlink(realDir, link); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	opts := Defaults()
	opts.Root = link
	if err := opts.Normalize(); err != nil {
		t.Fatalf("Normalize() failed: %v", err)
	}

	expected, _ := filepath.EvalSymlinks(realDir)
	if opts.Root != expected {
		t.Errorf("Expected root '%s', got '%s'", expected, opts.Root)
	}
}

func TestNormalize_EmptyRootMeansWorkingDirectory(t *testing.T) {
	opts := &Options{LogLevel: " WARN "}
	if err := opts.Normalize(); err != nil {
		t.Fatalf("Normalize() failed: %v", err)
	}

	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	expected, _ := filepath.EvalSymlinks(cwd)
	if opts.Root != expected {
		t.Errorf("Expected root '%s', got '%s'", expected, opts.Root)
	}
	if opts.LogLevel != "warn" {
		t.Errorf("Expected log level 'warn', got '%s'", opts.LogLevel)
	}
	if opts.Level() != logger.WARN {
		t.Errorf("Expected WARN, got %v", opts.Level())
	}
}

func TestNormalize_MissingRoot(t *testing.T) {
	opts := Defaults()
	opts.Root = filepath.Join(t.TempDir(), "missing")

	if err := opts.Normalize(); err == nil {
		t.Error("Expected error for missing root, got nil")
	}
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file.txt")
	if err := os.WriteFile(file, nil, 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"valid", Options{Root: dir, LogLevel: "info"}, false},
		{"valid report", Options{Root: dir, LogLevel: "debug", ReportPath: "/tmp/run.yaml"}, false},
		{"root is a file", Options{Root: file, LogLevel: "info"}, true},
		{"bad log level", Options{Root: dir, LogLevel: "loud"}, true},
		{"bad report format", Options{Root: dir, LogLevel: "info", ReportPath: "/tmp/run.csv"}, true},
		{"log dir inside root", Options{Root: dir, LogLevel: "info", LogDir: filepath.Join(dir, "logs")}, false},
		{"log dir is root", Options{Root: dir, LogLevel: "info", LogDir: dir}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNormalize_ResolvesOutputPathsUnderLinkedRoot(t *testing.T) {
	base := t.TempDir()
	realDir := filepath.Join(base, "real")
	if err := os.Mkdir(realDir, 0755); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(base, "link")
	if err := os.Symlink(realDir, link); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	opts := Defaults()
	opts.Root = link
	opts.LogDir = filepath.Join(link, "logs", "tidyup")
	opts.ReportPath = filepath.Join(link, "run.json")
	if err := opts.Normalize(); err != nil {
		t.Fatalf("Normalize() failed: %v", err)
	}

	if opts.LogDir != filepath.Join(opts.Root, "logs", "tidyup") {
		t.Errorf("Expected log dir under %s, got %s", opts.Root, opts.LogDir)
	}
	if opts.ReportPath != filepath.Join(opts.Root, "run.json") {
		t.Errorf("Expected report path under %s, got %s", opts.Root, opts.ReportPath)
	}
}
