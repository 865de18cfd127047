package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mainbong/tidyup/internal/logger"
	"github.com/mainbong/tidyup/internal/report"
)

// Options holds the settings of a single run. tidyup reads no
// configuration file; every field comes from command line flags.
type Options struct {
	Root       string
	DryRun     bool
	ReportPath string
	LogDir     string
	LogLevel   string // "debug", "info", "warn", "error"
	NoColor    bool
}

// Defaults returns options for sorting the current directory
func Defaults() *Options {
	return &Options{
		Root:     ".",
		LogLevel: "info",
	}
}

// Normalize resolves Root to an absolute path without symlinks and does
// the same for the existing part of the report and log paths, so they
// compare equal to the paths a scan of Root produces. It fails when Root
// does not exist.
func (o *Options) Normalize() error {
	if strings.TrimSpace(o.Root) == "" {
		o.Root = "."
	}

	abs, err := filepath.Abs(o.Root)
	if err != nil {
		return fmt.Errorf("failed to resolve path %q: %w", o.Root, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return fmt.Errorf("failed to resolve path %q: %w", o.Root, err)
	}
	o.Root = resolved

	if o.ReportPath != "" {
		if o.ReportPath, err = filepath.Abs(o.ReportPath); err != nil {
			return fmt.Errorf("failed to resolve report path: %w", err)
		}
		o.ReportPath = resolveExisting(o.ReportPath)
	}
	if o.LogDir != "" {
		if o.LogDir, err = filepath.Abs(o.LogDir); err != nil {
			return fmt.Errorf("failed to resolve log directory: %w", err)
		}
		o.LogDir = resolveExisting(o.LogDir)
	}

	o.LogLevel = strings.ToLower(strings.TrimSpace(o.LogLevel))
	if o.LogLevel == "" {
		o.LogLevel = "info"
	}
	return nil
}

// resolveExisting evaluates symlinks in the longest existing prefix of an
// absolute path and keeps the missing tail as is.
func resolveExisting(path string) string {
	dir, rest := path, ""
	for {
		if resolved, err := filepath.EvalSymlinks(dir); err == nil {
			return filepath.Join(resolved, rest)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return path
		}
		rest = filepath.Join(filepath.Base(dir), rest)
		dir = parent
	}
}

// Validate checks the options after Normalize
func (o *Options) Validate() error {
	info, err := os.Stat(o.Root)
	if err != nil {
		return fmt.Errorf("cannot access %s: %w", o.Root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", o.Root)
	}

	if _, err := logger.ParseLevel(o.LogLevel); err != nil {
		return err
	}

	// log files written straight into Root would be sorted mid-run
	if o.LogDir == o.Root {
		return fmt.Errorf("log directory %s cannot be the folder being sorted", o.LogDir)
	}

	if o.ReportPath != "" {
		if _, err := report.FormatFor(o.ReportPath); err != nil {
			return err
		}
	}
	return nil
}

// Level returns the parsed log level, INFO when it is invalid
func (o *Options) Level() logger.LogLevel {
	level, _ := logger.ParseLevel(o.LogLevel)
	return level
}
