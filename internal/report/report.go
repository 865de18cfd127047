// Package report records what a run did and writes it as JSON, YAML or
// TOML, picked from the output file's extension.
package report

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/mainbong/tidyup/internal/filesystem"
	"github.com/mainbong/tidyup/internal/folders"
	"github.com/mainbong/tidyup/internal/mover"
	"github.com/mainbong/tidyup/internal/scanner"
)

// Format is a report serialization format
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFor determines the report format based on extension
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unsupported report format %q (use .json, .yaml, .yml or .toml)", filepath.Ext(path))
	}
}

// Report is the record of a single run
type Report struct {
	ID         string            `json:"id" yaml:"id" toml:"id"`
	Root       string            `json:"root" yaml:"root" toml:"root"`
	DryRun     bool              `json:"dry_run" yaml:"dry_run" toml:"dry_run"`
	StartedAt  time.Time         `json:"started_at" yaml:"started_at" toml:"started_at"`
	FinishedAt time.Time         `json:"finished_at" yaml:"finished_at" toml:"finished_at"`
	Counts     mover.Counts      `json:"counts" yaml:"counts" toml:"counts"`
	Groups     []*scanner.Group  `json:"groups" yaml:"groups" toml:"groups"`
	Notices    []scanner.Notice  `json:"notices" yaml:"notices" toml:"notices"`
	Folders    []folders.Outcome `json:"folders" yaml:"folders" toml:"folders"`
	Moves      []mover.Result    `json:"moves" yaml:"moves" toml:"moves"`
}

// New starts a report for root
func New(root string) *Report {
	return &Report{
		ID:        uuid.NewString(),
		Root:      root,
		StartedAt: time.Now().UTC(),
	}
}

// Finish stamps the end time and tallies the moves
func (r *Report) Finish() {
	r.FinishedAt = time.Now().UTC()
	r.Counts = mover.Tally(r.Moves)
}

// Writer writes reports to disk
type Writer struct {
	fs filesystem.FileSystem
}

// NewWriter creates a report writer backed by the OS file system
func NewWriter() *Writer {
	return NewWriterWithFS(filesystem.NewOSFileSystem())
}

// NewWriterWithFS creates a report writer with a custom FileSystem (for testing)
func NewWriterWithFS(fs filesystem.FileSystem) *Writer {
	return &Writer{fs: fs}
}

// Write serializes r into path in the format its extension names
func (w *Writer) Write(path string, r *Report) error {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}

	data, err := Marshal(format, r)
	if err != nil {
		return err
	}

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := w.fs.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}

	if err := w.fs.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	return nil
}

// Marshal encodes r in the given format
func Marshal(format Format, r *Report) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	switch format {
	case FormatJSON:
		data, err = json.MarshalIndent(r, "", "  ")
	case FormatYAML:
		data, err = yaml.Marshal(r)
	case FormatTOML:
		data, err = toml.Marshal(r)
	default:
		return nil, fmt.Errorf("unsupported report format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s report: %w", format, err)
	}
	return data, nil
}
