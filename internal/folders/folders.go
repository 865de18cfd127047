// Package folders makes sure every extension group has a destination
// directory under the base path.
package folders

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/mainbong/tidyup/internal/filesystem"
)

// ErrNameCollision means something other than a directory already uses
// the folder name.
var ErrNameCollision = errors.New("path exists and is not a directory")

// Status of a single destination folder
type Status string

const (
	StatusCreated Status = "created"
	StatusExists  Status = "exists"
)

// Outcome records what happened to one extension folder
type Outcome struct {
	Extension string `json:"extension" yaml:"extension" toml:"extension"`
	Path      string `json:"path" yaml:"path" toml:"path"`
	Status    Status `json:"status" yaml:"status" toml:"status"`
}

// Message renders the outcome relative to the base directory
func (o Outcome) Message() string {
	base := filepath.Dir(o.Path)
	if o.Status == StatusExists {
		return fmt.Sprintf("Folder `%s` already exists in `%s`", o.Extension, base)
	}
	return fmt.Sprintf("Created folder `%s` in `%s`", o.Extension, base)
}

// Error is returned when a destination folder cannot be provisioned
type Error struct {
	Extension string
	Path      string
	Err       error
}

func (e *Error) Error() string {
	return fmt.Sprintf("failed to create folder `%s` in `%s`: %v", e.Extension, filepath.Dir(e.Path), e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Provisioner creates extension folders
type Provisioner struct {
	fs filesystem.FileSystem
}

// NewProvisioner creates a provisioner backed by the OS file system
func NewProvisioner() *Provisioner {
	return NewProvisionerWithFS(filesystem.NewOSFileSystem())
}

// NewProvisionerWithFS creates a provisioner with a custom FileSystem (for testing)
func NewProvisionerWithFS(fs filesystem.FileSystem) *Provisioner {
	return &Provisioner{fs: fs}
}

// Ensure creates base/<ext> for every distinct extension. Existing
// directories are left untouched. It stops at the first folder that
// cannot be provisioned and returns the outcomes gathered so far.
func (p *Provisioner) Ensure(base string, extensions []string) ([]Outcome, error) {
	outcomes := make([]Outcome, 0, len(extensions))
	seen := make(map[string]bool, len(extensions))

	for _, ext := range extensions {
		if seen[ext] {
			continue
		}
		seen[ext] = true

		outcome, err := p.ensureOne(base, ext)
		if err != nil {
			return outcomes, err
		}
		outcomes = append(outcomes, outcome)
	}

	return outcomes, nil
}

func (p *Provisioner) ensureOne(base, ext string) (Outcome, error) {
	path := filepath.Join(base, ext)
	outcome := Outcome{Extension: ext, Path: path}

	info, err := p.fs.Stat(path)
	switch {
	case err == nil && info.IsDir():
		outcome.Status = StatusExists
		return outcome, nil
	case err == nil:
		return outcome, &Error{Extension: ext, Path: path, Err: ErrNameCollision}
	case !errors.Is(err, fs.ErrNotExist):
		return outcome, &Error{Extension: ext, Path: path, Err: err}
	}

	if err := p.fs.Mkdir(path, 0755); err != nil {
		return outcome, &Error{Extension: ext, Path: path, Err: err}
	}
	outcome.Status = StatusCreated
	return outcome, nil
}
