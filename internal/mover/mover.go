// Package mover renames scanned files into their extension folders as a
// best-effort batch: every file succeeds or fails on its own.
package mover

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mainbong/tidyup/internal/filesystem"
	"github.com/mainbong/tidyup/internal/scanner"
)

// Status of a single move attempt
type Status string

const (
	StatusMoved  Status = "moved"
	StatusFailed Status = "failed"
)

// Error describes a failed move
type Error struct {
	Source      string
	Destination string
	Err         error
}

func (e *Error) Error() string {
	return fmt.Sprintf("failed to move `%s` to `%s`: %v", e.Source, e.Destination, cause(e.Err))
}

func (e *Error) Unwrap() error {
	return e.Err
}

// cause strips the *os.LinkError wrapper, whose text repeats both paths.
func cause(err error) error {
	var linkErr *os.LinkError
	if errors.As(err, &linkErr) {
		return linkErr.Err
	}
	return err
}

// Result is the outcome of one move attempt
type Result struct {
	Extension   string `json:"extension" yaml:"extension" toml:"extension"`
	Source      string `json:"source" yaml:"source" toml:"source"`
	Destination string `json:"destination" yaml:"destination" toml:"destination"`
	Status      Status `json:"status" yaml:"status" toml:"status"`
	Failure     string `json:"failure,omitempty" yaml:"failure,omitempty" toml:"failure,omitempty"`
	Err         error  `json:"-" yaml:"-" toml:"-"`
}

// Message renders the result as a single human readable line
func (r Result) Message() string {
	if r.Status == StatusFailed {
		return "Error: " + r.Err.Error()
	}
	return fmt.Sprintf("Moved `%s` to `%s`", r.Source, r.Destination)
}

// Counts tallies move results
type Counts struct {
	Moved  int `json:"moved" yaml:"moved" toml:"moved"`
	Failed int `json:"failed" yaml:"failed" toml:"failed"`
}

// Tally counts moved and failed results
func Tally(results []Result) Counts {
	var counts Counts
	for _, r := range results {
		if r.Status == StatusMoved {
			counts.Moved++
		} else {
			counts.Failed++
		}
	}
	return counts
}

// Destination returns base/ext/<file name of path>
func Destination(base, ext, path string) string {
	return filepath.Join(base, ext, filepath.Base(path))
}

// Executor moves files into extension folders
type Executor struct {
	fs filesystem.FileSystem
}

// NewExecutor creates an executor backed by the OS file system
func NewExecutor() *Executor {
	return NewExecutorWithFS(filesystem.NewOSFileSystem())
}

// NewExecutorWithFS creates an executor with a custom FileSystem (for testing)
func NewExecutorWithFS(fs filesystem.FileSystem) *Executor {
	return &Executor{fs: fs}
}

// MoveAll moves every file of every group into base/<extension>. A failed
// move never stops the batch and is never retried; the file stays where
// it was. onResult, if set, sees each result as soon as it is known.
func (e *Executor) MoveAll(base string, groups []*scanner.Group, onResult func(Result)) []Result {
	var results []Result
	for _, group := range groups {
		for _, path := range group.Paths {
			result := e.move(base, group.Extension, path)
			if onResult != nil {
				onResult(result)
			}
			results = append(results, result)
		}
	}
	return results
}

func (e *Executor) move(base, ext, path string) Result {
	dest := Destination(base, ext, path)
	result := Result{
		Extension:   ext,
		Source:      path,
		Destination: dest,
		Status:      StatusMoved,
	}

	if err := e.fs.Rename(path, dest); err != nil {
		moveErr := &Error{Source: path, Destination: dest, Err: err}
		result.Status = StatusFailed
		result.Err = moveErr
		result.Failure = cause(err).Error()
	}
	return result
}
