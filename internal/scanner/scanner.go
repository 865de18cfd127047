// Package scanner walks a directory tree and groups the regular files it
// finds by filename extension.
package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/mainbong/tidyup/internal/filesystem"
)

// ErrFatalPath is returned when the scan root cannot be used at all.
var ErrFatalPath = errors.New("root path cannot be read")

// NoticeKind classifies a non-fatal condition met during a scan
type NoticeKind string

const (
	NoticeNoExtension NoticeKind = "no_extension"
	NoticeSymlink     NoticeKind = "symlink"
	NoticeIrregular   NoticeKind = "irregular"
	NoticeUnreadable  NoticeKind = "unreadable"
	NoticeExcluded    NoticeKind = "excluded"
)

// Notice is a scan warning. The entry it names is left out of the result.
type Notice struct {
	Kind   NoticeKind `json:"kind" yaml:"kind" toml:"kind"`
	Path   string     `json:"path" yaml:"path" toml:"path"`
	Detail string     `json:"detail,omitempty" yaml:"detail,omitempty" toml:"detail,omitempty"`
}

// Message renders the notice as a single human readable line
func (n Notice) Message() string {
	switch n.Kind {
	case NoticeNoExtension:
		return fmt.Sprintf("Skipped `%s`: no extension", n.Path)
	case NoticeSymlink:
		return fmt.Sprintf("Skipped `%s`: symbolic link", n.Path)
	case NoticeIrregular:
		return fmt.Sprintf("Skipped `%s`: not a regular file", n.Path)
	case NoticeUnreadable:
		return fmt.Sprintf("Skipped `%s`: cannot be read: %s", n.Path, n.Detail)
	case NoticeExcluded:
		return fmt.Sprintf("Skipped `%s`: written by tidyup", n.Path)
	default:
		return fmt.Sprintf("Skipped `%s`", n.Path)
	}
}

// Group holds every file sharing one extension, in discovery order.
// Sorted lists files already sitting in root/<extension>; they keep the
// group's folder in play but are not moved again.
type Group struct {
	Extension string   `json:"extension" yaml:"extension" toml:"extension"`
	Paths     []string `json:"paths" yaml:"paths" toml:"paths"`
	Sorted    []string `json:"sorted,omitempty" yaml:"sorted,omitempty" toml:"sorted,omitempty"`
}

// Result is a snapshot of a scan. Groups keep the order in which their
// extension was first seen.
type Result struct {
	Root    string
	Groups  []*Group
	Notices []Notice

	index map[string]*Group
}

func newResult(root string) *Result {
	return &Result{
		Root:  root,
		index: make(map[string]*Group),
	}
}

func (r *Result) group(ext string) *Group {
	group, ok := r.index[ext]
	if !ok {
		group = &Group{Extension: ext}
		r.index[ext] = group
		r.Groups = append(r.Groups, group)
	}
	return group
}

func (r *Result) add(ext, path string) {
	group := r.group(ext)
	group.Paths = append(group.Paths, path)
}

func (r *Result) addSorted(ext, path string) {
	group := r.group(ext)
	group.Sorted = append(group.Sorted, path)
}

func (r *Result) notice(kind NoticeKind, path string, err error) {
	n := Notice{Kind: kind, Path: path}
	if err != nil {
		n.Detail = err.Error()
	}
	r.Notices = append(r.Notices, n)
}

// Group returns the group for an extension
func (r *Result) Group(ext string) (*Group, bool) {
	group, ok := r.index[ext]
	return group, ok
}

// Extensions returns the distinct extensions in group order
func (r *Result) Extensions() []string {
	exts := make([]string, 0, len(r.Groups))
	for _, group := range r.Groups {
		exts = append(exts, group.Extension)
	}
	return exts
}

// FileCount returns the number of files to move across all groups
func (r *Result) FileCount() int {
	count := 0
	for _, group := range r.Groups {
		count += len(group.Paths)
	}
	return count
}

// Extension returns the part of name after its final dot. Names without a
// dot, dot-files such as ".bashrc" and names ending in a dot have none.
func Extension(name string) (string, bool) {
	i := strings.LastIndexByte(name, '.')
	if i <= 0 || i == len(name)-1 {
		return "", false
	}
	return name[i+1:], true
}

// Scanner builds extension groups from a directory tree
type Scanner struct {
	fs filesystem.FileSystem
}

// NewScanner creates a scanner backed by the OS file system
func NewScanner() *Scanner {
	return NewScannerWithFS(filesystem.NewOSFileSystem())
}

// NewScannerWithFS creates a scanner with a custom FileSystem (for testing)
func NewScannerWithFS(fs filesystem.FileSystem) *Scanner {
	return &Scanner{fs: fs}
}

// Scan walks root to any depth and groups regular files by extension.
// Entries that cannot be classified are recorded as notices; only a
// problem with root itself is an error. Entries named in exclude, and
// everything below an excluded directory, are skipped with a notice.
func (s *Scanner) Scan(root string, exclude ...string) (*Result, error) {
	root = filepath.Clean(root)

	excluded := make(map[string]bool, len(exclude))
	for _, path := range exclude {
		excluded[filepath.Clean(path)] = true
	}

	info, err := s.fs.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFatalPath, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrFatalPath, root)
	}

	result := newResult(root)
	err = s.fs.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			result.notice(NoticeUnreadable, path, err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if path != root && excluded[path] {
			result.notice(NoticeExcluded, path, nil)
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		switch mode := d.Type(); {
		case d.IsDir():
			return nil
		case mode&fs.ModeSymlink != 0:
			result.notice(NoticeSymlink, path, nil)
			return nil
		case !mode.IsRegular():
			result.notice(NoticeIrregular, path, nil)
			return nil
		}

		ext, ok := Extension(d.Name())
		if !ok {
			result.notice(NoticeNoExtension, path, nil)
			return nil
		}
		if filepath.Dir(path) == filepath.Join(root, ext) {
			result.addSorted(ext, path)
			return nil
		}

		result.add(ext, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFatalPath, err)
	}

	return result, nil
}
