package filesystem

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// MockFileSystem is a mock implementation of FileSystem for testing
type MockFileSystem struct {
	files         map[string][]byte
	dirs          map[string]bool
	symlinks      map[string]string
	filePerms     map[string]os.FileMode
	dirPerms      map[string]os.FileMode
	mu            sync.RWMutex
	writeErrors   map[string]error
	statErrors    map[string]error
	mkdirErrors   map[string]error
	readDirErrors map[string]error
	renameErrors  map[string]error
}

// NewMockFileSystem creates a new MockFileSystem instance
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		files:         make(map[string][]byte),
		dirs:          make(map[string]bool),
		symlinks:      make(map[string]string),
		filePerms:     make(map[string]os.FileMode),
		dirPerms:      make(map[string]os.FileMode),
		writeErrors:   make(map[string]error),
		statErrors:    make(map[string]error),
		mkdirErrors:   make(map[string]error),
		readDirErrors: make(map[string]error),
		renameErrors:  make(map[string]error),
	}
}

// SetWriteError sets an error to return when writing a specific file
func (m *MockFileSystem) SetWriteError(path string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writeErrors[path] = err
}

// SetStatError sets an error to return when stating a specific path
func (m *MockFileSystem) SetStatError(path string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statErrors[path] = err
}

// SetMkdirError sets an error to return when creating a specific directory
func (m *MockFileSystem) SetMkdirError(path string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mkdirErrors[path] = err
}

// SetReadDirError sets an error to return when listing a specific directory
func (m *MockFileSystem) SetReadDirError(path string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.readDirErrors[path] = err
}

// SetRenameError sets an error to return when moving a specific source path
func (m *MockFileSystem) SetRenameError(oldpath string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.renameErrors[oldpath] = err
}

// AddFile adds a file to the mock filesystem. Missing parent directories
// are added as well.
func (m *MockFileSystem) AddFile(path string, data []byte, perm os.FileMode) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.addParentsLocked(path)
	m.files[path] = data
	m.filePerms[path] = perm
}

// AddDir adds a directory (and its parents) to the mock filesystem
func (m *MockFileSystem) AddDir(path string, perm os.FileMode) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.addParentsLocked(path)
	m.dirs[path] = true
	m.dirPerms[path] = perm
}

// AddSymlink adds a symbolic link pointing at target
func (m *MockFileSystem) AddSymlink(path, target string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.addParentsLocked(path)
	m.symlinks[path] = target
}

// GetFile returns the content of a file
func (m *MockFileSystem) GetFile(path string) []byte {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.files[path]
}

// HasFile reports whether a regular file exists at path
func (m *MockFileSystem) HasFile(path string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.files[path]
	return ok
}

// HasDir reports whether a directory exists at path
func (m *MockFileSystem) HasDir(path string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.dirs[path]
}

func (m *MockFileSystem) addParentsLocked(path string) {
	for dir := filepath.Dir(path); ; dir = filepath.Dir(dir) {
		if !m.dirs[dir] {
			m.dirs[dir] = true
			m.dirPerms[dir] = 0755
		}
		if parent := filepath.Dir(dir); parent == dir {
			return
		}
	}
}

func (m *MockFileSystem) existsLocked(path string) bool {
	if _, ok := m.files[path]; ok {
		return true
	}
	if _, ok := m.symlinks[path]; ok {
		return true
	}
	return m.dirs[path]
}

func (m *MockFileSystem) WriteFile(path string, data []byte, perm os.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err, ok := m.writeErrors[path]; ok {
		return err
	}
	if !m.dirs[filepath.Dir(path)] {
		return &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}

	m.files[path] = data
	m.filePerms[path] = perm
	return nil
}

func (m *MockFileSystem) Stat(path string) (os.FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err, ok := m.statErrors[path]; ok {
		return nil, err
	}
	// Follow at most one level of links; enough for the tests that use them.
	if target, ok := m.symlinks[path]; ok {
		info, err := m.infoLocked(target)
		if err != nil {
			return nil, &fs.PathError{Op: "stat", Path: path, Err: fs.ErrNotExist}
		}
		info.name = filepath.Base(path)
		return info, nil
	}
	info, err := m.infoLocked(path)
	if err != nil {
		return nil, &fs.PathError{Op: "stat", Path: path, Err: err}
	}
	return info, nil
}

func (m *MockFileSystem) Lstat(path string) (os.FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err, ok := m.statErrors[path]; ok {
		return nil, err
	}
	if _, ok := m.symlinks[path]; ok {
		return &mockFileInfo{name: filepath.Base(path), mode: fs.ModeSymlink | 0777}, nil
	}
	info, err := m.infoLocked(path)
	if err != nil {
		return nil, &fs.PathError{Op: "lstat", Path: path, Err: err}
	}
	return info, nil
}

func (m *MockFileSystem) infoLocked(path string) (*mockFileInfo, error) {
	if data, ok := m.files[path]; ok {
		return &mockFileInfo{
			name: filepath.Base(path),
			size: int64(len(data)),
			mode: m.filePerms[path],
		}, nil
	}

	if m.dirs[path] {
		return &mockFileInfo{
			name: filepath.Base(path),
			mode: fs.ModeDir | m.dirPerms[path],
		}, nil
	}

	return nil, fs.ErrNotExist
}

func (m *MockFileSystem) Mkdir(path string, perm os.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err, ok := m.mkdirErrors[path]; ok {
		return &fs.PathError{Op: "mkdir", Path: path, Err: err}
	}
	if m.existsLocked(path) {
		return &fs.PathError{Op: "mkdir", Path: path, Err: fs.ErrExist}
	}
	if !m.dirs[filepath.Dir(path)] {
		return &fs.PathError{Op: "mkdir", Path: path, Err: fs.ErrNotExist}
	}
	m.dirs[path] = true
	m.dirPerms[path] = perm
	return nil
}

func (m *MockFileSystem) MkdirAll(path string, perm os.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err, ok := m.mkdirErrors[path]; ok {
		return &fs.PathError{Op: "mkdir", Path: path, Err: err}
	}
	m.addParentsLocked(path)
	m.dirs[path] = true
	m.dirPerms[path] = perm
	return nil
}

func (m *MockFileSystem) ReadDir(path string) ([]fs.DirEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err, ok := m.readDirErrors[path]; ok {
		return nil, &fs.PathError{Op: "open", Path: path, Err: err}
	}
	if !m.dirs[path] {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}

	var entries []fs.DirEntry
	for filePath := range m.files {
		if filepath.Dir(filePath) == path {
			entries = append(entries, &mockDirEntry{name: filepath.Base(filePath), mode: m.filePerms[filePath]})
		}
	}
	for linkPath := range m.symlinks {
		if filepath.Dir(linkPath) == path {
			entries = append(entries, &mockDirEntry{name: filepath.Base(linkPath), mode: fs.ModeSymlink | 0777})
		}
	}
	for dirPath := range m.dirs {
		if dirPath != path && filepath.Dir(dirPath) == path {
			entries = append(entries, &mockDirEntry{name: filepath.Base(dirPath), mode: fs.ModeDir | m.dirPerms[dirPath]})
		}
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	return entries, nil
}

func (m *MockFileSystem) Rename(oldpath, newpath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	linkErr := func(err error) error {
		return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: err}
	}

	if err, ok := m.renameErrors[oldpath]; ok {
		return linkErr(err)
	}
	data, ok := m.files[oldpath]
	if !ok {
		return linkErr(fs.ErrNotExist)
	}
	if m.existsLocked(newpath) {
		return linkErr(fs.ErrExist)
	}
	if !m.dirs[filepath.Dir(newpath)] {
		return linkErr(fs.ErrNotExist)
	}

	m.files[newpath] = data
	m.filePerms[newpath] = m.filePerms[oldpath]
	delete(m.files, oldpath)
	delete(m.filePerms, oldpath)
	return nil
}

// WalkDir mirrors filepath.WalkDir: lexical order, the callback is invoked
// a second time with the error when a directory cannot be listed.
func (m *MockFileSystem) WalkDir(root string, fn fs.WalkDirFunc) error {
	info, err := m.Lstat(root)
	if err != nil {
		err = fn(root, nil, err)
	} else {
		err = m.walkDir(root, fs.FileInfoToDirEntry(info), fn)
	}
	if errors.Is(err, filepath.SkipDir) || errors.Is(err, filepath.SkipAll) {
		return nil
	}
	return err
}

func (m *MockFileSystem) walkDir(path string, d fs.DirEntry, fn fs.WalkDirFunc) error {
	if err := fn(path, d, nil); err != nil || !d.IsDir() {
		if errors.Is(err, filepath.SkipDir) && d.IsDir() {
			err = nil
		}
		return err
	}

	entries, err := m.ReadDir(path)
	if err != nil {
		err = fn(path, d, err)
		if err != nil {
			if errors.Is(err, filepath.SkipDir) && d.IsDir() {
				err = nil
			}
			return err
		}
	}

	for _, entry := range entries {
		if err := m.walkDir(filepath.Join(path, entry.Name()), entry, fn); err != nil {
			if errors.Is(err, filepath.SkipDir) {
				break
			}
			return err
		}
	}
	return nil
}

// mockFileInfo implements os.FileInfo
type mockFileInfo struct {
	name string
	size int64
	mode os.FileMode
}

func (m *mockFileInfo) Name() string       { return m.name }
func (m *mockFileInfo) Size() int64        { return m.size }
func (m *mockFileInfo) Mode() os.FileMode  { return m.mode }
func (m *mockFileInfo) ModTime() time.Time { return time.Time{} }
func (m *mockFileInfo) IsDir() bool        { return m.mode.IsDir() }
func (m *mockFileInfo) Sys() interface{}   { return nil }

// mockDirEntry implements fs.DirEntry
type mockDirEntry struct {
	name string
	mode os.FileMode
}

func (m *mockDirEntry) Name() string      { return m.name }
func (m *mockDirEntry) IsDir() bool       { return m.mode.IsDir() }
func (m *mockDirEntry) Type() fs.FileMode { return m.mode.Type() }
func (m *mockDirEntry) Info() (fs.FileInfo, error) {
	return &mockFileInfo{name: m.name, mode: m.mode}, nil
}
