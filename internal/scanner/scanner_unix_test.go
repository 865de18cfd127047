//go:build linux || darwin || freebsd

package scanner

import (
	"path/filepath"
	"testing"

	"golang.org/x/sys/unix"
)

func TestScan_SkipsNamedPipes(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "notes.txt")
	pipe := filepath.Join(root, "queue.fifo")
	if err := unix.Mkfifo(pipe, 0644); err != nil {
		t.Skipf("mkfifo unsupported: %v", err)
	}

	result, err := NewScanner().Scan(root)
	if err != nil {
		t.Fatalf("Scan() failed: %v", err)
	}

	if len(result.Notices) != 1 || result.Notices[0].Kind != NoticeIrregular || result.Notices[0].Path != pipe {
		t.Errorf("Expected one irregular notice for %s, got %v", pipe, result.Notices)
	}
	if _, ok := result.Group("fifo"); ok {
		t.Error("A named pipe must not be grouped")
	}
	if result.FileCount() != 1 {
		t.Errorf("Expected only notes.txt to be grouped, got %d files", result.FileCount())
	}
}
