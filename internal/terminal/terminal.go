package terminal

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// ShouldColorize reports whether writer is a terminal that can show colour.
func ShouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	return isTerminal(file)
}

func isTerminal(file *os.File) bool {
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
