package logging

import (
	"io"
	"os"
)

// Writer is the terminal sink for log records; a distinct type so
// dscope can wire it independently of the systemd journal fallback.
type Writer io.Writer

func (Module) Writer() Writer {
	return os.Stderr
}
