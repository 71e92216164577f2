package line

import (
	"io"
	"log"
	"os"
)

var debugLog = log.New(io.Discard, "line: ", log.Ltime|log.Lmicroseconds)

// Setting LINE_DEBUG to a file name appends engine diagnostics to that file.
// The terminal itself is never written to.
func init() {
	name := os.Getenv("LINE_DEBUG")
	if name == "" {
		return
	}
	f, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return
	}
	debugLog.SetOutput(f)
	debugf("debug log opened")
}

func debugf(format string, args ...any) {
	if debugLog.Writer() == io.Discard {
		return
	}
	debugLog.Printf(format, args...)
}
