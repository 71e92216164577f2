//go:build line_debug

package line

import "fmt"

func assertf(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf("line: "+format, args...))
	}
}
