//go:build !line_debug

package line

func assertf(cond bool, format string, args ...any) {
	if !cond {
		debugf("assertion failed: "+format, args...)
	}
}
