//go:build !linux && !darwin && !freebsd && !netbsd && !openbsd

package cli

// IsTerminal always reports false where termios is unavailable
func IsTerminal(fd uintptr) bool {
	return false
}
