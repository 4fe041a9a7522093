package cli

import (
	"fmt"
	"os"
)

// Color modes accepted by --color and output.color
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// UseColor resolves a color mode for the stream behind fd. Auto mode
// honors NO_COLOR and falls back to terminal detection.
func UseColor(mode string, fd uintptr) (bool, error) {
	switch mode {
	case ColorAlways:
		return true, nil
	case ColorNever:
		return false, nil
	case ColorAuto, "":
		if _, set := os.LookupEnv("NO_COLOR"); set {
			return false, nil
		}
		return IsTerminal(fd), nil
	default:
		return false, fmt.Errorf("unknown color mode %q", mode)
	}
}
