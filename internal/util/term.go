package util

import (
	"os"

	"github.com/fatih/color"
)

// IsTTY reports whether stdout is a terminal. Interactive screens and
// colored output are only offered when it is.
func IsTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

// InitColor disables color when asked to or when output is piped.
func InitColor(noColor bool) {
	if noColor || !IsTTY() {
		color.NoColor = true
	}
}
