package config

import (
	"fmt"
	"io"
	"os"
)

var (
	stderr io.Writer = os.Stderr
	exit             = os.Exit
)

// Exitf writes a formatted error message to stderr and exits with code 1.
func Exitf(format string, args ...any) {
	ExitWithCode(1, format, args...)
}

// ExitWithCode writes a formatted message to stderr and exits with code.
func ExitWithCode(code int, format string, args ...any) {
	fmt.Fprintf(stderr, format+"\n", args...)
	exit(code)
}
