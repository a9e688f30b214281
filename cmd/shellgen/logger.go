package main

import (
	"fmt"
	"os"
)

// stderrLogger writes operator-facing log lines to stderr, keeping
// stdout clean for reports. Warnings always speak; debug and info
// lines only with --verbose.
type stderrLogger struct {
	verbose bool
}

func (l stderrLogger) Debugf(format string, args ...interface{}) {
	if l.verbose {
		fmt.Fprintf(os.Stderr, "debug: "+format+"\n", args...)
	}
}

func (l stderrLogger) Infof(format string, args ...interface{}) {
	if l.verbose {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}

func (l stderrLogger) Warnf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "warning: "+format+"\n", args...)
}
