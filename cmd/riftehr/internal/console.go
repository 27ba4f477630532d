// Package internal provides the colored console output and progress
// reporting the cmd/riftehr subcommands share: PrintInfo, PrintSuccess,
// PrintWarning, PrintError, PrintHint, InitColor, (Set)QuietMode.
package internal

import (
	"fmt"
	"os"
	"sync/atomic"

	"github.com/fatih/color"
)

var (
	quiet      atomic.Bool
	colorOn    atomic.Bool
	infoColor  = color.New(color.FgCyan)
	okColor    = color.New(color.FgGreen)
	warnColor  = color.New(color.FgYellow)
	errColor   = color.New(color.FgRed)
	hintColor  = color.New(color.FgMagenta)
)

func init() {
	colorOn.Store(true)
}

// InitColor enables or disables colored output globally, following
// fatih/color's NoColor convention used by the whole process.
func InitColor(enabled bool) {
	colorOn.Store(enabled)
	color.NoColor = !enabled
}

// SetQuietMode suppresses PrintInfo/PrintSuccess/progress output while
// still allowing PrintWarning/PrintError through.
func SetQuietMode(q bool) { quiet.Store(q) }

// IsQuietMode reports the current quiet-mode setting.
func IsQuietMode() bool { return quiet.Load() }

// PrintInfo writes an informational line to stdout, suppressed in quiet
// mode.
func PrintInfo(format string, a ...interface{}) {
	if quiet.Load() {
		return
	}
	infoColor.Fprintf(os.Stdout, format, a...)
}

// PrintSuccess writes a success line to stdout, suppressed in quiet mode.
func PrintSuccess(format string, a ...interface{}) {
	if quiet.Load() {
		return
	}
	okColor.Fprintf(os.Stdout, format, a...)
}

// PrintWarning writes a warning line to stderr. Not suppressed by quiet
// mode — warnings are actionable QC signal, not progress chatter.
func PrintWarning(format string, a ...interface{}) {
	warnColor.Fprintf(os.Stderr, format, a...)
}

// PrintError writes an error line to stderr. Never suppressed.
func PrintError(format string, a ...interface{}) {
	errColor.Fprintf(os.Stderr, format, a...)
}

// PrintHint writes a dim hint line to stdout, suppressed in quiet mode.
func PrintHint(format string, a ...interface{}) {
	if quiet.Load() {
		return
	}
	hintColor.Fprintf(os.Stdout, format, a...)
}

// Fatalf prints an error and exits nonzero, matching
// run_RIFTEHR.py's parse_arguments() sys.exit(1) behavior on missing
// required arguments.
func Fatalf(format string, a ...interface{}) {
	PrintError(fmt.Sprintf(format, a...) + "\n")
	os.Exit(1)
}
