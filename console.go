package ringlog

import (
	"io"
	"os"
	"sync"
	"syscall"

	"github.com/mattn/go-isatty"
)

// ColorMode determines how colors are handled by the console sink.
type ColorMode int

const (
	// ColorModeAuto detects if the output supports colors.
	ColorModeAuto ColorMode = iota
	// ColorModeAlways forces color output.
	ColorModeAlways
	// ColorModeNever disables color output.
	ColorModeNever
)

// NewConsoleSink returns a sink that writes delivered messages to out,
// colorized per level when the mode allows it. A nil out defaults to
// os.Stdout. Unlike a writer sink, the level tag drives the styling
// directly; the message text is delivered verbatim.
func NewConsoleSink(out io.Writer, mode ColorMode) Sink {
	if out == nil {
		out = os.Stdout
	}

	useColors := false

	switch mode {
	case ColorModeAlways:
		useColors = true
	case ColorModeNever:
		useColors = false
	case ColorModeAuto:
		useColors = IsTerminal(out)
	}

	levelColors := DefaultLevelColors()

	var mu sync.Mutex

	return func(level Level, message string) {
		mu.Lock()
		defer mu.Unlock()

		if useColors {
			if color, ok := levelColors[level]; ok {
				_, _ = io.WriteString(out, color)

				defer func() {
					_, _ = io.WriteString(out, Reset)
				}()
			}
		}

		_, _ = io.WriteString(out, message)

		if len(message) == 0 || message[len(message)-1] != '\n' {
			_, _ = io.WriteString(out, "\n")
		}
	}
}

// IsTerminal checks if the given writer is a terminal. It returns true if the writer is
// connected to a terminal, and false otherwise. This function is used to determine
// whether to enable color support for console output.
func IsTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		if f.Fd() == uintptr(syscall.Stdout) || f.Fd() == uintptr(syscall.Stderr) {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
	}

	return false
}
