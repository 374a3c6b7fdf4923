package cli

import (
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"
)

// newLogger creates the process logger. Output is coloured only when w is
// a terminal.
func newLogger(w io.Writer, verbose, quiet bool) hclog.Logger {
	level := hclog.Info
	switch {
	case verbose:
		level = hclog.Debug
	case quiet:
		level = hclog.Error
	}

	colour := hclog.ColorOff
	if isTerminal(w) {
		colour = hclog.ForceColor
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:   "palettes",
		Output: w,
		Level:  level,
		Color:  colour,
	})
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// newProgress returns a pipeline progress callback drawing a bar on w, or
// nil when w is not a terminal.
func newProgress(w io.Writer, description string) func(done, total int) {
	if !isTerminal(w) {
		return nil
	}

	var bar *progressbar.ProgressBar
	return func(done, total int) {
		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionSetWriter(w),
				progressbar.OptionSetDescription(description),
				progressbar.OptionShowCount(),
				progressbar.OptionClearOnFinish(),
			)
		}
		_ = bar.Set(done)
		if done == total {
			_ = bar.Finish()
		}
	}
}
