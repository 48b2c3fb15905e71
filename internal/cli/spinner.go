package cli

import (
	"io"
	"time"

	"github.com/briandowns/spinner"
)

// WaitSpinner returns a hook that shows a spinner with message until the
// returned stop function is called. With quiet set, nothing is shown.
func WaitSpinner(w io.Writer, message string, quiet bool) func() (stop func()) {
	return func() func() {
		if quiet {
			return func() {}
		}

		s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(w))
		s.Suffix = " " + message
		s.Start()
		return s.Stop
	}
}
