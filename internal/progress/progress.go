// Package progress shows activity on stderr while the sandbox run blocks.
package progress

import (
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
)

// Spinner animates on its own ticker until stopped. It writes to stderr so
// report output on stdout stays clean.
type Spinner struct {
	bar  *progressbar.ProgressBar
	stop chan struct{}
	done chan struct{}
}

// StartSpinner creates and starts a spinner with the given label.
func StartSpinner(label string) *Spinner {
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetWidth(20),
		progressbar.OptionSetDescription(label),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)

	s := &Spinner{
		bar:  bar,
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}

	go func() {
		defer close(s.done)
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-s.stop:
				return
			case <-ticker.C:
				s.bar.Add(1)
			}
		}
	}()

	return s
}

// Stop halts the animation and clears the spinner line.
func (s *Spinner) Stop() {
	close(s.stop)
	<-s.done
	s.bar.Finish()
	s.bar.Clear()
}
