package main

import (
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fwojciec/sitepdf"
)

// progress shows a terminal spinner with the page being processed. The
// spinner stays silent when the output is not a terminal.
type progress struct {
	spin *spinner.Spinner
}

func newProgress(w io.Writer) *progress {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(w))
	s.Suffix = " discovering pages"
	return &progress{spin: s}
}

func (p *progress) Start() { p.spin.Start() }

func (p *progress) Stop() { p.spin.Stop() }

// Func returns a ProgressFunc that updates the spinner text.
func (p *progress) Func() sitepdf.ProgressFunc {
	return func(e sitepdf.Progress) {
		p.spin.Lock()
		p.spin.Suffix = fmt.Sprintf(" [%d/%d] %s", e.Completed, e.Total, truncateURL(e.URL, 50))
		p.spin.Unlock()
	}
}
