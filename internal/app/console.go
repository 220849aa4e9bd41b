package app

import (
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"

	"github.com/oshokin/spotisaver/internal/progress"
)

const progressBarWidth = 30

// console renders drained sink events: log lines are printed above a single
// completed/total bar. It is only ever called from the sink's consumer goroutine.
type console struct {
	out      io.Writer
	showBar  bool
	bar      *progressbar.ProgressBar
	finished *color.Color
	skipped  *color.Color
	failed   *color.Color
	info     *color.Color
}

func newConsole(out io.Writer, interactive bool) *console {
	c := &console{
		out:      out,
		showBar:  interactive,
		finished: color.New(color.FgGreen),
		skipped:  color.New(color.FgYellow),
		failed:   color.New(color.FgRed),
		info:     color.New(color.FgCyan),
	}

	if !interactive {
		for _, palette := range []*color.Color{c.finished, c.skipped, c.failed, c.info} {
			palette.DisableColor()
		}
	}

	return c
}

// consume is the progress.Sink consumer.
func (c *console) consume(events []progress.Event) {
	for _, event := range events {
		switch event.Kind {
		case progress.KindProgress:
			c.updateBar(event)
		case progress.KindLog:
			c.printLine(event)
		}
	}
}

func (c *console) updateBar(event progress.Event) {
	if !c.showBar {
		c.info.Fprintln(c.out, event.String()) //nolint:errcheck // Terminal output.

		return
	}

	if c.bar == nil {
		c.bar = progressbar.NewOptions(event.Total,
			progressbar.OptionSetWriter(c.out),
			progressbar.OptionSetDescription("Downloading"),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(progressBarWidth),
			progressbar.OptionSetPredictTime(true),
		)
	}

	_ = c.bar.Set(event.Completed)
}

func (c *console) printLine(event progress.Event) {
	if c.bar != nil {
		_ = c.bar.Clear()
	}

	palette := c.info

	switch {
	case strings.HasPrefix(event.Message, "Finished"):
		palette = c.finished
	case strings.HasPrefix(event.Message, "Skipped"), strings.HasPrefix(event.Message, "Cancelled"):
		palette = c.skipped
	case strings.HasPrefix(event.Message, "ERROR"):
		palette = c.failed
	}

	palette.Fprintln(c.out, event.String()) //nolint:errcheck // Terminal output.

	if c.bar != nil {
		_ = c.bar.RenderBlank()
	}
}

// finish completes the bar so the summary starts on a clean line.
func (c *console) finish() {
	if c.bar == nil {
		return
	}

	_ = c.bar.Finish()
	_, _ = io.WriteString(c.out, "\n")
}
