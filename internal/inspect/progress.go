package inspect

import (
	"io"
	"time"

	"github.com/schollz/progressbar/v3"
)

const (
	progressDescriptionConstant     = "checking repositories"
	progressThrottleMillisecondsInt = 65
)

// ConsoleProgressReporter renders inspection progress with a terminal progress bar.
type ConsoleProgressReporter struct {
	bar *progressbar.ProgressBar
}

// NewConsoleProgressReporter constructs a progress reporter writing to the supplied writer.
func NewConsoleProgressReporter(outputWriter io.Writer, repositoryCount int) *ConsoleProgressReporter {
	bar := progressbar.NewOptions(
		repositoryCount,
		progressbar.OptionSetWriter(outputWriter),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetDescription(progressDescriptionConstant),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionThrottle(progressThrottleMillisecondsInt*time.Millisecond),
	)
	return &ConsoleProgressReporter{bar: bar}
}

// Increment implements ProgressReporter by advancing the bar one repository.
func (reporter *ConsoleProgressReporter) Increment() {
	if reporter == nil || reporter.bar == nil {
		return
	}
	_ = reporter.bar.Add(1)
}
