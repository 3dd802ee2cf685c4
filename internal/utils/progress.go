package utils

import (
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
)

// DescScanning labels the spinner shown while the content root is walked
const DescScanning = "Scanning"

// NewProgressBar creates a consistently styled progress bar on stderr.
//
// A negative total renders a spinner, which is what the scanner uses since
// the number of files under the content root is not known up front:
//
//	bar := utils.NewProgressBar(-1, utils.DescScanning)
//	defer bar.Finish()
func NewProgressBar(total int, description string) *progressbar.ProgressBar {
	return NewProgressBarTo(os.Stderr, total, description)
}

// NewProgressBarTo is NewProgressBar with an explicit writer
func NewProgressBarTo(w io.Writer, total int, description string) *progressbar.ProgressBar {
	opts := []progressbar.Option{
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	}

	if total < 0 {
		opts = append(opts,
			progressbar.OptionSpinnerType(14),
			progressbar.OptionSetRenderBlankState(true),
		)
	} else {
		opts = append(opts, progressbar.OptionShowIts())
	}

	return progressbar.NewOptions(total, opts...)
}
