package console

import (
	"io"

	"github.com/schollz/progressbar/v3"
)

type Progress struct {
	bar *progressbar.ProgressBar
}

func NewProgress(w io.Writer, total int) *Progress {
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("storefronts"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionClearOnFinish(),
	)
	return &Progress{bar: bar}
}

// Advance is safe for concurrent use.
func (p *Progress) Advance() {
	_ = p.bar.Add(1)
}

func (p *Progress) Finish() {
	_ = p.bar.Finish()
}
