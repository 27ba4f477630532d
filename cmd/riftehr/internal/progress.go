package internal

import (
	"io"

	"github.com/schollz/progressbar/v3"
)

// ProgressBar wraps progressbar/v3 in the shape of parse.go's
// internal.NewProgressBar, silenced under quiet mode. No command or
// pipeline stage creates one; runs print no progress bars.
type ProgressBar struct {
	bar *progressbar.ProgressBar
}

// NewProgressBar creates a bar of the given total size and description.
// In quiet mode it renders to io.Discard so callers don't need to branch
// on quiet mode at every Add call.
func NewProgressBar(total int64, description string) *ProgressBar {
	var out io.Writer = nil
	opts := []progressbar.Option{
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	}
	if IsQuietMode() {
		out = io.Discard
	}
	if out != nil {
		opts = append(opts, progressbar.OptionSetWriter(out))
	}
	return &ProgressBar{bar: progressbar.NewOptions64(total, opts...)}
}

// Add advances the bar by n.
func (p *ProgressBar) Add(n int) {
	_ = p.bar.Add(n)
}

// Set sets the bar's absolute position.
func (p *ProgressBar) Set(n int) {
	_ = p.bar.Set(n)
}

// Finish completes and clears the bar.
func (p *ProgressBar) Finish() {
	_ = p.bar.Finish()
}
