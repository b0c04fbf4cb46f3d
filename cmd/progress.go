package cmd

import (
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
)

// progressConfig determines if and where progress bars are drawn.
// Bars are disabled with --quiet or when stderr is not a TTY.
type progressConfig struct {
	Enabled bool
	Writer  io.Writer
}

func newProgressConfig(quiet bool) progressConfig {
	return progressConfig{
		Enabled: !quiet && isatty.IsTerminal(os.Stderr.Fd()),
		Writer:  os.Stderr,
	}
}

// newProgressBar returns nil when progress is disabled.
func newProgressBar(cfg progressConfig, total int64, description string) *progressbar.ProgressBar {
	if !cfg.Enabled {
		return nil
	}

	return progressbar.NewOptions64(total,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWriter(cfg.Writer),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}

// flushProgress feeds bulk loader progress into a bar created on the first update,
// once the recipe total is known.
type flushProgress struct {
	cfg progressConfig
	bar *progressbar.ProgressBar
}

func (p *flushProgress) Update(done, total int) {
	if !p.cfg.Enabled {
		return
	}
	if p.bar == nil {
		p.bar = newProgressBar(p.cfg, int64(total), "Writing recipes")
	}
	_ = p.bar.Set(done)
}

func (p *flushProgress) Finish() {
	if p.bar != nil {
		_ = p.bar.Finish()
	}
}
