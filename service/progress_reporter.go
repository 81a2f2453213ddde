package service

import (
	"io"
	"os"
	"sync"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"
)

// ProgressReporterImpl implements the domain.ProgressReporter interface with
// a terminal progress bar. On non-interactive writers it stays silent, so
// piped output never sees control characters.
type ProgressReporterImpl struct {
	mu          sync.Mutex
	writer      io.Writer
	bar         *progressbar.ProgressBar
	interactive bool
}

// NewProgressReporter creates a new progress reporter writing to stderr
func NewProgressReporter() *ProgressReporterImpl {
	return &ProgressReporterImpl{
		writer:      os.Stderr,
		interactive: term.IsTerminal(int(os.Stderr.Fd())),
	}
}

// NewSilentProgressReporter creates a reporter that never draws anything
func NewSilentProgressReporter() *ProgressReporterImpl {
	return &ProgressReporterImpl{
		writer:      io.Discard,
		interactive: false,
	}
}

// StartProgress starts progress reporting for the given number of files
func (p *ProgressReporterImpl) StartProgress(totalFiles int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.interactive || totalFiles <= 1 {
		return
	}

	p.bar = progressbar.NewOptions(totalFiles,
		progressbar.OptionSetDescription("Checking"),
		progressbar.OptionSetWriter(p.writer),
		progressbar.OptionSetWidth(50),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionShowCount(),
	)
}

// UpdateProgress updates the progress with the current file being processed
func (p *ProgressReporterImpl) UpdateProgress(currentFile string, processed, total int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.bar != nil {
		_ = p.bar.Set(processed)
	}
}

// FinishProgress completes progress reporting
func (p *ProgressReporterImpl) FinishProgress() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.bar != nil {
		_ = p.bar.Finish()
		p.bar = nil
	}
}
