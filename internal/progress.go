package internal

import (
	"fmt"
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
)

// UIManager handles all user interface concerns (spinners, verbose output, status)
type UIManager interface {
	// Spinners
	NewSpinner(description string) ProgressBar

	// Verbose output
	Verbose(format string, args ...interface{})

	// Status messages
	Printf(format string, args ...interface{})
	Println(args ...interface{})
}

// ProgressBar interface abstracts spinner operations
type ProgressBar interface {
	Describe(description string)
	Finish()
}

// StandardUIManager handles normal UI operations
type StandardUIManager struct {
	out     io.Writer
	verbose bool
	quiet   bool
}

func NewUIManager(verbose, quiet bool) UIManager {
	return NewUIManagerWithWriter(os.Stderr, verbose, quiet)
}

// NewUIManagerWithWriter creates a UI manager writing status to out
func NewUIManagerWithWriter(out io.Writer, verbose, quiet bool) UIManager {
	return &StandardUIManager{
		out:     out,
		verbose: verbose,
		quiet:   quiet,
	}
}

// Spinner Methods
func (ui *StandardUIManager) NewSpinner(description string) ProgressBar {
	if ui.quiet {
		return &SilentProgressBar{}
	}

	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(ui.out),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetElapsedTime(false),
		progressbar.OptionClearOnFinish(),
	)
	_ = bar.RenderBlank()
	return &VisibleProgressBar{bar: bar}
}

// Verbose Output Methods
func (ui *StandardUIManager) Verbose(format string, args ...interface{}) {
	if ui.verbose {
		fmt.Fprintf(ui.out, format, args...)
	}
}

// Status Message Methods
func (ui *StandardUIManager) Printf(format string, args ...interface{}) {
	if !ui.quiet {
		fmt.Fprintf(ui.out, format, args...)
	}
}

func (ui *StandardUIManager) Println(args ...interface{}) {
	if !ui.quiet {
		fmt.Fprintln(ui.out, args...)
	}
}

// VisibleProgressBar wraps the actual progress bar
type VisibleProgressBar struct {
	bar *progressbar.ProgressBar
}

func (v *VisibleProgressBar) Describe(description string) {
	v.bar.Describe(description)
}

func (v *VisibleProgressBar) Finish() {
	_ = v.bar.Finish()
}

// SilentProgressBar implements a silent progress bar
type SilentProgressBar struct{}

func (s *SilentProgressBar) Describe(description string) {}

func (s *SilentProgressBar) Finish() {}
