package driver

import (
	"fmt"
	"time"

	"github.com/teranos/mutigen/errors"
	"github.com/teranos/mutigen/gen"
)

// UnitResult describes one unit written to the sink
type UnitResult struct {
	Index int
	Class string
	Name  string
	Bytes int
}

// ClassError is a generation or output failure of one class
type ClassError struct {
	Index int
	Class string
	Err   error
}

func (e ClassError) Error() string {
	return fmt.Sprintf("%s: %v", e.Class, e.Err)
}

func (e ClassError) Unwrap() error {
	return e.Err
}

// Kind is the generator error kind label (unresolved_type, output_sink, ...)
func (e ClassError) Kind() string {
	return errors.Kind(e.Err)
}

// Report is the outcome of a batch, ordered by batch index
type Report struct {
	RunID    string
	Units    []UnitResult
	Errors   []ClassError
	Warnings []gen.Warning
	// Skipped counts classes never attempted because a fail-fast run stopped early
	Skipped  int
	Duration time.Duration
}

// HasErrors reports whether any class failed
func (r *Report) HasErrors() bool {
	return len(r.Errors) > 0
}

// Err joins all class errors, or returns nil
func (r *Report) Err() error {
	if !r.HasErrors() {
		return nil
	}
	errs := make([]error, len(r.Errors))
	for i, e := range r.Errors {
		errs[i] = e
	}
	return errors.Join(errs...)
}

// TotalBytes sums the size of all written units
func (r *Report) TotalBytes() int {
	total := 0
	for _, u := range r.Units {
		total += u.Bytes
	}
	return total
}
