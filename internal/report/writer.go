package report

import (
	"io"

	"github.com/pagelint/pagelint/internal/model"
)

// Writer renders one page report to a destination.
//
// Design decision: a report-level interface rather than io.Writer
// because implementations write structured documents, not raw bytes.
// The int return mirrors io conventions so callers can log sizes.
type Writer interface {
	// Write renders the report. Returns the number of bytes written.
	Write(report *model.PageReport) (int, error)
}

// MultiWriter fans a report out to several Writers, stopping at the
// first error. Useful for writing a terminal summary and a file in the
// same run.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to every given Writer.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write renders the report to all configured Writers. Returns the total
// bytes written across writers.
func (m *MultiWriter) Write(report *model.PageReport) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(report)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter holds the output destination shared by format writers.
type baseWriter struct {
	output io.Writer
}

func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
