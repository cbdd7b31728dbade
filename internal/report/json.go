package report

import (
	"encoding/json"
	"io"

	"github.com/pagelint/pagelint/internal/model"
)

// JSONWriter renders reports as JSON for tool integration.
//
// Design decision: standard encoding/json, no third-party codec. The
// report is written once per page, so encode speed is irrelevant, and
// the struct tags on the model already define the wire shape.
type JSONWriter struct {
	baseWriter

	indent       bool
	indentPrefix string
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed output with the given prefix and
// per-level indent.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint enables pretty-printed output with two-space indents.
func WithPrettyPrint() JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = ""
		w.indentString = "  "
	}
}

// NewJSONWriter creates a JSONWriter writing to output. Output is
// compact unless an indent option is given.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// jsonEnvelope pairs the report with its computed summary so consumers
// don't have to re-derive the roll-up counts.
type jsonEnvelope struct {
	Summary model.Summary     `json:"summary"`
	Report  *model.PageReport `json:"report"`
}

// Write renders the report and its summary as one JSON document.
func (w *JSONWriter) Write(report *model.PageReport) (int, error) {
	envelope := jsonEnvelope{
		Summary: report.Summarize(),
		Report:  report,
	}

	var (
		data []byte
		err  error
	)
	if w.indent {
		data, err = json.MarshalIndent(envelope, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(envelope)
	}
	if err != nil {
		return 0, err
	}
	data = append(data, '\n')
	return w.output.Write(data)
}
