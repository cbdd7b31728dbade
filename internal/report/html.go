package report

import (
	"bytes"
	"html/template"
	"io"

	"github.com/pagelint/pagelint/internal/model"
)

// HTMLWriter renders reports as a standalone HTML page.
//
// Design decision: html/template with an embedded template string. The
// page is self-contained (inline CSS, no scripts) so it can be attached
// to a ticket or mailed around without assets going missing.
type HTMLWriter struct {
	baseWriter

	tmpl *template.Template
}

// NewHTMLWriter creates an HTMLWriter writing to output.
func NewHTMLWriter(output io.Writer) *HTMLWriter {
	return &HTMLWriter{
		baseWriter: newBaseWriter(output),
		tmpl:       template.Must(template.New("report").Parse(htmlTemplate)),
	}
}

// htmlData is the template payload.
type htmlData struct {
	Report     *model.PageReport
	Summary    model.Summary
	Result     string
	Components []htmlComponent
	Broken     []model.LinkCheck
	Scanned    string
	Duration   string
}

type htmlComponent struct {
	Name   string
	Status string
	Detail string
}

// Write renders the report as HTML.
func (w *HTMLWriter) Write(report *model.PageReport) (int, error) {
	summary := report.Summarize()

	data := htmlData{
		Report:   report,
		Summary:  summary,
		Result:   passFail(summary),
		Scanned:  report.DateScanned.Format("2006-01-02 15:04:05 MST"),
		Duration: report.Duration.Round(timeRounding).String(),
	}
	for _, r := range componentRows(report) {
		data.Components = append(data.Components, htmlComponent{
			Name:   r.name,
			Status: r.status,
			Detail: r.detail,
		})
	}
	for _, l := range report.AllLinks() {
		if l.State == model.LinkStateBroken {
			data.Broken = append(data.Broken, l)
		}
	}

	var buf bytes.Buffer
	if err := w.tmpl.Execute(&buf, data); err != nil {
		return 0, err
	}
	return w.output.Write(buf.Bytes())
}

const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Page Validation Report</title>
<style>
body { font-family: -apple-system, "Segoe UI", sans-serif; margin: 2rem auto; max-width: 60rem; color: #222; }
h1 { border-bottom: 2px solid #ddd; padding-bottom: .3rem; }
table { border-collapse: collapse; width: 100%; margin-bottom: 1.5rem; }
th, td { border: 1px solid #ddd; padding: .4rem .6rem; text-align: left; }
th { background: #f5f5f5; }
.pass { color: #1a7f37; font-weight: bold; }
.fail { color: #cf222e; font-weight: bold; }
.status-error { color: #cf222e; }
.status-found { color: #1a7f37; }
code { background: #f5f5f5; padding: .1rem .3rem; }
</style>
</head>
<body>
<h1>Page Validation Report</h1>
<table>
<tr><th>URL</th><td><code>{{.Report.URL}}</code></td></tr>
{{if .Report.Locale}}<tr><th>Locale</th><td>{{.Report.Locale}}</td></tr>{{end}}
{{if .Report.Title}}<tr><th>Title</th><td>{{.Report.Title}}</td></tr>{{end}}
<tr><th>Scanned</th><td>{{.Scanned}}</td></tr>
<tr><th>Duration</th><td>{{.Duration}}</td></tr>
<tr><th>Result</th><td class="{{if eq .Result "PASS"}}pass{{else}}fail{{end}}">{{.Result}}</td></tr>
</table>

<h2>Summary</h2>
<table>
<tr><th>Components probed</th><td>{{.Summary.ComponentsProbed}}</td></tr>
<tr><th>Components found</th><td>{{.Summary.ComponentsFound}}</td></tr>
<tr><th>Component errors</th><td>{{.Summary.ComponentErrors}}</td></tr>
<tr><th>Total links</th><td>{{.Summary.TotalLinks}}</td></tr>
<tr><th>Valid links</th><td>{{.Summary.ValidLinks}}</td></tr>
<tr><th>Broken links</th><td>{{.Summary.BrokenLinks}}</td></tr>
<tr><th>Not checked</th><td>{{.Summary.UncheckedLinks}}</td></tr>
<tr><th>Skipped</th><td>{{.Summary.SkippedLinks}}</td></tr>
</table>

{{if .Components}}
<h2>Components</h2>
<table>
<tr><th>Component</th><th>Status</th><th>Detail</th></tr>
{{range .Components}}
<tr><td>{{.Name}}</td><td class="status-{{.Status}}">{{.Status}}</td><td>{{.Detail}}</td></tr>
{{end}}
</table>
{{end}}

{{if .Broken}}
<h2>Broken Links</h2>
<table>
<tr><th>Status</th><th>URL</th></tr>
{{range .Broken}}
<tr><td>{{.StatusCode}}</td><td><code>{{.URL}}</code></td></tr>
{{end}}
</table>
{{end}}

{{if .Report.Error}}
<h2>Run Error</h2>
<p class="fail">{{.Report.Error}}</p>
{{end}}
</body>
</html>
`
