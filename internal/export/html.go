package export

import (
	"fmt"
	"html/template"
	"io"

	"github.com/javiermolinar/meetgrid/internal/scheduler"
)

const scheduleHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Schedule</title>
<link rel="stylesheet" href="https://stackpath.bootstrapcdn.com/bootstrap/4.5.2/css/bootstrap.min.css">
<style>@media print { .no-print { display: none; } }</style>
</head>
<body>
<div class="container">
<h1>Weekly Meeting Schedule</h1>
{{- range .Weeks}}
<h3>{{.Title}}</h3>
<table class="table table-bordered">
<thead><tr><th>Day</th><th>Start Time</th><th>End Time</th><th>Name</th><th>Type</th><th>Duration (min)</th><th>Frequency</th></tr></thead>
<tbody>
{{- range .Rows}}
<tr style="background-color:{{.Shade | css}};"><td>{{.Day}}</td><td>{{.Start}}</td><td>{{.End}}</td><td>{{.Name}}</td><td>{{.Type}}</td><td>{{.Minutes}}</td><td>{{.Frequency}}</td></tr>
{{- end}}
</tbody>
</table>
{{- end}}
<div class="no-print mt-4"><button class="btn btn-info" onclick="window.print()">Print to PDF</button></div>
{{- if .BackLink}}
<p class="mt-2"><a href="{{.BackLink}}">Return to Main Page</a></p>
{{- end}}
</div>
</body>
</html>
`

var scheduleTmpl = template.Must(template.New("schedule").Funcs(template.FuncMap{
	"css": func(s string) template.CSS { return template.CSS(s) },
}).Parse(scheduleHTML))

// HTMLOptions controls page chrome.
type HTMLOptions struct {
	// BackLink, when set, adds a link back to the given path.
	BackLink string
}

// WriteHTML renders the four weekly tables as a standalone page.
func WriteHTML(w io.Writer, snap scheduler.Snapshot, opts HTMLOptions) error {
	data := struct {
		Weeks    []WeekRows
		BackLink string
	}{
		Weeks:    Rows(snap),
		BackLink: opts.BackLink,
	}
	if err := scheduleTmpl.Execute(w, data); err != nil {
		return fmt.Errorf("rendering schedule: %w", err)
	}
	return nil
}
