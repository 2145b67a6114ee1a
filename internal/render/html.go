package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"io"

	"github.com/wonny/covid-europe/internal/quarantine"
	"github.com/wonny/covid-europe/internal/report"
)

var pageTemplate = template.Must(template.New("page").Funcs(template.FuncMap{
	"css": func(c Cell) template.CSS {
		if c.Color == "" {
			return ""
		}
		return template.CSS(c.Color.CSS())
	},
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<script src="https://cdn.jsdelivr.net/npm/vega@5"></script>
<script src="https://cdn.jsdelivr.net/npm/vega-lite@5"></script>
<script src="https://cdn.jsdelivr.net/npm/vega-embed@6"></script>
<style>
body { font-family: sans-serif; margin: 2rem; }
table { border-collapse: collapse; margin-bottom: 2rem; }
th, td { border: 1px solid #ddd; padding: 4px 8px; text-align: right; }
th { background: #f4f5f6; }
.chart { width: 100%; margin-bottom: 2rem; }
.rule-none { color: green; } .rule-home { color: darkgoldenrod; } .rule-hotel { color: firebrick; }
.note { color: #666; font-size: 0.9em; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<section id="rules">
<h2>{{.Heading}}</h2>
<ul>
{{- range .Report.Rules}}
<li class="rule{{if .Category}} rule-{{.Category}}{{end}}"><strong>{{.Country}}</strong>: {{.Message}}</li>
{{- end}}
</ul>
<p class="note">{{.Disclaimer}}</p>
<p class="note">{{.Sources}}</p>
</section>
{{range $i, $g := .Grids}}
<section class="dataset">
<h2>{{$g.Title}}</h2>
<div class="chart" id="chart-{{$i}}"></div>
<table>
<thead><tr>{{range $g.Headers}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody>
{{- range $g.Rows}}
<tr>{{range .}}<td{{if .Color}} style="{{css .}}"{{end}}>{{.Text}}</td>{{end}}</tr>
{{- end}}
</tbody>
</table>
</section>
{{end}}
<script>
{{- range $i, $spec := .Charts}}
vegaEmbed("#chart-{{$i}}", {{$spec}}, {actions: false});
{{- end}}
</script>
</body>
</html>
`))

type pageData struct {
	Title      string
	Heading    string
	Disclaimer string
	Sources    string
	Report     *report.Report
	Grids      []Grid
	Charts     []template.JS
}

// HTML writes a standalone page with both tables and interactive charts
func HTML(w io.Writer, r *report.Report) error {
	specs := []ChartSpec{PositivityChart(r.Positivity), CaseRateChart(r.CaseRate)}
	charts := make([]template.JS, 0, len(specs))
	for _, spec := range specs {
		data, err := json.Marshal(spec)
		if err != nil {
			return fmt.Errorf("encode chart spec: %w", err)
		}
		charts = append(charts, template.JS(data))
	}

	data := pageData{
		Title:      Title,
		Heading:    quarantine.Heading,
		Disclaimer: quarantine.Disclaimer,
		Sources:    quarantine.Sources,
		Report:     r,
		Grids:      []Grid{TestingGrid(r.Testing), CasesGrid(r.Cases)},
		Charts:     charts,
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	_, err := buf.WriteTo(w)
	return err
}
