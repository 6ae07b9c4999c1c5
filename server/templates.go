package server

import (
	"html/template"
	"strconv"

	"vehicle-insights/models"
)

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Vehicle Sales Data Analysis</title>
<style>
body { font-family: sans-serif; margin: 2rem; }
table { border-collapse: collapse; font-size: 0.85rem; }
th, td { border: 1px solid #ddd; padding: 4px 8px; text-align: left; }
th { background: #f4f4f4; }
.charts a { display: inline-block; margin: 0 0.5rem 0.5rem 0; padding: 0.4rem 0.8rem; border: 1px solid #1f77b4; border-radius: 4px; text-decoration: none; }
</style>
</head>
<body>
<h1>Vehicle Sales Data Analysis</h1>
<p>A simple web application to explore vehicle listings data.</p>
<p>{{.Count}} listings loaded from <code>{{.Source}}</code>.</p>

<h2>Dataset Preview (First {{.PreviewRows}} Rows)</h2>
<p>Here's a glimpse of the data:</p>
{{if .Rows}}
<table>
<tr>{{range .Headers}}<th>{{.}}</th>{{end}}</tr>
{{range .Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{end}}</table>
{{else}}
<p>No complete listings to preview.</p>
{{end}}

{{range .Sections}}
<h2>{{.Title}}</h2>
<div class="charts">
{{range .Charts}}<a href="/charts/{{.Name}}.png">{{.Label}}</a> <a href="/api/charts/{{.Name}}">JSON</a>
{{end}}</div>
{{end}}

<hr>
<p><a href="/api/summary">Summary</a> · <a href="/metrics">Metrics</a></p>
</body>
</html>
`))

var previewHeaders = []string{
	"price", "model_year", "model", "condition", "cylinders", "fuel", "odometer",
	"transmission", "type", "paint_color", "is_4wd", "date_posted", "days_listed",
	"manufacturer", "type_capitalized",
}

type indexSection struct {
	Title  string
	Charts []ChartInfo
}

type indexPage struct {
	Source      string
	Count       int
	PreviewRows int
	Headers     []string
	Rows        [][]string
	Sections    []indexSection
}

func newIndexPage(d *Dashboard) indexPage {
	page := indexPage{
		Source:      d.Source(),
		Count:       d.Len(),
		PreviewRows: d.previewRows,
		Headers:     previewHeaders,
	}
	for _, l := range d.Preview() {
		page.Rows = append(page.Rows, previewRow(&l))
	}
	for _, c := range chartCatalog {
		n := len(page.Sections)
		if n == 0 || page.Sections[n-1].Title != c.Section {
			page.Sections = append(page.Sections, indexSection{Title: c.Section})
			n++
		}
		page.Sections[n-1].Charts = append(page.Sections[n-1].Charts, c)
	}
	return page
}

func previewRow(l *models.Listing) []string {
	return []string{
		formatFloat(l.Price),
		formatInt(l.ModelYear),
		l.Model,
		l.Condition,
		formatInt(l.Cylinders),
		l.Fuel,
		formatOptionalFloat(l.Odometer),
		l.Transmission,
		l.Type,
		l.PaintColor,
		formatBool(l.Is4WD),
		l.DatePosted,
		formatInt(l.DaysListed),
		l.Manufacturer,
		l.TypeCapitalized,
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatOptionalFloat(f *float64) string {
	if f == nil {
		return ""
	}
	return formatFloat(*f)
}

func formatInt(i *int) string {
	if i == nil {
		return ""
	}
	return strconv.Itoa(*i)
}

func formatBool(b *bool) string {
	if b == nil {
		return ""
	}
	return strconv.FormatBool(*b)
}
