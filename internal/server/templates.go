package server

import "html/template"

// Fragments (/all, /timeframes) return bare markup for embedding; pages
// (/, /correlations) are full documents, styled the same way the original
// report pages were.
var templates = template.Must(template.New("server").Parse(`
{{define "table"}}<table class="{{.Class}}">
<thead><tr>{{range .Columns}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody>
{{range .Records}}<tr>{{range .Fields}}<td>{{.}}</td>{{end}}</tr>
{{end}}</tbody>
</table>{{end}}

{{define "index"}}<!doctype html>
<html>
  <head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <title>{{.Title}}</title>
    <link href="https://cdn.jsdelivr.net/npm/bootstrap@5.3.0/dist/css/bootstrap.min.css" rel="stylesheet">
  </head>
  <body class="p-4">
    <div class="container">
      <h1>{{.Title}}</h1>
      <p>Displaying the first {{.Shown}} of {{.Total}} rows.
        Use <a href="/all">/all</a> to view the full table,
        <a href="/timeframes">/timeframes</a> for per-period counts,
        <a href="/correlations">/correlations</a> for heatmaps,
        or <a href="/download">download</a> the raw file.</p>
      {{template "table" .Table}}
    </div>
  </body>
</html>{{end}}

{{define "timeframes"}}<table class="table table-sm">
<thead><tr><th>partition</th><th>rows</th></tr></thead>
<tbody>
<tr><td>master</td><td>{{.Master}}</td></tr>
<tr><td>early</td><td>{{.Early}}</td></tr>
<tr><td>mid</td><td>{{.Mid}}</td></tr>
<tr><td>recent</td><td>{{.Recent}}</td></tr>
</tbody>
</table>{{end}}

{{define "correlations"}}<!doctype html>
<html>
  <head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <title>{{.Title}}</title>
    <link href="https://cdn.jsdelivr.net/npm/bootstrap@5.3.0/dist/css/bootstrap.min.css" rel="stylesheet">
  </head>
  <body class="p-4">
    <div class="container">
      <h1>{{.Title}}</h1>
      {{if .Heatmaps}}{{range .Heatmaps}}
      <div class="mb-4">
        <h2>{{.Name}}</h2>
        <img src="{{.URI}}" alt="correlation heatmap for {{.Name}}">
      </div>
      {{end}}{{else}}<p>No partition has enough numeric data to correlate.</p>{{end}}
    </div>
  </body>
</html>{{end}}
`))

// tableData feeds the "table" template.
type tableData struct {
	Class   string
	Columns []string
	Records []recordData
}

type recordData struct {
	Fields []string
}

// indexData feeds the "index" template.
type indexData struct {
	Title string
	Shown int
	Total int
	Table tableData
}

// heatmapItem is one rendered image on the correlations page. URI is a
// data: URL, typed so the template engine does not reject the scheme.
type heatmapItem struct {
	Name string
	URI  template.URL
}

// correlationsData feeds the "correlations" template.
type correlationsData struct {
	Title    string
	Heatmaps []heatmapItem
}
