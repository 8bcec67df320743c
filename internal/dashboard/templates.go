package dashboard

const tmplBase = `{{define "base"}}<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{template "title" .}}</title>
<style>
body { margin: 0; padding: 24px 32px; font-family: Arial, sans-serif; font-size: 14px; color: #222; background: #fafafa; }
a { color: #1f5fa8; text-decoration: none; }
a:hover { text-decoration: underline; }
h1 { font-size: 1.5em; margin: 0 0 4px; }
h2 { font-size: 1.15em; margin: 24px 0 8px; }
.muted { color: #777; }
.grid { display: grid; grid-template-columns: repeat(auto-fill, minmax(260px, 1fr)); gap: 16px; }
.card { background: #fff; border: 1px solid #e3e3e3; border-radius: 4px; padding: 12px; }
.card h3 { font-size: 1em; margin: 0 0 6px; }
.card .error { color: #b00020; }
.controls { display: flex; flex-wrap: wrap; gap: 6px; margin: 8px 0; }
.controls .label { color: #555; margin-right: 4px; }
.pill { border: 1px solid #ccc; border-radius: 12px; padding: 2px 10px; background: #fff; }
.pill.on { background: #1f5fa8; border-color: #1f5fa8; color: #fff; }
.pill.off { color: #aaa; }
.chart { background: #fff; border: 1px solid #e3e3e3; display: inline-block; }
</style>
</head>
<body>
{{template "content" .}}
</body>
</html>{{end}}`

const tmplIndex = `{{define "title"}}Regional Performance Indicators{{end}}
{{define "content"}}
<h1>Regional Performance Indicators</h1>
<p class="muted">{{len .Charts}} indicators</p>
{{range .Categories}}
<h2>{{.Name}}</h2>
<div class="grid">
{{range .Charts}}
  <div class="card">
    <h3><a href="/charts/{{.Descriptor.ID}}">{{.Descriptor.Title}}</a></h3>
    {{if .Ready}}<a href="/charts/{{.Descriptor.ID}}"><img src="/tiles/{{.Descriptor.ID}}.png" width="240" height="72" alt="{{.Descriptor.Title}} trend"></a>
    {{else}}<p class="error">failed to parse dataset</p>{{end}}
    <p class="muted">{{.Descriptor.Description}}</p>
  </div>
{{end}}
</div>
{{end}}
{{end}}`

const tmplChart = `{{define "title"}}{{.Chart.Descriptor.Title}}{{end}}
{{define "content"}}
<p><a href="/">All indicators</a></p>
<h1>{{.Chart.Descriptor.Title}}</h1>
<p class="muted">{{.Chart.Descriptor.Description}}</p>
{{if .Chart.Ready}}
<div class="controls"><span class="label">Show</span>
{{range .Entities}}<a class="pill {{if .On}}on{{else if .Disabled}}off{{end}}" href="{{.Href}}">{{.Label}}</a>{{end}}
</div>
{{if gt (len .Subs) 1}}<div class="controls"><span class="label">Measure</span>
{{range .Subs}}<a class="pill {{if .On}}on{{end}}" href="{{.Href}}">{{.Label}}</a>{{end}}
</div>{{end}}
{{if gt (len .Views) 1}}<div class="controls"><span class="label">View</span>
{{range .Views}}<a class="pill {{if .On}}on{{end}}" href="{{.Href}}">{{.Label}}</a>{{end}}
</div>{{end}}
{{if .Years}}<div class="controls"><span class="label">Year</span>
{{range .Years}}<a class="pill {{if .On}}on{{end}}" href="{{.Href}}">{{.Label}}</a>{{end}}
</div>{{end}}
{{end}}
<div class="chart">{{.SVG}}</div>
<p>
  <a href="{{.SVGHref}}">SVG</a> |
  <a href="{{.XLSXHref}}">Spreadsheet</a>
</p>
{{if .Chart.Descriptor.Source}}<p class="muted">Source: {{.Chart.Descriptor.Source}}</p>{{end}}
{{if .Chart.Excluded}}<p class="muted">Columns not shown: {{join .Chart.Excluded ", "}}</p>{{end}}
{{end}}`
