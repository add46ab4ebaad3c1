package web

import "html/template"

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Patent Similarity Finder</title>
<style>
  body { font-family: sans-serif; max-width: 60rem; margin: 2rem auto; padding: 0 1rem; color: #222; }
  label { display: block; margin-top: 1rem; font-weight: bold; }
  input[type=text], input[type=password], input[type=number], textarea { width: 100%; padding: 6px; box-sizing: border-box; }
  textarea { min-height: 6rem; }
  .error { color: #b00020; font-size: 0.9em; }
  .warning { background: #fff3cd; border-left: 4px solid #e0a800; padding: 8px 12px; margin: 8px 0; }
  .notice { background: #fff3cd; border-left: 4px solid #e0a800; padding: 12px; margin: 16px 0; }
  .success { background: #e6f4ea; border-left: 4px solid #34a853; padding: 12px; margin: 16px 0; }
  .patent { background: #f8f9fa; border-left: 5px solid #4e8cff; border-radius: 8px; padding: 16px; margin: 16px 0; }
  .feature { margin: 8px 0 8px 16px; }
  .justification { font-size: 0.9em; color: #555; border-left: 2px solid #ddd; margin-left: 12px; padding-left: 12px; }
  .params { display: flex; gap: 1.5rem; }
  .params div { flex: 1; }
  button { margin-top: 1.5rem; padding: 8px 20px; }
</style>
</head>
<body>
<h1>Patent Similarity Finder</h1>
<p>Find patents that match your invention features.</p>

<form method="post" action="/search">
  <label for="api_key">SerpAPI key</label>
  <input type="password" id="api_key" name="api_key" value="{{.Request.APIKey}}">
  {{with index .FieldErrors "api_key"}}<p class="error">{{.}}</p>{{end}}

  <label for="description">Describe your invention</label>
  <textarea id="description" name="description" placeholder="E.g., A system and method for organizing a virtual interview background">{{.Request.Description}}</textarea>
  {{with index .FieldErrors "description"}}<p class="error">{{.}}</p>{{end}}

  <label for="features">Features (one per line)</label>
  <textarea id="features" name="features" placeholder="Virtual interview interface&#10;Automated interview report generation">{{.Features}}</textarea>
  {{with index .FieldErrors "features"}}<p class="error">{{.}}</p>{{end}}

  <div class="params">
    <div>
      <label for="threshold">Similarity threshold (%)</label>
      <input type="number" id="threshold" name="threshold" min="{{.MinThreshold}}" max="{{.MaxThreshold}}" step="5" value="{{.Request.Threshold}}">
      {{with index .FieldErrors "threshold"}}<p class="error">{{.}}</p>{{end}}
    </div>
    <div>
      <label for="min_matches">Minimum features to match</label>
      <input type="number" id="min_matches" name="min_matches" min="{{.MinMatchesLow}}" max="{{.MinMatchesHigh}}" step="1" value="{{.Request.MinMatches}}">
      {{with index .FieldErrors "min_matches"}}<p class="error">{{.}}</p>{{end}}
    </div>
    <div>
      <label for="max_patents">Maximum patents to analyze</label>
      <input type="number" id="max_patents" name="max_patents" min="{{.MaxPatentsLow}}" max="{{.MaxPatentsHigh}}" step="1" value="{{.Request.MaxPatents}}">
      {{with index .FieldErrors "max_patents"}}<p class="error">{{.}}</p>{{end}}
    </div>
  </div>

  <button type="submit">Search Patents</button>
</form>

{{if .Searched}}
<h2>Search Results</h2>

{{range .Result.Warnings}}<div class="warning">{{.}}</div>{{end}}

{{if not .Result.Patents}}
<div class="notice">No patents found with enough feature matches. Try adjusting your search parameters.</div>
{{else}}
<div class="success">Found {{len .Result.Patents}} patents matching at least {{.Request.MinMatches}} features.</div>

{{range .Result.Patents}}
<div class="patent">
  <h3>{{.Title}}</h3>
  <p><a href="{{.Link}}">View Patent on Google Patents</a></p>
  <h4>Matching Features</h4>
  {{range $feature, $match := .Matches}}
  <div class="feature">
    <strong>{{$feature}}</strong> (Similarity: {{$match.Score}}%)
    {{range $match.Justification}}<div class="justification">&bull; {{.}}</div>{{end}}
  </div>
  {{end}}
</div>
{{end}}

<form method="post" action="/api/search">
  <input type="hidden" name="api_key" value="{{.Request.APIKey}}">
  <input type="hidden" name="description" value="{{.Request.Description}}">
  <input type="hidden" name="features" value="{{.Features}}">
  <input type="hidden" name="threshold" value="{{.Request.Threshold}}">
  <input type="hidden" name="min_matches" value="{{.Request.MinMatches}}">
  <input type="hidden" name="max_patents" value="{{.Request.MaxPatents}}">
  <button type="submit">Download Results as JSON</button>
</form>
{{end}}
{{end}}

<hr>
<p><small>This tool uses fuzzy matching to find relevant patents. Results are for research purposes only and do not constitute legal advice.</small></p>
</body>
</html>
`))
