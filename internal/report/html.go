package report

import (
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/parquet-forensics/inspector/internal/segment"
)

// htmlReportTemplate is deliberately minimal: an aggregated-column table
// plus a flat byte-offset table of top-level segments, not a tree view or
// a full-fidelity hex viewer. The inspector's
// primary output is JSON; this exists so a human can eyeball a file
// without piping through another tool.
const htmlReportTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: monospace; font-size: 13px; }
table { border-collapse: collapse; width: 100%; margin-bottom: 1em; }
td, th { border: 1px solid #ccc; padding: 2px 6px; text-align: left; }
tr.unknown { color: #999; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{if .Columns}}
<h2>columns</h2>
<table>
<tr><th>path</th><th>values</th><th>uncompressed</th><th>compressed</th><th>encodings</th><th>codec</th><th>min</th><th>max</th></tr>
{{range .Columns}}<tr>
<td>{{.Path}}</td><td>{{.NumValues}}</td><td>{{.Uncompressed}}</td><td>{{.Compressed}}</td><td>{{.Encodings}}</td><td>{{.Codec}}</td><td>{{.MinValue}}</td><td>{{.MaxValue}}</td>
</tr>
{{end}}
</table>
{{end}}
<h2>segments</h2>
<table>
<tr><th>offset</th><th>length</th><th>name</th><th>value</th></tr>
{{range .Rows}}<tr{{if .Unknown}} class="unknown"{{end}}>
<td>{{.Offset}}</td><td>{{.Length}}</td><td>{{.Name}}</td><td>{{.Value}}</td>
</tr>
{{end}}
</table>
</body>
</html>
`

var htmlTemplate = template.Must(template.New("report").Parse(htmlReportTemplate))

// HTMLRow is one rendered table row in the segment listing.
type HTMLRow struct {
	Offset  int64
	Length  int64
	Name    string
	Value   string
	Unknown bool
}

// HTMLColumnRow is one row of the aggregated-column summary table that
// precedes the segment listing, fed from AggregateColumns. MinValue/
// MaxValue are AggregatedColumn's already-decoded display strings, not
// the raw physical-representation bytes.
type HTMLColumnRow struct {
	Path         string
	NumValues    int64
	Uncompressed int64
	Compressed   int64
	Encodings    string
	Codec        string
	MinValue     string
	MaxValue     string
}

// HTMLDocument is the top-level template input.
type HTMLDocument struct {
	Title   string
	Columns []HTMLColumnRow
	Rows    []HTMLRow
}

// RenderHTML writes an HTML rendering of rows (and, if present, the
// aggregated column table) to w for browsing a file's structure outside
// the JSON report.
func RenderHTML(w io.Writer, doc HTMLDocument) error {
	return htmlTemplate.Execute(w, doc)
}

// AggregatedColumnsToHTMLRows projects AggregateColumns' output into the
// flat rows the template renders.
func AggregatedColumnsToHTMLRows(columns []AggregatedColumn) []HTMLColumnRow {
	rows := make([]HTMLColumnRow, 0, len(columns))
	for _, c := range columns {
		rows = append(rows, HTMLColumnRow{
			Path:         strings.Join(c.PathInSchema, "."),
			NumValues:    c.NumValues,
			Uncompressed: c.TotalUncompressedSize,
			Compressed:   c.TotalCompressedSize,
			Encodings:    strings.Join(c.Encodings, ","),
			Codec:        strings.Join(c.Codecs, ","),
			MinValue:     c.MinValueDisplay,
			MaxValue:     c.MaxValueDisplay,
		})
	}
	return rows
}

// SegmentsToHTMLRows flattens a top-level segment list into the rows the
// template walks; nested struct/list/map children are summarized by
// their element count rather than recursed into, keeping the page
// readable for files with deeply nested schemas.
func SegmentsToHTMLRows(segments []segment.Segment) []HTMLRow {
	rows := make([]HTMLRow, 0, len(segments))
	for _, s := range segments {
		rows = append(rows, HTMLRow{
			Offset:  s.Offset,
			Length:  s.Length,
			Name:    s.Name,
			Value:   summarizeValue(s),
			Unknown: s.Name == segment.NameUnknown,
		})
	}
	return rows
}

func summarizeValue(s segment.Segment) string {
	switch v := s.Value.(type) {
	case []segment.Segment:
		return fmt.Sprintf("<%d children>", len(v))
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}
