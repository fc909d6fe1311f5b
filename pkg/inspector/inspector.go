// Package inspector is the public facade: everything outside this
// module — a CLI, an HTTP handler, a notebook — should reach the
// forensic inspector through this package, never through internal/*
// directly.
package inspector

import (
	"io"
	"os"

	"github.com/go-kit/log"
	"github.com/pkg/errors"

	"github.com/parquet-forensics/inspector/internal/compactproto"
	"github.com/parquet-forensics/inspector/internal/inspecterr"
	"github.com/parquet-forensics/inspector/internal/report"
	"github.com/parquet-forensics/inspector/internal/segment"
	"github.com/parquet-forensics/inspector/internal/walker"
)

// Result is the output of Parse: the file's full segmentation plus the
// per-column page offset map, both keyed off absolute file offsets.
type Result struct {
	Segments      []*segment.Segment
	ColumnOffsets segment.ColumnOffsetMap
	// ColumnOrder gives the column keys of ColumnOffsets in the order
	// they were first seen while walking the footer, since Go map
	// iteration order is unspecified and Pages needs a stable order.
	ColumnOrder []string
	// FooterJSON is the footer segment's JSON projection, cached here
	// since Summary, Pages, and AggregateColumns all need it and it is
	// moderately expensive to recompute.
	FooterJSON map[string]any
}

// Options configures Parse's logging and JSON rendering. A nil Logger
// discards everything. TruncateBinaryBytes bounds how many raw bytes
// the footer's JSON projection embeds inline before switching to a
// truncated preview (report.DefaultInlineBinaryLimit if <= 0).
type Options struct {
	Logger              log.Logger
	WarnLogsPerSecond   int
	TruncateBinaryBytes int
}

// Parse opens path, verifies its header and footer, walks every row
// group's column chunks and pages, and returns the resulting segment
// list (sorted by offset, gaps filled with "unknown") plus the
// per-column offset map. It returns a sentinel-wrapped error from
// internal/inspecterr on any failure (inspecterr.IOError,
// inspecterr.BadHeader, inspecterr.BadFooter, inspecterr.DecodeError).
func Parse(path string, opts Options) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(inspecterr.IOError, "opening %q: %v", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, errors.Wrapf(inspecterr.IOError, "stat %q: %v", path, err)
	}

	r := compactproto.NewReader(f, info.Size())
	walked, err := walker.Walk(r, walker.Options{Logger: opts.Logger, WarnLogsPerSecond: opts.WarnLogsPerSecond})
	if err != nil {
		return nil, err
	}

	segments := toPointerSlice(walked.Segments)

	footerSeg := segment.FindFooterSegment(walked.Segments)
	var footerJSON map[string]any
	if footerSeg != nil {
		footerJSON, _ = report.ToJSON(footerSeg, opts.TruncateBinaryBytes).(map[string]any)
	}

	return &Result{
		Segments:      segments,
		ColumnOffsets: walked.ColumnOffsets,
		ColumnOrder:   walked.ColumnOrder,
		FooterJSON:    footerJSON,
	}, nil
}

// FindFooterSegment returns the unique top-level segment named "footer",
// or nil if the file had none (which Parse itself would already have
// rejected, but downstream callers may filter segments before calling
// this).
func FindFooterSegment(segments []*segment.Segment) *segment.Segment {
	for _, s := range segments {
		if s.Name == segment.NameFooter {
			return s
		}
	}
	return nil
}

// SegmentToJSON projects a single segment (and its descendants) into the
// JSON-ready shape used for human/API output. inlineLimit is forwarded
// to JSONEncode for any raw binary value encountered (see
// report.ToJSON's doc comment).
func SegmentToJSON(seg *segment.Segment, inlineLimit int) any {
	return report.ToJSON(seg, inlineLimit)
}

// Summary computes the flat count/size mapping from a parsed footer
// projection and the full segment list.
func Summary(footerJSON map[string]any, segments []*segment.Segment) map[string]any {
	return report.Summary(footerJSON, fromPointerSlice(segments))
}

// Pages returns the per-column page listing, one entry per column in
// columnOrder (see Result.ColumnOrder), each row-group entry carrying
// whichever of dictionary_page/data_pages/column_index/offset_index/
// bloom_filter the walk recorded for it.
func Pages(segments []*segment.Segment, offsets segment.ColumnOffsetMap, columnOrder []string, inlineLimit int) []map[string]any {
	return report.Pages(fromPointerSlice(segments), offsets, columnOrder, walker.SchemaPath, inlineLimit)
}

// AggregateColumns groups column chunks across row groups by schema
// path, accumulating sizes and folding statistics in decoded space
// before re-encoding min/max back to their physical representation.
// truncateChars bounds the resulting AggregatedColumn.MinValueDisplay/
// MaxValueDisplay strings.
func AggregateColumns(footerJSON map[string]any, pages []map[string]any, truncateChars int) []report.AggregatedColumn {
	return report.AggregateColumns(footerJSON, pages, truncateChars)
}

// JSONEncode renders raw bytes as a tagged, truncation-aware JSON-ready
// map. Any nil input is a bad-argument error. inlineLimit <= 0 uses
// report.DefaultInlineBinaryLimit.
func JSONEncode(raw []byte, inlineLimit int) (map[string]any, error) {
	return report.JSONEncode(raw, inlineLimit)
}

// RenderHTML writes the CLI's "html" output mode: an aggregated-column
// summary table followed by the full top-level segment listing.
func RenderHTML(w io.Writer, title string, segments []*segment.Segment, aggregates []report.AggregatedColumn) error {
	return report.RenderHTML(w, report.HTMLDocument{
		Title:   title,
		Columns: report.AggregatedColumnsToHTMLRows(aggregates),
		Rows:    report.SegmentsToHTMLRows(fromPointerSlice(segments)),
	})
}

func toPointerSlice(in []segment.Segment) []*segment.Segment {
	out := make([]*segment.Segment, len(in))
	for i := range in {
		out[i] = &in[i]
	}
	return out
}

func fromPointerSlice(in []*segment.Segment) []segment.Segment {
	out := make([]segment.Segment, len(in))
	for i, s := range in {
		if s != nil {
			out[i] = *s
		}
	}
	return out
}
