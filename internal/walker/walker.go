// Package walker runs the multi-pass orchestration that turns a raw file
// into an exhaustive, non-overlapping Segment list plus a per-column
// offset map: header check, footer locate and decode, per-column-chunk
// page walk, index and bloom-filter reads, then sort and gap fill.
package walker

import (
	"encoding/binary"
	"sort"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"

	"github.com/parquet-forensics/inspector/internal/compactproto"
	"github.com/parquet-forensics/inspector/internal/inspecterr"
	"github.com/parquet-forensics/inspector/internal/segment"
	"github.com/parquet-forensics/inspector/internal/util"
)

const magic = "PAR1"

// Result is everything a single file walk produces.
type Result struct {
	Segments      []segment.Segment
	ColumnOffsets segment.ColumnOffsetMap
	// ColumnOrder lists ColumnOffsets' keys in first-seen order, since Go
	// maps don't preserve insertion order and the page listing needs one
	// entry per column in the order columns were first encountered.
	ColumnOrder []string
	FooterNode  *compactproto.Node
}

// Options configures logging for the walk. A nil Logger defaults to
// log.NewNopLogger(); a zero WarnLogsPerSecond defaults to 5.
type Options struct {
	Logger            log.Logger
	WarnLogsPerSecond int
}

func (o Options) resolve() (log.Logger, *util.RateLimitedLogger) {
	logger := o.Logger
	if logger == nil {
		logger = log.NewNopLogger()
	}
	perSecond := o.WarnLogsPerSecond
	if perSecond <= 0 {
		perSecond = 5
	}
	return logger, util.NewRateLimitedLogger(perSecond, logger)
}

// Walk runs all five passes over r and returns the resulting segments
// (sorted and gap-filled) and the per-column offset map.
func Walk(r *compactproto.Reader, opts Options) (*Result, error) {
	logger, warnLog := opts.resolve()

	if err := checkHeader(r); err != nil {
		return nil, err
	}

	footerLength, err := checkFooter(r)
	if err != nil {
		return nil, err
	}

	fileSize := r.Size()
	segments := []segment.Segment{
		segment.New(0, 4, segment.NameMagicNumber, magic),
		segment.New(fileSize-8, fileSize-4, segment.NameFooterLength, int64(footerLength)),
		segment.New(fileSize-4, fileSize, segment.NameMagicNumber, magic),
	}

	footerStart := fileSize - 8 - int64(footerLength)
	r.Seek(footerStart)
	footerNode, err := compactproto.NewDecoder(r).DecodeRootStruct(segment.NameFooter, "FileMetaData")
	if err != nil {
		// BadFooter means only "the magic numbers don't match" (checked
		// above in checkFooter). Magics intact but a malformed or
		// truncated compact-protocol body is a decode failure, not a
		// footer-identification failure.
		return nil, errors.Wrapf(inspecterr.DecodeError, "decoding footer body at offset %d: %v", footerStart, err)
	}
	footerSegment := segment.FromNode(footerNode, 0)
	segments = append(segments, footerSegment)

	pageSegments, columnOffsets, columnOrder := walkRowGroups(r, footerNode, level.Warn(warnLog))
	segments = append(segments, pageSegments...)

	sort.Slice(segments, func(i, j int) bool { return segments[i].Offset < segments[j].Offset })
	segments = segment.FillGaps(segments, fileSize)

	return &Result{Segments: segments, ColumnOffsets: columnOffsets, ColumnOrder: columnOrder, FooterNode: footerNode}, nil
}

func checkHeader(r *compactproto.Reader) error {
	r.Seek(0)
	b, err := r.Read(4)
	if err != nil {
		return errors.Wrap(inspecterr.BadHeader, "reading header")
	}
	if string(b) != magic {
		return errors.Wrapf(inspecterr.BadHeader, "missing %s header, got %q", magic, b)
	}
	return nil
}

func checkFooter(r *compactproto.Reader) (uint32, error) {
	fileSize := r.Size()
	r.Seek(fileSize - 4)
	b, err := r.Read(4)
	if err != nil || string(b) != magic {
		return 0, errors.Wrapf(inspecterr.BadFooter, "missing %s footer", magic)
	}

	r.Seek(fileSize - 8)
	lenBytes, err := r.Read(4)
	if err != nil {
		return 0, errors.Wrap(inspecterr.BadFooter, "reading footer length")
	}
	return binary.LittleEndian.Uint32(lenBytes), nil
}

// walkRowGroups performs Pass 4 (page walk) across every row group and
// column chunk named in the footer, in footer order.
func walkRowGroups(r *compactproto.Reader, footerNode *compactproto.Node, warn log.Logger) ([]segment.Segment, segment.ColumnOffsetMap, []string) {
	var segments []segment.Segment
	offsets := segment.ColumnOffsetMap{}
	var order []string
	seen := map[string]bool{}

	rowGroups := child(footerNode, "row_groups")
	if rowGroups == nil {
		return segments, offsets, order
	}

	for _, rg := range rowGroups.Children() {
		columns := child(rg, "columns")
		if columns == nil {
			continue
		}
		for _, col := range columns.Children() {
			meta := child(col, "meta_data")
			if meta == nil {
				level.Warn(warn).Log("msg", "column chunk missing meta_data, skipping")
				continue
			}
			path := pathInSchema(meta)
			key := schemaPathKey(path)
			if !seen[key] {
				seen[key] = true
				order = append(order, key)
			}

			chunkSegments, chunkOffsets := walkColumnChunk(r, col, meta, warn)
			segments = append(segments, chunkSegments...)
			offsets[key] = append(offsets[key], chunkOffsets)
		}
	}
	return segments, offsets, order
}

// SchemaPath splits a ColumnOffsetMap key back into its ordered schema
// path segments.
func SchemaPath(key string) []string {
	if key == "" {
		return nil
	}
	var parts []string
	start := 0
	for i := 0; i < len(key); i++ {
		if key[i] == 0 {
			parts = append(parts, key[start:i])
			start = i + 1
		}
	}
	parts = append(parts, key[start:])
	return parts
}

func schemaPathKey(path []string) string {
	key := ""
	for i, p := range path {
		if i > 0 {
			key += "\x00"
		}
		key += p
	}
	return key
}
