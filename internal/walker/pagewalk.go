package walker

import (
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/parquet-forensics/inspector/internal/compactproto"
	"github.com/parquet-forensics/inspector/internal/segment"
)

// walkColumnChunk decodes a single column chunk's dictionary page (if
// any), its data pages, and its column index / offset index / bloom
// filter. A page decode error is logged and ends the chunk's page walk
// there; the chunk's column index, offset index and bloom filter are
// still read, and already-emitted segments and offsets are returned so
// the rest of the file can still be attributed.
func walkColumnChunk(r *compactproto.Reader, col, meta *compactproto.Node, warn log.Logger) ([]segment.Segment, segment.ColumnOffsets) {
	var segments []segment.Segment
	var offsets segment.ColumnOffsets

	var dictEnd int64
	haveDict := false

	if dictOffset, ok := childInt64(meta, "dictionary_page_offset"); ok {
		header, headerSeg, dataSeg, err := decodePage(r, dictOffset)
		if err != nil {
			level.Warn(warn).Log("msg", "failed to decode dictionary page header", "offset", dictOffset, "err", err)
		} else {
			segments = append(segments, headerSeg, dataSeg)
			off := dictOffset
			offsets.DictionaryPage = &off
			dictEnd = dataSeg.Offset + dataSeg.Length
			haveDict = true
			_ = header
		}
	}

	remaining, haveTotal := childInt64(meta, "num_values")
	dataStart, haveDataOffset := childInt64(meta, "data_page_offset")
	if haveDataOffset {
		dataStart = resolveDataPageStart(dataStart, haveDict, dictEnd, warn)

		cursor := dataStart
		for !haveTotal || remaining > 0 {
			header, headerSeg, dataSeg, err := decodePage(r, cursor)
			if err != nil {
				level.Warn(warn).Log("msg", "failed to decode data page header, stopping column chunk", "offset", cursor, "err", err)
				break
			}
			segments = append(segments, headerSeg, dataSeg)
			offsets.DataPages = append(offsets.DataPages, cursor)

			numValues, ok := dataPageNumValues(header)
			if !haveTotal {
				break
			}
			if ok {
				remaining -= numValues
			} else {
				remaining = 0
			}
			cursor = dataSeg.Offset + dataSeg.Length
		}
	}

	if off, ok := childInt64(col, "column_index_offset"); ok {
		if length, ok := childInt64(col, "column_index_length"); ok {
			if seg, err := decodeAuxStruct(r, off, length, segment.NameColumnIndex, "ColumnIndex"); err != nil {
				level.Warn(warn).Log("msg", "failed to decode column index", "offset", off, "err", err)
			} else {
				segments = append(segments, seg)
				offsets.ColumnIndex = &off
			}
		}
	}

	if off, ok := childInt64(col, "offset_index_offset"); ok {
		if length, ok := childInt64(col, "offset_index_length"); ok {
			if seg, err := decodeAuxStruct(r, off, length, segment.NameOffsetIndex, "OffsetIndex"); err != nil {
				level.Warn(warn).Log("msg", "failed to decode offset index", "offset", off, "err", err)
			} else {
				segments = append(segments, seg)
				offsets.OffsetIndex = &off
			}
		}
	}

	if off, ok := childInt64(meta, "bloom_filter_offset"); ok {
		if length, ok := childInt64(meta, "bloom_filter_length"); ok {
			if seg, err := decodeAuxStruct(r, off, length, segment.NameBloomFilter, "BloomFilterHeader"); err != nil {
				level.Warn(warn).Log("msg", "failed to decode bloom filter header", "offset", off, "err", err)
			} else {
				segments = append(segments, seg)
				offsets.BloomFilter = &off
			}
		}
	}

	return segments, offsets
}

// resolveDataPageStart tolerates a known writer bug: a dictionary page
// is present and the footer's declared data_page_offset points before
// the dictionary page's true end. This guard must not be broadened to
// any other writer quirk.
func resolveDataPageStart(declared int64, haveDict bool, dictEnd int64, warn log.Logger) int64 {
	if haveDict && declared < dictEnd {
		level.Warn(warn).Log("msg", "data_page_offset precedes dictionary page end, correcting", "declared", declared, "corrected", dictEnd)
		return dictEnd
	}
	return declared
}

// decodePage decodes one page header at offset and emits the paired
// page_header / page_data segments; returns the decoded header node (so
// callers can read num_values and type) and both segments.
func decodePage(r *compactproto.Reader, offset int64) (*compactproto.Node, segment.Segment, segment.Segment, error) {
	r.Seek(offset)
	header, err := compactproto.NewDecoder(r).DecodeRootStruct(segment.NamePageHeader, "PageHeader")
	if err != nil {
		return nil, segment.Segment{}, segment.Segment{}, err
	}
	headerSeg := segment.FromNode(header, 0)

	compressedSize, _ := childInt64(header, "compressed_page_size")
	dataFrom := headerSeg.Offset + headerSeg.Length
	dataSeg := segment.New(dataFrom, dataFrom+compressedSize, segment.NamePageData, nil)

	return header, headerSeg, dataSeg, nil
}

func dataPageNumValues(header *compactproto.Node) (int64, bool) {
	if v1 := child(header, "data_page_header"); v1 != nil {
		return childInt64(v1, "num_values")
	}
	if v2 := child(header, "data_page_header_v2"); v2 != nil {
		return childInt64(v2, "num_values")
	}
	return 0, false
}

// decodeAuxStruct decodes a fixed-length auxiliary structure (column
// index, offset index, bloom filter header) whose declared byte length
// is already known from the footer, rather than self-terminating like a
// page header.
func decodeAuxStruct(r *compactproto.Reader, offset, length int64, name, structName string) (segment.Segment, error) {
	r.Seek(offset)
	node, err := compactproto.NewDecoder(r).DecodeRootStruct(name, structName)
	if err != nil {
		return segment.Segment{}, err
	}
	seg := segment.FromNode(node, 0)
	seg.Length = length
	return seg, nil
}
