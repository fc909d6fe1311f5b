package walker

import (
	"bytes"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parquet-forensics/inspector/internal/compactproto"
	"github.com/parquet-forensics/inspector/internal/inspecterr"
	"github.com/parquet-forensics/inspector/internal/segment"
)

// buildColumnFooter assembles a minimal FileMetaData footer describing one
// INT32 leaf column named "value", whose ColumnMetaData carries the given
// data_page_offset and (if dictionaryOffset > 0) dictionary_page_offset.
func buildColumnFooter(dataPageOffset, dictionaryOffset int64, numValues int32) []byte {
	meta := []byte{
		0x15, 0x02, // field1 type=INT32(1)
		0x19, 0x15, 0x00, // field2 encodings=[PLAIN(0)]
		0x19, 0x18, 0x05, 'v', 'a', 'l', 'u', 'e', // field3 path_in_schema=["value"]
		0x15, 0x00, // field4 codec=UNCOMPRESSED(0)
	}
	meta = append(meta, 0x16)
	meta = appendZigzag(meta, int64(numValues)) // field5 num_values
	meta = append(meta, 0x16)
	meta = appendZigzag(meta, 7) // field6 total_uncompressed_size
	meta = append(meta, 0x16)
	meta = appendZigzag(meta, 7) // field7 total_compressed_size
	meta = append(meta, 0x26)    // field9 data_page_offset, delta=9-7=2, i64
	meta = appendZigzag(meta, dataPageOffset)
	if dictionaryOffset > 0 {
		meta = append(meta, 0x26) // field11 dictionary_page_offset, delta=11-9=2, i64
		meta = appendZigzag(meta, dictionaryOffset)
	}
	meta = append(meta, 0x00) // stop ColumnMetaData

	column := append([]byte{0x3c}, meta...) // field3 meta_data (struct), delta=3
	column = append(column, 0x00)            // stop ColumnChunk

	rowGroup := []byte{0x19, 0x1c} // field1 columns (list<struct>, count=1)
	rowGroup = append(rowGroup, column...)
	rowGroup = append(rowGroup, 0x00) // stop RowGroup

	schema := []byte{
		0x55, 0x02, 0x00, // root SchemaElement{num_children=1}
		0x15, 0x02, // leaf field1 type=INT32(1)
		0x38, 0x05, 'v', 'a', 'l', 'u', 'e', // leaf field4 name="value"
		0x00, // stop leaf
	}

	footer := []byte{0x15, 0x02} // field1 version=1
	footer = append(footer, 0x19, 0x2c)
	footer = append(footer, schema...) // field2 schema (list<struct>, count=2)
	footer = append(footer, 0x16, 0x02) // field3 num_rows=1
	footer = append(footer, 0x19, 0x1c)
	footer = append(footer, rowGroup...) // field4 row_groups (list<struct>, count=1)
	footer = append(footer, 0x00)         // stop FileMetaData

	return footer
}

func appendZigzag(buf []byte, v int64) []byte {
	u := uint64(v<<1) ^ uint64(v>>63)
	for {
		b := byte(u & 0x7f)
		u >>= 7
		if u == 0 {
			return append(buf, b)
		}
		buf = append(buf, b|0x80)
	}
}

func appendVarint(buf []byte, v uint64) []byte {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v == 0 {
			return append(buf, b)
		}
		buf = append(buf, b|0x80)
	}
}

// malformedFooterWithOversizedBinaryField is a one-field FileMetaData body
// (field id 1, "version", carried with a binary wire type; the decoder
// reads it by its wire type) whose
// single binary field declares a length far longer than any byte remaining
// in the file, forcing compactproto.Reader to run off the end of the file
// mid-struct.
func malformedFooterWithOversizedBinaryField() []byte {
	footer := []byte{0x18} // field delta=1, type=binary(0x8)
	footer = appendVarint(footer, 1_000_000)
	return footer
}

// malformedFooterWithUnknownWireType is buildColumnFooter's first field
// header byte replaced with an unused wire type nibble (0xd), so the
// decoder gets through the magic checks and the length bookkeeping fine
// and only fails once it starts interpreting the footer's own bytes.
func malformedFooterWithUnknownWireType() []byte {
	footer := buildColumnFooter(4, 0, 3)
	corrupt := append([]byte{}, footer...)
	corrupt[0] = 0x1d
	return corrupt
}

func assembleFile(pageBytes []byte, footer []byte) []byte {
	var buf []byte
	buf = append(buf, 'P', 'A', 'R', '1')
	buf = append(buf, pageBytes...)
	buf = append(buf, footer...)
	length := len(footer)
	buf = append(buf, byte(length), byte(length>>8), byte(length>>16), byte(length>>24))
	buf = append(buf, 'P', 'A', 'R', '1')
	return buf
}

// dataPage builds one PageHeader{type=DATA_PAGE, data_page_header{num_values,encoding=PLAIN}}
// of the given uncompressed/compressed size, followed by that many zero
// payload bytes.
func dataPage(numValues int32, size int64) []byte {
	header := []byte{0x15, 0x00} // field1 type=DATA_PAGE(0)
	header = append(header, 0x15)
	header = appendZigzag(header, size) // field2 uncompressed_page_size
	header = append(header, 0x15)
	header = appendZigzag(header, size) // field3 compressed_page_size
	header = append(header, 0x2c)        // field5 data_page_header, delta=2
	header = append(header, 0x15)
	header = appendZigzag(header, int64(numValues)) // nested field1 num_values
	header = append(header, 0x15, 0x00)              // nested field2 encoding=PLAIN(0)
	header = append(header, 0x00)                    // stop DataPageHeader
	header = append(header, 0x00)                    // stop PageHeader
	header = append(header, make([]byte, size)...)
	return header
}

func dictionaryPage(numValues int32, size int64) []byte {
	header := []byte{0x15, 0x04} // field1 type=DICTIONARY_PAGE(2)
	header = append(header, 0x15)
	header = appendZigzag(header, size)
	header = append(header, 0x15)
	header = appendZigzag(header, size)
	header = append(header, 0x4c) // field7 dictionary_page_header, delta=4
	header = append(header, 0x15)
	header = appendZigzag(header, int64(numValues))
	header = append(header, 0x15, 0x00) // nested field2 encoding=PLAIN(0)
	header = append(header, 0x00)       // stop DictionaryPageHeader
	header = append(header, 0x00)       // stop PageHeader
	header = append(header, make([]byte, size)...)
	return header
}

func walkBytes(t *testing.T, data []byte) (*Result, error) {
	t.Helper()
	r := compactproto.NewReader(bytes.NewReader(data), int64(len(data)))
	return Walk(r, Options{})
}

func TestWalkRejectsBadHeaderMagic(t *testing.T) {
	page := dataPage(3, 12)
	footer := buildColumnFooter(4, 0, 3)
	data := assembleFile(page, footer)
	data[0] = 'X'

	_, err := walkBytes(t, data)
	require.Error(t, err)
	assert.True(t, errors.Is(err, inspecterr.BadHeader))
}

func TestWalkRejectsBadFooterMagic(t *testing.T) {
	page := dataPage(3, 12)
	footer := buildColumnFooter(4, 0, 3)
	data := assembleFile(page, footer)
	data[len(data)-1] = 'X'

	_, err := walkBytes(t, data)
	require.Error(t, err)
	assert.True(t, errors.Is(err, inspecterr.BadFooter))
}

func TestWalkRejectsTruncatedFile(t *testing.T) {
	data := []byte("PAR1")
	_, err := walkBytes(t, data)
	require.Error(t, err)
	assert.True(t, errors.Is(err, inspecterr.BadFooter))
}

// TestWalkFooterBodyCorruptionIsDecodeErrorNotBadFooter covers the case
// the bad-header/bad-footer tests above don't: magics intact (both the
// leading and trailing PAR1 and the footer_length bookkeeping all check
// out), but the compact-protocol body between them is corrupt. That must
// surface as a decode failure, not a footer-identification failure —
// bad-footer is reserved for the magic-number check alone.
func TestWalkFooterBodyCorruptionIsDecodeErrorNotBadFooter(t *testing.T) {
	page := dataPage(3, 12)
	footer := malformedFooterWithUnknownWireType()
	data := assembleFile(page, footer)

	_, err := walkBytes(t, data)
	require.Error(t, err)
	assert.True(t, errors.Is(err, inspecterr.DecodeError))
	assert.False(t, errors.Is(err, inspecterr.BadFooter))
}

// TestWalkFooterBodyTruncationIsDecodeErrorNotBadFooter is the EOF-flavor
// of the corruption case above: the footer's own bytes are intact and its
// magics/length check out, but a field inside the body claims a length
// that runs the reader off the end of the file. That must also surface as
// decode-error, not bad-footer.
func TestWalkFooterBodyTruncationIsDecodeErrorNotBadFooter(t *testing.T) {
	footer := malformedFooterWithOversizedBinaryField()
	data := assembleFile(nil, footer)

	_, err := walkBytes(t, data)
	require.Error(t, err)
	assert.True(t, errors.Is(err, inspecterr.DecodeError))
	assert.False(t, errors.Is(err, inspecterr.BadFooter))
}

func TestWalkProducesGaplessSegmentsForMinimalFile(t *testing.T) {
	page := dataPage(3, 12)
	footer := buildColumnFooter(4, 0, 3)
	data := assembleFile(page, footer)

	result, err := walkBytes(t, data)
	require.NoError(t, err)

	var cursor int64
	for _, seg := range result.Segments {
		assert.Equal(t, cursor, seg.Offset)
		cursor = seg.Offset + seg.Length
	}
	assert.Equal(t, int64(len(data)), cursor)

	footerSeg := segment.FindFooterSegment(result.Segments)
	require.NotNil(t, footerSeg)

	require.Len(t, result.ColumnOrder, 1)
	offsets := result.ColumnOffsets[result.ColumnOrder[0]]
	require.Len(t, offsets, 1)
	assert.Equal(t, []int64{4}, offsets[0].DataPages)
}

// TestWalkCorrectsDataPageOffsetPrecedingDictionaryEnd exercises the
// writer-offset-bug tolerance: some writers leave ColumnMetaData's
// data_page_offset pointing at (or before) the dictionary page instead of
// just past it. The walker must still find the real data page immediately
// after the dictionary page ends rather than re-decoding the dictionary
// page header as if it were a data page.
func TestWalkCorrectsDataPageOffsetPrecedingDictionaryEnd(t *testing.T) {
	dict := dictionaryPage(1, 4) // offset 4, header 13 bytes + 4 payload -> ends at 21
	data := dataPage(1, 3)       // placed at offset 21, header 13 bytes + 3 payload -> ends at 37
	pages := append(append([]byte{}, dict...), data...)

	// data_page_offset is buggy: it still points at the dictionary page's
	// own start (4), which is before the dictionary page's true end (21).
	footer := buildColumnFooter(4, 4, 1)
	file := assembleFile(pages, footer)

	result, err := walkBytes(t, file)
	require.NoError(t, err)

	require.Len(t, result.ColumnOrder, 1)
	offsets := result.ColumnOffsets[result.ColumnOrder[0]]
	require.Len(t, offsets, 1)
	require.NotNil(t, offsets[0].DictionaryPage)
	assert.Equal(t, int64(4), *offsets[0].DictionaryPage)
	require.Equal(t, []int64{21}, offsets[0].DataPages)

	var cursor int64
	for _, seg := range result.Segments {
		assert.Equal(t, cursor, seg.Offset, "segment %q", seg.Name)
		cursor = seg.Offset + seg.Length
	}
	assert.Equal(t, int64(len(file)), cursor)
}
