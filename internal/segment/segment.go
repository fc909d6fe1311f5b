// Package segment builds the flat, non-overlapping byte-range model this
// inspector reports against, and derives it from the tree
// internal/compactproto decodes.
package segment

import "github.com/parquet-forensics/inspector/internal/compactproto"

// Reserved top-level segment names, matching the original tool's fixed
// vocabulary for the handful of structural regions every file has.
const (
	NameMagicNumber  = "magic_number"
	NameFooter       = "footer"
	NameFooterLength = "footer_length"
	NamePageHeader   = "page_header"
	NamePageData     = "page_data"
	NameColumnIndex  = "column_index"
	NameOffsetIndex  = "offset_index"
	NameBloomFilter  = "bloom_filter"
	NamePage         = "page"
	NameUnknown      = "unknown"
)

// ColumnOffsets records, for one column chunk, the absolute file offsets
// of every page and auxiliary structure the walker found for it.
type ColumnOffsets struct {
	DictionaryPage *int64
	DataPages      []int64
	ColumnIndex    *int64
	OffsetIndex    *int64
	BloomFilter    *int64
}

// ColumnOffsetMap maps a schema path (its segments joined with "\x00")
// to one ColumnOffsets per row group, in row-group order.
type ColumnOffsetMap map[string][]ColumnOffsets

// Metadata carries a segment's type information: either a primitive wire
// type name, or "struct"/"list"/"set"/"map" for a container, plus the
// optional enum annotation copied over from the Node it was built from.
type Metadata struct {
	Type      string
	TypeClass string
	EnumType  string
	EnumName  any
}

// Segment is one flat, addressable byte range of the inspected file:
// [Offset, Offset+Length). Value holds either a decoded scalar, a raw
// byte slice, a string, or an ordered slice of child Segments — never a
// mix, and never a compactproto.Node.
type Segment struct {
	Offset   int64
	Length   int64
	Name     string
	Value    any
	Metadata *Metadata
}

// New builds a leaf or pre-assembled segment directly, for the
// structural regions the walker identifies itself (the magic numbers,
// the footer-length field, and the footer's own framing) rather than
// deriving from a decoded Node.
func New(from, to int64, name string, value any) Segment {
	return Segment{Offset: from, Length: to - from, Name: name, Value: value}
}

// NewWithMetadata is New plus an explicit Metadata, used when the caller
// already knows the segment's wire type (e.g. "binary" for the raw
// footer bytes) without having decoded a Node for it.
func NewWithMetadata(from, to int64, name string, value any, metadata Metadata) Segment {
	s := New(from, to, name, value)
	s.Metadata = &metadata
	return s
}

// FromNode converts a decoded Node tree into a Segment tree, anchoring
// every node's file-relative [RangeFrom, RangeTo) at baseOffset (the
// absolute file offset where that decode stream began). Recursion
// applies baseOffset uniformly to every descendant, since every Node in
// a tree shares the same decode-start origin.
func FromNode(node *compactproto.Node, baseOffset int64) Segment {
	s := Segment{
		Offset: baseOffset + node.RangeFrom,
		Length: node.RangeTo - node.RangeFrom,
		Name:   node.Name,
		Metadata: &Metadata{
			Type:      node.Type,
			TypeClass: node.TypeClass,
			EnumType:  node.EnumType,
			EnumName:  node.EnumName,
		},
	}

	switch v := node.Value.(type) {
	case []*compactproto.Node:
		children := make([]Segment, len(v))
		for i, child := range v {
			children[i] = FromNode(child, baseOffset)
		}
		s.Value = children
	default:
		s.Value = node.Value
	}
	return s
}

// FillGaps returns segments (assumed sorted by Offset) with synthetic
// "unknown" segments inserted to cover every byte of [0, fileSize) that
// no segment claims, including a leading gap before the first segment
// and a trailing gap after the last. segments itself is never mutated.
func FillGaps(segments []Segment, fileSize int64) []Segment {
	result := make([]Segment, 0, len(segments)+2)
	var cursor int64
	for _, s := range segments {
		if s.Offset > cursor {
			result = append(result, New(cursor, s.Offset, NameUnknown, nil))
		}
		result = append(result, s)
		cursor = s.Offset + s.Length
	}
	if cursor < fileSize {
		result = append(result, New(cursor, fileSize, NameUnknown, nil))
	}
	return result
}

// FindFooterSegment returns the first top-level segment named "footer",
// or nil if none exists.
func FindFooterSegment(segments []Segment) *Segment {
	for i := range segments {
		if segments[i].Name == NameFooter {
			return &segments[i]
		}
	}
	return nil
}
