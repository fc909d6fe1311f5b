package segment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parquet-forensics/inspector/internal/compactproto"
)

func TestFromNodeStructAppliesBaseOffset(t *testing.T) {
	node := &compactproto.Node{
		Name: "root", Type: compactproto.TypeStruct, RangeFrom: 0, RangeTo: 4,
	}
	node.AppendChild(&compactproto.Node{
		Name: "field", Type: compactproto.TypeI32, RangeFrom: 0, RangeTo: 4, Value: int64(7),
	})

	s := FromNode(node, 10)

	assert.Equal(t, int64(10), s.Offset)
	assert.Equal(t, int64(4), s.Length)

	children, ok := s.Value.([]Segment)
	require.True(t, ok)
	require.Len(t, children, 1)
	assert.Equal(t, "field", children[0].Name)
	assert.Equal(t, compactproto.TypeI32, children[0].Metadata.Type)
	assert.Equal(t, int64(7), children[0].Value)
}

func TestFromNodeListAppliesSameBaseOffsetToChildren(t *testing.T) {
	node := &compactproto.Node{Name: "values", Type: compactproto.TypeList, RangeFrom: 2, RangeTo: 6}
	node.AppendChild(&compactproto.Node{Name: "element", Type: compactproto.TypeI32, RangeFrom: 2, RangeTo: 4, Value: int64(11)})
	node.AppendChild(&compactproto.Node{Name: "element", Type: compactproto.TypeI32, RangeFrom: 4, RangeTo: 6, Value: int64(22)})

	s := FromNode(node, 8)

	assert.Equal(t, int64(10), s.Offset)
	assert.Equal(t, int64(4), s.Length)
	assert.Equal(t, "list", s.Metadata.Type)

	children := s.Value.([]Segment)
	require.Len(t, children, 2)
	assert.Equal(t, int64(11), children[0].Value)
	assert.Equal(t, int64(22), children[1].Value)
	assert.Equal(t, int64(10), children[0].Offset)
	assert.Equal(t, int64(12), children[1].Offset)
}

func TestFillGapsInsertsUnknownSegments(t *testing.T) {
	segments := []Segment{
		New(0, 4, "magic", "PAR1"),
		New(10, 12, "footer", nil),
	}

	result := FillGaps(segments, 15)

	require.Len(t, result, 4)
	assert.Equal(t, NameUnknown, result[1].Name)
	assert.Equal(t, int64(4), result[1].Offset)
	assert.Equal(t, int64(6), result[1].Length)
	assert.Equal(t, NameUnknown, result[3].Name)
	assert.Equal(t, int64(12), result[3].Offset)
	assert.Equal(t, int64(3), result[3].Length)
}

func TestFillGapsNoMissingRegionsReturnsSameSegments(t *testing.T) {
	segments := []Segment{
		New(0, 3, "a", nil),
		New(3, 6, "b", nil),
	}

	result := FillGaps(segments, 6)

	require.Len(t, result, 2)
	assert.Equal(t, segments, result)
}

func TestFindFooterSegment(t *testing.T) {
	assert.Nil(t, FindFooterSegment([]Segment{New(0, 1, "page", nil)}))

	footer := New(0, 1, NameFooter, nil)
	segments := []Segment{footer}
	found := FindFooterSegment(segments)
	require.NotNil(t, found)
	assert.Equal(t, NameFooter, found.Name)
}
