package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int32le(v int32) []byte {
	return []byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)}
}

func footerWithTwoRowGroups(minA, maxA, minB, maxB int32) map[string]any {
	schema := []any{
		map[string]any{"name": "schema", "num_children": int64(1)},
		map[string]any{"name": "value", "num_children": int64(0), "type": "INT32"},
	}
	column := func(min, max int32, numValues int64) map[string]any {
		return map[string]any{
			"meta_data": map[string]any{
				"type":                    "INT32",
				"path_in_schema":          []any{"value"},
				"encodings":               []any{"PLAIN", "RLE"},
				"codec":                   "SNAPPY",
				"num_values":              numValues,
				"total_uncompressed_size": int64(100),
				"total_compressed_size":   int64(80),
				"statistics": map[string]any{
					"null_count":         int64(1),
					"min_value":          int32le(min),
					"max_value":          int32le(max),
					"is_min_value_exact": true,
					"is_max_value_exact": true,
				},
			},
		}
	}
	return map[string]any{
		"schema": schema,
		"row_groups": []any{
			map[string]any{"columns": []any{column(minA, maxA, 10)}},
			map[string]any{"columns": []any{column(minB, maxB, 20)}},
		},
	}
}

func TestAggregateColumnsFoldsAcrossRowGroups(t *testing.T) {
	footer := footerWithTwoRowGroups(5, 50, -3, 40)
	result := AggregateColumns(footer, nil, 256)
	require.Len(t, result, 1)

	col := result[0]
	assert.Equal(t, []string{"value"}, col.PathInSchema)
	assert.Equal(t, int64(30), col.NumValues)
	assert.Equal(t, int64(200), col.TotalUncompressedSize)
	assert.Equal(t, int64(160), col.TotalCompressedSize)
	assert.ElementsMatch(t, []string{"PLAIN", "RLE"}, col.Encodings)
	assert.Equal(t, []string{"SNAPPY"}, col.Codecs)
	assert.Equal(t, int64(2), col.NullCount)
	assert.True(t, col.IsMinValueExact)
	assert.True(t, col.IsMaxValueExact)

	assert.Equal(t, int32le(-3), col.MinValue)
	assert.Equal(t, int32le(50), col.MaxValue)
	assert.Equal(t, "-3", col.MinValueDisplay)
	assert.Equal(t, "50", col.MaxValueDisplay)
}

func TestAggregateColumnsUnionsEncodingsWithoutDuplicates(t *testing.T) {
	footer := footerWithTwoRowGroups(0, 1, 0, 1)
	result := AggregateColumns(footer, nil, 256)
	require.Len(t, result, 1)
	assert.Len(t, result[0].Encodings, 2)
}
