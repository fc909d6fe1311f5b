package report

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parquet-forensics/inspector/internal/parquetformat"
)

func TestStatRoundTripIntegers(t *testing.T) {
	cases := []struct {
		name     string
		physical parquetformat.Type
		value    int64
		width    int
	}{
		{"int32 positive", parquetformat.Int32, 42, 4},
		{"int32 negative", parquetformat.Int32, -42, 4},
		{"int64 positive", parquetformat.Int64, 1 << 40, 8},
		{"int64 negative", parquetformat.Int64, -(1 << 40), 8},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			raw := make([]byte, tc.width)
			u := uint64(tc.value)
			for i := 0; i < tc.width; i++ {
				raw[i] = byte(u)
				u >>= 8
			}
			decoded := DecodeStat(raw, tc.physical, false, 0)
			require.Equal(t, "int", decoded.Kind)
			assert.Equal(t, tc.value, decoded.Int)

			reencoded := EncodeStat(decoded, tc.physical, false)
			assert.Equal(t, raw, reencoded)
		})
	}
}

func TestStatRoundTripFloat(t *testing.T) {
	raw := make([]byte, 4)
	binary.LittleEndian.PutUint32(raw, math.Float32bits(3.25))
	decoded := DecodeStat(raw, parquetformat.Float, false, 0)
	require.Equal(t, "float", decoded.Kind)
	assert.InDelta(t, 3.25, decoded.Float, 1e-9)
	assert.Equal(t, raw, EncodeStat(decoded, parquetformat.Float, false))
}

func TestStatRoundTripDouble(t *testing.T) {
	raw := make([]byte, 8)
	binary.LittleEndian.PutUint64(raw, math.Float64bits(-9.5))
	decoded := DecodeStat(raw, parquetformat.Double, false, 0)
	require.Equal(t, "float", decoded.Kind)
	assert.InDelta(t, -9.5, decoded.Float, 1e-12)
	assert.Equal(t, raw, EncodeStat(decoded, parquetformat.Double, false))
}

func TestStatRoundTripBoolean(t *testing.T) {
	for _, raw := range [][]byte{{1}, {0}} {
		decoded := DecodeStat(raw, parquetformat.Boolean, false, 0)
		require.Equal(t, "bool", decoded.Kind)
		assert.Equal(t, raw, EncodeStat(decoded, parquetformat.Boolean, false))
	}
}

func TestStatRoundTripDecimalFixedLenByteArray(t *testing.T) {
	cases := []int64{0, 1, -1, 127, -128, 128, 300, -300}
	for _, v := range cases {
		decoded := DecodedStat{Kind: "decimal", Int: v, Scale: 2}
		encoded := EncodeStat(decoded, parquetformat.FixedLenByteArray, true)
		roundTripped := DecodeStat(encoded, parquetformat.FixedLenByteArray, true, 2)
		assert.Equal(t, v, roundTripped.Int, "value %d", v)

		reencoded := EncodeStat(roundTripped, parquetformat.FixedLenByteArray, true)
		assert.Equal(t, encoded, reencoded)
	}
}

func TestStatMinimalSignedByteLength(t *testing.T) {
	assert.Len(t, encodeBigEndianSignedMinimal(0), 1)
	assert.Len(t, encodeBigEndianSignedMinimal(127), 1)
	assert.Len(t, encodeBigEndianSignedMinimal(128), 2)
	assert.Len(t, encodeBigEndianSignedMinimal(-128), 1)
	assert.Len(t, encodeBigEndianSignedMinimal(-129), 2)
}

func TestStatPassthroughForNonDecimalFixedLenByteArray(t *testing.T) {
	raw := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	decoded := DecodeStat(raw, parquetformat.FixedLenByteArray, false, 0)
	require.Equal(t, "bytes", decoded.Kind)
	assert.Equal(t, raw, decoded.Bytes)
	assert.Equal(t, raw, EncodeStat(decoded, parquetformat.FixedLenByteArray, false))
}

func TestFormatStatsValueStringTruncates(t *testing.T) {
	longStr := ""
	for i := 0; i < 300; i++ {
		longStr += "a"
	}
	decoded := DecodedStat{Kind: "bytes", Bytes: []byte(longStr)}
	out := FormatStatsValue(decoded, true, 256)
	assert.Contains(t, out, "more characters)")
	assert.Less(t, len(out), len(longStr)+20)
}

func TestFormatStatsValueBinaryHexEncodesAndTruncates(t *testing.T) {
	decoded := DecodedStat{Kind: "bytes", Bytes: []byte{0xDE, 0xAD, 0xBE, 0xEF}}
	out := FormatStatsValue(decoded, false, 256)
	assert.Equal(t, "deadbeef", out)
}

func TestFormatStatsValueDecimal(t *testing.T) {
	assert.Equal(t, "1.23", FormatStatsValue(DecodedStat{Kind: "decimal", Int: 123, Scale: 2}, false, 256))
	assert.Equal(t, "-0.05", FormatStatsValue(DecodedStat{Kind: "decimal", Int: -5, Scale: 2}, false, 256))
	assert.Equal(t, "100", FormatStatsValue(DecodedStat{Kind: "decimal", Int: 100, Scale: 0}, false, 256))
}

func TestFormatStatsValueScalarKinds(t *testing.T) {
	assert.Equal(t, "42", FormatStatsValue(DecodedStat{Kind: "int", Int: 42}, false, 256))
	assert.Equal(t, "true", FormatStatsValue(DecodedStat{Kind: "bool", Bool: true}, false, 256))
}
