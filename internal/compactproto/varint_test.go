package compactproto

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadVarintSingleByte(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{0x07}), 1)
	v, err := r.readVarint()
	require.NoError(t, err)
	assert.Equal(t, uint64(7), v)
}

func TestReadVarintMultiByte(t *testing.T) {
	// 300 = 0b1_0010_1100 -> low 7 bits 0101100 with continuation, then 0000010.
	r := NewReader(bytes.NewReader([]byte{0xAC, 0x02}), 2)
	v, err := r.readVarint()
	require.NoError(t, err)
	assert.Equal(t, uint64(300), v)
}

func TestReadVarintOverflowErrors(t *testing.T) {
	raw := bytes.Repeat([]byte{0x80}, 11)
	r := NewReader(bytes.NewReader(raw), int64(len(raw)))
	_, err := r.readVarint()
	require.Error(t, err)
}

func TestReadZigzagVarintRoundTrip(t *testing.T) {
	cases := []int64{0, 1, -1, 2, -2, 127, -128, 1 << 20, -(1 << 20)}
	for _, want := range cases {
		encoded := zigzagEncode(want)
		r := NewReader(bytes.NewReader(encoded), int64(len(encoded)))
		got, err := r.readZigzagVarint()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

// zigzagEncode mirrors the compact protocol's writer side just enough to
// produce round-trip fixtures for the tests above.
func zigzagEncode(v int64) []byte {
	u := uint64((v << 1) ^ (v >> 63))
	var out []byte
	for {
		b := byte(u & 0x7f)
		u >>= 7
		if u != 0 {
			out = append(out, b|0x80)
		} else {
			out = append(out, b)
			break
		}
	}
	return out
}
