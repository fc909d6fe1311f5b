package compactproto

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReaderReadAdvancesPosition(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{1, 2, 3, 4}), 4)
	assert.Equal(t, int64(0), r.Tell())

	b, err := r.Read(2)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2}, b)
	assert.Equal(t, int64(2), r.Tell())

	r.Seek(0)
	assert.Equal(t, int64(0), r.Tell())
}

func TestReaderReadPastEndReturnsShortBufferNotAClassifiedError(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{1, 2}), 2)
	b, err := r.Read(5)
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.Equal(t, []byte{1, 2}, b)
	assert.Less(t, len(b), 5)
}

func TestReaderReadAtExactEndReturnsEOF(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{1, 2}), 2)
	r.Seek(2)
	b, err := r.Read(3)
	require.ErrorIs(t, err, io.EOF)
	assert.Empty(t, b)
}

func TestReaderReadByte(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{0xAB}), 1)
	b, err := r.ReadByte()
	require.NoError(t, err)
	assert.Equal(t, byte(0xAB), b)
}
