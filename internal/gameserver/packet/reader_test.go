package packet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReader_ReadFields(t *testing.T) {
	r := NewReader([]byte("12 u_s 3 0 1042 7 -8\n"))

	seq, err := r.ReadLong()
	require.NoError(t, err)
	assert.Equal(t, int64(12), seq)

	header, err := r.ReadString()
	require.NoError(t, err)
	assert.Equal(t, "u_s", header)

	castID, err := r.ReadShort()
	require.NoError(t, err)
	assert.Equal(t, int16(3), castID)

	require.NoError(t, r.Skip(1))
	id, err := r.ReadInt()
	require.NoError(t, err)
	assert.Equal(t, int32(1042), id)
	assert.Equal(t, 2, r.Remaining())
	assert.Equal(t, 5, r.Position())

	x, err := r.ReadShort()
	require.NoError(t, err)
	y, err := r.ReadShort()
	require.NoError(t, err)
	assert.Equal(t, int16(7), x)
	assert.Equal(t, int16(-8), y)

	_, err = r.ReadShort()
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestReader_Malformed(t *testing.T) {
	r := NewReaderFields([]string{"abc", "70000"})
	_, err := r.ReadInt()
	assert.ErrorIs(t, err, ErrMalformed)

	_, err = r.ReadShort()
	assert.ErrorIs(t, err, ErrMalformed, "70000 overflows int16")

	assert.ErrorIs(t, NewReaderFields(nil).Skip(1), ErrMalformed)
}
