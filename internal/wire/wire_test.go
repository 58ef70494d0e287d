package wire

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadWriteRoundTrip(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteUint8(&buf, 0xAB))
	require.NoError(t, WriteUint16(&buf, 0x1234))
	require.NoError(t, WriteUint32(&buf, 0xDEADBEEF))
	require.NoError(t, WriteInt32(&buf, -223))
	require.NoError(t, WritePad(&buf, 3))
	require.NoError(t, WriteLengthPrefixed(&buf, []byte("hello")))

	u8, err := ReadUint8(&buf)
	require.NoError(t, err)
	require.Equal(t, uint8(0xAB), u8)

	u16, err := ReadUint16(&buf)
	require.NoError(t, err)
	require.Equal(t, uint16(0x1234), u16)

	u32, err := ReadUint32(&buf)
	require.NoError(t, err)
	require.Equal(t, uint32(0xDEADBEEF), u32)

	i32, err := ReadInt32(&buf)
	require.NoError(t, err)
	require.Equal(t, int32(-223), i32)

	require.NoError(t, ReadPad(&buf, 3))

	text, err := ReadLengthPrefixed(&buf)
	require.NoError(t, err)
	require.Equal(t, []byte("hello"), text)
}

func TestReadFullShortReadIsUnexpectedEnd(t *testing.T) {
	buf := bytes.NewReader([]byte{0x01, 0x02})
	_, err := ReadUint32(buf)
	require.ErrorIs(t, err, ErrUnexpectedEnd)
}

func TestReadByteCleanEOF(t *testing.T) {
	buf := bytes.NewReader(nil)
	_, err := ReadByte(buf)
	require.Error(t, err)
}
