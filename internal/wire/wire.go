// Package wire implements the big-endian read/write discipline the RFB
// protocol uses for every integer and length-prefixed field on the
// stream. It has no RFB-specific knowledge of its own.
package wire

import (
	"encoding/binary"
	"errors"
	"io"

	pkgerrors "github.com/pkg/errors"
)

// ErrUnexpectedEnd is returned whenever the stream closes in the middle
// of a message, i.e. fewer bytes were available than the message framing
// promised.
var ErrUnexpectedEnd = errors.New("rfb: unexpected end of stream")

// ReadFull reads exactly len(buf) bytes, translating any EOF (clean or
// not) into ErrUnexpectedEnd so callers can distinguish a mid-message
// disconnect from a message-boundary one (which callers detect by
// calling ReadByte/ReadUint8 directly and checking for io.EOF).
func ReadFull(r io.Reader, buf []byte) error {
	if _, err := io.ReadFull(r, buf); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return ErrUnexpectedEnd
		}
		return pkgerrors.Wrap(err, "rfb/wire: read")
	}
	return nil
}

// ReadByte reads a single byte without translating io.EOF, so callers
// waiting at a message boundary (e.g. Session.WaitEvent) can tell a
// clean disconnect from a truncated one.
func ReadByte(r io.Reader) (byte, error) {
	var buf [1]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}

// ReadUint8 reads one byte as an unsigned 8-bit integer.
func ReadUint8(r io.Reader) (uint8, error) {
	var buf [1]byte
	if err := ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}

// ReadUint16 reads a big-endian 16-bit integer.
func ReadUint16(r io.Reader) (uint16, error) {
	var buf [2]byte
	if err := ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(buf[:]), nil
}

// ReadUint32 reads a big-endian 32-bit integer.
func ReadUint32(r io.Reader) (uint32, error) {
	var buf [4]byte
	if err := ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(buf[:]), nil
}

// ReadInt32 reads a big-endian signed 32-bit integer (used for encoding
// tags, which are negative for pseudo-encodings).
func ReadInt32(r io.Reader) (int32, error) {
	v, err := ReadUint32(r)
	return int32(v), err
}

// ReadPad discards n padding bytes without validating their content.
func ReadPad(r io.Reader, n int) error {
	if n <= 0 {
		return nil
	}
	buf := make([]byte, n)
	return ReadFull(r, buf)
}

// ReadBytes reads exactly n bytes and returns them as a new slice.
func ReadBytes(r io.Reader, n int) ([]byte, error) {
	buf := make([]byte, n)
	if err := ReadFull(r, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// ReadLengthPrefixed reads a uint32 length followed by that many bytes.
func ReadLengthPrefixed(r io.Reader) ([]byte, error) {
	n, err := ReadUint32(r)
	if err != nil {
		return nil, err
	}
	return ReadBytes(r, int(n))
}

// WriteUint8 writes a single byte.
func WriteUint8(w io.Writer, v uint8) error {
	_, err := w.Write([]byte{v})
	return pkgerrors.Wrap(err, "rfb/wire: write")
}

// WriteUint16 writes a big-endian 16-bit integer.
func WriteUint16(w io.Writer, v uint16) error {
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], v)
	_, err := w.Write(buf[:])
	return pkgerrors.Wrap(err, "rfb/wire: write")
}

// WriteUint32 writes a big-endian 32-bit integer.
func WriteUint32(w io.Writer, v uint32) error {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], v)
	_, err := w.Write(buf[:])
	return pkgerrors.Wrap(err, "rfb/wire: write")
}

// WriteInt32 writes a big-endian signed 32-bit integer.
func WriteInt32(w io.Writer, v int32) error {
	return WriteUint32(w, uint32(v))
}

// WritePad writes n zero padding bytes.
func WritePad(w io.Writer, n int) error {
	if n <= 0 {
		return nil
	}
	_, err := w.Write(make([]byte, n))
	return pkgerrors.Wrap(err, "rfb/wire: write pad")
}

// WriteBytes writes buf verbatim.
func WriteBytes(w io.Writer, buf []byte) error {
	_, err := w.Write(buf)
	return pkgerrors.Wrap(err, "rfb/wire: write")
}

// WriteLengthPrefixed writes a uint32 length followed by buf. Returns
// ErrLengthOverflow if len(buf) exceeds the uint32 range.
func WriteLengthPrefixed(w io.Writer, buf []byte) error {
	if uint64(len(buf)) > 0xFFFFFFFF {
		return ErrLengthOverflow
	}
	if err := WriteUint32(w, uint32(len(buf))); err != nil {
		return err
	}
	return WriteBytes(w, buf)
}

// ErrLengthOverflow is returned when a length field would exceed the
// protocol's representable range (spec.md's Overflow error kind).
var ErrLengthOverflow = errors.New("rfb: length exceeds protocol range")
