// Package rfb implements the server side of the RFB 3.8 protocol
// (RFC 6143): version and security handshake, the VNC-authentication
// DES challenge, the pixel-format codec, and the post-handshake message
// loop. A TCP listener, process startup, logging configuration, and the
// actual framebuffer contents are the host's responsibility — this
// package consumes and produces bytes on an already-connected stream.
package rfb

import (
	"io"

	"github.com/google/uuid"
	"github.com/ikskuh/zvnc/internal/wire"
)

// Session is a single negotiated RFB connection. It is not safe for
// concurrent use: the protocol is mixed-duplex, but the core does not
// hold the stream's read and write sides behind separate locks, so a
// host pushing updates from one goroutine while pulling events on
// another must serialize those calls itself (spec.md §5).
type Session struct {
	id     uuid.UUID
	stream io.ReadWriter

	clientVersion ProtocolVersion
	shared        bool
	pixelFormat   PixelFormat
	screenWidth   uint16
	screenHeight  uint16
}

// ID is the session's host-facing correlation identifier, generated
// once the handshake completes.
func (s *Session) ID() uuid.UUID { return s.id }

// ClientProtocolVersion is the version the client reported during the
// handshake. The server always speaks 3.8 regardless of this value; it
// is surfaced for observability only.
func (s *Session) ClientProtocolVersion() ProtocolVersion { return s.clientVersion }

// Shared reports the client's shared-connection flag from ClientInit.
func (s *Session) Shared() bool { return s.shared }

// PixelFormat is the session's current pixel format: the server's
// initial configuration until the client sends SetPixelFormat.
func (s *Session) PixelFormat() PixelFormat { return s.pixelFormat }

// Close releases the underlying stream if it implements io.Closer.
func (s *Session) Close() error {
	if c, ok := s.stream.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// WaitEvent reads and decodes exactly one client message. It returns
// (nil, nil) on a clean end-of-stream at a message boundary; an EOF
// encountered mid-message is ErrUnexpectedEnd, not a clean close. An
// unrecognized message type is ErrProtocolViolation. Any I/O error
// terminates the session — WaitEvent must not be called again after an
// error, per spec.md §7.
func (s *Session) WaitEvent() (ClientEvent, error) {
	msgType, err := wire.ReadByte(s.stream)
	if err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, err
	}

	switch msgType {
	case msgSetPixelFormat:
		return s.readSetPixelFormat()
	case msgSetEncodings:
		return s.readSetEncodings()
	case msgFramebufferUpdateRequest:
		return s.readFramebufferUpdateRequest()
	case msgKeyEvent:
		return s.readKeyEvent()
	case msgPointerEvent:
		return s.readPointerEvent()
	case msgClientCutText:
		return s.readClientCutText()
	default:
		return nil, ErrProtocolViolation
	}
}

func (s *Session) readSetPixelFormat() (ClientEvent, error) {
	if err := wire.ReadPad(s.stream, 3); err != nil {
		return nil, err
	}
	pf, err := DeserializePixelFormat(s.stream)
	if err != nil {
		return nil, err
	}
	s.pixelFormat = pf
	return SetPixelFormatEvent{Format: pf}, nil
}

func (s *Session) readSetEncodings() (ClientEvent, error) {
	if err := wire.ReadPad(s.stream, 1); err != nil {
		return nil, err
	}
	count, err := wire.ReadUint16(s.stream)
	if err != nil {
		return nil, err
	}
	encodings := make([]EncodingType, count)
	for i := range encodings {
		v, err := wire.ReadInt32(s.stream)
		if err != nil {
			return nil, err
		}
		encodings[i] = EncodingType(v)
	}
	return SetEncodingsEvent{Encodings: encodings}, nil
}

func (s *Session) readFramebufferUpdateRequest() (ClientEvent, error) {
	incByte, err := wire.ReadUint8(s.stream)
	if err != nil {
		return nil, err
	}
	x, err := wire.ReadUint16(s.stream)
	if err != nil {
		return nil, err
	}
	y, err := wire.ReadUint16(s.stream)
	if err != nil {
		return nil, err
	}
	w, err := wire.ReadUint16(s.stream)
	if err != nil {
		return nil, err
	}
	h, err := wire.ReadUint16(s.stream)
	if err != nil {
		return nil, err
	}
	return FramebufferUpdateRequestEvent{
		Incremental: incByte != 0,
		X:           x,
		Y:           y,
		Width:       w,
		Height:      h,
	}, nil
}

func (s *Session) readKeyEvent() (ClientEvent, error) {
	downByte, err := wire.ReadUint8(s.stream)
	if err != nil {
		return nil, err
	}
	if err := wire.ReadPad(s.stream, 2); err != nil {
		return nil, err
	}
	key, err := wire.ReadUint32(s.stream)
	if err != nil {
		return nil, err
	}
	return KeyEvent{Key: Key(key), Down: downByte != 0}, nil
}

func (s *Session) readPointerEvent() (ClientEvent, error) {
	buttons, err := wire.ReadUint8(s.stream)
	if err != nil {
		return nil, err
	}
	x, err := wire.ReadUint16(s.stream)
	if err != nil {
		return nil, err
	}
	y, err := wire.ReadUint16(s.stream)
	if err != nil {
		return nil, err
	}
	return PointerEvent{X: x, Y: y, Buttons: buttons}, nil
}

func (s *Session) readClientCutText() (ClientEvent, error) {
	if err := wire.ReadPad(s.stream, 3); err != nil {
		return nil, err
	}
	text, err := wire.ReadLengthPrefixed(s.stream)
	if err != nil {
		return nil, err
	}
	return ClientCutTextEvent{Text: text}, nil
}
