package rfb

import (
	"errors"

	"github.com/ikskuh/zvnc/internal/wire"
)

// Error taxonomy. Every protocol-level failure the core surfaces is one
// of these — callers should use errors.Is against the sentinels below
// rather than matching strings. Transport errors from the underlying
// stream have no sentinel of their own; they are returned as they are or
// wrapped with read/write context.
var (
	// ErrUnexpectedEnd mirrors wire.ErrUnexpectedEnd: the stream closed
	// in the middle of a message.
	ErrUnexpectedEnd = wire.ErrUnexpectedEnd

	// ErrProtocolMismatch is returned for a malformed version literal
	// or an unsupported/unknown selected security type.
	ErrProtocolMismatch = errors.New("rfb: protocol mismatch")

	// ErrProtocolViolation is returned for an unknown client message
	// type, or any other value outside a closed enumerated set where
	// the protocol requires one.
	ErrProtocolViolation = errors.New("rfb: protocol violation")

	// ErrAuthenticationFailed is returned when the VNC-auth DES
	// response does not match the expected value.
	ErrAuthenticationFailed = errors.New("rfb: authentication failed")

	// ErrUnsupportedPixelFormat is returned when indexed-color pixel
	// encoding is requested; the core only implements true-color.
	ErrUnsupportedPixelFormat = errors.New("rfb: unsupported pixel format")

	// ErrOverflow is returned when a length field would exceed the
	// protocol's representable range.
	ErrOverflow = wire.ErrLengthOverflow
)
