package rfb

// Message type bytes for client-to-server messages (RFC 6143 §7.5).
const (
	msgSetPixelFormat           uint8 = 0
	msgSetEncodings             uint8 = 2
	msgFramebufferUpdateRequest uint8 = 3
	msgKeyEvent                 uint8 = 4
	msgPointerEvent             uint8 = 5
	msgClientCutText            uint8 = 6
)

// ClientEvent is the tagged union of messages a client can send once
// the session is established. WaitEvent returns one of the concrete
// types below, or nil at a clean end-of-stream.
type ClientEvent interface {
	isClientEvent()
}

// SetPixelFormatEvent carries the pixel format the client wants future
// FramebufferUpdates encoded in. Session.WaitEvent applies this to the
// session's current format as a side effect before returning it.
type SetPixelFormatEvent struct {
	Format PixelFormat
}

func (SetPixelFormatEvent) isClientEvent() {}

// SetEncodingsEvent lists, in the client's preference order, the
// encoding types it is willing to accept.
type SetEncodingsEvent struct {
	Encodings []EncodingType
}

func (SetEncodingsEvent) isClientEvent() {}

// FramebufferUpdateRequestEvent asks the server for the pixel contents
// of a rectangle. Incremental is a hint, not a constraint: the server
// may always reply with a full update.
type FramebufferUpdateRequestEvent struct {
	Incremental bool
	X, Y        uint16
	Width       uint16
	Height      uint16
}

func (FramebufferUpdateRequestEvent) isClientEvent() {}

// KeyEvent reports a key press or release.
type KeyEvent struct {
	Key  Key
	Down bool
}

func (KeyEvent) isClientEvent() {}

// PointerEvent reports pointer motion and the current button mask (one
// bit per button, bit 0 = primary).
type PointerEvent struct {
	X, Y    uint16
	Buttons uint8
}

func (PointerEvent) isClientEvent() {}

// ClientCutTextEvent carries ISO-8859-1 text the client placed on its
// clipboard.
type ClientCutTextEvent struct {
	Text []byte
}

func (ClientCutTextEvent) isClientEvent() {}
