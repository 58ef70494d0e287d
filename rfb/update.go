package rfb

import (
	"bytes"

	"github.com/ikskuh/zvnc/internal/wire"
)

// Server-to-client message type bytes (RFC 6143 §7.6).
const (
	msgFramebufferUpdate   uint8 = 0
	msgSetColorMapEntries  uint8 = 1
	msgBell                uint8 = 2
	msgServerCutText       uint8 = 3
)

// UpdateRectangle is one rectangle of a FramebufferUpdate message. Data
// is already the on-wire payload for Encoding — the core does not
// encode it; that is the host's job via PixelFormat.Encode (spec.md §3).
type UpdateRectangle struct {
	X, Y     uint16
	Width    uint16
	Height   uint16
	Encoding EncodingType
	Data     []byte
}

// SendFramebufferUpdate writes one FramebufferUpdate message containing
// rectangles, buffering the whole message and flushing it as a single
// write to minimize TCP segmentation, per spec.md §4.5.
func (s *Session) SendFramebufferUpdate(rectangles []UpdateRectangle) error {
	if len(rectangles) > 0xFFFF {
		return ErrOverflow
	}

	var buf bytes.Buffer

	if err := wire.WriteUint8(&buf, msgFramebufferUpdate); err != nil {
		return err
	}
	if err := wire.WritePad(&buf, 1); err != nil {
		return err
	}
	if err := wire.WriteUint16(&buf, uint16(len(rectangles))); err != nil {
		return err
	}

	for _, rect := range rectangles {
		if err := wire.WriteUint16(&buf, rect.X); err != nil {
			return err
		}
		if err := wire.WriteUint16(&buf, rect.Y); err != nil {
			return err
		}
		if err := wire.WriteUint16(&buf, rect.Width); err != nil {
			return err
		}
		if err := wire.WriteUint16(&buf, rect.Height); err != nil {
			return err
		}
		if err := wire.WriteInt32(&buf, int32(rect.Encoding)); err != nil {
			return err
		}
		if err := wire.WriteBytes(&buf, rect.Data); err != nil {
			return err
		}
	}

	return wire.WriteBytes(s.stream, buf.Bytes())
}

// SendSetColorMapEntries writes a SetColorMapEntries message. Each
// color's channels are clamped to [0.0, 1.0] and scaled to 16 bits:
// round(clamp(channel, 0, 1) * 65535).
func (s *Session) SendSetColorMapEntries(first uint16, colors []Color) error {
	if len(colors) > 0xFFFF {
		return ErrOverflow
	}

	var buf bytes.Buffer

	if err := wire.WriteUint8(&buf, msgSetColorMapEntries); err != nil {
		return err
	}
	if err := wire.WritePad(&buf, 1); err != nil {
		return err
	}
	if err := wire.WriteUint16(&buf, first); err != nil {
		return err
	}
	if err := wire.WriteUint16(&buf, uint16(len(colors))); err != nil {
		return err
	}

	for _, c := range colors {
		clamped := c.Clamp()
		if err := wire.WriteUint16(&buf, roundColorChannel16(clamped.R)); err != nil {
			return err
		}
		if err := wire.WriteUint16(&buf, roundColorChannel16(clamped.G)); err != nil {
			return err
		}
		if err := wire.WriteUint16(&buf, roundColorChannel16(clamped.B)); err != nil {
			return err
		}
	}

	return wire.WriteBytes(s.stream, buf.Bytes())
}

// SendBell writes the single-byte Bell message.
func (s *Session) SendBell() error {
	return wire.WriteUint8(s.stream, msgBell)
}

// SendServerCutText writes a ServerCutText message. text is declared
// ISO-8859-1 by the protocol; callers are responsible for encoding it
// that way before calling.
func (s *Session) SendServerCutText(text []byte) error {
	var buf bytes.Buffer

	if err := wire.WriteUint8(&buf, msgServerCutText); err != nil {
		return err
	}
	if err := wire.WritePad(&buf, 3); err != nil {
		return err
	}
	if err := wire.WriteLengthPrefixed(&buf, text); err != nil {
		return err
	}

	return wire.WriteBytes(s.stream, buf.Bytes())
}
