package rfb

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/ikskuh/zvnc/internal/wire"
)

// PixelFormat describes how a pixel is laid out on the wire: bits per
// pixel, depth, endianness, true-color flag, per-channel maxima and
// shifts. See RFC 6143 §7.4 and spec.md §3.
type PixelFormat struct {
	BPP        uint8
	Depth      uint8
	BigEndian  bool
	TrueColor  bool
	RedMax     uint16
	GreenMax   uint16
	BlueMax    uint16
	RedShift   uint8
	GreenShift uint8
	BlueShift  uint8
}

// pixelFormatWireLen is the fixed size of the serialized PixelFormat
// record: 4 single-byte fields, 3 uint16 maxima, 3 single-byte shifts,
// and 3 padding bytes.
const pixelFormatWireLen = 16

// BGRX8888 is the canonical preset: 32bpp, 24-bit depth, little-endian,
// true-color, full-byte channels in B-G-R-X order on the wire.
var BGRX8888 = PixelFormat{
	BPP:        32,
	Depth:      24,
	BigEndian:  false,
	TrueColor:  true,
	RedMax:     255,
	GreenMax:   255,
	BlueMax:    255,
	RedShift:   16,
	GreenShift: 8,
	BlueShift:  0,
}

// byteOrder returns the binary.ByteOrder implied by BigEndian, used
// only for serializing the encoded pixel integer — never for protocol
// framing, which is always big-endian regardless of this flag.
func (pf PixelFormat) byteOrder() binary.ByteOrder {
	if pf.BigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

func boolByte(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

// Serialize writes the 16-byte wire record for pf.
func (pf PixelFormat) Serialize(w io.Writer) error {
	if err := wire.WriteUint8(w, pf.BPP); err != nil {
		return err
	}
	if err := wire.WriteUint8(w, pf.Depth); err != nil {
		return err
	}
	if err := wire.WriteUint8(w, boolByte(pf.BigEndian)); err != nil {
		return err
	}
	if err := wire.WriteUint8(w, boolByte(pf.TrueColor)); err != nil {
		return err
	}
	if err := wire.WriteUint16(w, pf.RedMax); err != nil {
		return err
	}
	if err := wire.WriteUint16(w, pf.GreenMax); err != nil {
		return err
	}
	if err := wire.WriteUint16(w, pf.BlueMax); err != nil {
		return err
	}
	if err := wire.WriteUint8(w, pf.RedShift); err != nil {
		return err
	}
	if err := wire.WriteUint8(w, pf.GreenShift); err != nil {
		return err
	}
	if err := wire.WriteUint8(w, pf.BlueShift); err != nil {
		return err
	}
	return wire.WritePad(w, 3)
}

// DeserializePixelFormat reads the 16-byte wire record into a
// PixelFormat, mirroring Serialize.
func DeserializePixelFormat(r io.Reader) (PixelFormat, error) {
	var pf PixelFormat
	var err error

	if pf.BPP, err = wire.ReadUint8(r); err != nil {
		return PixelFormat{}, err
	}
	if pf.Depth, err = wire.ReadUint8(r); err != nil {
		return PixelFormat{}, err
	}
	be, err := wire.ReadUint8(r)
	if err != nil {
		return PixelFormat{}, err
	}
	pf.BigEndian = be != 0
	tc, err := wire.ReadUint8(r)
	if err != nil {
		return PixelFormat{}, err
	}
	pf.TrueColor = tc != 0

	if pf.RedMax, err = wire.ReadUint16(r); err != nil {
		return PixelFormat{}, err
	}
	if pf.GreenMax, err = wire.ReadUint16(r); err != nil {
		return PixelFormat{}, err
	}
	if pf.BlueMax, err = wire.ReadUint16(r); err != nil {
		return PixelFormat{}, err
	}
	if pf.RedShift, err = wire.ReadUint8(r); err != nil {
		return PixelFormat{}, err
	}
	if pf.GreenShift, err = wire.ReadUint8(r); err != nil {
		return PixelFormat{}, err
	}
	if pf.BlueShift, err = wire.ReadUint8(r); err != nil {
		return PixelFormat{}, err
	}
	if err := wire.ReadPad(r, 3); err != nil {
		return PixelFormat{}, err
	}

	return pf, nil
}

// Color is a server-side color in normalized floating point, clamped to
// [0.0, 1.0] by Clamp on paths that require it (color-map entries).
type Color struct {
	R, G, B float64
}

// Clamp returns c with every channel restricted to [0.0, 1.0].
func (c Color) Clamp() Color {
	clamp := func(v float64) float64 {
		if v < 0 {
			return 0
		}
		if v > 1 {
			return 1
		}
		return v
	}
	return Color{R: clamp(c.R), G: clamp(c.G), B: clamp(c.B)}
}

// bytesPerPixel returns bpp/8 for the supported values 8, 16, 24, 32 and
// 64 (so bpp=24 is 3 bytes, not padded to 4), and 0 for any other value.
func bytesPerPixel(bpp uint8) int {
	switch bpp {
	case 8:
		return 1
	case 16:
		return 2
	case 24:
		return 3
	case 32:
		return 4
	case 64:
		return 8
	default:
		return 0
	}
}

// Encode converts color into the on-wire byte sequence pf describes.
// In true-color mode it computes
//
//	encoded = (RedMax*r)<<RedShift | (GreenMax*g)<<GreenShift | (BlueMax*b)<<BlueShift
//
// truncating each channel's float-to-integer conversion, and writes the
// result in ceil(bpp/8) bytes (3 for bpp=24) using the byte order
// BigEndian selects. Unsupported bpp values (anything but 8/16/24/32/64)
// produce a zero-length result — the pixel is silently skipped, per
// spec.md §4.2. Indexed-color mode is not supported and returns
// ErrUnsupportedPixelFormat.
func (pf PixelFormat) Encode(c Color) ([]byte, error) {
	if !pf.TrueColor {
		return nil, ErrUnsupportedPixelFormat
	}

	n := bytesPerPixel(pf.BPP)
	if n == 0 {
		return nil, nil
	}

	r := uint64(float64(pf.RedMax) * c.R)
	g := uint64(float64(pf.GreenMax) * c.G)
	b := uint64(float64(pf.BlueMax) * c.B)

	encoded := (r << pf.RedShift) | (g << pf.GreenShift) | (b << pf.BlueShift)

	out := make([]byte, n)
	value := encoded
	order := pf.byteOrder()
	switch n {
	case 1:
		out[0] = byte(value)
	case 2:
		order.PutUint16(out, uint16(value))
	case 3:
		// 24-bit has no PutUint24; assemble the three bytes by hand in
		// the selected byte order.
		b0, b1, b2 := byte(value), byte(value>>8), byte(value>>16)
		if pf.BigEndian {
			out[0], out[1], out[2] = b2, b1, b0
		} else {
			out[0], out[1], out[2] = b0, b1, b2
		}
	case 4:
		order.PutUint32(out, uint32(value))
	case 8:
		order.PutUint64(out, value)
	}
	return out, nil
}

// Decode is the inverse of Encode, restricted to true-color mode: given
// the on-wire byte sequence for one pixel, recover the normalized
// [0.0, 1.0] channel values. spec.md §9 leaves this unspecified in the
// source; this core implements it because the demo host and the
// round-trip tests need it.
func (pf PixelFormat) Decode(buf []byte) (Color, error) {
	if !pf.TrueColor {
		return Color{}, ErrUnsupportedPixelFormat
	}

	n := bytesPerPixel(pf.BPP)
	if n == 0 || len(buf) < n {
		return Color{}, nil
	}

	var value uint64
	order := pf.byteOrder()
	switch n {
	case 1:
		value = uint64(buf[0])
	case 2:
		value = uint64(order.Uint16(buf))
	case 3:
		if pf.BigEndian {
			value = uint64(buf[0])<<16 | uint64(buf[1])<<8 | uint64(buf[2])
		} else {
			value = uint64(buf[2])<<16 | uint64(buf[1])<<8 | uint64(buf[0])
		}
	case 4:
		value = uint64(order.Uint32(buf))
	case 8:
		value = order.Uint64(buf)
	}

	channel := func(max uint16, shift uint8) float64 {
		if max == 0 {
			return 0
		}
		v := (value >> shift) & uint64(max)
		return float64(v) / float64(max)
	}

	return Color{
		R: channel(pf.RedMax, pf.RedShift),
		G: channel(pf.GreenMax, pf.GreenShift),
		B: channel(pf.BlueMax, pf.BlueShift),
	}, nil
}

// roundColorChannel16 maps an already-clamped [0.0, 1.0] channel to the
// 16-bit resolution SetColorMapEntries transmits each channel at.
func roundColorChannel16(v float64) uint16 {
	return uint16(math.Round(v * 65535))
}
