package rfb

// EncodingType identifies how a rectangle's pixel payload is laid out,
// or (for negative values) a pseudo-encoding the client advertises
// support for out-of-band. The set is open: wire values outside the
// named constants must be preserved verbatim rather than rejected, per
// spec.md §9.
type EncodingType int32

const (
	EncodingRaw      EncodingType = 0
	EncodingCopyRect EncodingType = 1
	EncodingRRE      EncodingType = 2
	EncodingHextile  EncodingType = 5
	EncodingTRLE     EncodingType = 15
	EncodingZRLE     EncodingType = 16

	EncodingCursorPseudo      EncodingType = -239
	EncodingDesktopSizePseudo EncodingType = -223
)

// Non-raw encodings (CopyRect, RRE, Hextile, TRLE, ZRLE) are enumerated
// here so SetEncodings and FramebufferUpdate framing can name them, but
// this core never constructs their payloads: SendFramebufferUpdate writes
// whatever tag and payload the caller supplies. Per spec.md §1, building
// those payloads is out of scope.
