package rfb

import (
	"fmt"
	"io"

	"github.com/ikskuh/zvnc/internal/wire"
)

// ProtocolVersion is the major/minor pair carried in the 12-byte RFB
// handshake literal "RFB xxx.yyy\n" (RFC 6143 §7.1.1).
type ProtocolVersion struct {
	Major int
	Minor int
}

// Version38 is the only protocol version this core negotiates; it is
// written verbatim as the first 12 bytes of every handshake.
var Version38 = ProtocolVersion{Major: 3, Minor: 8}

const protocolVersionLen = 12

// String renders the canonical "RFB xxx.yyy\n" wire form.
func (v ProtocolVersion) String() string {
	return fmt.Sprintf("RFB %03d.%03d\n", v.Major, v.Minor)
}

// parseProtocolVersion parses exactly 12 bytes of the form
// "RFB ddd.ddd\n". Any deviation in the literal framing is
// ErrProtocolMismatch — the three-digit fields themselves are taken as
// their numeric value, per spec.md §3.
func parseProtocolVersion(buf []byte) (ProtocolVersion, error) {
	if len(buf) != protocolVersionLen {
		return ProtocolVersion{}, ErrProtocolMismatch
	}

	var major, minor int
	n, err := fmt.Sscanf(string(buf), "RFB %03d.%03d\n", &major, &minor)
	if err != nil || n != 2 {
		return ProtocolVersion{}, ErrProtocolMismatch
	}

	// Sscanf with %03d is lenient: it skips leading spaces and accepts a
	// sign, so "RFB +03.008\n" or "RFB  03.008\n" scan as 3 and 8.
	// Re-render and compare byte-for-byte so such wrongly framed
	// literals are rejected rather than silently accepted.
	got := ProtocolVersion{Major: major, Minor: minor}
	if got.String() != string(buf) {
		return ProtocolVersion{}, ErrProtocolMismatch
	}
	return got, nil
}

// readProtocolVersion reads the 12-byte handshake literal and parses it.
func readProtocolVersion(r io.Reader) (ProtocolVersion, error) {
	buf := make([]byte, protocolVersionLen)
	if err := wire.ReadFull(r, buf); err != nil {
		return ProtocolVersion{}, err
	}
	return parseProtocolVersion(buf)
}
