package rfb

import (
	"io"

	"github.com/google/uuid"
	"github.com/ikskuh/zvnc/internal/wire"
)

// Handshake drives the full RFB 3.8 handshake over an already-connected
// stream, in the strict order spec.md §4.4 lays out: version exchange,
// security negotiation (and VNC-auth sub-dialog if selected),
// SecurityResult, and ClientInit/ServerInit. It returns a ready-to-use
// Session, or an error if any step fails — callers never see a
// half-initialized Session (spec.md §7).
//
// The server always commits to RFB 3.8: the client's reported version
// is parsed and surfaced for observability only, never used to
// downgrade (spec.md §4.4 note, §9 redesign flag 2).
func Handshake(stream io.ReadWriter, cfg Config) (*Session, error) {
	if err := wire.WriteBytes(stream, []byte(Version38.String())); err != nil {
		return nil, err
	}

	// readProtocolVersion already distinguishes a parse failure
	// (ErrProtocolMismatch) from a mid-message disconnect or transport
	// error (ErrUnexpectedEnd / wrapped Io) — propagate it unchanged.
	clientVersion, err := readProtocolVersion(stream)
	if err != nil {
		return nil, err
	}

	if cfg.SecurityKind != SecurityNone && cfg.SecurityKind != SecurityVNCAuth {
		return nil, ErrProtocolMismatch
	}

	if err := wire.WriteUint8(stream, 1); err != nil { // one offered kind
		return nil, err
	}
	if err := wire.WriteUint8(stream, uint8(cfg.SecurityKind)); err != nil {
		return nil, err
	}

	chosen, err := wire.ReadUint8(stream)
	if err != nil {
		return nil, err
	}
	if SecurityKind(chosen) != cfg.SecurityKind {
		return nil, ErrProtocolMismatch
	}

	var authErr error
	if cfg.SecurityKind == SecurityVNCAuth {
		authErr = performVNCAuth(stream, cfg.Password)
	}

	if err := writeSecurityResult(stream, authErr); err != nil {
		return nil, err
	}
	if authErr != nil {
		return nil, authErr
	}

	sharedByte, err := wire.ReadUint8(stream)
	if err != nil {
		return nil, err
	}
	shared := sharedByte != 0

	if err := wire.WriteUint16(stream, cfg.ScreenWidth); err != nil {
		return nil, err
	}
	if err := wire.WriteUint16(stream, cfg.ScreenHeight); err != nil {
		return nil, err
	}
	if err := cfg.PixelFormat.Serialize(stream); err != nil {
		return nil, err
	}
	if err := wire.WriteLengthPrefixed(stream, cfg.DesktopName); err != nil {
		return nil, err
	}

	return &Session{
		id:            uuid.New(),
		stream:        stream,
		clientVersion: clientVersion,
		shared:        shared,
		pixelFormat:   cfg.PixelFormat,
		screenWidth:   cfg.ScreenWidth,
		screenHeight:  cfg.ScreenHeight,
	}, nil
}

// writeSecurityResult writes the 4-byte SecurityResult word and, on
// failure, the length-prefixed reason string (spec.md §4.4 step 7).
func writeSecurityResult(w io.Writer, authErr error) error {
	if authErr == nil {
		return wire.WriteUint32(w, 0)
	}
	if err := wire.WriteUint32(w, 1); err != nil {
		return err
	}
	return wire.WriteLengthPrefixed(w, []byte(authErr.Error()))
}
