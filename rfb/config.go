package rfb

// Config carries everything a Session needs from the host before a
// handshake can begin. None of it is read from a file or environment
// variable inside the core — the host assembles it, per spec.md §6.
type Config struct {
	ScreenWidth  uint16
	ScreenHeight uint16
	DesktopName  []byte

	// PixelFormat is the server's initial pixel format, sent during
	// ServerInit. The client may replace it at any time with
	// SetPixelFormat.
	PixelFormat PixelFormat

	// SecurityKind selects the single security kind this core offers.
	// Exactly one of SecurityKind==SecurityNone or
	// SecurityKind==SecurityVNCAuth is valid; any other value is a
	// configuration error caught at Handshake time.
	SecurityKind SecurityKind

	// Password is the VNC-auth password, required when SecurityKind is
	// SecurityVNCAuth and ignored otherwise. Only its first 8 ASCII
	// bytes matter (see vncAuthKey).
	Password []byte
}

// DefaultConfig returns a Config with BGRX8888 pixels and no
// authentication, suitable as a starting point for a host to override.
func DefaultConfig(width, height uint16, desktopName string) Config {
	return Config{
		ScreenWidth:  width,
		ScreenHeight: height,
		DesktopName:  []byte(desktopName),
		PixelFormat:  BGRX8888,
		SecurityKind: SecurityNone,
	}
}
