package rfb

// Key is an X11 keysym as carried in a KeyEvent (RFC 6143 §7.5.4). The
// set is open: any uint32 value is admissible, and values outside the
// well-known names below must round-trip unchanged.
type Key uint32

// Well-known keysyms, named per the X11 keysymdef values RFB clients
// actually send for non-printable keys.
const (
	KeyBackSpace Key = 0xFF08
	KeyTab       Key = 0xFF09
	KeyReturn    Key = 0xFF0D
	KeyEscape    Key = 0xFF1B
	KeyInsert    Key = 0xFF63
	KeyDelete    Key = 0xFFFF
	KeyHome      Key = 0xFF50
	KeyEnd       Key = 0xFF57
	KeyPageUp    Key = 0xFF55
	KeyPageDown  Key = 0xFF56
	KeyLeft      Key = 0xFF51
	KeyUp        Key = 0xFF52
	KeyRight     Key = 0xFF53
	KeyDown      Key = 0xFF54

	KeyF1  Key = 0xFFBE
	KeyF2  Key = 0xFFBF
	KeyF3  Key = 0xFFC0
	KeyF4  Key = 0xFFC1
	KeyF5  Key = 0xFFC2
	KeyF6  Key = 0xFFC3
	KeyF7  Key = 0xFFC4
	KeyF8  Key = 0xFFC5
	KeyF9  Key = 0xFFC6
	KeyF10 Key = 0xFFC7
	KeyF11 Key = 0xFFC8
	KeyF12 Key = 0xFFC9

	KeyShiftLeft    Key = 0xFFE1
	KeyShiftRight   Key = 0xFFE2
	KeyControlLeft  Key = 0xFFE3
	KeyControlRight Key = 0xFFE4
	KeyMetaLeft     Key = 0xFFE7
	KeyMetaRight    Key = 0xFFE8
	KeyAltLeft      Key = 0xFFE9
	KeyAltRight     Key = 0xFFEA
)
