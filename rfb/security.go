package rfb

import (
	"crypto/rand"
	"io"

	"github.com/ikskuh/zvnc/internal/des"
	"github.com/ikskuh/zvnc/internal/wire"
)

// SecurityKind identifies the authentication scheme offered during the
// handshake. RFB reserves other values as protocol violations.
type SecurityKind uint8

const (
	SecurityInvalid SecurityKind = 0
	SecurityNone    SecurityKind = 1
	SecurityVNCAuth SecurityKind = 2
)

const challengeLen = 16

// generateChallenge fills buf with cryptographically random bytes. It is
// a variable so tests can substitute a deterministic source without
// threading an rng through the public API.
var generateChallenge = func(buf []byte) error {
	_, err := rand.Read(buf)
	return err
}

// bitReverseByte reverses the bit order of a single byte. RFC 6143 does
// not document this step; it is nonetheless required for interop
// because every deployed VNC client and server stores the DES key with
// each password byte bit-reversed (LSB-first) before scheduling it.
func bitReverseByte(b byte) byte {
	b = (b&0x55)<<1 | (b&0xAA)>>1
	b = (b&0x33)<<2 | (b&0xCC)>>2
	b = (b&0x0F)<<4 | (b&0xF0)>>4
	return b
}

// vncAuthKey derives the 64-bit DES key from a password: the first 8
// ASCII bytes, right-padded with NUL if shorter, each bit-reversed.
func vncAuthKey(password []byte) uint64 {
	var key [8]byte
	copy(key[:], password)
	for i := range key {
		key[i] = bitReverseByte(key[i])
	}
	var k uint64
	for _, b := range key {
		k = (k << 8) | uint64(b)
	}
	return k
}

// vncAuthResponse encrypts a 16-byte challenge as two independent 8-byte
// ECB blocks under the password-derived key, per RFC 6143 §7.2.2.
func vncAuthResponse(password []byte, challenge [challengeLen]byte) [challengeLen]byte {
	schedule := des.NewEncryptSchedule(vncAuthKey(password))

	var out [challengeLen]byte
	var block [8]byte

	copy(block[:], challenge[:8])
	cipher := des.ProcessBlock(block, schedule)
	copy(out[:8], cipher[:])

	copy(block[:], challenge[8:])
	cipher = des.ProcessBlock(block, schedule)
	copy(out[8:], cipher[:])

	return out
}

// performVNCAuth runs the VNC-auth challenge/response sub-dialog as the
// server: generate a random challenge, send it, read the client's
// response, and compare it against a real DES-ECB encryption of the
// challenge under the configured password. This replaces the
// zero-response check called out as a bug in spec.md §9 — the
// comparison here is a genuine cryptographic check of the response.
func performVNCAuth(rw io.ReadWriter, password []byte) error {
	var challenge [challengeLen]byte
	if err := generateChallenge(challenge[:]); err != nil {
		return err
	}

	if err := wire.WriteBytes(rw, challenge[:]); err != nil {
		return err
	}

	responseBuf, err := wire.ReadBytes(rw, challengeLen)
	if err != nil {
		return err
	}

	expected := vncAuthResponse(password, challenge)
	if !constantTimeEqual(expected[:], responseBuf) {
		return ErrAuthenticationFailed
	}
	return nil
}

// constantTimeEqual compares two equal-length byte slices without
// branching on the byte index.
func constantTimeEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	var diff byte
	for i := range a {
		diff |= a[i] ^ b[i]
	}
	return diff == 0
}
