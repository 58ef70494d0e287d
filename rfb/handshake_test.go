package rfb

import (
	"bytes"
	"net"
	"testing"

	"github.com/ikskuh/zvnc/internal/des"
	"github.com/ikskuh/zvnc/internal/wire"
	"github.com/stretchr/testify/require"
)

// S1: handshake with no security.
func TestHandshakeNoSecurity(t *testing.T) {
	serverConn, clientConn := net.Pipe()
	defer serverConn.Close()
	defer clientConn.Close()

	cfg := DefaultConfig(800, 600, "test desktop")

	done := make(chan struct {
		sess *Session
		err  error
	}, 1)
	go func() {
		sess, err := Handshake(serverConn, cfg)
		done <- struct {
			sess *Session
			err  error
		}{sess, err}
	}()

	// Client side of S1.
	versionBuf := make([]byte, 12)
	_, err := clientConn.Read(versionBuf)
	require.NoError(t, err)
	require.Equal(t, "RFB 003.008\n", string(versionBuf))

	_, err = clientConn.Write([]byte("RFB 003.008\n"))
	require.NoError(t, err)

	numTypes, err := wire.ReadUint8(clientConn)
	require.NoError(t, err)
	require.Equal(t, uint8(1), numTypes)

	offered, err := wire.ReadUint8(clientConn)
	require.NoError(t, err)
	require.Equal(t, uint8(SecurityNone), offered)

	require.NoError(t, wire.WriteUint8(clientConn, uint8(SecurityNone)))

	result, err := wire.ReadUint32(clientConn)
	require.NoError(t, err)
	require.Equal(t, uint32(0), result)

	require.NoError(t, wire.WriteUint8(clientConn, 0)) // not shared

	width, err := wire.ReadUint16(clientConn)
	require.NoError(t, err)
	require.Equal(t, uint16(800), width)

	height, err := wire.ReadUint16(clientConn)
	require.NoError(t, err)
	require.Equal(t, uint16(600), height)

	pf, err := DeserializePixelFormat(clientConn)
	require.NoError(t, err)
	require.Equal(t, BGRX8888, pf)

	name, err := wire.ReadLengthPrefixed(clientConn)
	require.NoError(t, err)
	require.Equal(t, "test desktop", string(name))

	res := <-done
	require.NoError(t, res.err)
	require.NotNil(t, res.sess)
	require.False(t, res.sess.Shared())
	require.Equal(t, ProtocolVersion{3, 8}, res.sess.ClientProtocolVersion())
}

// S2: VNC-auth success with a deterministic (all-zero) challenge.
func TestHandshakeVNCAuthSuccess(t *testing.T) {
	orig := generateChallenge
	generateChallenge = func(buf []byte) error {
		for i := range buf {
			buf[i] = 0
		}
		return nil
	}
	defer func() { generateChallenge = orig }()

	serverConn, clientConn := net.Pipe()
	defer serverConn.Close()
	defer clientConn.Close()

	password := []byte("secret\x00\x00")
	cfg := DefaultConfig(640, 480, "auth desktop")
	cfg.SecurityKind = SecurityVNCAuth
	cfg.Password = password

	done := make(chan error, 1)
	var sess *Session
	go func() {
		var err error
		sess, err = Handshake(serverConn, cfg)
		done <- err
	}()

	versionBuf := make([]byte, 12)
	_, err := clientConn.Read(versionBuf)
	require.NoError(t, err)
	_, err = clientConn.Write([]byte("RFB 003.008\n"))
	require.NoError(t, err)

	_, err = wire.ReadUint8(clientConn) // count
	require.NoError(t, err)
	offered, err := wire.ReadUint8(clientConn)
	require.NoError(t, err)
	require.Equal(t, uint8(SecurityVNCAuth), offered)
	require.NoError(t, wire.WriteUint8(clientConn, uint8(SecurityVNCAuth)))

	challenge, err := wire.ReadBytes(clientConn, 16)
	require.NoError(t, err)
	require.Equal(t, make([]byte, 16), challenge)

	key := vncAuthKey(password)
	schedule := des.NewEncryptSchedule(key)
	var block [8]byte
	cipher1 := des.ProcessBlock(block, schedule)
	cipher2 := des.ProcessBlock(block, schedule)
	response := append(append([]byte{}, cipher1[:]...), cipher2[:]...)
	require.NoError(t, wire.WriteBytes(clientConn, response))

	result, err := wire.ReadUint32(clientConn)
	require.NoError(t, err)
	require.Equal(t, uint32(0), result)

	require.NoError(t, wire.WriteUint8(clientConn, 1)) // shared

	_, err = wire.ReadUint16(clientConn)
	require.NoError(t, err)
	_, err = wire.ReadUint16(clientConn)
	require.NoError(t, err)
	_, err = DeserializePixelFormat(clientConn)
	require.NoError(t, err)
	_, err = wire.ReadLengthPrefixed(clientConn)
	require.NoError(t, err)

	require.NoError(t, <-done)
	require.True(t, sess.Shared())
}

// VNC-auth failure: any byte differing from the expected response fails
// authentication, per spec.md property 2/S2.
func TestHandshakeVNCAuthFailure(t *testing.T) {
	orig := generateChallenge
	generateChallenge = func(buf []byte) error {
		for i := range buf {
			buf[i] = 0
		}
		return nil
	}
	defer func() { generateChallenge = orig }()

	serverConn, clientConn := net.Pipe()
	defer serverConn.Close()
	defer clientConn.Close()

	cfg := DefaultConfig(640, 480, "auth desktop")
	cfg.SecurityKind = SecurityVNCAuth
	cfg.Password = []byte("secret\x00\x00")

	done := make(chan error, 1)
	go func() {
		_, err := Handshake(serverConn, cfg)
		done <- err
	}()

	versionBuf := make([]byte, 12)
	_, _ = clientConn.Read(versionBuf)
	_, _ = clientConn.Write([]byte("RFB 003.008\n"))
	_, _ = wire.ReadUint8(clientConn)
	_, _ = wire.ReadUint8(clientConn)
	require.NoError(t, wire.WriteUint8(clientConn, uint8(SecurityVNCAuth)))

	_, err := wire.ReadBytes(clientConn, 16)
	require.NoError(t, err)

	wrongResponse := bytes.Repeat([]byte{0xFF}, 16)
	require.NoError(t, wire.WriteBytes(clientConn, wrongResponse))

	result, err := wire.ReadUint32(clientConn)
	require.NoError(t, err)
	require.Equal(t, uint32(1), result)

	_, err = wire.ReadLengthPrefixed(clientConn) // reason string
	require.NoError(t, err)

	require.ErrorIs(t, <-done, ErrAuthenticationFailed)
}

// A client that disconnects mid-version-literal must surface as
// ErrUnexpectedEnd, not ErrProtocolMismatch — the two mean different
// things to a host (truncated stream vs. a bad literal).
func TestHandshakeClientDisconnectsDuringVersion(t *testing.T) {
	serverConn, clientConn := net.Pipe()
	defer serverConn.Close()

	cfg := DefaultConfig(800, 600, "test desktop")

	done := make(chan error, 1)
	go func() {
		_, err := Handshake(serverConn, cfg)
		done <- err
	}()

	versionBuf := make([]byte, 12)
	_, err := clientConn.Read(versionBuf)
	require.NoError(t, err)

	_, err = clientConn.Write([]byte("RFB 0"))
	require.NoError(t, err)
	require.NoError(t, clientConn.Close())

	require.ErrorIs(t, <-done, ErrUnexpectedEnd)
}

// A malformed but complete version literal is still ErrProtocolMismatch.
func TestHandshakeClientSendsMalformedVersion(t *testing.T) {
	serverConn, clientConn := net.Pipe()
	defer serverConn.Close()
	defer clientConn.Close()

	cfg := DefaultConfig(800, 600, "test desktop")

	done := make(chan error, 1)
	go func() {
		_, err := Handshake(serverConn, cfg)
		done <- err
	}()

	versionBuf := make([]byte, 12)
	_, err := clientConn.Read(versionBuf)
	require.NoError(t, err)

	_, err = clientConn.Write([]byte("NOT A VERS\n\n"))
	require.NoError(t, err)

	require.ErrorIs(t, <-done, ErrProtocolMismatch)
}
