package des

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func hexBlock(t *testing.T, s string) [8]byte {
	t.Helper()
	raw, err := hex.DecodeString(s)
	require.NoError(t, err)
	require.Len(t, raw, 8)
	var b [8]byte
	copy(b[:], raw)
	return b
}

func hexKey(t *testing.T, s string) uint64 {
	t.Helper()
	raw, err := hex.DecodeString(s)
	require.NoError(t, err)
	require.Len(t, raw, 8)
	var k uint64
	for _, b := range raw {
		k = (k << 8) | uint64(b)
	}
	return k
}

// nistVectors is the standard 1977 NIST/NBS DES validation table: key,
// plaintext, and the expected single-block ECB ciphertext.
var nistVectors = []struct {
	name      string
	key       string
	plaintext string
	cipher    string
}{
	{"textbook", "133457799BB0CDFF", "0123456789ABCDEF", "85E813540F0AB405"},
	{"all-zero", "0000000000000000", "0000000000000000", "8CA64DE9C1B123A7"},
	{"all-one", "FFFFFFFFFFFFFFFF", "FFFFFFFFFFFFFFFF", "7359B2163E4EDC58"},
	{"vec3", "3000000000000000", "1000000000000001", "958E6E627A05557B"},
	{"vec4", "1111111111111111", "1111111111111111", "F40379AB9E0EC533"},
	{"vec5", "0123456789ABCDEF", "1111111111111111", "17668DFC7292532D"},
	{"vec6", "1111111111111111", "0123456789ABCDEF", "8A5AE1F81AB8F2DD"},
	{"vec7", "FEDCBA9876543210", "0123456789ABCDEF", "ED39D950FA74BCC4"},
	{"vec8", "7CA110454A1A6E57", "01A1D6D039776742", "690F5B0D9A26939B"},
	{"vec9", "0131D9619DC1376E", "5CD54CA83DEF57DA", "7A389D10354BD271"},
	{"vec10", "07A1133E4A0B2686", "0248D43806F67172", "868EBB51CAB4599A"},
	{"vec11", "3849674C2602319E", "51454B582DDF440A", "7178876E01F19B2A"},
	{"vec12", "04B915BA43FEB5B6", "42FD443059577FA2", "AF37FB421F8C4095"},
	{"vec13", "0113B970FD34F2CE", "059B5E0851CF143A", "86A560F10EC6D85B"},
	{"vec14", "0170F175468FB5E6", "0756D8E0774761D2", "0CD3DA020021DC09"},
	{"vec15", "43297FAD38E373FE", "762514B829BF486A", "EA676B2CB7DB2B7A"},
	{"vec16", "07A7137045DA2A16", "3BDD119049372802", "DFD64A815CAF1A0F"},
	{"vec17", "04689104C2FD3B2F", "26955F6835AF609A", "5C513C9C4886C088"},
	{"vec18", "37D06BB516CB7546", "164D5E404F275232", "0A2AEEAE3FF4AB77"},
}

func TestNISTVectorsEncrypt(t *testing.T) {
	for _, tc := range nistVectors {
		t.Run(tc.name, func(t *testing.T) {
			key := hexKey(t, tc.key)
			plain := hexBlock(t, tc.plaintext)
			want := hexBlock(t, tc.cipher)

			sched := NewEncryptSchedule(key)
			got := ProcessBlock(plain, sched)
			require.Equal(t, want, got)
		})
	}
}

func TestNISTVectorsDecrypt(t *testing.T) {
	for _, tc := range nistVectors {
		t.Run(tc.name, func(t *testing.T) {
			key := hexKey(t, tc.key)
			cipher := hexBlock(t, tc.cipher)
			want := hexBlock(t, tc.plaintext)

			sched := NewDecryptSchedule(key)
			got := ProcessBlock(cipher, sched)
			require.Equal(t, want, got)
		})
	}
}

func TestEncryptECBMultiBlock(t *testing.T) {
	key := hexKey(t, "133457799BBCDFF1")
	sched := NewEncryptSchedule(key)

	data := make([]byte, 0, 16)
	b1, _ := hex.DecodeString("0123456789ABCDEF")
	b2, _ := hex.DecodeString("0123456789ABCDEF")
	data = append(data, b1...)
	data = append(data, b2...)

	EncryptECB(data, sched)

	want, _ := hex.DecodeString("85E813540F0AB405")
	require.Equal(t, want, data[:8])
	require.Equal(t, want, data[8:])
}
