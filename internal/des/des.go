// Package des implements the Data Encryption Standard block cipher
// from scratch, table by table, against the NIST FIPS 46 constants.
//
// RFB's VNC-authentication security type (RFC 6143 §7.2.2) mandates DES
// as the challenge/response cipher. The cipher is cryptographically
// broken; it is implemented here only for wire compatibility with
// existing VNC clients and servers, never for confidentiality.
package des

// Schedule holds the 16 round subkeys derived from a 64-bit key, each
// stored in the low 48 bits of a uint64.
type Schedule [16]uint64

// initial permutation
var ip = [64]uint8{
	58, 50, 42, 34, 26, 18, 10, 2,
	60, 52, 44, 36, 28, 20, 12, 4,
	62, 54, 46, 38, 30, 22, 14, 6,
	64, 56, 48, 40, 32, 24, 16, 8,
	57, 49, 41, 33, 25, 17, 9, 1,
	59, 51, 43, 35, 27, 19, 11, 3,
	61, 53, 45, 37, 29, 21, 13, 5,
	63, 55, 47, 39, 31, 23, 15, 7,
}

// final (inverse initial) permutation
var fp = [64]uint8{
	40, 8, 48, 16, 56, 24, 64, 32,
	39, 7, 47, 15, 55, 23, 63, 31,
	38, 6, 46, 14, 54, 22, 62, 30,
	37, 5, 45, 13, 53, 21, 61, 29,
	36, 4, 44, 12, 52, 20, 60, 28,
	35, 3, 43, 11, 51, 19, 59, 27,
	34, 2, 42, 10, 50, 18, 58, 26,
	33, 1, 41, 9, 49, 17, 57, 25,
}

// expansion table E: 32 -> 48 bits
var expansion = [48]uint8{
	32, 1, 2, 3, 4, 5,
	4, 5, 6, 7, 8, 9,
	8, 9, 10, 11, 12, 13,
	12, 13, 14, 15, 16, 17,
	16, 17, 18, 19, 20, 21,
	20, 21, 22, 23, 24, 25,
	24, 25, 26, 27, 28, 29,
	28, 29, 30, 31, 32, 1,
}

// permutation P applied after the S-box substitution
var perm = [32]uint8{
	16, 7, 20, 21,
	29, 12, 28, 17,
	1, 15, 23, 26,
	5, 18, 31, 10,
	2, 8, 24, 14,
	32, 27, 3, 9,
	19, 13, 30, 6,
	22, 11, 4, 25,
}

// permuted choice 1: 64 -> 56 bits (the 8 parity bits are dropped)
var pc1 = [56]uint8{
	57, 49, 41, 33, 25, 17, 9,
	1, 58, 50, 42, 34, 26, 18,
	10, 2, 59, 51, 43, 35, 27,
	19, 11, 3, 60, 52, 44, 36,
	63, 55, 47, 39, 31, 23, 15,
	7, 62, 54, 46, 38, 30, 22,
	14, 6, 61, 53, 45, 37, 29,
	21, 13, 5, 28, 20, 12, 4,
}

// permuted choice 2: 56 -> 48 bits, producing one round subkey
var pc2 = [48]uint8{
	14, 17, 11, 24, 1, 5,
	3, 28, 15, 6, 21, 10,
	23, 19, 12, 4, 26, 8,
	16, 7, 27, 20, 13, 2,
	41, 52, 31, 37, 47, 55,
	30, 40, 51, 45, 33, 48,
	44, 49, 39, 56, 34, 53,
	46, 42, 50, 36, 29, 32,
}

// per-round left-rotation amount applied to each 28-bit half
var rotations = [16]uint8{1, 1, 2, 2, 2, 2, 2, 2, 1, 2, 2, 2, 2, 2, 2, 1}

// the eight S-boxes, 4 rows x 16 columns each
var sboxes = [8][4][16]uint8{
	{ // S1
		{14, 4, 13, 1, 2, 15, 11, 8, 3, 10, 6, 12, 5, 9, 0, 7},
		{0, 15, 7, 4, 14, 2, 13, 1, 10, 6, 12, 11, 9, 5, 3, 8},
		{4, 1, 14, 8, 13, 6, 2, 11, 15, 12, 9, 7, 3, 10, 5, 0},
		{15, 12, 8, 2, 4, 9, 1, 7, 5, 11, 3, 14, 10, 0, 6, 13},
	},
	{ // S2
		{15, 1, 8, 14, 6, 11, 3, 4, 9, 7, 2, 13, 12, 0, 5, 10},
		{3, 13, 4, 7, 15, 2, 8, 14, 12, 0, 1, 10, 6, 9, 11, 5},
		{0, 14, 7, 11, 10, 4, 13, 1, 5, 8, 12, 6, 9, 3, 2, 15},
		{13, 8, 10, 1, 3, 15, 4, 2, 11, 6, 7, 12, 0, 5, 14, 9},
	},
	{ // S3
		{10, 0, 9, 14, 6, 3, 15, 5, 1, 13, 12, 7, 11, 4, 2, 8},
		{13, 7, 0, 9, 3, 4, 6, 10, 2, 8, 5, 14, 12, 11, 15, 1},
		{13, 6, 4, 9, 8, 15, 3, 0, 11, 1, 2, 12, 5, 10, 14, 7},
		{1, 10, 13, 0, 6, 9, 8, 7, 4, 15, 14, 3, 11, 5, 2, 12},
	},
	{ // S4
		{7, 13, 14, 3, 0, 6, 9, 10, 1, 2, 8, 5, 11, 12, 4, 15},
		{13, 8, 11, 5, 6, 15, 0, 3, 4, 7, 2, 12, 1, 10, 14, 9},
		{10, 6, 9, 0, 12, 11, 7, 13, 15, 1, 3, 14, 5, 2, 8, 4},
		{3, 15, 0, 6, 10, 1, 13, 8, 9, 4, 5, 11, 12, 7, 2, 14},
	},
	{ // S5
		{2, 12, 4, 1, 7, 10, 11, 6, 8, 5, 3, 15, 13, 0, 14, 9},
		{14, 11, 2, 12, 4, 7, 13, 1, 5, 0, 15, 10, 3, 9, 8, 6},
		{4, 2, 1, 11, 10, 13, 7, 8, 15, 9, 12, 5, 6, 3, 0, 14},
		{11, 8, 12, 7, 1, 14, 2, 13, 6, 15, 0, 9, 10, 4, 5, 3},
	},
	{ // S6
		{12, 1, 10, 15, 9, 2, 6, 8, 0, 13, 3, 4, 14, 7, 5, 11},
		{10, 15, 4, 2, 7, 12, 9, 5, 6, 1, 13, 14, 0, 11, 3, 8},
		{9, 14, 15, 5, 2, 8, 12, 3, 7, 0, 4, 10, 1, 13, 11, 6},
		{4, 3, 2, 12, 9, 5, 15, 10, 11, 14, 1, 7, 6, 0, 8, 13},
	},
	{ // S7
		{4, 11, 2, 14, 15, 0, 8, 13, 3, 12, 9, 7, 5, 10, 6, 1},
		{13, 0, 11, 7, 4, 9, 1, 10, 14, 3, 5, 12, 2, 15, 8, 6},
		{1, 4, 11, 13, 12, 3, 7, 14, 10, 15, 6, 8, 0, 5, 9, 2},
		{6, 11, 13, 8, 1, 4, 10, 7, 9, 5, 0, 15, 14, 2, 3, 12},
	},
	{ // S8
		{13, 2, 8, 4, 6, 15, 11, 1, 10, 9, 3, 14, 5, 0, 12, 7},
		{1, 15, 13, 8, 10, 3, 7, 4, 12, 5, 6, 11, 0, 14, 9, 2},
		{7, 11, 4, 1, 9, 12, 14, 2, 0, 6, 10, 13, 15, 3, 5, 8},
		{2, 1, 14, 7, 4, 10, 8, 13, 15, 12, 9, 0, 3, 5, 6, 11},
	},
}

// permute reads bit table[i] (1-indexed, MSB-first within srcBits bits
// of src) and writes it as bit i of the result (MSB-first within
// len(table) bits).
func permute(src uint64, srcBits int, table []uint8) uint64 {
	var out uint64
	for _, bitPos := range table {
		shift := uint(srcBits) - uint(bitPos)
		bit := (src >> shift) & 1
		out = (out << 1) | bit
	}
	return out
}

func rotate28(half uint32, n uint8) uint32 {
	const mask = (1 << 28) - 1
	half &= mask
	return ((half << n) | (half >> (28 - n))) & mask
}

func keySchedule(key uint64) [16]uint64 {
	permuted := permute(key, 64, pc1[:])
	c := uint32(permuted >> 28)
	d := uint32(permuted & ((1 << 28) - 1))

	var subkeys [16]uint64
	for round := 0; round < 16; round++ {
		c = rotate28(c, rotations[round])
		d = rotate28(d, rotations[round])
		combined := (uint64(c) << 28) | uint64(d)
		subkeys[round] = permute(combined, 56, pc2[:])
	}
	return subkeys
}

// NewEncryptSchedule derives the 16 round subkeys for encryption from a
// 64-bit key (the parity bits, if any, are ignored).
func NewEncryptSchedule(key uint64) Schedule {
	return Schedule(keySchedule(key))
}

// NewDecryptSchedule derives the subkeys for decryption: the same
// schedule as encryption, used in reverse round order.
func NewDecryptSchedule(key uint64) Schedule {
	enc := keySchedule(key)
	var dec Schedule
	for i := range enc {
		dec[i] = enc[15-i]
	}
	return dec
}

func feistel(r uint32, subkey uint64) uint32 {
	expanded := permute(uint64(r), 32, expansion[:])
	expanded ^= subkey

	var substituted uint32
	for i := 0; i < 8; i++ {
		shift := uint(42 - 6*i)
		group := uint8((expanded >> shift) & 0x3F)
		row := (group & 0x20 >> 4) | (group & 0x01)
		col := (group >> 1) & 0x0F
		substituted = (substituted << 4) | uint32(sboxes[i][row][col])
	}

	return uint32(permute(uint64(substituted), 32, perm[:]))
}

// ProcessBlock runs the 16-round Feistel network over one 8-byte block
// using the given subkey schedule, returning the transformed block. The
// same function implements both encryption and decryption; which
// operation is performed depends solely on whether subkeys came from
// NewEncryptSchedule or NewDecryptSchedule.
func ProcessBlock(block [8]byte, subkeys Schedule) [8]byte {
	var packed uint64
	for _, b := range block {
		packed = (packed << 8) | uint64(b)
	}

	permuted := permute(packed, 64, ip[:])
	l := uint32(permuted >> 32)
	r := uint32(permuted)

	for round := 0; round < 16; round++ {
		l, r = r, l^feistel(r, subkeys[round])
	}

	// swap halves once more after the 16th round, per the standard
	combined := (uint64(r) << 32) | uint64(l)
	final := permute(combined, 64, fp[:])

	var out [8]byte
	for i := 7; i >= 0; i-- {
		out[i] = byte(final)
		final >>= 8
	}
	return out
}

// EncryptECB encrypts data (which must be a multiple of 8 bytes) in
// place, block by block, with no chaining — the mode RFC 6143 §7.2.2
// requires for the VNC-auth challenge.
func EncryptECB(data []byte, subkeys Schedule) {
	for off := 0; off+8 <= len(data); off += 8 {
		var block [8]byte
		copy(block[:], data[off:off+8])
		out := ProcessBlock(block, subkeys)
		copy(data[off:off+8], out[:])
	}
}
