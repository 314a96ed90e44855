package common

import "bytes"

// MaxVarintLen is the longest encoding of a 64-bit varint.
const MaxVarintLen = 10

// CStrLen returns the index of the first 0 byte in b, or len(b) if there
// is none. It never looks past b.
func CStrLen(b []byte) int {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		return i
	}
	return len(b)
}

// AppendUvarint appends varint-encoded x to dst using a small stack scratch.
func AppendUvarint(dst []byte, x uint64) []byte {
	var scratch [MaxVarintLen]byte
	i := 0
	for x >= 0x80 {
		scratch[i] = byte(x) | 0x80
		x >>= 7
		i++
	}
	scratch[i] = byte(x)
	i++
	return append(dst, scratch[:i]...)
}

// ReadUvarint decodes a varint from b returning value and bytes consumed.
// n == 0 means b ended mid-varint; n < 0 means the value overflows 64 bits.
func ReadUvarint(b []byte) (uint64, int) {
	var x uint64
	var s uint
	for i, c := range b {
		if i == MaxVarintLen {
			return 0, -(i + 1)
		}
		if c < 0x80 {
			if i == MaxVarintLen-1 && c > 1 {
				return 0, -(i + 1)
			}
			return x | uint64(c)<<s, i + 1
		}
		x |= uint64(c&0x7F) << s
		s += 7
	}
	return 0, 0
}
