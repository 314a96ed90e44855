package common

import (
	"encoding/binary"
	"math"
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/require"
)

func TestCStrLen(t *testing.T) {
	require.Equal(t, 0, CStrLen(nil))
	require.Equal(t, 0, CStrLen([]byte{0, 'a'}))
	require.Equal(t, 3, CStrLen([]byte("abc")))
	require.Equal(t, 2, CStrLen([]byte("ab\x00cd\x00")))
}

func TestUvarintRoundTrip(t *testing.T) {
	condition := func(x uint64) bool {
		b := AppendUvarint(nil, x)
		got, n := ReadUvarint(b)
		return got == x && n == len(b)
	}
	require.NoError(t, quick.Check(condition, &quick.Config{}))
}

func TestUvarintMatchesStdlib(t *testing.T) {
	for _, x := range []uint64{0, 1, 127, 128, 300, 1 << 35, math.MaxUint64} {
		want := binary.AppendUvarint(nil, x)
		require.Equal(t, want, AppendUvarint(nil, x), "x=%d", x)
	}
}

func TestReadUvarintErrors(t *testing.T) {
	_, n := ReadUvarint(nil)
	require.Equal(t, 0, n)
	_, n = ReadUvarint([]byte{0x80, 0x80})
	require.Equal(t, 0, n)

	overflow := []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x02}
	_, n = ReadUvarint(overflow)
	require.Less(t, n, 0)

	tooLong := []byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x01}
	_, n = ReadUvarint(tooLong)
	require.Less(t, n, 0)
}

func TestAppendUvarintKeepsPrefix(t *testing.T) {
	b := AppendUvarint([]byte("ab"), 300)
	require.Equal(t, []byte{'a', 'b', 0xac, 0x02}, b)
}
