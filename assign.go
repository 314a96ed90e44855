package stackie

import (
	"unsafe"

	"github.com/rawbytedev/stackie/internal/common"
)

// truncate copies min(n, len(dst)-1) bytes from src into dst and writes the
// terminator right after them. Positions of src at or past len(src) but
// below n read as the terminator, which lets a declared size count the
// implicit terminator of a literal. Returns the terminator offset.
func truncate(dst, src []byte, n int) int {
	m := min(n, len(dst)-1)
	k := copy(dst[:m], src)
	clear(dst[k:m])
	dst[m] = Terminator
	return m
}

// stringBytes views s as bytes without copying; the result is only read.
func stringBytes(s string) []byte {
	return unsafe.Slice(unsafe.StringData(s), len(s))
}

// FromFixed builds a String[C] from a String of any capacity. See AssignFixed.
func FromFixed[C, M Capacity](src *String[M]) String[C] {
	var s String[C]
	AssignFixed(&s, src)
	return s
}

// AssignFixed copies min(Cap(dst), Cap(src)) bytes of src's buffer into
// dst. The bound is src's capacity, not its length: bytes past src's
// terminator are copied verbatim, so a shorter source still lands
// terminated at its own length.
func AssignFixed[C, M Capacity](dst *String[C], src *String[M]) {
	truncate(dst.bytes(), src.bytes(), CapacityOf[M]())
}

// FromLiteral builds a String[C] from a literal. See AssignLiteral.
func FromLiteral[C Capacity](lit string) String[C] {
	var s String[C]
	s.AssignLiteral(lit)
	return s
}

// AssignLiteral copies a literal whose declared size is len(lit)+1, the
// extra slot being the literal's own terminator.
func (s *String[C]) AssignLiteral(lit string) {
	truncate(s.bytes(), stringBytes(lit), len(lit)+1)
}

// FromArray builds a String[C] from a sized byte array. See AssignArray.
func FromArray[C Capacity](src []byte) String[C] {
	var s String[C]
	s.AssignArray(src)
	return s
}

// AssignArray copies min(Cap, len(src)) bytes of src verbatim, terminators
// included; len(src) is taken as the array's declared size.
func (s *String[C]) AssignArray(src []byte) {
	truncate(s.bytes(), src, len(src))
}

// FromCBytes builds a String[C] from terminated bytes. See AssignCBytes.
func FromCBytes[C Capacity](src []byte) String[C] {
	var s String[C]
	s.AssignCBytes(src)
	return s
}

// AssignCBytes copies src up to its first terminator. The scan never goes
// past len(src); a slice without a terminator is taken whole.
func (s *String[C]) AssignCBytes(src []byte) {
	truncate(s.bytes(), src, common.CStrLen(src))
}

// FromString builds a String[C] from a Go string. See AssignString.
func FromString[C Capacity](str string) String[C] {
	var s String[C]
	s.AssignString(str)
	return s
}

// AssignString copies min(Cap, len(str)) bytes of str.
func (s *String[C]) AssignString(str string) {
	truncate(s.bytes(), stringBytes(str), len(str))
}
