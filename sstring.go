// Package stackie provides String, a fixed-capacity string that lives
// entirely inside its own value. A String never allocates: its storage is
// a byte array one byte longer than its capacity, and every assignment
// copies into that array, silently truncating anything that does not fit.
//
// The content is always followed by a terminator byte (0), so the raw
// buffer can be handed to consumers that expect C-style text. The length is
// not stored; it is the position of the first terminator.
package stackie

import (
	"errors"
	"unsafe"

	"github.com/rawbytedev/stackie/internal/common"
)

// Terminator marks the end of the logical content in a buffer.
const Terminator byte = 0

var (
	ErrMalformed   = errors.New("stackie: malformed encoding")
	ErrShortBuffer = errors.New("stackie: encoded payload shorter than its length prefix")
	ErrNotScalar   = errors.New("stackie: value is not a string scalar")
)

// Capacity types. CapN holds N content bytes plus the terminator slot.
type (
	Cap0    [0 + 1]byte
	Cap1    [1 + 1]byte
	Cap2    [2 + 1]byte
	Cap4    [4 + 1]byte
	Cap8    [8 + 1]byte
	Cap16   [16 + 1]byte
	Cap32   [32 + 1]byte
	Cap64   [64 + 1]byte
	Cap128  [128 + 1]byte
	Cap256  [256 + 1]byte
	Cap512  [512 + 1]byte
	Cap1024 [1024 + 1]byte
	Cap2048 [2048 + 1]byte
	Cap4096 [4096 + 1]byte
)

// Capacity is the set of backing arrays a String can be instantiated with.
type Capacity interface {
	Cap0 | Cap1 | Cap2 | Cap4 | Cap8 | Cap16 | Cap32 | Cap64 |
		Cap128 | Cap256 | Cap512 | Cap1024 | Cap2048 | Cap4096
}

// String is a fixed-capacity, terminator-delimited string.
// The zero value is an empty string ready to use.
//
// Marshal methods and String have value receivers so that plain struct
// fields encode correctly; everything that must see the instance's own
// storage takes a pointer.
type String[C Capacity] struct {
	buf C
}

// Aliases cover every capacity from 8 up; the smaller ones are spelled out,
// e.g. String[Cap2].
type (
	String8    = String[Cap8]
	String16   = String[Cap16]
	String32   = String[Cap32]
	String64   = String[Cap64]
	String128  = String[Cap128]
	String256  = String[Cap256]
	String512  = String[Cap512]
	String1024 = String[Cap1024]
	String2048 = String[Cap2048]
	String4096 = String[Cap4096]
)

// New returns an empty String. It is equivalent to the zero value.
func New[C Capacity]() String[C] {
	var s String[C]
	s.buf[0] = Terminator
	return s
}

// CapacityOf reports the number of content bytes a String[C] can hold,
// excluding the terminator. No instance is needed.
func CapacityOf[C Capacity]() int {
	var buf C
	return len(buf) - 1
}

// bytes is the whole backing array as a slice, terminator slot included.
func (s *String[C]) bytes() []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(&s.buf)), len(s.buf))
}

// Cap reports the capacity; it never changes over the life of s.
func (s *String[C]) Cap() int {
	return len(s.buf) - 1
}

// Len reports the number of bytes before the first terminator.
// It scans the buffer, so it costs O(Cap).
func (s *String[C]) Len() int {
	return common.CStrLen(s.bytes())
}

// Raw returns the whole buffer, Cap()+1 bytes long, with the terminator at
// Raw()[Len()]. The slice aliases s and is only valid while s is; callers
// must not write through it.
func (s *String[C]) Raw() []byte {
	return s.bytes()
}

// Bytes returns the logical content as a view into s. It is invalidated by
// the next assignment.
func (s *String[C]) Bytes() []byte {
	b := s.bytes()
	return b[:common.CStrLen(b)]
}

// UnsafeString returns the logical content without copying.
// The result changes if s is reassigned; copy it if it must outlive that.
func (s *String[C]) UnsafeString() string {
	b := s.Bytes()
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(&b[0], len(b))
}

// String returns a copy of the logical content.
func (s String[C]) String() string {
	return string(s.Bytes())
}

// Reset empties s.
func (s *String[C]) Reset() {
	s.bytes()[0] = Terminator
}
