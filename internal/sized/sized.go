// Package sized picks a stackie capacity at run time. Each supported
// capacity is a separate instantiation of stackie.String; New maps an int
// onto the matching one behind the Buffer interface.
package sized

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/rawbytedev/stackie"
)

var (
	ErrCapacity = errors.New("unsupported capacity")
	ErrMode     = errors.New("unknown assignment mode")
)

// Mode selects which assignment path text goes through.
type Mode string

const (
	ModeLiteral Mode = "literal"
	ModeArray   Mode = "array"
	ModeCBytes  Mode = "cstr"
	ModeString  Mode = "string"
)

var modes = []Mode{ModeLiteral, ModeArray, ModeCBytes, ModeString}

func ParseMode(s string) (Mode, error) {
	m := Mode(s)
	if !slices.Contains(modes, m) {
		return "", fmt.Errorf("%w: %q", ErrMode, s)
	}
	return m, nil
}

// Buffer is a stackie.String whose capacity was chosen at run time.
type Buffer interface {
	Cap() int
	Len() int
	Raw() []byte
	Bytes() []byte
	String() string
	WriteTo(w io.Writer) (int64, error)
	Assign(mode Mode, text string) error
	// AssignFrom copies src with the cross-capacity rule: the bound is
	// src's capacity, not its length.
	AssignFrom(src Buffer) error
	Reset()
	// Value is the stackie.String value, for encoders.
	Value() any
	// Target points at the stackie.String, for decoders.
	Target() any
}

var capacities = []int{0, 1, 2, 4, 8, 16, 32, 64, 128, 256, 512, 1024, 2048, 4096}

// Capacities lists the supported capacities in increasing order.
func Capacities() []int {
	return slices.Clone(capacities)
}

func Supported(capacity int) bool {
	_, ok := slices.BinarySearch(capacities, capacity)
	return ok
}

// New returns an empty Buffer of the given capacity.
func New(capacity int) (Buffer, error) {
	switch capacity {
	case 0:
		return &slot[stackie.Cap0]{}, nil
	case 1:
		return &slot[stackie.Cap1]{}, nil
	case 2:
		return &slot[stackie.Cap2]{}, nil
	case 4:
		return &slot[stackie.Cap4]{}, nil
	case 8:
		return &slot[stackie.Cap8]{}, nil
	case 16:
		return &slot[stackie.Cap16]{}, nil
	case 32:
		return &slot[stackie.Cap32]{}, nil
	case 64:
		return &slot[stackie.Cap64]{}, nil
	case 128:
		return &slot[stackie.Cap128]{}, nil
	case 256:
		return &slot[stackie.Cap256]{}, nil
	case 512:
		return &slot[stackie.Cap512]{}, nil
	case 1024:
		return &slot[stackie.Cap1024]{}, nil
	case 2048:
		return &slot[stackie.Cap2048]{}, nil
	case 4096:
		return &slot[stackie.Cap4096]{}, nil
	}
	return nil, fmt.Errorf("%w: %d (supported: %v)", ErrCapacity, capacity, capacities)
}

type slot[C stackie.Capacity] struct {
	s stackie.String[C]
}

func (b *slot[C]) Cap() int                           { return b.s.Cap() }
func (b *slot[C]) Len() int                           { return b.s.Len() }
func (b *slot[C]) Raw() []byte                        { return b.s.Raw() }
func (b *slot[C]) Bytes() []byte                      { return b.s.Bytes() }
func (b *slot[C]) String() string                     { return b.s.String() }
func (b *slot[C]) WriteTo(w io.Writer) (int64, error) { return b.s.WriteTo(w) }
func (b *slot[C]) Reset()                             { b.s.Reset() }
func (b *slot[C]) Value() any                         { return b.s }
func (b *slot[C]) Target() any                        { return &b.s }

func (b *slot[C]) Assign(mode Mode, text string) error {
	switch mode {
	case ModeLiteral:
		b.s.AssignLiteral(text)
	case ModeArray:
		b.s.AssignArray([]byte(text))
	case ModeCBytes:
		b.s.AssignCBytes([]byte(text))
	case ModeString:
		b.s.AssignString(text)
	default:
		return fmt.Errorf("%w: %q", ErrMode, mode)
	}
	return nil
}

func (b *slot[C]) AssignFrom(src Buffer) error {
	switch o := src.(type) {
	case *slot[stackie.Cap0]:
		stackie.AssignFixed(&b.s, &o.s)
	case *slot[stackie.Cap1]:
		stackie.AssignFixed(&b.s, &o.s)
	case *slot[stackie.Cap2]:
		stackie.AssignFixed(&b.s, &o.s)
	case *slot[stackie.Cap4]:
		stackie.AssignFixed(&b.s, &o.s)
	case *slot[stackie.Cap8]:
		stackie.AssignFixed(&b.s, &o.s)
	case *slot[stackie.Cap16]:
		stackie.AssignFixed(&b.s, &o.s)
	case *slot[stackie.Cap32]:
		stackie.AssignFixed(&b.s, &o.s)
	case *slot[stackie.Cap64]:
		stackie.AssignFixed(&b.s, &o.s)
	case *slot[stackie.Cap128]:
		stackie.AssignFixed(&b.s, &o.s)
	case *slot[stackie.Cap256]:
		stackie.AssignFixed(&b.s, &o.s)
	case *slot[stackie.Cap512]:
		stackie.AssignFixed(&b.s, &o.s)
	case *slot[stackie.Cap1024]:
		stackie.AssignFixed(&b.s, &o.s)
	case *slot[stackie.Cap2048]:
		stackie.AssignFixed(&b.s, &o.s)
	case *slot[stackie.Cap4096]:
		stackie.AssignFixed(&b.s, &o.s)
	default:
		return fmt.Errorf("%w: source %T", ErrCapacity, src)
	}
	return nil
}
