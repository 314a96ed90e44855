package stackie

import (
	"encoding/base64"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"

	"github.com/rawbytedev/stackie/internal/common"
)

// Decoders share the assignment policy: content longer than the capacity
// is truncated, never rejected.

var (
	cborEnc cbor.EncMode
	cborDec cbor.DecMode
)

func init() {
	var err error
	cborEnc, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("stackie: CBOR encoder initialization failed: " + err.Error())
	}
	cborDec, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic("stackie: CBOR decoder initialization failed: " + err.Error())
	}
}

// MarshalText returns a copy of the logical content. Through encoding/json
// only valid UTF-8 round-trips: invalid bytes come back as U+FFFD.
func (s String[C]) MarshalText() ([]byte, error) {
	return s.Append(nil), nil
}

// UnmarshalText assigns text, truncating it to the capacity.
func (s *String[C]) UnmarshalText(text []byte) error {
	s.AssignArray(text)
	return nil
}

// AppendBinary appends a uvarint length followed by the content.
func (s String[C]) AppendBinary(b []byte) ([]byte, error) {
	content := s.Bytes()
	b = common.AppendUvarint(b, uint64(len(content)))
	return append(b, content...), nil
}

// MarshalBinary encodes s as a uvarint length followed by the content.
func (s String[C]) MarshalBinary() ([]byte, error) {
	return s.AppendBinary(make([]byte, 0, s.Len()+common.MaxVarintLen))
}

// UnmarshalBinary decodes the MarshalBinary layout. The whole of data must
// be consumed.
func (s *String[C]) UnmarshalBinary(data []byte) error {
	size, n := common.ReadUvarint(data)
	if n <= 0 {
		return fmt.Errorf("%w: bad length prefix", ErrMalformed)
	}
	rest := data[n:]
	if uint64(len(rest)) < size {
		return fmt.Errorf("%w: want %d bytes, have %d", ErrShortBuffer, size, len(rest))
	}
	if uint64(len(rest)) > size {
		return fmt.Errorf("%w: %d trailing bytes", ErrMalformed, uint64(len(rest))-size)
	}
	s.AssignArray(rest)
	return nil
}

// MarshalYAML emits the content as a string scalar. yaml.v3 writes content
// that is not valid UTF-8 as a !!binary scalar.
func (s String[C]) MarshalYAML() (any, error) {
	return s.String(), nil
}

// UnmarshalYAML accepts a scalar; null leaves s empty and !!binary is
// base64-decoded.
func (s *String[C]) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("%w: yaml line %d", ErrNotScalar, value.Line)
	}
	switch value.ShortTag() {
	case "!!null":
		s.Reset()
	case "!!binary":
		raw, err := base64.StdEncoding.DecodeString(strings.Join(strings.Fields(value.Value), ""))
		if err != nil {
			return fmt.Errorf("%w: yaml line %d: %w", ErrMalformed, value.Line, err)
		}
		s.AssignArray(raw)
	default:
		s.AssignString(value.Value)
	}
	return nil
}

// MarshalCBOR emits a text string, or a byte string when the content is
// not valid UTF-8.
func (s String[C]) MarshalCBOR() ([]byte, error) {
	content := s.Bytes()
	if utf8.Valid(content) {
		return cborEnc.Marshal(string(content))
	}
	return cborEnc.Marshal(content)
}

// UnmarshalCBOR accepts a text string, a byte string or null.
func (s *String[C]) UnmarshalCBOR(data []byte) error {
	var v any
	if err := cborDec.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	switch v := v.(type) {
	case nil:
		s.Reset()
	case string:
		s.AssignString(v)
	case []byte:
		s.AssignArray(v)
	default:
		return fmt.Errorf("%w: cbor %T", ErrNotScalar, v)
	}
	return nil
}
