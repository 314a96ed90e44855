package stackie

import "io"

// WriteTo writes the logical content of s to w. Errors are w's.
func (s *String[C]) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(s.Bytes())
	return int64(n), err
}

// Append appends the logical content of s to dst and returns the extended
// slice.
func (s *String[C]) Append(dst []byte) []byte {
	return append(dst, s.Bytes()...)
}
