package stackie

import (
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

var long = strings.Repeat("payload data ", 40)

func BenchmarkAssignString(b *testing.B) {
	var s String256
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		s.AssignString(long)
	}
}

func BenchmarkAssignCBytes(b *testing.B) {
	var s String256
	src := []byte(long + "\x00")
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		s.AssignCBytes(src)
	}
}

func BenchmarkAssignFixed(b *testing.B) {
	src := FromString[Cap4096](long)
	var dst String256
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		AssignFixed(&dst, &src)
	}
}

// Len scans, so it grows with capacity.
func BenchmarkLen(b *testing.B) {
	s := FromString[Cap4096](long)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = s.Len()
	}
}

func BenchmarkMarshalBinary(b *testing.B) {
	s := FromString[Cap256](long)
	buf := make([]byte, 0, 512)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		buf, _ = s.AppendBinary(buf[:0])
	}
	b.SetBytes(int64(len(buf)))
}

func BenchmarkMarshalYAML(b *testing.B) {
	s := FromString[Cap256](long)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = yaml.Marshal(s)
	}
}
