package stackie_test

import (
	"fmt"
	"os"

	"github.com/rawbytedev/stackie"
)

func Example() {
	var s stackie.String8
	s.AssignLiteral("hello world!")
	fmt.Println(s.Cap(), s.Len(), s)
	// Output: 8 8 hello wo
}

func ExampleFromFixed() {
	big := stackie.FromString[stackie.Cap256]("hello world!")
	small := stackie.FromFixed[stackie.Cap8](&big)
	fmt.Println(small.String())
	// Output: hello wo
}

func ExampleString_WriteTo() {
	s := stackie.FromCBytes[stackie.Cap256]([]byte("hello world!\x00ignored"))
	s.WriteTo(os.Stdout)
	fmt.Println()
	// Output: hello world!
}

func ExampleCapacityOf() {
	fmt.Println(stackie.CapacityOf[stackie.Cap64]())
	// Output: 64
}
