package algorithms_test

import (
	"fmt"

	"github.com/san-kum/sortsim/internal/algorithms"
)

func ExampleBubble() {
	for op := range algorithms.Bubble([]float64{2, 1}) {
		fmt.Println(op)
	}
	// Output:
	// compare(0, 1)
	// swap(0, 1)
	// mark(1)
	// mark(0)
}

func ExampleReplay() {
	in := []float64{5, 1, 4, 2, 8}
	out, err := algorithms.Replay(in, algorithms.Merge(in))
	if err != nil {
		panic(err)
	}
	fmt.Println(out)
	// Output: [1 2 4 5 8]
}
