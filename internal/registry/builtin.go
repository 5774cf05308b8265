package registry

import (
	"embed"
	"strings"
	"sync"

	"github.com/san-kum/sortsim/internal/algorithms"
)

//go:embed code/*.txt
var codeFS embed.FS

func code(name string) string {
	b, err := codeFS.ReadFile("code/" + name + ".txt")
	if err != nil {
		panic(err)
	}
	return strings.TrimRight(string(b), "\n")
}

var (
	defaultOnce sync.Once
	defaultReg  *Registry
)

// Default returns the built-in table: bubble, selection, insertion, merge,
// quick.
func Default() *Registry {
	defaultOnce.Do(func() {
		r, err := New(builtin()...)
		if err != nil {
			panic(err)
		}
		defaultReg = r
	})
	return defaultReg
}

func builtin() []Entry {
	return []Entry{
		{
			Name:    "bubble",
			Produce: algorithms.Bubble,
			Metadata: Metadata{
				Time:        Complexity{Best: "Ω(n)", Average: "θ(n²)", Worst: "O(n²)"},
				Space:       "O(1)",
				Stable:      true,
				Description: "Bubble sort repeatedly steps through the array and swaps adjacent elements that are in the wrong order.",
				Code:        code("bubble"),
			},
		},
		{
			Name:    "selection",
			Produce: algorithms.Selection,
			Metadata: Metadata{
				Time:        Complexity{Best: "Ω(n²)", Average: "θ(n²)", Worst: "O(n²)"},
				Space:       "O(1)",
				Description: "Selection sort repeatedly picks the smallest element of the unsorted part and moves it to the end of the sorted part.",
				Code:        code("selection"),
			},
		},
		{
			Name:    "insertion",
			Produce: algorithms.Insertion,
			Metadata: Metadata{
				Time:        Complexity{Best: "Ω(n)", Average: "θ(n²)", Worst: "O(n²)"},
				Space:       "O(1)",
				Stable:      true,
				Description: "Insertion sort grows a sorted prefix one element at a time, like sorting a hand of playing cards.",
				Code:        code("insertion"),
			},
		},
		{
			Name:    "merge",
			Produce: algorithms.Merge,
			Metadata: Metadata{
				Time:        Complexity{Best: "Ω(n log(n))", Average: "θ(n log(n))", Worst: "O(n log(n))"},
				Space:       "O(n)",
				Stable:      true,
				Description: "Merge sort splits the array in halves, sorts each half and merges the sorted halves back together.",
				Code:        code("merge"),
			},
		},
		{
			Name:    "quick",
			Produce: algorithms.Quick,
			Metadata: Metadata{
				Time:        Complexity{Best: "Ω(n log(n))", Average: "θ(n log(n))", Worst: "O(n²)"},
				Space:       "O(log(n))",
				Description: "Quick sort picks a pivot, partitions the array around it and sorts both sides.",
				Code:        code("quick"),
			},
		},
	}
}
