// Package algorithms turns classic sorting algorithms into step producers.
//
// A [Producer] never sorts silently: it returns a lazy [iter.Seq] of
// [ops.Operation] records describing every comparison and every mutation,
// in the order the algorithm's canonical control flow performs them.
//
//   - [Bubble]: adjacent compare/swap passes, no early exit
//   - [Selection]: minimum scan then one swap per position
//   - [Insertion]: shifting with overwrites, then the key write
//   - [Merge]: top-down merge sort writing back from auxiliary runs
//   - [Quick]: Lomuto partition with the last element as pivot
//
// Producers copy their input, hold no timing or UI state and are fully
// deterministic: the same input always yields the same sequence. A sequence
// may be ranged over any number of times; each range restarts the algorithm
// from the copied input.
//
// # Example
//
//	seq := algorithms.Bubble([]float64{3, 1, 2})
//	for op := range seq {
//	    fmt.Println(op)
//	}
package algorithms
