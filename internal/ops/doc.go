// Package ops provides the primitives shared by every part of sortsim.
//
// A sorting run is described as an ordered log of [Operation] records:
//
//   - [Compare]: two indices are being compared (no mutation)
//   - [Swap]: two indices exchange values
//   - [Overwrite]: one index receives a value from auxiliary storage
//   - [MarkSorted]: one index holds its final value
//
// A [Snapshot] is the mutable copy of the array that operations are applied
// against. Applying an operation with an index outside the snapshot returns
// an [*OutOfBoundsError]; indices are never clamped.
//
// # Example
//
//	snap := ops.NewSnapshot([]float64{3, 1, 2})
//	_ = snap.Apply(ops.Compare(0, 1))
//	_ = snap.Apply(ops.Swap(0, 1))
//	fmt.Println(snap.Values()) // [1 3 2]
//
// # Thread Safety
//
// Snapshot is NOT thread-safe. Each playback controller owns exactly one.
package ops
