// Package playback drives an operation sequence through a pausable,
// steppable player.
//
// A [Controller] owns one snapshot and one lazily pulled sequence. It moves
// through four states:
//
//	Idle -> Running <-> Paused -> Completed
//
// and Reset returns any state to Idle. Every command is accepted in every
// state; commands that make no sense in the current state are no-ops.
//
// In Running a timer calls the same step path as a manual Step once per
// interval. Timer callbacks carry the generation they were scheduled in and
// do nothing once Pause, Reset or a restart has bumped the generation.
//
// Hooks registered with [WithFrameHook], [WithCompletionHook] and
// [WithErrorHook] are called after the controller's lock is released, so a
// hook may call back into the controller.
package playback
