// Package level runs one platformer level: the level state machine, the
// hazard generators, checkpoints and respawn, springs, the banana-steal
// cutscene and the auto-scroll chase.
//
// All timing is in milliseconds of the level's clock.Clock. Every delayed
// or repeating callback is a clock task owned by the Runtime, so pausing
// freezes them and Teardown cancels them.
package level
