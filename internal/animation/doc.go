// Package animation converts declarative keyframe descriptors into a
// time-driven value stream.
//
// Each animated visual property (opacity, offset, scale, rotation, colors,
// gradients, box size, shadow, border) owns an independent Behavior: Static
// for a constant value, None for a neutral zero value, or Animated for live
// playback. Playback is pull based and clockless: a Timeline advances an
// explicit per-animation phase machine (repeat count, reverse flag, pending
// snap) through pure transitions and emits Frame primitives; a Player folds
// frames into interpolated values for any elapsed time. Nothing in this
// package reads a wall clock, which keeps repeat semantics testable.
//
// # Repeat Semantics
//
// Normal repeat alternates a zero-duration snap back to the start value with
// a full forward play-through, counting a repeat only after the round
// completes. PingPong plays forward then backward with no snap, counting at
// the end of each backward phase. A repeat max of Unlimited never exhausts.
//
// # Value Strategies
//
// Interpolation is parameterized by a Lerper per value type. Colors blend in
// RGB space via go-colorful. Gradients interpolate stop-by-stop when both
// sides share geometry and stop count; mismatched gradients cross-fade by
// snapping to the nearer side instead of morphing.
package animation
