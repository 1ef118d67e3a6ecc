// Package dragdrop implements the drag-to-reorder gesture engine.
//
// A Session tracks one gesture from press to settle: it holds the shared
// Lock, follows the pointer, marks the rows that would shift if the gesture
// ended at the current position, and resolves on release to either a no-op or
// a (selected, hovered) pair. The Coordinator owns the Lock and routes
// normalized input samples to the list under the pointer, so at most one
// gesture runs across both lists and both input modalities.
//
// Settling is asynchronous. Release returns a SettlePlan describing the
// animation the host should play; the host reports completion through
// Coordinator.Settled, typically after racing its completion signal against
// DefaultSettleTimeout with AwaitSettle.
package dragdrop
