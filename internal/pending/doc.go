// Package pending holds the two ordered lists of files waiting to be paired
// and committed to the library.
//
// A Buffer owns a video list and a subtitle list. Items are unique by name
// within their list and keep insertion order until a completed drag gesture
// or a nudge reorders them. Commit checks for name collisions, asks a
// Confirmer before overwriting, persists the pairs, and clears the committed
// items once the library reports the write. Subscribers are told about every
// change so hosts can redraw without polling.
package pending
