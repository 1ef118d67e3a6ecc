// Package preflight checks that the directories, free space and library
// database mediapair depends on are usable before any work starts.
//
// The CLI "mediapair check" command prints every result; the interactive
// command runs the same checks and refuses to start when one fails.
package preflight
