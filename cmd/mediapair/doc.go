// Command mediapair pairs videos with subtitles. The tui subcommand opens
// the interactive reorder screen; import, list and remove work headless
// against the same library.
package main
