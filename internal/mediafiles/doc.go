// Package mediafiles acquires video and subtitle files from the filesystem.
//
// Pick resolves command-line paths, walking directories with fastwalk.
// DropWatcher follows a drop directory with fsnotify and emits debounced
// batches of new files. Classify splits handles into videos and subtitles by
// extension. Every Handle carries an NFC-normalized display name so that the
// same file name typed on different systems compares equal.
package mediafiles
