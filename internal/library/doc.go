// Package library persists committed video/subtitle pairs in SQLite.
//
// A pair is keyed by its video file name. PersistPairs pairs videos and
// subtitles positionally, stores subtitle text inline, and optionally copies
// videos into a cache directory after checking free space. Writes from
// separate processes are serialized by a file lock next to the database.
// OnListChanged hands out one-shot channels that close after the next
// successful write, which is how the pending buffer learns its commit landed.
//
// The schema is versioned; a mismatch is reported as ErrSchemaMismatch rather
// than migrated.
package library
