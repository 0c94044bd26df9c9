// Package joining turns start/stop fragment pairs into single FLAC files.
//
// Key types:
//   - Plan: the pairs found under a root, split into pending and already joined
//   - Job: decodes, validates, joins, encodes and installs one pair
//   - Runner: runs Jobs on a bounded worker pool and reports progress
//   - RootLock: advisory lock preventing concurrent runs over one tree
//
// A Job never leaves a partial target behind. Fragments are removed only when
// configured and only after the target has been installed.
package joining
