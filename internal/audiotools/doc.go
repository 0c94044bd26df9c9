// Package audiotools drives the external programs that decode, join and
// encode sample audio.
//
// flac handles both directions between FLAC and WAV. Joining two WAV files
// is delegated to a Joiner, which is sox by default or ffmpeg's concat
// filter when configured. Every invocation goes through a CommandRunner so
// tests can record arguments instead of spawning processes.
package audiotools
