// Package wavprobe reads WAV headers to check intermediate join artifacts.
//
// Key types:
//   - Info: sample rate, channel count, bit depth and frame count of one file
//
// Primary entry points:
//   - Inspect: parses a WAV file with github.com/go-audio/wav
//   - CheckCompatible: fails when two fragments cannot be concatenated losslessly
//   - CheckJoined: fails when a joined file is not as long as its parts
package wavprobe
