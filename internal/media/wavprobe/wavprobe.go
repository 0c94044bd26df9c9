package wavprobe

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-audio/wav"
)

// DurationTolerance bounds the difference between a joined file and the sum of its parts.
const DurationTolerance = 10 * time.Millisecond

var (
	// ErrNotWAV marks a file without a RIFF/WAVE header.
	ErrNotWAV = errors.New("not a WAV file")
	// ErrFormatMismatch marks fragments whose sample formats differ.
	ErrFormatMismatch = errors.New("fragment formats differ")
	// ErrDurationMismatch marks a joined file whose length is not the sum of its parts.
	ErrDurationMismatch = errors.New("joined duration mismatch")
)

// Info describes the PCM layout of a WAV file.
type Info struct {
	Path       string
	SampleRate int
	Channels   int
	BitDepth   int
	Frames     int64
}

// Duration returns the playback length.
func (i Info) Duration() time.Duration {
	if i.SampleRate <= 0 {
		return 0
	}
	return time.Duration(i.Frames * int64(time.Second) / int64(i.SampleRate))
}

// SameFormat reports whether two files share rate, channels and bit depth.
func (i Info) SameFormat(other Info) bool {
	return i.SampleRate == other.SampleRate && i.Channels == other.Channels && i.BitDepth == other.BitDepth
}

func (i Info) formatString() string {
	return fmt.Sprintf("%d Hz/%d ch/%d bit", i.SampleRate, i.Channels, i.BitDepth)
}

// Inspect reads the header of the WAV file at path.
func Inspect(path string) (Info, error) {
	file, err := os.Open(path)
	if err != nil {
		return Info{}, fmt.Errorf("wavprobe inspect: %w", err)
	}
	defer file.Close()

	dec := wav.NewDecoder(file)
	if !dec.IsValidFile() {
		return Info{}, fmt.Errorf("wavprobe inspect %s: %w", path, ErrNotWAV)
	}
	if err := dec.FwdToPCM(); err != nil {
		return Info{}, fmt.Errorf("wavprobe inspect %s: %w", path, err)
	}

	info := Info{
		Path:       path,
		SampleRate: int(dec.SampleRate),
		Channels:   int(dec.NumChans),
		BitDepth:   int(dec.BitDepth),
	}
	frameSize := int64(info.Channels) * int64(info.BitDepth) / 8
	if frameSize > 0 {
		info.Frames = int64(dec.PCMSize) / frameSize
	}
	return info, nil
}

// CheckCompatible returns ErrFormatMismatch when start and stop differ in layout.
func CheckCompatible(start, stop Info) error {
	if start.SameFormat(stop) {
		return nil
	}
	return fmt.Errorf("%w: %s is %s, %s is %s", ErrFormatMismatch,
		start.Path, start.formatString(), stop.Path, stop.formatString())
}

// CheckJoined returns ErrFormatMismatch when joined does not share the layout
// of its parts, and ErrDurationMismatch when it deviates from their summed
// durations by more than DurationTolerance.
func CheckJoined(joined Info, parts ...Info) error {
	for _, part := range parts {
		if !joined.SameFormat(part) {
			return fmt.Errorf("%w: %s is %s, %s is %s", ErrFormatMismatch,
				joined.Path, joined.formatString(), part.Path, part.formatString())
		}
	}
	var want time.Duration
	for _, part := range parts {
		want += part.Duration()
	}
	got := joined.Duration()
	diff := got - want
	if diff < 0 {
		diff = -diff
	}
	if diff > DurationTolerance {
		return fmt.Errorf("%w: %s is %s, expected %s", ErrDurationMismatch, joined.Path, got, want)
	}
	return nil
}
