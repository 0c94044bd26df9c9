package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WAVSpec describes a generated PCM fixture.
type WAVSpec struct {
	SampleRate int
	Channels   int
	BitDepth   int
	Frames     int
}

// CDQuality returns a 44.1 kHz stereo 16-bit spec of the given length.
func CDQuality(frames int) WAVSpec {
	return WAVSpec{SampleRate: 44100, Channels: 2, BitDepth: 16, Frames: frames}
}

// WriteWAV writes a PCM WAV file holding a low-amplitude ramp.
func WriteWAV(t testing.TB, path string, spec WAVSpec) {
	t.Helper()

	if err := writeWAV(path, spec); err != nil {
		t.Fatal(err)
	}
}

func writeWAV(path string, spec WAVSpec) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir for %s: %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	data := make([]int, spec.Frames*spec.Channels)
	for i := range data {
		data[i] = i % 256
	}
	enc := wav.NewEncoder(f, spec.SampleRate, spec.BitDepth, spec.Channels, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: spec.Channels, SampleRate: spec.SampleRate},
		Data:           data,
		SourceBitDepth: spec.BitDepth,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalize %s: %w", path, err)
	}
	return nil
}
