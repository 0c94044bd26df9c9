package audiotools

import (
	"fmt"
	"strings"

	"samplekit/internal/config"
	"samplekit/internal/services"
)

// Joiner builds the command line that concatenates two WAV files.
type Joiner interface {
	Name() string
	Binary() string
	// Args returns the arguments for joining first and second. bitDepth is
	// the probed sample size of first, or 0 when unknown.
	Args(first, second, output string, bitDepth int) []string
}

// SoxJoiner concatenates with sox.
type SoxJoiner struct {
	Bin string
}

func (j SoxJoiner) Name() string   { return config.JoinerSox }
func (j SoxJoiner) Binary() string { return j.Bin }

func (j SoxJoiner) Args(first, second, output string, _ int) []string {
	return []string{"--", first, second, output}
}

// FFmpegJoiner concatenates with ffmpeg's concat filter. The WAV muxer
// defaults to 16-bit PCM, so the output codec is pinned to the input depth.
type FFmpegJoiner struct {
	Bin string
}

func (j FFmpegJoiner) Name() string   { return config.JoinerFFmpeg }
func (j FFmpegJoiner) Binary() string { return j.Bin }

func (j FFmpegJoiner) Args(first, second, output string, bitDepth int) []string {
	args := []string{
		"-nostdin", "-hide_banner", "-loglevel", "error", "-y",
		"-i", first,
		"-i", second,
		"-filter_complex", "concat=n=2:v=0:a=1",
	}
	if codec := pcmCodec(bitDepth); codec != "" {
		args = append(args, "-c:a", codec)
	}
	return append(args, output)
}

// pcmCodec maps a WAV bit depth to ffmpeg's PCM encoder name.
func pcmCodec(bitDepth int) string {
	switch bitDepth {
	case 8:
		return "pcm_u8"
	case 16:
		return "pcm_s16le"
	case 24:
		return "pcm_s24le"
	case 32:
		return "pcm_s32le"
	default:
		return ""
	}
}

// NewJoiner returns the joiner selected by kind.
func NewJoiner(kind string, tools config.Tools) (Joiner, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", config.JoinerSox:
		return SoxJoiner{Bin: tools.Sox}, nil
	case config.JoinerFFmpeg:
		return FFmpegJoiner{Bin: tools.FFmpeg}, nil
	default:
		return nil, services.Wrap(services.ErrConfiguration, "audiotools", "select joiner", fmt.Sprintf("unknown joiner %q", kind), nil)
	}
}
