package testsupport

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"samplekit/internal/media/wavprobe"
)

// Call records one external tool invocation.
type Call struct {
	Name string
	Args []string
}

// FakeTools imitates flac, sox and ffmpeg on WAV fixtures. Decoding and
// encoding copy the input; joining writes a WAV whose length is the sum of
// the inputs. Like the real muxer, ffmpeg writes 16-bit output unless -c:a
// names a PCM codec. Fail makes every invocation whose arguments mention the
// given substring return an error. JoinBitDepth, when set, forces the bit
// depth of joined output.
type FakeTools struct {
	mu           sync.Mutex
	calls        []Call
	Fail         string
	JoinBitDepth int
}

// NewFakeTools returns an empty recorder.
func NewFakeTools() *FakeTools {
	return &FakeTools{}
}

// Calls returns a snapshot of recorded invocations.
func (f *FakeTools) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// Run satisfies audiotools.CommandRunner.
func (f *FakeTools) Run(ctx context.Context, name string, args ...string) error {
	f.mu.Lock()
	f.calls = append(f.calls, Call{Name: name, Args: append([]string(nil), args...)})
	fail := f.Fail
	joinDepth := f.JoinBitDepth
	f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	if fail != "" && slices.ContainsFunc(args, func(a string) bool { return strings.Contains(a, fail) }) {
		return fmt.Errorf("exit status 1: simulated failure for %s", fail)
	}

	switch filepath.Base(name) {
	case "flac":
		return copyFile(valueAfter(args, "--"), valueAfter(args, "-o"))
	case "sox":
		rest := args[slices.Index(args, "--")+1:]
		return concat(rest[0], rest[1], rest[2], joinDepth)
	case "ffmpeg":
		var inputs []string
		for i, arg := range args {
			if arg == "-i" {
				inputs = append(inputs, args[i+1])
			}
		}
		if joinDepth == 0 {
			joinDepth = codecDepth(valueAfter(args, "-c:a"))
		}
		return concat(inputs[0], inputs[1], args[len(args)-1], joinDepth)
	default:
		return fmt.Errorf("unexpected tool %s", name)
	}
}

func concat(first, second, output string, bitDepth int) error {
	a, err := wavprobe.Inspect(first)
	if err != nil {
		return err
	}
	b, err := wavprobe.Inspect(second)
	if err != nil {
		return err
	}
	if bitDepth == 0 {
		bitDepth = a.BitDepth
	}
	return writeWAV(output, WAVSpec{
		SampleRate: a.SampleRate,
		Channels:   a.Channels,
		BitDepth:   bitDepth,
		Frames:     int(a.Frames + b.Frames),
	})
}

func codecDepth(codec string) int {
	switch codec {
	case "pcm_u8":
		return 8
	case "pcm_s24le":
		return 24
	case "pcm_s32le":
		return 32
	default:
		return 16
	}
}

func valueAfter(args []string, flag string) string {
	idx := slices.Index(args, flag)
	if idx < 0 || idx+1 >= len(args) {
		return ""
	}
	return args[idx+1]
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0o644)
}
