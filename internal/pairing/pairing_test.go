package pairing_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"samplekit/internal/config"
	"samplekit/internal/pairing"
	"samplekit/internal/services"
)

func defaultConvention() pairing.Convention {
	return pairing.ConventionFromConfig(nil)
}

func TestMatchPairsFragments(t *testing.T) {
	root := "/samples/Kit"
	files := []string{
		filepath.Join(root, "Kick 01 STA.ugrisample.flac"),
		filepath.Join(root, "Kick 01 STP.ugrisample.flac"),
		filepath.Join(root, "Snare STA.UGRISAMPLE.FLAC"),
		filepath.Join(root, "Snare STP.ugrisample.flac"),
		filepath.Join(root, "readme.txt"),
		filepath.Join(root, "Tom.flac"),
	}

	pairs, err := pairing.Match(files, defaultConvention())
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if len(pairs) != 2 {
		t.Fatalf("expected 2 pairs, got %d: %+v", len(pairs), pairs)
	}
	kick := pairs[0]
	if kick.Name != filepath.Join(root, "Kick 01") {
		t.Fatalf("unexpected name %q", kick.Name)
	}
	if kick.Start != files[0] || kick.Stop != files[1] {
		t.Fatalf("unexpected fragments: %+v", kick)
	}
	if kick.Target != filepath.Join(root, "Kick 01.flac") {
		t.Fatalf("unexpected target %q", kick.Target)
	}
	if pairs[1].Target != filepath.Join(root, "Snare.flac") {
		t.Fatalf("expected case-insensitive suffix match, got %+v", pairs[1])
	}
	if got := kick.Label(root); got != "Kick 01" {
		t.Fatalf("Label = %q", got)
	}
}

func TestMatchTrimsWhitespaceAroundMarker(t *testing.T) {
	files := []string{
		"/r/Ride  STA .ugrisample.flac",
		"/r/Ride STP.ugrisample.flac",
	}
	pairs, err := pairing.Match(files, defaultConvention())
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if len(pairs) != 1 || pairs[0].Name != "/r/Ride" {
		t.Fatalf("unexpected pairs: %+v", pairs)
	}
}

func TestMatchNormalizesUnicode(t *testing.T) {
	decomposed := "/r/Cafe\u0301 STA.ugrisample.flac"
	composed := "/r/Caf\u00e9 STP.ugrisample.flac"
	pairs, err := pairing.Match([]string{decomposed, composed}, defaultConvention())
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if len(pairs) != 1 {
		t.Fatalf("expected NFC keys to join fragments, got %+v", pairs)
	}
	if pairs[0].Start != decomposed || pairs[0].Stop != composed {
		t.Fatalf("expected on-disk spelling preserved, got %+v", pairs[0])
	}
}

func TestMatchErrors(t *testing.T) {
	cases := []struct {
		name  string
		files []string
		want  error
	}{
		{"unknown marker", []string{"/r/Kick MID.ugrisample.flac"}, pairing.ErrUnknownFragment},
		{"lowercase marker", []string{"/r/Kick sta.ugrisample.flac"}, pairing.ErrUnknownFragment},
		{"duplicate start", []string{
			"/r/Kick STA.ugrisample.flac",
			"/r/Kick  STA.ugrisample.flac",
			"/r/Kick STP.ugrisample.flac",
		}, pairing.ErrDuplicateFragment},
		{"missing stop", []string{"/r/Kick STA.ugrisample.flac"}, pairing.ErrIncompletePair},
		{"missing start", []string{"/r/Kick STP.ugrisample.flac"}, pairing.ErrIncompletePair},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := pairing.Match(tc.files, defaultConvention())
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if !errors.Is(err, services.ErrValidation) {
				t.Fatalf("expected validation marker, got %v", err)
			}
		})
	}
}

func TestMatchCustomConvention(t *testing.T) {
	cfg := config.Default()
	cfg.Join.Suffix = ".part.wav"
	cfg.Join.StartMarker = "A"
	cfg.Join.StopMarker = "B"
	cfg.Join.TargetExt = ".wav"
	pairs, err := pairing.Match([]string{"/r/hat A.part.wav", "/r/hat B.part.wav"}, pairing.ConventionFromConfig(&cfg))
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if len(pairs) != 1 || pairs[0].Target != "/r/hat.wav" {
		t.Fatalf("unexpected pairs: %+v", pairs)
	}
}

func TestSplitExisting(t *testing.T) {
	dir := t.TempDir()
	done := pairing.Pair{Name: filepath.Join(dir, "Done"), Target: filepath.Join(dir, "Done.flac")}
	todo := pairing.Pair{Name: filepath.Join(dir, "Todo"), Target: filepath.Join(dir, "Todo.flac")}
	if err := os.WriteFile(done.Target, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	pending, skipped, err := pairing.SplitExisting([]pairing.Pair{done, todo})
	if err != nil {
		t.Fatalf("SplitExisting: %v", err)
	}
	if len(pending) != 1 || pending[0].Name != todo.Name {
		t.Fatalf("unexpected pending: %+v", pending)
	}
	if len(skipped) != 1 || skipped[0].Name != done.Name {
		t.Fatalf("unexpected skipped: %+v", skipped)
	}
}
