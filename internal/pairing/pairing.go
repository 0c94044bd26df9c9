package pairing

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"

	"samplekit/internal/config"
	"samplekit/internal/fileutil"
	"samplekit/internal/services"
)

// Convention describes how fragments are named.
type Convention struct {
	Suffix      string
	StartMarker string
	StopMarker  string
	TargetExt   string
}

// ConventionFromConfig extracts the naming convention from the join section.
func ConventionFromConfig(cfg *config.Config) Convention {
	if cfg == nil {
		d := config.Default()
		cfg = &d
	}
	return Convention{
		Suffix:      cfg.Join.Suffix,
		StartMarker: cfg.Join.StartMarker,
		StopMarker:  cfg.Join.StopMarker,
		TargetExt:   cfg.Join.TargetExt,
	}
}

// Kind identifies which half of a pair a fragment holds.
type Kind int

const (
	KindStart Kind = iota
	KindStop
)

func (k Kind) String() string {
	if k == KindStop {
		return "stop"
	}
	return "start"
}

// Pair is one start/stop fragment pair and its join target.
type Pair struct {
	Name   string
	Start  string
	Stop   string
	Target string
}

// Label returns the pair name relative to root for display.
func (p Pair) Label(root string) string {
	if rel, err := filepath.Rel(root, p.Name); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}
	return p.Name
}

// IsFragment reports whether path carries the fragment suffix.
func (c Convention) IsFragment(path string) bool {
	base := filepath.Base(path)
	return len(base) >= len(c.Suffix) && strings.EqualFold(base[len(base)-len(c.Suffix):], c.Suffix)
}

// Classify strips the suffix and marker from a fragment path and returns the
// pair name and fragment kind.
func (c Convention) Classify(path string) (string, Kind, error) {
	base := filepath.Base(path)
	stem := base[:len(base)-len(c.Suffix)]
	name := strings.TrimSpace(filepath.Join(filepath.Dir(path), stem))

	switch {
	case strings.HasSuffix(name, c.StartMarker):
		return strings.TrimSpace(strings.TrimSuffix(name, c.StartMarker)), KindStart, nil
	case strings.HasSuffix(name, c.StopMarker):
		return strings.TrimSpace(strings.TrimSuffix(name, c.StopMarker)), KindStop, nil
	default:
		return "", 0, services.Wrap(services.ErrValidation, "pairing", "classify", path, ErrUnknownFragment)
	}
}

type slot struct {
	name  string
	start string
	stop  string
}

// Match groups fragment files into pairs. Files without the fragment suffix
// are ignored. Pairs are returned sorted by name.
func Match(files []string, conv Convention) ([]Pair, error) {
	slots := make(map[string]*slot)
	for _, path := range files {
		if !conv.IsFragment(path) {
			continue
		}
		name, kind, err := conv.Classify(path)
		if err != nil {
			return nil, err
		}
		key := norm.NFC.String(name)
		s, ok := slots[key]
		if !ok {
			s = &slot{name: name}
			slots[key] = s
		}
		field := &s.start
		if kind == KindStop {
			field = &s.stop
		}
		if *field != "" {
			msg := fmt.Sprintf("%s fragment for %s: %s and %s", kind, name, *field, path)
			return nil, services.Wrap(services.ErrValidation, "pairing", "match", msg, ErrDuplicateFragment)
		}
		*field = path
	}

	pairs := make([]Pair, 0, len(slots))
	for _, s := range slots {
		if s.start == "" || s.stop == "" {
			missing := KindStart
			if s.stop == "" {
				missing = KindStop
			}
			msg := fmt.Sprintf("%s missing %s fragment", s.name, missing)
			return nil, services.Wrap(services.ErrValidation, "pairing", "match", msg, ErrIncompletePair)
		}
		pairs = append(pairs, Pair{
			Name:   s.name,
			Start:  s.start,
			Stop:   s.stop,
			Target: s.name + conv.TargetExt,
		})
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].Name < pairs[j].Name })
	return pairs, nil
}

// SplitExisting separates pairs whose target is already present.
func SplitExisting(pairs []Pair) (pending, skipped []Pair, err error) {
	for _, pair := range pairs {
		exists, err := fileutil.Exists(pair.Target)
		if err != nil {
			return nil, nil, services.Wrap(services.ErrFilesystem, "pairing", "stat target", pair.Target, err)
		}
		if exists {
			skipped = append(skipped, pair)
			continue
		}
		pending = append(pending, pair)
	}
	return pending, skipped, nil
}
