package scan

import (
	"fmt"
	"path/filepath"
	"strings"

	"samplekit/internal/services"
)

const nameFields = 5

// Sample is one parsed sample file name.
type Sample struct {
	Path       string `json:"path"`
	RoundRobin string `json:"round_robin"`
	Velocity   string `json:"velocity"`
	Note       string `json:"note"`
	Instrument string `json:"instrument"`
	Channel    string `json:"channel"`
}

// ParseName splits the stem of rel into its five fields.
func ParseName(rel string) (Sample, error) {
	base := filepath.Base(rel)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	fields := strings.Fields(stem)
	if len(fields) != nameFields {
		msg := fmt.Sprintf("%s has %d fields", rel, len(fields))
		return Sample{}, services.Wrap(services.ErrValidation, "scan", "parse name", msg, ErrMalformedName)
	}
	return Sample{
		Path:       rel,
		RoundRobin: fields[0],
		Velocity:   fields[1],
		Note:       fields[2],
		Instrument: fields[3],
		Channel:    fields[4],
	}, nil
}
