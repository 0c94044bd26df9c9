package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"samplekit/internal/config"
)

// Requirement defines an external program samplekit relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string `json:"name"`
	Command     string `json:"command"`
	Description string `json:"description"`
	Optional    bool   `json:"optional"`
	Available   bool   `json:"available"`
	Path        string `json:"path,omitempty"`
	Detail      string `json:"detail,omitempty"`
}

// JoinRequirements lists the binaries the join command needs for cfg. The
// joiner that is not selected is listed as optional.
func JoinRequirements(cfg *config.Config) []Requirement {
	return []Requirement{
		{
			Name:        "flac",
			Command:     cfg.Tools.Flac,
			Description: "Decodes fragments and encodes joined samples",
		},
		{
			Name:        "sox",
			Command:     cfg.Tools.Sox,
			Description: "Joins decoded fragments",
			Optional:    cfg.Join.Joiner != config.JoinerSox,
		},
		{
			Name:        "ffmpeg",
			Command:     cfg.Tools.FFmpeg,
			Description: "Joins decoded fragments (alternative joiner)",
			Optional:    cfg.Join.Joiner != config.JoinerFFmpeg,
		},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Available = false
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		resolved, err := exec.LookPath(cmd)
		if err != nil {
			status.Available = false
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		status.Path = resolved
		results = append(results, status)
	}
	return results
}

// MissingRequired returns the required statuses that are unavailable.
func MissingRequired(statuses []Status) []Status {
	var missing []Status
	for _, status := range statuses {
		if !status.Available && !status.Optional {
			missing = append(missing, status)
		}
	}
	return missing
}
