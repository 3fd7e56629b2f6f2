package deps

import (
	"fmt"
	"os/exec"
	"strings"
)

// Requirement defines an external binary photodate relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// ExiftoolRequirement describes the metadata tool. When it is not required
// the run can fall back to the built-in EXIF reader, so it is optional.
func ExiftoolRequirement(binary string, required bool) Requirement {
	desc := "Reads and writes embedded capture dates"
	if !required {
		desc += " (falls back to the read-only EXIF reader)"
	}
	return Requirement{
		Name:        "ExifTool",
		Command:     binary,
		Description: desc,
		Optional:    !required,
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
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		resolved, err := exec.LookPath(cmd)
		if err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Command = resolved
		status.Available = true
		results = append(results, status)
	}
	return results
}

// MissingRequired returns the statuses of required binaries that were not found.
func MissingRequired(statuses []Status) []Status {
	var missing []Status
	for _, status := range statuses {
		if !status.Available && !status.Optional {
			missing = append(missing, status)
		}
	}
	return missing
}
