package preflight

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"

	"photodate/internal/config"
	"photodate/internal/deps"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes the checks for processing root. Write access to the
// archive is only demanded when apply is set.
func RunAll(cfg *config.Config, root string, apply bool) []Result {
	results := []Result{CheckArchiveRoot(root, apply)}
	if cfg == nil {
		return results
	}
	location := CheckStateOutsideArchive(cfg, root)
	results = append(results, location)
	if !location.Passed {
		// CheckDirectoryAccess creates the directory, which would land
		// inside the archive.
		return results
	}
	results = append(results, CheckDirectoryAccess("State directory", cfg.Paths.StateDir))
	return results
}

// Failed returns the results that did not pass.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, r)
		}
	}
	return failed
}

// CheckArchiveRoot verifies that root is a traversable directory, and
// writable when apply is set.
func CheckArchiveRoot(root string, apply bool) Result {
	const name = "Archive root"
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", root)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", root, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", root)}
	}
	mode := uint32(unix.R_OK | unix.X_OK)
	label := "read ok"
	if apply {
		mode |= unix.W_OK
		label = "read/write ok"
	}
	if err := unix.Access(root, mode); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", root, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%s)", root, label)}
}

// CheckDirectoryAccess verifies that the directory is readable and writable,
// creating it when missing.
func CheckDirectoryAccess(name, path string) Result {
	if strings.TrimSpace(path) == "" {
		return Result{Name: name, Detail: "not configured"}
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: create: %v)", path, err)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckStateOutsideArchive fails when the state or log directory sits inside
// the archive, where the scan would otherwise pick up journal and log files.
func CheckStateOutsideArchive(cfg *config.Config, root string) Result {
	const name = "State location"
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("resolve %s: %v", root, err)}
	}
	for _, dir := range []string{cfg.Paths.StateDir, cfg.Paths.LogDir} {
		absDir, err := filepath.Abs(dir)
		if err != nil {
			continue
		}
		if within(absRoot, absDir) {
			return Result{Name: name, Detail: fmt.Sprintf("%s is inside the archive %s", absDir, absRoot)}
		}
	}
	return Result{Name: name, Passed: true, Detail: "outside archive"}
}

// CheckSystemDeps evaluates the external binaries needed for cfg.
func CheckSystemDeps(cfg *config.Config) []deps.Status {
	return deps.CheckBinaries([]deps.Requirement{
		deps.ExiftoolRequirement(cfg.ExiftoolBinary(), cfg.Exiftool.Required),
	})
}

func within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
