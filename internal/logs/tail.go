package logs

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNoLogs is returned when the log directory holds no run logs.
var ErrNoLogs = errors.New("no run logs found")

// ErrAmbiguousRun is returned when a run id prefix matches more than one log.
var ErrAmbiguousRun = errors.New("run id prefix matches more than one log")

// Find returns the log file for the run whose id starts with prefix, or the
// most recent run log when prefix is empty. Pattern is the glob used for run
// log names; file names sort chronologically.
func Find(dir, pattern, prefix string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return "", fmt.Errorf("list run logs: %w", err)
	}
	sort.Strings(matches)
	if len(matches) == 0 {
		return "", ErrNoLogs
	}
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return matches[len(matches)-1], nil
	}

	var found []string
	for _, path := range matches {
		id := runIDPart(filepath.Base(path))
		if id == "" {
			continue
		}
		// Log names carry only the first 8 characters of the run id.
		if strings.HasPrefix(id, prefix) || strings.HasPrefix(prefix, id) {
			found = append(found, path)
		}
	}
	switch len(found) {
	case 0:
		return "", fmt.Errorf("no run log for %q: %w", prefix, ErrNoLogs)
	case 1:
		return found[0], nil
	default:
		return "", fmt.Errorf("%q: %w", prefix, ErrAmbiguousRun)
	}
}

// runIDPart extracts the short run id from photodate-YYYYMMDD-HHMMSS-<id>.log.
func runIDPart(name string) string {
	name = strings.TrimSuffix(name, filepath.Ext(name))
	parts := strings.Split(name, "-")
	if len(parts) < 4 {
		return ""
	}
	return parts[len(parts)-1]
}

// Tail returns up to limit trailing lines of path. A limit of 0 or less
// returns every line.
func Tail(path string, limit int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat log file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("log path %q is a directory", path)
	}

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if limit <= 0 {
		var lines []string
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read log file: %w", err)
		}
		return lines, nil
	}

	ring := make([]string, limit)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % limit
		if count < limit {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log file: %w", err)
	}

	lines := make([]string, count)
	if count == limit {
		for i := range count {
			lines[i] = ring[(idx+i)%limit]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}
