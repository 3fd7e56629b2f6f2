package journal

import (
	"database/sql"
	"fmt"
	"time"
)

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (Run, error) {
	var (
		run      Run
		started  string
		finished sql.NullString
	)
	if err := row.Scan(&run.ID, &run.ArchiveRoot, &run.Mode, &run.MetadataMode, &started, &finished,
		&run.Totals.Total, &run.Totals.Applied, &run.Totals.Failed,
		&run.Totals.AlreadyMatching, &run.Totals.Undated); err != nil {
		return Run{}, fmt.Errorf("scan run: %w", err)
	}
	var err error
	if run.StartedAt, err = parseTime(started); err != nil {
		return Run{}, err
	}
	if run.FinishedAt, err = parseNullableTime(finished); err != nil {
		return Run{}, err
	}
	return run, nil
}

// Times keep their zone offset: archive timestamps are wall-clock values.
func formatTime(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}

func parseTime(value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse journal time %q: %w", value, err)
	}
	return t, nil
}

func parseNullableTime(value sql.NullString) (time.Time, error) {
	if !value.Valid || value.String == "" {
		return time.Time{}, nil
	}
	return parseTime(value.String)
}

func nullableTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return formatTime(t)
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}
