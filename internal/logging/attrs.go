package logging

import (
	"context"
	"log/slog"
	"time"
)

type Attr = slog.Attr

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldRunID identifies one invocation; it matches the journal run id.
	FieldRunID = "run_id"
	// FieldPath is the archive-relative path of the file or folder being handled.
	FieldPath = "path"
	// FieldSource is the name a date was taken from.
	FieldSource = "source"
	// FieldEventType is the standardized key for machine-readable event names.
	FieldEventType = "event_type"
	// FieldErrorHint is the standardized key for the suggested next step after a failure.
	FieldErrorHint = "error_hint"
	// FieldImpact is the standardized key for user-facing consequence of a warning.
	FieldImpact = "impact"
	// FieldDecisionType is the standardized key for the kind of decision being logged.
	FieldDecisionType = "decision_type"
)

func Bool(key string, value bool) Attr { return slog.Bool(key, value) }

func Duration(key string, value time.Duration) Attr { return slog.Duration(key, value) }

func Int(key string, value int) Attr { return slog.Int(key, value) }

func Int64(key string, value int64) Attr { return slog.Int64(key, value) }

func String(key string, value string) Attr { return slog.String(key, value) }

func Time(key string, value time.Time) Attr { return slog.Time(key, value) }

func Path(value string) Attr { return slog.String(FieldPath, value) }

func Error(err error) Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}
	return slog.Any("error", err)
}

func attrsToArgs(attrs []Attr) []any {
	args := make([]any, 0, len(attrs))
	for _, attr := range attrs {
		args = append(args, attr)
	}
	return args
}

func Args(attrs ...Attr) []any {
	return attrsToArgs(attrs)
}

func NewNop() *slog.Logger {
	return slog.New(NoopHandler{})
}

// NewComponentLogger creates a logger with a standardized component attribute.
// If logger is nil, a no-op logger is used as the base.
func NewComponentLogger(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	return logger.With(String(FieldComponent, component))
}

// WithRunID tags every record of logger with the run id.
func WithRunID(logger *slog.Logger, runID string) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	if runID == "" {
		return logger
	}
	return logger.With(String(FieldRunID, runID))
}

// HasAttrKey returns true if any attribute in attrs has the given key.
func HasAttrKey(attrs []Attr, key string) bool {
	for _, a := range attrs {
		if a.Key == key {
			return true
		}
	}
	return false
}

// WarnWithContext logs a warning with enforced event_type, error_hint, and impact fields.
// If any of these fields are missing from attrs, defaults are injected.
func WarnWithContext(logger *slog.Logger, msg, eventType string, attrs ...Attr) {
	if logger == nil {
		return
	}
	if !HasAttrKey(attrs, FieldEventType) {
		attrs = append(attrs, String(FieldEventType, eventType))
	}
	if !HasAttrKey(attrs, FieldErrorHint) {
		attrs = append(attrs, String(FieldErrorHint, "check logs for details"))
	}
	if !HasAttrKey(attrs, FieldImpact) {
		attrs = append(attrs, String(FieldImpact, "run continues with this file degraded"))
	}
	logger.Warn(msg, Args(attrs...)...)
}

// ErrorWithContext logs an error with enforced event_type and error_hint fields.
func ErrorWithContext(logger *slog.Logger, msg, eventType string, attrs ...Attr) {
	if logger == nil {
		return
	}
	if !HasAttrKey(attrs, FieldEventType) {
		attrs = append(attrs, String(FieldEventType, eventType))
	}
	if !HasAttrKey(attrs, FieldErrorHint) {
		attrs = append(attrs, String(FieldErrorHint, "check logs for details"))
	}
	logger.Error(msg, Args(attrs...)...)
}

// DecisionAttrs builds consistent attributes for decision logging.
func DecisionAttrs(decisionType, result, reason string) []Attr {
	return []Attr{
		String(FieldDecisionType, decisionType),
		String("decision_result", result),
		String("decision_reason", reason),
	}
}

// NoopHandler discards all log output.
type NoopHandler struct{}

func (NoopHandler) Enabled(context.Context, slog.Level) bool { return false }

func (NoopHandler) Handle(context.Context, slog.Record) error { return nil }

func (NoopHandler) WithAttrs([]slog.Attr) slog.Handler { return NoopHandler{} }

func (NoopHandler) WithGroup(string) slog.Handler { return NoopHandler{} }
