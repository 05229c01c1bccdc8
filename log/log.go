package log

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Handler is the [slog.Handler] this package produces. Named as an
// alias so callers can refer to "the handler this package builds"
// without importing log/slog themselves.
type Handler = slog.Handler

// Level is a log level, parsed from a CLI string via [ParseLevel].
type Level string

// The log levels this package recognizes.
const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// Format is a log output encoding.
type Format string

// The log formats this package recognizes.
const (
	FormatJSON   Format = "json"
	FormatLogfmt Format = "logfmt"
	FormatText   Format = "text"
)

var (
	// ErrInvalidArgument indicates an invalid argument was provided.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnknownLogLevel indicates an unrecognized log level string.
	ErrUnknownLogLevel = errors.New("unknown log level")
	// ErrUnknownLogFormat indicates an unrecognized log format string.
	ErrUnknownLogFormat = errors.New("unknown log format")
)

// ParseLevel parses a log level string, case-insensitively. "warning" is
// accepted as an alias for "warn".
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(s) {
	case string(LevelDebug):
		return LevelDebug, nil
	case string(LevelInfo):
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case string(LevelError):
		return LevelError, nil
	}

	return "", ErrUnknownLogLevel
}

// ParseFormat parses a log format string, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case string(FormatJSON):
		return FormatJSON, nil
	case string(FormatLogfmt):
		return FormatLogfmt, nil
	case string(FormatText):
		return FormatText, nil
	}

	return "", ErrUnknownLogFormat
}

// GetAllLevelStrings returns the recognized level strings, for flag
// completion.
func GetAllLevelStrings() []string {
	return []string{string(LevelDebug), string(LevelInfo), string(LevelWarn), string(LevelError)}
}

// GetAllFormatStrings returns the recognized format strings, for flag
// completion.
func GetAllFormatStrings() []string {
	return []string{string(FormatJSON), string(FormatLogfmt), string(FormatText)}
}

func (l Level) slogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewHandler creates a [Handler] writing to w at the given level and
// format.
func NewHandler(w io.Writer, level Level, format Format) Handler {
	opts := &slog.HandlerOptions{AddSource: true, Level: level.slogLevel()}

	switch format {
	case FormatJSON:
		return slog.NewJSONHandler(w, opts)
	case FormatLogfmt, FormatText:
		return slog.NewTextHandler(w, opts)
	}

	return nil
}

// NewHandlerFromStrings parses level and format and creates a [Handler]
// writing to w, or returns an error wrapping [ErrInvalidArgument] if
// either string is unrecognized.
func NewHandlerFromStrings(w io.Writer, level, format string) (Handler, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	fmtVal, err := ParseFormat(format)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	return NewHandler(w, lvl, fmtVal), nil
}
