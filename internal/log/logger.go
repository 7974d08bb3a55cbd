package log

import (
	"io"
	"os"
	"strings"

	charmlog "github.com/charmbracelet/log"
)

type Level int

const (
	Debug Level = iota
	Info
	Warn
	Error
)

var (
	current Level = Info
	logger        = charmlog.NewWithOptions(os.Stderr, charmlog.Options{
		ReportTimestamp: true,
		Prefix:          "todo-web",
		Level:           charmlog.InfoLevel,
	})
)

func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return Debug
	case "info", "":
		return Info
	case "warn", "warning":
		return Warn
	case "err", "error":
		return Error
	default:
		return Info
	}
}

func (l Level) charm() charmlog.Level {
	switch l {
	case Debug:
		return charmlog.DebugLevel
	case Warn:
		return charmlog.WarnLevel
	case Error:
		return charmlog.ErrorLevel
	default:
		return charmlog.InfoLevel
	}
}

func SetLevel(l Level) {
	current = l
	logger.SetLevel(l.charm())
}

// SetFormat selects the output encoding: "json", "logfmt" or the default text.
func SetFormat(format string) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		logger.SetFormatter(charmlog.JSONFormatter)
	case "logfmt":
		logger.SetFormatter(charmlog.LogfmtFormatter)
	default:
		logger.SetFormatter(charmlog.TextFormatter)
	}
}

// SetOutput redirects log output, mainly for tests.
func SetOutput(w io.Writer) { logger.SetOutput(w) }

func Debugf(format string, v ...any) {
	if current <= Debug {
		logger.Debugf(format, v...)
	}
}
func Infof(format string, v ...any) {
	if current <= Info {
		logger.Infof(format, v...)
	}
}
func Warnf(format string, v ...any) {
	if current <= Warn {
		logger.Warnf(format, v...)
	}
}
func Errorf(format string, v ...any) {
	if current <= Error {
		logger.Errorf(format, v...)
	}
}

// With returns a child logger carrying the given key/value pairs.
func With(keyvals ...any) *charmlog.Logger { return logger.With(keyvals...) }

func InitFromEnvFallback(level string) {
	// Allow override via ENV if provided
	if env := os.Getenv("TODOWEB_LOG_LEVEL"); env != "" {
		level = env
	}
	SetLevel(ParseLevel(level))
}
