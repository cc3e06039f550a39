package config

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

var logFormatters = map[string]log.Formatter{
	"text":   log.TextFormatter,
	"json":   log.JSONFormatter,
	"logfmt": log.LogfmtFormatter,
}

// Log is the logging configuration.
type Log struct {
	// Level is one of "debug", "info", "warn", "error", "fatal"; overridable
	// with the --log-level flag.
	Level string `koanf:"level"`
	// Format is one of "text", "json" or "logfmt".
	Format string `koanf:"format"`
	// DisableTimestamps turns off timestamps in log output; overridable with
	// the --log-disable-timestamps flag.
	DisableTimestamps bool `koanf:"disable_timestamps"`

	ParsedLevel     log.Level     `koanf:"-"`
	ParsedFormatter log.Formatter `koanf:"-"`
}

func (l *Log) Validate() (err error) {
	l.ParsedLevel, err = log.ParseLevel(l.Level)
	if err != nil {
		return fmt.Errorf("log.level must be one of debug, info, warn, error, fatal - got: %s", l.Level)
	}

	var ok bool
	l.ParsedFormatter, ok = logFormatters[l.Format]
	if !ok {
		return fmt.Errorf("log.format must be one of text, json, logfmt - got: %s", l.Format)
	}

	return nil
}

// SetLoggerDefaults applies time format, UTC, and styles to the global
// logger. Call this early so pre-config errors are styled correctly.
func SetLoggerDefaults() {
	log.SetTimeFunction(log.NowUTC)
	log.SetTimeFormat("2006-01-02T15:04:05.000Z07:00")

	styles := log.DefaultStyles()
	styles.Timestamp = lipgloss.NewStyle().Faint(true)
	styles.Value = lipgloss.NewStyle().Foreground(lipgloss.Color("105"))

	styles.Levels[log.DebugLevel] = styles.Levels[log.DebugLevel].Foreground(lipgloss.Color("86"))
	styles.Levels[log.InfoLevel] = styles.Levels[log.InfoLevel].Foreground(lipgloss.Color("82"))
	styles.Levels[log.WarnLevel] = styles.Levels[log.WarnLevel].Foreground(lipgloss.Color("226"))
	styles.Levels[log.ErrorLevel] = styles.Levels[log.ErrorLevel].Foreground(lipgloss.Color("196"))
	styles.Levels[log.FatalLevel] = styles.Levels[log.FatalLevel].Foreground(lipgloss.Color("208"))

	log.SetStyles(styles)
}

// ConfigureWithLevelString configures the global logger, letting a non-empty
// logLevel and disableTimestampsOverride win over the config file values.
func (l *Log) ConfigureWithLevelString(logLevel string, disableTimestampsOverride bool) {
	if logLevel != "" && logLevel != l.Level {
		parsedLevel, err := log.ParseLevel(logLevel)
		if err != nil {
			log.Error("invalid level, using "+l.Level, "invalid_level", logLevel, "error", err)
		} else {
			l.Level = logLevel
			l.ParsedLevel = parsedLevel
		}
	}

	log.SetLevel(l.ParsedLevel)
	log.SetFormatter(l.ParsedFormatter)

	disable := l.DisableTimestamps || disableTimestampsOverride
	log.SetReportTimestamp(!disable)

	SetLoggerDefaults()
}
