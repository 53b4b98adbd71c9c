package logging

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

// TimestampFormat is the local-time layout of every log line.
const TimestampFormat = "2006-01-02 15:04:05.000"

// TextFormatter renders entries as
//
//	[2006-01-02 15:04:05.000] [LEVEL] message
type TextFormatter struct {
	Config FormatConfig
}

// Format renders a single log entry.
func (f *TextFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b strings.Builder

	if !f.Config.DisableTimestamp {
		b.WriteString("[")
		b.WriteString(entry.Time.Local().Format(TimestampFormat))
		b.WriteString("] ")
	}

	b.WriteString(fmt.Sprintf("[%s]", LevelName(entry.Level)))

	if component, ok := entry.Data["component"]; ok && f.Config.ShowComponent {
		b.WriteString(fmt.Sprintf(" [%v]", component))
	}

	if entry.HasCaller() {
		fileName := filepath.Base(entry.Caller.File)
		b.WriteString(fmt.Sprintf(" [%s:%d]", fileName, entry.Caller.Line))
	}

	b.WriteString(" ")
	b.WriteString(entry.Message)

	// Append remaining fields
	keys := make([]string, 0, len(entry.Data))
	for key := range entry.Data {
		if key != "component" {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	for _, key := range keys {
		b.WriteString(fmt.Sprintf(" %s=%v", key, entry.Data[key]))
	}

	b.WriteString("\n")
	return []byte(b.String()), nil
}

// LevelName maps logrus levels to the short upper-case names used in the log.
func LevelName(level logrus.Level) string {
	switch level {
	case logrus.WarnLevel:
		return "WARN"
	case logrus.PanicLevel, logrus.FatalLevel:
		return "ERROR"
	default:
		return strings.ToUpper(level.String())
	}
}
