/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: formatter.go
Description: Custom log formatter for the RALT learning toolkit. Provides
beautiful, structured logging output with colors, enhanced formatting, and
learner-specific information display.
*/

package logging

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// CustomFormatter provides beautiful, structured logging output
type CustomFormatter struct {
	Timestamp bool
	Caller    bool
	Colors    bool
}

// Format formats a log entry with beautiful output
func (f *CustomFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var output strings.Builder

	if f.Timestamp {
		timestamp := entry.Time.Format("2006-01-02 15:04:05.000")
		if f.Colors {
			output.WriteString(fmt.Sprintf("\033[36m%s\033[0m ", timestamp)) // Cyan
		} else {
			output.WriteString(fmt.Sprintf("%s ", timestamp))
		}
	}

	level := strings.ToUpper(entry.Level.String())
	if f.Colors {
		levelColor := f.getLevelColor(entry.Level)
		output.WriteString(fmt.Sprintf("\033[%dm%s\033[0m ", levelColor, level))
	} else {
		output.WriteString(fmt.Sprintf("%s ", level))
	}

	if f.Caller && entry.HasCaller() {
		caller := fmt.Sprintf("%s:%d", entry.Caller.File, entry.Caller.Line)
		if f.Colors {
			output.WriteString(fmt.Sprintf("\033[33m[%s]\033[0m ", caller)) // Yellow
		} else {
			output.WriteString(fmt.Sprintf("[%s] ", caller))
		}
	}

	output.WriteString(entry.Message)

	if len(entry.Data) > 0 {
		output.WriteString(" ")
		output.WriteString(f.formatFields(entry.Data))
	}

	output.WriteString("\n")
	return []byte(output.String()), nil
}

// getLevelColor returns the ANSI color code for a log level
func (f *CustomFormatter) getLevelColor(level logrus.Level) int {
	switch level {
	case logrus.DebugLevel:
		return 37 // White
	case logrus.InfoLevel:
		return 32 // Green
	case logrus.WarnLevel:
		return 33 // Yellow
	case logrus.ErrorLevel:
		return 31 // Red
	case logrus.FatalLevel:
		return 35 // Magenta
	case logrus.PanicLevel:
		return 35 // Magenta
	default:
		return 37 // White
	}
}

// formatFields formats structured fields in a readable way
func (f *CustomFormatter) formatFields(fields logrus.Fields) string {
	var parts []string

	for key, value := range fields {
		formattedValue := f.formatValue(value)
		if f.Colors {
			parts = append(parts, fmt.Sprintf("\033[34m%s\033[0m=\033[32m%s\033[0m", key, formattedValue)) // Blue key, Green value
		} else {
			parts = append(parts, fmt.Sprintf("%s=%s", key, formattedValue))
		}
	}

	return strings.Join(parts, " ")
}

// formatValue formats a field value appropriately
func (f *CustomFormatter) formatValue(value interface{}) string {
	switch v := value.(type) {
	case time.Duration:
		return v.String()
	case time.Time:
		return v.Format("15:04:05.000")
	case string:
		if len(v) > 50 {
			return fmt.Sprintf("%s...", v[:50])
		}
		return v
	case []byte:
		if len(v) > 20 {
			return fmt.Sprintf("[%d bytes]", len(v))
		}
		return fmt.Sprintf("%x", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// LearnerFormatter provides specialized formatting for learner-specific logs
type LearnerFormatter struct {
	CustomFormatter
	ShowQueries bool
}

// Format formats learner-specific log entries with enhanced information
func (f *LearnerFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var output strings.Builder

	if f.Timestamp {
		timestamp := entry.Time.Format("2006-01-02 15:04:05.000")
		if f.Colors {
			output.WriteString(fmt.Sprintf("\033[36m%s\033[0m ", timestamp))
		} else {
			output.WriteString(fmt.Sprintf("%s ", timestamp))
		}
	}

	level := strings.ToUpper(entry.Level.String())
	if f.Colors {
		levelColor := f.getLevelColor(entry.Level)
		output.WriteString(fmt.Sprintf("\033[%dm%s\033[0m ", levelColor, level))
	} else {
		output.WriteString(fmt.Sprintf("%s ", level))
	}

	prefix := f.getLearnerPrefix(entry.Message)
	if prefix != "" {
		if f.Colors {
			output.WriteString(fmt.Sprintf("\033[35m[%s]\033[0m ", prefix)) // Magenta
		} else {
			output.WriteString(fmt.Sprintf("[%s] ", prefix))
		}
	}

	if f.Caller && entry.HasCaller() {
		caller := fmt.Sprintf("%s:%d", entry.Caller.File, entry.Caller.Line)
		if f.Colors {
			output.WriteString(fmt.Sprintf("\033[33m[%s]\033[0m ", caller))
		} else {
			output.WriteString(fmt.Sprintf("[%s] ", caller))
		}
	}

	output.WriteString(entry.Message)

	if len(entry.Data) > 0 {
		output.WriteString(" ")
		output.WriteString(f.formatFields(entry.Data))
	}

	output.WriteString("\n")
	return []byte(output.String()), nil
}

// getLearnerPrefix returns a prefix based on the log message
func (f *LearnerFormatter) getLearnerPrefix(message string) string {
	switch {
	case strings.Contains(message, "Oracle query"):
		return "QUERY"
	case strings.Contains(message, "Hypothesis"):
		return "HYP"
	case strings.Contains(message, "Counterexample"):
		return "CEX"
	case strings.Contains(message, "Statistics update"):
		return "STATS"
	case strings.Contains(message, "Passive learning"):
		return "RPNI"
	case strings.Contains(message, "Characteristic sample"):
		return "SAMPLE"
	case strings.Contains(message, "Equivalence"):
		return "EQ"
	default:
		return ""
	}
}
