/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: logger.go
Description: Logging system for the RALT learning toolkit. Provides structured
logging with timestamped files, multiple output formats, and beautiful
formatting. Supports JSON, text, and custom formats with rotation.
*/

package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
)

// LogLevel represents the logging level
type LogLevel string

const (
	LogLevelDebug   LogLevel = "debug"
	LogLevelInfo    LogLevel = "info"
	LogLevelWarning LogLevel = "warn"
	LogLevelError   LogLevel = "error"
	LogLevelFatal   LogLevel = "fatal"
)

// LogFormat represents the logging format
type LogFormat string

const (
	LogFormatJSON   LogFormat = "json"
	LogFormatText   LogFormat = "text"
	LogFormatCustom LogFormat = "custom"
)

// LoggerConfig holds the configuration for the logger
type LoggerConfig struct {
	Level     LogLevel  `json:"level"`
	Format    LogFormat `json:"format"`
	OutputDir string    `json:"output_dir"`
	MaxFiles  int       `json:"max_files"`
	MaxSize   int64     `json:"max_size"` // in bytes
	Timestamp bool      `json:"timestamp"`
	Caller    bool      `json:"caller"`
	Colors    bool      `json:"colors"`
}

// Validate checks the LoggerConfig for invalid or missing values.
// Returns an error if the config is invalid, or nil if valid.
func (c *LoggerConfig) Validate() error {
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir must not be empty")
	}
	if c.MaxFiles <= 0 {
		return fmt.Errorf("max_files must be positive")
	}
	if c.MaxSize <= 0 {
		return fmt.Errorf("max_size must be positive")
	}
	switch c.Format {
	case LogFormatJSON, LogFormatText, LogFormatCustom:
		// ok
	default:
		return fmt.Errorf("unsupported log format: %s", c.Format)
	}
	switch c.Level {
	case LogLevelDebug, LogLevelInfo, LogLevelWarning, LogLevelError, LogLevelFatal:
		// ok
	default:
		return fmt.Errorf("unsupported log level: %s", c.Level)
	}
	return nil
}

// Logger provides structured logging for learning runs
type Logger struct {
	config     *LoggerConfig
	logger     *logrus.Logger
	fileHandle *os.File
	startTime  time.Time
}

// NewLogger creates a new logger instance
func NewLogger(config *LoggerConfig) (*Logger, error) {
	if config == nil {
		config = &LoggerConfig{
			Level:     LogLevelInfo,
			Format:    LogFormatText,
			OutputDir: "./logs",
			MaxFiles:  10,
			MaxSize:   100 * 1024 * 1024, // 100MB
			Timestamp: true,
			Caller:    false,
			Colors:    true,
		}
	}

	l := &Logger{
		config:    config,
		logger:    logrus.New(),
		startTime: time.Now(),
	}

	if err := l.setup(); err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	return l, nil
}

// setup configures the logger with the given configuration
func (l *Logger) setup() error {
	level, err := logrus.ParseLevel(string(l.config.Level))
	if err != nil {
		level = logrus.InfoLevel
	}
	l.logger.SetLevel(level)

	if err := l.setFormatter(); err != nil {
		return err
	}

	return l.setupFileOutput()
}

// setFormatter configures the log formatter
func (l *Logger) setFormatter() error {
	switch l.config.Format {
	case LogFormatJSON:
		l.logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339,
			CallerPrettyfier: func(f *runtime.Frame) (string, string) {
				filename := filepath.Base(f.File)
				return "", fmt.Sprintf("%s:%d", filename, f.Line)
			},
		})

	case LogFormatText:
		l.logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   l.config.Timestamp,
			TimestampFormat: time.RFC3339,
			ForceColors:     l.config.Colors,
			DisableColors:   !l.config.Colors,
			CallerPrettyfier: func(f *runtime.Frame) (string, string) {
				filename := filepath.Base(f.File)
				return "", fmt.Sprintf("%s:%d", filename, f.Line)
			},
		})

	case LogFormatCustom:
		l.logger.SetFormatter(&CustomFormatter{
			Timestamp: l.config.Timestamp,
			Caller:    l.config.Caller,
			Colors:    l.config.Colors,
		})

	default:
		return fmt.Errorf("unsupported log format: %s", l.config.Format)
	}

	return nil
}

// setupFileOutput configures file-based logging
func (l *Logger) setupFileOutput() error {
	if l.config.OutputDir == "" {
		return nil
	}

	if err := os.MkdirAll(l.config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")
	filename := fmt.Sprintf("ralt_%s.log", timestamp)
	logPath := filepath.Join(l.config.OutputDir, filename)

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	l.fileHandle = file
	l.logger.SetOutput(io.MultiWriter(os.Stdout, file))

	l.logger.WithFields(logrus.Fields{
		"start_time": l.startTime.Format(time.RFC3339),
		"log_file":   logPath,
		"level":      l.config.Level,
		"format":     l.config.Format,
	}).Info("RALT logging system initialized")

	return nil
}

// rotateLogs rotates log files when they exceed size limits
func (l *Logger) rotateLogs() error {
	if l.fileHandle == nil {
		return nil
	}

	stat, err := l.fileHandle.Stat()
	if err != nil {
		return err
	}

	if stat.Size() < l.config.MaxSize {
		return nil
	}

	l.fileHandle.Close()

	return l.setupFileOutput()
}

// cleanup removes old log files
func (l *Logger) cleanup() error {
	if l.config.OutputDir == "" {
		return nil
	}

	files, err := filepath.Glob(filepath.Join(l.config.OutputDir, "ralt_*.log"))
	if err != nil {
		return err
	}

	if len(files) <= l.config.MaxFiles {
		return nil
	}

	// Sort files by modification time (oldest first)
	sort.Slice(files, func(i, j int) bool {
		statI, _ := os.Stat(files[i])
		statJ, _ := os.Stat(files[j])
		return statI.ModTime().Before(statJ.ModTime())
	})

	filesToRemove := len(files) - l.config.MaxFiles
	for i := 0; i < filesToRemove; i++ {
		os.Remove(files[i])
	}

	return nil
}

// Learning-specific logging methods

// LogQuery logs one oracle query and its answer
func (l *Logger) LogQuery(kind string, word string, answer interface{}, fields map[string]interface{}) {
	if fields == nil {
		fields = make(map[string]interface{})
	}
	fields["kind"] = kind
	fields["word"] = word
	fields["answer"] = answer

	l.logger.WithFields(fields).Debug("Oracle query answered")
}

// LogHypothesis logs a freshly built hypothesis
func (l *Logger) LogHypothesis(round int, locations int, transitions int, fields map[string]interface{}) {
	if fields == nil {
		fields = make(map[string]interface{})
	}
	fields["round"] = round
	fields["locations"] = locations
	fields["transitions"] = transitions

	l.logger.WithFields(fields).Info("Hypothesis built")
}

// LogCounterexample logs a counterexample returned by an equivalence query
func (l *Logger) LogCounterexample(round int, word string, fields map[string]interface{}) {
	if fields == nil {
		fields = make(map[string]interface{})
	}
	fields["round"] = round
	fields["counterexample"] = word

	l.logger.WithFields(fields).Info("Counterexample received")
}

// LogStats logs query statistics
func (l *Logger) LogStats(mq int64, eq int64, mm int64, cacheHits int64, fields map[string]interface{}) {
	if fields == nil {
		fields = make(map[string]interface{})
	}
	fields["membership_queries"] = mq
	fields["equivalence_queries"] = eq
	fields["memorability_queries"] = mm
	fields["cache_hits"] = cacheHits
	fields["uptime"] = time.Since(l.startTime)

	l.logger.WithFields(fields).Info("Statistics update")
}

// Close closes the logger and performs cleanup
func (l *Logger) Close() error {
	if l.fileHandle != nil {
		l.fileHandle.Close()
	}

	if err := l.cleanup(); err != nil {
		return fmt.Errorf("failed to cleanup log files: %w", err)
	}

	return nil
}

// GetLogger returns the underlying logrus logger
func (l *Logger) GetLogger() *logrus.Logger {
	return l.logger
}
