/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: logger_test.go
Description: Tests for the logging system: config validation, file output,
and the custom formatters.
*/

package logging

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig(dir string) *LoggerConfig {
	return &LoggerConfig{
		Level:     LogLevelDebug,
		Format:    LogFormatText,
		OutputDir: dir,
		MaxFiles:  3,
		MaxSize:   1024 * 1024,
		Timestamp: true,
	}
}

func TestLoggerConfigValidate(t *testing.T) {
	cfg := validConfig(t.TempDir())
	assert.NoError(t, cfg.Validate())

	bad := *cfg
	bad.OutputDir = ""
	assert.Error(t, bad.Validate())

	bad = *cfg
	bad.MaxFiles = 0
	assert.Error(t, bad.Validate())

	bad = *cfg
	bad.Format = "xml"
	assert.Error(t, bad.Validate())

	bad = *cfg
	bad.Level = "verbose"
	assert.Error(t, bad.Validate())
}

func TestNewLoggerCreatesLogFile(t *testing.T) {
	dir := t.TempDir()
	logger, err := NewLogger(validConfig(dir))
	require.NoError(t, err)
	defer logger.Close()

	logger.GetLogger().Info("hello")

	matches, err := filepath.Glob(filepath.Join(dir, "ralt_*.log"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestLoggerDomainHelpers(t *testing.T) {
	logger, err := NewLogger(validConfig(t.TempDir()))
	require.NoError(t, err)
	defer logger.Close()

	logger.LogQuery("membership", "[1,2]", true, nil)
	logger.LogHypothesis(1, 3, 9, map[string]interface{}{"closed": true})
	logger.LogCounterexample(1, "[5,3]", nil)
	logger.LogStats(10, 1, 4, 2, nil)
}

func TestCustomFormatterOutput(t *testing.T) {
	f := &CustomFormatter{Timestamp: false, Colors: false}
	entry := &logrus.Entry{
		Logger:  logrus.New(),
		Time:    time.Now(),
		Level:   logrus.InfoLevel,
		Message: "Hypothesis built",
		Data:    logrus.Fields{"locations": 3},
	}

	out, err := f.Format(entry)
	require.NoError(t, err)
	assert.Contains(t, string(out), "INFO")
	assert.Contains(t, string(out), "Hypothesis built")
	assert.Contains(t, string(out), "locations=3")
}

func TestLearnerFormatterPrefixes(t *testing.T) {
	f := &LearnerFormatter{}

	for message, prefix := range map[string]string{
		"Oracle query answered":           "[QUERY]",
		"Hypothesis built":                "[HYP]",
		"Counterexample received":         "[CEX]",
		"Statistics update":               "[STATS]",
		"Characteristic sample generated": "[SAMPLE]",
	} {
		entry := &logrus.Entry{
			Logger:  logrus.New(),
			Time:    time.Now(),
			Level:   logrus.DebugLevel,
			Message: message,
		}
		out, err := f.Format(entry)
		require.NoError(t, err)
		assert.Contains(t, string(out), prefix, "message %q", message)
	}
}
