/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: utils.go
Description: Utility functions for log management in the RALT learning
toolkit. Provides log rotation, cleanup, and log analysis capabilities.
*/

package logging

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// LogManager provides advanced log management capabilities
type LogManager struct {
	logDir   string
	maxFiles int
	maxSize  int64
	compress bool
}

// NewLogManager creates a new log manager
func NewLogManager(logDir string, maxFiles int, maxSize int64, compress bool) *LogManager {
	return &LogManager{
		logDir:   logDir,
		maxFiles: maxFiles,
		maxSize:  maxSize,
		compress: compress,
	}
}

// RotateLogs rotates log files when they exceed size limits
func (lm *LogManager) RotateLogs() error {
	files, err := filepath.Glob(filepath.Join(lm.logDir, "ralt_*.log"))
	if err != nil {
		return fmt.Errorf("failed to glob log files: %w", err)
	}

	for _, file := range files {
		if err := lm.rotateFile(file); err != nil {
			return fmt.Errorf("failed to rotate file %s: %w", file, err)
		}
	}

	return nil
}

// rotateFile rotates a single log file
func (lm *LogManager) rotateFile(path string) error {
	stat, err := os.Stat(path)
	if err != nil {
		return err
	}

	if stat.Size() < lm.maxSize {
		return nil
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")
	rotatedPath := fmt.Sprintf("%s.%s", path, timestamp)

	if err := os.Rename(path, rotatedPath); err != nil {
		return err
	}

	if lm.compress {
		if err := lm.compressFile(rotatedPath); err != nil {
			return err
		}
	}

	return nil
}

// compressFile compresses a log file using gzip
func (lm *LogManager) compressFile(path string) error {
	source, err := os.Open(path)
	if err != nil {
		return err
	}
	defer source.Close()

	compressedPath := path + ".gz"
	compressed, err := os.Create(compressedPath)
	if err != nil {
		return err
	}
	defer compressed.Close()

	gzipWriter := gzip.NewWriter(compressed)
	defer gzipWriter.Close()

	if _, err := io.Copy(gzipWriter, source); err != nil {
		return err
	}

	return os.Remove(path)
}

// CleanupOldLogs removes old log files based on retention policy
func (lm *LogManager) CleanupOldLogs() error {
	files, err := filepath.Glob(filepath.Join(lm.logDir, "ralt_*.log*"))
	if err != nil {
		return fmt.Errorf("failed to glob log files: %w", err)
	}

	if len(files) <= lm.maxFiles {
		return nil
	}

	// Sort files by modification time (oldest first)
	sort.Slice(files, func(i, j int) bool {
		statI, _ := os.Stat(files[i])
		statJ, _ := os.Stat(files[j])
		return statI.ModTime().Before(statJ.ModTime())
	})

	filesToRemove := len(files) - lm.maxFiles
	for i := 0; i < filesToRemove; i++ {
		if err := os.Remove(files[i]); err != nil {
			return fmt.Errorf("failed to remove file %s: %w", files[i], err)
		}
	}

	return nil
}

// LogAnalyzer provides log analysis capabilities
type LogAnalyzer struct {
	logDir string
}

// NewLogAnalyzer creates a new log analyzer
func NewLogAnalyzer(logDir string) *LogAnalyzer {
	return &LogAnalyzer{
		logDir: logDir,
	}
}

// AnalyzeLogs analyzes log files for patterns and statistics
func (la *LogAnalyzer) AnalyzeLogs() (*LogAnalysis, error) {
	files, err := filepath.Glob(filepath.Join(la.logDir, "ralt_*.log"))
	if err != nil {
		return nil, fmt.Errorf("failed to glob log files: %w", err)
	}

	analysis := &LogAnalysis{
		StartTime: time.Now(),
		LogFiles:  len(files),
	}

	for _, file := range files {
		if err := la.analyzeFile(file, analysis); err != nil {
			return nil, fmt.Errorf("failed to analyze file %s: %w", file, err)
		}
	}

	return analysis, nil
}

// analyzeFile analyzes a single log file
func (la *LogAnalyzer) analyzeFile(path string, analysis *LogAnalysis) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		la.analyzeLine(scanner.Text(), analysis)
	}

	return scanner.Err()
}

// analyzeLine analyzes a single log line
func (la *LogAnalyzer) analyzeLine(line string, analysis *LogAnalysis) {
	analysis.TotalLines++

	// Count log levels
	if strings.Contains(line, "DEBUG") {
		analysis.DebugCount++
	} else if strings.Contains(line, "INFO") {
		analysis.InfoCount++
	} else if strings.Contains(line, "WARN") {
		analysis.WarningCount++
	} else if strings.Contains(line, "ERROR") {
		analysis.ErrorCount++
	} else if strings.Contains(line, "FATAL") {
		analysis.FatalCount++
	}

	// Count learner-specific events
	if strings.Contains(line, "Oracle query answered") {
		analysis.QueryCount++
	} else if strings.Contains(line, "Hypothesis built") {
		analysis.HypothesisCount++
	} else if strings.Contains(line, "Counterexample received") {
		analysis.CounterexampleCount++
	} else if strings.Contains(line, "Passive learning finished") {
		analysis.PassiveRunCount++
	} else if strings.Contains(line, "Characteristic sample generated") {
		analysis.SampleCount++
	}
}

// LogAnalysis holds the results of log analysis
type LogAnalysis struct {
	StartTime           time.Time `json:"start_time"`
	LogFiles            int       `json:"log_files"`
	TotalLines          int64     `json:"total_lines"`
	DebugCount          int64     `json:"debug_count"`
	InfoCount           int64     `json:"info_count"`
	WarningCount        int64     `json:"warning_count"`
	ErrorCount          int64     `json:"error_count"`
	FatalCount          int64     `json:"fatal_count"`
	QueryCount          int64     `json:"query_count"`
	HypothesisCount     int64     `json:"hypothesis_count"`
	CounterexampleCount int64     `json:"counterexample_count"`
	PassiveRunCount     int64     `json:"passive_run_count"`
	SampleCount         int64     `json:"sample_count"`
}

// GetLogSummary returns a summary of the log analysis
func (la *LogAnalysis) GetLogSummary() string {
	return fmt.Sprintf(
		"Log Analysis Summary:\n"+
			"  Files: %d\n"+
			"  Total Lines: %d\n"+
			"  Debug: %d\n"+
			"  Info: %d\n"+
			"  Warning: %d\n"+
			"  Error: %d\n"+
			"  Fatal: %d\n"+
			"  Oracle Queries: %d\n"+
			"  Hypotheses: %d\n"+
			"  Counterexamples: %d\n"+
			"  Passive Runs: %d\n"+
			"  Characteristic Samples: %d",
		la.LogFiles, la.TotalLines, la.DebugCount, la.InfoCount,
		la.WarningCount, la.ErrorCount, la.FatalCount, la.QueryCount,
		la.HypothesisCount, la.CounterexampleCount, la.PassiveRunCount,
		la.SampleCount,
	)
}
