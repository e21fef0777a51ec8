/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: stats_writer.go
Description: Utility for writing learning-run statistics to the metrics
directory. Handles timestamped, session-tagged, and mode-specific
subdirectory naming. Ensures directories exist and writes JSON files for
easy analysis.
*/

package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// WriteStatsResult writes a result to the metrics directory, tagged with
// the learning mode and a fresh session id. Returns the written path and
// the session id.
func WriteStatsResult(mode string, result interface{}) (string, string, error) {
	metricsDir := filepath.Join("metrics", mode)
	if err := os.MkdirAll(metricsDir, 0755); err != nil {
		return "", "", fmt.Errorf("failed to create metrics directory: %w", err)
	}

	sessionID := uuid.New().String()
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	filename := fmt.Sprintf("%s_%s_%s.json", timestamp, mode, sessionID[:8])
	filePath := filepath.Join(metricsDir, filename)

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", "", fmt.Errorf("failed to marshal result: %w", err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return "", "", fmt.Errorf("failed to write metrics file: %w", err)
	}

	return filePath, sessionID, nil
}
