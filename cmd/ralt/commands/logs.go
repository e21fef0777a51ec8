/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: logs.go
Description: Implementation of the logs command. Rotates oversized log
files, enforces the retention limit, and prints an analysis summary of
logged learning activity.
*/

package commands

import (
	"fmt"

	"github.com/kleascm/ralt/pkg/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// RunLogs manages and analyzes log files
func RunLogs(cmd *cobra.Command, args []string) error {
	if err := LoadConfig(); err != nil {
		return err
	}

	logDir := viper.GetString("log_dir")
	manager := logging.NewLogManager(
		logDir,
		viper.GetInt("log_max_files"),
		viper.GetInt64("log_max_size"),
		viper.GetBool("log_compress"),
	)
	if err := manager.RotateLogs(); err != nil {
		return err
	}
	if err := manager.CleanupOldLogs(); err != nil {
		return err
	}

	analyzer := logging.NewLogAnalyzer(logDir)
	analysis, err := analyzer.AnalyzeLogs()
	if err != nil {
		return err
	}
	fmt.Println(analysis.GetLogSummary())
	return nil
}
