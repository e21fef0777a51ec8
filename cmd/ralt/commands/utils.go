/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: utils.go
Description: Shared utilities for the RALT commands. Provides common
configuration loading, logging setup, and automaton file helpers used
across all command implementations.
*/

package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/kleascm/ralt/pkg/automata"
	"github.com/kleascm/ralt/pkg/format"
	"github.com/kleascm/ralt/pkg/logging"
	"github.com/spf13/viper"
)

// LoadConfig loads configuration from files and environment
func LoadConfig() error {
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	viper.SetEnvPrefix("RALT")
	viper.AutomaticEnv()

	return nil
}

// SetupLogging configures the logging system from viper settings
func SetupLogging() (*logging.Logger, error) {
	config := &logging.LoggerConfig{
		Level:     logging.LogLevel(viper.GetString("log_level")),
		Format:    logging.LogFormat(viper.GetString("log_format")),
		OutputDir: viper.GetString("log_dir"),
		MaxFiles:  viper.GetInt("log_max_files"),
		MaxSize:   viper.GetInt64("log_max_size"),
		Timestamp: true,
		Caller:    false,
		Colors:    true,
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid logging configuration: %w", err)
	}
	return logging.NewLogger(config)
}

// resolveAlphabet builds and validates an alphabet from descriptor strings.
func resolveAlphabet(domain, relation string) (automata.Alphabet, error) {
	alphabet := automata.Alphabet{
		Domain:   automata.Domain(domain),
		Relation: automata.Relation(relation),
	}
	if !alphabet.Valid() {
		return automata.Alphabet{}, automata.NewError(automata.ErrParse,
			"unknown alphabet %s %s", domain, relation)
	}
	return alphabet, nil
}

// loadAutomaton reads an automaton from a text or YAML file by extension.
func loadAutomaton(path string) (*automata.Automaton, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		return format.ParseYAML(data)
	}
	return format.Parse(string(data))
}

// writeOutput writes text to the given file, or stdout when path is empty.
func writeOutput(path, text string) error {
	if path == "" {
		_, err := fmt.Print(text)
		return err
	}
	return os.WriteFile(path, []byte(text), 0644)
}

// writeAutomaton writes the automaton in the text format plus any requested
// auxiliary formats.
func writeAutomaton(a *automata.Automaton, outPath, dotPath, yamlPath string) error {
	if err := writeOutput(outPath, format.Serialize(a)); err != nil {
		return err
	}
	if dotPath != "" {
		if err := os.WriteFile(dotPath, []byte(format.SerializeDot(a)), 0644); err != nil {
			return err
		}
	}
	if yamlPath != "" {
		data, err := format.SerializeYAML(a)
		if err != nil {
			return err
		}
		if err := os.WriteFile(yamlPath, data, 0644); err != nil {
			return err
		}
	}
	return nil
}
