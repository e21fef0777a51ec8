/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: learn.go
Description: Implementation of the learn command. Selects exactly one
learning mode (active, rpni, char), constructs the oracles or sample it
needs, runs the corresponding engine, and writes the canonicalized result
with optional query statistics.
*/

package commands

import (
	"fmt"
	"os"

	"github.com/kleascm/ralt/pkg/automata"
	"github.com/kleascm/ralt/pkg/charsample"
	"github.com/kleascm/ralt/pkg/format"
	"github.com/kleascm/ralt/pkg/interfaces"
	"github.com/kleascm/ralt/pkg/learner"
	"github.com/kleascm/ralt/pkg/logging"
	"github.com/kleascm/ralt/pkg/oracle"
	"github.com/kleascm/ralt/pkg/passive"
	"github.com/kleascm/ralt/pkg/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// RunLearn executes one learning run in the selected mode
func RunLearn(cmd *cobra.Command, args []string) error {
	if err := LoadConfig(); err != nil {
		return err
	}
	logger, err := SetupLogging()
	if err != nil {
		return err
	}
	defer logger.Close()

	rpniMode := viper.GetBool("rpni")
	charMode := viper.GetBool("char")
	if rpniMode && charMode {
		return automata.NewError(automata.ErrModeConflict,
			"--rpni and --char are mutually exclusive; pick one learning mode")
	}

	switch {
	case rpniMode:
		return runPassive(logger)
	case charMode:
		return runCharSample(logger)
	default:
		return runActive(logger)
	}
}

// runActive learns from a target automaton through oracle queries
func runActive(logger *logging.Logger) error {
	target, err := loadTarget()
	if err != nil {
		return err
	}
	log := logger.GetLogger()

	teacher, err := oracle.NewTeacher(target, log)
	if err != nil {
		return err
	}
	var orc interfaces.Oracle = teacher
	if viper.GetBool("paranoid") {
		caching := oracle.NewCachingOracle(teacher)
		caching.Paranoid = true
		orc = caching
	}

	engine := learner.NewActiveLearner(target.Alphabet, orc, log)
	engine.MaxRounds = viper.GetInt("max_rounds")

	result, err := engine.Learn()
	if err != nil {
		return err
	}
	teacher.Stats().Finish()
	stats := teacher.Stats().Snapshot()
	logger.LogStats(stats.MembershipQueries, stats.EquivalenceQueries,
		stats.MemorabilityQueries, stats.CacheHits, nil)
	if viper.GetBool("write_stats") {
		path, session, err := utils.WriteStatsResult("active", stats)
		if err != nil {
			return err
		}
		log.WithField("path", path).WithField("session", session).Info("Statistics written")
	}
	return writeAutomaton(result,
		viper.GetString("out_path"),
		viper.GetString("dot_path"),
		viper.GetString("yaml_path"))
}

// runPassive learns a consistent automaton from a labeled sample file
func runPassive(logger *logging.Logger) error {
	samplePath := viper.GetString("sample_path")
	if samplePath == "" {
		return fmt.Errorf("rpni mode requires --sample")
	}
	data, err := os.ReadFile(samplePath)
	if err != nil {
		return fmt.Errorf("failed to read sample: %w", err)
	}
	sample, err := format.ParseSample(string(data))
	if err != nil {
		return err
	}

	alphabet, err := resolveAlphabet(viper.GetString("learn_domain"), viper.GetString("learn_relation"))
	if err != nil {
		return err
	}
	engine, err := passive.NewLearner(alphabet, sample, logger.GetLogger())
	if err != nil {
		return err
	}
	result, err := engine.Learn()
	if err != nil {
		return err
	}
	if viper.GetBool("write_stats") {
		path, session, err := utils.WriteStatsResult("rpni", map[string]int{
			"locations":   result.NumLocations(),
			"transitions": result.NumTransitions(),
			"positives":   len(sample.Pos),
			"negatives":   len(sample.Neg),
		})
		if err != nil {
			return err
		}
		logger.GetLogger().WithField("path", path).WithField("session", session).Info("Statistics written")
	}
	return writeAutomaton(result,
		viper.GetString("out_path"),
		viper.GetString("dot_path"),
		viper.GetString("yaml_path"))
}

// runCharSample produces a characteristic sample from a target automaton
func runCharSample(logger *logging.Logger) error {
	target, err := loadTarget()
	if err != nil {
		return err
	}
	gen, err := charsample.NewGenerator(target, logger.GetLogger())
	if err != nil {
		return err
	}
	if workers := viper.GetInt("workers"); workers > 0 {
		gen.Workers = workers
	}
	sample, err := gen.Generate()
	if err != nil {
		return err
	}
	return writeOutput(viper.GetString("out_path"), format.SerializeSample(sample))
}

// loadTarget reads the target automaton named by --target and normalizes
// it, so learners and the teacher always see the canonical form.
func loadTarget() (*automata.Automaton, error) {
	targetPath := viper.GetString("target_path")
	if targetPath == "" {
		return nil, fmt.Errorf("this mode requires --target")
	}
	target, err := loadAutomaton(targetPath)
	if err != nil {
		return nil, err
	}
	return automata.Canonicalize(target)
}
