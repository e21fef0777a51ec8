/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: main.go
Description: Main command-line interface for the RALT learning toolkit.
Provides learning mode selection, configuration management, and a beautiful
user interface for controlling register automaton learning runs with
advanced logging capabilities.
*/

package main

import (
	"fmt"
	"os"

	"github.com/kleascm/ralt/cmd/ralt/commands"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Configuration
	configFile string
	logLevel   string

	// Learning mode configuration
	targetPath    string
	samplePath    string
	rpniMode      bool
	charMode      bool
	outPath       string
	dotPath       string
	yamlPath      string
	paranoid      bool
	maxRounds     int
	workers       int
	writeStats    bool
	learnDomain   string
	learnRelation string

	// Generator configuration
	genLocations int
	genSeed      int64
	genDomain    string
	genRelation  string

	// Logging configuration
	logDir      string
	logFormat   string
	logMaxFiles int
	logMaxSize  int64
	logCompress bool
)

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:   "ralt",
		Short: "RALT - Register automaton learning toolkit",
		Long: `RALT learns deterministic register automata over dense ordered domains.
It supports active learning against a target automaton through membership,
equivalence, and memorability queries, passive RPNI-style learning from
labeled samples, and characteristic sample generation, with canonical
minimization applied to every result.`,
		Version: "1.0.0",
	}

	// Add persistent flags
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Logging level (debug, info, warn, error)")

	// Add logging-specific flags
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "./logs", "Log output directory")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "custom", "Log format (text, json, custom)")
	rootCmd.PersistentFlags().IntVar(&logMaxFiles, "log-max-files", 10, "Maximum number of log files to keep")
	rootCmd.PersistentFlags().Int64Var(&logMaxSize, "log-max-size", 100*1024*1024, "Maximum log file size in bytes")
	rootCmd.PersistentFlags().BoolVar(&logCompress, "log-compress", false, "Compress rotated log files")

	// Bind flags to viper
	viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log_dir", rootCmd.PersistentFlags().Lookup("log-dir"))
	viper.BindPFlag("log_format", rootCmd.PersistentFlags().Lookup("log-format"))
	viper.BindPFlag("log_max_files", rootCmd.PersistentFlags().Lookup("log-max-files"))
	viper.BindPFlag("log_max_size", rootCmd.PersistentFlags().Lookup("log-max-size"))
	viper.BindPFlag("log_compress", rootCmd.PersistentFlags().Lookup("log-compress"))

	// Add learn command
	learnCmd := &cobra.Command{
		Use:   "learn",
		Short: "Learn a register automaton",
		Long: `Learn a register automaton in one of three modes. The default active mode
consumes a target automaton and produces a learned minimal automaton through
oracle queries. With --rpni a labeled sample is consumed and a consistent
automaton is produced. With --char the target automaton is consumed and a
characteristic sample is produced. The modes are mutually exclusive.`,
		RunE: commands.RunLearn,
	}

	// Add learn command flags
	learnCmd.Flags().StringVar(&targetPath, "target", "", "Path to target automaton file (active and char modes)")
	learnCmd.Flags().StringVar(&samplePath, "sample", "", "Path to labeled sample file (rpni mode)")
	learnCmd.Flags().BoolVar(&rpniMode, "rpni", false, "Passive learning from a labeled sample")
	learnCmd.Flags().BoolVar(&charMode, "char", false, "Generate a characteristic sample from the target")
	learnCmd.Flags().StringVar(&outPath, "out", "", "Output file (default: stdout)")
	learnCmd.Flags().StringVar(&dotPath, "dot", "", "Also write the result as Graphviz DOT")
	learnCmd.Flags().StringVar(&yamlPath, "yaml", "", "Also write the result as YAML")
	learnCmd.Flags().BoolVar(&paranoid, "paranoid", false, "Re-verify cached oracle answers on every hit")
	learnCmd.Flags().IntVar(&maxRounds, "max-rounds", 100, "Maximum equivalence query rounds")
	learnCmd.Flags().IntVar(&workers, "workers", 0, "Parallel workers for sample generation (0 = auto-detect)")
	learnCmd.Flags().BoolVar(&writeStats, "stats", false, "Write query statistics to the metrics directory")
	learnCmd.Flags().StringVar(&learnDomain, "domain", "real", "Data domain for rpni mode (real, rational)")
	learnCmd.Flags().StringVar(&learnRelation, "relation", "<", "Comparison relation for rpni mode (=, <)")

	// Bind flags to viper
	viper.BindPFlag("target_path", learnCmd.Flags().Lookup("target"))
	viper.BindPFlag("sample_path", learnCmd.Flags().Lookup("sample"))
	viper.BindPFlag("rpni", learnCmd.Flags().Lookup("rpni"))
	viper.BindPFlag("char", learnCmd.Flags().Lookup("char"))
	viper.BindPFlag("out_path", learnCmd.Flags().Lookup("out"))
	viper.BindPFlag("dot_path", learnCmd.Flags().Lookup("dot"))
	viper.BindPFlag("yaml_path", learnCmd.Flags().Lookup("yaml"))
	viper.BindPFlag("paranoid", learnCmd.Flags().Lookup("paranoid"))
	viper.BindPFlag("max_rounds", learnCmd.Flags().Lookup("max-rounds"))
	viper.BindPFlag("workers", learnCmd.Flags().Lookup("workers"))
	viper.BindPFlag("write_stats", learnCmd.Flags().Lookup("stats"))
	viper.BindPFlag("learn_domain", learnCmd.Flags().Lookup("domain"))
	viper.BindPFlag("learn_relation", learnCmd.Flags().Lookup("relation"))

	rootCmd.AddCommand(learnCmd)

	// Add eqcheck command
	eqcheckCmd := &cobra.Command{
		Use:   "eqcheck",
		Short: "Check language equivalence of two automata",
		Long: `Compare two complete register automata and report either equivalence or a
shortest word on which they disagree.`,
		RunE: commands.RunEqCheck,
	}

	eqcheckCmd.Flags().String("left", "", "Path to first automaton file (required)")
	eqcheckCmd.Flags().String("right", "", "Path to second automaton file (required)")
	eqcheckCmd.MarkFlagRequired("left")
	eqcheckCmd.MarkFlagRequired("right")

	viper.BindPFlag("left_path", eqcheckCmd.Flags().Lookup("left"))
	viper.BindPFlag("right_path", eqcheckCmd.Flags().Lookup("right"))

	rootCmd.AddCommand(eqcheckCmd)

	// Add generate command
	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a random register automaton",
		Long: `Generate a seeded random complete register automaton, canonicalize it, and
write it in the text format. Useful for benchmarking the learners.`,
		RunE: commands.RunGenerate,
	}

	generateCmd.Flags().IntVar(&genLocations, "num", 6, "Number of locations in the generated automaton")
	generateCmd.Flags().Int64Var(&genSeed, "seed", 0, "Random seed")
	generateCmd.Flags().StringVar(&genDomain, "domain", "real", "Data domain (real, rational)")
	generateCmd.Flags().StringVar(&genRelation, "relation", "<", "Comparison relation (=, <)")
	generateCmd.Flags().String("out", "", "Output file (default: stdout)")

	viper.BindPFlag("gen_num", generateCmd.Flags().Lookup("num"))
	viper.BindPFlag("gen_seed", generateCmd.Flags().Lookup("seed"))
	viper.BindPFlag("gen_domain", generateCmd.Flags().Lookup("domain"))
	viper.BindPFlag("gen_relation", generateCmd.Flags().Lookup("relation"))
	viper.BindPFlag("gen_out", generateCmd.Flags().Lookup("out"))

	rootCmd.AddCommand(generateCmd)

	// Add logs command for log management
	rootCmd.AddCommand(&cobra.Command{
		Use:   "logs",
		Short: "Rotate, clean up, and analyze log files",
		Long: `Rotate oversized log files, remove files beyond the retention limit, and
print a summary of logged learning activity.`,
		RunE: commands.RunLogs,
	})

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
