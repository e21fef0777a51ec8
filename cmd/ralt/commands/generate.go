/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: generate.go
Description: Implementation of the generate command. Produces a seeded
random complete register automaton and writes it in the text format.
*/

package commands

import (
	"github.com/kleascm/ralt/pkg/format"
	"github.com/kleascm/ralt/pkg/generator"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// RunGenerate generates a random automaton
func RunGenerate(cmd *cobra.Command, args []string) error {
	if err := LoadConfig(); err != nil {
		return err
	}
	logger, err := SetupLogging()
	if err != nil {
		return err
	}
	defer logger.Close()

	alphabet, err := resolveAlphabet(viper.GetString("gen_domain"), viper.GetString("gen_relation"))
	if err != nil {
		return err
	}

	gen := generator.NewGenerator(alphabet, viper.GetInt64("gen_seed"), logger.GetLogger())
	result, err := gen.Generate(viper.GetInt("gen_num"))
	if err != nil {
		return err
	}
	return writeOutput(viper.GetString("gen_out"), format.Serialize(result))
}
