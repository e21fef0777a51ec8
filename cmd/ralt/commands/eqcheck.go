/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: eqcheck.go
Description: Implementation of the eqcheck command. Loads two complete
automata, validates them, and reports either equivalence or a shortest
separating word.
*/

package commands

import (
	"fmt"

	"github.com/kleascm/ralt/pkg/automata"
	"github.com/kleascm/ralt/pkg/oracle"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// RunEqCheck compares two automata for language equivalence
func RunEqCheck(cmd *cobra.Command, args []string) error {
	if err := LoadConfig(); err != nil {
		return err
	}
	logger, err := SetupLogging()
	if err != nil {
		return err
	}
	defer logger.Close()

	left, err := loadAutomaton(viper.GetString("left_path"))
	if err != nil {
		return err
	}
	right, err := loadAutomaton(viper.GetString("right_path"))
	if err != nil {
		return err
	}
	if err := left.Validate(); err != nil {
		return fmt.Errorf("left automaton: %w", err)
	}
	if err := right.Validate(); err != nil {
		return fmt.Errorf("right automaton: %w", err)
	}

	witness, found, err := oracle.FindDifference(left, automata.Sequence{}, right, automata.Sequence{})
	if err != nil {
		return err
	}
	if !found {
		fmt.Println("equivalent")
		return nil
	}
	fmt.Printf("different: %s\n", witness)
	return nil
}
