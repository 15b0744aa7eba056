package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/user/qbd_simulator_go/internal/engine"
	"github.com/user/qbd_simulator_go/internal/parser"
	"github.com/user/qbd_simulator_go/internal/simulation"
)

var (
	runFile string
	runSeed int64
	runOut  string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute a simulation definition and print the result as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, result, err := executeDefinition(cmd, runFile, runSeed)
		if err != nil {
			return err
		}

		encoded, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
		if runOut == "" || runOut == "-" {
			fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
			return nil
		}
		if err := os.WriteFile(runOut, append(encoded, '\n'), 0o644); err != nil {
			return fmt.Errorf("failed to write result: %w", err)
		}
		log.Printf("Result written to %s", runOut)
		return nil
	},
}

func init() {
	runCmd.Flags().StringVarP(&runFile, "file", "f", "", "simulation definition file (YAML or JSON)")
	runCmd.Flags().Int64Var(&runSeed, "seed", 0, "random seed for a reproducible run (time-seeded when omitted)")
	runCmd.Flags().StringVarP(&runOut, "out", "o", "", "write JSON result to this file instead of stdout")
	_ = runCmd.MarkFlagRequired("file")
}

// executeDefinition loads a definition file, applies a CLI seed override
// and runs the engine, logging any loader warnings along the way.
func executeDefinition(cmd *cobra.Command, path string, seed int64) (*simulation.SimulationRun, *simulation.SimulationResult, error) {
	run, warnings, err := parser.LoadRunDefinition(path)
	if err != nil {
		return nil, nil, err
	}
	for _, w := range warnings {
		log.Printf("Warning: %s", w)
	}
	if cmd.Flags().Changed("seed") {
		run.Settings.Seed = &seed
	}
	result, err := engine.Run(*run)
	if err != nil {
		return nil, nil, err
	}
	return run, result, nil
}
