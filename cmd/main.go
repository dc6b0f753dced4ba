package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mlforge/tabtrain/internal/config"
	"github.com/mlforge/tabtrain/internal/data"
	"github.com/mlforge/tabtrain/internal/estimators"
	"github.com/mlforge/tabtrain/internal/training"
	"github.com/mlforge/tabtrain/pkg/logger"
)

var (
	inputDir  string
	outputDir string
	paramPath string
	modelType string
)

var rootCmd = &cobra.Command{
	Use:   "tabtrain",
	Short: "Tabtrain",
	Long:  `Training orchestration for supervised estimators on tabular data`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init()
	},
}

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Run one training life cycle",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runTraining(cmd.Context()); err != nil {
			os.Exit(1)
		}
	},
}

func runTraining(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	log := logger.Get()

	estimator, err := estimators.New(modelType, paramPath, outputDir)
	if err != nil {
		log.Error().Err(err).Msg("failed to create estimator")
		return err
	}

	// The parameter file is read up front for the run identifier so every
	// line of the run carries it.
	params, err := config.LoadParams(paramPath)
	if err != nil {
		log.Error().Err(err).Msg("failed to read parameter file")
		return err
	}
	runLog := logger.WithProcessID(config.ProcessID(params))

	orchestrator := training.NewOrchestrator(estimator, data.NewLoader(inputDir), outputDir, runLog)
	return orchestrator.Run(ctx)
}

func main() {
	trainCmd.Flags().StringVar(&inputDir, "input", "", "directory of training CSV files")
	trainCmd.Flags().StringVar(&outputDir, "output", "", "directory for the model and indicator artifacts")
	trainCmd.Flags().StringVar(&paramPath, "params", "", "path to the JSON parameter file")
	trainCmd.Flags().StringVar(&modelType, "model", "linear_regression", "model type to train")
	for _, flag := range []string{"input", "output", "params"} {
		if err := trainCmd.MarkFlagRequired(flag); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	rootCmd.AddCommand(trainCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
