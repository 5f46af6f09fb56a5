package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/PedroAugusto-sys/bigdata/internal/config"
	"github.com/PedroAugusto-sys/bigdata/internal/database"
	"github.com/PedroAugusto-sys/bigdata/internal/etl"
	"github.com/PedroAugusto-sys/bigdata/internal/ingest"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Sugar()

	root := &cobra.Command{
		Use:           "etl",
		Short:         "Batch tools for the educational analytics store",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var outputDir string
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Transform the performance collection into a CSV artifact",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig()
			if outputDir != "" {
				cfg.OutputDir = outputDir
			}

			client, err := database.ConnectMongoDB(cfg.MongoURI)
			if err != nil {
				return err
			}
			defer client.Disconnect(context.Background())
			log.Infow("connected to MongoDB")

			runner := &etl.Runner{
				Client:       client,
				DatabaseName: cfg.DatabaseName,
				OutputDir:    cfg.OutputDir,
				Log:          log,
			}
			return runner.Run(cmd.Context())
		},
	}
	runCmd.Flags().StringVar(&outputDir, "output-dir", "", "artifact directory (default from OUTPUT_DIR)")

	var dataDir string
	ingestCmd := &cobra.Command{
		Use:   "ingest",
		Short: "Load CSV source files into the store, one collection per file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig()
			if dataDir != "" {
				cfg.DataDir = dataDir
			}

			client, err := database.ConnectMongoDB(cfg.MongoURI)
			if err != nil {
				return err
			}
			defer client.Disconnect(context.Background())
			log.Infow("connected to MongoDB")

			loader := &ingest.Loader{
				Client:       client,
				DatabaseName: cfg.DatabaseName,
				Log:          log,
			}
			return loader.Run(cmd.Context(), cfg.DataDir)
		},
	}
	ingestCmd.Flags().StringVar(&dataDir, "data-dir", "", "directory of CSV source files (default from DATA_DIR)")

	root.AddCommand(runCmd, ingestCmd)

	if err := root.Execute(); err != nil {
		log.Errorw("run failed", "error", err)
		os.Exit(1)
	}
}
