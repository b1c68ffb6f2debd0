package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/rxtech-lab/argo-zscore/internal/batch"
	"github.com/rxtech-lab/argo-zscore/internal/config"
	"github.com/rxtech-lab/argo-zscore/internal/logger"
	"github.com/rxtech-lab/argo-zscore/internal/strategy"
	"github.com/rxtech-lab/argo-zscore/internal/version"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

func runAction(ctx context.Context, cmd *cli.Command) error {
	env, err := config.LoadEnvironment(cmd.String("env"))
	if err != nil {
		return err
	}

	runConfig, err := config.Load(cmd.String("config"))
	if err != nil {
		return err
	}

	if tickers := cmd.StringSlice("ticker"); len(tickers) > 0 {
		runConfig.Batch.Tickers = tickers
	}

	if workers := cmd.Int("workers"); workers > 0 {
		runConfig.Batch.Workers = workers
	}

	if err := runConfig.Validate(); err != nil {
		return err
	}

	consoleLevel, err := logger.ParseLevel(runConfig.Batch.ConsoleLogLevel)
	if err != nil {
		return err
	}

	batchLog, err := logger.NewLoggerWithConfig(logger.Config{ConsoleLevel: consoleLevel})
	if err != nil {
		return err
	}
	defer batchLog.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	summaries, err := batch.NewRunner(runConfig, env, batchLog).Run(ctx)
	if err != nil {
		batchLog.Error("Batch stopped", zap.Int("finished", len(summaries)), zap.Error(err))

		return err
	}

	return nil
}

func schemaAction(_ context.Context, cmd *cli.Command) error {
	var (
		schema string
		err    error
	)

	switch target := cmd.String("target"); target {
	case "run-config":
		schema, err = config.GenerateSchemaJSON()
	case "strategy":
		schema, err = strategy.ConfigSchema(strategy.KindZScoreMeanReversion)
	default:
		return fmt.Errorf("unknown schema target %q", target)
	}

	if err != nil {
		return err
	}

	fmt.Println(schema)

	return nil
}

func main() {
	cmd := &cli.Command{
		Name:    "backtest",
		Version: version.GetVersion(),
		Usage:   "Backtest the z-score mean reversion strategy over a batch of tickers",
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "Run the batch described by the run config",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to the run config `FILE`",
						Value:   "config/backtest.yaml",
					},
					&cli.StringFlag{
						Name:  "env",
						Usage: "Path to the .env file",
						Value: config.DefaultEnvFile,
					},
					&cli.StringSliceFlag{
						Name:    "ticker",
						Aliases: []string{"t"},
						Usage:   "Backtest only these tickers instead of the ticker table",
					},
					&cli.IntFlag{
						Name:    "workers",
						Aliases: []string{"w"},
						Usage:   "Number of tickers run in parallel",
					},
				},
				Action: runAction,
			},
			{
				Name:  "schema",
				Usage: "Print a JSON schema",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "target",
						Usage: "run-config or strategy",
						Value: "run-config",
					},
				},
				Action: schemaAction,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
