package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/rxtech-lab/argo-zscore/internal/config"
	"github.com/rxtech-lab/argo-zscore/internal/logger"
	"github.com/rxtech-lab/argo-zscore/internal/screener"
	"github.com/rxtech-lab/argo-zscore/internal/version"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func screenAction(ctx context.Context, cmd *cli.Command) error {
	env, err := config.LoadEnvironment(cmd.String("env"))
	if err != nil {
		return err
	}

	screenLog, err := logger.NewLoggerWithConfig(logger.Config{
		ConsoleLevel: zapcore.WarnLevel,
		Directory:    cmd.String("log-dir"),
		FileName:     "screener.log",
		FileLevel:    zapcore.InfoLevel,
	})
	if err != nil {
		return err
	}
	defer screenLog.Sync() //nolint:errcheck

	screenConfig := screener.DefaultConfig(env.DataDir, cmd.String("dataset"))
	screenConfig.OutputDir = cmd.String("output")
	screenConfig.Workers = cmd.Int("workers")

	s, err := screener.NewScreener(screenConfig, screenLog)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	path, results, err := s.Run(ctx)
	if err != nil {
		return err
	}

	screenLog.Info("Screening finished", zap.String("path", path), zap.Int("tickers", len(results)))

	return nil
}

func main() {
	cmd := &cli.Command{
		Name:    "screener",
		Version: version.GetVersion(),
		Usage:   "Compute ADF and NATR statistics of every downloaded ticker",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "env",
				Usage: "Path to the .env file",
				Value: config.DefaultEnvFile,
			},
			&cli.StringFlag{
				Name:    "dataset",
				Aliases: []string{"d"},
				Usage:   "Dataset folder under DATA_DIR/stocks",
				Value:   config.DefaultDataset,
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Directory of the aggregated results file",
				Value:   ".",
			},
			&cli.StringFlag{
				Name:  "log-dir",
				Usage: "Directory of screener.log",
				Value: ".",
			},
			&cli.IntFlag{
				Name:    "workers",
				Aliases: []string{"w"},
				Usage:   "Number of tickers screened in parallel",
				Value:   max(1, runtime.NumCPU()),
			},
		},
		Action: screenAction,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
