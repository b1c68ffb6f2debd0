package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rxtech-lab/argo-zscore/internal/config"
	"github.com/rxtech-lab/argo-zscore/internal/logger"
	"github.com/rxtech-lab/argo-zscore/internal/version"
	"github.com/rxtech-lab/argo-zscore/pkg/errors"
	"github.com/rxtech-lab/argo-zscore/pkg/marketdata"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// resolveDownloadConfig merges the optional YAML file with the flags. Flags win.
func resolveDownloadConfig(cmd *cli.Command) (marketdata.DownloadConfig, error) {
	downloadConfig := marketdata.DownloadConfig{Interval: "1m"}

	if path := cmd.String("config"); path != "" {
		loaded, err := marketdata.LoadDownloadConfig(path)
		if err != nil {
			return marketdata.DownloadConfig{}, err
		}

		downloadConfig = loaded
	}

	if tickers := cmd.StringSlice("ticker"); len(tickers) > 0 {
		downloadConfig.Tickers = tickers
	}

	if cmd.IsSet("start") {
		downloadConfig.StartDate = cmd.Timestamp("start").Format("2006-01-02")
	}

	if cmd.IsSet("end") {
		downloadConfig.EndDate = cmd.Timestamp("end").Format("2006-01-02")
	}

	if downloadConfig.EndDate == "" {
		downloadConfig.EndDate = time.Now().Format("2006-01-02")
	}

	if cmd.IsSet("interval") {
		downloadConfig.Interval = cmd.String("interval")
	}

	return downloadConfig, downloadConfig.Validate()
}

func downloadAction(ctx context.Context, cmd *cli.Command) error {
	env, err := config.LoadEnvironment(cmd.String("env"))
	if err != nil {
		return err
	}

	if env.PolygonAPIKey == "" {
		return errors.New(errors.ErrCodeInvalidConfiguration, "POLYGON_API_KEY is not set")
	}

	downloadConfig, err := resolveDownloadConfig(cmd)
	if err != nil {
		return err
	}

	downloadLog, err := logger.NewLoggerWithConfig(logger.Config{ConsoleLevel: zapcore.InfoLevel})
	if err != nil {
		return err
	}
	defer downloadLog.Sync() //nolint:errcheck

	client, err := marketdata.NewClient(marketdata.ClientConfig{
		DataDir:       env.DataDir,
		Dataset:       cmd.String("dataset"),
		PolygonApiKey: env.PolygonAPIKey,
	}, downloadLog, os.Stderr)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	downloadLog.Info("Starting download",
		zap.Strings("tickers", downloadConfig.Tickers),
		zap.String("start", downloadConfig.StartDate),
		zap.String("end", downloadConfig.EndDate),
		zap.String("interval", downloadConfig.Interval),
	)

	paths, err := client.DownloadAll(ctx, downloadConfig, cmd.Bool("overwrite"))
	if err != nil {
		return err
	}

	downloadLog.Info("Download completed", zap.Int("files", len(paths)))

	return nil
}

func schemaAction(_ context.Context, _ *cli.Command) error {
	schema, err := marketdata.GetDownloadConfigSchema()
	if err != nil {
		return err
	}

	fmt.Println(schema)

	return nil
}

func main() {
	cmd := &cli.Command{
		Name:    "download",
		Version: version.GetVersion(),
		Usage:   "Download historical minute bars from Polygon into DATA_DIR",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a download config `FILE`",
			},
			&cli.StringFlag{
				Name:  "env",
				Usage: "Path to the .env file",
				Value: config.DefaultEnvFile,
			},
			&cli.StringSliceFlag{
				Name:    "ticker",
				Aliases: []string{"t"},
				Usage:   "Stock ticker symbol, repeatable",
			},
			&cli.TimestampFlag{
				Name:    "start",
				Aliases: []string{"s"},
				Usage:   "Start date in `YYYY-MM-DD` format",
				Config: cli.TimestampConfig{
					Layouts: []string{"2006-01-02"},
				},
			},
			&cli.TimestampFlag{
				Name:    "end",
				Aliases: []string{"e"},
				Usage:   "End date in `YYYY-MM-DD` format. Defaults to today.",
				Config: cli.TimestampConfig{
					Layouts: []string{"2006-01-02"},
				},
			},
			&cli.StringFlag{
				Name:    "interval",
				Aliases: []string{"i"},
				Usage:   "Aggregate size (1m, 5m, 15m, 1h, 1d)",
				Value:   "1m",
			},
			&cli.StringFlag{
				Name:    "dataset",
				Aliases: []string{"d"},
				Usage:   "Dataset folder under DATA_DIR/stocks",
				Value:   config.DefaultDataset,
			},
			&cli.BoolFlag{
				Name:  "overwrite",
				Usage: "Download tickers whose file already exists",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "schema",
				Usage:  "Print the JSON schema of the download config",
				Action: schemaAction,
			},
		},
		Action: downloadAction,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
