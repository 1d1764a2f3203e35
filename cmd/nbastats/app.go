package main

import (
	"io"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/bigredeye/nbastats/internal/config"
	lf "github.com/bigredeye/nbastats/internal/logfield"
	"github.com/bigredeye/nbastats/internal/output"
	"github.com/bigredeye/nbastats/internal/sportsdata"
	zlog "github.com/bigredeye/nbastats/pkg/log"
)

type app struct {
	config *config.Config
	logger *zap.Logger
	client *sportsdata.Client
}

func withApp(run func(a *app) error) error {
	conf, err := config.ParseConfig(configPath)
	if err != nil {
		return err
	}

	logger, err := zlog.Init(zlog.Options{
		Production: conf.Logging.Production,
		Level:      conf.Logging.Level,
		File: zlog.FileOptions{
			Path:       conf.Logging.File.Path,
			MaxSizeMB:  conf.Logging.File.MaxSizeMB,
			MaxBackups: conf.Logging.File.MaxBackups,
		},
		Remote: zlog.RemoteOptions{
			URL:       conf.Logging.Remote.URL,
			Token:     conf.Logging.Remote.Token,
			BatchSize: conf.Logging.Remote.BatchSize,
		},
	})
	if err != nil {
		return err
	}
	defer zlog.Sync()

	a, err := newApp(conf, logger)
	if err != nil {
		return err
	}
	return run(a)
}

func newApp(conf *config.Config, logger *zap.Logger, options ...sportsdata.Option) (*app, error) {
	if !conf.HasAPIKey() {
		logger.Warn("Missing sportsdata api key, requests will be rejected (set NBA_SPORTSDATA_APIKEY or SPORTDATA_API_KEY)")
	}
	logger.Info("Loaded config",
		lf.APIKey(conf.MaskedAPIKey()),
		lf.URL(conf.SportsData.BaseURL),
	)

	client, err := sportsdata.NewClient(conf.SportsData.BaseURL, conf.SportsData.APIKey, logger, options...)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to create sportsdata client")
	}

	return &app{
		config: conf,
		logger: logger,
		client: client,
	}, nil
}

// fetchAndPrint runs one fetch. Fetch failures and panics end up as the failure message, not as an error.
func (a *app) fetchAndPrint(w io.Writer, season string) (err error) {
	printer := output.NewPrinter(w, a.config.Output.Format, a.config.Output.Preview)

	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("Unexpected failure", lf.Season(season), zap.Any("panic", r))
			err = printer.PrintFailure()
		}
	}()

	standings, fetchErr := a.client.FetchStandings(season)
	if fetchErr != nil {
		return printer.PrintFailure()
	}
	return printer.PrintStandings(standings)
}
