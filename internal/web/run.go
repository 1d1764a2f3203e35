package web

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/bigredeye/nbastats/internal/config"
)

func Run(config *config.Config, logger *zap.Logger, fetcher StandingsFetcher) error {
	s := newServer(config, logger, fetcher)
	return errors.Wrap(s.run(), "Server failed")
}
