package web

import (
	"fmt"
	"net/http"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bigredeye/nbastats/internal/config"
	lf "github.com/bigredeye/nbastats/internal/logfield"
)

type server struct {
	config  *config.Config
	logger  *zap.Logger
	fetcher StandingsFetcher
}

func newServer(config *config.Config, logger *zap.Logger, fetcher StandingsFetcher) *server {
	return &server{
		config:  config,
		logger:  logger.With(lf.Module("web")),
		fetcher: fetcher,
	}
}

func (s *server) engine() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(ginzap.Ginzap(s.logger, time.RFC3339, true))
	r.Use(ginzap.RecoveryWithZap(s.logger, true))

	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong "+fmt.Sprint(time.Now().Unix()))
	})
	setupApiService(s, r)

	return r
}

func (s *server) run() error {
	s.logger.Info("Starting server", zap.String("bind_address", s.config.Server.ListenAddress))
	return s.engine().Run(s.config.Server.ListenAddress)
}
