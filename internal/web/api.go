package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bigredeye/nbastats/api"
	lf "github.com/bigredeye/nbastats/internal/logfield"
)

type apiService struct {
	server *server
}

func setupApiService(server *server, r *gin.Engine) {
	s := apiService{server}
	r.GET("/api/standings/:season", s.standings)
}

// Upstream failures are already logged by the fetcher.
func (s apiService) standings(c *gin.Context) {
	req := api.StandingsRequest{}
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, &api.StandingsResponse{
			Status: api.Status{Ok: false, Error: err.Error()},
		})
		return
	}

	standings, err := s.server.fetcher.FetchStandings(req.Season)
	if err != nil {
		c.JSON(http.StatusBadGateway, &api.StandingsResponse{
			Status: api.Status{Ok: false, Error: err.Error()},
			Season: req.Season,
		})
		return
	}

	s.server.logger.Debug("Served standings", lf.Season(req.Season), lf.Records(len(standings)))
	c.JSON(http.StatusOK, &api.StandingsResponse{
		Status:    api.Status{Ok: true},
		Season:    req.Season,
		Standings: standings,
	})
}
