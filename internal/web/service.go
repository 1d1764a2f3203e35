package web

import (
	"github.com/bigredeye/nbastats/internal/sportsdata"
)

type StandingsFetcher interface {
	FetchStandings(season string) (sportsdata.Standings, error)
}
