package api

import "github.com/bigredeye/nbastats/internal/sportsdata"

type StandingsRequest struct {
	Season string `uri:"season" binding:"required"`
}

type StandingsResponse struct {
	Status

	Season    string               `json:"season,omitempty"`
	Standings sportsdata.Standings `json:"standings"`
}
