package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/bigredeye/nbastats/api"
	"github.com/bigredeye/nbastats/internal/config"
	"github.com/bigredeye/nbastats/internal/sportsdata"
)

type fakeFetcher struct {
	standings sportsdata.Standings
	err       error
	seasons   []string
}

func (f *fakeFetcher) FetchStandings(season string) (sportsdata.Standings, error) {
	f.seasons = append(f.seasons, season)
	return f.standings, f.err
}

func serve(t *testing.T, fetcher StandingsFetcher, path string) *httptest.ResponseRecorder {
	s := newServer(&config.Config{}, zaptest.NewLogger(t), fetcher)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	s.engine().ServeHTTP(w, req)
	return w
}

func TestStandingsEndpoint(t *testing.T) {
	fetcher := &fakeFetcher{standings: sportsdata.Standings{{"TeamID": json.Number("1"), "Wins": json.Number("50")}}}

	w := serve(t, fetcher, "/api/standings/2024")
	if w.Code != http.StatusOK {
		t.Fatalf("Unexpected status %d: %s", w.Code, w.Body.String())
	}
	if len(fetcher.seasons) != 1 || fetcher.seasons[0] != "2024" {
		t.Fatalf("Unexpected fetches: %v", fetcher.seasons)
	}
	if !strings.Contains(w.Body.String(), `"standings":[{"TeamID":1,"Wins":50}]`) {
		t.Fatalf("Records must be passed through verbatim: %s", w.Body.String())
	}

	res := api.StandingsResponse{}
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("Invalid response: %v", err)
	}
	if !res.Ok || res.Season != "2024" || len(res.Standings) != 1 {
		t.Fatalf("Unexpected response: %+v", res)
	}
}

func TestStandingsEndpointUpstreamFailure(t *testing.T) {
	fetcher := &fakeFetcher{err: &sportsdata.FetchError{Kind: sportsdata.ErrorKindStatus, Season: "2024", StatusCode: 401}}

	w := serve(t, fetcher, "/api/standings/2024")
	if w.Code != http.StatusBadGateway {
		t.Fatalf("Unexpected status %d: %s", w.Code, w.Body.String())
	}

	res := api.StandingsResponse{}
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("Invalid response: %v", err)
	}
	if res.Ok || !strings.Contains(res.Error, "status=401") || res.Standings != nil {
		t.Fatalf("Unexpected response: %+v", res)
	}
}

func TestPing(t *testing.T) {
	w := serve(t, &fakeFetcher{}, "/ping")
	if w.Code != http.StatusOK || !strings.HasPrefix(w.Body.String(), "pong ") {
		t.Fatalf("Unexpected ping response %d: %s", w.Code, w.Body.String())
	}
}
