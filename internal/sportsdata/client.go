package sportsdata

import (
	"bytes"
	"net/http"
	"unicode/utf8"

	"github.com/go-resty/resty/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	lf "github.com/bigredeye/nbastats/internal/logfield"
)

const (
	APIKeyHeader = "Ocp-Apim-Subscription-Key"

	standingsPath    = "/scores/json/Standings/"
	bodyExcerptLimit = 200
)

// Numbers stay json.Number so records pass through untouched.
var payloadJSON = jsoniter.Config{UseNumber: true}.Froze()

// Record is one team's standing as sent by the service. No schema is applied.
type Record map[string]interface{}

type Standings []Record

type Client struct {
	client  *resty.Client
	baseURL string
	apiKey  string
	logger  *zap.Logger
}

type Option func(c *Client)

// WithHTTPClient replaces the transport. The default has no timeout.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.client = resty.NewWithClient(httpClient)
	}
}

func NewClient(baseURL, apiKey string, logger *zap.Logger, options ...Option) (*Client, error) {
	if len(baseURL) == 0 {
		return nil, errors.New("Empty base url")
	}

	c := &Client{
		client:  resty.New(),
		baseURL: baseURL,
		apiKey:  apiKey,
		logger:  logger.Named("sportsdata"),
	}
	for _, option := range options {
		option(c)
	}

	c.client.
		SetRetryCount(0).
		SetLogger(c.logger.Named("resty").Sugar()).
		SetHeader(APIKeyHeader, apiKey)

	return c, nil
}

func (c *Client) StandingsURL(season string) string {
	return c.baseURL + standingsPath + season
}

// FetchStandings issues a single request and returns the decoded records.
// On any failure the records are nil and the error is a *FetchError; it has already been logged.
func (c *Client) FetchStandings(season string) (Standings, error) {
	url := c.StandingsURL(season)
	log := c.logger.With(lf.URL(url), lf.Season(season))
	log.Info("Fetching standings")

	standings, size, fetchErr := c.fetch(url, season)
	if fetchErr != nil {
		fields := []zap.Field{zap.Error(fetchErr.Err), lf.ErrorKind(fetchErr.Kind.String())}
		if fetchErr.StatusCode > 0 {
			fields = append(fields, lf.StatusCode(fetchErr.StatusCode))
		}
		if len(fetchErr.Body) > 0 {
			fields = append(fields, lf.Body(fetchErr.Body))
		}
		log.Error("Failed to fetch standings", fields...)
		return nil, fetchErr
	}

	log.Info("Fetched standings", lf.Records(len(standings)), lf.ResponseSize(size))
	return standings, nil
}

func (c *Client) fetch(url, season string) (Standings, int, *FetchError) {
	fail := func(kind ErrorKind, status int, body []byte, err error) (Standings, int, *FetchError) {
		return nil, 0, &FetchError{
			Kind:       kind,
			URL:        url,
			Season:     season,
			StatusCode: status,
			Body:       excerpt(body),
			Err:        err,
		}
	}

	resp, err := c.client.R().Get(url)
	if err != nil {
		return fail(ErrorKindTransport, 0, nil, errors.Wrap(err, "Request failed"))
	}

	body := resp.Body()
	if !resp.IsSuccess() {
		return fail(ErrorKindStatus, resp.StatusCode(), body, errors.Errorf("Unexpected status %s", resp.Status()))
	}

	standings, err := decodeStandings(body)
	if err != nil {
		return fail(ErrorKindDecode, resp.StatusCode(), body, err)
	}

	return standings, len(body), nil
}

func decodeStandings(body []byte) (Standings, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, errors.New("Empty standings payload")
	}

	var standings Standings
	if err := payloadJSON.Unmarshal(body, &standings); err != nil {
		return nil, errors.Wrap(err, "Failed to decode standings")
	}
	if standings == nil {
		return nil, errors.New("Standings payload is not a JSON array")
	}
	return standings, nil
}

func excerpt(body []byte) string {
	if utf8.RuneCount(body) <= bodyExcerptLimit {
		return string(body)
	}
	runes := 0
	for i := range string(body) {
		if runes == bodyExcerptLimit {
			return string(body[:i])
		}
		runes++
	}
	return string(body)
}
