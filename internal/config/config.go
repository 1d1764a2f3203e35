package config

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/bigredeye/nbastats/pkg/conf"
)

const (
	DefaultBaseURL = "https://api.sportsdata.io/v3/nba"
	DefaultSeason  = "2024"
)

type Config struct {
	SportsData struct {
		APIKey  string
		BaseURL string
		Season  string
	}

	Storage struct {
		TableName string
		DSN       string
	}

	Logging struct {
		Production bool
		Level      string
		File       struct {
			Path       string
			MaxSizeMB  int
			MaxBackups int
		}
		Remote struct {
			URL       string
			Token     string
			BatchSize int
		}
	}

	Output struct {
		Format  string
		Preview int
	}

	Archive struct {
		Parallelism int
	}

	Server struct {
		ListenAddress string
	}
}

func ParseConfig(path string) (*Config, error) {
	config := &Config{}
	err := conf.ParseConfig(config,
		conf.EnvPrefix("NBA"),
		conf.ConfigFile(path),
		conf.EnvAlias("SportsData.APIKey", "SPORTDATA_API_KEY"),
		conf.EnvAlias("Storage.TableName", "DYNAMODB_TABLE_NAME"),
		conf.Default("SportsData.BaseURL", DefaultBaseURL),
		conf.Default("SportsData.Season", DefaultSeason),
		conf.Default("Storage.TableName", "nba_standings"),
		conf.Default("Logging.Level", "info"),
		conf.Default("Logging.File.MaxSizeMB", 100),
		conf.Default("Logging.File.MaxBackups", 3),
		conf.Default("Logging.Remote.BatchSize", 64),
		conf.Default("Output.Format", "json"),
		conf.Default("Archive.Parallelism", 2),
		conf.Default("Server.ListenAddress", ":8080"),
	)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to parse config")
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate does not require an api key: without one the upstream answers 401
// and the fetch fails the usual way.
func (c *Config) Validate() error {
	if len(c.SportsData.BaseURL) == 0 {
		return errors.New("Empty sportsdata base url")
	}
	if strings.HasSuffix(c.SportsData.BaseURL, "/") {
		return errors.Errorf("Sportsdata base url %q must not end with a slash", c.SportsData.BaseURL)
	}
	switch strings.ToLower(c.Output.Format) {
	case "json", "yaml":
	default:
		return errors.Errorf("Unknown output format %q", c.Output.Format)
	}
	return nil
}

func (c *Config) HasAPIKey() bool {
	return len(c.SportsData.APIKey) > 0
}

// MaskedAPIKey is safe to log.
func (c *Config) MaskedAPIKey() string {
	return strings.Repeat("*", len(c.SportsData.APIKey))
}
