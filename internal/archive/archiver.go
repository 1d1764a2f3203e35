package archive

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"

	lf "github.com/bigredeye/nbastats/internal/logfield"
	"github.com/bigredeye/nbastats/internal/models"
	"github.com/bigredeye/nbastats/internal/sportsdata"
)

type Fetcher interface {
	FetchStandings(season string) (sportsdata.Standings, error)
}

type Store interface {
	SaveSnapshot(snapshot *models.Snapshot) error
}

type Archiver struct {
	fetcher     Fetcher
	store       Store
	logger      *zap.Logger
	parallelism int
	now         func() time.Time
}

type Result struct {
	Saved  []*models.Snapshot
	Failed []string
}

func NewArchiver(fetcher Fetcher, store Store, logger *zap.Logger, parallelism int) *Archiver {
	if parallelism <= 0 {
		parallelism = 1
	}
	return &Archiver{
		fetcher:     fetcher,
		store:       store,
		logger:      logger.With(lf.Module("archive")),
		parallelism: parallelism,
		now:         time.Now,
	}
}

// ArchiveSeasons stores one snapshot per season that could be fetched.
// Fetch failures do not stop other seasons; a storage failure does, and every season
// that was not saved, including the ones never started, is reported in Result.Failed.
func (a *Archiver) ArchiveSeasons(ctx context.Context, seasons []string) (*Result, error) {
	seasons = normalizeSeasons(seasons)
	if len(seasons) == 0 {
		return nil, errors.New("No seasons to archive")
	}

	res := &Result{}
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.parallelism)
	for _, season := range seasons {
		season := season
		g.Go(func() error {
			fail := func() {
				mu.Lock()
				res.Failed = append(res.Failed, season)
				mu.Unlock()
			}

			if ctx.Err() != nil {
				fail()
				return nil
			}

			standings, err := a.fetcher.FetchStandings(season)
			if err != nil {
				fail()
				return nil
			}

			snapshot, err := a.newSnapshot(season, standings)
			if err != nil {
				fail()
				return err
			}
			if err := a.store.SaveSnapshot(snapshot); err != nil {
				fail()
				return errors.Wrapf(err, "Failed to save snapshot for season %s", season)
			}
			a.logger.Info("Archived standings",
				lf.Season(season),
				lf.SnapshotID(snapshot.ID),
				lf.Records(snapshot.Records),
			)

			mu.Lock()
			res.Saved = append(res.Saved, snapshot)
			mu.Unlock()
			return nil
		})
	}

	err := g.Wait()

	slices.SortFunc(res.Saved, func(x, y *models.Snapshot) bool {
		return x.Season < y.Season
	})
	slices.Sort(res.Failed)

	if err != nil {
		return res, err
	}
	if len(res.Failed) > 0 {
		return res, errors.Errorf("Failed to fetch %d of %d seasons: %s",
			len(res.Failed), len(seasons), strings.Join(res.Failed, ", "))
	}
	return res, nil
}

func (a *Archiver) newSnapshot(season string, standings sportsdata.Standings) (*models.Snapshot, error) {
	payload, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(standings)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to encode standings for season %s", season)
	}
	return &models.Snapshot{
		ID:        uuid.New().String(),
		Season:    season,
		FetchedAt: a.now().UTC(),
		Records:   len(standings),
		Payload:   string(payload),
	}, nil
}

func normalizeSeasons(seasons []string) []string {
	res := make([]string, 0, len(seasons))
	for _, season := range seasons {
		season = strings.TrimSpace(season)
		if len(season) > 0 {
			res = append(res, season)
		}
	}
	slices.Sort(res)
	return slices.Compact(res)
}
