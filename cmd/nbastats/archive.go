package main

import (
	"fmt"
	"io"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bigredeye/nbastats/internal/archive"
	"github.com/bigredeye/nbastats/internal/database"
	"github.com/bigredeye/nbastats/internal/models"
)

type archiveMode int

const (
	archiveFetch archiveMode = iota
	archiveShow
	archiveHistory
)

type snapshotReader interface {
	LatestSnapshot(season string) (*models.Snapshot, error)
	ListSnapshots(season string) ([]models.Snapshot, error)
}

func makeArchiveCommand() *cobra.Command {
	var (
		seasons []string
		show    bool
		history bool
	)

	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Fetch standings and store snapshots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if show && history {
				return errors.New("--show and --history are mutually exclusive")
			}
			mode := archiveFetch
			switch {
			case show:
				mode = archiveShow
			case history:
				mode = archiveHistory
			}

			return withApp(func(a *app) error {
				if len(seasons) == 0 {
					seasons = []string{a.config.SportsData.Season}
				}
				return a.archive(cmd, seasons, mode)
			})
		},
	}

	cmd.Flags().StringSliceVar(&seasons, "season", nil, "Season to archive, repeatable (default: configured season)")
	cmd.Flags().BoolVar(&show, "show", false, "Print the latest stored snapshot per season instead of fetching")
	cmd.Flags().BoolVar(&history, "history", false, "Print every stored snapshot per season instead of fetching")

	return cmd
}

func (a *app) archive(cmd *cobra.Command, seasons []string, mode archiveMode) error {
	if len(a.config.Storage.DSN) == 0 {
		return errors.New("Storage is not configured (NBA_STORAGE_DSN)")
	}

	db, err := database.OpenDataBase(a.logger, a.config.Storage.DSN, a.config.Storage.TableName)
	if err != nil {
		return errors.Wrap(err, "Failed to open database")
	}
	a.logger.Info("Opened storage", zap.String("table", db.TableName()))

	switch mode {
	case archiveShow:
		return printLatestSnapshots(cmd.OutOrStdout(), db, seasons)
	case archiveHistory:
		return printSnapshotHistory(cmd.OutOrStdout(), db, seasons)
	}

	archiver := archive.NewArchiver(a.client, db, a.logger, a.config.Archive.Parallelism)
	res, err := archiver.ArchiveSeasons(cmd.Context(), seasons)
	if res != nil {
		for _, snapshot := range res.Saved {
			printSnapshot(cmd.OutOrStdout(), snapshot)
		}
	}
	return err
}

func printSnapshot(w io.Writer, snapshot *models.Snapshot) {
	fmt.Fprintf(w, "%s\t%d\t%s\t%s\n",
		snapshot.Season, snapshot.Records, snapshot.ID, snapshot.FetchedAt.UTC().Format(time.RFC3339))
}

func printLatestSnapshots(w io.Writer, reader snapshotReader, seasons []string) error {
	for _, season := range seasons {
		snapshot, err := reader.LatestSnapshot(season)
		if err != nil {
			return errors.Wrapf(err, "Failed to load snapshot for season %s", season)
		}
		if snapshot == nil {
			fmt.Fprintf(w, "%s\tno snapshots\n", season)
			continue
		}
		printSnapshot(w, snapshot)
		fmt.Fprintln(w, snapshot.Payload)
	}
	return nil
}

func printSnapshotHistory(w io.Writer, reader snapshotReader, seasons []string) error {
	for _, season := range seasons {
		snapshots, err := reader.ListSnapshots(season)
		if err != nil {
			return errors.Wrapf(err, "Failed to list snapshots for season %s", season)
		}
		if len(snapshots) == 0 {
			fmt.Fprintf(w, "%s\tno snapshots\n", season)
			continue
		}
		for i := range snapshots {
			printSnapshot(w, &snapshots[i])
		}
	}
	return nil
}
