package database

import (
	"errors"

	"github.com/jackc/pgconn"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"moul.io/zapgorm2"

	"github.com/bigredeye/nbastats/internal/models"
)

type DataBase struct {
	*gorm.DB
	table string
}

type DuplicateKey struct {
	nested error
}

func (e *DuplicateKey) Error() string {
	return e.nested.Error()
}

func (e *DuplicateKey) Unwrap() error {
	return e.nested
}

func IsDuplicateKey(err error) bool {
	duplicateKey := &DuplicateKey{}
	return errors.As(err, &duplicateKey)
}

// gorm does not translate driver errors
// https://github.com/go-gorm/gorm/issues/4037
func isUniqueViolation(err error) bool {
	var perr *pgconn.PgError
	if errors.As(err, &perr) {
		return perr.Code == "23505"
	}
	return false
}

func OpenDataBase(logger *zap.Logger, dsn, table string) (*DataBase, error) {
	zapLogger := zapgorm2.New(logger.Named("gorm"))
	zapLogger.SetAsDefault()
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: zapLogger,
	})
	if err != nil {
		return nil, err
	}

	err = db.Table(table).AutoMigrate(&models.Snapshot{})
	if err != nil {
		return nil, err
	}

	return &DataBase{db, table}, nil
}

func (db *DataBase) TableName() string {
	return db.table
}

func (db *DataBase) snapshots() *gorm.DB {
	return db.DB.Table(db.table)
}

func (db *DataBase) SaveSnapshot(snapshot *models.Snapshot) error {
	err := db.snapshots().Create(snapshot).Error
	if err != nil {
		if isUniqueViolation(err) {
			return &DuplicateKey{err}
		}
		return err
	}
	return nil
}

// LatestSnapshot returns nil without error when the season has no snapshots.
func (db *DataBase) LatestSnapshot(season string) (*models.Snapshot, error) {
	var snapshot models.Snapshot
	err := db.snapshots().
		Where("season = ?", season).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "fetched_at"}, Desc: true}).
		Take(&snapshot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &snapshot, nil
}

func (db *DataBase) ListSnapshots(season string) (snapshots []models.Snapshot, err error) {
	snapshots = make([]models.Snapshot, 0)
	err = db.snapshots().
		Where("season = ?", season).
		Order("fetched_at").
		Find(&snapshots).Error
	if err != nil {
		snapshots = nil
	}
	return
}
