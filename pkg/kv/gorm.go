package kv

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

type slotRow struct {
	Key       string `gorm:"column:slot_key;primaryKey;size:191"`
	Value     []byte
	UpdatedAt time.Time
}

func (slotRow) TableName() string { return "kv_slots" }

// GormStore keeps slots in a single SQL table, one row per key.
type GormStore struct {
	db *gorm.DB
}

func OpenSQLite(path string) (*GormStore, error) {
	return openGorm(sqlite.Open(path))
}

func OpenPostgres(dsn string) (*GormStore, error) {
	if dsn == "" {
		return nil, errors.New("postgres store requires a DSN")
	}
	return openGorm(postgres.Open(dsn))
}

func openGorm(dialector gorm.Dialector) (*GormStore, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, errors.Wrap(err, "open database")
	}
	return NewGormStore(db)
}

func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&slotRow{}); err != nil {
		return nil, errors.Wrap(err, "migrate kv_slots")
	}
	return &GormStore{db: db}, nil
}

func (g *GormStore) Get(ctx context.Context, key string) ([]byte, error) {
	var row slotRow
	err := g.db.WithContext(ctx).Where("slot_key = ?", key).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "select key %s", key)
	}
	return row.Value, nil
}

func (g *GormStore) Set(ctx context.Context, key string, value []byte) error {
	row := slotRow{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	err := g.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slot_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&row).Error
	return errors.Wrapf(err, "upsert key %s", key)
}

func (g *GormStore) Close() error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
