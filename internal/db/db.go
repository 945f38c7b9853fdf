// Package db opens and manages the Postgres connection shared by the
// discovery pipeline.
package db

import (
	"database/sql"
	"time"

	"github.com/cenkalti/backoff/v4"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/luvbee/event-spider/internal/config"
	"github.com/luvbee/event-spider/internal/models"
)

type DB struct {
	Gorm *gorm.DB
	SQL  *sql.DB
}

// Open connects to Postgres and tunes the pool. The initial connection is
// retried with exponential backoff so the service survives a database that
// comes up slightly after it does.
func Open(cfg config.DBConfig) (*DB, error) {
	gcfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	var gdb *gorm.DB
	connect := func() error {
		var err error
		gdb, err = gorm.Open(postgres.Open(cfg.DSN), gcfg)
		return err
	}

	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = cfg.ConnectTimeout
	if err := backoff.Retry(connect, policy); err != nil {
		return nil, err
	}

	sqldb, err := gdb.DB()
	if err != nil {
		return nil, err
	}

	sqldb.SetMaxOpenConns(cfg.MaxOpenConns)
	sqldb.SetMaxIdleConns(cfg.MaxIdleConns)
	sqldb.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqldb.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	return &DB{Gorm: gdb, SQL: sqldb}, nil
}

func Close(db *DB) error {
	if db == nil || db.SQL == nil {
		return nil
	}
	return db.SQL.Close()
}

func Ping(db *DB) error {
	if db == nil || db.SQL == nil {
		return nil
	}
	return db.SQL.Ping()
}

func AutoMigrate(db *DB) error {
	if db == nil || db.Gorm == nil {
		return nil
	}
	return db.Gorm.AutoMigrate(&models.Location{})
}

func NowUTC() time.Time {
	return time.Now().UTC()
}
