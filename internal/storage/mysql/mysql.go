package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"

	"roi-engine/internal/config"
	"roi-engine/internal/storage"
)

// MySQL error numbers mapped onto storage sentinels.
const (
	errDataTooLong = 1406
	errInvalidJSON = 3140
)

type Storage struct {
	db *sql.DB
}

func New(cfg config.Config) (*Storage, error) {
	const op = "storage.mysql.New"

	db, err := sql.Open("mysql", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("%s: failed to open db: %w", op, err)
	}
	db.SetConnMaxLifetime(3 * time.Minute)
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)

	return &Storage{db: db}, nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS cost_classifications (
		org_id     VARCHAR(64) NOT NULL PRIMARY KEY,
		hard_costs JSON        NOT NULL,
		soft_costs JSON        NOT NULL,
		updated_at DATETIME    NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS global_defaults (
		org_id     VARCHAR(64) NOT NULL PRIMARY KEY,
		data       JSON        NOT NULL,
		updated_at DATETIME    NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS process_groups (
		org_id VARCHAR(64)  NOT NULL,
		id     VARCHAR(64)  NOT NULL,
		name   VARCHAR(255) NOT NULL,
		PRIMARY KEY (org_id, id)
	)`,
	`CREATE TABLE IF NOT EXISTS processes (
		org_id     VARCHAR(64)  NOT NULL,
		id         VARCHAR(64)  NOT NULL,
		name       VARCHAR(255) NOT NULL,
		group_id   VARCHAR(64)  NOT NULL DEFAULT '',
		selected   BOOLEAN      NOT NULL DEFAULT FALSE,
		data       JSON         NOT NULL,
		updated_at DATETIME     NOT NULL,
		PRIMARY KEY (org_id, id)
	)`,
}

// Migrate creates the tables the store reads and writes.
func (s *Storage) Migrate(ctx context.Context) error {
	const op = "storage.mysql.Migrate"

	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	return nil
}

// mapWriteErr turns driver rejections of a record into storage.ErrInvalidRecord.
func mapWriteErr(err error) error {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && (mysqlErr.Number == errDataTooLong || mysqlErr.Number == errInvalidJSON) {
		return fmt.Errorf("%w: %s", storage.ErrInvalidRecord, mysqlErr.Message)
	}
	return err
}
