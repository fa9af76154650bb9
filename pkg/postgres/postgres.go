package postgres

import (
	"context"
	"fmt"
	"io/fs"
	"net"
	"net/url"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
)

type DB struct {
	Host     string `yaml:"host" envconfig:"DB_HOST" default:"localhost"`
	Port     string `yaml:"port" envconfig:"DB_PORT" default:"5432"`
	Username string `yaml:"user" envconfig:"DB_USER" default:"postgres"`
	Password string `yaml:"password" envconfig:"DB_PASSWORD" json:"-"`
	NameDB   string `yaml:"dbname" envconfig:"DB_NAME" default:"library"`
	SSLMode  string `yaml:"sslmode" envconfig:"DB_SSLMODE" default:"disable"`
	MaxConns int32  `yaml:"maxConns" envconfig:"DB_MAX_CONNS" default:"10"`
}

func (cfg *DB) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.Username, cfg.Password),
		Host:     net.JoinHostPort(cfg.Host, cfg.Port),
		Path:     cfg.NameDB,
		RawQuery: "sslmode=" + cfg.SSLMode,
	}
	return u.String()
}

// NewPostgresDB opens a pool, checks the connection and applies migrations found in migrations (may be nil).
func NewPostgresDB(ctx context.Context, cfg *DB, migrations fs.FS) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, errors.Wrap(err, "pgxpool.ParseConfig")
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, errors.Wrap(err, "pgxpool.NewWithConfig")
	}
	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.Wrap(err, "ping")
	}
	if migrations == nil {
		return pool, nil
	}
	if err = Migrate(pool, migrations, MigrateUp); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

type Direction string

const (
	MigrateUp     Direction = "up"
	MigrateDown   Direction = "down"
	MigrateStatus Direction = "status"
)

// Migrate runs goose against the embedded migration files through a database/sql handle opened with the pool's connection config.
func Migrate(pool *pgxpool.Pool, migrations fs.FS, direction Direction) error {
	db := stdlib.OpenDB(*pool.Config().ConnConfig)
	defer db.Close()

	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	var err error
	switch direction {
	case MigrateUp:
		err = goose.Up(db, ".")
	case MigrateDown:
		err = goose.Down(db, ".")
	case MigrateStatus:
		err = goose.Status(db, ".")
	default:
		return fmt.Errorf("unknown migrate direction %q", direction)
	}
	if err != nil {
		return errors.Wrapf(err, "goose %s", direction)
	}
	return nil
}
