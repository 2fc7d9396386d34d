package pg

import (
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/lib/pq"

	"github.com/kaiwachat/kaiwa/internal/config"
)

// Storage is the durable attachment-metadata index backed by Postgres.
type Storage struct {
	db *sql.DB
}

func New(cfg *config.Config) (*Storage, error) {
	slog.Info("connecting to db")
	db, err := Connect(cfg)
	if err != nil {
		return nil, err
	}
	slog.Info("successfully connected to db")
	return &Storage{db}, nil
}

func Connect(cfg *config.Config) (*sql.DB, error) {
	pg := cfg.Private.Pg
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		pg.Host, pg.Port, pg.User, pg.Password, pg.Dbname)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return db, nil
}

func (s *Storage) Cleanup() error {
	return s.db.Close()
}

// Ping reports database reachability for readiness checks.
func (s *Storage) Ping() error {
	return s.db.Ping()
}
