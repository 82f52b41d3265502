package repository

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/Dan9191/cashflow-service/internal/config"
)

// Open returns the memory store, seeded from cfg.SeedFile when set, if
// cfg.UseMemoryStore is true and the PostgreSQL repository otherwise. The
// returned func releases the underlying connection.
func Open(cfg *config.Config) (Store, func(), error) {
	if cfg.UseMemoryStore {
		store := NewMemoryStore()
		if cfg.SeedFile != "" {
			f, err := os.Open(cfg.SeedFile)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to open seed file: %w", err)
			}
			defer f.Close()
			if err := store.LoadSeed(f); err != nil {
				return nil, nil, err
			}
		}
		return store, func() {}, nil
	}

	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return NewRepository(db), func() { db.Close() }, nil
}
