// Package store persists categories and ingredients through gorm. It exposes one
// Repository per entity and knows nothing about GraphQL.
package store

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/pantryhq/pantry/internal/config"
	"github.com/pantryhq/pantry/internal/logging"
	"github.com/pantryhq/pantry/internal/pantry"
)

// Store bundles the repositories sharing one connection pool.
type Store struct {
	db *gorm.DB

	Categories  Repository[pantry.Category]
	Ingredients Repository[pantry.Ingredient]
}

// Open connects to the database described by cfg and creates missing tables.
// A nil logger silences gorm.
func Open(cfg config.DatabaseConfig, log *slog.Logger) (*Store, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case config.DriverSQLite:
		dialector = sqlite.Open(cfg.DSN)
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	gormLog := gormlogger.Discard
	if log != nil {
		gormLog = logging.NewGormLogger(log, time.Duration(cfg.SlowQueryMillis)*time.Millisecond)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                                   gormLog,
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening %s database: %w", cfg.Driver, err)
	}

	if cfg.Driver == config.DriverSQLite {
		// SQLite allows a single writer; in-memory databases also exist per connection.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	return New(db)
}

// New wraps an existing gorm handle and creates missing tables.
func New(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&pantry.Category{}, &pantry.Ingredient{}); err != nil {
		return nil, fmt.Errorf("creating tables: %w", err)
	}

	return &Store{
		db:          db,
		Categories:  NewGormRepository[pantry.Category](db, pantry.EntityCategory),
		Ingredients: NewGormRepository[pantry.Ingredient](db, pantry.EntityIngredient),
	}, nil
}

// DB returns the underlying gorm handle.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// IngredientsInCategory returns the ingredients referencing categoryID, by id.
func (s *Store) IngredientsInCategory(ctx context.Context, categoryID uint) ([]*pantry.Ingredient, error) {
	return s.Ingredients.FindBy(ctx, "category_id", categoryID)
}

// Ping checks that the database answers.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
