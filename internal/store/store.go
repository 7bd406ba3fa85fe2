// Package store is the durable collaborator: gorm-backed repositories
// over users, rooms, memberships and messages.
package store

import (
	"context"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/linkmeet/linkmeet/internal/domain"
)

type Store struct {
	DB       *gorm.DB
	Users    *Users
	Rooms    *Rooms
	Members  *Members
	Messages *Messages
}

// Open opens the sqlite database at path and migrates the schema.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return New(db)
}

// Ping verifies the database connection is alive.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to reach database: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

// New wraps an already-open gorm handle; used by tests with :memory:.
func New(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Room{},
		&domain.RoomMember{},
		&domain.Message{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	return &Store{
		DB:       db,
		Users:    &Users{db: db},
		Rooms:    &Rooms{db: db},
		Members:  &Members{db: db},
		Messages: &Messages{db: db},
	}, nil
}
