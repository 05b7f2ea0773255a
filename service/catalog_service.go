package service

import (
	"context"

	"gorm.io/gorm"
)

// CatalogService implements the artist, album and song operations on top
// of a gorm database. Writes that touch more than one row run in a single
// transaction.
type CatalogService struct {
	db     *gorm.DB
	source AlbumSource
}

type Option func(*CatalogService)

// WithAlbumSource enables ImportAlbum.
func WithAlbumSource(src AlbumSource) Option {
	return func(s *CatalogService) { s.source = src }
}

func NewCatalogService(db *gorm.DB, opts ...Option) *CatalogService {
	s := &CatalogService{db: db}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ping checks that the database is reachable.
func (s *CatalogService) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
