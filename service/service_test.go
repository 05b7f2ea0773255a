package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/faizan/catalog/config"
	"github.com/faizan/catalog/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var bg = context.Background()

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := config.OpenDB(config.Database{
		Driver: config.DriverSQLite,
		DSN:    filepath.Join(t.TempDir(), "catalog.db"),
	})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func count(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func ptr[T any](v T) *T { return &v }

func seedAlbum(t *testing.T, svc *CatalogService, title, artist string, year int) *models.Album {
	t.Helper()
	album, err := svc.CreateAlbum(bg, AlbumInput{Title: ptr(title), ArtistName: ptr(artist), ReleaseYear: ptr(year)})
	require.NoError(t, err)
	return album
}
