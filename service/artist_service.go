package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/faizan/catalog/models"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (s *CatalogService) ListArtists(ctx context.Context) ([]models.Artist, error) {
	artists := []models.Artist{}
	if err := s.db.WithContext(ctx).Order("id").Find(&artists).Error; err != nil {
		return nil, storeErr(err, "artists")
	}
	return artists, nil
}

func (s *CatalogService) GetArtist(ctx context.Context, id uint) (*models.Artist, error) {
	var artist models.Artist
	if err := s.db.WithContext(ctx).First(&artist, id).Error; err != nil {
		return nil, storeErr(err, "artist")
	}
	return &artist, nil
}

func (s *CatalogService) CreateArtist(ctx context.Context, name string) (*models.Artist, error) {
	name, err := artistName(name)
	if err != nil {
		return nil, err
	}

	artist := models.Artist{Name: name}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkNameFree(tx, name, 0); err != nil {
			return err
		}
		return tx.Create(&artist).Error
	})
	if err != nil {
		return nil, storeErr(err, "artist")
	}
	return &artist, nil
}

func (s *CatalogService) UpdateArtist(ctx context.Context, id uint, name string) (*models.Artist, error) {
	name, err := artistName(name)
	if err != nil {
		return nil, err
	}

	var artist models.Artist
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&artist, id).Error; err != nil {
			return err
		}
		if err := checkNameFree(tx, name, id); err != nil {
			return err
		}
		artist.Name = name
		return tx.Save(&artist).Error
	})
	if err != nil {
		return nil, storeErr(err, "artist")
	}
	return &artist, nil
}

// DeleteArtist removes the artist together with its albums and every song
// that references the artist or one of those albums.
func (s *CatalogService) DeleteArtist(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var artist models.Artist
		if err := tx.First(&artist, id).Error; err != nil {
			return err
		}

		var albumIDs []uint
		if err := tx.Model(&models.Album{}).Where("artist_id = ?", id).Pluck("id", &albumIDs).Error; err != nil {
			return err
		}

		songs := tx.Where("artist_id = ?", id)
		if len(albumIDs) > 0 {
			songs = songs.Or("album_id IN ?", albumIDs)
		}
		if err := songs.Delete(&models.Song{}).Error; err != nil {
			return err
		}
		if err := tx.Where("artist_id = ?", id).Delete(&models.Album{}).Error; err != nil {
			return err
		}
		return tx.Delete(&artist).Error
	})
	return storeErr(err, "artist")
}

// EnsureArtist returns the artist called name, creating it when missing.
// created reports whether a row was inserted.
func (s *CatalogService) EnsureArtist(ctx context.Context, name string) (artist *models.Artist, created bool, err error) {
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		artist, created, err = ensureArtist(tx, name)
		return err
	})
	if err != nil {
		return nil, false, storeErr(err, "artist")
	}
	return artist, created, nil
}

// ensureArtist is an insert that ignores a unique-name conflict followed by a
// lookup, so concurrent callers with the same name end up sharing one row.
func ensureArtist(tx *gorm.DB, name string) (*models.Artist, bool, error) {
	name, err := artistName(name)
	if err != nil {
		return nil, false, err
	}

	artist := models.Artist{Name: name}
	res := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&artist)
	if res.Error != nil {
		return nil, false, res.Error
	}
	if res.RowsAffected == 1 && artist.ID != 0 {
		log.Debug().Uint("artist_id", artist.ID).Str("name", name).Msg("artist created")
		return &artist, true, nil
	}

	var existing models.Artist
	if err := tx.Where("name = ?", name).First(&existing).Error; err != nil {
		return nil, false, err
	}
	return &existing, false, nil
}

func checkNameFree(tx *gorm.DB, name string, self uint) error {
	var other models.Artist
	err := tx.Where("name = ? AND id <> ?", name, self).First(&other).Error
	switch {
	case err == nil:
		return gorm.ErrDuplicatedKey
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil
	default:
		return err
	}
}

func artistName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", invalid("artist name is required")
	}
	if utf8.RuneCountInString(name) > 255 {
		return "", invalid("artist name is longer than 255 characters")
	}
	return name, nil
}
