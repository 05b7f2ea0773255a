package service

import (
	"context"
	"errors"
	"strings"

	"github.com/faizan/catalog/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SongInput carries the writable song fields. A nil field is left unchanged
// on update.
type SongInput struct {
	Author   *string
	Title    *string
	ArtistID *uint
	AlbumID  *uint
	Duration *int
}

func (s *CatalogService) ListSongs(ctx context.Context) ([]models.Song, error) {
	songs := []models.Song{}
	if err := s.db.WithContext(ctx).Order("id").Find(&songs).Error; err != nil {
		return nil, storeErr(err, "songs")
	}
	return songs, nil
}

func (s *CatalogService) GetSong(ctx context.Context, id uint) (*models.Song, error) {
	var song models.Song
	if err := s.db.WithContext(ctx).First(&song, id).Error; err != nil {
		return nil, storeErr(err, "song")
	}
	return &song, nil
}

func (s *CatalogService) CreateSong(ctx context.Context, in SongInput) (*models.Song, error) {
	if in.Title == nil || in.ArtistID == nil || in.AlbumID == nil || in.Duration == nil {
		return nil, invalid("title, artist, album and duration are required")
	}

	var song models.Song
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := applySong(tx, &song, in); err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Create(&song).Error
	})
	if err != nil {
		return nil, storeErr(err, "song")
	}
	return &song, nil
}

func (s *CatalogService) UpdateSong(ctx context.Context, id uint, in SongInput) (*models.Song, error) {
	var song models.Song
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&song, id).Error; err != nil {
			return err
		}
		if err := applySong(tx, &song, in); err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Save(&song).Error
	})
	if err != nil {
		return nil, storeErr(err, "song")
	}
	return &song, nil
}

func (s *CatalogService) DeleteSong(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Song{}, id)
	if res.Error != nil {
		return storeErr(res.Error, "song")
	}
	if res.RowsAffected == 0 {
		return storeErr(gorm.ErrRecordNotFound, "song")
	}
	return nil
}

func applySong(tx *gorm.DB, song *models.Song, in SongInput) error {
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return invalid("song title is required")
		}
		song.Title = title
	}
	if in.Author != nil {
		song.Author = strings.TrimSpace(*in.Author)
	}
	if in.Duration != nil {
		if *in.Duration < 0 {
			return invalid("duration must not be negative")
		}
		song.Duration = *in.Duration
	}
	if in.ArtistID != nil {
		if err := mustExist(tx, &models.Artist{}, *in.ArtistID, "artist"); err != nil {
			return err
		}
		song.ArtistID = *in.ArtistID
	}
	if in.AlbumID != nil {
		if err := mustExist(tx, &models.Album{}, *in.AlbumID, "album"); err != nil {
			return err
		}
		song.AlbumID = *in.AlbumID
	}
	return nil
}

// mustExist turns a dangling reference into an input error rather than a 404
// for the song itself.
func mustExist(tx *gorm.DB, model interface{}, id uint, what string) error {
	err := tx.Select("id").First(model, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return invalid("%s %d does not exist", what, id)
	}
	return err
}
