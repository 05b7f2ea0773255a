package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/faizan/catalog/models"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AlbumInput carries the writable album fields. A nil field is left unchanged
// on update.
type AlbumInput struct {
	Title       *string
	ArtistName  *string
	ReleaseYear *int
}

func (s *CatalogService) ListAlbums(ctx context.Context) ([]models.Album, error) {
	albums := []models.Album{}
	if err := s.db.WithContext(ctx).Preload("Artist").Order("id").Find(&albums).Error; err != nil {
		return nil, storeErr(err, "albums")
	}
	return albums, nil
}

func (s *CatalogService) GetAlbum(ctx context.Context, id uint) (*models.Album, error) {
	var album models.Album
	if err := s.db.WithContext(ctx).Preload("Artist").First(&album, id).Error; err != nil {
		return nil, storeErr(err, "album")
	}
	return &album, nil
}

// CreateAlbum resolves the artist by name, creating it when missing, and
// inserts the album referencing it.
func (s *CatalogService) CreateAlbum(ctx context.Context, in AlbumInput) (*models.Album, error) {
	if in.Title == nil || in.ArtistName == nil || in.ReleaseYear == nil {
		return nil, invalid("title, artist and release_year are required")
	}
	title, err := albumTitle(*in.Title)
	if err != nil {
		return nil, err
	}

	var album models.Album
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		artist, _, err := ensureArtist(tx, *in.ArtistName)
		if err != nil {
			return err
		}
		album = models.Album{
			Title:       title,
			ReleaseYear: *in.ReleaseYear,
			ArtistID:    artist.ID,
		}
		if err := tx.Omit(clause.Associations).Create(&album).Error; err != nil {
			return err
		}
		album.Artist = *artist
		return nil
	})
	if err != nil {
		return nil, storeErr(err, "album")
	}
	log.Debug().Uint("album_id", album.ID).Uint("artist_id", album.ArtistID).Msg("album created")
	return &album, nil
}

// UpdateAlbum overwrites the supplied fields and keeps the others. When an
// artist name is supplied it is resolved again and always reassigned, even if
// it names the current artist.
func (s *CatalogService) UpdateAlbum(ctx context.Context, id uint, in AlbumInput) (*models.Album, error) {
	var album models.Album
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Artist").First(&album, id).Error; err != nil {
			return err
		}

		if in.ArtistName != nil {
			artist, _, err := ensureArtist(tx, *in.ArtistName)
			if err != nil {
				return err
			}
			album.ArtistID = artist.ID
			album.Artist = *artist
		}
		if in.Title != nil {
			title, err := albumTitle(*in.Title)
			if err != nil {
				return err
			}
			album.Title = title
		}
		if in.ReleaseYear != nil {
			album.ReleaseYear = *in.ReleaseYear
		}
		return tx.Omit(clause.Associations).Save(&album).Error
	})
	if err != nil {
		return nil, storeErr(err, "album")
	}
	return &album, nil
}

// DeleteAlbum removes the album and its songs.
func (s *CatalogService) DeleteAlbum(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var album models.Album
		if err := tx.First(&album, id).Error; err != nil {
			return err
		}
		if err := tx.Where("album_id = ?", id).Delete(&models.Song{}).Error; err != nil {
			return err
		}
		return tx.Delete(&album).Error
	})
	return storeErr(err, "album")
}

func albumTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", invalid("album title is required")
	}
	if utf8.RuneCountInString(title) > 255 {
		return "", invalid("album title is longer than 255 characters")
	}
	return title, nil
}
