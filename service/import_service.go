package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/faizan/catalog/models"
	"github.com/faizan/catalog/source"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AlbumSource interface {
	FetchAlbum(ctx context.Context, id string) (*source.Album, error)
}

type ImportResult struct {
	Album         models.Album
	Songs         []models.Song
	ArtistCreated bool
	AlbumCreated  bool
}

// ImportAlbum fetches an album from the configured source and stores it as
// artist, album and songs. Importing the same album again updates the rows
// in place.
func (s *CatalogService) ImportAlbum(ctx context.Context, id string) (*ImportResult, error) {
	if s.source == nil {
		return nil, fmt.Errorf("album import is not configured: %w", ErrSourceUnavailable)
	}
	if strings.TrimSpace(id) == "" {
		return nil, invalid("source album id is required")
	}

	fetched, err := s.source.FetchAlbum(ctx, id)
	if err != nil {
		if errors.Is(err, source.ErrAlbumNotFound) {
			return nil, fmt.Errorf("source album %s %w", id, ErrNotFound)
		}
		if errors.Is(err, source.ErrInvalidAlbumID) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return nil, fmt.Errorf("%v: %w", err, ErrSourceUnavailable)
	}
	if len(fetched.Artists) == 0 {
		return nil, invalid("source album %s has no artist", id)
	}

	result := &ImportResult{}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		artist, created, err := ensureArtist(tx, fetched.Artists[0])
		if err != nil {
			return err
		}
		result.ArtistCreated = created

		album, created, err := upsertAlbum(tx, artist, fetched)
		if err != nil {
			return err
		}
		result.AlbumCreated = created
		result.Album = *album

		type trackKey struct {
			title    string
			duration int
		}
		seen := make(map[trackKey]bool, len(fetched.Tracks))
		for _, t := range fetched.Tracks {
			key := trackKey{strings.TrimSpace(t.Title), int(t.Duration / time.Second)}
			if seen[key] {
				log.Warn().Str("source_id", id).Str("title", key.title).Msg("skipping repeated track")
				continue
			}
			seen[key] = true

			song, err := upsertSong(tx, album, t)
			if err != nil {
				return err
			}
			result.Songs = append(result.Songs, *song)
		}
		return nil
	})
	if err != nil {
		return nil, storeErr(err, "album")
	}

	log.Info().
		Str("source_id", id).
		Uint("album_id", result.Album.ID).
		Int("songs", len(result.Songs)).
		Bool("album_created", result.AlbumCreated).
		Msg("album imported")
	return result, nil
}

func upsertAlbum(tx *gorm.DB, artist *models.Artist, fetched *source.Album) (*models.Album, bool, error) {
	title, err := albumTitle(fetched.Title)
	if err != nil {
		return nil, false, err
	}

	var album models.Album
	err = tx.Where("artist_id = ? AND title = ?", artist.ID, title).First(&album).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		album = models.Album{Title: title, ReleaseYear: fetched.ReleaseYear, ArtistID: artist.ID}
		if err := tx.Omit(clause.Associations).Create(&album).Error; err != nil {
			return nil, false, err
		}
		album.Artist = *artist
		return &album, true, nil
	case err != nil:
		return nil, false, err
	}

	album.ReleaseYear = fetched.ReleaseYear
	if err := tx.Omit(clause.Associations).Save(&album).Error; err != nil {
		return nil, false, err
	}
	album.Artist = *artist
	return &album, false, nil
}

// upsertSong keys songs on (album, title, duration): albums may carry
// several tracks with one title, such as two "Intro" tracks.
func upsertSong(tx *gorm.DB, album *models.Album, t source.Track) (*models.Song, error) {
	title := strings.TrimSpace(t.Title)
	if title == "" {
		return nil, invalid("source track without a title on album %q", album.Title)
	}
	duration := int(t.Duration / time.Second)

	var song models.Song
	err := tx.Where("album_id = ? AND title = ? AND duration = ?", album.ID, title, duration).First(&song).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	song.Title = title
	song.Author = strings.Join(t.Artists, ", ")
	song.ArtistID = album.ArtistID
	song.AlbumID = album.ID
	song.Duration = duration
	if err := tx.Omit(clause.Associations).Save(&song).Error; err != nil {
		return nil, err
	}
	return &song, nil
}
