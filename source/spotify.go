// Package source fetches album metadata from external catalogs.
package source

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/zmb3/spotify"
	"golang.org/x/oauth2/clientcredentials"
)

var (
	ErrAlbumNotFound  = errors.New("album not found")
	ErrInvalidAlbumID = errors.New("invalid album id")
)

type Album struct {
	ID          string
	Title       string
	Artists     []string
	ReleaseYear int
	Tracks      []Track
}

type Track struct {
	Title    string
	Artists  []string
	Duration time.Duration
}

// Spotify reads albums from the Spotify Web API using the client-credentials
// flow.
type Spotify struct {
	config *clientcredentials.Config
}

func NewSpotify(clientID, clientSecret string) *Spotify {
	return &Spotify{config: &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     spotify.TokenURL,
	}}
}

func (s *Spotify) FetchAlbum(ctx context.Context, id string) (*Album, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("spotify album id is required: %w", ErrInvalidAlbumID)
	}

	token, err := s.config.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get Spotify API token: %w", err)
	}
	client := spotify.Authenticator{}.NewClient(token)

	full, err := client.GetAlbum(spotify.ID(id))
	if err != nil {
		return nil, fetchError(id, err)
	}
	// TODO: follow full.Tracks.Next for albums with more than 50 tracks.
	return convertAlbum(full), nil
}

// fetchError separates client mistakes (unknown or malformed id) from
// failures of the API itself.
func fetchError(id string, err error) error {
	var apiErr spotify.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Status {
		case http.StatusNotFound:
			return fmt.Errorf("spotify album %s: %w", id, ErrAlbumNotFound)
		case http.StatusBadRequest:
			return fmt.Errorf("spotify album %s: %s: %w", id, apiErr.Message, ErrInvalidAlbumID)
		}
	}
	return fmt.Errorf("failed to fetch album: %w", err)
}

func convertAlbum(full *spotify.FullAlbum) *Album {
	album := &Album{
		ID:          string(full.ID),
		Title:       full.Name,
		Artists:     artistNames(full.Artists),
		ReleaseYear: releaseYear(full.ReleaseDate),
	}
	for _, t := range full.Tracks.Tracks {
		album.Tracks = append(album.Tracks, Track{
			Title:    t.Name,
			Artists:  artistNames(t.Artists),
			Duration: time.Duration(t.Duration) * time.Millisecond,
		})
	}
	return album
}

func artistNames(artists []spotify.SimpleArtist) []string {
	names := make([]string, 0, len(artists))
	for _, a := range artists {
		names = append(names, a.Name)
	}
	return names
}

// releaseYear accepts the "1997", "1997-05" and "1997-05-21" precisions.
func releaseYear(date string) int {
	if len(date) < 4 {
		return 0
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return year
}
