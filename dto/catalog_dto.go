package dto

import (
	"github.com/faizan/catalog/models"
	"github.com/faizan/catalog/service"
)

type ArtistRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}

type ArtistResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func NewArtistResponse(a models.Artist) ArtistResponse {
	return ArtistResponse{ID: a.ID, Name: a.Name}
}

func NewArtistResponses(artists []models.Artist) []ArtistResponse {
	out := make([]ArtistResponse, 0, len(artists))
	for _, a := range artists {
		out = append(out, NewArtistResponse(a))
	}
	return out
}

// AlbumArtist is the artist nested in an album: only the name travels, and
// it is resolved to a stored artist on write.
type AlbumArtist struct {
	Name string `json:"name" binding:"required,max=255"`
}

// AlbumRequest is the body of POST and PUT on albums.
type AlbumRequest struct {
	Title       *string      `json:"title" binding:"required"`
	Artist      *AlbumArtist `json:"artist" binding:"required"`
	ReleaseYear *int         `json:"release_year" binding:"required"`
}

func (r AlbumRequest) Input() service.AlbumInput {
	return AlbumPatchRequest(r).Input()
}

// AlbumPatchRequest is the body of PATCH on albums; every field is optional.
type AlbumPatchRequest struct {
	Title       *string      `json:"title"`
	Artist      *AlbumArtist `json:"artist"`
	ReleaseYear *int         `json:"release_year"`
}

func (r AlbumPatchRequest) Input() service.AlbumInput {
	in := service.AlbumInput{Title: r.Title, ReleaseYear: r.ReleaseYear}
	if r.Artist != nil {
		name := r.Artist.Name
		in.ArtistName = &name
	}
	return in
}

type AlbumResponse struct {
	ID          uint        `json:"id"`
	Title       string      `json:"title"`
	Artist      AlbumArtist `json:"artist"`
	ReleaseYear int         `json:"release_year"`
}

func NewAlbumResponse(a models.Album) AlbumResponse {
	return AlbumResponse{
		ID:          a.ID,
		Title:       a.Title,
		Artist:      AlbumArtist{Name: a.Artist.Name},
		ReleaseYear: a.ReleaseYear,
	}
}

func NewAlbumResponses(albums []models.Album) []AlbumResponse {
	out := make([]AlbumResponse, 0, len(albums))
	for _, a := range albums {
		out = append(out, NewAlbumResponse(a))
	}
	return out
}

// SongRequest is the body of POST and PUT on songs. Artist and album are
// hyperlinks to existing resources.
type SongRequest struct {
	Author   *string `json:"author" binding:"required"`
	Title    *string `json:"title" binding:"required"`
	Artist   *string `json:"artist" binding:"required"`
	Album    *string `json:"album" binding:"required"`
	Duration *int    `json:"duration" binding:"required"`
}

func (r SongRequest) Input() (service.SongInput, error) {
	return SongPatchRequest(r).Input()
}

type SongPatchRequest struct {
	Author   *string `json:"author"`
	Title    *string `json:"title"`
	Artist   *string `json:"artist"`
	Album    *string `json:"album"`
	Duration *int    `json:"duration"`
}

func (r SongPatchRequest) Input() (service.SongInput, error) {
	in := service.SongInput{Author: r.Author, Title: r.Title, Duration: r.Duration}
	if r.Artist != nil {
		id, err := ParseLink(*r.Artist, ResourceArtists)
		if err != nil {
			return in, err
		}
		in.ArtistID = &id
	}
	if r.Album != nil {
		id, err := ParseLink(*r.Album, ResourceAlbums)
		if err != nil {
			return in, err
		}
		in.AlbumID = &id
	}
	return in, nil
}

type SongResponse struct {
	ID       uint   `json:"id"`
	Author   string `json:"author"`
	Title    string `json:"title"`
	Artist   string `json:"artist"`
	Album    string `json:"album"`
	Duration int    `json:"duration"`
}

func NewSongResponse(l Linker, s models.Song) SongResponse {
	return SongResponse{
		ID:       s.ID,
		Author:   s.Author,
		Title:    s.Title,
		Artist:   l.Item(ResourceArtists, s.ArtistID),
		Album:    l.Item(ResourceAlbums, s.AlbumID),
		Duration: s.Duration,
	}
}

func NewSongResponses(l Linker, songs []models.Song) []SongResponse {
	out := make([]SongResponse, 0, len(songs))
	for _, s := range songs {
		out = append(out, NewSongResponse(l, s))
	}
	return out
}

type ImportResponse struct {
	Album         AlbumResponse  `json:"album"`
	Songs         []SongResponse `json:"songs"`
	ArtistCreated bool           `json:"artist_created"`
	AlbumCreated  bool           `json:"album_created"`
}

func NewImportResponse(l Linker, r *service.ImportResult) ImportResponse {
	return ImportResponse{
		Album:         NewAlbumResponse(r.Album),
		Songs:         NewSongResponses(l, r.Songs),
		ArtistCreated: r.ArtistCreated,
		AlbumCreated:  r.AlbumCreated,
	}
}
