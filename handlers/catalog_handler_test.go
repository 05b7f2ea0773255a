package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/faizan/catalog/config"
	"github.com/faizan/catalog/dto"
	"github.com/faizan/catalog/models"
	"github.com/faizan/catalog/service"
	"github.com/faizan/catalog/source"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testAPI struct {
	t      *testing.T
	db     *gorm.DB
	router *gin.Engine
}

func newTestAPI(t *testing.T, opts ...service.Option) *testAPI {
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
	return &testAPI{t: t, db: db, router: SetupRouter(service.NewCatalogService(db, opts...))}
}

func (a *testAPI) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(a.t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Host = "example.com"
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testAPI) count(model interface{}) int64 {
	var n int64
	require.NoError(a.t, a.db.Model(model).Count(&n).Error)
	return n
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestCreateAlbum_CreatesArtist(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(http.MethodPost, "/albums/", `{"title": "OK Computer", "artist": {"name": "Radiohead"}, "release_year": 1997}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	got := decode[dto.AlbumResponse](t, w)
	assert.NotZero(t, got.ID)
	assert.Equal(t, "OK Computer", got.Title)
	assert.Equal(t, "Radiohead", got.Artist.Name)
	assert.Equal(t, 1997, got.ReleaseYear)

	assert.EqualValues(t, 1, api.count(&models.Artist{}))
	assert.EqualValues(t, 1, api.count(&models.Album{}))

	w = api.do(http.MethodPost, "/albums/", `{"title": "Kid A", "artist": {"name": "Radiohead"}, "release_year": 2000}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.EqualValues(t, 1, api.count(&models.Artist{}), "existing artist is reused")
	assert.EqualValues(t, 2, api.count(&models.Album{}))

	w = api.do(http.MethodGet, "/artists/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	artists := decode[[]dto.ArtistResponse](t, w)
	require.Len(t, artists, 1)
	assert.Equal(t, "Radiohead", artists[0].Name)
}

func TestCreateAlbum_BadRequest(t *testing.T) {
	api := newTestAPI(t)

	bodies := []string{
		`{"artist": {"name": "Radiohead"}, "release_year": 1997}`,
		`{"title": "OK Computer", "release_year": 1997}`,
		`{"title": "OK Computer", "artist": {}, "release_year": 1997}`,
		`{"title": "OK Computer", "artist": {"name": "Radiohead"}}`,
		`{"title": "OK Computer", "artist": {"name": "Radiohead"}, "release_year": "soon"}`,
		`not json`,
	}
	for _, body := range bodies {
		w := api.do(http.MethodPost, "/albums/", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.Contains(t, w.Body.String(), `"error"`)
	}
	assert.EqualValues(t, 0, api.count(&models.Artist{}))
}

func TestUpdateAlbum(t *testing.T) {
	api := newTestAPI(t)
	w := api.do(http.MethodPost, "/albums/", `{"title": "OK Computer", "artist": {"name": "Radiohead"}, "release_year": 1996}`)
	require.Equal(t, http.StatusCreated, w.Code)
	id := decode[dto.AlbumResponse](t, w).ID
	path := fmt.Sprintf("/albums/%d/", id)

	w = api.do(http.MethodPatch, path, `{"release_year": 1997}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	got := decode[dto.AlbumResponse](t, w)
	assert.Equal(t, "OK Computer", got.Title)
	assert.Equal(t, 1997, got.ReleaseYear)
	assert.Equal(t, "Radiohead", got.Artist.Name)

	w = api.do(http.MethodPut, path, `{"title": "OK Computer OKNOTOK", "artist": {"name": "Radiohead"}, "release_year": 2017}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "OK Computer OKNOTOK", decode[dto.AlbumResponse](t, w).Title)
	assert.EqualValues(t, 1, api.count(&models.Artist{}))

	w = api.do(http.MethodPatch, path, `{"artist": {"name": "Thom Yorke"}}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Thom Yorke", decode[dto.AlbumResponse](t, w).Artist.Name)
	assert.EqualValues(t, 2, api.count(&models.Artist{}))

	w = api.do(http.MethodPut, path, `{"title": "missing fields"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK Computer OKNOTOK", decode[dto.AlbumResponse](t, w).Title)

	w = api.do(http.MethodPut, "/albums/999/", `{"title": "x", "artist": {"name": "y"}, "release_year": 1}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestArtistEndpoints(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(http.MethodPost, "/artists/", `{"name": "Portishead"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	artist := decode[dto.ArtistResponse](t, w)

	w = api.do(http.MethodPost, "/artists/", `{"name": "Portishead"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = api.do(http.MethodPost, "/artists/", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(http.MethodPatch, fmt.Sprintf("/artists/%d/", artist.ID), `{"name": "Beth Gibbons"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Beth Gibbons", decode[dto.ArtistResponse](t, w).Name)

	w = api.do(http.MethodGet, fmt.Sprintf("/artists/%d/", artist.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Beth Gibbons", decode[dto.ArtistResponse](t, w).Name)

	w = api.do(http.MethodDelete, fmt.Sprintf("/artists/%d/", artist.ID), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = api.do(http.MethodGet, fmt.Sprintf("/artists/%d/", artist.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = api.do(http.MethodGet, "/artists/abc/", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSongEndpoints(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(http.MethodGet, "/songs/", nil)
	require.Equal(t, http.StatusOK, w.Code, "songs are routed")
	assert.JSONEq(t, `[]`, w.Body.String())

	w = api.do(http.MethodPost, "/albums/", `{"title": "Dummy", "artist": {"name": "Portishead"}, "release_year": 1994}`)
	require.Equal(t, http.StatusCreated, w.Code)
	album := decode[dto.AlbumResponse](t, w)

	var artist models.Artist
	require.NoError(t, api.db.Where("name = ?", "Portishead").First(&artist).Error)

	body := map[string]interface{}{
		"author":   "Gibbons, Barrow, Utley",
		"title":    "Roads",
		"artist":   fmt.Sprintf("http://example.com/artists/%d/", artist.ID),
		"album":    fmt.Sprintf("http://example.com/albums/%d/", album.ID),
		"duration": 305,
	}
	w = api.do(http.MethodPost, "/songs/", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	song := decode[dto.SongResponse](t, w)
	assert.Equal(t, body["artist"], song.Artist)
	assert.Equal(t, body["album"], song.Album)
	assert.Equal(t, 305, song.Duration)

	songPath := fmt.Sprintf("/songs/%d/", song.ID)
	w = api.do(http.MethodPatch, songPath, `{"duration": 304}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Roads", decode[dto.SongResponse](t, w).Title)

	w = api.do(http.MethodGet, songPath, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 304, decode[dto.SongResponse](t, w).Duration)

	body["album"] = "http://example.com/albums/999/"
	w = api.do(http.MethodPost, "/songs/", body)
	assert.Equal(t, http.StatusBadRequest, w.Code, "dangling album hyperlink")

	body["album"] = fmt.Sprintf("http://example.com/artists/%d/", artist.ID)
	w = api.do(http.MethodPost, "/songs/", body)
	assert.Equal(t, http.StatusBadRequest, w.Code, "hyperlink to the wrong resource")

	w = api.do(http.MethodDelete, fmt.Sprintf("/albums/%d/", album.ID), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = api.do(http.MethodGet, songPath, nil)
	assert.Equal(t, http.StatusNotFound, w.Code, "songs go with their album")
}

type stubSource struct{ album *source.Album }

func (s stubSource) FetchAlbum(ctx context.Context, id string) (*source.Album, error) {
	if id == "bad!" {
		return nil, fmt.Errorf("spotify album %s: invalid id: %w", id, source.ErrInvalidAlbumID)
	}
	if s.album == nil || s.album.ID != id {
		return nil, source.ErrAlbumNotFound
	}
	return s.album, nil
}

func TestImportAlbum(t *testing.T) {
	api := newTestAPI(t, service.WithAlbumSource(stubSource{album: &source.Album{
		ID:          "3mH6qwIy9crq0I9YQbOuDf",
		Title:       "Blonde",
		Artists:     []string{"Frank Ocean"},
		ReleaseYear: 2016,
		Tracks:      []source.Track{{Title: "Nikes", Artists: []string{"Frank Ocean"}, Duration: 314 * time.Second}},
	}}))

	w := api.do(http.MethodPost, "/albums/import/", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(http.MethodPost, "/albums/import/?spotify_id=3mH6qwIy9crq0I9YQbOuDf", nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	got := decode[dto.ImportResponse](t, w)
	assert.Equal(t, "Blonde", got.Album.Title)
	require.Len(t, got.Songs, 1)
	assert.Equal(t, 314, got.Songs[0].Duration)

	w = api.do(http.MethodPost, "/albums/import/?spotify_id=3mH6qwIy9crq0I9YQbOuDf", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = api.do(http.MethodPost, "/albums/import/?spotify_id=unknown", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = api.do(http.MethodPost, "/albums/import/?spotify_id=bad!", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
}

func TestImportAlbum_NotConfigured(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(http.MethodPost, "/albums/import/?spotify_id=x", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRootAndMiddleware(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"artists": "http://example.com/artists/",
		"albums": "http://example.com/albums/",
		"songs": "http://example.com/songs/"
	}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()
	api.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))

	w = api.do(http.MethodGet, "/artists", nil)
	assert.Equal(t, http.StatusMovedPermanently, w.Code)
	assert.Equal(t, "/artists/", w.Header().Get("Location"))
}
