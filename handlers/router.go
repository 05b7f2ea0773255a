package handlers

import (
	"context"
	"net/http"

	"github.com/faizan/catalog/dto"
	"github.com/faizan/catalog/models"
	"github.com/faizan/catalog/service"
	"github.com/gin-gonic/gin"
)

// Catalog is the set of operations the HTTP layer needs.
type Catalog interface {
	Ping(ctx context.Context) error

	ListArtists(ctx context.Context) ([]models.Artist, error)
	GetArtist(ctx context.Context, id uint) (*models.Artist, error)
	CreateArtist(ctx context.Context, name string) (*models.Artist, error)
	UpdateArtist(ctx context.Context, id uint, name string) (*models.Artist, error)
	DeleteArtist(ctx context.Context, id uint) error

	ListAlbums(ctx context.Context) ([]models.Album, error)
	GetAlbum(ctx context.Context, id uint) (*models.Album, error)
	CreateAlbum(ctx context.Context, in service.AlbumInput) (*models.Album, error)
	UpdateAlbum(ctx context.Context, id uint, in service.AlbumInput) (*models.Album, error)
	DeleteAlbum(ctx context.Context, id uint) error

	ListSongs(ctx context.Context) ([]models.Song, error)
	GetSong(ctx context.Context, id uint) (*models.Song, error)
	CreateSong(ctx context.Context, in service.SongInput) (*models.Song, error)
	UpdateSong(ctx context.Context, id uint, in service.SongInput) (*models.Song, error)
	DeleteSong(ctx context.Context, id uint) error

	ImportAlbum(ctx context.Context, id string) (*service.ImportResult, error)
}

type CatalogHandler struct {
	svc Catalog
}

func NewCatalogHandler(svc Catalog) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

// SetupRouter builds the gin engine with middleware and the catalog routes.
func SetupRouter(svc Catalog) *gin.Engine {
	r := gin.New()
	r.Use(RequestID(), RequestLogger(), gin.Recovery())

	NewCatalogHandler(svc).RegisterRoutes(r)
	return r
}

func (h *CatalogHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/", h.APIRoot)
	r.GET("/healthz", h.Health)

	artists := r.Group("/" + dto.ResourceArtists)
	artists.GET("/", h.ListArtists)
	artists.POST("/", h.CreateArtist)
	artists.GET("/:id/", h.GetArtist)
	artists.PUT("/:id/", h.UpdateArtist)
	artists.PATCH("/:id/", h.UpdateArtist)
	artists.DELETE("/:id/", h.DeleteArtist)

	albums := r.Group("/" + dto.ResourceAlbums)
	albums.GET("/", h.ListAlbums)
	albums.POST("/", h.CreateAlbum)
	albums.POST("/import/", h.ImportAlbum)
	albums.GET("/:id/", h.GetAlbum)
	albums.PUT("/:id/", h.UpdateAlbum)
	albums.PATCH("/:id/", h.PatchAlbum)
	albums.DELETE("/:id/", h.DeleteAlbum)

	songs := r.Group("/" + dto.ResourceSongs)
	songs.GET("/", h.ListSongs)
	songs.POST("/", h.CreateSong)
	songs.GET("/:id/", h.GetSong)
	songs.PUT("/:id/", h.UpdateSong)
	songs.PATCH("/:id/", h.PatchSong)
	songs.DELETE("/:id/", h.DeleteSong)
}

// APIRoot lists the collection endpoints.
func (h *CatalogHandler) APIRoot(c *gin.Context) {
	l := dto.NewLinker(c.Request)
	c.JSON(http.StatusOK, gin.H{
		dto.ResourceArtists: l.Collection(dto.ResourceArtists),
		dto.ResourceAlbums:  l.Collection(dto.ResourceAlbums),
		dto.ResourceSongs:   l.Collection(dto.ResourceSongs),
	})
}

func (h *CatalogHandler) Health(c *gin.Context) {
	if err := h.svc.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "database unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// pathID reads the :id parameter, answering 404 for ids that cannot exist.
func pathID(c *gin.Context) (uint, bool) {
	id, err := dto.ParseID(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
		return 0, false
	}
	return id, true
}
