package handlers

import (
	"net/http"

	"github.com/faizan/catalog/dto"
	"github.com/faizan/catalog/service"
	"github.com/gin-gonic/gin"
)

// ListAlbums godoc
// @Summary List albums
// @Tags albums
// @Produce json
// @Success 200 {array} dto.AlbumResponse
// @Failure 500 {object} ErrorResponse
// @Router /albums/ [get]
func (h *CatalogHandler) ListAlbums(c *gin.Context) {
	albums, err := h.svc.ListAlbums(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAlbumResponses(albums))
}

// GetAlbum godoc
// @Summary Get an album
// @Tags albums
// @Produce json
// @Param id path int true "Album id"
// @Success 200 {object} dto.AlbumResponse
// @Failure 404 {object} ErrorResponse
// @Router /albums/{id}/ [get]
func (h *CatalogHandler) GetAlbum(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	album, err := h.svc.GetAlbum(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAlbumResponse(*album))
}

// CreateAlbum godoc
// @Summary Create an album
// @Description Creates the album; the nested artist is looked up by name and created when missing.
// @Tags albums
// @Accept json
// @Produce json
// @Param album body dto.AlbumRequest true "Album"
// @Success 201 {object} dto.AlbumResponse
// @Failure 400 {object} ErrorResponse
// @Router /albums/ [post]
func (h *CatalogHandler) CreateAlbum(c *gin.Context) {
	var req dto.AlbumRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	album, err := h.svc.CreateAlbum(c.Request.Context(), req.Input())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewAlbumResponse(*album))
}

// UpdateAlbum godoc
// @Summary Replace an album
// @Tags albums
// @Accept json
// @Produce json
// @Param id path int true "Album id"
// @Param album body dto.AlbumRequest true "Album"
// @Success 200 {object} dto.AlbumResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /albums/{id}/ [put]
func (h *CatalogHandler) UpdateAlbum(c *gin.Context) {
	var req dto.AlbumRequest
	h.updateAlbum(c, &req, func() service.AlbumInput { return req.Input() })
}

// PatchAlbum godoc
// @Summary Update an album partially
// @Description Overwrites only the fields present in the body. A supplied artist is looked up by name again and reassigned.
// @Tags albums
// @Accept json
// @Produce json
// @Param id path int true "Album id"
// @Param album body dto.AlbumPatchRequest true "Album fields"
// @Success 200 {object} dto.AlbumResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /albums/{id}/ [patch]
func (h *CatalogHandler) PatchAlbum(c *gin.Context) {
	var req dto.AlbumPatchRequest
	h.updateAlbum(c, &req, func() service.AlbumInput { return req.Input() })
}

func (h *CatalogHandler) updateAlbum(c *gin.Context, req interface{}, input func() service.AlbumInput) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := c.ShouldBindJSON(req); err != nil {
		badRequest(c, err)
		return
	}
	album, err := h.svc.UpdateAlbum(c.Request.Context(), id, input())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAlbumResponse(*album))
}

// DeleteAlbum godoc
// @Summary Delete an album with its songs
// @Tags albums
// @Param id path int true "Album id"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /albums/{id}/ [delete]
func (h *CatalogHandler) DeleteAlbum(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteAlbum(c.Request.Context(), id); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
