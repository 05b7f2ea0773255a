package handlers

import (
	"net/http"

	"github.com/faizan/catalog/dto"
	"github.com/gin-gonic/gin"
)

// ListArtists godoc
// @Summary List artists
// @Tags artists
// @Produce json
// @Success 200 {array} dto.ArtistResponse
// @Failure 500 {object} ErrorResponse
// @Router /artists/ [get]
func (h *CatalogHandler) ListArtists(c *gin.Context) {
	artists, err := h.svc.ListArtists(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewArtistResponses(artists))
}

// GetArtist godoc
// @Summary Get an artist
// @Tags artists
// @Produce json
// @Param id path int true "Artist id"
// @Success 200 {object} dto.ArtistResponse
// @Failure 404 {object} ErrorResponse
// @Router /artists/{id}/ [get]
func (h *CatalogHandler) GetArtist(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	artist, err := h.svc.GetArtist(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewArtistResponse(*artist))
}

// CreateArtist godoc
// @Summary Create an artist
// @Tags artists
// @Accept json
// @Produce json
// @Param artist body dto.ArtistRequest true "Artist"
// @Success 201 {object} dto.ArtistResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /artists/ [post]
func (h *CatalogHandler) CreateArtist(c *gin.Context) {
	var req dto.ArtistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	artist, err := h.svc.CreateArtist(c.Request.Context(), req.Name)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewArtistResponse(*artist))
}

// UpdateArtist godoc
// @Summary Rename an artist
// @Description Serves PUT and PATCH alike: name is the only field.
// @Tags artists
// @Accept json
// @Produce json
// @Param id path int true "Artist id"
// @Param artist body dto.ArtistRequest true "Artist"
// @Success 200 {object} dto.ArtistResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /artists/{id}/ [put]
// @Router /artists/{id}/ [patch]
func (h *CatalogHandler) UpdateArtist(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.ArtistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	artist, err := h.svc.UpdateArtist(c.Request.Context(), id, req.Name)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewArtistResponse(*artist))
}

// DeleteArtist godoc
// @Summary Delete an artist with its albums and songs
// @Tags artists
// @Param id path int true "Artist id"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /artists/{id}/ [delete]
func (h *CatalogHandler) DeleteArtist(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteArtist(c.Request.Context(), id); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
