package handlers

import (
	"net/http"

	"github.com/faizan/catalog/dto"
	"github.com/faizan/catalog/service"
	"github.com/gin-gonic/gin"
)

// ListSongs godoc
// @Summary List songs
// @Tags songs
// @Produce json
// @Success 200 {array} dto.SongResponse
// @Failure 500 {object} ErrorResponse
// @Router /songs/ [get]
func (h *CatalogHandler) ListSongs(c *gin.Context) {
	songs, err := h.svc.ListSongs(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSongResponses(dto.NewLinker(c.Request), songs))
}

// GetSong godoc
// @Summary Get a song
// @Tags songs
// @Produce json
// @Param id path int true "Song id"
// @Success 200 {object} dto.SongResponse
// @Failure 404 {object} ErrorResponse
// @Router /songs/{id}/ [get]
func (h *CatalogHandler) GetSong(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	song, err := h.svc.GetSong(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSongResponse(dto.NewLinker(c.Request), *song))
}

// CreateSong godoc
// @Summary Create a song
// @Description Artist and album are hyperlinks to existing resources.
// @Tags songs
// @Accept json
// @Produce json
// @Param song body dto.SongRequest true "Song"
// @Success 201 {object} dto.SongResponse
// @Failure 400 {object} ErrorResponse
// @Router /songs/ [post]
func (h *CatalogHandler) CreateSong(c *gin.Context) {
	var req dto.SongRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	in, err := req.Input()
	if err != nil {
		badRequest(c, err)
		return
	}
	song, err := h.svc.CreateSong(c.Request.Context(), in)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewSongResponse(dto.NewLinker(c.Request), *song))
}

// UpdateSong godoc
// @Summary Replace a song
// @Tags songs
// @Accept json
// @Produce json
// @Param id path int true "Song id"
// @Param song body dto.SongRequest true "Song"
// @Success 200 {object} dto.SongResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /songs/{id}/ [put]
func (h *CatalogHandler) UpdateSong(c *gin.Context) {
	var req dto.SongRequest
	h.updateSong(c, &req, func() (service.SongInput, error) { return req.Input() })
}

// PatchSong godoc
// @Summary Update a song partially
// @Tags songs
// @Accept json
// @Produce json
// @Param id path int true "Song id"
// @Param song body dto.SongPatchRequest true "Song fields"
// @Success 200 {object} dto.SongResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /songs/{id}/ [patch]
func (h *CatalogHandler) PatchSong(c *gin.Context) {
	var req dto.SongPatchRequest
	h.updateSong(c, &req, func() (service.SongInput, error) { return req.Input() })
}

func (h *CatalogHandler) updateSong(c *gin.Context, req interface{}, input func() (service.SongInput, error)) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := c.ShouldBindJSON(req); err != nil {
		badRequest(c, err)
		return
	}
	in, err := input()
	if err != nil {
		badRequest(c, err)
		return
	}
	song, err := h.svc.UpdateSong(c.Request.Context(), id, in)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSongResponse(dto.NewLinker(c.Request), *song))
}

// DeleteSong godoc
// @Summary Delete a song
// @Tags songs
// @Param id path int true "Song id"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /songs/{id}/ [delete]
func (h *CatalogHandler) DeleteSong(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteSong(c.Request.Context(), id); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
