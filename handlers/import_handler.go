package handlers

import (
	"net/http"

	"github.com/faizan/catalog/dto"
	"github.com/gin-gonic/gin"
)

// ImportAlbum godoc
// @Summary Import an album from Spotify
// @Description Fetches album and track metadata from Spotify by album id and stores it as artist, album and songs.
// @Tags albums
// @Produce json
// @Param spotify_id query string true "Spotify album id"
// @Success 200 {object} dto.ImportResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /albums/import/ [post]
func (h *CatalogHandler) ImportAlbum(c *gin.Context) {
	spotifyID := c.Query("spotify_id")
	if spotifyID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "spotify_id parameter is required"})
		return
	}

	result, err := h.svc.ImportAlbum(c.Request.Context(), spotifyID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	status := http.StatusOK
	if result.AlbumCreated {
		status = http.StatusCreated
	}
	c.JSON(status, dto.NewImportResponse(dto.NewLinker(c.Request), result))
}
