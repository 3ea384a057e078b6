package handler

import (
	"errors"
	"net/http"

	"localwear-be/internal/apperror"
	"localwear-be/internal/image"

	"github.com/gin-gonic/gin"
)

const imageFormField = "image"

type ImageHandler struct {
	images image.Service
}

func NewImageHandler(images image.Service) *ImageHandler {
	return &ImageHandler{images: images}
}

func (h *ImageHandler) Upload(c *gin.Context) {
	fh, err := c.FormFile(imageFormField)
	if errors.Is(err, http.ErrMissingFile) {
		respondError(c, apperror.BadRequest("Please select a file to upload"))
		return
	}
	if err != nil {
		badRequest(c, err)
		return
	}

	f, err := fh.Open()
	if err != nil {
		respondError(c, apperror.Internal("Failed to upload image: "+err.Error(), err))
		return
	}
	defer f.Close()

	url, err := h.images.Upload(c.Request.Context(), &image.File{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Content:     f,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"imageUrl": url})
}
