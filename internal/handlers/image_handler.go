package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "dreamfund/internal/errors"
	"dreamfund/internal/services"
)

// ImageHandler handles dream image uploads
type ImageHandler struct {
	imageService services.ImageServicer
	auditService services.AuditServicer
	maxBytes     int64
}

// NewImageHandler creates a new ImageHandler
func NewImageHandler(imageService services.ImageServicer, auditService services.AuditServicer, maxBytes int64) *ImageHandler {
	return &ImageHandler{
		imageService: imageService,
		auditService: auditService,
		maxBytes:     maxBytes,
	}
}

// Upload stores a dream image and returns its public URL
// @Summary     Upload a dream image
// @Description Upload an image for the user's dream. The returned URL is then saved on the dream via PUT /dream. Only image/* types up to 5 MiB are accepted.
// @Tags        dream
// @Accept      multipart/form-data
// @Produce     json
// @Security    BearerAuth
// @Param       image formData file true "Image file"
// @Success     201 {object} map[string]string "Public image URL"
// @Failure     400 {object} ErrorResponse "Not an image or too large"
// @Failure     502 {object} ErrorResponse "Storage unavailable"
// @Router      /dream/image [post]
func (h *ImageHandler) Upload(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	// Cap the body before the multipart parser buffers anything.
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes)

	fileHeader, err := c.FormFile("image")
	if err != nil {
		// MaxBytesReader aborts the multipart parse when the cap is hit,
		// so an oversized body surfaces here rather than at the size
		// check in the service.
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			respondWithError(c, apperrors.ErrImageTooLarge)
			return
		}
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "no image file provided"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	url, err := h.imageService.Upload(c.Request.Context(), userID, file,
		contentType, fileHeader.Size, fileHeader.Filename)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "upload", "image", 0, c.ClientIP(), map[string]interface{}{
		"image_url": url,
		"size":      fileHeader.Size,
	})

	c.JSON(http.StatusCreated, gin.H{"image_url": url})
}
