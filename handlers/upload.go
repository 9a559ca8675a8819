package handlers

import (
	"net/http"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gin-gonic/gin"

	"gaadi/pkg/logger"
)

// UploadPhoto handles POST /api/upload-photo: multipart image in,
// hosted URL out. Driver photos and vehicle gallery images both go
// through here before being attached via the update engine.
func (h *Handler) UploadPhoto(c *gin.Context) {
	if h.cfg.CloudinaryURL == "" {
		respondError(c, http.StatusServiceUnavailable, "Image hosting not configured")
		return
	}

	if err := c.Request.ParseMultipartForm(10 << 20); err != nil {
		respondError(c, http.StatusBadRequest, "Failed to parse form data")
		return
	}

	photoFile, _, err := c.Request.FormFile("photo")
	if err != nil {
		respondError(c, http.StatusBadRequest, "No photo file provided")
		return
	}
	defer photoFile.Close()

	cld, err := cloudinary.NewFromURL(h.cfg.CloudinaryURL)
	if err != nil {
		h.log.Error("cloudinary configuration error", logger.Error(err))
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	uploadParams := uploader.UploadParams{
		Folder:         "gaadi/photos",
		PublicID:       time.Now().Format("20060102150405"),
		Transformation: "c_limit,w_800,h_800,q_auto",
	}

	uploadResult, err := cld.Upload.Upload(ctx, photoFile, uploadParams)
	if err != nil {
		h.log.Error("cloudinary upload failed", logger.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to upload photo")
		return
	}

	respondData(c, http.StatusOK, gin.H{"url": uploadResult.SecureURL})
}
