package handlers

import (
	"encoding/json"
	"net/http"
	"path"

	"github.com/rs/zerolog/log"

	"github.com/triply/triply-be/internal/services"
)

// maxUploadBytes caps a single image upload.
const maxUploadBytes = 10 << 20

// ImageHandler handles image upload and deletion.
type ImageHandler struct {
	service services.ImageServiceProvider
}

// NewImageHandler creates a new ImageHandler.
func NewImageHandler(service services.ImageServiceProvider) *ImageHandler {
	return &ImageHandler{service: service}
}

// Upload accepts a single multipart file under the "image" field, stores it,
// and returns a URL built from the request's own host.
func (h *ImageHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respondError(w, http.StatusBadRequest, "No file uploaded")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		respondError(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	filename, err := h.service.Save(header.Filename, file)
	if err != nil {
		log.Error().Err(err).Str("filename", header.Filename).Msg("Image upload failed")
		respondError(w, http.StatusBadRequest, "Failed to store image: "+err.Error())
		return
	}

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	imageURL := scheme + "://" + r.Host + "/uploads/" + filename

	respond(w, http.StatusOK, map[string]interface{}{
		"error":    false,
		"message":  "Image uploaded successfully",
		"imageUrl": imageURL,
		"filename": filename,
	})
}

// Delete removes a stored image given its public URL. A file that cannot be
// removed is reported as a server error, not silently ignored.
func (h *ImageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		ImageURL string `json:"imageUrl"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.ImageURL == "" {
		respondError(w, http.StatusBadRequest, "Image URL is required")
		return
	}

	filename := path.Base(payload.ImageURL)
	if err := h.service.Delete(filename); err != nil {
		log.Error().Err(err).Str("filename", filename).Msg("Failed to delete image")
		respondError(w, http.StatusInternalServerError, "Failed to delete image")
		return
	}

	respond(w, http.StatusOK, map[string]interface{}{
		"error":   false,
		"message": "Image deleted successfully",
	})
}
