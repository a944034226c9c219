package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"forwardicons/internal/domain"
	"forwardicons/internal/service"
)

// UploadHandler handles image upload and batch endpoints.
type UploadHandler struct {
	uploadService service.UploadService
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(uploadService service.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: uploadService}
}

// Upload handles POST /api/upload
// @Summary Upload icons
// @Description Forwards one or more images to the configured image host and records them in the catalog.
// @Description One file answers with a flat object; two or more answer with a results array.
// @Tags upload
// @Accept multipart/form-data
// @Produce json
// @Param source formData file true "Image file (repeat the field for several files)"
// @Param name formData string false "Display name; defaults to each filename without extension"
// @Success 200 {object} UploadResponse "Single file uploaded"
// @Success 200 {object} MultiUploadResponse "Several files processed"
// @Failure 400 {object} ErrorBody "Missing file"
// @Failure 500 {object} ErrorBody "Upload failed or service misconfigured"
// @Router /upload [post]
func (h *UploadHandler) Upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		respondFormError(c, err)
		return
	}
	headers := form.File["source"]
	if len(headers) == 0 {
		RespondError(c, http.StatusBadRequest, "no file uploaded", "")
		return
	}

	files := make([]domain.UploadFile, 0, len(headers))
	for _, fh := range headers {
		f, err := readFormFile(fh)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "invalid upload", err.Error())
			return
		}
		files = append(files, f)
	}

	input := service.UploadInput{Files: files, Name: strings.TrimSpace(c.PostForm("name"))}
	outcomes, err := h.uploadService.Upload(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	if len(headers) == 1 {
		h.respondSingle(c, outcomes[0])
		return
	}

	success := false
	for _, o := range outcomes {
		success = success || o.OK
	}
	c.JSON(http.StatusOK, MultiUploadResponse{Success: success, Results: outcomes})
}

func (h *UploadHandler) respondSingle(c *gin.Context, o domain.FileOutcome) {
	switch {
	case o.OK:
		c.JSON(http.StatusOK, UploadResponse{Success: true, Name: o.Name, URL: o.URL, Warning: o.Warning})
	case o.URL == "":
		RespondError(c, http.StatusInternalServerError, "image upload failed", o.Error)
	default:
		c.JSON(http.StatusInternalServerError, ErrorBody{Error: o.Error, Details: o.Warning + ": " + o.URL})
	}
}

// FinalizeBatch handles POST /api/finalize_batch
// @Summary Finalize pending batch
// @Description Merges every queued upload into the catalog in one write. An empty queue is a successful no-op.
// @Tags upload
// @Produce json
// @Success 200 {object} FinalizeResponse "Batch merged"
// @Failure 500 {object} ErrorBody "Catalog update failed; the queue is kept"
// @Router /finalize_batch [post]
func (h *UploadHandler) FinalizeBatch(c *gin.Context) {
	result, err := h.uploadService.FinalizeBatch(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, FinalizeResponse{Success: true, Merged: result.Merged, Icons: result.Icons})
}

// Pending handles GET /api/batch
// @Summary List pending batch
// @Description Lists uploads waiting for finalize, oldest first.
// @Tags upload
// @Produce json
// @Success 200 {object} PendingResponse "Pending entries"
// @Failure 500 {object} ErrorBody "Pending store unavailable"
// @Router /batch [get]
func (h *UploadHandler) Pending(c *gin.Context) {
	entries, err := h.uploadService.PendingEntries(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	if entries == nil {
		entries = []domain.PendingEntry{}
	}
	c.JSON(http.StatusOK, PendingResponse{Success: true, Pending: entries})
}
