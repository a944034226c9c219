package handler

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"forwardicons/internal/domain"
)

// readFormFile loads one uploaded file into memory.
func readFormFile(fh *multipart.FileHeader) (domain.UploadFile, error) {
	f, err := fh.Open()
	if err != nil {
		return domain.UploadFile{}, fmt.Errorf("opening %s: %w", fh.Filename, err)
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(f)
	if err != nil {
		return domain.UploadFile{}, fmt.Errorf("reading %s: %w", fh.Filename, err)
	}

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	return domain.UploadFile{Filename: fh.Filename, ContentType: contentType, Data: data}, nil
}

// respondFormError answers a multipart parsing failure, using 413 when the
// body exceeded the configured limit.
func respondFormError(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		RespondError(c, http.StatusRequestEntityTooLarge, "request body too large", "")
		return
	}
	RespondError(c, http.StatusBadRequest, "invalid multipart form", err.Error())
}
