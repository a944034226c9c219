package handler_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"forwardicons/internal/domain"
	"forwardicons/internal/handler"
	"forwardicons/internal/service"
	"forwardicons/mocks"
)

func TestUploadHandler_SingleFileFlatShape(t *testing.T) {
	svc := new(mocks.MockUploadService)
	h := handler.NewUploadHandler(svc)
	svc.On("Upload", mock.Anything, mock.MatchedBy(func(in service.UploadInput) bool {
		return in.Name == "home" && len(in.Files) == 1 && in.Files[0].Filename == "logo.png"
	})).Return([]domain.FileOutcome{{OK: true, Name: "home1", URL: "https://img/logo.png"}}, nil)

	c, w := newContext(multipartRequest(t, "/api/upload",
		[]formFile{{"source", "logo.png", []byte("png")}}, map[string]string{"name": " home "}))
	h.Upload(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp handler.UploadResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, handler.UploadResponse{Success: true, Name: "home1", URL: "https://img/logo.png"}, resp)
	svc.AssertExpectations(t)
}

func TestUploadHandler_SingleFileProviderFailure(t *testing.T) {
	svc := new(mocks.MockUploadService)
	h := handler.NewUploadHandler(svc)
	svc.On("Upload", mock.Anything, mock.Anything).
		Return([]domain.FileOutcome{{OK: false, Name: "logo", Error: "PICGO upload failed (status, status 500): boom"}}, nil)

	c, w := newContext(multipartRequest(t, "/api/upload", []formFile{{"source", "logo.png", []byte("png")}}, nil))
	h.Upload(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var resp handler.ErrorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "image upload failed", resp.Error)
	assert.Contains(t, resp.Details, "boom")
}

func TestUploadHandler_MultiFileArrayShape(t *testing.T) {
	svc := new(mocks.MockUploadService)
	h := handler.NewUploadHandler(svc)
	outcomes := []domain.FileOutcome{
		{OK: true, Name: "logo", URL: "https://img/logo.png"},
		{OK: false, Name: "star", Error: "failed"},
	}
	svc.On("Upload", mock.Anything, mock.MatchedBy(func(in service.UploadInput) bool {
		return in.Name == "" && len(in.Files) == 2
	})).Return(outcomes, nil)

	c, w := newContext(multipartRequest(t, "/api/upload", []formFile{
		{"source", "logo.png", []byte("png")},
		{"source", "star.svg", []byte("svg")},
	}, nil))
	h.Upload(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp handler.MultiUploadResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, outcomes, resp.Results)
}

func TestUploadHandler_NoFile(t *testing.T) {
	svc := new(mocks.MockUploadService)
	h := handler.NewUploadHandler(svc)

	c, w := newContext(multipartRequest(t, "/api/upload", nil, map[string]string{"name": "x"}))
	h.Upload(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
}

func TestUploadHandler_PreflightConfigurationError(t *testing.T) {
	svc := new(mocks.MockUploadService)
	h := handler.NewUploadHandler(svc)
	svc.On("Upload", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("upload.Upload: PICUI pre-flight: %w", domain.ErrConfiguration))

	c, w := newContext(multipartRequest(t, "/api/upload", []formFile{{"source", "a.png", []byte("png")}}, nil))
	h.Upload(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var resp handler.ErrorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "service misconfigured", resp.Error)
}

func TestUploadHandler_FinalizeSuccess(t *testing.T) {
	svc := new(mocks.MockUploadService)
	h := handler.NewUploadHandler(svc)
	svc.On("FinalizeBatch", mock.Anything).
		Return(&domain.FinalizeResult{Merged: 1, Icons: []domain.IconRecord{{Name: "a", URL: "u"}}}, nil)

	req, _ := http.NewRequest(http.MethodPost, "/api/finalize_batch", http.NoBody)
	c, w := newContext(req)
	h.FinalizeBatch(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp handler.FinalizeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 1, resp.Merged)
}

func TestUploadHandler_FinalizeFailure(t *testing.T) {
	svc := new(mocks.MockUploadService)
	h := handler.NewUploadHandler(svc)
	svc.On("FinalizeBatch", mock.Anything).
		Return(nil, fmt.Errorf("%w: replacing catalog: %w", domain.ErrMerge, errors.New("502")))

	req, _ := http.NewRequest(http.MethodPost, "/api/finalize_batch", http.NoBody)
	c, w := newContext(req)
	h.FinalizeBatch(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var resp handler.ErrorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "catalog update failed", resp.Error)
}

func TestUploadHandler_PendingEmptyList(t *testing.T) {
	svc := new(mocks.MockUploadService)
	h := handler.NewUploadHandler(svc)
	svc.On("PendingEntries", mock.Anything).Return(nil, nil)

	req, _ := http.NewRequest(http.MethodGet, "/api/batch", http.NoBody)
	c, w := newContext(req)
	h.Pending(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"pending":[]}`, w.Body.String())
}
