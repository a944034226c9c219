package handler

import "forwardicons/internal/domain"

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// CustomAuthRequest is the custom cutout unlock request body.
type CustomAuthRequest struct {
	Password string `json:"password" binding:"required" example:"correct horse battery staple"`
}

// SuccessResponse is the body of endpoints that only report success.
type SuccessResponse struct {
	Success bool `json:"success" example:"true"`
}

// UploadResponse is the single-file upload response.
type UploadResponse struct {
	Success bool   `json:"success" example:"true"`
	Name    string `json:"name" example:"home1"`
	URL     string `json:"url" example:"https://img.example.com/2026/03/01/home.png"`
	Warning string `json:"warning,omitempty" example:"catalog update failed; queued for finalize"`
}

// MultiUploadResponse is the multi-file upload response.
type MultiUploadResponse struct {
	Success bool                 `json:"success" example:"true"`
	Results []domain.FileOutcome `json:"results"`
}

// FinalizeResponse reports a drained batch.
type FinalizeResponse struct {
	Success bool                `json:"success" example:"true"`
	Merged  int                 `json:"merged" example:"2"`
	Icons   []domain.IconRecord `json:"icons"`
}

// PendingResponse lists the pending batch.
type PendingResponse struct {
	Success bool                  `json:"success" example:"true"`
	Pending []domain.PendingEntry `json:"pending"`
}
