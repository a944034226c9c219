package port

import "context"

// CutoutInput carries the image submitted for background removal.
type CutoutInput struct {
	Filename    string
	ContentType string
	Data        []byte
}

// CutoutOutput is the processed image returned by a background remover.
type CutoutOutput struct {
	Data        []byte
	ContentType string
	Provider    string
}

// BackgroundRemover abstracts an AI background-removal backend.
type BackgroundRemover interface {
	RemoveBackground(ctx context.Context, input CutoutInput) (*CutoutOutput, error)
}
