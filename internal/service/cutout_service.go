package service

import (
	"context"
	"fmt"
	"log/slog"

	"forwardicons/internal/domain"
	"forwardicons/internal/port"
)

// CutoutService removes image backgrounds through the default provider pool
// or, for holders of a session token, the gated custom provider.
type CutoutService interface {
	Cutout(ctx context.Context, input port.CutoutInput) (*port.CutoutOutput, error)
	Authenticate(password string) (string, error)
	CustomCutout(ctx context.Context, token string, input port.CutoutInput) (*port.CutoutOutput, error)
}

// CustomCutout configures the gated mode. Remover is nil when no custom
// endpoint is configured.
type CustomCutout struct {
	Enabled bool
	Remover port.BackgroundRemover
}

// sizedRemover is a remover pool that can report how many providers it holds.
type sizedRemover interface {
	Len() int
}

type cutoutService struct {
	pool     port.BackgroundRemover
	custom   CustomCutout
	sessions SessionService
}

// NewCutoutService creates a new CutoutService implementation.
func NewCutoutService(pool port.BackgroundRemover, custom CustomCutout, sessions SessionService) CutoutService {
	return &cutoutService{
		pool:     pool,
		custom:   custom,
		sessions: sessions,
	}
}

func (s *cutoutService) Cutout(ctx context.Context, input port.CutoutInput) (*port.CutoutOutput, error) {
	if sized, ok := s.pool.(sizedRemover); ok && sized.Len() == 0 {
		return nil, fmt.Errorf("cutout.Cutout: no providers configured: %w", domain.ErrConfiguration)
	}
	if len(input.Data) == 0 {
		return nil, domain.ErrMissingFile
	}
	out, err := s.pool.RemoveBackground(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("cutout.Cutout: %w", err)
	}
	slog.InfoContext(ctx, "cutout.Cutout: background removed", "provider", out.Provider, "bytes", len(out.Data))
	return out, nil
}

func (s *cutoutService) Authenticate(password string) (string, error) {
	if !s.custom.Enabled {
		return "", domain.ErrFeatureDisabled
	}
	return s.sessions.Issue(password)
}

func (s *cutoutService) CustomCutout(ctx context.Context, token string, input port.CutoutInput) (*port.CutoutOutput, error) {
	if !s.custom.Enabled {
		return nil, domain.ErrUnauthorized
	}
	if err := s.sessions.Verify(token); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if s.custom.Remover == nil {
		return nil, fmt.Errorf("cutout.CustomCutout: custom endpoint not set: %w", domain.ErrConfiguration)
	}
	if len(input.Data) == 0 {
		return nil, domain.ErrMissingFile
	}

	out, err := s.custom.Remover.RemoveBackground(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("cutout.CustomCutout: %w", err)
	}
	return out, nil
}
