package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"forwardicons/internal/config"
	"forwardicons/internal/cutout"
	"forwardicons/internal/domain"
	"forwardicons/internal/port"
	"forwardicons/internal/service"
	"forwardicons/mocks"
)

var cat = port.CutoutInput{Filename: "cat.jpg", ContentType: "image/jpeg", Data: []byte("jpeg")}

func newSessions(t *testing.T) service.SessionService {
	t.Helper()
	s, err := service.NewSessionService("pw", config.SessionConfig{Secret: "secret"}, nil)
	require.NoError(t, err)
	return s
}

func TestCutoutService_NoProvidersIsConfigurationError(t *testing.T) {
	svc := service.NewCutoutService(cutout.NewFailoverRemover(nil), service.CustomCutout{}, newSessions(t))

	_, err := svc.Cutout(context.Background(), cat)

	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestCutoutService_NoProvidersReportedBeforeMissingImage(t *testing.T) {
	svc := service.NewCutoutService(cutout.NewFailoverRemover(nil), service.CustomCutout{}, newSessions(t))

	_, err := svc.Cutout(context.Background(), port.CutoutInput{})

	assert.ErrorIs(t, err, domain.ErrConfiguration)
	assert.NotErrorIs(t, err, domain.ErrMissingFile)
}

func TestCutoutService_DelegatesToPool(t *testing.T) {
	pool := new(mocks.MockBackgroundRemover)
	pool.On("RemoveBackground", mock.Anything, cat).Return(&port.CutoutOutput{Data: []byte("png"), ContentType: "image/png", Provider: "clipdrop"}, nil)
	svc := service.NewCutoutService(pool, service.CustomCutout{}, newSessions(t))

	out, err := svc.Cutout(context.Background(), cat)

	require.NoError(t, err)
	assert.Equal(t, "clipdrop", out.Provider)
}

func TestCutoutService_EmptyImage(t *testing.T) {
	pool := new(mocks.MockBackgroundRemover)
	svc := service.NewCutoutService(pool, service.CustomCutout{}, newSessions(t))

	_, err := svc.Cutout(context.Background(), port.CutoutInput{Filename: "x.png"})

	assert.ErrorIs(t, err, domain.ErrMissingFile)
	pool.AssertNotCalled(t, "RemoveBackground", mock.Anything, mock.Anything)
}

func TestCutoutService_AuthenticateDisabled(t *testing.T) {
	svc := service.NewCutoutService(new(mocks.MockBackgroundRemover), service.CustomCutout{}, newSessions(t))

	_, err := svc.Authenticate("pw")

	assert.ErrorIs(t, err, domain.ErrFeatureDisabled)
}

func TestCutoutService_CustomRequiresValidToken(t *testing.T) {
	custom := new(mocks.MockBackgroundRemover)
	svc := service.NewCutoutService(new(mocks.MockBackgroundRemover),
		service.CustomCutout{Enabled: true, Remover: custom}, newSessions(t))

	_, err := svc.CustomCutout(context.Background(), "not-a-token", cat)

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	custom.AssertNotCalled(t, "RemoveBackground", mock.Anything, mock.Anything)
}

func TestCutoutService_CustomDisabledIsUnauthorized(t *testing.T) {
	sessions := newSessions(t)
	token, err := sessions.Issue("pw")
	require.NoError(t, err)
	custom := new(mocks.MockBackgroundRemover)
	svc := service.NewCutoutService(new(mocks.MockBackgroundRemover), service.CustomCutout{Remover: custom}, sessions)

	_, err = svc.CustomCutout(context.Background(), token, cat)

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	custom.AssertNotCalled(t, "RemoveBackground", mock.Anything, mock.Anything)
}

func TestCutoutService_CustomCalledExactlyOnce(t *testing.T) {
	custom := new(mocks.MockBackgroundRemover)
	custom.On("RemoveBackground", mock.Anything, cat).Return(nil, errors.New("custom backend down")).Once()
	svc := service.NewCutoutService(new(mocks.MockBackgroundRemover),
		service.CustomCutout{Enabled: true, Remover: custom}, newSessions(t))

	token, err := svc.Authenticate("pw")
	require.NoError(t, err)

	_, err = svc.CustomCutout(context.Background(), token, cat)

	require.Error(t, err)
	custom.AssertNumberOfCalls(t, "RemoveBackground", 1)
}

func TestCutoutService_CustomWithoutEndpoint(t *testing.T) {
	svc := service.NewCutoutService(new(mocks.MockBackgroundRemover),
		service.CustomCutout{Enabled: true}, newSessions(t))
	token, err := svc.Authenticate("pw")
	require.NoError(t, err)

	_, err = svc.CustomCutout(context.Background(), token, cat)

	assert.ErrorIs(t, err, domain.ErrConfiguration)
}
