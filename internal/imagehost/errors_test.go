package imagehost_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"forwardicons/internal/domain"
	"forwardicons/internal/imagehost"
)

func TestUploadError_IsMapsKinds(t *testing.T) {
	cred := imagehost.Credentialf("PICUI", "token missing")
	assert.True(t, errors.Is(cred, domain.ErrConfiguration))
	assert.False(t, errors.Is(cred, domain.ErrUpstream))

	for _, kind := range []imagehost.Kind{imagehost.KindNetwork, imagehost.KindStatus, imagehost.KindFormat, imagehost.KindAuth} {
		err := imagehost.NewUploadError("PICGO", kind, 502, errors.New("boom"))
		assert.True(t, errors.Is(err, domain.ErrUpstream), kind)
		assert.False(t, errors.Is(err, domain.ErrConfiguration), kind)
	}
}

func TestUploadError_WrappedStillMatches(t *testing.T) {
	err := fmt.Errorf("forwarding: %w", imagehost.NewUploadError("IMGURL", imagehost.KindStatus, 500, errors.New("bad")))

	var upErr *imagehost.UploadError
	assert.True(t, errors.As(err, &upErr))
	assert.Equal(t, 500, upErr.StatusCode)
	assert.Contains(t, err.Error(), "IMGURL upload failed (status, status 500)")
}
