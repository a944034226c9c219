package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"forwardicons/internal/domain"
	"forwardicons/internal/port"
	"forwardicons/internal/service"
)

const defaultCutoutType = "image/png"

// CutoutHandler handles background-removal endpoints.
type CutoutHandler struct {
	cutoutService service.CutoutService
	cookie        CookieSettings
}

// CookieSettings describes the gated-mode session cookie.
type CookieSettings struct {
	Name   string
	MaxAge int
	Secure bool
}

// NewCutoutHandler creates a new CutoutHandler.
func NewCutoutHandler(cutoutService service.CutoutService, cookie CookieSettings) *CutoutHandler {
	return &CutoutHandler{cutoutService: cutoutService, cookie: cookie}
}

// Cutout handles POST /api/ai_cutout
// @Summary Remove image background
// @Description Tries every configured provider in random order until one succeeds.
// @Tags cutout
// @Accept multipart/form-data
// @Produce png
// @Produce json
// @Param image formData file true "Image to process"
// @Success 200 {file} binary "Processed image"
// @Failure 400 {object} ErrorBody "Missing image"
// @Failure 500 {object} ErrorBody "No providers configured or all providers failed"
// @Router /ai_cutout [post]
func (h *CutoutHandler) Cutout(c *gin.Context) {
	input, err := cutoutInput(c)
	if err != nil && !errors.Is(err, domain.ErrMissingFile) {
		respondFormError(c, err)
		return
	}

	out, err := h.cutoutService.Cutout(c.Request.Context(), input)
	if err != nil {
		h.handleCutoutError(c, err)
		return
	}
	writeImage(c, out)
}

// Authenticate handles POST /api/ai/custom/auth
// @Summary Unlock custom cutout
// @Description Exchanges the custom cutout password for a session cookie.
// @Tags cutout
// @Accept json
// @Produce json
// @Param request body CustomAuthRequest true "Password"
// @Success 200 {object} SuccessResponse "Session cookie set"
// @Failure 400 {object} ErrorBody "Malformed body"
// @Failure 403 {object} ErrorBody "Disabled or wrong password"
// @Failure 429 {object} ErrorBody "Too many attempts"
// @Failure 500 {object} ErrorBody "Session signing misconfigured"
// @Router /ai/custom/auth [post]
func (h *CutoutHandler) Authenticate(c *gin.Context) {
	var req CustomAuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	token, err := h.cutoutService.Authenticate(req.Password)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(h.cookie.Name, token, h.cookie.MaxAge, "/", "", h.cookie.Secure, true)
	c.JSON(http.StatusOK, SuccessResponse{Success: true})
}

// CustomCutout handles POST /api/ai_cutout_custom
// @Summary Remove image background with the custom provider
// @Description Requires the session cookie issued by /ai/custom/auth.
// @Tags cutout
// @Accept multipart/form-data
// @Produce png
// @Produce json
// @Param image formData file true "Image to process"
// @Success 200 {file} binary "Processed image"
// @Failure 403 {object} ErrorBody "Not authorized"
// @Failure 500 {object} ErrorBody "Custom provider failed"
// @Router /ai_cutout_custom [post]
func (h *CutoutHandler) CustomCutout(c *gin.Context) {
	token, _ := c.Cookie(h.cookie.Name)

	input, err := cutoutInput(c)
	if err != nil && !errors.Is(err, domain.ErrMissingFile) {
		respondFormError(c, err)
		return
	}

	out, err := h.cutoutService.CustomCutout(c.Request.Context(), token, input)
	if err != nil {
		h.handleCutoutError(c, err)
		return
	}
	writeImage(c, out)
}

// handleCutoutError keeps the client-error mapping and reports every server
// failure as a failed cutout with the provider errors as details.
func (h *CutoutHandler) handleCutoutError(c *gin.Context, err error) {
	status, _, _ := MapDomainError(err)
	if status < http.StatusInternalServerError {
		HandleError(c, err)
		return
	}
	slog.ErrorContext(c.Request.Context(), "cutoutHandler: cutout failed", "error", err)
	_ = c.Error(err)
	RespondError(c, status, "background removal failed", err.Error())
}

// cutoutInput reads the "image" field. An absent field yields an empty input
// and domain.ErrMissingFile; the service decides the order of checks, so
// configuration and authorization errors win over a missing image.
func cutoutInput(c *gin.Context) (port.CutoutInput, error) {
	fh, err := c.FormFile("image")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return port.CutoutInput{}, err
		}
		return port.CutoutInput{}, domain.ErrMissingFile
	}
	f, err := readFormFile(fh)
	if err != nil {
		return port.CutoutInput{}, err
	}
	return port.CutoutInput{Filename: f.Filename, ContentType: f.ContentType, Data: f.Data}, nil
}

func writeImage(c *gin.Context, out *port.CutoutOutput) {
	contentType := out.ContentType
	if contentType == "" {
		contentType = defaultCutoutType
	}
	if out.Provider != "" {
		c.Header("X-Cutout-Provider", out.Provider)
	}
	c.Data(http.StatusOK, contentType, out.Data)
}
