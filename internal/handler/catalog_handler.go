package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"forwardicons/internal/service"
)

var exportContentTypes = map[string]string{
	service.FormatCSV:  "text/csv; charset=utf-8",
	service.FormatXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

// CatalogHandler serves read-only catalog views.
type CatalogHandler struct {
	catalogService service.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// Get handles GET /api/catalog
// @Summary Get catalog
// @Description Returns the catalog document, served from a short-lived cache.
// @Tags catalog
// @Produce json
// @Success 200 {object} domain.CatalogDocument "Catalog document"
// @Failure 500 {object} ErrorBody "Catalog unavailable"
// @Router /catalog [get]
func (h *CatalogHandler) Get(c *gin.Context) {
	doc, err := h.catalogService.Snapshot(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

// Export handles GET /api/catalog/export
// @Summary Export catalog
// @Description Downloads the catalog as CSV (UTF-8 with BOM) or XLSX.
// @Tags catalog
// @Produce text/csv
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param format query string false "csv or xlsx" default(csv)
// @Success 200 {file} binary "Catalog file"
// @Failure 400 {object} ErrorBody "Unsupported format"
// @Failure 500 {object} ErrorBody "Catalog unavailable"
// @Router /catalog/export [get]
func (h *CatalogHandler) Export(c *gin.Context) {
	format := strings.ToLower(c.DefaultQuery("format", service.FormatCSV))

	var buf bytes.Buffer
	if err := h.catalogService.Export(c.Request.Context(), format, &buf); err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="icons.%s"`, format))
	c.Data(http.StatusOK, exportContentTypes[format], buf.Bytes())
}

// Info handles GET /api/info
// @Summary Deployment info
// @Description Returns the catalog owner, gist id and selected upload service.
// @Tags catalog
// @Produce json
// @Success 200 {object} service.CatalogInfo "Deployment info"
// @Router /info [get]
func (h *CatalogHandler) Info(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalogService.Info())
}
