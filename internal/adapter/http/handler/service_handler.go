package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/1234-ad/intelligent-content-orchestrator/internal/domain/entity"
)

// ServiceHandler handles the service metadata and health endpoints
type ServiceHandler struct {
	catalog entity.ModelCatalog
}

// NewServiceHandler creates a new service handler
func NewServiceHandler(catalog entity.ModelCatalog) *ServiceHandler {
	return &ServiceHandler{catalog: catalog}
}

// Root handles GET /
func (h *ServiceHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service":       h.catalog.Service,
		"version":       h.catalog.Version,
		"status":        "running",
		"models_loaded": h.catalog.Loaded(),
	})
}

// Health handles GET /health. The response carries per-model status flags;
// a catalog with any unloaded model degrades the service.
func (h *ServiceHandler) Health(c *gin.Context) {
	status := "healthy"
	httpStatus := http.StatusOK
	if !h.catalog.Loaded() {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	c.JSON(httpStatus, gin.H{
		"status":    status,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"models":    h.catalog.StatusMap(),
	})
}

// ModelsInfo handles GET /models/info
func (h *ServiceHandler) ModelsInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"models": h.catalog.Models})
}
