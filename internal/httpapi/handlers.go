// Package httpapi exposes the registry over HTTP.
package httpapi

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/skovtun/lightning-node-registry/internal/service"
	"go.uber.org/zap"
)

// ImportTrigger triggers a full node import
type ImportTrigger interface {
	ImportAll(ctx context.Context) (int, error)
}

// NodeViewer lists the display-ready node ranking
type NodeViewer interface {
	ListNodes(ctx context.Context) ([]service.NodeView, error)
}

// Handlers holds the HTTP handler dependencies
type Handlers struct {
	importer ImportTrigger
	view     NodeViewer
	logger   *zap.Logger
}

// NewHandlers creates the HTTP handler set
func NewHandlers(importer ImportTrigger, view NodeViewer, logger *zap.Logger) *Handlers {
	return &Handlers{
		importer: importer,
		view:     view,
		logger:   logger,
	}
}

// NewRouter builds the gin engine with all routes registered
func NewRouter(h *Handlers) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", h.HealthCheck)
	router.GET("/nodes", h.GetNodes)
	router.POST("/admin/import", h.TriggerImport)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}

// HealthCheck always reports OK; it has no side effects and does not
// depend on database or feed availability.
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}

// GetNodes serves the stored ranking ordered by capacity descending
func (h *Handlers) GetNodes(c *gin.Context) {
	nodes, err := h.view.ListNodes(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list nodes", zap.Error(err))
		c.String(http.StatusInternalServerError, "Internal server error while fetching nodes.")
		return
	}
	c.JSON(http.StatusOK, nodes)
}

// TriggerImport runs a manual import and reports the outcome as plain text
func (h *Handlers) TriggerImport(c *gin.Context) {
	h.logger.Info("manual import triggered")
	count, err := h.importer.ImportAll(c.Request.Context())
	if err != nil {
		h.logger.Error("manual import failed", zap.Error(err))
		c.String(http.StatusInternalServerError, "Import failed: %v", err)
		return
	}
	c.String(http.StatusOK, "Imported %d nodes", count)
}
