package http

import (
	"net/http"

	"github.com/aescanero/kubedemo/internal/application/workload"
	"github.com/aescanero/kubedemo/pkg/adapters/metrics/prometheus"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// handleHome greets the caller and counts the request
func (s *Server) handleHome(c *gin.Context) {
	s.metrics.IncRequests()
	c.String(http.StatusOK, "Hello from Kubernetes\n")
}

// handleHealth is the liveness probe; it never reads state
func (s *Server) handleHealth(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}

// handleReady is the readiness probe
func (s *Server) handleReady(c *gin.Context) {
	if !s.monitor.Ready() {
		c.String(http.StatusServiceUnavailable, "NOT READY")
		return
	}
	c.String(http.StatusOK, "READY")
}

// handleWork simulates load. Malformed parameters are defaulted, never
// rejected.
func (s *Server) handleWork(c *gin.Context) {
	s.metrics.IncRequests()

	cpu, hasCPU := c.GetQuery("cpu")
	req := workload.ParseRequest(c.Query("delay"), cpu, hasCPU)

	res := s.simulator.Run(c.Request.Context(), req)

	c.JSON(http.StatusOK, res)
}

// handleMetrics renders the exposition text
func (s *Server) handleMetrics(c *gin.Context) {
	body, err := s.metrics.Render()
	if err != nil {
		s.logger.Error("failed to render metrics", zap.Error(err))
		c.String(http.StatusInternalServerError, "failed to render metrics")
		return
	}

	c.Data(http.StatusOK, prometheus.ContentType, body)
}
