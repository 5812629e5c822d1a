package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RootResponse identifies the running service
type RootResponse struct {
	Message string `json:"message"`
}

// HealthResponse reports process liveness. No dependency checks are
// performed; the response is fixed as long as the process can serve it.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// handleRoot handles requests to the service root
func (s *Server) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, RootResponse{
		Message: "DevOps API is running!",
	})
}

// handleHealth handles health check requests
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:  "healthy",
		Version: s.version,
	})
}
