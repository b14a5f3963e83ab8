package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	app "github.com/crewflow/console"
	"github.com/crewflow/console/pkg/api"
)

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, api.HealthResponse{
		Service: app.Name,
		Version: app.Version,
		Status:  "ok",
	})
}
