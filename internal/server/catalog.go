package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/crewflow/console/internal/catalog"
	"github.com/crewflow/console/pkg/api"
)

var (
	ErrCrewNotFound  = errors.New("crew not found")
	ErrReloadCatalog = errors.New("failed to reload catalog")
)

func (s *Server) listCrews(c *gin.Context) {
	crews := s.getIndex().Crews()
	c.JSON(http.StatusOK, api.CrewsListResponse{
		Crews: crews,
		Count: len(crews),
	})
}

func (s *Server) listCrewTasks(c *gin.Context) {
	crewID := api.CrewID(c.Param("crewID"))
	idx := s.getIndex()

	if _, ok := idx.ResolveCrew(crewID); !ok {
		c.JSON(http.StatusNotFound, api.ErrorResponse{
			Error:  fmt.Sprintf("%s: %s", ErrCrewNotFound, crewID),
			Status: http.StatusNotFound,
		})
		return
	}

	var tasks []*api.TaskRef
	for _, task := range idx.Tasks() {
		if task.CrewID == crewID {
			tasks = append(tasks, task)
		}
	}

	c.JSON(http.StatusOK, api.TasksListResponse{
		Tasks: tasks,
		Count: len(tasks),
	})
}

// reloadCatalog rebuilds the reference index from the catalog provider.
// Sessions already open keep the index they were created with; new
// sessions pick up the reloaded one
func (s *Server) reloadCatalog(c *gin.Context) {
	idx, err := catalog.Load(c.Request.Context(), s.provider)
	if err != nil {
		c.JSON(http.StatusBadGateway, api.ErrorResponse{
			Error:  fmt.Sprintf("%s: %v", ErrReloadCatalog, err),
			Status: http.StatusBadGateway,
		})
		return
	}

	s.setIndex(idx)
	c.JSON(http.StatusOK, api.MessageResponse{
		Message: fmt.Sprintf("Catalog reloaded: %d tasks", idx.TaskCount()),
	})
}
