package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/crewflow/console/internal/events"
	"github.com/crewflow/console/internal/store"
	"github.com/crewflow/console/pkg/api"
)

var (
	ErrListFlows   = errors.New("failed to list flows")
	ErrGetFlow     = errors.New("failed to get flow")
	ErrDeleteFlow  = errors.New("failed to delete flow")
	ErrQueryFlows  = errors.New("failed to query flows")
	ErrExportFlow  = errors.New("failed to export flow")
	ErrInvalidJSON = errors.New("invalid JSON request")
	ErrNoExporter  = errors.New("export not configured")
)

func (s *Server) listFlows(c *gin.Context) {
	flows, err := s.store.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{
			Error:  fmt.Sprintf("%s: %v", ErrListFlows, err),
			Status: http.StatusInternalServerError,
		})
		return
	}

	c.JSON(http.StatusOK, api.FlowsListResponse{
		Flows: flows,
		Count: len(flows),
	})
}

func (s *Server) getFlow(c *gin.Context) {
	flowID := api.FlowID(c.Param("flowID"))

	flow, err := s.store.Get(c.Request.Context(), flowID)
	if err == nil {
		c.JSON(http.StatusOK, flow)
		return
	}

	if errors.Is(err, store.ErrFlowNotFound) {
		c.JSON(http.StatusNotFound, api.ErrorResponse{
			Error:  err.Error(),
			Status: http.StatusNotFound,
		})
		return
	}
	c.JSON(http.StatusInternalServerError, api.ErrorResponse{
		Error:  fmt.Sprintf("%s: %v", ErrGetFlow, err),
		Status: http.StatusInternalServerError,
	})
}

func (s *Server) deleteFlow(c *gin.Context) {
	flowID := api.FlowID(c.Param("flowID"))

	err := s.store.Delete(c.Request.Context(), flowID)
	if err == nil {
		s.hub.Publish(events.FlowDeleted, flowID, "")
		c.JSON(http.StatusOK, api.MessageResponse{
			Message: "Flow deleted",
		})
		return
	}

	if errors.Is(err, store.ErrFlowNotFound) {
		c.JSON(http.StatusNotFound, api.ErrorResponse{
			Error:  err.Error(),
			Status: http.StatusNotFound,
		})
		return
	}
	c.JSON(http.StatusInternalServerError, api.ErrorResponse{
		Error:  fmt.Sprintf("%s: %v", ErrDeleteFlow, err),
		Status: http.StatusInternalServerError,
	})
}

func (s *Server) queryFlows(c *gin.Context) {
	var req api.QueryFlowsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{
			Error:  fmt.Sprintf("%s: %v", ErrInvalidJSON, err),
			Status: http.StatusBadRequest,
		})
		return
	}

	if req.Path == "" {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{
			Error:  "Query path is required",
			Status: http.StatusBadRequest,
		})
		return
	}

	flows, err := store.QueryFlows(c.Request.Context(), s.store, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{
			Error:  fmt.Sprintf("%s: %v", ErrQueryFlows, err),
			Status: http.StatusInternalServerError,
		})
		return
	}

	c.JSON(http.StatusOK, api.FlowsListResponse{
		Flows: flows,
		Count: len(flows),
	})
}

func (s *Server) exportFlow(c *gin.Context) {
	if s.exporter == nil {
		c.JSON(http.StatusServiceUnavailable, api.ErrorResponse{
			Error:  ErrNoExporter.Error(),
			Status: http.StatusServiceUnavailable,
		})
		return
	}

	flowID := api.FlowID(c.Param("flowID"))
	flow, err := s.store.Get(c.Request.Context(), flowID)
	if err != nil {
		if errors.Is(err, store.ErrFlowNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{
				Error:  err.Error(),
				Status: http.StatusNotFound,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{
			Error:  fmt.Sprintf("%s: %v", ErrGetFlow, err),
			Status: http.StatusInternalServerError,
		})
		return
	}

	key, err := s.exporter.Export(c.Request.Context(), flow)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{
			Error:  fmt.Sprintf("%s: %v", ErrExportFlow, err),
			Status: http.StatusInternalServerError,
		})
		return
	}

	c.JSON(http.StatusOK, api.ExportResponse{
		Key: key,
	})
}
