package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/crewflow/console/internal/events"
	"github.com/crewflow/console/internal/graph"
	"github.com/crewflow/console/internal/store"
	"github.com/crewflow/console/pkg/api"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSaveFlow        = errors.New("failed to save flow")
)

func (s *Server) createSession(c *gin.Context) {
	var req api.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{
			Error:  fmt.Sprintf("%s: %v", ErrInvalidJSON, err),
			Status: http.StatusBadRequest,
		})
		return
	}

	idx := s.getIndex()

	var sess *graph.Session
	if req.FlowID != "" {
		doc, err := s.store.Get(c.Request.Context(), req.FlowID)
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
		sess = graph.Open(idx, doc)
	} else {
		sess = graph.New(idx)
		sess.SetName(req.Name)
		sess.SyncStartingPoints()
	}

	sessionID := uuid.NewString()
	s.mu.Lock()
	s.sessions[sessionID] = sess
	s.mu.Unlock()

	c.JSON(http.StatusCreated, api.SessionResponse{
		SessionID: sessionID,
		Flow:      sess.Document(),
		Issues:    sess.Validate(),
	})
}

func (s *Server) getSession(c *gin.Context) {
	s.withSession(c, func(sessionID string, sess *graph.Session) {
		c.JSON(http.StatusOK, api.SessionResponse{
			SessionID: sessionID,
			Flow:      sess.Document(),
			Issues:    sess.Validate(),
		})
	})
}

func (s *Server) discardSession(c *gin.Context) {
	sessionID := c.Param("sessionID")

	s.mu.Lock()
	_, ok := s.sessions[sessionID]
	delete(s.sessions, sessionID)
	s.mu.Unlock()

	if !ok {
		c.JSON(http.StatusNotFound, api.ErrorResponse{
			Error:  fmt.Sprintf("%s: %s", ErrSessionNotFound, sessionID),
			Status: http.StatusNotFound,
		})
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{
		Message: "Session discarded",
	})
}

// saveSession validates and persists the session's flow. Blocking
// incompleteness errors abort the save; reference warnings are returned
// alongside the saved document
func (s *Server) saveSession(c *gin.Context) {
	s.withSession(c, func(sessionID string, sess *graph.Session) {
		issues := sess.Validate()
		if issues.HasErrors() {
			c.JSON(http.StatusUnprocessableEntity, api.ValidateFlowResponse{
				Valid:  false,
				Issues: issues,
			})
			return
		}

		doc := sess.Document()
		var (
			saved *api.FlowConfiguration
			err   error
		)
		if sess.ID() == "" {
			saved, err = s.store.Create(c.Request.Context(), doc)
		} else {
			saved, err = s.store.Update(c.Request.Context(), sess.ID(), doc)
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{
				Error:  fmt.Sprintf("%s: %v", ErrSaveFlow, err),
				Status: http.StatusInternalServerError,
			})
			return
		}

		sess.SetID(saved.ID)
		s.hub.Publish(events.FlowSaved, saved.ID, saved.Name)

		c.JSON(http.StatusOK, api.SaveFlowResponse{
			Flow:     saved,
			Warnings: issues.Warnings(),
		})
	})
}

func (s *Server) validateSession(c *gin.Context) {
	s.withSession(c, func(sessionID string, sess *graph.Session) {
		issues := sess.Validate()
		c.JSON(http.StatusOK, api.ValidateFlowResponse{
			Valid:  !issues.HasErrors(),
			Issues: issues,
		})
	})
}

func (s *Server) renameFlow(c *gin.Context) {
	var req api.RenameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{
			Error:  fmt.Sprintf("%s: %v", ErrInvalidJSON, err),
			Status: http.StatusBadRequest,
		})
		return
	}

	s.withSession(c, func(sessionID string, sess *graph.Session) {
		sess.SetName(req.Name)
		s.respondSnapshot(c, sessionID, sess)
	})
}

// withSession runs fn while holding the server mutex, keeping each
// editing session strictly single-writer
func (s *Server) withSession(
	c *gin.Context, fn func(string, *graph.Session),
) {
	sessionID := c.Param("sessionID")

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		c.JSON(http.StatusNotFound, api.ErrorResponse{
			Error:  fmt.Sprintf("%s: %s", ErrSessionNotFound, sessionID),
			Status: http.StatusNotFound,
		})
		return
	}
	fn(sessionID, sess)
}

func (s *Server) respondSnapshot(
	c *gin.Context, sessionID string, sess *graph.Session,
) {
	c.JSON(http.StatusOK, api.SessionResponse{
		SessionID: sessionID,
		Flow:      sess.Document(),
	})
}

// respondMutation maps graph errors onto HTTP statuses and returns the
// updated snapshot on success
func (s *Server) respondMutation(
	c *gin.Context, sessionID string, sess *graph.Session, err error,
) {
	if err == nil {
		s.respondSnapshot(c, sessionID, sess)
		return
	}

	switch {
	case errors.Is(err, graph.ErrListenerNotFound),
		errors.Is(err, graph.ErrRouteNotFound),
		errors.Is(err, graph.ErrStartingPointNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{
			Error:  err.Error(),
			Status: http.StatusNotFound,
		})
	case errors.Is(err, graph.ErrRouteExists):
		c.JSON(http.StatusConflict, api.ErrorResponse{
			Error:  err.Error(),
			Status: http.StatusConflict,
		})
	default:
		c.JSON(http.StatusBadRequest, api.ErrorResponse{
			Error:  err.Error(),
			Status: http.StatusBadRequest,
		})
	}
}
