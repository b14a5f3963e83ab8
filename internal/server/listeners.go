package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/crewflow/console/internal/graph"
	"github.com/crewflow/console/pkg/api"
)

func (s *Server) addListener(c *gin.Context) {
	var req api.AddListenerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{
			Error:  fmt.Sprintf("%s: %v", ErrInvalidJSON, err),
			Status: http.StatusBadRequest,
		})
		return
	}

	s.withSession(c, func(sessionID string, sess *graph.Session) {
		listener := sess.AddListener(req.CrewID)
		c.JSON(http.StatusCreated, listener)
	})
}

func (s *Server) deleteListener(c *gin.Context) {
	listenerID := api.ListenerID(c.Param("listenerID"))
	s.withSession(c, func(sessionID string, sess *graph.Session) {
		err := sess.DeleteListener(listenerID)
		s.respondMutation(c, sessionID, sess, err)
	})
}

func (s *Server) renameListener(c *gin.Context) {
	var req api.RenameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{
			Error:  fmt.Sprintf("%s: %v", ErrInvalidJSON, err),
			Status: http.StatusBadRequest,
		})
		return
	}

	listenerID := api.ListenerID(c.Param("listenerID"))
	s.withSession(c, func(sessionID string, sess *graph.Session) {
		err := sess.RenameListener(listenerID, req.Name)
		s.respondMutation(c, sessionID, sess, err)
	})
}

func (s *Server) setListenToTasks(c *gin.Context) {
	var req api.TaskIDsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{
			Error:  fmt.Sprintf("%s: %v", ErrInvalidJSON, err),
			Status: http.StatusBadRequest,
		})
		return
	}

	listenerID := api.ListenerID(c.Param("listenerID"))
	s.withSession(c, func(sessionID string, sess *graph.Session) {
		err := sess.SetListenToTasks(listenerID, req.TaskIDs)
		s.respondMutation(c, sessionID, sess, err)
	})
}

func (s *Server) setExecutedTasks(c *gin.Context) {
	var req api.TaskIDsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{
			Error:  fmt.Sprintf("%s: %v", ErrInvalidJSON, err),
			Status: http.StatusBadRequest,
		})
		return
	}

	listenerID := api.ListenerID(c.Param("listenerID"))
	s.withSession(c, func(sessionID string, sess *graph.Session) {
		err := sess.SetExecutedTasks(listenerID, req.TaskIDs)
		s.respondMutation(c, sessionID, sess, err)
	})
}

func (s *Server) setConditionType(c *gin.Context) {
	var req api.ConditionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{
			Error:  fmt.Sprintf("%s: %v", ErrInvalidJSON, err),
			Status: http.StatusBadRequest,
		})
		return
	}

	listenerID := api.ListenerID(c.Param("listenerID"))
	s.withSession(c, func(sessionID string, sess *graph.Session) {
		err := sess.SetConditionType(listenerID, req.Type)
		s.respondMutation(c, sessionID, sess, err)
	})
}

func (s *Server) addRoute(c *gin.Context) {
	listenerID := api.ListenerID(c.Param("listenerID"))
	s.withSession(c, func(sessionID string, sess *graph.Session) {
		route, err := sess.AddRoute(listenerID)
		if err != nil {
			s.respondMutation(c, sessionID, sess, err)
			return
		}
		c.JSON(http.StatusCreated, route)
	})
}

func (s *Server) removeRoute(c *gin.Context) {
	listenerID := api.ListenerID(c.Param("listenerID"))
	routeName := c.Param("routeName")
	s.withSession(c, func(sessionID string, sess *graph.Session) {
		err := sess.RemoveRoute(listenerID, routeName)
		s.respondMutation(c, sessionID, sess, err)
	})
}

func (s *Server) renameRoute(c *gin.Context) {
	var req api.RenameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{
			Error:  fmt.Sprintf("%s: %v", ErrInvalidJSON, err),
			Status: http.StatusBadRequest,
		})
		return
	}

	listenerID := api.ListenerID(c.Param("listenerID"))
	routeName := c.Param("routeName")
	s.withSession(c, func(sessionID string, sess *graph.Session) {
		err := sess.RenameRoute(listenerID, routeName, req.Name)
		s.respondMutation(c, sessionID, sess, err)
	})
}

func (s *Server) setRouteCondition(c *gin.Context) {
	var req api.RouteConditionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{
			Error:  fmt.Sprintf("%s: %v", ErrInvalidJSON, err),
			Status: http.StatusBadRequest,
		})
		return
	}

	listenerID := api.ListenerID(c.Param("listenerID"))
	routeName := c.Param("routeName")
	s.withSession(c, func(sessionID string, sess *graph.Session) {
		err := sess.SetRouteCondition(listenerID, routeName, req.Condition)
		s.respondMutation(c, sessionID, sess, err)
	})
}

func (s *Server) setRouteTasks(c *gin.Context) {
	var req api.TaskIDsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{
			Error:  fmt.Sprintf("%s: %v", ErrInvalidJSON, err),
			Status: http.StatusBadRequest,
		})
		return
	}

	listenerID := api.ListenerID(c.Param("listenerID"))
	routeName := c.Param("routeName")
	s.withSession(c, func(sessionID string, sess *graph.Session) {
		err := sess.SetRouteTasks(listenerID, routeName, req.TaskIDs)
		s.respondMutation(c, sessionID, sess, err)
	})
}

func (s *Server) listStartingPoints(c *gin.Context) {
	s.withSession(c, func(sessionID string, sess *graph.Session) {
		c.JSON(http.StatusOK, sess.StartingPoints())
	})
}

func (s *Server) toggleStartingPoint(c *gin.Context) {
	taskID := api.TaskID(c.Param("taskID"))
	s.withSession(c, func(sessionID string, sess *graph.Session) {
		err := sess.ToggleStartingPoint(taskID)
		s.respondMutation(c, sessionID, sess, err)
	})
}
