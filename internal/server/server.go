package server

import (
	"log/slog"
	"net/http"
	"sync"

	glog "github.com/gin-contrib/slog"
	"github.com/gin-gonic/gin"

	"github.com/crewflow/console/internal/catalog"
	"github.com/crewflow/console/internal/events"
	"github.com/crewflow/console/internal/export"
	"github.com/crewflow/console/internal/graph"
	"github.com/crewflow/console/internal/store"
	"github.com/crewflow/console/pkg/util"
)

type (
	// Server implements the HTTP API server for the flow console
	Server struct {
		store    store.Store
		index    *catalog.Index
		provider catalog.Provider
		exporter *export.Exporter
		hub      *events.Hub
		sessions map[string]*graph.Session
		sockets  util.Set[*Client]
		mu       sync.Mutex
	}

	// Dependencies collects the collaborators a server is built from
	Dependencies struct {
		Store    store.Store
		Index    *catalog.Index
		Provider catalog.Provider
		Exporter *export.Exporter
		Hub      *events.Hub
	}
)

// NewServer creates a new HTTP API server
func NewServer(deps Dependencies) *Server {
	return &Server{
		store:    deps.Store,
		index:    deps.Index,
		provider: deps.Provider,
		exporter: deps.Exporter,
		hub:      deps.Hub,
		sessions: map[string]*graph.Session{},
		sockets:  util.Set[*Client]{},
	}
}

// SetupRoutes configures and returns the HTTP router with all API
// endpoints
func (s *Server) SetupRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(glog.SetLogger(
		glog.WithLogger(func(c *gin.Context, l *slog.Logger) *slog.Logger {
			return slog.Default()
		}),
	))

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set(
			"Access-Control-Allow-Methods",
			"GET, POST, PUT, DELETE, OPTIONS",
		)
		c.Writer.Header().Set(
			"Access-Control-Allow-Headers",
			"Content-Type, Authorization",
		)

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusOK)
			return
		}

		c.Next()
	})

	// Health check
	router.GET("/health", s.handleHealth)

	// Catalog lookups
	cat := router.Group("/catalog")
	{
		cat.GET("/crews", s.listCrews)
		cat.GET("/crews/:crewID/tasks", s.listCrewTasks)
		cat.POST("/reload", s.reloadCatalog)
	}

	// Stored flows
	flows := router.Group("/flows")
	{
		flows.GET("", s.listFlows)
		flows.POST("/query", s.queryFlows)
		flows.GET("/:flowID", s.getFlow)
		flows.DELETE("/:flowID", s.deleteFlow)
		flows.POST("/:flowID/export", s.exportFlow)
	}

	// Editing sessions
	session := router.Group("/session")
	{
		session.POST("", s.createSession)
		session.GET("/:sessionID", s.getSession)
		session.DELETE("/:sessionID", s.discardSession)
		session.POST("/:sessionID/save", s.saveSession)
		session.POST("/:sessionID/validate", s.validateSession)
		session.PUT("/:sessionID/name", s.renameFlow)

		session.POST("/:sessionID/listener", s.addListener)
		listener := session.Group("/:sessionID/listener/:listenerID")
		{
			listener.DELETE("", s.deleteListener)
			listener.PUT("/name", s.renameListener)
			listener.PUT("/listen-to", s.setListenToTasks)
			listener.PUT("/tasks", s.setExecutedTasks)
			listener.PUT("/condition", s.setConditionType)

			listener.POST("/route", s.addRoute)
			route := listener.Group("/route/:routeName")
			{
				route.DELETE("", s.removeRoute)
				route.PUT("/name", s.renameRoute)
				route.PUT("/condition", s.setRouteCondition)
				route.PUT("/tasks", s.setRouteTasks)
			}
		}

		session.GET("/:sessionID/starting-points", s.listStartingPoints)
		session.POST(
			"/:sessionID/starting-point/:taskID/toggle",
			s.toggleStartingPoint,
		)
	}

	// WebSocket
	router.GET("/ws", s.handleWebSocket)

	return router
}

// getIndex returns the catalog index for new sessions. Existing sessions
// keep the index they were created with
func (s *Server) getIndex() *catalog.Index {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index
}

func (s *Server) setIndex(idx *catalog.Index) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.index = idx
}

func (s *Server) registerWebSocket(c *Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sockets.Add(c)
}

func (s *Server) unregisterWebSocket(c *Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sockets.Remove(c)
}

// CloseWebSockets closes all active WebSocket connections
func (s *Server) CloseWebSockets() {
	s.mu.Lock()
	conns := make([]*Client, 0, len(s.sockets))
	for c := range s.sockets {
		conns = append(conns, c)
	}
	s.mu.Unlock()

	for _, c := range conns {
		c.Close()
	}
}
