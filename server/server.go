/*
Copyright © 2025 Global Type System
Released under Apache License 2.0
*/

package server

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/globaltypesystem/gts/gts"
)

// Server represents the GTS HTTP server
type Server struct {
	store   *gts.GtsStore
	host    string
	port    int
	verbose int
	router  *gin.Engine
}

// NewServer creates a new GTS HTTP server
func NewServer(store *gts.GtsStore, host string, port int, verbose int) *Server {
	if verbose == 0 {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	s := &Server{
		store:   store,
		host:    host,
		port:    port,
		verbose: verbose,
		router:  gin.New(),
	}
	s.router.Use(gin.Recovery())
	s.router.Use(s.withLogging())
	s.registerRoutes()
	return s
}

// registerRoutes registers all HTTP routes
func (s *Server) registerRoutes() {
	// Entity management
	s.router.GET("/entities", s.handleGetEntities)
	s.router.GET("/entities/:id", s.handleGetEntity)
	s.router.POST("/entities", s.handleAddEntity)
	s.router.POST("/entities/bulk", s.handleAddEntities)
	s.router.POST("/schemas", s.handleAddSchema)

	// OP#1 - Validate ID
	s.router.GET("/validate-id", s.handleValidateID)

	// OP#2 - Extract ID
	s.router.POST("/extract-id", s.handleExtractID)

	// OP#3 - Parse ID
	s.router.GET("/parse-id", s.handleParseID)

	// OP#4 - Match ID Pattern
	s.router.GET("/match-id-pattern", s.handleMatchIDPattern)

	// OP#5 - UUID
	s.router.GET("/uuid", s.handleUUID)

	// OP#6 - Validate Instance
	s.router.POST("/validate-instance", s.handleValidateInstance)

	// OP#7 - Resolve Relationships
	s.router.GET("/resolve-relationships", s.handleResolveRelationships)

	// OP#8 - Compatibility
	s.router.GET("/compatibility", s.handleCompatibility)

	// OP#9 - Cast
	s.router.POST("/cast", s.handleCast)

	// OP#10 - Query
	s.router.GET("/query", s.handleQuery)

	// OP#11 - Attribute Access
	s.router.GET("/attr", s.handleAttribute)
}

// Start starts the HTTP server
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.host, s.port)
	slog.Info("starting gts server", "addr", addr)
	return s.router.Run(addr)
}

// Helper methods

func (s *Server) writeJSON(c *gin.Context, status int, data any) {
	c.JSON(status, data)
}

func (s *Server) writeError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

func (s *Server) readJSON(c *gin.Context, v any) error {
	return c.ShouldBindJSON(v)
}

func (s *Server) getQueryParam(c *gin.Context, key string) string {
	return c.Query(key)
}

func (s *Server) getQueryParamInt(c *gin.Context, key string, defaultValue int) int {
	val := c.Query(key)
	if val == "" {
		return defaultValue
	}
	intVal, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return intVal
}
