// Package woopratest provides an in-process fake of the Woopra tracking endpoints.
// It records every request it receives so tests can assert on the exact wire format.
package woopratest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/zolia/go-ci/exithandler"

	"github.com/toaweme/log"
)

type Config struct {
	Host string
	Port int
}

// Hit is one request received by the fake.
type Hit struct {
	Method  string
	Path    string
	Query   url.Values
	Form    url.Values
	Headers http.Header
}

var _ exithandler.Service = (*Server)(nil)

type Server struct {
	config *Config
	router *gin.Engine
	http   *http.Server

	mu   sync.Mutex
	hits []Hit
}

func NewServer(config *Config) *Server {
	s := &Server{config: config}

	router := gin.New()
	router.Use(gin.Recovery(), s.record)
	router.GET("/track/ce/", s.track)
	router.GET("/track/identify/", s.track)
	router.POST("/rest/2.2/profile", requireBasicAuth, s.profile)
	s.router = router

	return s
}

func (s *Server) Name() string {
	return "woopra"
}

func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	server := &http.Server{
		Addr:    addr,
		Handler: s.router.Handler(),
	}
	s.mu.Lock()
	s.http = server
	s.mu.Unlock()

	log.Info("starting fake woopra server", "addr", fmt.Sprintf("http://%s", addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("failed to start fake woopra server", "error", err)

		return fmt.Errorf("failed to start fake woopra server: %w", err)
	}

	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	server := s.http
	s.mu.Unlock()
	if server == nil {
		return nil
	}

	err := server.Shutdown(ctx)
	if err != nil {
		return fmt.Errorf("failed to shutdown fake woopra server: %w", err)
	}

	return nil
}

// Handler serves the fake endpoints, e.g. behind httptest.NewServer.
func (s *Server) Handler() http.Handler {
	return s.router.Handler()
}

// Hits returns a copy of every recorded request, oldest first.
func (s *Server) Hits() []Hit {
	s.mu.Lock()
	defer s.mu.Unlock()

	hits := make([]Hit, len(s.hits))
	copy(hits, s.hits)

	return hits
}

// LastHit returns the most recent request.
func (s *Server) LastHit() (Hit, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.hits) == 0 {
		return Hit{}, false
	}

	return s.hits[len(s.hits)-1], true
}

func (s *Server) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.hits = nil
}

func (s *Server) record(c *gin.Context) {
	// ParseForm leaves PostForm empty for GET, which is what tracking requests are
	if err := c.Request.ParseForm(); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hit := Hit{
		Method:  c.Request.Method,
		Path:    c.Request.URL.Path,
		Query:   c.Request.URL.Query(),
		Form:    c.Request.PostForm,
		Headers: c.Request.Header.Clone(),
	}

	s.mu.Lock()
	s.hits = append(s.hits, hit)
	s.mu.Unlock()

	c.Next()
}

func (s *Server) track(c *gin.Context) {
	if c.Query("host") == "" || c.Query("cookie") == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "host and cookie are required"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) profile(c *gin.Context) {
	email := c.PostForm("email")
	if c.PostForm("website") == "" || email == "" {
		c.JSON(http.StatusNotFound, gin.H{"success": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"visitor": gin.H{
			"email":   email,
			"website": c.PostForm("website"),
		},
	})
}

func requireBasicAuth(c *gin.Context) {
	key, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Basic ")
	if !ok || key == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "missing access key"})
		return
	}

	c.Next()
}
