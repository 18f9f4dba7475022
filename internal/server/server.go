// Package server exposes the proxy's HTTP routes on a gin engine.
package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"mediarelay/internal/config"
	"mediarelay/internal/provider"
	"mediarelay/internal/upstream"
)

// Streamer opens an arbitrary media URL as a stream.
type Streamer interface {
	Stream(ctx context.Context, target string) (*upstream.Response, error)
}

// Deps are the collaborators the handlers orchestrate.
type Deps struct {
	Videos  provider.VideoSource
	Music   provider.MusicSource
	Streams Streamer
	Version string
}

// Server holds the handlers' shared, read-only state.
type Server struct {
	cfg     *config.Config
	videos  provider.VideoSource
	music   provider.MusicSource
	streams Streamer
	version string
	now     func() time.Time
}

// Route describes one registered endpoint.
type Route struct {
	Methods     []string
	Path        string
	Description string
	handler     gin.HandlerFunc
}

// New creates a Server.
func New(cfg *config.Config, deps Deps) *Server {
	return &Server{
		cfg:     cfg,
		videos:  deps.Videos,
		music:   deps.Music,
		streams: deps.Streams,
		version: deps.Version,
		now:     time.Now,
	}
}

// Routes returns the route table in registration order.
func (s *Server) Routes() []Route {
	get := []string{http.MethodGet}
	getPost := []string{http.MethodGet, http.MethodPost}
	return []Route{
		{get, "/", "service status and endpoint index", s.handleHome},
		{get, "/health", "liveness probe", s.handleHealth},
		{getPost, "/ttdown/download", "extract short-video media links (url)", s.handleVideoLookup},
		{get, "/mp3down/search", "search tracks (q)", s.handleMusicSearch},
		{getPost, "/mp3down/download", "stream a track as mp3 (url, title, artist)", s.handleMusicDownload},
		{getPost, "/mp3down/get_link", "stream a track as mp3 with a generated name (url)", s.handleMusicGetLink},
		{get, "/stream_content", "relay any media url (url, filename, type)", s.handleStreamContent},
	}
}

// Handler builds the gin engine with middleware and all routes.
func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.Use(requestContext(), recovery(), corsMiddleware(s.cfg.CORSOrigins))

	for _, rt := range s.Routes() {
		for _, m := range rt.Methods {
			r.Handle(m, rt.Path, rt.handler)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("no route for %s %s", c.Request.Method, c.Request.URL.Path)})
	})
	return r
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Disposition", "Content-Length", requestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cors.New(cfg)
		}
	}
	cfg.AllowOrigins = origins
	return cors.New(cfg)
}

// baseURL is the externally visible root used to build download links.
func (s *Server) baseURL(c *gin.Context) string {
	if s.cfg.PublicURL != "" {
		return strings.TrimRight(s.cfg.PublicURL, "/")
	}
	scheme := "http"
	if c.Request.TLS != nil || strings.EqualFold(c.GetHeader("X-Forwarded-Proto"), "https") {
		scheme = "https"
	}
	return scheme + "://" + c.Request.Host
}
