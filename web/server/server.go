package server

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/RLG-UP/Raytracer-RLG-sub000/pkg/log"
	"github.com/RLG-UP/Raytracer-RLG-sub000/pkg/scene"
	"github.com/labstack/echo/v4"
)

var logger = log.New("server")

// Server serves scene listings, renders and pixel inspection over HTTP
type Server struct {
	port     int
	sceneDir string // Directory scanned for JSON scene files
	echo     *echo.Echo
}

// NewServer creates a new web server and registers its routes
func NewServer(port int, sceneDir string) *Server {
	s := &Server{port: port, sceneDir: sceneDir}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(corsMiddleware)

	e.GET("/api/health", s.handleHealth)
	e.GET("/api/scenes", s.handleScenes)
	e.GET("/api/render", s.handleRender)
	e.GET("/api/inspect", s.handleInspect)

	s.echo = e
	return s
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start starts the web server and blocks until it stops
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	logger.Noticef("starting web server on http://localhost%s", addr)
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func corsMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Set("Access-Control-Allow-Origin", "*")
		c.Response().Header().Set("Access-Control-Allow-Methods", "GET")
		c.Response().Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept")

		if c.Request().Method == http.MethodOptions {
			return c.NoContent(http.StatusOK)
		}

		return next(c)
	}
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in presets and the scene files on disk
func (s *Server) handleScenes(c echo.Context) error {
	scenes, err := scene.ListScenes(s.sceneDir)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, scenes)
}

// loadScene resolves a scene ID from a request. Raw file paths are not
// accepted over HTTP.
func (s *Server) loadScene(id string) (*scene.Scene, *scene.Camera, error) {
	for _, info := range mustList(s.sceneDir) {
		if info.ID == id {
			sc, camera, err := scene.Load(id, s.sceneDir)
			if err != nil {
				return nil, nil, echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
			}
			return sc, camera, nil
		}
	}
	return nil, nil, echo.NewHTTPError(http.StatusNotFound, "unknown scene: "+id)
}

func mustList(dir string) []scene.SceneInfo {
	scenes, err := scene.ListScenes(dir)
	if err != nil {
		logger.Warningf("failed to list scenes in %s: %v", dir, err)
		return scene.Presets()
	}
	return scenes
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}
