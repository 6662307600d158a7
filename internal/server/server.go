// Package server exposes the content and results HTTP API.
package server

import (
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"

	"github.com/mkurev/typedrill/internal/store"
)

// Server wires the fiber app to the store.
type Server struct {
	app      *fiber.App
	store    *store.Store
	validate *validator.Validate
}

// New builds the HTTP API. publicDir, when set, is served as the static
// frontend alongside the /api routes.
func New(st *store.Store, publicDir string) *Server {
	s := &Server{
		store:    st,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
	app := fiber.New(fiber.Config{
		JSONEncoder: json.Marshal,
		JSONDecoder: json.Unmarshal,
	})

	app.Use(func(c *fiber.Ctx) error {
		slog.Debug("request", "ip", c.IP(), "method", c.Method(), "path", c.Path())
		return c.Next()
	})

	api := app.Group("/api")
	contentGr := api.Group("/content")
	contentGr.Get("/lessons", s.handleListLessons)
	contentGr.Get("/tests", s.handleListTests)
	contentGr.Get("/wordlist/:name", s.handleGetWordList)
	api.Get("/results", s.handleListResults)
	api.Post("/results", s.handleSaveResult)

	if publicDir != "" {
		app.Static("/", publicDir)
	}

	s.app = app
	return s
}

// App exposes the fiber app for tests.
func (s *Server) App() *fiber.App { return s.app }

// Listen blocks serving on the given address.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// errorBody is the wire shape of every non-2xx response.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

func fail(c *fiber.Ctx, status int, message string, err error) error {
	body := errorBody{Message: message}
	if err != nil {
		body.Error = err.Error()
	}
	return c.Status(status).JSON(body)
}
