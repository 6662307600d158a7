package server

import (
	"database/sql"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/mkurev/typedrill/internal/model"
)

func (s *Server) handleListLessons(c *fiber.Ctx) error {
	lessons, err := s.store.ListLessons(c.Context())
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "failed to load lessons", err)
	}
	return c.JSON(lessons)
}

func (s *Server) handleListTests(c *fiber.Ctx) error {
	tests, err := s.store.ListTests(c.Context())
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "failed to load tests", err)
	}
	return c.JSON(tests)
}

func (s *Server) handleGetWordList(c *fiber.Ctx) error {
	name := c.Params("name")
	list, err := s.store.GetWordList(c.Context(), name)
	if errors.Is(err, sql.ErrNoRows) {
		return fail(c, fiber.StatusNotFound, "word list not found", nil)
	}
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "failed to load word list", err)
	}
	return c.JSON(list)
}

func (s *Server) handleListResults(c *fiber.Ctx) error {
	results, err := s.store.ListResults(c.Context(), model.StatsConfig{Filter: model.FilterAll}, true)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "failed to load results", err)
	}
	return c.JSON(results)
}

// resultPayload uses pointers on the required numeric fields so that a
// present zero is distinguishable from an absent field.
type resultPayload struct {
	WPM             *int     `json:"wpm" validate:"required,min=0"`
	Accuracy        *float64 `json:"accuracy" validate:"required,min=0,max=100"`
	Errors          *int     `json:"errors" validate:"required,min=0"`
	DurationSeconds int      `json:"duration_seconds" validate:"min=0"`
	Mode            string   `json:"mode" validate:"required,oneof=lesson test words time quote code"`
	ReferenceID     string   `json:"reference_id"`
}

func (s *Server) handleSaveResult(c *fiber.Ctx) error {
	var payload resultPayload
	if err := c.BodyParser(&payload); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid request body", err)
	}
	if err := s.validate.Struct(payload); err != nil {
		return fail(c, fiber.StatusBadRequest, "missing or invalid result fields", err)
	}

	rec := model.ResultRecord{
		Timestamp:       time.Now(),
		WPM:             *payload.WPM,
		Accuracy:        *payload.Accuracy,
		Errors:          *payload.Errors,
		DurationSeconds: payload.DurationSeconds,
		Mode:            model.Mode(payload.Mode),
		ReferenceID:     payload.ReferenceID,
	}
	id, err := s.store.InsertResult(c.Context(), rec)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "failed to save result", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "result saved",
		"id":      id,
	})
}
