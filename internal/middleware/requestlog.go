package middleware

import (
	"log/slog"
	"time"

	"verba/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RequestLogger emits a structured access log line and persists a RequestLog
// row after the response. The write is detached from the response lifecycle:
// it runs in its own goroutine and its failure only reaches the operational
// log, never the client.
func RequestLogger(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		method := c.Method()
		path := c.Path()

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		durationMs := time.Since(start).Milliseconds()

		var userID *uuid.UUID
		if id, ok := c.Locals(LocalUserID).(uuid.UUID); ok {
			userID = &id
		}

		if path != "/health" {
			slog.Info("request",
				"method", method,
				"path", path,
				"status", status,
				"duration_ms", durationMs,
				"ip", c.IP(),
			)
		}

		entry := models.RequestLog{
			UserID:     userID,
			Method:     method,
			Path:       path,
			Status:     status,
			DurationMs: durationMs,
		}
		go func() {
			if dbErr := db.Create(&entry).Error; dbErr != nil {
				slog.Error("request log write failed", "error", dbErr)
			}
		}()

		return err
	}
}
