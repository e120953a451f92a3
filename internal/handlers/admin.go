package handlers

import (
	"math"
	"time"

	"verba/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type AdminHandler struct {
	db *gorm.DB
}

func NewAdminHandler(db *gorm.DB) *AdminHandler {
	return &AdminHandler{db: db}
}

// Stats aggregates read-only counters; the five queries run concurrently.
func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	var (
		users         int64
		conversations int64
		messages      int64
		recent        int64
		avg           float64
	)

	g, ctx := errgroup.WithContext(c.Context())
	db := h.db

	g.Go(func() error {
		return db.WithContext(ctx).Model(&models.User{}).Count(&users).Error
	})
	g.Go(func() error {
		return db.WithContext(ctx).Model(&models.Conversation{}).Count(&conversations).Error
	})
	g.Go(func() error {
		return db.WithContext(ctx).Model(&models.Message{}).Count(&messages).Error
	})
	g.Go(func() error {
		cutoff := time.Now().Add(-24 * time.Hour)
		return db.WithContext(ctx).Model(&models.RequestLog{}).
			Where("created_at >= ?", cutoff).
			Count(&recent).Error
	})
	g.Go(func() error {
		return db.WithContext(ctx).Model(&models.RequestLog{}).
			Select("COALESCE(AVG(duration_ms), 0)").
			Scan(&avg).Error
	})

	if err := g.Wait(); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"users":           users,
		"conversations":   conversations,
		"messages":        messages,
		"requestsLast24h": recent,
		"avgDurationMs":   int64(math.Round(avg)),
	})
}
