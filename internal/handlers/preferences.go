package handlers

import (
	"context"
	"errors"

	"verba/internal/middleware"
	"verba/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PreferenceHandler struct {
	db *gorm.DB
}

func NewPreferenceHandler(db *gorm.DB) *PreferenceHandler {
	return &PreferenceHandler{db: db}
}

// loadOrCreatePreference returns the caller's preference row, creating the
// default row on first read. Also used by the chat orchestrator.
func loadOrCreatePreference(ctx context.Context, db *gorm.DB, userID uuid.UUID) (models.Preference, error) {
	var prefs models.Preference
	err := db.WithContext(ctx).Where("user_id = ?", userID).First(&prefs).Error
	if err == nil {
		return prefs, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return prefs, err
	}

	prefs = models.DefaultPreference(userID)
	if err := db.WithContext(ctx).Create(&prefs).Error; err != nil {
		return prefs, err
	}
	return prefs, nil
}

func (h *PreferenceHandler) Me(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	prefs, err := loadOrCreatePreference(c.Context(), h.db, userID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"preferences": prefs})
}

type updatePreferenceRequest struct {
	ModelName   *string  `json:"modelName" validate:"omitempty,min=1"`
	Temperature *float64 `json:"temperature" validate:"omitempty,gte=0,lte=1"`
	Voice       *string  `json:"voice" validate:"omitempty,min=1"`
	Persona     *string  `json:"persona" validate:"omitempty,min=1"`
}

// Update applies a partial upsert: fields absent from the request keep
// their stored values.
func (h *PreferenceHandler) Update(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	var req updatePreferenceRequest
	if !bindBody(c, &req) {
		return nil
	}

	prefs, err := loadOrCreatePreference(c.Context(), h.db, userID)
	if err != nil {
		return err
	}

	updates := map[string]interface{}{}
	if req.ModelName != nil {
		updates["model_name"] = *req.ModelName
	}
	if req.Temperature != nil {
		updates["temperature"] = *req.Temperature
	}
	if req.Voice != nil {
		updates["voice"] = *req.Voice
	}
	if req.Persona != nil {
		updates["persona"] = *req.Persona
	}

	if len(updates) > 0 {
		if err := h.db.WithContext(c.Context()).Model(&prefs).Updates(updates).Error; err != nil {
			return err
		}
	}

	return c.JSON(fiber.Map{"preferences": prefs})
}
