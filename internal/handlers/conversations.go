package handlers

import (
	"verba/internal/middleware"
	"verba/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ConversationHandler struct {
	db *gorm.DB
}

func NewConversationHandler(db *gorm.DB) *ConversationHandler {
	return &ConversationHandler{db: db}
}

func (h *ConversationHandler) List(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	var items []models.Conversation
	if err := h.db.WithContext(c.Context()).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&items).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"items": items})
}

type createConversationRequest struct {
	Title string `json:"title" validate:"required,min=1"`
}

func (h *ConversationHandler) Create(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	var req createConversationRequest
	if !bindBody(c, &req) {
		return nil
	}

	conv := models.Conversation{UserID: userID, Title: req.Title}
	if err := h.db.WithContext(c.Context()).Create(&conv).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"conversation": conv})
}

func (h *ConversationHandler) ListMessages(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	convID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid conversation id"})
	}

	var messages []models.Message
	if err := h.db.WithContext(c.Context()).
		Where("conversation_id = ? AND user_id = ?", convID, userID).
		Order("created_at ASC").
		Find(&messages).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"messages": messages})
}

type createMessageRequest struct {
	Role    string `json:"role" validate:"required,oneof=user assistant"`
	Content string `json:"content" validate:"required,min=1"`
}

func (h *ConversationHandler) CreateMessage(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	convID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid conversation id"})
	}

	var req createMessageRequest
	if !bindBody(c, &req) {
		return nil
	}

	msg := models.Message{
		ConversationID: convID,
		UserID:         userID,
		Role:           req.Role,
		Content:        req.Content,
	}
	if err := h.db.WithContext(c.Context()).Create(&msg).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": msg})
}
