package handlers

import (
	"errors"
	"log/slog"

	"verba/internal/middleware"
	"verba/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthHandler struct {
	db        *gorm.DB
	jwtSecret string
}

func NewAuthHandler(db *gorm.DB, jwtSecret string) *AuthHandler {
	return &AuthHandler{db: db, jwtSecret: jwtSecret}
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required,min=1"`
	Role     string `json:"role" validate:"omitempty,oneof=user admin"`
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if !bindBody(c, &req) {
		return nil
	}

	var existing models.User
	err := h.db.WithContext(c.Context()).Where("email = ?", req.Email).First(&existing).Error
	if err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "email already in use",
		})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	role := req.Role
	if role == "" {
		role = models.RoleUser
	}

	user := models.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		Name:         req.Name,
		Role:         role,
	}
	if err := h.db.WithContext(c.Context()).Create(&user).Error; err != nil {
		return err
	}

	token, err := middleware.GenerateToken(user.ID, user.Role, h.jwtSecret)
	if err != nil {
		slog.Error("token generation failed", "error", err)
		return err
	}

	return c.JSON(fiber.Map{
		"user":  user,
		"token": token,
	})
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if !bindBody(c, &req) {
		return nil
	}

	var user models.User
	if err := h.db.WithContext(c.Context()).Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid credentials",
			})
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "invalid credentials",
		})
	}

	token, err := middleware.GenerateToken(user.ID, user.Role, h.jwtSecret)
	if err != nil {
		slog.Error("token generation failed", "error", err)
		return err
	}

	return c.JSON(fiber.Map{
		"user":  user,
		"token": token,
	})
}
