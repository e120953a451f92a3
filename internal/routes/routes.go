package routes

import (
	"verba/internal/config"
	"verba/internal/handlers"
	"verba/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	conversationHandler *handlers.ConversationHandler,
	preferenceHandler *handlers.PreferenceHandler,
	aiHandler *handlers.AIHandler,
	documentHandler *handlers.DocumentHandler,
	adminHandler *handlers.AdminHandler,
) {
	// ─── Public ──────────────────────────────────────────────────────────
	app.Get("/health", handlers.Health)

	app.Post("/api/auth/register", authHandler.Register)
	app.Post("/api/auth/login", authHandler.Login)

	// Document export carries no credential, matching the original surface.
	docs := app.Group("/api/documents")
	docs.Post("/generate", documentHandler.Generate)
	docs.Post("/txt", documentHandler.Text)
	docs.Post("/md", documentHandler.Markdown)
	docs.Post("/pdf", documentHandler.PDF)
	docs.Post("/docx", documentHandler.Docx)

	// ─── Protected ───────────────────────────────────────────────────────
	api := app.Group("/api", middleware.Protected(cfg.JWTSecret))

	// Conversations
	api.Get("/conversations", conversationHandler.List)
	api.Post("/conversations", conversationHandler.Create)
	api.Get("/conversations/:id/messages", conversationHandler.ListMessages)
	api.Post("/conversations/:id/messages", conversationHandler.CreateMessage)

	// Preferences
	api.Get("/preferences/me", preferenceHandler.Me)
	api.Put("/preferences/me", preferenceHandler.Update)

	// AI pipeline
	ai := api.Group("/ai")
	ai.Post("/chat", aiHandler.Chat)
	ai.Post("/vision", aiHandler.Vision)
	ai.Post("/transcribe", aiHandler.Transcribe)
	ai.Post("/image-gen", aiHandler.ImageGen)
	ai.Post("/tts", aiHandler.TTS)

	// Admin
	api.Get("/admin/stats", middleware.RequireAdmin(), adminHandler.Stats)
}
