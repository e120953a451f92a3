package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"time"

	"verba/internal/ai"
	"verba/internal/media"
	"verba/internal/middleware"
	"verba/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const titleMaxLen = 40

// AIHandler sequences each modality: validate, load state, call out,
// persist, respond.
type AIHandler struct {
	db         *gorm.DB
	ai         ai.Client
	ocr        media.OCR
	transcoder media.Transcoder
	timeout    time.Duration
}

func NewAIHandler(db *gorm.DB, client ai.Client, ocr media.OCR, transcoder media.Transcoder, timeout time.Duration) *AIHandler {
	return &AIHandler{
		db:         db,
		ai:         client,
		ocr:        ocr,
		transcoder: transcoder,
		timeout:    timeout,
	}
}

func (h *AIHandler) requestContext(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Context(), h.timeout)
}

func upstreamError(c *fiber.Ctx, msg string, err error) error {
	slog.Error(msg, "error", err)
	return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": msg})
}

// ─── Chat ───────────────────────────────────────────────────────────────────

type chatRequest struct {
	Message        string   `json:"message" validate:"required,min=1"`
	ConversationID string   `json:"conversationId" validate:"omitempty,uuid"`
	ImageURLs      []string `json:"imageUrls" validate:"omitempty,dive,url"`
}

func (h *AIHandler) Chat(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	var req chatRequest
	if !bindBody(c, &req) {
		return nil
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	prefs, err := loadOrCreatePreference(ctx, h.db, userID)
	if err != nil {
		return err
	}

	var convID uuid.UUID
	if req.ConversationID != "" {
		convID, err = uuid.Parse(req.ConversationID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid conversation id"})
		}
		var conv models.Conversation
		err := h.db.WithContext(ctx).
			Where("id = ? AND user_id = ?", convID, userID).
			First(&conv).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "conversation not found"})
		}
		if err != nil {
			return err
		}
	} else {
		conv := models.Conversation{UserID: userID, Title: truncate(req.Message, titleMaxLen)}
		if err := h.db.WithContext(ctx).Create(&conv).Error; err != nil {
			return err
		}
		convID = conv.ID
	}

	userMsg := models.Message{
		ConversationID: convID,
		UserID:         userID,
		Role:           models.MessageRoleUser,
		Content:        req.Message,
	}
	if len(req.ImageURLs) > 0 {
		urls, err := json.Marshal(req.ImageURLs)
		if err != nil {
			return err
		}
		userMsg.Attachments = datatypes.JSON(urls)
	}
	if err := h.db.WithContext(ctx).Create(&userMsg).Error; err != nil {
		return err
	}

	// The user message stays persisted even when the remote call fails;
	// the failure is reported, never swallowed.
	content, err := h.ai.Complete(ctx, ai.CompletionRequest{
		Model:       prefs.ModelName,
		Temperature: prefs.Temperature,
		System:      prefs.Persona,
		Text:        req.Message,
		ImageURLs:   req.ImageURLs,
	})
	if err != nil {
		return upstreamError(c, "ai service unavailable", err)
	}

	assistantMsg := models.Message{
		ConversationID: convID,
		UserID:         userID,
		Role:           models.MessageRoleAssistant,
		Content:        content,
	}
	if err := h.db.WithContext(ctx).Create(&assistantMsg).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"content":        content,
		"conversationId": convID,
	})
}

// ─── Vision ─────────────────────────────────────────────────────────────────

func (h *AIHandler) Vision(c *fiber.Ctx) error {
	file, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "image file is required"})
	}

	data, mimeType, err := readUpload(file)
	if err != nil {
		return err
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	tmpPath, cleanup, err := media.WriteTemp("img-*.png", data)
	if err != nil {
		return err
	}
	defer cleanup()

	// OCR and captioning are independent; each failure is reported under
	// its own message so the caller can tell which stage broke.
	ocrText, err := h.ocr.ExtractText(ctx, tmpPath)
	if err != nil {
		return upstreamError(c, "ocr failed", err)
	}

	caption, err := h.ai.Caption(ctx, mimeType, data)
	if err != nil {
		return upstreamError(c, "ai service unavailable", err)
	}

	return c.JSON(fiber.Map{
		"text":    caption,
		"ocrText": ocrText,
	})
}

// ─── Transcription ──────────────────────────────────────────────────────────

func (h *AIHandler) Transcribe(c *fiber.Ctx) error {
	file, err := c.FormFile("audio")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "audio file is required"})
	}

	data, _, err := readUpload(file)
	if err != nil {
		return err
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	inPath, cleanupIn, err := media.WriteTemp("audio-in-*.webm", data)
	if err != nil {
		return err
	}
	defer cleanupIn()

	outPath, cleanupOut, err := media.TempPath("audio-out-*.mp3")
	if err != nil {
		return err
	}
	defer cleanupOut()

	if err := h.transcoder.ToMP3(ctx, inPath, outPath); err != nil {
		return upstreamError(c, "transcode failed", err)
	}

	text, err := h.ai.Transcribe(ctx, outPath)
	if err != nil {
		return upstreamError(c, "ai service unavailable", err)
	}

	return c.JSON(fiber.Map{"text": text})
}

// ─── Image generation ───────────────────────────────────────────────────────

type imageGenRequest struct {
	Prompt string `json:"prompt" validate:"required,min=5"`
}

func (h *AIHandler) ImageGen(c *fiber.Ctx) error {
	var req imageGenRequest
	if !bindBody(c, &req) {
		return nil
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	imageBase64, err := h.ai.GenerateImage(ctx, req.Prompt)
	if err != nil {
		return upstreamError(c, "ai service unavailable", err)
	}

	return c.JSON(fiber.Map{"imageBase64": imageBase64})
}

// ─── Speech synthesis ───────────────────────────────────────────────────────

type ttsRequest struct {
	Text  string `json:"text" validate:"required,min=1"`
	Voice string `json:"voice" validate:"omitempty,min=1"`
}

func (h *AIHandler) TTS(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	var req ttsRequest
	if !bindBody(c, &req) {
		return nil
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	// Voice resolution: request, then stored preference, then the default.
	voice := req.Voice
	if voice == "" {
		prefs, err := loadOrCreatePreference(ctx, h.db, userID)
		if err != nil {
			return err
		}
		voice = prefs.Voice
	}
	if voice == "" {
		voice = models.DefaultVoice
	}

	audio, err := h.ai.Speak(ctx, req.Text, voice)
	if err != nil {
		return upstreamError(c, "ai service unavailable", err)
	}

	c.Set(fiber.HeaderContentType, "audio/mpeg")
	return c.Send(audio)
}

// ─── Helpers ────────────────────────────────────────────────────────────────

func readUpload(file *multipart.FileHeader) ([]byte, string, error) {
	f, err := file.Open()
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, "", err
	}

	mimeType := file.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	return data, mimeType, nil
}

// truncate cuts s to at most max runes, never splitting a multibyte rune.
func truncate(s string, max int) string {
	n := 0
	for i := range s {
		if n == max {
			return s[:i]
		}
		n++
	}
	return s
}
