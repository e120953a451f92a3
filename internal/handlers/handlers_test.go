package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"verba/internal/ai"
	"verba/internal/config"
	"verba/internal/database"
	"verba/internal/handlers"
	"verba/internal/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSecret = "test-secret-at-least-16-chars"

// fakeAI is a canned remote AI client with per-method error injection.
type fakeAI struct {
	completeReply  string
	completeErr    error
	captionReply   string
	captionErr     error
	transcribeText string
	transcribeErr  error
	imageB64       string
	imageErr       error
	speech         []byte
	speechErr      error

	lastComplete ai.CompletionRequest
	lastVoice    string
}

func (f *fakeAI) Complete(ctx context.Context, req ai.CompletionRequest) (string, error) {
	f.lastComplete = req
	return f.completeReply, f.completeErr
}

func (f *fakeAI) Caption(ctx context.Context, mimeType string, data []byte) (string, error) {
	return f.captionReply, f.captionErr
}

func (f *fakeAI) Transcribe(ctx context.Context, path string) (string, error) {
	return f.transcribeText, f.transcribeErr
}

func (f *fakeAI) GenerateImage(ctx context.Context, prompt string) (string, error) {
	return f.imageB64, f.imageErr
}

func (f *fakeAI) Speak(ctx context.Context, text, voice string) ([]byte, error) {
	f.lastVoice = voice
	return f.speech, f.speechErr
}

type fakeOCR struct {
	text    string
	err     error
	lastCtx context.Context
}

func (f *fakeOCR) ExtractText(ctx context.Context, path string) (string, error) {
	f.lastCtx = ctx
	return f.text, f.err
}

// fakeTranscoder copies input to output so the pipeline has a real file
// to hand to transcription.
type fakeTranscoder struct {
	err error
}

func (f *fakeTranscoder) ToMP3(ctx context.Context, inPath, outPath string) error {
	if f.err != nil {
		return f.err
	}
	data, err := os.ReadFile(inPath)
	if err != nil {
		return err
	}
	return os.WriteFile(outPath, data, 0o600)
}

type testEnv struct {
	app *fiber.App
	db  *gorm.DB
	ai  *fakeAI
	ocr *fakeOCR
	tc  *fakeTranscoder
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	fake := &fakeAI{
		completeReply:  "Hello there!",
		captionReply:   "a cat on a keyboard",
		transcribeText: "hello world",
		imageB64:       "aW1hZ2U=",
		speech:         []byte("mp3-bytes"),
	}
	ocr := &fakeOCR{text: "printed text"}
	tc := &fakeTranscoder{}

	cfg := &config.Config{JWTSecret: testSecret}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := "internal server error"
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
				message = e.Message
			}
			return c.Status(code).JSON(fiber.Map{"error": message})
		},
	})
	routes.Setup(app, cfg,
		handlers.NewAuthHandler(db, testSecret),
		handlers.NewConversationHandler(db),
		handlers.NewPreferenceHandler(db),
		handlers.NewAIHandler(db, fake, ocr, tc, 5*time.Second),
		handlers.NewDocumentHandler(),
		handlers.NewAdminHandler(db),
	)

	return &testEnv{app: app, db: db, ai: fake, ocr: ocr, tc: tc}
}

func (e *testEnv) request(t *testing.T, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dst interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dst))
}

// registerUser creates an account and returns its token and id.
func (e *testEnv) registerUser(t *testing.T, email, role string) (token string, userID string) {
	t.Helper()

	resp := e.request(t, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"email":    email,
		"password": "password123",
		"name":     "Test User",
		"role":     role,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		User struct {
			ID string `json:"id"`
		} `json:"user"`
		Token string `json:"token"`
	}
	decodeJSON(t, resp, &body)
	require.NotEmpty(t, body.Token)
	return body.Token, body.User.ID
}
