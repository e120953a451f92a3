package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"verba/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConversationsScopedToCallerNewestFirst(t *testing.T) {
	env := newTestEnv(t)
	tokenA, idA := env.registerUser(t, "a@example.com", "")
	tokenB, _ := env.registerUser(t, "b@example.com", "")

	userA := uuid.MustParse(idA)
	older := models.Conversation{UserID: userA, Title: "older"}
	require.NoError(t, env.db.Create(&older).Error)
	require.NoError(t, env.db.Model(&older).Update("updated_at", time.Now().Add(-time.Hour)).Error)
	newer := models.Conversation{UserID: userA, Title: "newer"}
	require.NoError(t, env.db.Create(&newer).Error)

	resp := env.request(t, http.MethodPost, "/api/conversations", tokenB, fiber.Map{"title": "other user"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.request(t, http.MethodGet, "/api/conversations", tokenA, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Items []models.Conversation `json:"items"`
	}
	decodeJSON(t, resp, &body)
	require.Len(t, body.Items, 2)
	assert.Equal(t, "newer", body.Items[0].Title)
	assert.Equal(t, "older", body.Items[1].Title)
}

func TestCreateConversationRequiresTitle(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.registerUser(t, "titleless@example.com", "")

	resp := env.request(t, http.MethodPost, "/api/conversations", token, fiber.Map{"title": ""})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateAndListMessages(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.registerUser(t, "msgs@example.com", "")

	resp := env.request(t, http.MethodPost, "/api/conversations", token, fiber.Map{"title": "notes"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var created struct {
		Conversation models.Conversation `json:"conversation"`
	}
	decodeJSON(t, resp, &created)
	convID := created.Conversation.ID.String()

	resp = env.request(t, http.MethodPost, "/api/conversations/"+convID+"/messages", token, fiber.Map{
		"role":    "user",
		"content": "first note",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.request(t, http.MethodGet, "/api/conversations/"+convID+"/messages", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var listing struct {
		Messages []models.Message `json:"messages"`
	}
	decodeJSON(t, resp, &listing)
	require.Len(t, listing.Messages, 1)
	assert.Equal(t, "first note", listing.Messages[0].Content)
}

func TestListMessagesRejectsBadID(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.registerUser(t, "badid@example.com", "")

	resp := env.request(t, http.MethodGet, "/api/conversations/not-a-uuid/messages", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateMessageRejectsBadRole(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.registerUser(t, "badrole@example.com", "")

	resp := env.request(t, http.MethodPost, "/api/conversations", token, fiber.Map{"title": "x"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var created struct {
		Conversation models.Conversation `json:"conversation"`
	}
	decodeJSON(t, resp, &created)

	resp = env.request(t, http.MethodPost, "/api/conversations/"+created.Conversation.ID.String()+"/messages", token, fiber.Map{
		"role":    "system",
		"content": "nope",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
