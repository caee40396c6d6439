package controller

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"realestate-chatbot-be/internal/dto"
	"realestate-chatbot-be/internal/pkg/serverutils"
	"realestate-chatbot-be/internal/service"
	"realestate-chatbot-be/pkg/chat"
	"realestate-chatbot-be/pkg/rag/access"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type fakeChatbotService struct {
	respondErr error
	turns      []*dto.ConversationTurnResponse
	lastReq    *dto.RespondRequest
	lastAcc    uuid.UUID
}

func (f *fakeChatbotService) Respond(_ context.Context, req *dto.RespondRequest) (*dto.RespondResponse, error) {
	f.lastReq = req
	if f.respondErr != nil {
		return nil, f.respondErr
	}
	return &dto.RespondResponse{Response: "Hello!", Source: chat.SourceAI, ConversationID: "conv_1"}, nil
}

func (f *fakeChatbotService) GetConversation(_ context.Context, accountId uuid.UUID, _ string) ([]*dto.ConversationTurnResponse, error) {
	f.lastAcc = accountId
	if len(f.turns) == 0 {
		return nil, service.ErrConversationNotFound
	}
	return f.turns, nil
}

func newTestApp(svc service.IChatbotService, rate int) *fiber.App {
	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())
	NewChatbotController(svc, rate).RegisterRoutes(app.Group("/api"), serverutils.JwtMiddleware(testSecret))
	return app
}

func postRespond(t *testing.T, app *fiber.App, body string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest("POST", "/api/chatbot/v1/respond", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestRespondEndpoint(t *testing.T) {
	svc := &fakeChatbotService{}
	app := newTestApp(svc, 0)

	status, out := postRespond(t, app, `{"message":"hi","accountId":"","visitorInfo":{"visitorId":"v1"},"previousMessages":[]}`)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Hello!", out["response"])
	assert.Equal(t, "ai", out["source"])
	assert.Equal(t, "conv_1", out["conversationId"])
	assert.Equal(t, "v1", svc.lastReq.VisitorInfo.VisitorID)
}

func TestRespondEndpointNormalizesHistoryRoles(t *testing.T) {
	svc := &fakeChatbotService{}
	app := newTestApp(svc, 0)

	status, _ := postRespond(t, app, `{"message":"hi","previousMessages":[{"role":"assistant","content":"Welcome!"},{"role":"user","content":"hello"}]}`)
	require.Equal(t, fiber.StatusOK, status)
	require.Len(t, svc.lastReq.PreviousMessages, 2)
	assert.Equal(t, chat.RoleBot, svc.lastReq.PreviousMessages[0].Role)
	assert.Equal(t, chat.RoleUser, svc.lastReq.PreviousMessages[1].Role)
}

func TestRespondEndpointErrors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		err    error
		status int
	}{
		{name: "malformed body", body: `{"message":`, status: fiber.StatusBadRequest},
		{name: "missing message", body: `{"accountId":""}`, status: fiber.StatusBadRequest},
		{name: "unknown history role", body: `{"message":"hi","previousMessages":[{"role":"system","content":"x"}]}`, status: fiber.StatusBadRequest},
		{name: "feature disabled", body: `{"message":"hi"}`, err: access.ErrFeatureDisabled, status: fiber.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(&fakeChatbotService{respondErr: tt.err}, 0)
			status, out := postRespond(t, app, tt.body)
			assert.Equal(t, tt.status, status)
			assert.NotEmpty(t, out["error"])
		})
	}
}

func TestRespondRateLimited(t *testing.T) {
	app := newTestApp(&fakeChatbotService{}, 1)

	status, _ := postRespond(t, app, `{"message":"hi"}`)
	assert.Equal(t, fiber.StatusOK, status)

	status, out := postRespond(t, app, `{"message":"again"}`)
	assert.Equal(t, fiber.StatusTooManyRequests, status)
	assert.NotEmpty(t, out["error"])
}

func TestGetConversationEndpoint(t *testing.T) {
	acc := uuid.New()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"account_id": acc.String()}).
		SignedString([]byte(testSecret))
	require.NoError(t, err)

	get := func(app *fiber.App, auth bool) int {
		req := httptest.NewRequest("GET", "/api/chatbot/v1/conversations/conv_1", nil)
		if auth {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp.StatusCode
	}

	svc := &fakeChatbotService{turns: []*dto.ConversationTurnResponse{{UserMessage: "hi", BotResponse: "hello", Source: "ai"}}}
	app := newTestApp(svc, 0)
	assert.Equal(t, fiber.StatusUnauthorized, get(app, false))
	assert.Equal(t, fiber.StatusOK, get(app, true))
	assert.Equal(t, acc, svc.lastAcc)

	assert.Equal(t, fiber.StatusNotFound, get(newTestApp(&fakeChatbotService{}, 0), true))
}
