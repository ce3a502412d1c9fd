package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"veye-site/internal/api/handlers"
	"veye-site/internal/assistant"
	"veye-site/internal/dto"
	"veye-site/internal/knowledge"
	"veye-site/internal/models"
	"veye-site/internal/service"
	"veye-site/pkg/auth"
	"veye-site/pkg/config"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubMailer struct {
	err  error
	sent int
}

func (m *stubMailer) SendLead(ctx context.Context, lead *models.Lead) error {
	if m.err != nil {
		return m.err
	}
	m.sent++
	return nil
}

type testEnv struct {
	doc       *knowledge.Document
	mailer    service.Mailer
	rateLimit config.RateLimitConfig
}

func newTestApp(t *testing.T, env testEnv) (*fiber.App, *auth.JWTManager) {
	t.Helper()
	logger := zap.NewNop()

	provider := knowledge.StaticProvider{Doc: env.doc}
	router := assistant.NewRouter(provider, nil)
	chatService, err := service.NewChatService(provider, router, service.ChatOptions{}, logger)
	require.NoError(t, err)
	contactService := service.NewContactService(env.mailer, nil, logger)
	jwtManager := auth.NewJWTManager("test-secret", time.Hour, time.Hour)

	cfg := &config.Config{RateLimit: env.rateLimit}
	app := SetupRouter(Handlers{
		Chat:      handlers.NewChatHandler(chatService, logger),
		Knowledge: handlers.NewKnowledgeHandler(chatService, logger),
		Contact:   handlers.NewContactHandler(contactService, logger),
		Auth:      handlers.NewAuthHandler(nil, logger),
		Leads:     handlers.NewLeadHandler(contactService, logger),
	}, jwtManager, cfg, logger)

	return app, jwtManager
}

func siteDoc() *knowledge.Document {
	return &knowledge.Document{
		Meta:            knowledge.Meta{Version: "2026.01", LastUpdated: "2026-01-17"},
		Brand:           knowledge.Brand{Name: "Veye Media"},
		AssistantPolicy: knowledge.AssistantPolicy{FallbackMessage: "Please use Start a Conversation to reach our team."},
		SystemsWeBuild:  []knowledge.System{{Name: "Growth Surfaces"}, {Name: "Media Intelligence"}},
		FAQ: []knowledge.FAQEntry{
			{Question: "What is your pricing?", Answer: "We don't publish fixed pricing."},
		},
	}
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string, headers ...string) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	resp, err := app.Test(req)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var out map[string]any
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), "body: %s", raw)
	}
	return resp, out
}

func TestChatEndpoint(t *testing.T) {
	app, _ := newTestApp(t, testEnv{doc: siteDoc()})

	resp, body := doJSON(t, app, fiber.MethodPost, "/api/chat", `{"message":"what is your pricing"}`)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get(fiber.HeaderAccessControlAllowOrigin))

	want := "We don't publish fixed pricing.\nStart a Conversation: /start-a-conversation"
	for _, key := range []string{"answer", "reply", "text", "message", "content"} {
		assert.Equal(t, want, body[key], key)
	}
	assert.Equal(t, false, body["isHandoff"])
	assert.Equal(t, "/velocity-sync-engine", body["href"])
	assert.NotContains(t, body, "handoffReason")
	assert.Len(t, body["sources"], 1)
}

func TestChatEndpoint_NeverFails(t *testing.T) {
	t.Run("other method", func(t *testing.T) {
		app, _ := newTestApp(t, testEnv{doc: siteDoc()})
		resp, body := doJSON(t, app, fiber.MethodGet, "/api/chat", "")
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, true, body["isHandoff"])
		assert.Equal(t, service.MethodNotAllowedMessage, body["answer"])
		assert.Equal(t, "/start-a-conversation", body["href"])
	})

	t.Run("preflight", func(t *testing.T) {
		app, _ := newTestApp(t, testEnv{doc: siteDoc()})
		resp, body := doJSON(t, app, fiber.MethodOptions, "/api/chat", "")
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Nil(t, body)
		assert.Equal(t, "POST, OPTIONS", resp.Header.Get(fiber.HeaderAccessControlAllowMethods))
	})

	t.Run("malformed body", func(t *testing.T) {
		app, _ := newTestApp(t, testEnv{doc: siteDoc()})
		resp, body := doJSON(t, app, fiber.MethodPost, "/api/chat", `{"message":`)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, assistant.EmptyMessagePrompt+"\nStart a Conversation: /start-a-conversation", body["answer"])
	})

	t.Run("knowledge unavailable", func(t *testing.T) {
		app, _ := newTestApp(t, testEnv{})
		resp, body := doJSON(t, app, fiber.MethodPost, "/api/chat", `{"message":"hello"}`)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, true, body["isHandoff"])
		assert.True(t, strings.HasPrefix(body["answer"].(string), assistant.UnavailableMessage))
	})

	t.Run("rate limited", func(t *testing.T) {
		app, _ := newTestApp(t, testEnv{doc: siteDoc(), rateLimit: config.RateLimitConfig{ChatPerMinute: 1}})
		doJSON(t, app, fiber.MethodPost, "/api/chat", `{"message":"hi"}`)

		resp, body := doJSON(t, app, fiber.MethodPost, "/api/chat", `{"message":"hi"}`)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, service.RateLimitedMessage, body["answer"])
		assert.Equal(t, true, body["isHandoff"])
	})
}

func TestContactEndpoint(t *testing.T) {
	lead := dto.ContactRequest{
		FullName:         "Jordan Avery",
		Organization:     "Northwind Logistics",
		Email:            "jordan@northwind.example",
		OperationalScale: "$10M-$50M",
		GrowthBarrier:    "Fragmented attribution",
		Mandate:          "Unify our acquisition channels into one measurable growth system.",
	}
	payload, err := json.Marshal(lead)
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		mailer := &stubMailer{}
		app, _ := newTestApp(t, testEnv{doc: siteDoc(), mailer: mailer})

		resp, body := doJSON(t, app, fiber.MethodPost, "/api/contact", string(payload))
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, true, body["ok"])
		assert.NotEmpty(t, body["id"])
		assert.Equal(t, 1, mailer.sent)
	})

	t.Run("missing fields", func(t *testing.T) {
		app, _ := newTestApp(t, testEnv{doc: siteDoc(), mailer: &stubMailer{}})

		resp, body := doJSON(t, app, fiber.MethodPost, "/api/contact", `{"fullName":"Jordan","email":"nope"}`)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Missing required fields", body["error"])

		fields := body["fields"].(map[string]any)
		assert.Equal(t, "invalid", fields["email"])
		assert.Equal(t, "required", fields["mandate"])
		assert.NotContains(t, fields, "fullName")
	})

	t.Run("not configured", func(t *testing.T) {
		app, _ := newTestApp(t, testEnv{doc: siteDoc()})
		resp, _ := doJSON(t, app, fiber.MethodPost, "/api/contact", string(payload))
		assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
	})

	t.Run("provider failure", func(t *testing.T) {
		app, _ := newTestApp(t, testEnv{doc: siteDoc(), mailer: &stubMailer{err: errors.New("dial tcp: timeout")}})
		resp, body := doJSON(t, app, fiber.MethodPost, "/api/contact", string(payload))
		assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)
		assert.Equal(t, "Email send failed", body["error"])
	})

	t.Run("wrong method", func(t *testing.T) {
		app, _ := newTestApp(t, testEnv{doc: siteDoc(), mailer: &stubMailer{}})
		resp, _ := doJSON(t, app, fiber.MethodGet, "/api/contact", "")
		assert.Equal(t, fiber.StatusMethodNotAllowed, resp.StatusCode)
	})
}

func TestKnowledgeHealthEndpoint(t *testing.T) {
	app, _ := newTestApp(t, testEnv{doc: siteDoc()})
	resp, body := doJSON(t, app, fiber.MethodGet, "/api/knowledge-health", "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "2026.01", body["version"])
	assert.Equal(t, "2026-01-17", body["lastUpdated"])
	assert.Equal(t, float64(2), body["systemsCount"])

	app, _ = newTestApp(t, testEnv{})
	resp, body = doJSON(t, app, fiber.MethodGet, "/api/knowledge-health", "")
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, false, body["ok"])
	assert.NotEmpty(t, body["error"])
}

func TestAdminEndpointsWithoutDatabase(t *testing.T) {
	app, jwtManager := newTestApp(t, testEnv{doc: siteDoc()})

	resp, _ := doJSON(t, app, fiber.MethodPost, "/api/v1/admin/auth/login", `{"email":"a@b.co","password":"x"}`)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)

	resp, _ = doJSON(t, app, fiber.MethodGet, "/api/v1/admin/leads", "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	token, err := jwtManager.GenerateToken("admin-1", "ops@veyemedia.co")
	require.NoError(t, err)
	resp, body := doJSON(t, app, fiber.MethodGet, "/api/v1/admin/leads", "", fiber.HeaderAuthorization, "Bearer "+token)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
	assert.NotEmpty(t, body["error"])
}
