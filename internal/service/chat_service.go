package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"veye-site/internal/assistant"
	"veye-site/internal/dto"
	"veye-site/internal/knowledge"
	"veye-site/pkg/config"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
)

const (
	MethodNotAllowedMessage = "Method not allowed. Please use Start a Conversation."
	SystemErrorMessage      = "System error. Please use Start a Conversation to reach our team."
	RateLimitedMessage      = "You're sending messages faster than we can answer. Please wait a moment or use Start a Conversation."

	SourceTypeKnowledge  = "knowledge"
	SourceTypeGenerative = "generative"

	defaultGenerationTimeout = 12 * time.Second
)

// ChatOptions configure the optional generative fallback. A nil Generator
// keeps the service knowledge-only.
type ChatOptions struct {
	Generator Generator
	Timeout   time.Duration
	CacheSize int
	Site      config.SiteConfig
}

type ChatService struct {
	provider  knowledge.Provider
	router    *assistant.Router
	generator Generator
	cache     *lru.Cache[string, string]
	timeout   time.Duration
	site      config.SiteConfig
	logger    *zap.Logger
}

func NewChatService(provider knowledge.Provider, router *assistant.Router, opts ChatOptions, logger *zap.Logger) (*ChatService, error) {
	s := &ChatService{
		provider:  provider,
		router:    router,
		generator: opts.Generator,
		timeout:   opts.Timeout,
		site:      opts.Site,
		logger:    logger,
	}
	if s.timeout <= 0 {
		s.timeout = defaultGenerationTimeout
	}

	if s.generator != nil {
		size := opts.CacheSize
		if size <= 0 {
			size = 256
		}
		cache, err := lru.New[string, string](size)
		if err != nil {
			return nil, fmt.Errorf("failed to create answer cache: %w", err)
		}
		s.cache = cache
	}

	return s, nil
}

// Reply never fails: every outcome, including a missing knowledge document
// or a panic in routing, becomes a response the widget can render.
func (s *ChatService) Reply(ctx context.Context, message string) (resp *dto.ChatResponse) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Chat routing panicked", zap.Any("panic", r))
			resp = s.handoff(SystemErrorMessage)
		}
	}()

	doc, err := s.provider.Knowledge(ctx)
	if err != nil {
		s.logger.Error("Knowledge unavailable", zap.Error(err))
		answer := s.router.Unavailable(message)
		return dto.NewChatResponse(answer.Text, answer.IsHandoff, answer.RedirectHref, answer.HandoffReason, nil)
	}

	answer := s.router.Route(doc, message)
	sources := []dto.Source{{
		Type:        SourceTypeKnowledge,
		Version:     doc.Meta.Version,
		LastUpdated: doc.Meta.LastUpdated,
	}}

	if answer.Source == assistant.SourceFallback && s.generator != nil {
		if text, ok := s.generate(ctx, doc, message); ok {
			answer.Text = text
			sources = append(sources, dto.Source{Type: SourceTypeGenerative})
		}
	}

	s.logger.Debug("Chat answered",
		zap.String("source", string(answer.Source)),
		zap.Bool("handoff", answer.IsHandoff),
	)

	return dto.NewChatResponse(answer.Text, answer.IsHandoff, answer.RedirectHref, answer.HandoffReason, sources)
}

// MethodNotAllowed is still a 200 handoff so the widget never breaks.
func (s *ChatService) MethodNotAllowed() *dto.ChatResponse {
	return s.handoff(MethodNotAllowedMessage)
}

func (s *ChatService) RateLimited() *dto.ChatResponse {
	return s.handoff(RateLimitedMessage)
}

// KnowledgeHealth reports which knowledge document is being served.
func (s *ChatService) KnowledgeHealth(ctx context.Context) (*dto.KnowledgeHealthResponse, error) {
	doc, err := s.provider.Knowledge(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.KnowledgeHealthResponse{
		OK:           true,
		Version:      doc.Meta.Version,
		LastUpdated:  doc.Meta.LastUpdated,
		SystemsCount: len(doc.SystemsWeBuild),
	}, nil
}

func (s *ChatService) handoff(text string) *dto.ChatResponse {
	return dto.NewChatResponse(text, true, assistant.PageStartConversation, "", nil)
}

// generate asks the model for an answer and shapes it with the enforcer.
// Timeouts and model errors are logged and reported as not ok.
func (s *ChatService) generate(ctx context.Context, doc *knowledge.Document, message string) (string, bool) {
	key := assistant.NormalizeStrict(message)
	if key == "" {
		return "", false
	}
	if text, ok := s.cache.Get(key); ok {
		return text, true
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	generated, err := s.generator.Generate(ctx, BuildSystemInstruction(doc, s.site), message)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			s.logger.Warn("Generative fallback timed out", zap.Duration("timeout", s.timeout))
		} else {
			s.logger.Warn("Generative fallback failed", zap.Error(err))
		}
		return "", false
	}

	text := s.router.Enforcer().Enforce(message, sanitizeUTF8(generated))
	s.cache.Add(key, text)
	return text, true
}
