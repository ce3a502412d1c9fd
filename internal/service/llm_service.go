package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"veye-site/internal/knowledge"
	"veye-site/pkg/config"

	"github.com/Role1776/gigago"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

const (
	ProviderGemini   = "gemini"
	ProviderGigaChat = "gigachat"

	generatorTemperature = 0.3
)

var (
	ErrUnknownProvider = errors.New("unknown generative provider")
	ErrMissingAPIKey   = errors.New("generative provider API key is not set")
	ErrEmptyGeneration = errors.New("no response from model")
)

// Generator answers a visitor message the knowledge document could not.
type Generator interface {
	Generate(ctx context.Context, systemInstruction, message string) (string, error)
	Close() error
}

// NewGenerator builds the generator selected by cfg.Assistant.Provider.
func NewGenerator(ctx context.Context, cfg *config.Config, logger *zap.Logger) (Generator, error) {
	switch cfg.Assistant.Provider {
	case ProviderGemini, "":
		return NewGeminiGenerator(ctx, &cfg.Gemini, logger)
	case ProviderGigaChat:
		return NewGigaChatGenerator(ctx, &cfg.GigaChat, logger)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Assistant.Provider)
	}
}

// BuildSystemInstruction grounds the model on the knowledge document and the
// site's human contact channels.
func BuildSystemInstruction(doc *knowledge.Document, site config.SiteConfig) string {
	var b strings.Builder

	brand := doc.Brand.Name
	fmt.Fprintf(&b, "You are the %q site assistant. You are not a human; if asked, say so.\n", brand+" site assistant")
	b.WriteString("Help visitors understand what we architect, the outcomes our systems enable, and whether we may be a strategic fit.\n")
	b.WriteString("Answer only at a strategic, outcomes level. Never reveal internal processes, tools, workflows or architecture.\n")
	b.WriteString("Answer in at most three sentences and do not include links.\n")
	b.WriteString("If the visitor asks about pricing, proposals, retainers or wants a person, briefly address it and offer Start a Conversation")
	if site.ContactPhone != "" || site.ContactEmail != "" {
		fmt.Fprintf(&b, " (office phone: %s, email: %s)", site.ContactPhone, site.ContactEmail)
	}
	b.WriteString(". We typically respond within 1 business day.\n")
	b.WriteString("Use only the facts below. If they do not cover the question, say so and suggest Start a Conversation.\n")

	if len(doc.SystemsWeBuild) > 0 {
		b.WriteString("\nSystems we build:\n")
		for _, sys := range doc.SystemsWeBuild {
			fmt.Fprintf(&b, "- %s", sys.Name)
			if sys.WhatItIs != "" {
				fmt.Fprintf(&b, ": %s", sys.WhatItIs)
			}
			if len(sys.Outcomes) > 0 {
				fmt.Fprintf(&b, " Outcomes: %s.", strings.Join(sys.Outcomes, "; "))
			}
			b.WriteString("\n")
		}
	}

	if len(doc.ApprovedLanguage.PreferredExplanations) > 0 {
		b.WriteString("\nApproved explanations:\n")
		for _, pe := range doc.ApprovedLanguage.PreferredExplanations {
			fmt.Fprintf(&b, "- %s: %s\n", pe.Topic, pe.Answer)
		}
	}

	if len(doc.FAQ) > 0 {
		b.WriteString("\nFAQ:\n")
		for _, entry := range doc.FAQ {
			fmt.Fprintf(&b, "- Q: %s A: %s\n", entry.Question, entry.Answer)
		}
	}

	b.WriteString("\nTone: calm, confident, strategic, professional, non-salesy. Avoid buzzwords and technical jargon.")
	return b.String()
}

type GeminiGenerator struct {
	client *genai.Client
	model  string
	logger *zap.Logger
}

func NewGeminiGenerator(ctx context.Context, cfg *config.GeminiConfig, logger *zap.Logger) (*GeminiGenerator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini: %w", ErrMissingAPIKey)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	logger.Info("Using Gemini model", zap.String("model", cfg.Model))

	return &GeminiGenerator{
		client: client,
		model:  cfg.Model,
		logger: logger,
	}, nil
}

func (g *GeminiGenerator) Generate(ctx context.Context, systemInstruction, message string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(message), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
		Temperature:       genai.Ptr[float32](generatorTemperature),
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate response: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", ErrEmptyGeneration
	}
	return text, nil
}

// Close is a no-op; the genai client holds no resources that need release.
func (g *GeminiGenerator) Close() error {
	return nil
}

type GigaChatGenerator struct {
	client *gigago.Client
	logger *zap.Logger
}

func NewGigaChatGenerator(ctx context.Context, cfg *config.GigaChatConfig, logger *zap.Logger) (*GigaChatGenerator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gigachat: %w", ErrMissingAPIKey)
	}

	opts := []gigago.Option{
		gigago.WithCustomScope(cfg.Scope),
	}

	if cfg.InsecureSkipVerify {
		opts = append(opts, gigago.WithCustomInsecureSkipVerify(true))
		logger.Warn("GigaChat TLS certificate verification is disabled")
	}

	client, err := gigago.NewClient(ctx, cfg.APIKey, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GigaChat client: %w", err)
	}

	logger.Info("Using GigaChat model")

	return &GigaChatGenerator{
		client: client,
		logger: logger,
	}, nil
}

func (g *GigaChatGenerator) Generate(ctx context.Context, systemInstruction, message string) (string, error) {
	model := g.client.GenerativeModel("GigaChat")
	model.SystemInstruction = systemInstruction
	model.Temperature = generatorTemperature

	messages := []gigago.Message{
		{Role: gigago.RoleUser, Content: message},
	}

	resp, err := model.Generate(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("failed to generate response: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrEmptyGeneration
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", ErrEmptyGeneration
	}
	return text, nil
}

func (g *GigaChatGenerator) Close() error {
	if g.client != nil {
		g.client.Close()
	}
	return nil
}
