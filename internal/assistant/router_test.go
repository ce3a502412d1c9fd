package assistant

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"veye-site/internal/knowledge"
)

const fallbackText = "I don't have a grounded answer for that yet. Please use Start a Conversation to reach our team."

func fixtureDoc() *knowledge.Document {
	return &knowledge.Document{
		Meta:            knowledge.Meta{Version: "2026.01", LastUpdated: "2026-01-17"},
		Brand:           knowledge.Brand{Name: "Veye Media"},
		AssistantPolicy: knowledge.AssistantPolicy{FallbackMessage: fallbackText},
		SystemsWeBuild: []knowledge.System{
			{
				Name:     "Growth Surfaces",
				WhatItIs: "Growth Surfaces are the owned digital touchpoints we architect to capture demand.",
			},
			{
				Name:           "Media Intelligence",
				Outcomes:       []string{"clearer attribution", "faster decisions"},
				WhatItIncludes: []string{"signal collection"},
				WhatItIsNot:    []string{"a reporting dashboard"},
			},
		},
		FAQ: []knowledge.FAQEntry{
			{Question: "What is your pricing?", Answer: "We don't publish fixed pricing."},
			{Question: "Where are you based?", Answer: "We are based in Virginia."},
		},
		ApprovedLanguage: knowledge.ApprovedLanguage{
			PreferredExplanations: []knowledge.PreferredExplanation{
				{Topic: "Velocity Sync Engine", Answer: "The Velocity Sync Engine is our orchestration framework."},
				{Topic: "Where are you based", Answer: "Veye Media operates from Virginia and works nationally."},
				{Topic: "Long answer", Answer: "One. Two. Three. Four. Five. Six. Seven."},
			},
		},
		HandoffRules: knowledge.HandoffRules{
			HumanHandoffTriggers: []knowledge.HandoffTrigger{
				{Name: "human_request", MatchAny: []string{"talk to a human", "real person", "live agent"}, HandoffReason: "visitor_requested_human"},
			},
			HandoffResponseTemplate: "Use Start a Conversation and we will respond within 1 business day.",
		},
	}
}

func newTestRouter(doc *knowledge.Document) *Router {
	return NewRouter(knowledge.StaticProvider{Doc: doc}, NewEnforcer(EnforcerConfig{}))
}

func TestRoute_EmptyMessage(t *testing.T) {
	minimal := &knowledge.Document{
		Brand:           knowledge.Brand{Name: "x"},
		AssistantPolicy: knowledge.AssistantPolicy{FallbackMessage: "fallback"},
		SystemsWeBuild:  []knowledge.System{{Name: "A"}},
	}

	for _, doc := range []*knowledge.Document{fixtureDoc(), minimal} {
		for _, msg := range []string{"", "   ", "\n\t"} {
			got := newTestRouter(doc).Route(doc, msg)
			assert.Equal(t, EmptyMessagePrompt+"\nStart a Conversation: /start-a-conversation", got.Text)
			assert.True(t, got.IsHandoff)
			assert.Equal(t, SourceEmpty, got.Source)
			assert.Equal(t, PageStartConversation, got.RedirectHref)
		}
	}
}

func TestRoute_SystemsOverviewListsNames(t *testing.T) {
	doc := fixtureDoc()
	got := newTestRouter(doc).Route(doc, "What systems do you build?")

	assert.Equal(t, SourceSystemsOverview, got.Source)
	assert.Contains(t, got.Text, "Growth Surfaces, Media Intelligence")
	assert.True(t, strings.HasPrefix(got.Text, "We build and maintain intelligent systems that drive growth."))
	assert.True(t, strings.HasSuffix(got.Text, "\nExplore the Velocity Sync Engine: /velocity-sync-engine"))
	assert.False(t, got.IsHandoff)
	assert.Equal(t, PageProductOverview, got.RedirectHref)
}

func TestRoute_SystemsOverviewUsesPreferredIntroAndCapsNames(t *testing.T) {
	doc := fixtureDoc()
	doc.ApprovedLanguage.PreferredExplanations = append(doc.ApprovedLanguage.PreferredExplanations,
		knowledge.PreferredExplanation{Topic: "What systems do you build?", Answer: "We architect growth infrastructure"})
	doc.SystemsWeBuild = nil
	for _, name := range []string{"S1", "S2", "S3", "S4", "S5", "S6", "S7"} {
		doc.SystemsWeBuild = append(doc.SystemsWeBuild, knowledge.System{Name: name})
	}

	got := newTestRouter(doc).Route(doc, "so what do you build")
	assert.True(t, strings.HasPrefix(got.Text, "We architect growth infrastructure. Systems we build include: S1, S2, S3, S4, S5, S6."))
	assert.NotContains(t, got.Text, "S7")
}

func TestRoute_PreferredExactBeatsFAQ(t *testing.T) {
	doc := fixtureDoc()
	got := newTestRouter(doc).Route(doc, "  WHERE are you based?? ")

	assert.Equal(t, "Veye Media operates from Virginia and works nationally.", got.Text)
	assert.Equal(t, SourcePreferredExplanation, got.Source)
	assert.Equal(t, PageProductOverview, got.RedirectHref)
}

func TestRoute_PreferredSoftMatch(t *testing.T) {
	doc := fixtureDoc()
	want := "The Velocity Sync Engine is our orchestration framework.\nExplore the Velocity Sync Engine: /velocity-sync-engine"

	got := newTestRouter(doc).Route(doc, "Tell me about the Velocity Sync Engine")
	assert.Equal(t, want, got.Text)

	got = newTestRouter(doc).Route(doc, "velocity sync")
	assert.Equal(t, want, got.Text)
	assert.Equal(t, SourcePreferredExplanation, got.Source)
}

func TestRoute_SystemByName(t *testing.T) {
	doc := fixtureDoc()

	got := newTestRouter(doc).Route(doc, "Tell me about Growth Surfaces")
	assert.Equal(t, "Growth Surfaces are the owned digital touchpoints we architect to capture demand.", got.Text)
	assert.Equal(t, SourceSystem, got.Source)
	assert.Equal(t, PageProductOverview, got.RedirectHref)

	got = newTestRouter(doc).Route(doc, "How does media intelligence work")
	assert.Equal(t, "Media Intelligence. Outcomes: clearer attribution; faster decisions. Includes: signal collection. It is not: a reporting dashboard.", got.Text)
}

func TestRoute_FAQPricingScenario(t *testing.T) {
	doc := fixtureDoc()
	got := newTestRouter(doc).Route(doc, "what is your pricing")

	assert.Equal(t, "We don't publish fixed pricing.\nStart a Conversation: /start-a-conversation", got.Text)
	assert.Equal(t, SourceFAQ, got.Source)
	assert.False(t, got.IsHandoff)
}

func TestRoute_FAQSubstring(t *testing.T) {
	doc := fixtureDoc()
	doc.ApprovedLanguage.PreferredExplanations = nil

	got := newTestRouter(doc).Route(doc, "Quick one: where are you based? Thanks")
	assert.Equal(t, "We are based in Virginia.", got.Text)
	assert.Equal(t, SourceFAQ, got.Source)
}

func TestRoute_Handoff(t *testing.T) {
	doc := fixtureDoc()
	got := newTestRouter(doc).Route(doc, "I'd like to TALK to a human please")

	require.True(t, got.IsHandoff)
	assert.Equal(t, "visitor_requested_human", got.HandoffReason)
	assert.Equal(t, SourceHandoff, got.Source)
	assert.Equal(t, PageStartConversation, got.RedirectHref)
	assert.True(t, strings.HasPrefix(got.Text, HandoffMessage+" Use Start a Conversation and we will respond within 1 business day."))
}

func TestRoute_Fallback(t *testing.T) {
	doc := fixtureDoc()
	got := newTestRouter(doc).Route(doc, "Do you sell pizza?")

	assert.Equal(t, fallbackText+"\nStart a Conversation: /start-a-conversation", got.Text)
	assert.True(t, got.IsHandoff)
	assert.Empty(t, got.HandoffReason)
	assert.Equal(t, SourceFallback, got.Source)
	assert.Equal(t, PageStartConversation, got.RedirectHref)
}

func TestRoute_TruncatesOverlongAnswers(t *testing.T) {
	doc := fixtureDoc()
	got := newTestRouter(doc).Route(doc, "long answer")

	assert.Equal(t, "One. Two. Three.", got.Text)
	assert.Len(t, SplitSentences(got.Text), 3)
}

func TestRoute_Properties(t *testing.T) {
	doc := fixtureDoc()
	r := newTestRouter(doc)
	messages := []string{
		"", "?", "!!!", "hi", "What systems do you build?", "pricing", "human", "long answer",
		"Tell me about Growth Surfaces", "real person", strings.Repeat("words ", 500),
		"[link](https://x.y) https://veyemedia.co",
	}

	for _, msg := range messages {
		first := r.Route(doc, msg)
		second := r.Route(doc, msg)

		assert.Equal(t, first, second, "route must be deterministic for %q", msg)
		assert.NotEmpty(t, strings.TrimSpace(first.Text), "empty text for %q", msg)
		assert.NotEmpty(t, first.RedirectHref)

		body := strings.SplitN(first.Text, "\n", 2)[0]
		assert.LessOrEqual(t, len(SplitSentences(body)), DefaultMaxSentences, "too many sentences for %q", msg)
	}
}

func TestRouter_AnswerPropagatesProviderError(t *testing.T) {
	r := NewRouter(knowledge.StaticProvider{}, nil)

	_, err := r.Answer(context.Background(), "hello")
	assert.ErrorIs(t, err, knowledge.ErrUnavailable)

	got := r.Unavailable("hello")
	assert.True(t, got.IsHandoff)
	assert.Equal(t, PageStartConversation, got.RedirectHref)
	assert.Equal(t, UnavailableMessage+"\nStart a Conversation: /start-a-conversation", got.Text)
}

func TestRouter_AnswerUsesProvider(t *testing.T) {
	r := NewRouter(knowledge.StaticProvider{Doc: fixtureDoc()}, nil)

	got, err := r.Answer(context.Background(), "what is your pricing")
	require.NoError(t, err)
	assert.Equal(t, SourceFAQ, got.Source)
}
