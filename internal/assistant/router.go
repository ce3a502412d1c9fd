package assistant

import (
	"context"
	"strings"

	"veye-site/internal/knowledge"
)

// Answer is what the router hands back for one visitor message.
type Answer struct {
	Text          string
	IsHandoff     bool
	HandoffReason string
	RedirectHref  string
	Source        Source
}

// Router picks the first resolver that applies and runs its text through
// the Enforcer. The knowledge document comes from the injected provider.
type Router struct {
	provider knowledge.Provider
	enforcer *Enforcer
}

func NewRouter(provider knowledge.Provider, enforcer *Enforcer) *Router {
	if enforcer == nil {
		enforcer = NewEnforcer(EnforcerConfig{})
	}
	return &Router{
		provider: provider,
		enforcer: enforcer,
	}
}

// Answer loads the knowledge document and routes message against it. The
// only error is the provider's, typically a *knowledge.UnavailableError.
func (r *Router) Answer(ctx context.Context, message string) (Answer, error) {
	doc, err := r.provider.Knowledge(ctx)
	if err != nil {
		return Answer{}, err
	}
	return r.Route(doc, message), nil
}

// Route is deterministic for a given document and message.
func (r *Router) Route(doc *knowledge.Document, message string) Answer {
	in := newInquiry(message)

	var res resolution
	for _, resolve := range resolvers {
		if candidate, ok := resolve(doc, in); ok {
			res = candidate
			break
		}
	}

	text := r.enforcer.Enforce(message, res.text)
	if strings.TrimSpace(text) == "" {
		res = resolution{text: doc.AssistantPolicy.FallbackMessage, source: SourceFallback, handoff: true}
		text = r.enforcer.Enforce(message, res.text)
	}

	return Answer{
		Text:          text,
		IsHandoff:     res.handoff,
		HandoffReason: res.reason,
		RedirectHref:  hrefFor(res.source),
		Source:        res.source,
	}
}

// Unavailable is the reply used when no knowledge document can be served.
func (r *Router) Unavailable(message string) Answer {
	return Answer{
		Text:         r.enforcer.Enforce(message, UnavailableMessage),
		IsHandoff:    true,
		RedirectHref: PageStartConversation,
		Source:       SourceFallback,
	}
}

// Enforcer exposes the contract so callers can shape text produced
// outside the resolvers the same way.
func (r *Router) Enforcer() *Enforcer {
	return r.enforcer
}

func hrefFor(source Source) string {
	switch source {
	case SourceSystemsOverview, SourcePreferredExplanation, SourceSystem, SourceFAQ:
		return PageProductOverview
	default:
		return PageStartConversation
	}
}
