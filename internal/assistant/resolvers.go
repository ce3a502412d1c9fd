package assistant

import (
	"slices"
	"strings"

	"veye-site/internal/knowledge"
)

// Source names the resolver that produced an answer.
type Source string

const (
	SourceEmpty                Source = "empty"
	SourceSystemsOverview      Source = "systems_overview"
	SourcePreferredExplanation Source = "preferred_explanation"
	SourceSystem               Source = "system"
	SourceFAQ                  Source = "faq"
	SourceHandoff              Source = "handoff"
	SourceFallback             Source = "fallback"
)

const (
	EmptyMessagePrompt = "Please enter a question, or use Start a Conversation to reach our team directly."
	HandoffMessage     = "Absolutely, we can connect you with a real person."
	UnavailableMessage = "Our assistant is temporarily unavailable. Please contact us directly through Start a Conversation."

	defaultOverviewIntro = "We build and maintain intelligent systems that drive growth."
	overviewSystemsLimit = 6
)

var (
	overviewPhrases = []string{
		"what systems do you build",
		"what systems do you offer",
		"what systems do you provide",
		"which systems do you build",
		"what do you build",
		"what services do you offer",
		"what services do you provide",
		"what do you offer",
	}
	overviewTopics = []string{
		"what systems do you build",
		"systems we build",
	}
)

type inquiry struct {
	raw    string
	strict string
}

func newInquiry(message string) inquiry {
	return inquiry{
		raw:    message,
		strict: NormalizeStrict(message),
	}
}

type resolution struct {
	text    string
	source  Source
	handoff bool
	reason  string
}

// resolver returns false when it does not apply to the message.
type resolver func(doc *knowledge.Document, in inquiry) (resolution, bool)

// resolvers in precedence order.
var resolvers = []resolver{
	resolveEmpty,
	resolveSystemsOverview,
	resolvePreferredExplanation,
	resolveSystemByName,
	resolveFAQ,
	resolveHandoff,
	resolveFallback,
}

func resolveEmpty(_ *knowledge.Document, in inquiry) (resolution, bool) {
	if strings.TrimSpace(in.raw) != "" {
		return resolution{}, false
	}
	return resolution{text: EmptyMessagePrompt, source: SourceEmpty, handoff: true}, true
}

func resolveSystemsOverview(doc *knowledge.Document, in inquiry) (resolution, bool) {
	if !IncludesAny(in.raw, overviewPhrases) {
		return resolution{}, false
	}

	intro := defaultOverviewIntro
	for _, pe := range doc.ApprovedLanguage.PreferredExplanations {
		if slices.Contains(overviewTopics, NormalizeStrict(pe.Topic)) && strings.TrimSpace(pe.Answer) != "" {
			intro = strings.TrimSpace(pe.Answer)
			break
		}
	}

	text := terminate(intro)
	if names := doc.SystemNames(overviewSystemsLimit); len(names) > 0 {
		text += " Systems we build include: " + strings.Join(names, ", ") + "."
	}
	return resolution{text: text, source: SourceSystemsOverview}, true
}

func resolvePreferredExplanation(doc *knowledge.Document, in inquiry) (resolution, bool) {
	if in.strict == "" {
		return resolution{}, false
	}
	explanations := doc.ApprovedLanguage.PreferredExplanations

	for _, pe := range explanations {
		if NormalizeStrict(pe.Topic) == in.strict && pe.Answer != "" {
			return resolution{text: pe.Answer, source: SourcePreferredExplanation}, true
		}
	}

	for _, pe := range explanations {
		topic := NormalizeStrict(pe.Topic)
		if topic == "" || pe.Answer == "" {
			continue
		}
		if strings.Contains(in.strict, topic) || strings.Contains(topic, in.strict) {
			return resolution{text: pe.Answer, source: SourcePreferredExplanation}, true
		}
	}
	return resolution{}, false
}

func resolveSystemByName(doc *knowledge.Document, in inquiry) (resolution, bool) {
	if in.strict == "" {
		return resolution{}, false
	}
	for _, sys := range doc.SystemsWeBuild {
		name := NormalizeStrict(sys.Name)
		if name == "" || !strings.Contains(in.strict, name) {
			continue
		}
		if what := strings.TrimSpace(sys.WhatItIs); what != "" {
			return resolution{text: what, source: SourceSystem}, true
		}
		return resolution{text: describeSystem(sys), source: SourceSystem}, true
	}
	return resolution{}, false
}

func resolveFAQ(doc *knowledge.Document, in inquiry) (resolution, bool) {
	if in.strict == "" {
		return resolution{}, false
	}
	for _, entry := range doc.FAQ {
		q := NormalizeStrict(entry.Question)
		if q == "" || entry.Answer == "" {
			continue
		}
		if q == in.strict || strings.Contains(in.strict, q) {
			return resolution{text: entry.Answer, source: SourceFAQ}, true
		}
	}
	return resolution{}, false
}

func resolveHandoff(doc *knowledge.Document, in inquiry) (resolution, bool) {
	for _, trigger := range doc.HandoffRules.HumanHandoffTriggers {
		if !IncludesAny(in.raw, trigger.MatchAny) {
			continue
		}
		text := HandoffMessage
		if tmpl := strings.TrimSpace(doc.HandoffRules.HandoffResponseTemplate); tmpl != "" {
			text += " " + tmpl
		}
		return resolution{
			text:    text,
			source:  SourceHandoff,
			handoff: true,
			reason:  trigger.HandoffReason,
		}, true
	}
	return resolution{}, false
}

func resolveFallback(doc *knowledge.Document, _ inquiry) (resolution, bool) {
	return resolution{
		text:    doc.AssistantPolicy.FallbackMessage,
		source:  SourceFallback,
		handoff: true,
	}, true
}

func describeSystem(sys knowledge.System) string {
	var b strings.Builder
	b.WriteString(terminate(strings.TrimSpace(sys.Name)))
	if len(sys.Outcomes) > 0 {
		b.WriteString(" Outcomes: " + terminate(strings.Join(sys.Outcomes, "; ")))
	}
	if len(sys.WhatItIncludes) > 0 {
		b.WriteString(" Includes: " + terminate(strings.Join(sys.WhatItIncludes, "; ")))
	}
	if len(sys.WhatItIsNot) > 0 {
		b.WriteString(" It is not: " + terminate(strings.Join(sys.WhatItIsNot, "; ")))
	}
	return b.String()
}

// terminate makes sure s ends like a sentence.
func terminate(s string) string {
	if s == "" || strings.HasSuffix(s, ".") || strings.HasSuffix(s, "!") || strings.HasSuffix(s, "?") {
		return s
	}
	return s + "."
}
