package knowledge

import (
	"errors"
	"strings"
)

// Document is the static brand knowledge the site assistant answers from.
// It is loaded once and treated as read-only afterwards.
type Document struct {
	Meta             Meta             `json:"meta"`
	Brand            Brand            `json:"brand"`
	AssistantPolicy  AssistantPolicy  `json:"assistant_policy"`
	SystemsWeBuild   []System         `json:"systems_we_build"`
	FAQ              []FAQEntry       `json:"faq"`
	ApprovedLanguage ApprovedLanguage `json:"approved_language"`
	HandoffRules     HandoffRules     `json:"handoff_rules"`
}

type Meta struct {
	Version     string `json:"version"`
	LastUpdated string `json:"last_updated"`
}

type Brand struct {
	Name string `json:"name"`
}

type AssistantPolicy struct {
	FallbackMessage string `json:"fallback_message"`
}

// System describes one offering from the "systems we build" catalogue.
type System struct {
	Name           string   `json:"name"`
	Outcomes       []string `json:"outcomes"`
	WhatItIs       string   `json:"what_it_is"`
	WhatItIncludes []string `json:"what_it_includes"`
	WhatItIsNot    []string `json:"what_it_is_not"`
}

type FAQEntry struct {
	Question string `json:"q"`
	Answer   string `json:"a"`
}

type ApprovedLanguage struct {
	PreferredExplanations []PreferredExplanation `json:"preferred_explanations"`
}

// PreferredExplanation is the canonical wording for a topic.
type PreferredExplanation struct {
	Topic  string `json:"topic"`
	Answer string `json:"answer"`
}

type HandoffRules struct {
	HumanHandoffTriggers    []HandoffTrigger `json:"human_handoff_triggers"`
	HandoffResponseTemplate string           `json:"handoff_response_template"`
}

// HandoffTrigger marks phrases that mean the visitor wants a person.
type HandoffTrigger struct {
	Name          string   `json:"name"`
	MatchAny      []string `json:"match_any"`
	HandoffReason string   `json:"handoff_reason"`
}

var (
	ErrMissingBrandName       = errors.New("knowledge missing: brand.name")
	ErrMissingFallbackMessage = errors.New("knowledge missing: assistant_policy.fallback_message")
	ErrMissingSystems         = errors.New("knowledge missing: systems_we_build")
)

// Validate checks the fields every answer path depends on.
func (d *Document) Validate() error {
	if strings.TrimSpace(d.Brand.Name) == "" {
		return ErrMissingBrandName
	}
	if strings.TrimSpace(d.AssistantPolicy.FallbackMessage) == "" {
		return ErrMissingFallbackMessage
	}
	if len(d.SystemsWeBuild) == 0 {
		return ErrMissingSystems
	}
	return nil
}

// SystemNames returns up to limit system names in catalogue order.
// A limit of zero or less returns all of them.
func (d *Document) SystemNames(limit int) []string {
	names := make([]string, 0, len(d.SystemsWeBuild))
	for _, s := range d.SystemsWeBuild {
		name := strings.TrimSpace(s.Name)
		if name == "" {
			continue
		}
		names = append(names, name)
		if limit > 0 && len(names) == limit {
			break
		}
	}
	return names
}
