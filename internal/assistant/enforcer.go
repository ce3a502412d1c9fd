package assistant

import (
	"regexp"
	"strings"
	"unicode"
)

const (
	DefaultMaxSentences = 5
	DefaultTruncateTo   = 3
)

var (
	markdownLinkPattern = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	bareURLPattern      = regexp.MustCompile(`(?i)\b(?:https?://|www\.)\S+`)
)

type EnforcerConfig struct {
	MaxSentences int
	TruncateTo   int
	Rules        []RedirectRule
	// LinkBase is prefixed to rule paths, e.g. "https://veyemedia.co/#".
	LinkBase string
}

// Enforcer shapes every outgoing answer: no embedded links, bounded
// length, and one canonical "read more" line when the topic calls for it.
type Enforcer struct {
	maxSentences int
	truncateTo   int
	rules        []RedirectRule
	linkBase     string
}

func NewEnforcer(cfg EnforcerConfig) *Enforcer {
	if cfg.MaxSentences <= 0 {
		cfg.MaxSentences = DefaultMaxSentences
	}
	if cfg.TruncateTo <= 0 {
		cfg.TruncateTo = DefaultTruncateTo
	}
	if cfg.TruncateTo > cfg.MaxSentences {
		cfg.TruncateTo = cfg.MaxSentences
	}
	if cfg.Rules == nil {
		cfg.Rules = DefaultRedirectRules()
	}
	return &Enforcer{
		maxSentences: cfg.MaxSentences,
		truncateTo:   cfg.TruncateTo,
		rules:        cfg.Rules,
		linkBase:     strings.TrimRight(cfg.LinkBase, "/"),
	}
}

// Enforce applies the response contract to candidate. The result is never
// empty unless candidate itself is.
func (e *Enforcer) Enforce(message, candidate string) string {
	text := StripLinks(candidate)

	sentences := SplitSentences(text)
	if len(sentences) > e.maxSentences {
		sentences = sentences[:e.truncateTo]
	}
	text = strings.Join(sentences, " ")

	if text == "" {
		return candidate
	}

	if rule, ok := e.matchRule(message, text); ok {
		url := e.URL(rule.Path)
		if !strings.Contains(text, url) {
			text += "\n" + rule.Label + ": " + url
		}
	}
	return text
}

// URL renders a site path as the link shown to visitors.
func (e *Enforcer) URL(path string) string {
	return e.linkBase + path
}

func (e *Enforcer) matchRule(message, answer string) (RedirectRule, bool) {
	haystack := Normalize(message) + " " + Normalize(answer)
	for _, rule := range e.rules {
		if IncludesAny(haystack, rule.Keywords) {
			return rule, true
		}
	}
	return RedirectRule{}, false
}

// StripLinks replaces markdown links with their label, drops bare URLs and
// collapses the whitespace left behind.
func StripLinks(s string) string {
	s = markdownLinkPattern.ReplaceAllString(s, "$1")
	s = bareURLPattern.ReplaceAllString(s, "")
	return strings.Join(strings.Fields(s), " ")
}

// SplitSentences cuts after '.', '!' or '?' when whitespace follows.
func SplitSentences(s string) []string {
	runes := []rune(s)
	var sentences []string
	start := 0
	for i, r := range runes {
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		if i+1 >= len(runes) || !unicode.IsSpace(runes[i+1]) {
			continue
		}
		if sentence := strings.TrimSpace(string(runes[start : i+1])); sentence != "" {
			sentences = append(sentences, sentence)
		}
		start = i + 1
	}
	if tail := strings.TrimSpace(string(runes[start:])); tail != "" {
		sentences = append(sentences, tail)
	}
	return sentences
}
