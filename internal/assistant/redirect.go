package assistant

const (
	PageProductOverview   = "/velocity-sync-engine"
	PageStartConversation = "/start-a-conversation"
)

// RedirectRule appends "{Label}: {url}" to an answer when any keyword shows
// up in the visitor message or in the answer itself.
type RedirectRule struct {
	Keywords []string
	Label    string
	Path     string
}

// DefaultRedirectRules is ordered; the first rule with a hit wins.
func DefaultRedirectRules() []RedirectRule {
	return []RedirectRule{
		{
			Keywords: []string{
				"framework",
				"velocity sync",
				"system",
				"what do you build",
			},
			Label: "Explore the Velocity Sync Engine",
			Path:  PageProductOverview,
		},
		{
			Keywords: []string{
				"contact",
				"pricing",
				"price",
				"cost",
				"how much",
				"proposal",
				"retainer",
				"human",
				"real person",
				"talk to",
				"speak to",
				"schedule a call",
				"phone call",
				"meeting",
				"start a conversation",
			},
			Label: "Start a Conversation",
			Path:  PageStartConversation,
		},
	}
}
