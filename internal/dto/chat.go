package dto

type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse repeats the answer text under several keys so any widget
// build can read it.
type ChatResponse struct {
	OK            bool     `json:"ok"`
	Answer        string   `json:"answer"`
	Reply         string   `json:"reply"`
	Text          string   `json:"text"`
	Message       string   `json:"message"`
	Content       string   `json:"content"`
	IsHandoff     bool     `json:"isHandoff"`
	Href          string   `json:"href"`
	HandoffReason string   `json:"handoffReason,omitempty"`
	Sources       []Source `json:"sources,omitempty"`
}

type Source struct {
	Type        string `json:"type"`
	Version     string `json:"version,omitempty"`
	LastUpdated string `json:"lastUpdated,omitempty"`
}

func NewChatResponse(text string, isHandoff bool, href, handoffReason string, sources []Source) *ChatResponse {
	return &ChatResponse{
		OK:            true,
		Answer:        text,
		Reply:         text,
		Text:          text,
		Message:       text,
		Content:       text,
		IsHandoff:     isHandoff,
		Href:          href,
		HandoffReason: handoffReason,
		Sources:       sources,
	}
}
