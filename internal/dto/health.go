package dto

type KnowledgeHealthResponse struct {
	OK           bool   `json:"ok"`
	Version      string `json:"version"`
	LastUpdated  string `json:"lastUpdated"`
	SystemsCount int    `json:"systemsCount"`
}
