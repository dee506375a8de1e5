package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"
)

// SuggestService asks an OpenAI-compatible chat endpoint to pick the best
// category for a draft post.
type SuggestService struct {
	BaseURL string
	Token   string
	Model   string
	client  *http.Client
}

var suggestService *SuggestService

func GetSuggestService() *SuggestService {
	if suggestService == nil {
		suggestService = &SuggestService{
			BaseURL: os.Getenv("LLM_BASE_URL"),
			Token:   os.Getenv("LLM_TOKEN"),
			Model:   os.Getenv("LLM_MODEL"),
			client:  &http.Client{Timeout: 20 * time.Second},
		}
	}
	return suggestService
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type ChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// SuggestCategory returns one category name from the given list for the post
// draft, or an error when the model is unreachable or answers off-list.
func (s *SuggestService) SuggestCategory(title, text string, categories []string) (string, error) {
	if s.BaseURL == "" || s.Token == "" {
		return "", fmt.Errorf("LLM is not configured")
	}

	prompt := fmt.Sprintf(
		"Pick the single most fitting category for this forum post. Answer with the category name only, nothing else.\nCategories: %s\nTitle: %s\nContent: %s",
		strings.Join(categories, ", "), title, text)

	payload, err := json.Marshal(ChatRequest{
		Model:    s.Model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequest("POST", strings.TrimRight(s.BaseURL, "/")+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+s.Token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("suggestion request failed: %w", err)
	}
	defer resp.Body.Close()

	var chatResp ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("failed to parse suggestion response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("empty suggestion response")
	}

	answer := strings.TrimSpace(chatResp.Choices[0].Message.Content)
	for _, category := range categories {
		if strings.EqualFold(answer, category) {
			return category, nil
		}
	}
	return "", fmt.Errorf("model suggested unknown category %q", answer)
}
