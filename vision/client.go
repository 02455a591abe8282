// Package vision wraps the external plate-photo scanner: an
// OpenAI-compatible vision model that identifies mess dishes on a plate
// photo, constrained to the day's menu. The service treats it as an opaque
// collaborator returning {item, servings} guesses; nothing downstream
// trusts it until the user confirms the log.
package vision

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ARYAMAN170/DontMessIt/config"
	"github.com/ARYAMAN170/DontMessIt/engine"
)

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type message struct {
	Role    string      `json:"role"`
	Content interface{} `json:"content"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []message       `json:"messages"`
	Temperature    float64         `json:"temperature"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type scanResult struct {
	LoggedItems []struct {
		Item     string  `json:"item"`
		Servings float64 `json:"servings"`
	} `json:"logged_items"`
}

type Client struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

func NewClient() *Client {
	return &Client{
		apiKey:  config.GetEnv("VISION_API_KEY", ""),
		baseURL: config.GetEnv("VISION_BASE_URL", "https://api.groq.com/openai/v1"),
		model:   config.GetEnv("VISION_MODEL", "meta-llama/llama-4-scout-17b-16e-instruct"),
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// ScanPlate asks the vision model to identify the items on the plate
// photo, restricted to the given menu vocabulary, and returns its serving
// estimates. The caller merges them only after user confirmation.
func (c *Client) ScanPlate(imageLink string, availableMenu []string) ([]engine.LoggedItem, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("VISION_API_KEY not configured")
	}
	if imageLink == "" || len(availableMenu) == 0 {
		return nil, fmt.Errorf("missing image URL or menu")
	}

	systemPrompt := fmt.Sprintf(`You are an expert sports nutritionist and vision AI. Look at the image of the Indian hostel mess food plate.
You must identify the items on the plate ONLY from this allowed list of today's menu: %s.
Estimate the serving size (e.g., 1 for a standard bowl/piece, 0.5 for a half portion, 2 for a double portion).
Output STRICTLY valid JSON with no markdown formatting.
Schema: {"logged_items": [{"item": "Exact Name from Menu", "servings": number}]}`,
		strings.Join(availableMenu, ", "))

	reqBody := chatRequest{
		Model: c.model,
		Messages: []message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: []contentPart{
				{Type: "text", Text: "Analyze this plate and return the JSON."},
				{Type: "image_url", ImageURL: &imageURL{URL: imageLink}},
			}},
		},
		Temperature:    0.1,
		ResponseFormat: &responseFormat{Type: "json_object"},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequest("POST", c.baseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return nil, fmt.Errorf("no response choices returned")
	}

	var result scanResult
	if err := json.Unmarshal([]byte(chatResp.Choices[0].Message.Content), &result); err != nil {
		return nil, fmt.Errorf("model returned invalid JSON: %w", err)
	}

	items := make([]engine.LoggedItem, 0, len(result.LoggedItems))
	for _, li := range result.LoggedItems {
		if li.Item == "" || li.Servings <= 0 {
			continue
		}
		items = append(items, engine.LoggedItem{ItemName: li.Item, Servings: li.Servings})
	}
	return items, nil
}
