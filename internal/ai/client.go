package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// Client suggests tags for a memo via an OpenAI-compatible chat endpoint.
type Client struct {
	client *openai.Client
	model  string
}

func New(apiKey, baseURL, model string) *Client {
	config := openai.DefaultConfig(apiKey)
	config.BaseURL = baseURL

	return &Client{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}
}

const systemPrompt = `You suggest tags for short notes. Given a note's title and content,
reply with a JSON object of the form {"tags": ["tag1", "tag2"]}.
Rules:
- at most 5 tags
- each tag is a single lowercase word or hyphenated phrase
- no duplicates, no "#" prefix
- tags describe the topic of the note, not its length or tone`

// JSON Schema for structured output
var tagsSchema = json.RawMessage(`{
	"type": "object",
	"properties": {
		"tags": {
			"type": "array",
			"items": {"type": "string"},
			"description": "Suggested tags for the note"
		}
	},
	"required": ["tags"],
	"additionalProperties": false
}`)

type tagsResponse struct {
	Tags []string `json:"tags"`
}

// SuggestTags returns up to five tags describing the given memo.
func (c *Client) SuggestTags(ctx context.Context, title, content string) ([]string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf("Title: %s\n\nContent: %s", title, content),
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   "tags",
				Schema: tagsSchema,
				Strict: true,
			},
		},
		Temperature: 0.2,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to call AI API: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from AI")
	}

	return ParseTags(resp.Choices[0].Message.Content)
}

// ParseTags decodes the model reply and normalizes the tag list: trimmed,
// lowercased, deduplicated, capped at five.
func ParseTags(content string) ([]string, error) {
	var parsed tagsResponse
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w", err)
	}

	seen := make(map[string]bool)
	tags := []string{}
	for _, tag := range parsed.Tags {
		tag = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(tag, "#")))
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
		if len(tags) == 5 {
			break
		}
	}
	return tags, nil
}
