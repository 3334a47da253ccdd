package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"empower-commerce-be/pkg/llm"
)

const defaultModel = "gemini-1.5-flash"

// GeminiProvider talks to the Generative Language REST API.
// Rate-limited (429) and overloaded (503) responses are retried with
// exponential backoff before the error is propagated.
type GeminiProvider struct {
	APIKey     string
	ModelName  string
	Client     *http.Client
	MaxRetries int
	BaseDelay  time.Duration
	MaxDelay   time.Duration
}

var _ llm.LLMProvider = &GeminiProvider{}

func NewGeminiProvider(apiKey, modelName string) *GeminiProvider {
	if modelName == "" {
		modelName = defaultModel
	}
	return &GeminiProvider{
		APIKey:    apiKey,
		ModelName: modelName,
		Client: &http.Client{
			Timeout: 60 * time.Second,
		},
		MaxRetries: 3,
		BaseDelay:  2 * time.Second,
		MaxDelay:   30 * time.Second,
	}
}

// --- Request/Response structs (Internal to this package) ---

type geminiPart struct {
	Text         string              `json:"text,omitempty"`
	FunctionCall *geminiFunctionCall `json:"functionCall,omitempty"`
}

type geminiFunctionCall struct {
	Name string                 `json:"name"`
	Args map[string]interface{} `json:"args"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
	Role  string       `json:"role,omitempty"`
}

type geminiGenerationConfig struct {
	Temperature     *float64 `json:"temperature,omitempty"`
	MaxOutputTokens int      `json:"maxOutputTokens,omitempty"`
}

type geminiFunctionDeclaration struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description,omitempty"`
	Parameters  map[string]interface{} `json:"parameters,omitempty"`
}

type geminiTool struct {
	FunctionDeclarations []geminiFunctionDeclaration `json:"functionDeclarations"`
}

type geminiRequest struct {
	Contents          []geminiContent         `json:"contents"`
	SystemInstruction *geminiContent          `json:"systemInstruction,omitempty"`
	GenerationConfig  *geminiGenerationConfig `json:"generationConfig,omitempty"`
	Tools             []geminiTool            `json:"tools,omitempty"`
}

type geminiCandidate struct {
	Content *geminiContent `json:"content"`
}

type geminiResponse struct {
	Candidates []geminiCandidate `json:"candidates"`
}

// --- Interface Implementation ---

func (p *GeminiProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	req := p.buildRequest(history, nil, opts...)
	res, err := p.invoke(ctx, req)
	if err != nil {
		return "", err
	}
	return firstText(res)
}

func (p *GeminiProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}

func (p *GeminiProvider) GenerateWithTools(ctx context.Context, prompt string, tools []llm.Tool, opts ...llm.Option) (*llm.ToolResponse, error) {
	req := p.buildRequest([]llm.Message{{Role: "user", Content: prompt}}, tools, opts...)
	res, err := p.invoke(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(res.Candidates) == 0 || res.Candidates[0].Content == nil {
		return nil, fmt.Errorf("gemini returned no candidates")
	}
	for _, part := range res.Candidates[0].Content.Parts {
		if part.FunctionCall != nil {
			return &llm.ToolResponse{
				FunctionName: part.FunctionCall.Name,
				FunctionArgs: part.FunctionCall.Args,
			}, nil
		}
	}
	text, err := firstText(res)
	if err != nil {
		return nil, err
	}
	return &llm.ToolResponse{Text: text}, nil
}

func (p *GeminiProvider) buildRequest(history []llm.Message, tools []llm.Tool, opts ...llm.Option) *geminiRequest {
	options := &llm.Options{Temperature: 0.7}
	for _, opt := range opts {
		opt(options)
	}

	req := &geminiRequest{
		GenerationConfig: &geminiGenerationConfig{
			Temperature: &options.Temperature,
		},
	}
	if options.MaxTokens > 0 {
		req.GenerationConfig.MaxOutputTokens = options.MaxTokens
	}

	for _, msg := range history {
		if msg.Role == "system" {
			req.SystemInstruction = &geminiContent{
				Parts: []geminiPart{{Text: msg.Content}},
			}
			continue
		}
		role := msg.Role
		if role == "assistant" || role == "agent" {
			role = "model"
		}
		req.Contents = append(req.Contents, geminiContent{
			Role:  role,
			Parts: []geminiPart{{Text: msg.Content}},
		})
	}

	if len(tools) > 0 {
		declarations := make([]geminiFunctionDeclaration, len(tools))
		for i, tool := range tools {
			declarations[i] = geminiFunctionDeclaration{
				Name:        tool.Name,
				Description: tool.Description,
				Parameters:  tool.Parameters,
			}
		}
		req.Tools = []geminiTool{{FunctionDeclarations: declarations}}
	}

	return req
}

func (p *GeminiProvider) invoke(ctx context.Context, payload *geminiRequest) (*geminiResponse, error) {
	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	endpoint := fmt.Sprintf(
		"https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent",
		p.ModelName,
	)

	delay := p.BaseDelay
	var lastErr error
	for attempt := 0; attempt < p.MaxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewBuffer(payloadJson))
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("x-goog-api-key", p.APIKey)
		req.Header.Set("Content-Type", "application/json")

		res, err := p.Client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("gemini request failed: %w", err)
		}

		resBody, err := io.ReadAll(res.Body)
		res.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("read response: %w", err)
		}

		if res.StatusCode == http.StatusOK {
			var parsed geminiResponse
			if err := json.Unmarshal(resBody, &parsed); err != nil {
				return nil, fmt.Errorf("unmarshal response: %w", err)
			}
			return &parsed, nil
		}

		lastErr = fmt.Errorf(
			"status error, got status %d. with response body %s",
			res.StatusCode,
			string(resBody),
		)

		if res.StatusCode != http.StatusTooManyRequests && res.StatusCode != http.StatusServiceUnavailable {
			return nil, lastErr
		}
		if attempt == p.MaxRetries-1 {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
		if delay > p.MaxDelay {
			delay = p.MaxDelay
		}
	}

	return nil, fmt.Errorf("gemini retries exhausted: %w", lastErr)
}

func firstText(res *geminiResponse) (string, error) {
	if len(res.Candidates) == 0 || res.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini returned no candidates")
	}
	for _, part := range res.Candidates[0].Content.Parts {
		if part.Text != "" {
			return part.Text, nil
		}
	}
	return "", fmt.Errorf("gemini returned no text parts")
}
