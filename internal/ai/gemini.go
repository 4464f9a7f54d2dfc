package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"google.golang.org/genai"
)

const (
	DefaultModel   = "gemini-2.5-flash"
	defaultTimeout = 60 * time.Second
)

var ErrEmptyResponse = errors.New("model returned no content")

// Part is one piece of a prompt: text, or inline binary data such as an image.
type Part struct {
	Text     string
	Data     []byte
	MimeType string
}

type GenerateRequest struct {
	Parts []Part
	// JSON asks the model to answer with application/json.
	JSON bool
}

type GeminiClient struct {
	client *genai.Client
	model  string
}

type GeminiClientParams struct {
	APIKey string
	Model  string
	// Endpoint overrides the API base url, e.g. for a proxy.
	Endpoint string
	Timeout  time.Duration
}

func NewGeminiClient(ctx context.Context, params GeminiClientParams) (*GeminiClient, error) {
	if params.APIKey == "" {
		return nil, ErrNotConfigured
	}
	if params.Model == "" {
		params.Model = DefaultModel
	}
	if params.Timeout <= 0 {
		params.Timeout = defaultTimeout
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  params.APIKey,
		Backend: genai.BackendGeminiAPI,
		HTTPClient: &http.Client{
			Timeout:   params.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		HTTPOptions: genai.HTTPOptions{
			BaseURL: params.Endpoint,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &GeminiClient{
		client: client,
		model:  params.Model,
	}, nil
}

func (c *GeminiClient) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	parts := make([]*genai.Part, 0, len(req.Parts))
	for _, p := range req.Parts {
		if len(p.Data) > 0 {
			parts = append(parts, genai.NewPartFromBytes(p.Data, p.MimeType))
			continue
		}
		parts = append(parts, genai.NewPartFromText(p.Text))
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	var config *genai.GenerateContentConfig
	if req.JSON {
		config = &genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
		}
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, config)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrEmptyResponse
	}

	var sb strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if p != nil {
			sb.WriteString(p.Text)
		}
	}
	if sb.Len() == 0 {
		return "", ErrEmptyResponse
	}
	return sb.String(), nil
}
