package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/habitflow/backend/internal/habits"
	"github.com/habitflow/backend/internal/telemetry/metrics"
	"github.com/habitflow/backend/internal/telemetry/tracing"
)

const MaxImageSize = 5 << 20

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=ai

type generator interface {
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}

type Suggestion struct {
	Name           string          `json:"name"`
	Category       habits.Category `json:"category"`
	Icon           string          `json:"icon"`
	Reason         string          `json:"reason"`
	TimeCommitment string          `json:"timeCommitment"`
	Difficulty     string          `json:"difficulty"`
}

type SuggestionRequest struct {
	Habits         []*habits.Habit
	CompletionRate int
	UserGoals      string
}

// FoodAnalysis is the parsed model answer. When the answer is not JSON only Raw is set.
type FoodAnalysis struct {
	Name        FlexString `json:"name,omitempty"`
	Calories    FlexString `json:"calories,omitempty"`
	Protein     FlexString `json:"protein,omitempty"`
	Description FlexString `json:"description,omitempty"`
	HealthTips  FlexString `json:"healthTips,omitempty"`
	Raw         string     `json:"raw,omitempty"`
}

// FlexString accepts a JSON string, number or bool.
type FlexString string

func (s *FlexString) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = FlexString(str)
		return nil
	}
	var other any
	if err := json.Unmarshal(data, &other); err != nil {
		return err
	}
	switch v := other.(type) {
	case nil:
		*s = ""
	case float64, bool:
		*s = FlexString(fmt.Sprint(v))
	default:
		*s = FlexString(strings.TrimSpace(string(data)))
	}
	return nil
}

var fallbackSuggestions = []Suggestion{
	{
		Name:           "Morning Meditation",
		Category:       habits.CategoryMindfulness,
		Icon:           "🧘",
		Reason:         "Start your day with clarity and calmness. Just 5 minutes can reduce stress and improve focus.",
		TimeCommitment: "5 minutes",
		Difficulty:     "easy",
	},
	{
		Name:           "Drink 8 Glasses of Water",
		Category:       habits.CategoryHealthFitness,
		Icon:           "💧",
		Reason:         "Proper hydration boosts energy, improves skin health, and aids cognitive function.",
		TimeCommitment: "Throughout day",
		Difficulty:     "easy",
	},
	{
		Name:           "Read 20 Pages Daily",
		Category:       habits.CategoryLearning,
		Icon:           "📚",
		Reason:         "Reading daily expands knowledge, reduces stress, and improves vocabulary and focus.",
		TimeCommitment: "20 minutes",
		Difficulty:     "medium",
	},
}

func FallbackSuggestions() []Suggestion {
	out := make([]Suggestion, len(fallbackSuggestions))
	copy(out, fallbackSuggestions)
	return out
}

type Service struct {
	client         generator
	metricsManager *metrics.Manager
}

// NewService returns a service answering ErrNotConfigured everywhere when client is nil.
func NewService(client generator, metricsManager *metrics.Manager) *Service {
	return &Service{
		client:         client,
		metricsManager: metricsManager,
	}
}

func (s *Service) generate(ctx context.Context, kind string, req GenerateRequest) (string, error) {
	if s.client == nil {
		s.metricsManager.CounterAIRequests.WithLabelValues(kind, "not_configured").Inc()
		return "", ErrNotConfigured
	}
	text, err := s.client.Generate(ctx, req)
	if err != nil {
		s.metricsManager.CounterAIRequests.WithLabelValues(kind, "error").Inc()
		return "", err
	}
	s.metricsManager.CounterAIRequests.WithLabelValues(kind, "ok").Inc()
	return text, nil
}

func (s *Service) Suggest(ctx context.Context, req SuggestionRequest) (_ []Suggestion, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.ai.suggest")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	text, err := s.generate(ctx, "suggestions", GenerateRequest{
		Parts: []Part{{Text: suggestionPrompt(req)}},
		JSON:  true,
	})
	if err != nil {
		return nil, err
	}

	var suggestions []Suggestion
	if err := json.Unmarshal([]byte(StripCodeFences(text)), &suggestions); err != nil || len(suggestions) == 0 {
		log.Warnf("ai suggest, failed to parse model response, using fallback: %v", err)
		return FallbackSuggestions(), nil
	}
	return suggestions, nil
}

func (s *Service) Ask(ctx context.Context, prompt string) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.ai.ask")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if strings.TrimSpace(prompt) == "" {
		return "", ErrEmptyPrompt
	}
	return s.generate(ctx, "ask", GenerateRequest{
		Parts: []Part{{Text: prompt}},
	})
}

func (s *Service) AnalyzeFood(ctx context.Context, image []byte, mimeType string) (_ *FoodAnalysis, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.ai.analyze_food")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if !strings.HasPrefix(mimeType, "image/") || len(image) == 0 {
		return nil, ErrInvalidImage
	}
	if len(image) > MaxImageSize {
		return nil, ErrImageTooLarge
	}

	text, err := s.generate(ctx, "analyze_food", GenerateRequest{
		Parts: []Part{
			{Text: foodPrompt},
			{Data: image, MimeType: mimeType},
		},
	})
	if err != nil {
		return nil, err
	}

	text = strings.TrimSpace(text)
	analysis := &FoodAnalysis{}
	if err := json.Unmarshal([]byte(StripCodeFences(text)), analysis); err != nil {
		log.Debugf("ai analyze food, response is not json: %s", err)
		return &FoodAnalysis{Raw: text}, nil
	}
	return analysis, nil
}

// StripCodeFences removes a leading ```json (or ```) line and a trailing ``` from a model answer.
func StripCodeFences(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		if len(text) >= 4 && strings.EqualFold(text[:4], "json") {
			text = text[4:]
		}
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}
