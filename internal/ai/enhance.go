// Package ai produces content-enhancement suggestions for submission and
// editing forms. A deterministic template engine always works; when an
// OpenAI key is configured the service asks the model instead and falls back
// to the templates on any failure.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/jessebautista/wpnew-sub000/internal/content"
	"github.com/jessebautista/wpnew-sub000/internal/settings"
)

// Input is the content under enhancement.
type Input struct {
	Type        content.Type `json:"type"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Location    string       `json:"location,omitempty"`
}

// Suggestion is one proposed rewrite.
type Suggestion struct {
	Field     string `json:"field"`
	Current   string `json:"current,omitempty"`
	Suggested string `json:"suggested"`
	Rationale string `json:"rationale,omitempty"`
}

// Result bundles the suggestions with a rough score-improvement estimate.
type Result struct {
	Suggestions   []Suggestion `json:"suggestions"`
	EstimatedGain int          `json:"estimated_gain"`
	GeneratedBy   string       `json:"generated_by"`
}

// Service produces enhancement suggestions.
type Service struct {
	client *openai.Client
	model  string
	logger *slog.Logger
}

// New builds the service. With an empty apiKey only the template path runs.
func New(logger *slog.Logger, apiKey, model string) *Service {
	s := &Service{logger: logger, model: model}
	if apiKey != "" {
		s.client = openai.NewClient(apiKey)
	}
	if s.model == "" {
		s.model = "gpt-4o-mini"
	}
	return s
}

// Enhance returns suggestions for the given content. The template path is
// pure; the model path degrades to it on any error.
func (s *Service) Enhance(ctx context.Context, in Input) (*Result, error) {
	if _, err := content.ParseType(string(in.Type)); err != nil {
		return nil, err
	}
	if s.client != nil {
		res, err := s.enhanceWithModel(ctx, in)
		if err == nil {
			return res, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		s.logger.Warn("model enhancement failed, using templates", "error", err)
	}
	return templateResult(in), nil
}

func templateResult(in Input) *Result {
	var suggestions []Suggestion
	gain := 0

	report := settings.AnalyzeSEO(settings.SEOInput{
		Title: in.Title, Description: in.Description, Content: in.Description,
	})

	title := strings.TrimSpace(in.Title)
	if len(title) < 30 {
		suggested := title
		if suggested == "" {
			suggested = defaultTitle(in.Type)
		}
		if in.Location != "" && !strings.Contains(suggested, in.Location) {
			suggested = fmt.Sprintf("%s in %s", suggested, in.Location)
		}
		suggestions = append(suggestions, Suggestion{
			Field:     "title",
			Current:   title,
			Suggested: suggested,
			Rationale: "Longer, location-qualified titles rank better in search",
		})
		gain += 10
	}

	desc := strings.TrimSpace(in.Description)
	if len(desc) < 120 {
		suggestions = append(suggestions, Suggestion{
			Field:     "meta_description",
			Current:   desc,
			Suggested: expandDescription(in),
			Rationale: "Meta descriptions of 120-160 characters avoid truncation",
		})
		gain += 10
	}

	suggestions = append(suggestions, Suggestion{
		Field:     "keywords",
		Suggested: keywordsFor(in),
		Rationale: "Keyword hints for the page metadata",
	})

	if best := 100 - report.Score; gain > best {
		gain = best
	}
	return &Result{Suggestions: suggestions, EstimatedGain: gain, GeneratedBy: "template"}
}

func defaultTitle(t content.Type) string {
	switch t {
	case content.TypePiano:
		return "A Public Piano Worth Visiting"
	case content.TypeEvent:
		return "A Community Piano Event"
	default:
		return "Notes from the WorldPianos Community"
	}
}

func expandDescription(in Input) string {
	base := strings.TrimSpace(in.Description)
	if base == "" {
		base = defaultTitle(in.Type)
	}
	parts := []string{base}
	if in.Location != "" {
		parts = append(parts, "Located at "+in.Location+".")
	}
	parts = append(parts, "Discover public pianos, community events, and player stories on WorldPianos.")
	return strings.Join(parts, " ")
}

func keywordsFor(in Input) string {
	words := []string{"public piano"}
	switch in.Type {
	case content.TypeEvent:
		words = append(words, "piano event", "live music")
	case content.TypeBlogPost:
		words = append(words, "piano stories", "piano community")
	default:
		words = append(words, "street piano", "piano map")
	}
	if in.Location != "" {
		words = append(words, strings.ToLower(in.Location))
	}
	return strings.Join(words, ", ")
}

func (s *Service) enhanceWithModel(ctx context.Context, in Input) (*Result, error) {
	prompt := fmt.Sprintf(
		"Suggest an improved title, meta description (120-160 chars), and comma-separated keywords for this %s listing.\nTitle: %s\nDescription: %s\nLocation: %s\nRespond as JSON: {\"title\": ..., \"meta_description\": ..., \"keywords\": ...}",
		in.Type, in.Title, in.Description, in.Location,
	)
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem,
				Content: "You are an SEO assistant for a public piano directory. Respond with JSON only."},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("empty model response")
	}

	var payload struct {
		Title           string `json:"title"`
		MetaDescription string `json:"meta_description"`
		Keywords        string `json:"keywords"`
	}
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &payload); err != nil {
		return nil, fmt.Errorf("decode model response: %w", err)
	}

	var suggestions []Suggestion
	if payload.Title != "" {
		suggestions = append(suggestions, Suggestion{
			Field: "title", Current: in.Title, Suggested: payload.Title,
		})
	}
	if payload.MetaDescription != "" {
		suggestions = append(suggestions, Suggestion{
			Field: "meta_description", Current: in.Description, Suggested: payload.MetaDescription,
		})
	}
	if payload.Keywords != "" {
		suggestions = append(suggestions, Suggestion{Field: "keywords", Suggested: payload.Keywords})
	}
	return &Result{Suggestions: suggestions, EstimatedGain: 15, GeneratedBy: "openai"}, nil
}
