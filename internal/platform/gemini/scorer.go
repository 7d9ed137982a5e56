// Package gemini implements the scoring.Scorer interface on top of
// Google's Gemini API. The model receives the answer text inside a
// band-descriptor prompt and must reply with a JSON score bundle.
package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/speakoai/speako-api/internal/config"
	"github.com/speakoai/speako-api/internal/domain"
	"github.com/speakoai/speako-api/internal/scoring"
	"google.golang.org/genai"
)

// scorePrompt instructs the model to act as an IELTS speaking examiner.
// The %s placeholder receives the candidate's answer.
const scorePrompt = `You are an IELTS speaking examiner. Assess the candidate's
spoken answer transcript below against the IELTS band descriptors and reply
with ONLY a JSON object of this exact shape, all scores on the 0-9 band scale
in half-band steps:

{"fluency_score": 0.0, "pronunciation_score": 0.0, "grammar_score": 0.0,
 "vocabulary_score": 0.0, "overall_score": 0.0, "feedback": "..."}

Omit a score field if the transcript gives no basis to assess it. Keep the
feedback to three or four concrete, encouraging sentences.

Candidate answer:
%s`

// GeminiScorer implements the scoring.Scorer interface using
// Google's Gemini API to assess practice answers.
type GeminiScorer struct {
	logger *slog.Logger
	config config.ScoringConfig
	client *genai.Client
	model  string
}

// Ensure GeminiScorer implements scoring.Scorer
var _ scoring.Scorer = (*GeminiScorer)(nil)

// NewGeminiScorer creates a new GeminiScorer with the provided configuration.
// Returns an error if the configuration is incomplete or the client
// cannot be initialized.
func NewGeminiScorer(
	ctx context.Context,
	logger *slog.Logger,
	cfg config.ScoringConfig,
) (*GeminiScorer, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if cfg.GeminiAPIKey == "" {
		return nil, errors.New("gemini API key cannot be empty")
	}

	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", scoring.ErrInvalidResult)
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiScorer{
		logger: logger.With(slog.String("component", "gemini_scorer")),
		config: cfg,
		client: client,
		model:  cfg.ModelName,
	}, nil
}

// Score implements scoring.Scorer.Score.
// It calls the Gemini API with exponential backoff retry for transient
// failures; a malformed or out-of-range response is permanent and is
// returned as scoring.ErrInvalidResult without retrying.
func (g *GeminiScorer) Score(ctx context.Context, answerText string) (*scoring.Result, error) {
	if strings.TrimSpace(answerText) == "" {
		return nil, scoring.ErrEmptyAnswer
	}

	prompt := fmt.Sprintf(scorePrompt, answerText)

	maxRetries := g.config.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		g.logger.InfoContext(ctx, "calling Gemini scoring API",
			"attempt", attempt+1,
			"max_attempts", maxRetries+1)

		result, err := g.callOnce(ctx, prompt)
		if err == nil {
			return result, nil
		}
		lastErr = err

		// Permanent errors: bad payloads do not get better on retry.
		if errors.Is(err, scoring.ErrInvalidResult) {
			g.logger.WarnContext(ctx, "permanent scoring error, not retrying",
				"error", err)
			return nil, err
		}

		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %v", scoring.ErrUnavailable, ctx.Err())
		}

		if attempt == maxRetries {
			break
		}

		// Exponential backoff with jitter between transient failures.
		backoff := float64(time.Second) * math.Pow(2, float64(attempt))
		jitter := 0.5 + rng.Float64()*0.5
		delay := time.Duration(backoff * jitter)

		g.logger.InfoContext(ctx, "retrying scoring call after delay",
			"attempt", attempt+1,
			"delay", delay.String())

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", scoring.ErrUnavailable, ctx.Err())
		}
	}

	return nil, fmt.Errorf("%w: %v", scoring.ErrUnavailable, lastErr)
}

// callOnce performs a single Gemini API call and parses the reply.
func (g *GeminiScorer) callOnce(ctx context.Context, prompt string) (*scoring.Result, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		g.logger.ErrorContext(ctx, "Gemini API call error", "error", err)
		return nil, err
	}

	text, err := extractText(resp)
	if err != nil {
		return nil, err
	}

	return parseResult(text)
}

// extractText pulls the plain-text reply out of a generation response.
// An empty candidate list or a safety block is a permanent error.
func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("%w: empty response", scoring.ErrInvalidResult)
	}
	if resp.Candidates[0].FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("%w: content blocked by safety filters", scoring.ErrInvalidResult)
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil {
			sb.WriteString(part.Text)
		}
	}
	return sb.String(), nil
}

// parseResult decodes the model's JSON reply and validates score ranges.
// Models occasionally wrap the JSON in a markdown fence, so that is
// stripped first.
func parseResult(text string) (*scoring.Result, error) {
	trimmed := strings.TrimSpace(text)
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")
	trimmed = strings.TrimSpace(trimmed)

	var result scoring.Result
	if err := json.Unmarshal([]byte(trimmed), &result); err != nil {
		return nil, fmt.Errorf("%w: failed to parse JSON response: %v",
			scoring.ErrInvalidResult, err)
	}

	scores := map[string]*float64{
		"fluency":       result.Fluency,
		"pronunciation": result.Pronunciation,
		"grammar":       result.Grammar,
		"vocabulary":    result.Vocabulary,
		"overall":       result.Overall,
	}
	for dimension, score := range scores {
		if score != nil && (*score < domain.MinScore || *score > domain.MaxScore) {
			return nil, fmt.Errorf("%w: %s score %.1f out of range",
				scoring.ErrInvalidResult, dimension, *score)
		}
	}

	return &result, nil
}
