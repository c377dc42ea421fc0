// Package summary turns a team vacation snapshot into a short executive
// summary via the Anthropic Messages API.
package summary

import (
	"context"
	"log/slog"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/OlosLive/holidayGo/internal/config"
	"github.com/OlosLive/holidayGo/internal/domain"
)

// Fallback is returned whenever the model call fails. Callers always get a
// printable string; failures are logged, never propagated.
const Fallback = "The team summary could not be generated right now."

// Mode selects the reporting period shape.
type Mode string

const (
	ModeMonthly Mode = "monthly"
	ModeAnnual  Mode = "annual"
)

// Member is one employee's slice of the snapshot. DaysByMonth maps 1-indexed
// months to planned day-of-month values for the snapshot year.
type Member struct {
	Name        string
	Role        string
	Status      domain.ProfileStatus
	DaysByMonth map[int][]int
}

// Snapshot is the input to one summary generation.
type Snapshot struct {
	Mode    Mode
	Year    int
	Month   int // used in monthly mode; 1-indexed
	Members []Member
}

type messenger interface {
	New(ctx context.Context, params anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error)
}

// Service generates team summaries.
type Service struct {
	messages messenger
	model    string
	maxWords int
	log      *slog.Logger
}

// NewService creates a summary service. The API key is read from the
// environment by the SDK client.
func NewService(log *slog.Logger, cfg config.SummaryConfig) *Service {
	client := anthropic.NewClient()
	return &Service{
		messages: &client.Messages,
		model:    cfg.Model,
		maxWords: cfg.MaxWords,
		log:      log.With("service", "summary"),
	}
}

// Generate produces the summary text for the snapshot. On any failure it
// returns Fallback; the error is logged but never surfaced.
func (s *Service) Generate(ctx context.Context, snap Snapshot) string {
	prompt := buildPrompt(snap, s.maxWords)

	msg, err := s.messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(s.model),
		MaxTokens: 1024,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		s.log.WarnContext(ctx, "summary generation failed", slog.String("error", err.Error()))
		return Fallback
	}
	if len(msg.Content) == 0 || msg.Content[0].Text == "" {
		s.log.WarnContext(ctx, "summary generation returned no text")
		return Fallback
	}

	return msg.Content[0].Text
}
