package summary

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/OlosLive/holidayGo/internal/domain"
)

type messengerMock struct {
	NewFunc func(ctx context.Context, params anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error)
	calls   []anthropic.MessageNewParams
}

func (m *messengerMock) New(ctx context.Context, params anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error) {
	m.calls = append(m.calls, params)
	if m.NewFunc == nil {
		panic("messengerMock.NewFunc is nil but New was called")
	}
	return m.NewFunc(ctx, params, opts...)
}

func newTestService(mock *messengerMock) *Service {
	return &Service{
		messages: mock,
		model:    "claude-sonnet-4-5",
		maxWords: 150,
		log:      slog.Default(),
	}
}

func monthlySnapshot() Snapshot {
	return Snapshot{
		Mode:  ModeMonthly,
		Year:  2026,
		Month: 8,
		Members: []Member{
			{
				Name:   "Ana Silva",
				Role:   "Designer",
				Status: domain.StatusVacationing,
				DaysByMonth: map[int][]int{
					8: {10, 11, 12},
				},
			},
			{
				Name:        "Bruno Costa",
				Role:        "Engineer",
				Status:      domain.StatusActive,
				DaysByMonth: map[int][]int{},
			},
		},
	}
}

// ---------------------------------------------------------------------------
// Generate
// ---------------------------------------------------------------------------

func TestGenerate_ReturnsModelText(t *testing.T) {
	t.Parallel()

	mock := &messengerMock{
		NewFunc: func(ctx context.Context, params anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error) {
			return &anthropic.Message{
				Content: []anthropic.ContentBlockUnion{{Type: "text", Text: "Two absences in August."}},
			}, nil
		},
	}

	svc := newTestService(mock)
	got := svc.Generate(context.Background(), monthlySnapshot())
	if got != "Two absences in August." {
		t.Errorf("Generate: got %q", got)
	}
	if len(mock.calls) != 1 {
		t.Fatalf("expected 1 API call, got %d", len(mock.calls))
	}
	if string(mock.calls[0].Model) != "claude-sonnet-4-5" {
		t.Errorf("model: got %q", mock.calls[0].Model)
	}
}

func TestGenerate_FallbackOnError(t *testing.T) {
	t.Parallel()

	mock := &messengerMock{
		NewFunc: func(ctx context.Context, params anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error) {
			return nil, errors.New("api unavailable")
		},
	}

	svc := newTestService(mock)
	if got := svc.Generate(context.Background(), monthlySnapshot()); got != Fallback {
		t.Errorf("expected fallback string, got %q", got)
	}
}

func TestGenerate_FallbackOnEmptyResponse(t *testing.T) {
	t.Parallel()

	mock := &messengerMock{
		NewFunc: func(ctx context.Context, params anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error) {
			return &anthropic.Message{}, nil
		},
	}

	svc := newTestService(mock)
	if got := svc.Generate(context.Background(), monthlySnapshot()); got != Fallback {
		t.Errorf("expected fallback string, got %q", got)
	}
}

// ---------------------------------------------------------------------------
// Prompt formatting
// ---------------------------------------------------------------------------

func TestBuildPrompt_Monthly(t *testing.T) {
	t.Parallel()

	prompt := buildPrompt(monthlySnapshot(), 150)

	for _, want := range []string{
		"August 2026",
		"at most 150 words",
		"- Ana Silva (Designer): status vacationing, vacation days in August: 10, 11, 12",
		"- Bruno Costa (Engineer): status active, vacation days in August: none",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q\nprompt:\n%s", want, prompt)
		}
	}
	if strings.Contains(prompt, "distributed across the year") {
		t.Error("monthly prompt must not include the annual analysis instruction")
	}
}

func TestBuildPrompt_Annual(t *testing.T) {
	t.Parallel()

	snap := Snapshot{
		Mode: ModeAnnual,
		Year: 2026,
		Members: []Member{
			{
				Name:   "Ana Silva",
				Role:   "Designer",
				Status: domain.StatusActive,
				DaysByMonth: map[int][]int{
					12: {21, 22},
					3:  {5},
				},
			},
			{
				Name:   "Bruno Costa",
				Role:   "Engineer",
				Status: domain.StatusActive,
			},
		},
	}

	prompt := buildPrompt(snap, 150)

	for _, want := range []string{
		"the year 2026",
		"distributed across the year",
		// Months appear in calendar order with singular/plural day units.
		"March (1 day): days 5; December (2 days): days 21, 22",
		"- Bruno Costa (Engineer): status active, vacations this year: none",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q\nprompt:\n%s", want, prompt)
		}
	}
}
