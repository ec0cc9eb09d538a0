package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// ErrEmptyText is returned when there is no input text to adapt.
var ErrEmptyText = errors.New("input text is empty")

// Agent turns an input text and options into an adapted text and questions.
type Agent struct {
	llm    LLMClient
	logger *slog.Logger
	now    func() time.Time
}

// AgentOption configures an Agent.
type AgentOption func(*Agent)

// WithLogger sets the logger used for per-call diagnostics.
func WithLogger(l *slog.Logger) AgentOption {
	return func(a *Agent) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithClock overrides the time source for CreatedAt.
func WithClock(now func() time.Time) AgentOption {
	return func(a *Agent) {
		if now != nil {
			a.now = now
		}
	}
}

func NewAgent(llm LLMClient, opts ...AgentOption) (*Agent, error) {
	if llm == nil {
		return nil, errors.New("llm client is required")
	}
	a := &Agent{llm: llm, logger: slog.Default(), now: time.Now}
	for _, o := range opts {
		o(a)
	}
	return a, nil
}

// Adapt rewrites text for opts.Grade and, when requested, writes comprehension
// questions for the result. model may be empty to use the client default.
func (a *Agent) Adapt(ctx context.Context, text string, opts Options, model string) (Adaptation, error) {
	if strings.TrimSpace(text) == "" {
		return Adaptation{}, ErrEmptyText
	}
	if !opts.Grade.Valid() {
		return Adaptation{}, fmt.Errorf("%w: %d", ErrUnknownGrade, int(opts.Grade))
	}

	prompt := BuildAdaptPrompt(text, opts)
	prompt.Model = model
	start := a.now()
	raw, err := a.llm.Complete(ctx, prompt)
	if err != nil {
		return Adaptation{}, fmt.Errorf("adapt text: %w", err)
	}
	adapted, err := PostProcess(raw)
	if err != nil {
		return Adaptation{}, fmt.Errorf("adapt text: %w", err)
	}
	a.logger.Debug("adapted text", "grade", opts.Grade.String(), "model", model, "chars", len(adapted), "elapsed", a.now().Sub(start))

	out := Adaptation{
		Grade:     opts.Grade,
		Model:     model,
		Original:  text,
		Adapted:   adapted,
		CreatedAt: a.now(),
	}
	if !opts.GenerateQuestions {
		return out, nil
	}

	qp := BuildQuestionsPrompt(adapted, opts.Grade)
	qp.Model = model
	rawQ, err := a.llm.Complete(ctx, qp)
	if err != nil {
		return Adaptation{}, fmt.Errorf("generate questions: %w", err)
	}
	if out.Questions, err = PostProcess(rawQ); err != nil {
		return Adaptation{}, fmt.Errorf("generate questions: %w", err)
	}
	return out, nil
}
