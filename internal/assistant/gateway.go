// internal/assistant/gateway.go
package assistant

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"athena/internal/catalog"
	"athena/internal/circulation"
	"athena/internal/errs"
	"athena/internal/roster"
)

// FallbackMessage is returned whenever the text-generation service
// cannot produce a reply. Provider failures never surface as errors.
const FallbackMessage = "Sorry, I'm having trouble connecting to the library network (AI Service) right now."

const (
	defaultModel   = "gemini-2.5-flash"
	defaultTimeout = 30 * time.Second
	maxAttempts    = 3
)

// Snapshot is a read-only copy of the three collections taken at query
// time.
type Snapshot struct {
	Books        []catalog.Book
	Students     []roster.Student
	Transactions []circulation.Transaction
}

// Generator produces free text from a system instruction and a user
// query. It exists so tests can substitute the external collaborator.
type Generator interface {
	GenerateText(ctx context.Context, model, system, query string) (string, error)
}

// Gateway formats a context snapshot plus user query into a request for
// the generative-AI collaborator. Asks on one conversation are
// serialized, rate limited, retried with exponential backoff, and
// bounded by a hard timeout.
type Gateway struct {
	mu      sync.Mutex
	gen     Generator
	model   string
	timeout time.Duration
	limiter *rate.Limiter
	logger  *zap.Logger
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithModel overrides the default model identifier.
func WithModel(model string) Option {
	return func(g *Gateway) {
		if model != "" {
			g.model = model
		}
	}
}

// WithTimeout overrides the per-ask hard timeout.
func WithTimeout(d time.Duration) Option {
	return func(g *Gateway) {
		if d > 0 {
			g.timeout = d
		}
	}
}

// NewGateway creates a gateway over the given generator.
func NewGateway(gen Generator, logger *zap.Logger, opts ...Option) *Gateway {
	g := &Gateway{
		gen:     gen,
		model:   defaultModel,
		timeout: defaultTimeout,
		limiter: rate.NewLimiter(rate.Every(time.Second), 10),
		logger:  logger,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Ask answers a query using the snapshot as context. Any transport or
// provider failure is absorbed into the fixed fallback message.
func (g *Gateway) Ask(ctx context.Context, query string, snap Snapshot) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.limiter.Allow() {
		g.logger.Warn("assistant rate limit exceeded")
		return FallbackMessage
	}

	system := buildSystemPrompt(snap)

	reply, err := backoff.Retry(ctx, func() (string, error) {
		callCtx, cancel := context.WithTimeout(ctx, g.timeout)
		defer cancel()
		return g.gen.GenerateText(callCtx, g.model, system, query)
	},
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(maxAttempts),
	)
	if err != nil {
		g.logger.Error("assistant request failed",
			zap.String("model", g.model),
			zap.Error(fmt.Errorf("%w: %w", errs.ErrAssistantUnavailable, err)),
		)
		return FallbackMessage
	}
	if reply == "" {
		return "I couldn't generate a response at this time."
	}
	return reply
}

// NewDisabledGenerator returns a Generator that always fails, for
// running without an API key. The gateway absorbs the failure into the
// fallback message.
func NewDisabledGenerator() Generator {
	return disabledGenerator{}
}

type disabledGenerator struct{}

func (disabledGenerator) GenerateText(context.Context, string, string, string) (string, error) {
	return "", errs.ErrAssistantUnavailable
}

// googleGenerator is the production Generator backed by the Gemini API.
type googleGenerator struct {
	client *genai.Client
}

// NewGoogleGenerator creates a Gemini-backed generator.
func NewGoogleGenerator(ctx context.Context, apiKey string) (Generator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &googleGenerator{client: client}, nil
}

func (g *googleGenerator) GenerateText(ctx context.Context, model, system, query string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, model, genai.Text(query), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
	})
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return resp.Text(), nil
}
