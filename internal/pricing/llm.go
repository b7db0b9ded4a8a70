package pricing

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const complexityPrompt = "You are evaluating handmade Indian crafts. Rate the craftsmanship " +
	"complexity of the following product on a 1-10 scale, where 1 is a simple " +
	"machine-assisted piece and 10 is museum-grade hand work requiring weeks of labor. " +
	"Respond with only the number.\n\nProduct description:\n%s"

type llmFailureClass int

const (
	failureNone llmFailureClass = iota
	failureTimeout
	failureRateLimit
	failureServer
	failureClient
)

type AnthropicMessager interface {
	New(ctx context.Context, params anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error)
}

type AnthropicClientCreator func(apiKey string) AnthropicMessager

func defaultAnthropicCreator(apiKey string) AnthropicMessager {
	c := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &c.Messages
}

var newAnthropicClient AnthropicClientCreator = defaultAnthropicCreator

// AnthropicEstimator asks the model for a single complexity number. Transient
// transport failures get a short retry; everything else surfaces to the
// caller, which falls back to the heuristic.
type AnthropicEstimator struct {
	messages AnthropicMessager
}

func NewAnthropicEstimatorFromEnv() (*AnthropicEstimator, error) {
	apiKey := strings.TrimSpace(os.Getenv("ANTHROPIC_API_KEY"))
	if apiKey == "" {
		return nil, errors.New("ANTHROPIC_API_KEY not configured")
	}
	return &AnthropicEstimator{messages: newAnthropicClient(apiKey)}, nil
}

var numberPattern = regexp.MustCompile(`\d+(?:\.\d+)?`)

func (a *AnthropicEstimator) EstimateComplexity(ctx context.Context, description string) (float64, error) {
	for attempt := 1; ; attempt++ {
		raw, err := a.generate(ctx, fmt.Sprintf(complexityPrompt, description))
		if err != nil {
			class := classifyTransportError(err)
			if attempt < 3 && (class == failureTimeout || class == failureRateLimit || class == failureServer) {
				time.Sleep(backoffDelay(attempt))
				continue
			}
			return 0, fmt.Errorf("complexity estimate transport failure: %w", err)
		}
		match := numberPattern.FindString(raw)
		if match == "" {
			return 0, fmt.Errorf("complexity estimate unparseable: %q", raw)
		}
		v, err := strconv.ParseFloat(match, 64)
		if err != nil {
			return 0, fmt.Errorf("complexity estimate unparseable: %q", raw)
		}
		return clampScore(v), nil
	}
}

func (a *AnthropicEstimator) generate(ctx context.Context, prompt string) (string, error) {
	resp, err := a.messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.ModelClaudeSonnet4_20250514,
		MaxTokens:   64,
		Messages:    []anthropic.MessageParam{anthropic.NewUserMessage(anthropic.NewTextBlock(prompt))},
		Temperature: anthropic.Float(0),
	})
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	for _, b := range resp.Content {
		if b.Type == "text" {
			sb.WriteString(b.Text)
		}
	}
	return strings.TrimSpace(sb.String()), nil
}

func classifyTransportError(err error) llmFailureClass {
	msg := strings.ToLower(err.Error())
	if errors.Is(err, context.DeadlineExceeded) {
		return failureTimeout
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return failureTimeout
	}
	switch {
	case strings.Contains(msg, "429"):
		return failureRateLimit
	case strings.Contains(msg, " 5") || strings.Contains(msg, "status code: 5") || strings.Contains(msg, "server error"):
		return failureServer
	case strings.Contains(msg, " 4") || strings.Contains(msg, "status code: 4"):
		return failureClient
	default:
		return failureServer
	}
}

func backoffDelay(attempt int) time.Duration {
	if attempt <= 1 {
		return 1 * time.Second
	}
	return 2 * time.Second
}
