// Package generator implements the graph text generation capability on top
// of an OpenAI-compatible chat completion API.
package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/dotpress/dotpress/internal/logging"
)

// Config holds generator client configuration.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string // optional, for OpenAI-compatible endpoints
	Timeout time.Duration
}

// Client calls the chat completion API to produce DOT documents. Each call
// returns a complete, self-contained graph description or an error; never a
// diff and never partial output.
type Client struct {
	api     *openai.Client
	model   string
	timeout time.Duration
	logger  *logging.Logger
}

// New creates a generator client.
func New(cfg Config, logger *logging.Logger) *Client {
	apiCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		apiCfg.BaseURL = cfg.BaseURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return &Client{
		api:     openai.NewClientWithConfig(apiCfg),
		model:   cfg.Model,
		timeout: timeout,
		logger:  logger,
	}
}

// GenerateInitial creates the first version of the graph text for a new
// session.
func (c *Client) GenerateInitial(ctx context.Context, instruction string) (string, error) {
	c.logger.Debug("generating initial graph text",
		zap.String("instruction", truncate(instruction, 50)))
	return c.complete(ctx, initialPrompt(instruction))
}

// GenerateModification rewrites existing graph text to incorporate a new
// instruction.
func (c *Client) GenerateModification(ctx context.Context, current, instruction string) (string, error) {
	c.logger.Debug("modifying graph text",
		zap.String("instruction", truncate(instruction, 50)))
	return c.complete(ctx, modificationPrompt(current, instruction))
}

func (c *Client) complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}

	text := stripFences(resp.Choices[0].Message.Content)
	if text == "" {
		return "", errors.New("chat completion contained no graph text")
	}
	return text, nil
}

// stripFences removes markdown code fences the model tends to wrap DOT
// output in.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```dot")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
