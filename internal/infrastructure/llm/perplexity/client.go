// Package perplexity wraps the Perplexity chat-completions API behind the
// Simplifier and JargonService ports.
package perplexity

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/plainbrief/plainbrief/internal/core/domain"
	"github.com/plainbrief/plainbrief/internal/infrastructure/resilience"
)

type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	executor   *resilience.Executor
	prompts    *PromptSet
}

type Options struct {
	Timeout  time.Duration
	Executor *resilience.Executor
	Prompts  *PromptSet
}

func New(baseURL, apiKey, model string, options Options) *Client {
	timeout := options.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	executor := options.Executor
	if executor == nil {
		executor = resilience.NewExecutor(resilience.LLMConfig())
	}
	prompts := options.Prompts
	if prompts == nil {
		prompts = DefaultPrompts()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: timeout},
		executor:   executor,
		prompts:    prompts,
	}
}

// ensureConfigured fails fast before any network call when the credential is
// absent; operator-fixable, not user-fixable.
func (c *Client) ensureConfigured(operation string) error {
	if strings.TrimSpace(c.apiKey) == "" {
		return domain.WrapError(domain.ErrConfiguration, operation, errMissingAPIKey)
	}
	return nil
}

// Simplify rewrites text for the audience using its system prompt.
func (c *Client) Simplify(ctx context.Context, text string, audience domain.Audience) (domain.Simplification, error) {
	const operation = "llm_simplify"
	if err := c.ensureConfigured(operation); err != nil {
		return domain.Simplification{}, err
	}

	completion, err := c.chat(ctx, operation,
		c.prompts.System(audience),
		"Simplify this technical/business content:\n\n"+text,
	)
	if err != nil {
		return domain.Simplification{}, wrapUpstream(operation, err)
	}

	return domain.Simplification{
		Text:      completion.Content,
		Model:     completion.Model,
		Usage:     completion.Usage,
		Citations: completion.Citations,
	}, nil
}

// IdentifyTerms asks for a JSON array of jargon terms. An unparseable answer
// is treated as zero terms, not as an error.
func (c *Client) IdentifyTerms(ctx context.Context, text string, audience domain.Audience) ([]string, error) {
	const operation = "llm_identify_jargon"
	if err := c.ensureConfigured(operation); err != nil {
		return nil, err
	}

	completion, err := c.chat(ctx, operation,
		"You are a technical jargon identifier. Return only a JSON array of terms, no other text.",
		buildIdentificationPrompt(text, audience),
	)
	if err != nil {
		return nil, wrapUpstream(operation, err)
	}

	return ParseTermArray(completion.Content), nil
}

// ExplainTerm asks for the SHORT/DETAILED two-part explanation of one term.
// Missing tags degrade to templated text; only transport errors surface.
func (c *Client) ExplainTerm(ctx context.Context, term, text string, audience domain.Audience) (domain.JargonEntry, error) {
	const operation = "llm_explain_jargon"
	if err := c.ensureConfigured(operation); err != nil {
		return domain.JargonEntry{}, err
	}

	completion, err := c.chat(ctx, operation,
		buildExplanationSystemPrompt(audience),
		buildExplanationPrompt(term, text),
	)
	if err != nil {
		return domain.JargonEntry{}, wrapUpstream(operation, err)
	}

	return ParseExplanation(term, completion.Content), nil
}

type completion struct {
	Content   string
	Model     string
	Usage     domain.TokenUsage
	Citations []string
}

func (c *Client) chat(ctx context.Context, operation, systemPrompt, userPrompt string) (completion, error) {
	request := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
	}

	var response chatResponse
	err := c.executor.Execute(ctx, operation, func(ctx context.Context) error {
		return c.postJSON(ctx, "/chat/completions", request, &response, operation)
	}, classifyUpstreamError)
	if err != nil {
		return completion{}, err
	}

	if len(response.Choices) == 0 {
		return completion{}, errEmptyChoices
	}

	return completion{
		Content: strings.TrimSpace(response.Choices[0].Message.Content),
		Model:   response.Model,
		Usage: domain.TokenUsage{
			PromptTokens:     response.Usage.PromptTokens,
			CompletionTokens: response.Usage.CompletionTokens,
			TotalTokens:      response.Usage.TotalTokens,
			Cost:             response.Usage.Cost,
		},
		Citations: response.Citations,
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int     `json:"prompt_tokens"`
		CompletionTokens int     `json:"completion_tokens"`
		TotalTokens      int     `json:"total_tokens"`
		Cost             float64 `json:"cost"`
	} `json:"usage"`
	Citations []string `json:"citations"`
}
