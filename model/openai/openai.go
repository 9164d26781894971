// Package openai provides an implementation of model.Model using the OpenAI
// Chat Completions API. The same adapter serves OpenAI-compatible endpoints
// (via BaseURL) and Azure OpenAI deployments (via AzureEndpoint).
package openai

import (
	"context"
	"fmt"

	"github.com/hupe1980/colm/core"
	"github.com/hupe1980/colm/model"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/azure"
	"github.com/openai/openai-go/option"
)

// Options configure the OpenAI model adapter.
// Fields mirror a subset of Chat Completion parameters kept minimal; extend
// via functional options without breaking callers.
type Options struct {
	Model       string
	Temperature float64
	MaxTokens   int64
	APIKey      string
	BaseURL     string

	// AzureEndpoint switches the adapter to Azure OpenAI when set.
	AzureEndpoint   string
	AzureAPIVersion string
}

// Model wraps the OpenAI Chat Completions API behind the generic model.Model interface.
type Model struct {
	client   *openai.Client
	opts     Options
	provider string
}

func defaultOptions() Options {
	return Options{
		Model:           string(openai.ChatModelGPT4o),
		Temperature:     0.7,
		MaxTokens:       1000,
		AzureAPIVersion: "2024-06-01",
	}
}

// NewModel creates a new OpenAI model using the official client.
func NewModel(optFns ...func(o *Options)) *Model {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	var clientOpts []option.RequestOption
	provider := "openai"
	if opts.AzureEndpoint != "" {
		provider = "azure"
		clientOpts = append(clientOpts, azure.WithEndpoint(opts.AzureEndpoint, opts.AzureAPIVersion))
		if opts.APIKey != "" {
			clientOpts = append(clientOpts, azure.WithAPIKey(opts.APIKey))
		}
	} else {
		if opts.APIKey != "" {
			clientOpts = append(clientOpts, option.WithAPIKey(opts.APIKey))
		}
		if opts.BaseURL != "" {
			clientOpts = append(clientOpts, option.WithBaseURL(opts.BaseURL))
		}
	}

	client := openai.NewClient(clientOpts...)
	return &Model{client: &client, opts: opts, provider: provider}
}

// NewModelFromClient creates a new OpenAI model from an existing client.
func NewModelFromClient(client *openai.Client, optFns ...func(o *Options)) *Model {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Model{client: client, opts: opts, provider: "openai"}
}

// Generate implements model.Model with a single non-streaming completion.
func (m *Model) Generate(ctx context.Context, req model.Request) (<-chan model.Response, <-chan error) {
	out := make(chan model.Response, 1)
	errCh := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errCh)
		params := m.buildParams(req)
		resp, err := m.client.Chat.Completions.New(ctx, params)
		if err != nil {
			errCh <- fmt.Errorf("%s api error: %w", m.provider, err)
			return
		}
		if len(resp.Choices) == 0 {
			errCh <- fmt.Errorf("no choices returned")
			return
		}
		ch0 := resp.Choices[0]
		out <- model.Response{
			ID:           resp.ID,
			Text:         ch0.Message.Content,
			FinishReason: ch0.FinishReason,
			Usage: &model.TokenUsage{
				PromptTokens:     int(resp.Usage.PromptTokens),
				CompletionTokens: int(resp.Usage.CompletionTokens),
				TotalTokens:      int(resp.Usage.TotalTokens),
			},
		}
	}()
	return out, errCh
}

// buildMessages converts normalized messages into OpenAI chat messages.
func buildMessages(msgs []core.Message) []openai.ChatCompletionMessageParamUnion {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(msgs))
	for _, msg := range msgs {
		switch msg.Role {
		case core.RoleSystem:
			messages = append(messages, openai.SystemMessage(msg.Content))
		case core.RoleAssistant:
			messages = append(messages, openai.AssistantMessage(msg.Content))
		default:
			messages = append(messages, openai.UserMessage(msg.Content))
		}
	}
	return messages
}

// buildParams assembles the OpenAI request parameters.
func (m *Model) buildParams(req model.Request) openai.ChatCompletionNewParams {
	return openai.ChatCompletionNewParams{
		Messages:    buildMessages(req.Messages),
		Model:       openai.ChatModel(m.opts.Model),
		Temperature: openai.Float(req.TemperatureOr(m.opts.Temperature)),
		MaxTokens:   openai.Int(req.MaxTokensOr(m.opts.MaxTokens)),
	}
}

// Info returns metadata describing this OpenAI model implementation.
func (m *Model) Info() model.Info {
	return model.Info{
		Name:     m.opts.Model,
		Provider: m.provider,
	}
}
