// Package bedrock implements llm.Provider using the Amazon Bedrock Converse
// API. ThrottlingException responses are surfaced as retryable throttle
// errors so the gateway applies its linear backoff contract.
package bedrock

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	brtypes "github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"

	"github.com/kbukum/chapterkit/errors"
	"github.com/kbukum/chapterkit/llm"
	"github.com/kbukum/chapterkit/provider"
)

// ProviderName is the registered name for the Bedrock provider.
const ProviderName = "bedrock"

func init() {
	llm.RegisterFactory(ProviderName, Factory())
}

// Config holds configuration for the Bedrock oracle backend.
type Config struct {
	// Region is the AWS region hosting the model.
	Region string `json:"region" yaml:"region"`
	// AccessKey and SecretKey are optional static credentials; when empty
	// the default AWS credential chain is used.
	AccessKey string `json:"access_key,omitempty" yaml:"access_key"`
	SecretKey string `json:"secret_key,omitempty" yaml:"secret_key"`
}

// Provider implements llm.Provider using the Bedrock runtime Converse API.
type Provider struct {
	client *bedrockruntime.Client
}

// NewProvider creates a new Bedrock oracle backend.
func NewProvider(ctx context.Context, cfg Config) (*Provider, error) {
	opts := []func(*awsconfig.LoadOptions) error{}
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("bedrock: load aws config: %w", err)
	}

	return &Provider{client: bedrockruntime.NewFromConfig(awsCfg)}, nil
}

// Factory returns a provider.Factory that creates Bedrock Provider instances
// from a generic config map.
func Factory() provider.Factory[llm.Provider] {
	return func(cfg map[string]any) (llm.Provider, error) {
		bc := Config{}
		if v, ok := cfg["region"].(string); ok {
			bc.Region = v
		}
		if v, ok := cfg["access_key"].(string); ok {
			bc.AccessKey = v
		}
		if v, ok := cfg["secret_key"].(string); ok {
			bc.SecretKey = v
		}
		return NewProvider(context.Background(), bc)
	}
}

// Name returns the provider name.
func (p *Provider) Name() string { return ProviderName }

// IsAvailable reports whether the client is configured. Bedrock has no
// cheap unauthenticated health endpoint.
func (p *Provider) IsAvailable(_ context.Context) bool { return p.client != nil }

// Complete sends a Converse request and returns the full response.
func (p *Provider) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	out, err := p.client.Converse(ctx, &bedrockruntime.ConverseInput{
		ModelId:         aws.String(req.Model),
		Messages:        buildMessages(req.Messages),
		InferenceConfig: inferenceConfig(req),
	})
	if err != nil {
		return nil, classify(req.Model, err)
	}

	msg, ok := out.Output.(*brtypes.ConverseOutputMemberMessage)
	if !ok {
		return nil, fmt.Errorf("bedrock: unexpected output type %T", out.Output)
	}

	resp := &llm.CompletionResponse{
		Content: firstText(msg.Value.Content),
		Model:   req.Model,
	}
	if out.Usage != nil {
		resp.Usage = llm.Usage{
			PromptTokens:     int(aws.ToInt32(out.Usage.InputTokens)),
			CompletionTokens: int(aws.ToInt32(out.Usage.OutputTokens)),
			TotalTokens:      int(aws.ToInt32(out.Usage.TotalTokens)),
		}
	}
	return resp, nil
}

// Stream sends a ConverseStream request and returns a channel of text deltas.
func (p *Provider) Stream(ctx context.Context, req llm.CompletionRequest) (<-chan llm.StreamChunk, error) {
	out, err := p.client.ConverseStream(ctx, &bedrockruntime.ConverseStreamInput{
		ModelId:         aws.String(req.Model),
		Messages:        buildMessages(req.Messages),
		InferenceConfig: inferenceConfig(req),
	})
	if err != nil {
		return nil, classify(req.Model, err)
	}

	ch := make(chan llm.StreamChunk)
	go func() {
		defer close(ch)
		stream := out.GetStream()
		defer stream.Close()

		for event := range stream.Events() {
			switch e := event.(type) {
			case *brtypes.ConverseStreamOutputMemberContentBlockDelta:
				if delta, ok := e.Value.Delta.(*brtypes.ContentBlockDeltaMemberText); ok {
					select {
					case ch <- llm.StreamChunk{Content: delta.Value}:
					case <-ctx.Done():
						return
					}
				}
			case *brtypes.ConverseStreamOutputMemberMessageStop:
				select {
				case ch <- llm.StreamChunk{Done: true}:
				case <-ctx.Done():
				}
				return
			}
		}
		if err := stream.Err(); err != nil {
			select {
			case ch <- llm.StreamChunk{Err: err}:
			case <-ctx.Done():
			}
		}
	}()
	return ch, nil
}

func buildMessages(messages []llm.Message) []brtypes.Message {
	out := make([]brtypes.Message, 0, len(messages))
	for _, m := range messages {
		role := brtypes.ConversationRoleUser
		if m.Role == "assistant" {
			role = brtypes.ConversationRoleAssistant
		}
		out = append(out, brtypes.Message{
			Role:    role,
			Content: []brtypes.ContentBlock{&brtypes.ContentBlockMemberText{Value: m.Content}},
		})
	}
	return out
}

func inferenceConfig(req llm.CompletionRequest) *brtypes.InferenceConfiguration {
	if req.Temperature == 0 && req.MaxTokens == 0 {
		return nil
	}
	cfg := &brtypes.InferenceConfiguration{}
	if req.Temperature > 0 {
		cfg.Temperature = aws.Float32(float32(req.Temperature))
	}
	if req.MaxTokens > 0 {
		cfg.MaxTokens = aws.Int32(int32(req.MaxTokens))
	}
	return cfg
}

func firstText(blocks []brtypes.ContentBlock) string {
	for _, block := range blocks {
		if text, ok := block.(*brtypes.ContentBlockMemberText); ok {
			return text.Value
		}
	}
	return ""
}

// classify maps SDK errors onto the pipeline taxonomy: throttling becomes a
// retryable throttle error, everything else passes through.
func classify(model string, err error) error {
	var throttle *brtypes.ThrottlingException
	if stderrors.As(err, &throttle) {
		return errors.Throttled(model, err)
	}
	return fmt.Errorf("bedrock: converse: %w", err)
}
