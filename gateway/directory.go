package gateway

import (
	"context"
	"fmt"

	"github.com/hupe1980/colm/config"
	"github.com/hupe1980/colm/model"
	"github.com/hupe1980/colm/model/anthropic"
	"github.com/hupe1980/colm/model/gemini"
	"github.com/hupe1980/colm/model/openai"

	anthropicsdk "github.com/anthropics/anthropic-sdk-go"
)

// ModelFactory builds the deployment serving one endpoint of a backend.
type ModelFactory func(ctx context.Context, b config.Backend, ep config.Endpoint) (model.Model, error)

// DefaultFactory maps api_type onto the provider adapters in package model.
func DefaultFactory(ctx context.Context, b config.Backend, ep config.Endpoint) (model.Model, error) {
	key := ep.ResolveAPIKey(b.APIType)

	switch b.APIType {
	case config.APITypeOpenAI, "":
		return openai.NewModel(func(o *openai.Options) {
			o.Model = b.ModelName
			o.APIKey = key
			o.BaseURL = ep.APIBase
		}), nil
	case config.APITypeAzure:
		return openai.NewModel(func(o *openai.Options) {
			o.Model = b.ModelName
			o.APIKey = key
			o.AzureEndpoint = ep.APIBase
			if ep.APIVersion != "" {
				o.AzureAPIVersion = ep.APIVersion
			}
		}), nil
	case config.APITypeAnthropic:
		return anthropic.NewModel(func(o *anthropic.Options) {
			o.Model = anthropicsdk.Model(b.ModelName)
			o.APIKey = key
			o.BaseURL = ep.APIBase
		}), nil
	case config.APITypeGemini:
		return gemini.NewModel(ctx, func(o *gemini.Options) {
			o.Model = b.ModelName
			o.APIKey = key
		})
	default:
		return nil, fmt.Errorf("unsupported api type %q", b.APIType)
	}
}

// FromDirectory registers one deployment per endpoint of every backend in dir.
// A nil factory selects DefaultFactory.
func FromDirectory(ctx context.Context, dir config.EndpointDirectory, factory ModelFactory, optFns ...func(o *Options)) (*Gateway, error) {
	if factory == nil {
		factory = DefaultFactory
	}

	g := New(optFns...)
	for _, id := range dir.IDs() {
		b := dir[id]
		endpoints := b.Endpoints
		if len(endpoints) == 0 {
			endpoints = []config.Endpoint{{}}
		}
		for i, ep := range endpoints {
			m, err := factory(ctx, b, ep)
			if err != nil {
				return nil, fmt.Errorf("backend %s endpoint %d: %w", id, i, err)
			}
			g.Register(id, m)
		}
		g.logger.Debug("Registered backend", "backend", id, "model", b.ModelName, "api_type", b.APIType, "endpoints", len(endpoints))
	}
	return g, nil
}
