package gemini

import (
	"testing"

	"github.com/hupe1980/colm/core"
	"github.com/hupe1980/colm/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestBuildRequest(t *testing.T) {
	m := NewModelFromClient(nil, func(o *Options) { o.Model = "gemini-test" })

	contents, cfg := m.buildRequest(model.Request{Messages: []core.Message{
		core.SystemMessage("a"),
		core.SystemMessage("b"),
		core.UserMessage("q"),
		core.AssistantMessage("r"),
	}})

	require.Len(t, contents, 2)
	assert.Equal(t, string(genai.RoleUser), contents[0].Role)
	assert.Equal(t, string(genai.RoleModel), contents[1].Role)
	require.NotNil(t, cfg.SystemInstruction)
	assert.Equal(t, "a\n\nb", cfg.SystemInstruction.Parts[0].Text)
	assert.Equal(t, int32(1000), cfg.MaxOutputTokens)
	assert.InDelta(t, 0.7, float64(*cfg.Temperature), 1e-6)
	assert.Equal(t, "gemini-test", m.Info().Name)
}

func TestBuildRequest_DropsBlankModelTurns(t *testing.T) {
	m := NewModelFromClient(nil)

	contents, _ := m.buildRequest(model.Request{Messages: []core.Message{
		core.UserMessage("t1"),
		core.AssistantMessage(""),
		core.UserMessage("t2"),
	}})

	require.Len(t, contents, 2)
	assert.Equal(t, "t2", contents[1].Parts[0].Text)
}
