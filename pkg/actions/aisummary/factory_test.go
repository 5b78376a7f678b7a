package aisummary_test

import (
	"context"
	"testing"

	"github.com/flowcrm/aisummary/pkg/actions/aisummary"
	"github.com/flowcrm/aisummary/pkg/mocks"
	"github.com/flowcrm/aisummary/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActionFactory_Metadata(t *testing.T) {
	factory := aisummary.NewActionFactory(&mocks.MockSummarizer{}, testLogger())

	assert.Equal(t, models.ActionTypeAiSummary, factory.Type())
	assert.Equal(t, "AI Summary", factory.Name())
	assert.Equal(t, "IconSparkles", factory.Icon())
	assert.NotEmpty(t, factory.Description())
}

func TestActionFactory_Create(t *testing.T) {
	factory := aisummary.NewActionFactory(&mocks.MockSummarizer{}, testLogger())

	for _, config := range []map[string]any{nil, {}, {"ignored": true}} {
		action, err := factory.Create(context.Background(), config)
		require.NoError(t, err)
		assert.IsType(t, &aisummary.Action{}, action)
	}
}

func TestActionFactory_Schema(t *testing.T) {
	schema := aisummary.NewActionFactory(&mocks.MockSummarizer{}, testLogger()).Schema()

	assert.Equal(t, "object", schema["type"])
	assert.Equal(t, []string{"prompt"}, schema["required"])

	properties, ok := schema["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, properties, "prompt")
	assert.Contains(t, properties, "model")
	assert.Contains(t, properties, "maxTokens")
	assert.Contains(t, properties, "temperature")

	temperature, ok := properties["temperature"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 0, temperature["minimum"])
	assert.Equal(t, 2, temperature["maximum"])
}
