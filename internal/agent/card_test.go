package agent

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAgentCard(t *testing.T) {
	require.NoError(t, LoadAgentCard())

	var card map[string]any
	require.NoError(t, json.Unmarshal(AgentCardData, &card))
	assert.Equal(t, "STRATYX Marketing Planner", card["name"])
	assert.Contains(t, card, "skills")
}
