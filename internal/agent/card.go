package agent

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"
)

//go:embed agent.json
var rawCard []byte

var (
	AgentCardData []byte
	loadOnce      sync.Once
	loadErr       error
)

// LoadAgentCard validates the embedded card and exposes it as AgentCardData.
func LoadAgentCard() error {
	loadOnce.Do(func() {
		var card map[string]any
		if err := json.Unmarshal(rawCard, &card); err != nil {
			loadErr = fmt.Errorf("invalid agent card: %w", err)
			return
		}
		for _, field := range []string{"name", "description", "version", "capabilities", "endpoints"} {
			if _, ok := card[field]; !ok {
				loadErr = fmt.Errorf("agent card is missing %q", field)
				return
			}
		}
		AgentCardData = rawCard
	})
	return loadErr
}
