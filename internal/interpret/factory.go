package interpret

import (
	"fmt"
	"time"
)

// ProviderConfig selects and configures an interpretation provider.
type ProviderConfig struct {
	Provider string // "anthropic" or "openai"
	APIKey   string
	Model    string
	BaseURL  string
	Timeout  time.Duration
}

// NewInterpreter creates the appropriate Interpreter based on provider config.
func NewInterpreter(cfg ProviderConfig) (Interpreter, error) {
	switch cfg.Provider {
	case "anthropic", "":
		return NewAnthropicClient(AnthropicConfig{
			APIKey:  cfg.APIKey,
			Model:   cfg.Model,
			BaseURL: cfg.BaseURL,
			Timeout: cfg.Timeout,
		}), nil
	case "openai":
		return NewOpenAIClient(OpenAIConfig{
			APIKey:  cfg.APIKey,
			Model:   cfg.Model,
			BaseURL: cfg.BaseURL,
			Timeout: cfg.Timeout,
		}), nil
	default:
		return nil, fmt.Errorf("unsupported interpretation provider: %q", cfg.Provider)
	}
}
