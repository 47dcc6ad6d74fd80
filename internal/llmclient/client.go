package llmclient

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Razgrits/Suno-Battler/internal/constants"
)

// Completer sends a single prompt to a language model and returns the raw
// text of its reply.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
	// Model names the backing model; it is recorded next to cached output.
	Model() string
}

// ErrEmptyResponse is returned when the provider answers without content.
var ErrEmptyResponse = errors.New("empty response from language model")

// Options configure a provider client.
type Options struct {
	Provider string
	Model    string
	APIKey   string
	// BaseURL overrides the provider endpoint (used by tests).
	BaseURL string
	Timeout time.Duration
}

// New builds the Completer for opts.Provider.
func New(ctx context.Context, opts Options) (Completer, error) {
	if opts.Timeout <= 0 {
		opts.Timeout = 60 * time.Second
	}
	switch strings.ToLower(opts.Provider) {
	case "", constants.ProviderOpenAI:
		return NewOpenAI(opts)
	case constants.ProviderGemini:
		return NewGemini(ctx, opts)
	default:
		return nil, fmt.Errorf("unknown provider %q", opts.Provider)
	}
}
