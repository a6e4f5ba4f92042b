package ai

import "context"

// AIProvider is the capability surface the match engine and the JD
// filter depend on. Complete returns the raw model text so the caller
// owns parsing and validation; Classify is a low-token yes/no call.
type AIProvider interface {
	Complete(ctx context.Context, prompt string) (string, *TokenUsage, error)
	Classify(ctx context.Context, prompt string) (string, error)
	GetModelInfo(ctx context.Context) *ModelInfo
	Close() error
}
