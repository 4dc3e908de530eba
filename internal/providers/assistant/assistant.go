// Package assistant proxies free-text dashboard questions to a
// chat-completion service. The pipeline only contributes the static system
// context (glossary and chart descriptions); the provider is otherwise
// opaque.
package assistant

import "context"

// Responder answers a single free-text question about the dashboard.
type Responder interface {
	Ask(ctx context.Context, query string) (string, error)
}
