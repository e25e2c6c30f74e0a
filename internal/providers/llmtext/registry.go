package llmtext

import (
	"context"
	"strings"

	"github.com/veloxline/reception_backend/internal/core/domain"
	portsprov "github.com/veloxline/reception_backend/internal/core/ports/providers"
)

// route binds a model-name prefix to a backend.
type route struct {
	prefix    string
	responder portsprov.TextResponder
}

// Registry dispatches a request to a backend purely by model-name prefix.
// Routes are checked in registration order; requests that match no route go
// to the default backend. New providers are added with Register rather than
// branching logic.
type Registry struct {
	routes   []route
	fallback portsprov.TextResponder
}

// NewRegistry creates a registry with the given default backend.
func NewRegistry(fallback portsprov.TextResponder) *Registry {
	return &Registry{fallback: fallback}
}

// Register binds a model-name prefix to a backend.
func (r *Registry) Register(prefix string, responder portsprov.TextResponder) {
	r.routes = append(r.routes, route{prefix: prefix, responder: responder})
}

// Ensure Registry itself satisfies the responder port
var _ portsprov.TextResponder = (*Registry)(nil)

// Respond routes the request to the backend whose prefix matches the model
// name and passes the reply through unchanged.
func (r *Registry) Respond(ctx context.Context, model, systemPrompt, userMessage string, history []domain.ChatMessage) (*domain.TextReply, error) {
	return r.resolve(model).Respond(ctx, model, systemPrompt, userMessage, history)
}

func (r *Registry) resolve(model string) portsprov.TextResponder {
	name := strings.ToLower(strings.TrimSpace(model))
	for _, rt := range r.routes {
		if strings.HasPrefix(name, rt.prefix) {
			return rt.responder
		}
	}
	return r.fallback
}
