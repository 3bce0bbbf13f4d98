package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/iCodeIN/vincent/internal/access"
	"github.com/iCodeIN/vincent/internal/metrics"
)

// Handler processes one update. It reports whether the update was consumed;
// an unconsumed update falls through to the next handler in the chain.
type Handler interface {
	Handle(ctx context.Context, update tgbotapi.Update) (bool, error)
}

// Route pairs an access policy with an ordered handler chain. The chain
// only sees updates its policy granted.
type Route struct {
	policy   access.Policy
	handlers []Handler
}

// Router dispatches updates through middleware and role-gated routes.
// Middleware always runs; routes are tried in registration order and the
// first consuming handler wins.
type Router struct {
	logger     *logrus.Logger
	middleware []Handler
	routes     []Route
}

// NewRouter creates a new update router.
func NewRouter(logger *logrus.Logger) *Router {
	return &Router{logger: logger}
}

// Use appends a middleware handler that runs for every update before any
// route, regardless of access policies.
func (r *Router) Use(handler Handler) {
	r.middleware = append(r.middleware, handler)
}

// Register appends a route with its access policy and handler chain.
func (r *Router) Register(policy access.Policy, handlers ...Handler) {
	r.routes = append(r.routes, Route{policy: policy, handlers: handlers})
}

// HandleUpdate runs one update through middleware and routes. Handler
// errors are logged here; they never take the process down.
func (r *Router) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	fields := logrus.Fields{"update_id": update.UpdateID}
	if chat := update.FromChat(); chat != nil {
		fields["chat_id"] = chat.ID
	}
	if user := update.SentFrom(); user != nil {
		fields["user_id"] = user.ID
	}
	r.logger.WithFields(fields).Debug("Received update")

	for _, mw := range r.middleware {
		if _, err := mw.Handle(ctx, update); err != nil {
			metrics.HandlerErrors.Inc()
			r.logger.WithFields(fields).WithError(err).Error("Middleware failed")
		}
	}

	for _, route := range r.routes {
		if !route.policy.IsGranted(ctx, update) {
			continue
		}
		for _, handler := range route.handlers {
			handled, err := handler.Handle(ctx, update)
			if err != nil {
				metrics.HandlerErrors.Inc()
				r.logger.WithFields(fields).WithError(err).Error("Handler failed")
				return
			}
			if handled {
				return
			}
		}
		return
	}
}
