package client

import (
	"context"
	"errors"
)

var ErrNotInitialized = errors.New("application is not initialized")

type ctxKey struct{}

// WithApp stores app in ctx for the commands.
func WithApp(ctx context.Context, app *App) context.Context {
	return context.WithValue(ctx, ctxKey{}, app)
}

// FromContext returns the app stored by WithApp, or nil.
func FromContext(ctx context.Context) *App {
	app, _ := ctx.Value(ctxKey{}).(*App)
	return app
}

// Require is FromContext that fails when no app is stored.
func Require(ctx context.Context) (*App, error) {
	if app := FromContext(ctx); app != nil {
		return app, nil
	}
	return nil, ErrNotInitialized
}
