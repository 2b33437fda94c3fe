// Package net provides utilities for working with request contexts
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// ctxKey is an unexported key type for context values
type ctxKey string

const (
	keySessionID ctxKey = "session_id"
	keyUsername  ctxKey = "username"
)

// WithRequest annotates context with the request id
func WithRequest(ctx context.Context, reqID string) context.Context {
	if reqID != "" {
		// set chi RequestID so chimw.GetReqID can retrieve it
		ctx = context.WithValue(ctx, chimw.RequestIDKey, reqID)
	}
	return ctx
}

// WithSession annotates context with the authenticated session id and username
func WithSession(ctx context.Context, sessionID, username string) context.Context {
	if sessionID != "" {
		ctx = context.WithValue(ctx, keySessionID, sessionID)
	}
	if username != "" {
		ctx = context.WithValue(ctx, keyUsername, username)
	}
	return ctx
}

// RequestID returns the request id on the context if present
func RequestID(ctx context.Context) string {
	if v := chimw.GetReqID(ctx); v != "" {
		return v
	}
	return ""
}

// SessionID returns the session id on the context if present
func SessionID(ctx context.Context) string {
	if v, ok := ctx.Value(keySessionID).(string); ok {
		return v
	}
	return ""
}

// Username returns the authenticated username on the context if present
func Username(ctx context.Context) string {
	if v, ok := ctx.Value(keyUsername).(string); ok {
		return v
	}
	return ""
}
