package web

import (
	"context"
	"net/http"

	"github.com/JonMunkholm/suppliers/internal/core"
)

// WithRequestMetadata adds IP and User-Agent to context for audit logging.
// The actor, when signed in, is already on the context from AdminAuth.
func WithRequestMetadata(ctx context.Context, r *http.Request) context.Context {
	ctx = core.ContextWithIPAddress(ctx, r.RemoteAddr) // reduced to the client IP by TrustedRealIP
	ctx = core.ContextWithUserAgent(ctx, r.UserAgent())
	return ctx
}
