package web

import (
	"context"
	"net"
	"net/http"

	"github.com/JonMunkholm/countycontacts/internal/core"
)

// withClient tags the request context with the caller's address and user
// agent for import history and mutation logs.
func withClient(r *http.Request) context.Context {
	ip := r.RemoteAddr // rewritten by TrustedRealIP behind a proxy
	if host, _, err := net.SplitHostPort(ip); err == nil {
		ip = host
	}
	return core.ContextWithClient(r.Context(), ip, r.UserAgent())
}
