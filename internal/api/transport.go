package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"
)

// authPath is excluded from bearer attachment and 401/403 interception: the
// login call is the one fetching the token, and its own failures belong to
// the login form, not to a forced logout.
const authPath = "/auth"

func isAuthRequest(req *http.Request) bool {
	return req.URL.Path == authPath || strings.HasSuffix(req.URL.Path, authPath)
}

// authTransport attaches the bearer token and a request-correlation id.
type authTransport struct {
	next   http.RoundTripper
	tokens TokenSource
}

func newAuthTransport(next http.RoundTripper, tokens TokenSource) *authTransport {
	return &authTransport{next: next, tokens: tokens}
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	out := req.Clone(req.Context())
	if id, err := uuid.NewV4(); err == nil {
		out.Header.Set("X-Request-Id", id.String())
	}
	// No token for the auth endpoint, and no point sending an expired one.
	if !isAuthRequest(req) && t.tokens != nil {
		if tok := t.tokens.Token(); tok != "" && !t.tokens.IsExpired() {
			out.Header.Set("Authorization", "Bearer "+tok)
		}
	}
	return t.next.RoundTrip(out)
}

// loggingTransport logs request metadata, never payloads.
type loggingTransport struct {
	next http.RoundTripper
	log  *zap.Logger
}

func newLoggingTransport(next http.RoundTripper, log *zap.Logger) *loggingTransport {
	return &loggingTransport{next: next, log: log}
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.next.RoundTrip(req)
	fields := []zap.Field{
		zap.String("method", req.Method),
		zap.String("path", req.URL.Path),
		zap.Duration("dur", time.Since(start)),
	}
	if err != nil {
		t.log.Warn("http", append(fields, zap.Error(err))...)
		return resp, err
	}
	t.log.Info("http", append(fields, zap.Int("status", resp.StatusCode))...)
	return resp, nil
}

// unauthorizedWatcher invokes onUnauthorized when a completed response comes
// back 401/403 outside the auth endpoint. The handler side effect (forced
// logout + redirect to login) lives with the caller.
type unauthorizedWatcher struct {
	next           http.RoundTripper
	onUnauthorized func()
}

func newUnauthorizedWatcher(next http.RoundTripper, onUnauthorized func()) *unauthorizedWatcher {
	return &unauthorizedWatcher{next: next, onUnauthorized: onUnauthorized}
}

func (t *unauthorizedWatcher) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.next.RoundTrip(req)
	if err != nil || resp == nil {
		return resp, err
	}
	if !isAuthRequest(req) &&
		(resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden) &&
		t.onUnauthorized != nil {
		t.onUnauthorized()
	}
	return resp, err
}
