package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/bailbridge/internal/common"
	"github.com/dmitrijs2005/bailbridge/internal/server/access"
	"github.com/dmitrijs2005/bailbridge/internal/server/auth"
)

const ctxKeyClaims contextKey = "claims"

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header. The scheme is matched case-insensitively.
func BearerToken(header string) (string, error) {
	if header == "" {
		return "", fmt.Errorf("%w: missing authorization header", common.ErrMalformedToken)
	}

	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, common.BearerScheme) {
		return "", fmt.Errorf("%w: expected bearer scheme", common.ErrMalformedToken)
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", fmt.Errorf("%w: empty bearer token", common.ErrMalformedToken)
	}
	return token, nil
}

// Authenticate returns the verified claims carried by r.
func Authenticate(r *http.Request, tokens TokenParser) (*auth.Claims, error) {
	raw, err := BearerToken(r.Header.Get(common.AuthorizationHeaderName))
	if err != nil {
		return nil, err
	}
	return tokens.Parse(raw)
}

// ClaimsFromContext returns the claims stored by the auth middleware.
func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	c, ok := ctx.Value(ctxKeyClaims).(*auth.Claims)
	return c, ok && c != nil
}

// authMiddleware rejects requests without a valid bearer token.
func (s *HTTPServer) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := Authenticate(r, s.tokens)
		if err != nil {
			s.logger.Info(r.Context(), "token rejected", "error", err,
				"request_id", r.Context().Value(ctxKeyRequestID))
			writeUnauthenticated(w)
			return
		}
		ctx := context.WithValue(r.Context(), ctxKeyClaims, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireOperation lets the request through only if the caller's claims
// permit op. It must run after the auth middleware.
func RequireOperation(op access.Operation) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				writeUnauthenticated(w)
				return
			}
			if err := access.Check(claims, op); err != nil {
				writeDomainError(w, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
