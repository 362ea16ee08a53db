package httpapi

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/bailbridge/internal/server/models"
	"github.com/dmitrijs2005/bailbridge/internal/server/users"
)

func (s *HTTPServer) handleCheck(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("BailBridge is running!"))
}

func (s *HTTPServer) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := decode(r, &req); err != nil {
		writeDomainError(w, err)
		return
	}

	role, err := models.ParseRole(req.Role)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	session, err := s.users.Register(r.Context(), users.RegisterInput{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
		Role:     role,
	})
	if err != nil {
		s.logFailure(r, "register", err)
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, session)
}

func (s *HTTPServer) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decode(r, &req); err != nil {
		writeDomainError(w, err)
		return
	}

	session, err := s.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.logFailure(r, "login", err)
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, session)
}

// meResponse echoes the caller's verified claims.
type meResponse struct {
	ID        string      `json:"id"`
	Role      models.Role `json:"role"`
	ExpiresAt time.Time   `json:"expires_at"`
}

func (s *HTTPServer) handleMe(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		writeUnauthenticated(w)
		return
	}
	writeJSON(w, http.StatusOK, meResponse{ID: claims.Subject, Role: claims.Role, ExpiresAt: claims.ExpiresAt.UTC()})
}

// logFailure records unexpected failures. Expected rejections are already
// logged by the session issuer with their reason tag.
func (s *HTTPServer) logFailure(r *http.Request, op string, err error) {
	if status, _, _ := statusFor(err); status >= http.StatusInternalServerError {
		s.logger.Error(r.Context(), "request failed", "operation", op, "error", err,
			"request_id", r.Context().Value(ctxKeyRequestID))
	}
}
