// Package users issues sessions: it registers new identities and logs
// existing ones in, returning a signed access token on success.
package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/bailbridge/internal/common"
	"github.com/dmitrijs2005/bailbridge/internal/logging"
	"github.com/dmitrijs2005/bailbridge/internal/server/models"
	repo "github.com/dmitrijs2005/bailbridge/internal/server/repositories/users"
	"github.com/google/uuid"
)

// Hasher derives and checks credential digests.
type Hasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) (bool, error)
}

// TokenIssuer signs access tokens.
type TokenIssuer interface {
	Issue(subjectID string, role models.Role) (string, error)
}

// OutcomeRecorder counts register/login results.
type OutcomeRecorder interface {
	AuthOutcome(operation, outcome string)
}

type nopRecorder struct{}

func (nopRecorder) AuthOutcome(string, string) {}

// Session is the result of a successful register or login.
type Session struct {
	Token string      `json:"token"`
	Role  models.Role `json:"role"`
}

// RegisterInput carries the fields of a registration request.
type RegisterInput struct {
	Email    string
	Username string
	Password string
	Role     models.Role
}

const (
	opRegister = "register"
	opLogin    = "login"
)

type Service struct {
	repo     repo.Repository
	hasher   Hasher
	tokens   TokenIssuer
	logger   logging.Logger
	recorder OutcomeRecorder
	newID    func() (uuid.UUID, error)

	// decoy is verified against when the email is unknown so that both
	// login failure paths pay for one key derivation.
	decoy string
}

type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(l logging.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithRecorder sets the outcome recorder.
func WithRecorder(r OutcomeRecorder) Option {
	return func(s *Service) { s.recorder = r }
}

func NewService(r repo.Repository, h Hasher, t TokenIssuer, opts ...Option) (*Service, error) {
	s := &Service{
		repo:     r,
		hasher:   h,
		tokens:   t,
		logger:   logging.Nop{},
		recorder: nopRecorder{},
		newID:    uuid.NewRandom,
	}
	for _, o := range opts {
		o(s)
	}
	s.logger = s.logger.With("module", "users")

	filler, err := common.MakeRandHexString(16)
	if err != nil {
		return nil, fmt.Errorf("%w: decoy: %w", common.ErrHashingFailure, err)
	}
	if s.decoy, err = h.Hash(filler); err != nil {
		return nil, fmt.Errorf("decoy digest: %w", err)
	}

	return s, nil
}

// Register creates a new identity and returns a session for it.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*Session, error) {

	if !in.Role.Valid() {
		s.recorder.AuthOutcome(opRegister, "invalid_role")
		return nil, fmt.Errorf("%w: %s", common.ErrInvalidRole, in.Role)
	}

	_, err := s.repo.GetUserByEmail(ctx, in.Email)
	switch {
	case err == nil:
		s.recorder.AuthOutcome(opRegister, "duplicate")
		return nil, common.ErrDuplicateIdentity
	case !errors.Is(err, common.ErrorNotFound):
		return nil, s.directoryFailure(ctx, opRegister, err)
	}

	digest, err := s.hasher.Hash(in.Password)
	if err != nil {
		s.logger.Error(ctx, "hashing failed", "error", err)
		return nil, err
	}

	id, err := s.newID()
	if err != nil {
		s.logger.Error(ctx, "id generation failed", "error", err)
		return nil, fmt.Errorf("%w: %w", common.ErrorInternal, err)
	}

	user := &models.User{
		ID:           id.String(),
		Email:        in.Email,
		UserName:     in.Username,
		PasswordHash: digest,
		Role:         in.Role,
	}

	user, err = s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrDuplicateIdentity) {
			s.recorder.AuthOutcome(opRegister, "duplicate")
			return nil, common.ErrDuplicateIdentity
		}
		return nil, s.directoryFailure(ctx, opRegister, err)
	}

	session, err := s.issue(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "identity registered", "user_id", user.ID, "role", user.Role)
	s.recorder.AuthOutcome(opRegister, "created")
	return session, nil
}

// Login checks the credential for email and returns a session. Unknown
// email and wrong password produce the same error text.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			_, _ = s.hasher.Verify(password, s.decoy)
			return nil, s.reject(ctx, common.ErrIdentityNotFound)
		}
		return nil, s.directoryFailure(ctx, opLogin, err)
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		s.logger.Error(ctx, "stored digest unusable", "user_id", user.ID, "error", err)
		s.recorder.AuthOutcome(opLogin, "error")
		return nil, err
	}
	if !ok {
		return nil, s.reject(ctx, common.ErrInvalidCredential)
	}

	session, err := s.issue(ctx, user)
	if err != nil {
		return nil, err
	}

	s.recorder.AuthOutcome(opLogin, "success")
	return session, nil
}

func (s *Service) issue(ctx context.Context, user *models.User) (*Session, error) {
	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		s.logger.Error(ctx, "token issuance failed", "user_id", user.ID, "error", err)
		return nil, err
	}
	return &Session{Token: token, Role: user.Role}, nil
}

func (s *Service) reject(ctx context.Context, reason error) error {
	s.logger.Info(ctx, "login rejected", "reason", reason.Error())
	s.recorder.AuthOutcome(opLogin, "rejected")
	return common.NewAuthError(reason)
}

func (s *Service) directoryFailure(ctx context.Context, op string, err error) error {
	s.logger.Error(ctx, "directory failure", "operation", op, "error", err)
	s.recorder.AuthOutcome(op, "error")
	return fmt.Errorf("%w: %w", common.ErrDirectoryFailure, err)
}
