package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Bipul-Dubey/health-index/shared/models"
	"github.com/Bipul-Dubey/health-index/shared/store"
	"github.com/Bipul-Dubey/health-index/shared/utils"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrSessionRevoked     = errors.New("session has been logged out")
)

var validate = validator.New()

const maxPasswordBytes = 72

type AuthenticationService interface {
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
	// Logout revokes the session behind token. Missing, invalid and expired
	// tokens are ignored.
	Logout(ctx context.Context, token string) error
	Resolve(ctx context.Context, token string) (*utils.SessionClaims, error)
}

type authenticationService struct {
	username     []byte
	passwordHash []byte
	sessions     store.SessionStore
	signer       *utils.TokenSigner
}

func NewAuthenticationService(creds Credentials, sessions store.SessionStore, signer *utils.TokenSigner) (AuthenticationService, error) {
	if len(creds.Password) > maxPasswordBytes {
		return nil, fmt.Errorf("password must be at most %d bytes", maxPasswordBytes)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	return &authenticationService{
		username:     []byte(creds.Username),
		passwordHash: hash,
		sessions:     sessions,
		signer:       signer,
	}, nil
}

func (s *authenticationService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	if err := validate.Struct(req); err != nil {
		return nil, ErrInvalidCredentials
	}
	// bcrypt ignores bytes past 72, so longer input could match a prefix.
	if len(req.Password) > maxPasswordBytes {
		return nil, ErrInvalidCredentials
	}

	usernameOK := subtle.ConstantTimeCompare([]byte(req.Username), s.username) == 1
	passwordErr := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(req.Password))
	if !usernameOK || passwordErr != nil {
		return nil, ErrInvalidCredentials
	}

	sess, err := s.sessions.Create(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	token, expiresAt, err := s.signer.Sign(sess.ID, sess.Username)
	if err != nil {
		return nil, errors.New("failed to generate access token")
	}

	return &models.LoginResponse{
		AccessToken: token,
		SessionID:   sess.ID,
		Username:    sess.Username,
		ExpiresAt:   expiresAt,
	}, nil
}

func (s *authenticationService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	claims, err := s.signer.Parse(token)
	if err != nil {
		return nil
	}
	id, err := uuid.Parse(claims.SessionID)
	if err != nil {
		return nil
	}
	if err := s.sessions.Revoke(ctx, id); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

func (s *authenticationService) Resolve(ctx context.Context, token string) (*utils.SessionClaims, error) {
	claims, err := s.signer.Parse(token)
	if err != nil {
		return nil, err
	}
	id, err := uuid.Parse(claims.SessionID)
	if err != nil {
		return nil, utils.ErrInvalidToken
	}

	sess, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !sess.Authenticated {
		return nil, ErrSessionRevoked
	}
	return claims, nil
}
