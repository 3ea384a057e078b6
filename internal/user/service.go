package user

import (
	"context"
	"errors"
	"fmt"

	"localwear-be/internal/apperror"
	"localwear-be/internal/auth"
	"localwear-be/internal/logger"

	"go.uber.org/zap"
)

type TokenIssuer interface {
	Generate(p auth.Principal) (string, error)
}

type Service interface {
	GoogleLogin(ctx context.Context, idToken string) (*AuthResult, error)
	AdminLogin(ctx context.Context, email, password string) (*AuthResult, error)
	GetByID(ctx context.Context, id uint) (*User, error)
}

type service struct {
	repo     Repository
	verifier IdentityVerifier
	tokens   TokenIssuer
}

func NewService(repo Repository, verifier IdentityVerifier, tokens TokenIssuer) Service {
	return &service{repo: repo, verifier: verifier, tokens: tokens}
}

func (s *service) GoogleLogin(ctx context.Context, idToken string) (*AuthResult, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "GoogleLogin"),
	)

	identity, err := s.verifier.Verify(ctx, idToken)
	if err != nil {
		log.Warn("google token rejected", zap.Error(err))
		return nil, apperror.BadRequest("Google authentication failed: %v", err)
	}

	u, err := s.findOrCreateGoogleUser(ctx, identity)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Generate(u.Principal())
	if err != nil {
		log.Error("failed to generate jwt", zap.Uint("user_id", u.ID), zap.Error(err))
		return nil, fmt.Errorf("generate token: %w", err)
	}

	log.Info("google login success", zap.Uint("user_id", u.ID))
	return &AuthResult{Token: token, User: u}, nil
}

func (s *service) findOrCreateGoogleUser(ctx context.Context, identity *GoogleIdentity) (*User, error) {
	existing, err := s.repo.FindByGoogleID(ctx, identity.Subject)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("find user by google id: %w", err)
	}

	googleID := identity.Subject
	created, err := s.repo.Create(ctx, &User{
		Name:     identity.Name,
		Email:    identity.Email,
		GoogleID: &googleID,
		Role:     auth.RoleCustomer,
	})
	if errors.Is(err, ErrEmailExists) || errors.Is(err, ErrGoogleIDExists) {
		// A concurrent first sign-in for the same subject may have won the insert.
		if winner, findErr := s.repo.FindByGoogleID(ctx, identity.Subject); findErr == nil {
			return winner, nil
		}
		return nil, apperror.BadRequest("Google authentication failed: %v", err)
	}
	if err != nil {
		return nil, fmt.Errorf("create google user: %w", err)
	}

	logger.FromCtx(ctx).Info("customer account created from google sign-in",
		zap.String("layer", "service"),
		zap.Uint("user_id", created.ID),
	)
	return created, nil
}

func (s *service) AdminLogin(ctx context.Context, email, password string) (*AuthResult, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AdminLogin"),
	)

	u, err := s.repo.FindByEmail(ctx, email)
	if errors.Is(err, ErrUserNotFound) {
		log.Info("admin login: unknown email")
		return nil, apperror.BadRequest("Invalid credentials")
	}
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}

	if u.Role != auth.RoleAdmin {
		log.Warn("admin login attempted by non-admin", zap.Uint("user_id", u.ID))
		return nil, apperror.BadRequest("Invalid credentials")
	}

	if !CheckPasswordHash(password, u.PasswordHash) {
		log.Info("admin login: password mismatch", zap.Uint("user_id", u.ID))
		return nil, apperror.BadRequest("Invalid credentials")
	}

	token, err := s.tokens.Generate(u.Principal())
	if err != nil {
		log.Error("failed to generate jwt", zap.Uint("user_id", u.ID), zap.Error(err))
		return nil, fmt.Errorf("generate token: %w", err)
	}

	log.Info("admin login success", zap.Uint("user_id", u.ID))
	return &AuthResult{Token: token, User: u}, nil
}

func (s *service) GetByID(ctx context.Context, id uint) (*User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, ErrUserNotFound) {
		return nil, apperror.NotFound("User not found")
	}
	return u, err
}
