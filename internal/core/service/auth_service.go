package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/inkwell/storefront/internal/api/metrics"
	"github.com/inkwell/storefront/internal/core/domain"
	"github.com/inkwell/storefront/internal/core/ports"
)

const (
	minPasswordLength = 8
	maxPasswordBytes  = 72 // bcrypt input limit
	verificationTTL   = 24 * time.Hour
	resetTTL          = time.Hour
)

// AuthService implements registration, login, email verification and
// password reset.
type AuthService struct {
	repo     ports.AuthRepository
	sessions ports.SessionService
	limiter  ports.RateLimiter
	mailer   ports.Mailer
	log      zerolog.Logger
	now      func() time.Time
}

func NewAuthService(
	repo ports.AuthRepository,
	sessions ports.SessionService,
	limiter ports.RateLimiter,
	mailer ports.Mailer,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		repo:     repo,
		sessions: sessions,
		limiter:  limiter,
		mailer:   mailer,
		log:      log,
		now:      time.Now,
	}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	email := normalizeEmail(in.Email)
	if err := s.allow(ctx, "register", email); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Invalid("name is required")
	}
	if !validEmail(email) {
		return nil, domain.Invalid("email must be a valid email")
	}
	if err := checkPassword(in.Password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	user := &domain.User{
		Name:                name,
		Email:               email,
		Phone:               strings.TrimSpace(in.Phone),
		PasswordHash:        string(hash),
		Role:                domain.RoleCustomer,
		VerificationToken:   uuid.NewString(),
		VerificationExpires: now.Add(verificationTTL),
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	// The account stands even when the mail cannot be sent.
	if err := s.mailer.SendVerification(ctx, created.Email, user.VerificationToken); err != nil {
		s.log.Error().Err(err).Str("user_id", created.ID).Msg("failed to send verification email")
	}

	s.log.Info().Str("user_id", created.ID).Msg("user registered")
	return created, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = normalizeEmail(email)
	if err := s.allow(ctx, "login", email); err != nil {
		return "", nil, err
	}
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.sessions.CreateSession(ctx, user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// VerifyEmail marks the account verified and signs the user in.
func (s *AuthService) VerifyEmail(ctx context.Context, token string) (string, *domain.User, error) {
	if token == "" {
		return "", nil, domain.ErrInvalidToken
	}

	user, err := s.repo.FindByVerificationToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidToken
		}
		return "", nil, err
	}
	now := s.now().UTC()
	if now.After(user.VerificationExpires) {
		return "", nil, domain.ErrInvalidToken
	}

	user.Verified = true
	user.VerificationToken = ""
	user.VerificationExpires = time.Time{}
	user.UpdatedAt = now
	if err := s.repo.Save(ctx, user); err != nil {
		return "", nil, err
	}

	session, err := s.sessions.CreateSession(ctx, user)
	if err != nil {
		return "", nil, err
	}
	s.log.Info().Str("user_id", user.ID).Msg("email verified")
	return session, user, nil
}

// ForgotPassword always reports success so callers cannot probe which emails
// have accounts. Only rate limiting is surfaced.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if err := s.allow(ctx, "forgot", email); err != nil {
		return err
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			s.log.Error().Err(err).Msg("forgot password lookup failed")
		}
		return nil
	}

	now := s.now().UTC()
	user.ResetToken = uuid.NewString()
	user.ResetExpires = now.Add(resetTTL)
	user.UpdatedAt = now
	if err := s.repo.Save(ctx, user); err != nil {
		s.log.Error().Err(err).Str("user_id", user.ID).Msg("failed to store reset token")
		return nil
	}

	if err := s.mailer.SendPasswordReset(ctx, user.Email, user.ResetToken); err != nil {
		s.log.Error().Err(err).Str("user_id", user.ID).Msg("failed to send password reset email")
	}
	return nil
}

func (s *AuthService) ResetPassword(ctx context.Context, token, password string) error {
	if token == "" {
		return domain.ErrInvalidToken
	}
	if err := checkPassword(password); err != nil {
		return err
	}

	user, err := s.repo.FindByResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrInvalidToken
		}
		return err
	}
	now := s.now().UTC()
	if now.After(user.ResetExpires) {
		return domain.ErrInvalidToken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	user.ResetToken = ""
	user.ResetExpires = time.Time{}
	user.UpdatedAt = now
	return s.repo.Save(ctx, user)
}

// allow short-circuits when the limiter denies the attempt. Limiter failures
// fail open.
func (s *AuthService) allow(ctx context.Context, operation, identifier string) error {
	ok, err := s.limiter.Allow(ctx, operation+":"+identifier)
	if err != nil {
		s.log.Warn().Err(err).Str("operation", operation).Msg("rate limit check failed, allowing attempt")
		return nil
	}
	if !ok {
		metrics.RateLimitedTotal.WithLabelValues(operation).Inc()
		return domain.ErrTooManyAttempts
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

var fieldValidator = validator.New()

func validEmail(email string) bool {
	return fieldValidator.Var(email, "required,email") == nil
}

func checkPassword(password string) error {
	if len(password) < minPasswordLength {
		return domain.Invalid("password must be at least %d characters", minPasswordLength)
	}
	if len(password) > maxPasswordBytes {
		return domain.Invalid("password must be at most %d bytes", maxPasswordBytes)
	}
	return nil
}
