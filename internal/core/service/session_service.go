package service

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/inkwell/storefront/internal/api/metrics"
	"github.com/inkwell/storefront/internal/core/domain"
	"github.com/inkwell/storefront/internal/core/ports"
)

const defaultSessionTTL = 15 * 24 * time.Hour

// SessionService issues and verifies signed session tokens.
type SessionService struct {
	secret []byte
	ttl    time.Duration
	events ports.EventPublisher
	log    zerolog.Logger
	now    func() time.Time
}

func NewSessionService(secret string, ttl time.Duration, events ports.EventPublisher, log zerolog.Logger) *SessionService {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &SessionService{
		secret: []byte(secret),
		ttl:    ttl,
		events: events,
		log:    log,
		now:    time.Now,
	}
}

// TTL is the lifetime of issued tokens; the cookie uses the same value.
func (s *SessionService) TTL() time.Duration {
	return s.ttl
}

// CreateSession signs a token for user and announces the change.
func (s *SessionService) CreateSession(_ context.Context, user *domain.User) (string, error) {
	if user == nil {
		return "", domain.ErrInvalidUser
	}
	userID := strings.TrimSpace(user.ID)
	if userID == "" {
		return "", domain.ErrInvalidUser
	}

	role := user.Role
	if role == "" {
		role = domain.RoleCustomer
	}

	now := s.now()
	claims := jwt.MapClaims{
		"userId":     userID,
		"email":      user.Email,
		"name":       user.Name,
		"verified":   user.Verified,
		"phone":      user.Phone,
		"profilePic": user.ProfilePic,
		"address":    user.Address,
		"role":       role,
		"iat":        now.Unix(),
		"exp":        now.Add(s.ttl).Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", err
	}

	s.announce(userID, domain.SessionCreated)
	return signed, nil
}

// GetSession verifies token and returns its payload, or nil when the token is
// missing, malformed, tampered with or expired.
func (s *SessionService) GetSession(_ context.Context, token string) *domain.SessionPayload {
	if token == "" {
		return nil
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithExpirationRequired(), jwt.WithTimeFunc(s.now))
	if err != nil || !parsed.Valid {
		s.log.Debug().Err(err).Msg("session token rejected")
		return nil
	}

	userID, ok := normalizeUserID(claims["userId"])
	if !ok {
		s.log.Warn().Msg("session token carries an unusable userId")
		return nil
	}

	payload := &domain.SessionPayload{
		UserID:     userID,
		Email:      stringClaim(claims, "email"),
		Name:       stringClaim(claims, "name"),
		Phone:      stringClaim(claims, "phone"),
		ProfilePic: stringClaim(claims, "profilePic"),
		Address:    stringClaim(claims, "address"),
		Role:       stringClaim(claims, "role"),
	}
	payload.Verified, _ = claims["verified"].(bool)
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		payload.IssuedAt = iat.UTC()
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		payload.ExpiresAt = exp.UTC()
	}
	if payload.Role == "" {
		payload.Role = domain.RoleCustomer
	}
	return payload
}

// DeleteSession announces that userID signed out. Clearing the cookie is the
// transport's job.
func (s *SessionService) DeleteSession(_ context.Context, userID string) {
	if userID == "" {
		return
	}
	s.announce(userID, domain.SessionDeleted)
}

func (s *SessionService) announce(userID, reason string) {
	metrics.SessionEventsTotal.WithLabelValues(reason).Inc()
	s.events.Publish(domain.NewEvent(domain.EventSessionChanged, userID, domain.SessionChangedPayload{
		UserID: userID,
		Reason: reason,
	}))
}

// normalizeUserID accepts a non-empty string, or an object carrying exactly
// one string identifier under id, _id or $oid.
func normalizeUserID(v any) (string, bool) {
	switch id := v.(type) {
	case string:
		id = strings.TrimSpace(id)
		return id, id != ""
	case map[string]any:
		found := ""
		count := 0
		for _, key := range []string{"id", "_id", "$oid"} {
			raw, present := id[key]
			if !present {
				continue
			}
			str, ok := raw.(string)
			if !ok {
				return "", false
			}
			found = strings.TrimSpace(str)
			count++
		}
		if count != 1 || found == "" {
			return "", false
		}
		return found, true
	}
	return "", false
}

func stringClaim(claims jwt.MapClaims, key string) string {
	v, _ := claims[key].(string)
	return v
}
