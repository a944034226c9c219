package service

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"golang.org/x/crypto/bcrypt"

	"forwardicons/internal/config"
	"forwardicons/internal/domain"
)

const (
	sessionSubject  = "ai-custom"
	sessionAudience = "ai_custom"

	// DefaultSessionTTL is the lifetime of a gated-mode session.
	DefaultSessionTTL = 24 * time.Hour
)

var (
	errTokenExpired = errors.New("session token expired")
	errTokenInvalid = errors.New("session token invalid")
)

// SessionClaims are the claims carried by a gated-mode session token.
type SessionClaims struct {
	jwt.RegisteredClaims
}

// SessionService exchanges the gated-mode password for a signed session
// token and verifies presented tokens.
type SessionService interface {
	Issue(password string) (string, error)
	Verify(token string) error
	TTL() time.Duration
}

type sessionService struct {
	passwordHash []byte
	secret       []byte
	ttl          time.Duration
	clock        clockwork.Clock
}

// NewSessionService creates a SessionService. password is the configured
// gated-mode password; an empty password disables Issue.
func NewSessionService(password string, cfg config.SessionConfig, clock clockwork.Clock) (SessionService, error) {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}

	s := &sessionService{secret: []byte(cfg.Secret), ttl: ttl, clock: clock}
	if password != "" {
		hash, err := bcrypt.GenerateFromPassword(passwordDigest(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hashing custom cutout password: %w", err)
		}
		s.passwordHash = hash
	}
	return s, nil
}

// passwordDigest keeps the bcrypt input under its 72-byte limit.
func passwordDigest(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	return []byte(hex.EncodeToString(sum[:]))
}

func (s *sessionService) TTL() time.Duration {
	return s.ttl
}

func (s *sessionService) Issue(password string) (string, error) {
	if len(s.passwordHash) == 0 {
		return "", domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, passwordDigest(password)); err != nil {
		return "", domain.ErrUnauthorized
	}
	if len(s.secret) == 0 {
		return "", fmt.Errorf("session.Issue: signing secret not set: %w", domain.ErrConfiguration)
	}

	now := s.clock.Now()
	claims := &SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sessionSubject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			ID:        uuid.New().String(),
			Audience:  jwt.ClaimStrings{sessionAudience},
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("signing session token: %w", err)
	}
	return signed, nil
}

func (s *sessionService) Verify(token string) error {
	if err := s.verify(token); err != nil {
		slog.Debug("session.Verify: rejected token", "error", err)
		return domain.ErrUnauthorized
	}
	return nil
}

func (s *sessionService) verify(tokenString string) error {
	if tokenString == "" || len(s.secret) == 0 {
		return errTokenInvalid
	}

	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(sessionAudience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.clock.Now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return fmt.Errorf("%w: %w", errTokenExpired, err)
		}
		return fmt.Errorf("%w: %w", errTokenInvalid, err)
	}
	if !token.Valid || claims.Subject != sessionSubject {
		return errTokenInvalid
	}
	return nil
}
